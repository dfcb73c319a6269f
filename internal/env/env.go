// Package env is the key/value store the shell keeps its prompt in.
package env

import (
	"os"
	"sync"
)

// Store reads and writes environment-style variables.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// OS is the process environment.
type OS struct{}

var _ Store = OS{}

// Get implements Store.Get.
func (OS) Get(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Set implements Store.Set.
func (OS) Set(key, value string) error {
	return os.Setenv(key, value)
}

// Map is an in-memory Store.
type Map struct {
	rw  sync.RWMutex
	env map[string]string
}

var _ Store = (*Map)(nil)

// NewMap creates an empty in-memory store.
func NewMap() *Map {
	return &Map{env: make(map[string]string)}
}

// Get implements Store.Get.
func (m *Map) Get(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()
	v, ok := m.env[key]
	return v, ok
}

// Set implements Store.Set.
func (m *Map) Set(key, value string) error {
	m.rw.Lock()
	defer m.rw.Unlock()
	m.env[key] = value
	return nil
}
