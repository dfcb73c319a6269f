// Package plugin loads extra shell built-ins from Go plugins.
package plugin

import (
	"fmt"
	"io"
	"plugin"
)

// Plugin is a built-in command provided by a plugin. Execute receives the
// arguments after the command name and writes to out.
type Plugin interface {
	Name() string
	Execute(out io.Writer, args []string) error
}

// Load opens the Go plugin at path; it must export a Plugin symbol.
func Load(path string) (Plugin, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plugin: %w", err)
	}

	symPlugin, err := p.Lookup("Plugin")
	if err != nil {
		return nil, fmt.Errorf("plugin does not export 'Plugin' symbol: %w", err)
	}

	plug, ok := symPlugin.(Plugin)
	if !ok {
		return nil, fmt.Errorf("plugin %s does not implement Plugin interface", path)
	}

	return plug, nil
}

// Registry holds plugins by command name.
type Registry struct {
	plugins map[string]Plugin
}

func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// LoadAll loads each path and registers it. It stops at the first failure.
func (r *Registry) LoadAll(paths []string) error {
	for _, path := range paths {
		p, err := Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := r.Register(p); err != nil {
			return err
		}
	}
	return nil
}

// Register adds p. Names must be unique.
func (r *Registry) Register(p Plugin) error {
	if _, ok := r.plugins[p.Name()]; ok {
		return fmt.Errorf("plugin %q already registered", p.Name())
	}
	r.plugins[p.Name()] = p
	return nil
}

// Lookup returns the plugin registered under name.
func (r *Registry) Lookup(name string) (Plugin, bool) {
	p, ok := r.plugins[name]
	return p, ok
}
