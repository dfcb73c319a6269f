package history

import (
	"bufio"
	"os"
	"sync"

	"github.com/spf13/afero"
)

// History is the list of lines entered at the prompt, persisted to a file
// after every addition.
type History struct {
	items    []string
	fs       afero.Fs
	file     string
	maxItems int
	mu       sync.Mutex
}

// New loads the history kept in file on fs. At most maxItems lines are kept;
// zero or less keeps everything.
func New(fs afero.Fs, file string, maxItems int) (*History, error) {
	h := &History{
		fs:       fs,
		file:     file,
		maxItems: maxItems,
	}
	if err := h.load(); err != nil {
		return nil, err
	}
	return h, nil
}

// Add appends item and rewrites the history file.
func (h *History) Add(item string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, item)
	h.trim()
	return h.save()
}

func (h *History) GetAll() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string{}, h.items...)
}

func (h *History) trim() {
	if h.maxItems > 0 && len(h.items) > h.maxItems {
		h.items = h.items[len(h.items)-h.maxItems:]
	}
}

func (h *History) load() error {
	file, err := h.fs.Open(h.file)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		h.items = append(h.items, scanner.Text())
	}
	h.trim()
	return scanner.Err()
}

func (h *History) save() error {
	file, err := h.fs.Create(h.file)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, item := range h.items {
		if _, err := writer.WriteString(item + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}
