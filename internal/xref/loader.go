package xref

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// sourceFile is the on-disk YAML structure.
type sourceFile struct {
	Version string       `yaml:"version"`
	Sources []DataSource `yaml:"sources"`
}

// Loader reads a YAML data-source file and watches it for changes. Each
// successful (re)load produces a fresh immutable Registry.
type Loader struct {
	path     string
	mu       sync.RWMutex
	current  *Registry
	onChange []func(*Registry)
	watcher  *fsnotify.Watcher
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: path}
	reg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = reg
	return l, nil
}

// Registry returns the current (latest) registry.
func (l *Loader) Registry() *Registry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever the registry reloads.
func (l *Loader) OnChange(fn func(*Registry)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that hot-reloads the registry on file
// changes. Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("data source watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("data source watcher add %s: %w", l.path, err)
	}
	l.watcher = w

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					reg, err := l.load()
					if err != nil {
						// Log and continue with old registry.
						continue
					}
					l.swap(reg)
				}
			case <-w.Errors:
				// Ignore watcher errors.
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}

// Reload forces an immediate re-read of the data-source file.
func (l *Loader) Reload() (*Registry, error) {
	reg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.swap(reg)
	return reg, nil
}

func (l *Loader) swap(reg *Registry) {
	l.mu.Lock()
	l.current = reg
	callbacks := make([]func(*Registry), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(reg)
	}
}

func (l *Loader) load() (*Registry, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read data sources %s: %w", l.path, err)
	}
	var f sourceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse data sources %s: %w", l.path, err)
	}
	if f.Version == "" {
		return nil, fmt.Errorf("data sources %s: version is required", l.path)
	}
	return NewRegistry(f.Sources)
}
