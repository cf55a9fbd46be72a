package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"factsheet/internal/logger"
)

// ChangeListener receives every successfully reloaded config.
type ChangeListener func(*Config)

// Watcher reloads the config file on change and hands the result to its
// listeners. A reload that fails validation keeps the previous config.
// The parent directory is watched so editors that replace the file on save
// are still seen.
type Watcher struct {
	path string
	fsw  *fsnotify.Watcher
	done chan struct{}
	once sync.Once

	mu        sync.RWMutex
	current   *Config
	version   int64
	listeners []ChangeListener
}

// NewWatcher loads path and starts watching it. Close stops the watch.
func NewWatcher(path string) (*Watcher, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("config watcher requires path")
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(cfg.Path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}
	w := &Watcher{path: cfg.Path, fsw: fsw, done: make(chan struct{}), current: cfg, version: 1}
	go w.loop()
	return w, nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		err = w.fsw.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != w.path || !evt.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := w.reload(); err != nil {
				logger.Errorf("config reload failed (%s): %v", evt.Name, err)
				continue
			}
			w.notify()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warnf("config watcher error: %v", err)
		}
	}
}

// Current returns the latest good config.
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Version counts successful loads, starting at 1.
func (w *Watcher) Version() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.version
}

// Subscribe registers fn for future reloads.
func (w *Watcher) Subscribe(fn ChangeListener) {
	if fn == nil {
		return
	}
	w.mu.Lock()
	w.listeners = append(w.listeners, fn)
	w.mu.Unlock()
}

func (w *Watcher) reload() error {
	cfg, err := Load(w.path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.current = cfg
	w.version++
	w.mu.Unlock()
	logger.Infof("config reloaded from %s (version %d)", w.path, w.Version())
	return nil
}

func (w *Watcher) notify() {
	w.mu.RLock()
	cfg := w.current
	listeners := append([]ChangeListener(nil), w.listeners...)
	w.mu.RUnlock()
	for _, fn := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("config listener panic: %v", r)
				}
			}()
			fn(cfg)
		}()
	}
}
