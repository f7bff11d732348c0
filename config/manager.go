package config

import (
	"context"
	"fmt"
	"hash/fnv"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	yaml "go.yaml.in/yaml/v3"

	"github.com/quietframe/refine"
)

// reloadQuiet coalesces the bursts of write events editors produce when
// saving a file, and skips partially written content.
const reloadQuiet = 250 * time.Millisecond

// Manager holds the current config for one file and can watch it for
// changes.
type Manager struct {
	path string

	mu       sync.RWMutex
	cur      *File
	lastHash uint64

	log zerolog.Logger
}

// NewManager creates a Manager for the config file at path. The logger
// defaults to a no-op.
func NewManager(path string) *Manager {
	return &Manager{path: path, log: zerolog.Nop()}
}

// SetLogger installs a logger for watch/reload diagnostics.
func (m *Manager) SetLogger(log zerolog.Logger) { m.log = log }

// Load parses the file and commits it as the current config.
func (m *Manager) Load() (*File, error) {
	f, err := Load(m.path)
	if err != nil {
		return nil, err
	}
	m.commit(f)
	return f, nil
}

// Get returns the last successfully loaded config, or nil before Load.
func (m *Manager) Get() *File {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

func (m *Manager) commit(f *File) {
	m.mu.Lock()
	m.cur = f
	m.lastHash = hashFile(f)
	m.mu.Unlock()
}

// hashFile fingerprints a config so redundant reloads (editor write events
// with unchanged content) can be skipped.
func hashFile(f *File) uint64 {
	if f == nil {
		return 0
	}
	b, err := yaml.Marshal(f)
	if err != nil {
		return 0
	}
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}

// Watch blocks until ctx is done, reloading the file on filesystem changes
// and calling onChange with each new config that parses and differs from
// the current one. Parse failures keep the previous config and are logged,
// never published.
func (m *Manager) Watch(ctx context.Context, onChange func(*File)) error {
	dir := filepath.Dir(m.path)
	file := filepath.Base(m.path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watch init: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("config watch add %q: %w", dir, err)
	}
	m.log.Debug().Str("dir", dir).Str("file", file).Msg("config watcher started")

	reload := refine.NewDebounce(nil, reloadQuiet, func(struct{}) {
		f, err := Load(m.path)
		if err != nil {
			m.log.Warn().Err(err).Str("path", m.path).Msg("config reload failed")
			return
		}

		h := hashFile(f)
		m.mu.RLock()
		unchanged := h != 0 && h == m.lastHash
		m.mu.RUnlock()
		if unchanged {
			m.log.Debug().Str("path", m.path).Msg("config unchanged; skipping publish")
			return
		}

		m.commit(f)
		m.log.Debug().Str("path", m.path).Msg("config reloaded")
		if onChange != nil {
			onChange(f)
		}
	})
	defer reload.Cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("config watcher closed")
			}
			// Compare by basename: editors rename/replace on save.
			if strings.EqualFold(filepath.Base(ev.Name), file) {
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove|fsnotify.Chmod) != 0 {
					reload.Call(struct{}{})
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return fmt.Errorf("config watcher closed")
			}
			if err != nil {
				m.log.Warn().Err(err).Str("dir", dir).Msg("config watch error")
			}
		}
	}
}
