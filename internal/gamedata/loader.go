package gamedata

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths resolves event bundle locations under a base directory.
type Paths struct {
	BaseDir string
}

// EventPath returns the YAML file holding the bundle for one event id.
func (p Paths) EventPath(eventID int) string {
	return filepath.Join(p.BaseDir, "events", fmt.Sprintf("%d.yaml", eventID))
}

// Loader reads event bundles from disk and caches parsed results; the tables
// are immutable after load, so a cached bundle is shared by reference.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[int]*Event
}

// NewLoader creates a loader rooted at baseDir.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[int]*Event),
	}
}

// Load returns the parsed bundle for eventID, reading it from disk on first
// use.
func (l *Loader) Load(eventID int) (*Event, error) {
	l.mu.RLock()
	if ev, ok := l.cache[eventID]; ok {
		l.mu.RUnlock()
		return ev, nil
	}
	l.mu.RUnlock()

	ev, err := readEvent(l.paths.EventPath(eventID))
	if err != nil {
		return nil, fmt.Errorf("load event %d: %w", eventID, err)
	}
	if ev.ID == 0 {
		ev.ID = eventID
	}

	l.mu.Lock()
	l.cache[eventID] = ev
	l.mu.Unlock()
	return ev, nil
}

// Invalidate clears the cache, forcing re-reads on next Load.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[int]*Event)
}

// readEvent loads one YAML bundle.
func readEvent(path string) (*Event, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ev Event
	if err := yaml.Unmarshal(b, &ev); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &ev, nil
}
