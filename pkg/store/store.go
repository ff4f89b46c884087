// Package store abstracts the external plan-state collaborator: a key-value
// store keyed by (eventID, field) with last-write-wins semantics and no
// transactional guarantees. The core reads initial parameters from it and
// writes result summaries back; persistence itself lives outside this
// module.
package store

import (
	"sync"

	"github.com/google/uuid"
)

// Store is the get/set surface the planner depends on.
type Store interface {
	Get(eventID int, field string) (string, bool)
	Set(eventID int, field, value string)
	Delete(eventID int, field string)
	Fields(eventID int) []string
}

type key struct {
	eventID int
	field   string
}

// MemoryStore is the in-process implementation used by the server and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[key]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[key]string)}
}

// Get returns the value for (eventID, field).
func (s *MemoryStore) Get(eventID int, field string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key{eventID, field}]
	return v, ok
}

// Set stores value under (eventID, field), replacing any prior value.
func (s *MemoryStore) Set(eventID int, field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key{eventID, field}] = value
}

// Delete removes (eventID, field).
func (s *MemoryStore) Delete(eventID int, field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key{eventID, field})
}

// Fields lists the fields stored for one event.
func (s *MemoryStore) Fields(eventID int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var fields []string
	for k := range s.values {
		if k.eventID == eventID {
			fields = append(fields, k.field)
		}
	}
	return fields
}

// Snapshot copies the store's current contents under a fresh id, giving
// save-slot semantics on top of last-write-wins fields.
type Snapshot struct {
	ID     string
	Values map[int]map[string]string
}

// Snapshot captures the current contents.
func (s *MemoryStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		ID:     uuid.NewString(),
		Values: make(map[int]map[string]string),
	}
	for k, v := range s.values {
		fields, ok := snap.Values[k.eventID]
		if !ok {
			fields = make(map[string]string)
			snap.Values[k.eventID] = fields
		}
		fields[k.field] = v
	}
	return snap
}

// Restore replaces the store's contents with a snapshot's.
func (s *MemoryStore) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[key]string)
	for eventID, fields := range snap.Values {
		for field, value := range fields {
			s.values[key{eventID, field}] = value
		}
	}
}
