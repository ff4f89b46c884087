package store

import (
	"fmt"
	"sort"
	"sync"
	"testing"
)

func TestMemoryStoreLastWriteWins(t *testing.T) {
	s := NewMemoryStore()

	s.Set(1, "result", "first")
	s.Set(1, "result", "second")

	v, ok := s.Get(1, "result")
	if !ok || v != "second" {
		t.Errorf("Get() = %q, %v; expected second", v, ok)
	}
}

func TestMemoryStoreKeysAreScopedByEvent(t *testing.T) {
	s := NewMemoryStore()

	s.Set(1, "result", "event one")
	s.Set(2, "result", "event two")

	if v, _ := s.Get(1, "result"); v != "event one" {
		t.Errorf("event 1 value = %q", v)
	}
	if v, _ := s.Get(2, "result"); v != "event two" {
		t.Errorf("event 2 value = %q", v)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	s.Set(1, "result", "value")
	s.Delete(1, "result")

	if _, ok := s.Get(1, "result"); ok {
		t.Errorf("deleted field still present")
	}
}

func TestMemoryStoreFields(t *testing.T) {
	s := NewMemoryStore()
	s.Set(1, "result", "a")
	s.Set(1, "plan", "b")
	s.Set(2, "result", "c")

	fields := s.Fields(1)
	sort.Strings(fields)
	if len(fields) != 2 || fields[0] != "plan" || fields[1] != "result" {
		t.Errorf("Fields(1) = %v", fields)
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := NewMemoryStore()
	s.Set(1, "result", "kept")
	snap := s.Snapshot()

	if snap.ID == "" {
		t.Errorf("snapshot id is empty")
	}

	s.Set(1, "result", "overwritten")
	s.Set(2, "extra", "new")
	s.Restore(snap)

	if v, _ := s.Get(1, "result"); v != "kept" {
		t.Errorf("restored value = %q, expected kept", v)
	}
	if _, ok := s.Get(2, "extra"); ok {
		t.Errorf("post-snapshot field survived the restore")
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	s := NewMemoryStore()
	s.Set(1, "result", "original")
	snap := s.Snapshot()

	s.Set(1, "result", "changed")
	if snap.Values[1]["result"] != "original" {
		t.Errorf("snapshot mutated by later writes")
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Set(n, "field", fmt.Sprintf("%d", j))
				s.Get(n, "field")
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		if v, ok := s.Get(i, "field"); !ok || v != "99" {
			t.Errorf("event %d final value = %q, %v", i, v, ok)
		}
	}
}
