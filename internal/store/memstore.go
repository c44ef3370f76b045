package store

import (
	"context"
	"sync"
	"sync/atomic"
)

// MemStore is an ephemeral, thread-safe Store backed by sync.Map. It also
// counts commits per node so tests can assert the at-most-one-commit-per-
// frame guarantee.
type MemStore struct {
	activation sync.Map // node id -> bool
	commits    sync.Map // node id -> *atomic.Int64
	batches    atomic.Int64
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// ApplyActivation implements Store.
func (s *MemStore) ApplyActivation(_ context.Context, batch map[string]bool) error {
	if len(batch) == 0 {
		return nil
	}
	s.batches.Add(1)
	for id, active := range batch {
		s.activation.Store(id, active)
		counter, _ := s.commits.LoadOrStore(id, &atomic.Int64{})
		counter.(*atomic.Int64).Add(1)
	}
	return nil
}

// Activation implements Store.
func (s *MemStore) Activation(_ context.Context, id string) (bool, bool) {
	v, ok := s.activation.Load(id)
	if !ok {
		return false, false
	}
	return v.(bool), true
}

// Snapshot implements Store.
func (s *MemStore) Snapshot(_ context.Context) map[string]bool {
	out := make(map[string]bool)
	s.activation.Range(func(k, v any) bool {
		out[k.(string)] = v.(bool)
		return true
	})
	return out
}

// Batches reports how many non-empty batches have been applied.
func (s *MemStore) Batches() int64 {
	return s.batches.Load()
}

// CommitsFor reports how many times a node's activation has been committed.
func (s *MemStore) CommitsFor(id string) int64 {
	counter, ok := s.commits.Load(id)
	if !ok {
		return 0
	}
	return counter.(*atomic.Int64).Load()
}
