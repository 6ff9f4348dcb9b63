package orbitstore

import (
	"context"

	"github.com/lhagemann/symred/pkg/observability"
	"github.com/lhagemann/symred/pkg/task"
)

// MemoryStore keeps records in process memory. Intended for tests and
// one-shot runs.
type MemoryStore struct {
	orbits *task.Orbits
	closed bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orbits: task.NewOrbits()}
}

// Lookup implements Store.
func (s *MemoryStore) Lookup(_ context.Context, m task.Mapping) (int, bool, error) {
	if s.closed {
		return 0, false, ErrClosed
	}
	idx, ok := s.orbits.Lookup(m)
	if ok {
		observability.Store().OnStoreHit("memory")
	} else {
		observability.Store().OnStoreMiss("memory")
	}
	return idx, ok, nil
}

// Insert implements Store.
func (s *MemoryStore) Insert(_ context.Context, m task.Mapping) (int, bool, error) {
	if s.closed {
		return 0, false, ErrClosed
	}
	idx, isNew := s.orbits.Insert(m)
	if isNew {
		observability.Store().OnStoreInsert("memory")
	}
	return idx, isNew, nil
}

// List implements Store.
func (s *MemoryStore) List(context.Context) ([]Record, error) {
	if s.closed {
		return nil, ErrClosed
	}
	var res []Record
	s.orbits.Each(func(index int, m task.Mapping) {
		res = append(res, Record{Index: index, Mapping: m})
	})
	return res, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.closed = true
	return nil
}

var _ Store = (*MemoryStore)(nil)
