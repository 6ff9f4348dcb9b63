package orbitstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lhagemann/symred/pkg/observability"
	"github.com/lhagemann/symred/pkg/task"
)

// FileStore persists records as a JSON file per batch under a directory.
// The file is rewritten on every insert; batches are expected to be small
// relative to the cost of canonicalization.
type FileStore struct {
	path    string
	records []Record
	index   map[string]int
	closed  bool
}

type fileStoreState struct {
	Records []Record `json:"records"`
}

// NewFileStore opens (or creates) the store for one batch in dir.
func NewFileStore(dir, batchID string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	s := &FileStore{
		path:  filepath.Join(dir, batchID+".json"),
		index: make(map[string]int),
	}

	data, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
		return s, nil
	case err != nil:
		return nil, err
	}

	var state fileStoreState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	s.records = state.Records
	for _, r := range s.records {
		s.index[task.Mapping(r.Mapping).Key()] = r.Index
	}
	return s, nil
}

// Lookup implements Store.
func (s *FileStore) Lookup(_ context.Context, m task.Mapping) (int, bool, error) {
	if s.closed {
		return 0, false, ErrClosed
	}
	idx, ok := s.index[m.Key()]
	if ok {
		observability.Store().OnStoreHit("file")
	} else {
		observability.Store().OnStoreMiss("file")
	}
	return idx, ok, nil
}

// Insert implements Store.
func (s *FileStore) Insert(ctx context.Context, m task.Mapping) (int, bool, error) {
	if s.closed {
		return 0, false, ErrClosed
	}
	if idx, ok := s.index[m.Key()]; ok {
		return idx, false, nil
	}

	idx := len(s.records)
	s.records = append(s.records, Record{Index: idx, Mapping: m.Clone()})
	s.index[m.Key()] = idx
	if err := s.flush(); err != nil {
		return 0, false, err
	}
	observability.Store().OnStoreInsert("file")
	return idx, true, nil
}

// List implements Store.
func (s *FileStore) List(context.Context) ([]Record, error) {
	if s.closed {
		return nil, ErrClosed
	}
	return append([]Record(nil), s.records...), nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	s.closed = true
	return nil
}

func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(fileStoreState{Records: s.records}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

var _ Store = (*FileStore)(nil)
