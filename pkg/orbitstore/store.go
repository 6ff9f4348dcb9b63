// Package orbitstore persists canonical orbit representatives across runs.
//
// A Store maps task mappings to stable orbit indices, like task.Orbits,
// but behind a backend boundary so repeated canonicalization batches can
// share results. Backends:
//   - memory: in-process, for tests and one-shot runs
//   - file: JSON file, for CLI usage
//   - redis: shared cache for repeated runs on one data set
//   - mongo: durable store for large experiment campaigns
//
// Stores are namespaced by a batch identifier so unrelated architectures
// do not mix indices. The core algorithms never consult a Store; only the
// driver does, seeding and draining an in-process task.Orbits.
package orbitstore

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/lhagemann/symred/pkg/task"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("orbit store closed")

// Record is one persisted representative with its stable orbit index.
type Record struct {
	Index   int   `json:"index" bson:"index"`
	Mapping []int `json:"mapping" bson:"mapping"`
}

// Store persists orbit representatives under stable indices.
// Implementations are not safe for concurrent use.
type Store interface {
	// Lookup returns the index of a representative equal to m, if stored.
	Lookup(ctx context.Context, m task.Mapping) (int, bool, error)

	// Insert stores m if new and returns its index together with whether
	// the insertion happened.
	Insert(ctx context.Context, m task.Mapping) (int, bool, error)

	// List returns all records in index order.
	List(ctx context.Context) ([]Record, error)

	// Close releases backend resources.
	Close() error
}

// NewBatchID returns a fresh identifier namespacing one canonicalization
// batch in a shared backend.
func NewBatchID() string { return uuid.NewString() }

// Seed copies all records of the store into an in-process orbit registry,
// in index order.
func Seed(ctx context.Context, store Store, orbits *task.Orbits) error {
	records, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, r := range records {
		orbits.Insert(task.Mapping(r.Mapping))
	}
	return nil
}

// Drain writes every representative of the registry into the store.
func Drain(ctx context.Context, store Store, orbits *task.Orbits) error {
	var err error
	orbits.Each(func(_ int, m task.Mapping) {
		if err != nil {
			return
		}
		_, _, err = store.Insert(ctx, m)
	})
	return err
}
