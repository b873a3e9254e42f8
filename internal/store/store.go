// Package store defines the record-store contract shared by every catalog
// resource and its in-memory implementation.
package store

import (
	"context"
	"errors"

	"git.cscs.ch/openchami/chamicore-catalog/internal/query"
)

// Sentinel errors returned by Store implementations.
var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when two records claim the same identity.
	ErrConflict = errors.New("conflict")

	// ErrInvalidID is returned when a seeded record carries an identity the
	// allocator could never have issued.
	ErrInvalidID = errors.New("invalid id")
)

// Record is implemented by every value a Store can hold. WithRecordID returns
// a copy of the record carrying id; it never modifies the receiver.
type Record[T any] interface {
	RecordID() int64
	WithRecordID(id int64) T
}

// Store is the persistence interface for one resource collection. All methods
// accept a context.Context as the first parameter.
type Store[T Record[T]] interface {
	// Create stores rec under a freshly allocated identity, ignoring any
	// identity the caller supplied, and returns the stored value.
	Create(ctx context.Context, rec T) T

	// Get returns the record with the given identity.
	Get(ctx context.Context, id int64) (T, error)

	// List returns every record in insertion order. The slice is never nil.
	List(ctx context.Context) []T

	// Find returns the records matching every predicate, in insertion order.
	Find(ctx context.Context, preds ...query.Predicate[T]) []T

	// FindFirst returns the earliest inserted record matching every predicate.
	FindFirst(ctx context.Context, preds ...query.Predicate[T]) (T, error)

	// Update overwrites every attribute of the record except its identity.
	Update(ctx context.Context, id int64, rec T) (T, error)

	// Mutate applies fn to the stored record and stores the result. The
	// identity is preserved whatever fn returns.
	Mutate(ctx context.Context, id int64, fn func(T) T) (T, error)

	// Delete removes the record. Removing an absent record returns ErrNotFound.
	Delete(ctx context.Context, id int64) error

	// Len returns the number of stored records.
	Len(ctx context.Context) int
}

// Observer receives one notification per store operation. Implementations
// must be safe for concurrent use.
type Observer interface {
	ObserveOperation(op string, err error)
	ObserveSize(n int)
}

// Option configures a Memory store.
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver attaches an Observer to the store.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}
