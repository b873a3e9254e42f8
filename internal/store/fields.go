package store

import "context"

// Field names one mutable attribute of a record type. Set must return a copy
// of the record with the attribute replaced.
type Field[T any, V any] struct {
	Name string
	Get  func(T) V
	Set  func(T, V) T
}

// Assign returns a mutation that sets f to v.
func Assign[T any, V any](f Field[T, V], v V) func(T) T {
	return func(rec T) T {
		return f.Set(rec, v)
	}
}

// Flip returns a mutation that negates a boolean field.
func Flip[T any](f Field[T, bool]) func(T) T {
	return func(rec T) T {
		return f.Set(rec, !f.Get(rec))
	}
}

// Patch sets a single field on the stored record and returns the result.
func Patch[T Record[T], V any](ctx context.Context, s Store[T], id int64, f Field[T, V], v V) (T, error) {
	return s.Mutate(ctx, id, Assign(f, v))
}

// Toggle negates a boolean field on the stored record. Applying it twice
// restores the original value.
func Toggle[T Record[T]](ctx context.Context, s Store[T], id int64, f Field[T, bool]) (T, error) {
	return s.Mutate(ctx, id, Flip(f))
}
