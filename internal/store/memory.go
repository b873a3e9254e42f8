package store

import (
	"context"
	"fmt"
	"sync"

	"git.cscs.ch/openchami/chamicore-catalog/internal/query"
)

// Memory is an in-process Store backed by an ordered slice of record slots.
//
// Writers hold the exclusive lock for the whole read-modify-write; readers
// share the lock and receive copies. Records are plain values, so a copy
// returned to a caller can never observe later mutations of its slot.
type Memory[T Record[T]] struct {
	mu    sync.RWMutex
	ids   *IDAllocator
	slots []T
	index map[int64]int
	obs   Observer
}

// NewMemory creates a store holding seed in the given order. The allocator
// starts above the highest seeded identity. Seeds must carry positive,
// distinct identities.
func NewMemory[T Record[T]](seed []T, opts ...Option) (*Memory[T], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	m := &Memory[T]{
		slots: make([]T, 0, len(seed)),
		index: make(map[int64]int, len(seed)),
		obs:   o.observer,
	}

	var floor int64
	for _, rec := range seed {
		id := rec.RecordID()
		if id <= 0 {
			return nil, fmt.Errorf("seeding record %d: %w", id, ErrInvalidID)
		}
		if _, dup := m.index[id]; dup {
			return nil, fmt.Errorf("seeding record %d: %w", id, ErrConflict)
		}
		m.index[id] = len(m.slots)
		m.slots = append(m.slots, rec)
		floor = max(floor, id)
	}
	m.ids = NewIDAllocator(floor)
	m.observeSize()

	return m, nil
}

// Create implements Store.
func (m *Memory[T]) Create(_ context.Context, rec T) T {
	m.mu.Lock()
	stored := rec.WithRecordID(m.ids.Next())
	m.index[stored.RecordID()] = len(m.slots)
	m.slots = append(m.slots, stored)
	m.observeSize()
	m.mu.Unlock()

	m.observe("create", nil)
	return stored
}

// Get implements Store.
func (m *Memory[T]) Get(_ context.Context, id int64) (T, error) {
	m.mu.RLock()
	i, ok := m.index[id]
	var rec T
	if ok {
		rec = m.slots[i]
	}
	m.mu.RUnlock()

	if !ok {
		err := fmt.Errorf("record %d: %w", id, ErrNotFound)
		m.observe("get", err)
		return rec, err
	}
	m.observe("get", nil)
	return rec, nil
}

// List implements Store.
func (m *Memory[T]) List(_ context.Context) []T {
	m.mu.RLock()
	out := make([]T, len(m.slots))
	copy(out, m.slots)
	m.mu.RUnlock()

	m.observe("list", nil)
	return out
}

// Find implements Store.
func (m *Memory[T]) Find(_ context.Context, preds ...query.Predicate[T]) []T {
	m.mu.RLock()
	out := query.Filter(m.slots, preds...)
	m.mu.RUnlock()

	m.observe("find", nil)
	return out
}

// FindFirst implements Store.
func (m *Memory[T]) FindFirst(_ context.Context, preds ...query.Predicate[T]) (T, error) {
	match := query.All(preds...)

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.slots {
		if match(rec) {
			m.observe("find", nil)
			return rec, nil
		}
	}
	var zero T
	m.observe("find", ErrNotFound)
	return zero, ErrNotFound
}

// Update implements Store.
func (m *Memory[T]) Update(_ context.Context, id int64, rec T) (T, error) {
	return m.mutate("update", id, func(T) T { return rec })
}

// Mutate implements Store.
func (m *Memory[T]) Mutate(_ context.Context, id int64, fn func(T) T) (T, error) {
	return m.mutate("mutate", id, fn)
}

func (m *Memory[T]) mutate(op string, id int64, fn func(T) T) (T, error) {
	m.mu.Lock()
	i, ok := m.index[id]
	if !ok {
		m.mu.Unlock()
		var zero T
		err := fmt.Errorf("record %d: %w", id, ErrNotFound)
		m.observe(op, err)
		return zero, err
	}
	next := fn(m.slots[i]).WithRecordID(id)
	m.slots[i] = next
	m.mu.Unlock()

	m.observe(op, nil)
	return next, nil
}

// Delete implements Store.
func (m *Memory[T]) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	i, ok := m.index[id]
	if !ok {
		m.mu.Unlock()
		err := fmt.Errorf("record %d: %w", id, ErrNotFound)
		m.observe("delete", err)
		return err
	}

	m.slots = append(m.slots[:i], m.slots[i+1:]...)
	delete(m.index, id)
	for j := i; j < len(m.slots); j++ {
		m.index[m.slots[j].RecordID()] = j
	}
	m.observeSize()
	m.mu.Unlock()

	m.observe("delete", nil)
	return nil
}

// Len implements Store.
func (m *Memory[T]) Len(_ context.Context) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.slots)
}

// LastID returns the most recently allocated identity.
func (m *Memory[T]) LastID() int64 {
	return m.ids.Peek()
}

func (m *Memory[T]) observe(op string, err error) {
	if m.obs != nil {
		m.obs.ObserveOperation(op, err)
	}
}

// observeSize reports the slot count. Callers hold the write lock so that
// reports reach the observer in the order the writes happened.
func (m *Memory[T]) observeSize() {
	if m.obs != nil {
		m.obs.ObserveSize(len(m.slots))
	}
}
