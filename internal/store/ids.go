package store

import "sync/atomic"

// IDAllocator issues strictly increasing record identities. Issued values are
// never handed out again, including after the record is deleted.
type IDAllocator struct {
	last atomic.Int64
}

// NewIDAllocator returns an allocator whose first identity is floor+1.
func NewIDAllocator(floor int64) *IDAllocator {
	a := &IDAllocator{}
	a.last.Store(floor)
	return a
}

// Next returns the next identity. It is safe for concurrent use.
func (a *IDAllocator) Next() int64 {
	return a.last.Add(1)
}

// Peek returns the most recently issued identity, or the floor if none has
// been issued yet.
func (a *IDAllocator) Peek() int64 {
	return a.last.Load()
}
