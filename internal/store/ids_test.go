package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDAllocator_Sequence(t *testing.T) {
	a := NewIDAllocator(6)
	assert.Equal(t, int64(6), a.Peek())
	assert.Equal(t, int64(7), a.Next())
	assert.Equal(t, int64(8), a.Next())
	assert.Equal(t, int64(8), a.Peek())
}

func TestIDAllocator_ConcurrentNextIsUnique(t *testing.T) {
	a := NewIDAllocator(0)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]bool)
	)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := a.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 800)
	assert.Equal(t, int64(800), a.Peek())
}
