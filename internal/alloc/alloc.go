// Package alloc carries the pluggable allocator used by owning string
// containers and kernel scratch space. Allocators are compared by
// identity token, never by callback pointer.
package alloc

import (
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"bytetape/internal/errors"
)

// Allocator hands out and reclaims byte buffers. Implementations must
// tolerate Free of a nil or empty buffer.
type Allocator interface {
	// ID is the allocator's identity token
	ID() uuid.UUID
	// Alloc returns a zeroed buffer of n bytes
	Alloc(n int) ([]byte, error)
	// Free returns a buffer obtained from Alloc
	Free(buf []byte)
}

// Equal reports whether two allocators are the same allocator
func Equal(a, b Allocator) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID() == b.ID()
}

// Heap is the default allocator: a thin wrapper over the Go heap with
// an optional byte budget. A zero Limit means unbounded.
type Heap struct {
	id    uuid.UUID
	Limit uint64

	mu   sync.Mutex
	used uint64
}

var defaultHeap = &Heap{id: uuid.New()}

// Default returns the process-wide heap allocator
func Default() *Heap {
	return defaultHeap
}

// NewHeap creates a budgeted heap allocator with its own identity
func NewHeap(limit uint64) *Heap {
	return &Heap{id: uuid.New(), Limit: limit}
}

// ID implements Allocator
func (h *Heap) ID() uuid.UUID {
	return h.id
}

// Alloc implements Allocator
func (h *Heap) Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.NewInvalidArgument("alloc", "negative size %d", n)
	}
	if h.Limit > 0 {
		h.mu.Lock()
		if h.used+uint64(n) > h.Limit {
			h.mu.Unlock()
			return nil, errors.NewOutOfMemory("alloc",
				"budget exhausted: %s requested, %s of %s in use",
				humanize.Bytes(uint64(n)), humanize.Bytes(h.used), humanize.Bytes(h.Limit))
		}
		h.used += uint64(n)
		h.mu.Unlock()
	}
	return make([]byte, n), nil
}

// Free implements Allocator
func (h *Heap) Free(buf []byte) {
	if h.Limit > 0 && buf != nil {
		h.mu.Lock()
		if uint64(cap(buf)) <= h.used {
			h.used -= uint64(cap(buf))
		} else {
			h.used = 0
		}
		h.mu.Unlock()
	}
}

// InUse reports the bytes currently charged against the budget
func (h *Heap) InUse() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.used
}
