package alloc

import (
	"sync"
	"unsafe"

	"github.com/google/uuid"

	"bytetape/internal/errors"
)

const (
	arenaMinBlock = 4096
	arenaAlign    = 8
)

// Arena is a monotonic bump allocator that grows by doubling. Free is
// a no-op; Reset reclaims everything at once. Not safe for concurrent
// use by multiple goroutines.
type Arena struct {
	id     uuid.UUID
	blocks [][]byte
	head   []byte
	used   int
	next   int
}

// NewArena creates an empty arena with its own identity
func NewArena() *Arena {
	return &Arena{id: uuid.New(), next: arenaMinBlock}
}

// ID implements Allocator
func (a *Arena) ID() uuid.UUID {
	return a.id
}

// Alloc implements Allocator
func (a *Arena) Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.NewInvalidArgument("arena", "negative size %d", n)
	}
	// keep every carve 8-aligned so typed scratch views stay valid
	a.used = (a.used + arenaAlign - 1) &^ (arenaAlign - 1)
	if a.used+n > len(a.head) {
		size := a.next
		for size < n {
			size *= 2
		}
		a.head = make([]byte, size)
		a.used = 0
		a.blocks = append(a.blocks, a.head)
		a.next = size * 2
	}
	buf := a.head[a.used : a.used+n : a.used+n]
	a.used += n
	// blocks survive Reset, so hand out zeroed memory explicitly
	for i := range buf {
		buf[i] = 0
	}
	return buf, nil
}

// Free implements Allocator; individual frees are no-ops
func (a *Arena) Free(buf []byte) {}

// AllocInts carves zeroed int scratch out of the arena, for kernels
// that need temporary index storage
func (a *Arena) AllocInts(n int) ([]int, error) {
	buf, err := a.Alloc(n * int(unsafe.Sizeof(int(0))))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return unsafe.Slice((*int)(unsafe.Pointer(&buf[0])), n), nil
}

// Reset drops all but the newest block and rewinds it
func (a *Arena) Reset() {
	if len(a.blocks) > 1 {
		a.blocks = a.blocks[len(a.blocks)-1:]
	}
	a.used = 0
}

// scratchPool recycles arenas across kernel calls, one per caller at a
// time; concurrent callers each draw their own
var scratchPool = sync.Pool{
	New: func() interface{} {
		return NewArena()
	},
}

// Scratch draws a reusable arena for temporary kernel storage
func Scratch() *Arena {
	return scratchPool.Get().(*Arena)
}

// Recycle resets an arena and returns it to the pool
func Recycle(a *Arena) {
	a.Reset()
	scratchPool.Put(a)
}
