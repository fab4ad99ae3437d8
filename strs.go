package bytetape

import (
	"math"

	"bytetape/internal/alloc"
	"bytetape/internal/errors"
	"bytetape/internal/kernel"
)

// offsetWidth constrains the two tape offset encodings
type offsetWidth interface {
	uint32 | uint64
}

// u64Threshold is the total byte count at which tapes switch from
// 32-bit to 64-bit offsets
const u64Threshold = uint64(math.MaxUint32) + 1

// layout is the closed set of internal representations behind Strs.
// Exactly one variant is active per container; public operations
// type-switch on the concrete variant and never expose it.
type layout interface {
	count() int
	item(i int) []byte
	owner() *Parent
	name() string
	release()
}

// tapeOwned is a contiguous data buffer drawn from the recorded
// allocator plus count+1 non-decreasing offsets. The offsets are an
// ordinary Go slice that the allocator does not track or free. The self
// parent keeps the buffers alive for views derived from this container.
type tapeOwned[O offsetWidth] struct {
	data []byte
	offs []O
	al   alloc.Allocator
	self *Parent
}

func newTapeOwned[O offsetWidth](data []byte, offs []O, al alloc.Allocator) *tapeOwned[O] {
	t := &tapeOwned[O]{data: data, offs: offs, al: al}
	t.self = newParent(data, func() {
		al.Free(t.data)
		t.data = nil
		t.offs = nil
	})
	return t
}

func (t *tapeOwned[O]) count() int {
	if len(t.offs) == 0 {
		return 0
	}
	return len(t.offs) - 1
}

func (t *tapeOwned[O]) item(i int) []byte {
	return t.data[t.offs[i]:t.offs[i+1]]
}

func (t *tapeOwned[O]) owner() *Parent { return t.self }

func (t *tapeOwned[O]) name() string {
	if isWide[O]() {
		return "u64-tape-owned"
	}
	return "u32-tape-owned"
}

func (t *tapeOwned[O]) release() { t.self.Release() }

// tapeView is the same shape with data and offsets borrowed from a
// retained parent
type tapeView[O offsetWidth] struct {
	data   []byte
	offs   []O
	parent *Parent
}

func (t *tapeView[O]) count() int {
	if len(t.offs) == 0 {
		return 0
	}
	return len(t.offs) - 1
}

// item indexes with absolute offsets: data always spans the parent's
// whole tape, so slicing only narrows the offsets window
func (t *tapeView[O]) item(i int) []byte {
	return t.data[t.offs[i]:t.offs[i+1]]
}

func (t *tapeView[O]) owner() *Parent { return t.parent }

func (t *tapeView[O]) name() string {
	if isWide[O]() {
		return "u64-tape-view"
	}
	return "u32-tape-view"
}

func (t *tapeView[O]) release() { t.parent.Release() }

// fragmented holds one independent span per string; spans may alias or
// overlap and imply no memory ordering
type fragmented struct {
	spans  [][]byte
	parent *Parent
	al     alloc.Allocator
}

func (f *fragmented) count() int        { return len(f.spans) }
func (f *fragmented) item(i int) []byte { return f.spans[i] }
func (f *fragmented) owner() *Parent    { return f.parent }
func (f *fragmented) name() string      { return "fragmented" }
func (f *fragmented) release()          { f.parent.Release() }

func isWide[O offsetWidth]() bool {
	var o O
	return uint64(^o) > math.MaxUint32
}

// Strs is an immutable sequence of byte strings under one of five
// internal layouts: owned tapes with 32- or 64-bit offsets, borrowed
// tape views, or fragmented span arrays. Element bytes never change.
// Relocate and Release replace the receiver's layout; every other
// operation leaves the receiver as it is and preserves or converts the
// layout of its result per documented rules.
type Strs struct {
	lay layout
}

// NewStrs returns an empty collection (fragmented, zero spans)
func NewStrs() *Strs {
	return &Strs{lay: &fragmented{}}
}

// Len returns the number of strings
func (s *Strs) Len() int {
	return s.lay.count()
}

// Get returns the i-th string as a view parented on this container's
// owner; negatives count from the end
func (s *Strs) Get(i int) (*Str, error) {
	i, err := normalizeIndex(i, s.lay.count(), "strs.get")
	if err != nil {
		return nil, err
	}
	return wrapBytes(s.lay.item(i), s.lay.owner().Retain()), nil
}

// Each walks items in construction order until fn returns false
func (s *Strs) Each(fn func(i int, item []byte) bool) {
	for i, n := 0, s.lay.count(); i < n; i++ {
		if !fn(i, s.lay.item(i)) {
			return
		}
	}
}

// Contains reports whether any element equals needle byte-for-byte
func (s *Strs) Contains(needle []byte) bool {
	for i, n := 0, s.lay.count(); i < n; i++ {
		item := s.lay.item(i)
		if len(item) == len(needle) && kernel.Equal(item, needle) {
			return true
		}
	}
	return false
}

// Index returns the position of the first element equal to needle
func (s *Strs) Index(needle []byte) (int, error) {
	for i, n := 0, s.lay.count(); i < n; i++ {
		item := s.lay.item(i)
		if len(item) == len(needle) && kernel.Equal(item, needle) {
			return i, nil
		}
	}
	return 0, errors.NewNotFound("strs.index", "element not found")
}

// LayoutName reports the active variant, for diagnostics only
func (s *Strs) LayoutName() string {
	return s.lay.name()
}

// Release drops this container's reference on its owner. The container
// must not be used afterwards.
func (s *Strs) Release() {
	s.lay.release()
	s.lay = &fragmented{}
}

// tapeWindow exposes the contiguous data buffer of tape layouts for
// the parent-buffer adapter; fragmented layouts have none
func (s *Strs) tapeWindow() ([]byte, *Parent, bool) {
	switch lay := s.lay.(type) {
	case *tapeOwned[uint32]:
		return lay.data, lay.self, true
	case *tapeOwned[uint64]:
		return lay.data, lay.self, true
	case *tapeView[uint32]:
		return lay.data, lay.parent, true
	case *tapeView[uint64]:
		return lay.data, lay.parent, true
	}
	return nil, nil, false
}

// totalBytes sums the element lengths of any layout
func (s *Strs) totalBytes() uint64 {
	var total uint64
	for i, n := 0, s.lay.count(); i < n; i++ {
		total += uint64(len(s.lay.item(i)))
	}
	return total
}

// argsortSeq adapts a layout to the kernel sequence contract
type argsortSeq struct {
	lay layout
}

func (a argsortSeq) Count() int      { return a.lay.count() }
func (a argsortSeq) At(i int) []byte { return a.lay.item(i) }
