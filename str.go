package bytetape

import (
	"bytetape/internal/alloc"
	"bytetape/internal/errors"
	"bytetape/internal/kernel"
)

// Str is an immutable, non-owning view over a byte range. A view either
// references a parent (which it retains) or owns a private heap buffer
// produced by Concat/Translate. Contents never change after
// construction.
type Str struct {
	data   []byte
	parent *Parent
}

// NewStr wraps the full byte range of a string-like parent object
func NewStr(parent interface{}) (*Str, error) {
	data, p, err := ExportStringLike(parent)
	if err != nil {
		return nil, err
	}
	return &Str{data: data, parent: p.Retain()}, nil
}

// NewStrRange wraps a sub-range of a string-like parent. Negative
// bounds count from the end; both are clamped to [0, length] and from
// is clamped up to to.
func NewStrRange(parent interface{}, from, to int) (*Str, error) {
	s, err := NewStr(parent)
	if err != nil {
		return nil, err
	}
	return s.Slice(from, to), nil
}

// wrapBytes builds a view over raw bytes with an already-retained owner
func wrapBytes(data []byte, parent *Parent) *Str {
	return &Str{data: data, parent: parent}
}

// ownedStr builds a view that privately owns its buffer
func ownedStr(data []byte) *Str {
	return &Str{data: data}
}

// Len returns the view's byte count
func (s *Str) Len() int {
	return len(s.data)
}

// Bytes exposes the underlying range for buffer-protocol consumers.
// The slice must be treated as read-only.
func (s *Str) Bytes() []byte {
	return s.data
}

// ByteAt returns the byte value at index i; negatives count from the end
func (s *Str) ByteAt(i int) (byte, error) {
	i, err := normalizeIndex(i, len(s.data), "str.at")
	if err != nil {
		return 0, err
	}
	return s.data[i], nil
}

// At returns the single-byte view at index i
func (s *Str) At(i int) (*Str, error) {
	i, err := normalizeIndex(i, len(s.data), "str.at")
	if err != nil {
		return nil, err
	}
	return wrapBytes(s.data[i:i+1], s.owner().Retain()), nil
}

// Slice returns the clamped half-open sub-view [from, to). Negative
// bounds count from the end. The result references this view's owner.
func (s *Str) Slice(from, to int) *Str {
	from, to = clampRange(from, to, len(s.data))
	return wrapBytes(s.data[from:to], s.owner().Retain())
}

// SliceStep is Slice restricted to step == 1; any other step is
// unsupported because a view cannot describe strided bytes
func (s *Str) SliceStep(from, to, step int) (*Str, error) {
	if step != 1 {
		return nil, errors.NewUnsupported("str.slice", "step %d (only 1 is supported)", step)
	}
	return s.Slice(from, to), nil
}

// owner resolves the parent to record in derived views: the original
// parent when present, otherwise nil (GC-managed or owned buffer kept
// alive by the derived slice itself).
func (s *Str) owner() *Parent {
	return s.parent
}

// Hash mixes the view's bytes into a seeded 64-bit value
func (s *Str) Hash(seed uint64) uint64 {
	return kernel.Hash(s.data, seed)
}

// ByteSum returns the unsigned sum of byte values modulo 2^64
func (s *Str) ByteSum() uint64 {
	return kernel.ByteSum(s.data)
}

// Equal reports byte-identical contents
func (s *Str) Equal(other *Str) bool {
	return other != nil && kernel.Equal(s.data, other.data)
}

// EqualBytes reports byte-identical contents against a raw slice
func (s *Str) EqualBytes(other []byte) bool {
	return kernel.Equal(s.data, other)
}

// Compare orders two views lexicographically, shorter-is-smaller on ties
func (s *Str) Compare(other *Str) int {
	return kernel.Order(s.data, other.data)
}

// Concat allocates a new owned view holding s followed by other
func (s *Str) Concat(other *Str) (*Str, error) {
	return s.ConcatAlloc(other, alloc.Default())
}

// ConcatAlloc is Concat under a caller-chosen allocator
func (s *Str) ConcatAlloc(other *Str, al alloc.Allocator) (*Str, error) {
	buf, err := al.Alloc(len(s.data) + len(other.data))
	if err != nil {
		return nil, err
	}
	n := copy(buf, s.data)
	copy(buf[n:], other.data)
	return ownedStr(buf), nil
}

// Contains reports whether needle occurs in the view
func (s *Str) Contains(needle []byte) bool {
	return kernel.Find(s.data, needle) >= 0
}

// Find returns the offset of the first occurrence of needle, -1 if absent
func (s *Str) Find(needle []byte) int {
	return kernel.Find(s.data, needle)
}

// RFind returns the offset of the last occurrence of needle, -1 if absent
func (s *Str) RFind(needle []byte) int {
	return kernel.RFind(s.data, needle)
}

// Index is Find with a typed NotFound error instead of the -1 sentinel
func (s *Str) Index(needle []byte) (int, error) {
	if i := kernel.Find(s.data, needle); i >= 0 {
		return i, nil
	}
	return 0, errors.NewNotFound("str.index", "needle not found")
}

// Count returns the number of occurrences of needle. Overlapping
// occurrences count when overlap is true; an empty needle counts
// len+1 positions, matching the host convention.
func (s *Str) Count(needle []byte, overlap bool) int {
	if len(needle) == 0 {
		return len(s.data) + 1
	}
	count, at := 0, 0
	step := len(needle)
	if overlap {
		step = 1
	}
	for at <= len(s.data)-len(needle) {
		i := kernel.Find(s.data[at:], needle)
		if i < 0 {
			break
		}
		count++
		at += i + step
	}
	return count
}

// FindFirstOf returns the offset of the first byte drawn from set, -1 if none
func (s *Str) FindFirstOf(set []byte) int {
	bs := kernel.MakeByteSet(set)
	return kernel.FindByteFrom(s.data, &bs)
}

// FindLastOf returns the offset of the last byte drawn from set, -1 if none
func (s *Str) FindLastOf(set []byte) int {
	bs := kernel.MakeByteSet(set)
	return kernel.RFindByteFrom(s.data, &bs)
}

// FindFirstNotOf returns the offset of the first byte outside set, -1 if none
func (s *Str) FindFirstNotOf(set []byte) int {
	bs := kernel.MakeByteSet(set)
	return kernel.FindByteNotFrom(s.data, &bs)
}

// FindLastNotOf returns the offset of the last byte outside set, -1 if none
func (s *Str) FindLastNotOf(set []byte) int {
	bs := kernel.MakeByteSet(set)
	return kernel.RFindByteNotFrom(s.data, &bs)
}

// ValidUTF8 reports whether the view is well-formed UTF-8
func (s *Str) ValidUTF8() bool {
	return kernel.RunesValid(s.data)
}

// Release drops the reference this view holds on its parent. The view
// must not be used afterwards.
func (s *Str) Release() {
	s.parent.Release()
	s.parent = nil
	s.data = nil
}

// normalizeIndex resolves a possibly negative index against count
func normalizeIndex(i, count int, op string) (int, error) {
	orig := i
	if i < 0 {
		i += count
	}
	if i < 0 || i >= count {
		return 0, errors.NewIndexOutOfRange(op, orig, count)
	}
	return i, nil
}

// clampRange resolves negative bounds from the end and clamps both to
// [0, length], with from clamped up to to
func clampRange(from, to, length int) (int, int) {
	if from < 0 {
		from += length
	}
	if to < 0 {
		to += length
	}
	if from < 0 {
		from = 0
	}
	if to < 0 {
		to = 0
	}
	if from > length {
		from = length
	}
	if to > length {
		to = length
	}
	if from > to {
		from = to
	}
	return from, to
}
