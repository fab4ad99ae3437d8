// Package bytetape is a high-throughput byte-string engine: non-owning
// views over foreign buffers, multi-layout string collections with
// zero-copy slicing, eager and lazy splitting, argsort-based ordering,
// shuffling and sampling. Contents are immutable; all derived objects
// keep their owners alive through explicit reference counts.
package bytetape

import (
	"sync/atomic"
	"unsafe"

	"bytetape/internal/errors"
)

// Parent owns a contiguous byte range referenced by one or more views.
// The count starts at one for the creating holder; it reaches zero only
// after every derived view has released it, at which point the optional
// release hook runs (unmapping a file, returning an allocation). A nil
// release hook leaves reclamation to the garbage collector.
type Parent struct {
	data    []byte
	refs    atomic.Int64
	release func()
}

func newParent(data []byte, release func()) *Parent {
	p := &Parent{data: data, release: release}
	p.refs.Store(1)
	return p
}

// Bytes exposes the owned range
func (p *Parent) Bytes() []byte {
	return p.data
}

// Retain adds a reference; nil-safe
func (p *Parent) Retain() *Parent {
	if p != nil {
		p.refs.Add(1)
	}
	return p
}

// Release drops a reference and runs the release hook at zero; nil-safe
func (p *Parent) Release() {
	if p == nil {
		return
	}
	if p.refs.Add(-1) == 0 && p.release != nil {
		p.release()
		p.release = nil
		p.data = nil
	}
}

// Refs reports the current reference count; nil-safe
func (p *Parent) Refs() int64 {
	if p == nil {
		return 0
	}
	return p.refs.Load()
}

// stringBytes aliases a string's backing array without copying. The
// result must never be written through.
func stringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// ByteWindow is satisfied by any object exposing a read-only contiguous
// byte range, e.g. a mapped file
type ByteWindow interface {
	Bytes() []byte
}

// ExportStringLike resolves an arbitrary parent object to its byte
// window and an owner to retain. Accepted: strings, byte slices, *Str,
// *Strs tape layouts, and any ByteWindow (mapped files included). The
// returned parent is nil when the garbage collector alone manages the
// backing memory.
func ExportStringLike(v interface{}) ([]byte, *Parent, error) {
	switch src := v.(type) {
	case nil:
		return nil, nil, nil
	case string:
		return stringBytes(src), nil, nil
	case []byte:
		return src, nil, nil
	case *Str:
		if src == nil {
			return nil, nil, nil
		}
		return src.data, src.parent, nil
	case *Strs:
		if src == nil {
			return nil, nil, nil
		}
		if data, parent, ok := src.tapeWindow(); ok {
			return data, parent, nil
		}
		return nil, nil, errors.NewTypeMismatch("export",
			"fragmented collection has no contiguous byte window")
	case *File:
		if src == nil {
			return nil, nil, nil
		}
		return src.data, src.parent, nil
	case ByteWindow:
		return src.Bytes(), nil, nil
	}
	return nil, nil, errors.NewTypeMismatch("export",
		"cannot export %T as a contiguous byte window", v)
}
