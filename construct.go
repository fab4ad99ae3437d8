package bytetape

import (
	"bytetape/internal/alloc"
	"bytetape/internal/errors"
)

// Mode selects between borrowing source memory and copying it
type Mode int

const (
	// View borrows the source bytes; the result keeps the source alive
	View Mode = iota
	// Copy materializes the bytes into an owned tape
	Copy
)

// FromStrings builds a collection from an ordered run of strings.
// View mode produces a fragmented layout aliasing the inputs; Copy mode
// packs them into an owned tape under the default allocator.
func FromStrings(items []string, mode Mode) (*Strs, error) {
	return FromStringsAlloc(items, mode, alloc.Default())
}

// FromStringsAlloc is FromStrings under a caller-chosen allocator
func FromStringsAlloc(items []string, mode Mode, al alloc.Allocator) (*Strs, error) {
	if mode == View {
		spans := make([][]byte, len(items))
		for i, item := range items {
			spans[i] = stringBytes(item)
		}
		return &Strs{lay: &fragmented{spans: spans, al: al}}, nil
	}
	return buildOwnedTape(len(items), func(i int) []byte { return stringBytes(items[i]) }, al)
}

// FromBytes builds a collection from an ordered run of byte slices,
// with the same mode semantics as FromStrings
func FromBytes(items [][]byte, mode Mode) (*Strs, error) {
	return FromBytesAlloc(items, mode, alloc.Default())
}

// FromBytesAlloc is FromBytes under a caller-chosen allocator
func FromBytesAlloc(items [][]byte, mode Mode, al alloc.Allocator) (*Strs, error) {
	if mode == View {
		spans := make([][]byte, len(items))
		copy(spans, items)
		return &Strs{lay: &fragmented{spans: spans, al: al}}, nil
	}
	return buildOwnedTape(len(items), func(i int) []byte { return items[i] }, al)
}

// FromIter consumes a one-shot pull iterator. View mode is rejected:
// element references cannot be retained safely once the producer moves
// on. Copy mode grows an owned tape incrementally, promoting 32-bit
// offsets to 64-bit when total bytes reach 2^32.
func FromIter(next func() ([]byte, bool), mode Mode) (*Strs, error) {
	return FromIterAlloc(next, mode, alloc.Default())
}

// FromIterAlloc is FromIter under a caller-chosen allocator
func FromIterAlloc(next func() ([]byte, bool), mode Mode, al alloc.Allocator) (*Strs, error) {
	if mode == View {
		return nil, errors.NewUnsupported("strs.from_iter",
			"view mode over a one-shot iterator cannot retain element references")
	}
	b := tapeBuilder{al: al}
	for {
		item, ok := next()
		if !ok {
			break
		}
		if err := b.append(item); err != nil {
			b.discard()
			return nil, err
		}
	}
	return b.finish()
}

// buildOwnedTape packs n random-access items into a single owned tape,
// choosing the offset width from the total byte count
func buildOwnedTape(n int, itemAt func(i int) []byte, al alloc.Allocator) (*Strs, error) {
	if n == 0 {
		return NewStrs(), nil
	}
	var total uint64
	for i := 0; i < n; i++ {
		total += uint64(len(itemAt(i)))
	}
	data, err := al.Alloc(int(total))
	if err != nil {
		return nil, err
	}
	if total >= u64Threshold {
		offs := make([]uint64, n+1)
		fillTape(data, offs, n, itemAt)
		return &Strs{lay: newTapeOwned(data, offs, al)}, nil
	}
	offs := make([]uint32, n+1)
	fillTape(data, offs, n, itemAt)
	return &Strs{lay: newTapeOwned(data, offs, al)}, nil
}

func fillTape[O offsetWidth](data []byte, offs []O, n int, itemAt func(i int) []byte) {
	at := 0
	for i := 0; i < n; i++ {
		at += copy(data[at:], itemAt(i))
		offs[i+1] = O(at)
	}
}

// tapeBuilder grows an owned tape by doubling as items stream in
type tapeBuilder struct {
	al   alloc.Allocator
	data []byte
	used int
	offs []uint64
}

func (b *tapeBuilder) append(item []byte) error {
	if b.offs == nil {
		b.offs = append(b.offs, 0)
	}
	if need := b.used + len(item); need > len(b.data) {
		size := len(b.data) * 2
		if size < 64 {
			size = 64
		}
		for size < need {
			size *= 2
		}
		grown, err := b.al.Alloc(size)
		if err != nil {
			return err
		}
		copy(grown, b.data[:b.used])
		b.al.Free(b.data)
		b.data = grown
	}
	b.used += copy(b.data[b.used:], item)
	b.offs = append(b.offs, uint64(b.used))
	return nil
}

func (b *tapeBuilder) discard() {
	b.al.Free(b.data)
	b.data = nil
	b.offs = nil
}

func (b *tapeBuilder) finish() (*Strs, error) {
	n := 0
	if len(b.offs) > 0 {
		n = len(b.offs) - 1
	}
	if n == 0 {
		b.discard()
		return NewStrs(), nil
	}
	// shrink to fit so the owned buffer matches the content exactly
	data, err := b.al.Alloc(b.used)
	if err != nil {
		b.discard()
		return nil, err
	}
	copy(data, b.data[:b.used])
	b.al.Free(b.data)
	if uint64(b.used) >= u64Threshold {
		return &Strs{lay: newTapeOwned(data, b.offs, b.al)}, nil
	}
	narrow := make([]uint32, len(b.offs))
	for i, o := range b.offs {
		narrow[i] = uint32(o)
	}
	return &Strs{lay: newTapeOwned(data, narrow, b.al)}, nil
}
