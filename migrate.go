package bytetape

import (
	"bytetape/internal/alloc"
	"bytetape/internal/errors"
)

// Relocate moves the collection's owned memory under a new allocator.
// Owned tapes are recopied in place of themselves; tape views
// materialize into owned tapes of the same offset width and drop their
// parent; fragmented layouts consolidate into a contiguous tape whose
// offset width follows the total size. A swap to an allocator equal to
// the current one does nothing. On failure the receiver is untouched.
func (s *Strs) Relocate(al alloc.Allocator) error {
	switch lay := s.lay.(type) {
	case *tapeOwned[uint32]:
		return relocateOwned(s, lay, al)
	case *tapeOwned[uint64]:
		return relocateOwned(s, lay, al)
	case *tapeView[uint32]:
		return materializeView(s, lay, al)
	case *tapeView[uint64]:
		return materializeView(s, lay, al)
	case *fragmented:
		return consolidate(s, lay, al)
	}
	return errors.NewLayout("strs.relocate", s.lay)
}

func relocateOwned[O offsetWidth](s *Strs, lay *tapeOwned[O], al alloc.Allocator) error {
	if alloc.Equal(lay.al, al) {
		return nil
	}
	data, err := al.Alloc(len(lay.data))
	if err != nil {
		return err
	}
	copy(data, lay.data)
	offs := make([]O, len(lay.offs))
	copy(offs, lay.offs)
	old := lay.self
	s.lay = newTapeOwned(data, offs, al)
	old.Release()
	return nil
}

func materializeView[O offsetWidth](s *Strs, lay *tapeView[O], al alloc.Allocator) error {
	n := lay.count()
	base := O(0)
	if len(lay.offs) > 0 {
		base = lay.offs[0]
	}
	var total uint64
	if n > 0 {
		total = uint64(lay.offs[n] - base)
	}
	data, err := al.Alloc(int(total))
	if err != nil {
		return err
	}
	offs := make([]O, n+1)
	fillTape(data, offs, n, lay.item)
	old := lay.parent
	s.lay = newTapeOwned(data, offs, al)
	old.Release()
	return nil
}

func consolidate(s *Strs, lay *fragmented, al alloc.Allocator) error {
	if alloc.Equal(lay.al, al) {
		return nil
	}
	n := len(lay.spans)
	var total uint64
	for _, span := range lay.spans {
		total += uint64(len(span))
	}
	itemAt := func(i int) []byte { return lay.spans[i] }
	var next layout
	if total >= u64Threshold {
		data, err := al.Alloc(int(total))
		if err != nil {
			return err
		}
		offs := make([]uint64, n+1)
		fillTape(data, offs, n, itemAt)
		next = newTapeOwned(data, offs, al)
	} else if total == 0 {
		// all-empty content keeps the count with nil data and zeroed offsets
		next = newTapeOwned[uint32](nil, make([]uint32, n+1), al)
	} else {
		data, err := al.Alloc(int(total))
		if err != nil {
			return err
		}
		offs := make([]uint32, n+1)
		fillTape(data, offs, n, itemAt)
		next = newTapeOwned(data, offs, al)
	}
	old := lay.parent
	s.lay = next
	old.Release()
	return nil
}
