package bytetape

import (
	"bytetape/internal/errors"
)

// normalizeSlice applies host-standard slice normalization: negative
// bounds count from the end, both are clamped to the valid window for
// the sign of step, and a zero step is invalid
func normalizeSlice(start, stop, step, n int) (int, int, int, error) {
	if step == 0 {
		return 0, 0, 0, errors.NewInvalidArgument("strs.slice", "slice step cannot be zero")
	}
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if step > 0 {
		if start < 0 {
			start = 0
		}
		if start > n {
			start = n
		}
		if stop < 0 {
			stop = 0
		}
		if stop > n {
			stop = n
		}
	} else {
		if start < 0 {
			start = -1
		}
		if start >= n {
			start = n - 1
		}
		if stop < 0 {
			stop = -1
		}
		if stop >= n {
			stop = n - 1
		}
	}
	return start, stop, step, nil
}

func sliceCount(start, stop, step int) int {
	if step > 0 {
		if stop <= start {
			return 0
		}
		return (stop-start-1)/step + 1
	}
	if stop >= start {
		return 0
	}
	return (start-stop-1)/(-step) + 1
}

// Slice returns the sub-collection selected by [start, stop, step).
// The output layout follows the input layout: step-1 slices keep
// tape-ness (owned tapes hand out views parented on themselves), any
// other step collects fragmented spans, and an empty selection is
// always fragmented with zero spans.
func (s *Strs) Slice(start, stop, step int) (*Strs, error) {
	n := s.lay.count()
	start, stop, step, err := normalizeSlice(start, stop, step, n)
	if err != nil {
		return nil, err
	}
	count := sliceCount(start, stop, step)
	if count == 0 {
		return NewStrs(), nil
	}
	if step != 1 {
		spans := make([][]byte, 0, count)
		for i := start; len(spans) < count; i += step {
			spans = append(spans, s.lay.item(i))
		}
		return &Strs{lay: &fragmented{spans: spans, parent: s.lay.owner().Retain()}}, nil
	}
	switch lay := s.lay.(type) {
	case *tapeView[uint32]:
		return &Strs{lay: &tapeView[uint32]{
			data: lay.data, offs: lay.offs[start : stop+1], parent: lay.parent.Retain(),
		}}, nil
	case *tapeView[uint64]:
		return &Strs{lay: &tapeView[uint64]{
			data: lay.data, offs: lay.offs[start : stop+1], parent: lay.parent.Retain(),
		}}, nil
	case *tapeOwned[uint32]:
		return &Strs{lay: &tapeView[uint32]{
			data: lay.data, offs: lay.offs[start : stop+1], parent: lay.self.Retain(),
		}}, nil
	case *tapeOwned[uint64]:
		return &Strs{lay: &tapeView[uint64]{
			data: lay.data, offs: lay.offs[start : stop+1], parent: lay.self.Retain(),
		}}, nil
	case *fragmented:
		spans := make([][]byte, stop-start)
		copy(spans, lay.spans[start:stop])
		return &Strs{lay: &fragmented{spans: spans, parent: lay.parent.Retain(), al: lay.al}}, nil
	}
	return nil, errors.NewLayout("strs.slice", s.lay)
}

// Head returns the first n elements (layout rules as Slice)
func (s *Strs) Head(n int) (*Strs, error) {
	return s.Slice(0, n, 1)
}

// Tail returns the last n elements (layout rules as Slice)
func (s *Strs) Tail(n int) (*Strs, error) {
	if n >= s.lay.count() {
		return s.Slice(0, s.lay.count(), 1)
	}
	return s.Slice(s.lay.count()-n, s.lay.count(), 1)
}
