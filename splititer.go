package bytetape

import (
	"bytetape/internal/kernel"
)

// SplitIterator yields split parts one view at a time. It is a finite
// state machine with two states: active, where each step consumes one
// separator match and shrinks the remaining window, and terminal,
// entered when no match remains or the budget is spent, where the
// remaining window is yielded once as the tail. The iterator retains
// the haystack's owner until Release.
type SplitIterator struct {
	text        []byte
	cfg         splitConfig
	budget      int
	reachedTail bool
	parent      *Parent
}

func newSplitIterator(h *Str, cfg splitConfig, op string) (*SplitIterator, error) {
	if err := cfg.validate(op); err != nil {
		return nil, err
	}
	return &SplitIterator{
		text:   h.data,
		cfg:    cfg,
		budget: cfg.maxSplits,
		parent: h.owner().Retain(),
	}, nil
}

// NewSplitIterator lazily splits at occurrences of sep, left to right
func NewSplitIterator(h *Str, sep []byte, maxSplits int, keep bool) (*SplitIterator, error) {
	return newSplitIterator(h, splitConfig{sep: sep, keep: keep, maxSplits: maxSplits}, "split_iter")
}

// NewRSplitIterator lazily splits at occurrences of sep, right to
// left; parts are yielded last-first
func NewRSplitIterator(h *Str, sep []byte, maxSplits int, keep bool) (*SplitIterator, error) {
	return newSplitIterator(h, splitConfig{
		sep: sep, reverse: true, keep: keep, maxSplits: maxSplits,
	}, "rsplit_iter")
}

// NewSplitAnyIterator lazily splits at bytes drawn from set
func NewSplitAnyIterator(h *Str, set []byte, maxSplits int, keep bool) (*SplitIterator, error) {
	return newSplitIterator(h, splitConfig{
		set: kernel.MakeByteSet(set), isByteSet: true, keep: keep, maxSplits: maxSplits,
	}, "split_any_iter")
}

// NewRSplitAnyIterator lazily splits at bytes drawn from set, right to left
func NewRSplitAnyIterator(h *Str, set []byte, maxSplits int, keep bool) (*SplitIterator, error) {
	return newSplitIterator(h, splitConfig{
		set: kernel.MakeByteSet(set), isByteSet: true, reverse: true, keep: keep, maxSplits: maxSplits,
	}, "rsplit_any_iter")
}

// Next yields the next part. The second result is false once the
// iterator is exhausted; after the tail is yielded no further parts
// follow.
func (it *SplitIterator) Next() (*Str, bool) {
	if it.reachedTail {
		return nil, false
	}
	if it.budget != 0 {
		if i, m := it.cfg.findMatch(it.text); i >= 0 {
			var part []byte
			if it.cfg.reverse {
				start := i + m
				if it.cfg.keep {
					start = i
				}
				part = it.text[start:]
				it.text = it.text[:i]
			} else {
				end := i
				if it.cfg.keep {
					end = i + m
				}
				part = it.text[:end]
				it.text = it.text[i+m:]
			}
			if it.budget > 0 {
				it.budget--
			}
			return wrapBytes(part, it.parent.Retain()), true
		}
	}
	it.reachedTail = true
	tail := it.text
	it.text = nil
	return wrapBytes(tail, it.parent.Retain()), true
}

// Collect drains the iterator into a fragmented collection
func (it *SplitIterator) Collect() *Strs {
	spans := make([][]byte, 0, 8)
	for {
		part, ok := it.Next()
		if !ok {
			break
		}
		spans = append(spans, part.data)
		part.Release()
	}
	if it.cfg.reverse {
		for l, r := 0, len(spans)-1; l < r; l, r = l+1, r-1 {
			spans[l], spans[r] = spans[r], spans[l]
		}
	}
	return &Strs{lay: &fragmented{spans: spans, parent: it.parent.Retain()}}
}

// Release drops the iterator's reference on the haystack owner
func (it *SplitIterator) Release() {
	it.parent.Release()
	it.parent = nil
	it.reachedTail = true
	it.text = nil
}
