package bytetape

import (
	"bytetape/internal/errors"
	"bytetape/internal/kernel"
)

// NoLimit lifts the split budget: every separator occurrence splits
const NoLimit = -1

// lineBreakSet holds the recognized single-byte line terminators. CR
// and LF split independently, so CRLF yields an empty line between
// them; the two-byte Unicode separators are not recognized.
var lineBreakSet = []byte{'\n', '\v', '\f', '\r', 0x85, 0x1C, 0x1D, 0x1E}

// splitConfig drives both the eager engines and the lazy iterator
type splitConfig struct {
	sep       []byte
	set       kernel.ByteSet
	isByteSet bool
	keep      bool
	reverse   bool
	maxSplits int
}

func (c *splitConfig) validate(op string) error {
	if c.maxSplits < NoLimit {
		return errors.NewInvalidArgument(op, "split bound %d below NoLimit (-1)", c.maxSplits)
	}
	if !c.isByteSet && len(c.sep) == 0 {
		return errors.NewInvalidArgument(op, "empty separator")
	}
	if c.isByteSet && c.set.Len() == 0 {
		return errors.NewInvalidArgument(op, "empty byte set")
	}
	return nil
}

// findMatch locates the next separator occurrence in text, returning
// its offset and match length, or (-1, 0)
func (c *splitConfig) findMatch(text []byte) (int, int) {
	if c.isByteSet {
		if c.reverse {
			return kernel.RFindByteFrom(text, &c.set), 1
		}
		return kernel.FindByteFrom(text, &c.set), 1
	}
	if c.reverse {
		if i := kernel.RFind(text, c.sep); i >= 0 {
			return i, len(c.sep)
		}
		return -1, 0
	}
	if i := kernel.Find(text, c.sep); i >= 0 {
		return i, len(c.sep)
	}
	return -1, 0
}

// splitEager walks the haystack and collects spans into a fragmented
// collection parented on the haystack's owner. Reverse walks collect
// right-to-left and are flipped back to forward order afterwards.
func splitEager(h *Str, cfg splitConfig, op string) (*Strs, error) {
	if err := cfg.validate(op); err != nil {
		return nil, err
	}
	text := h.data
	spans := make([][]byte, 0, 8)
	budget := cfg.maxSplits
	for budget != 0 {
		i, m := cfg.findMatch(text)
		if i < 0 {
			break
		}
		if cfg.reverse {
			start := i + m
			if cfg.keep {
				start = i
			}
			spans = append(spans, text[start:])
			text = text[:i]
		} else {
			end := i
			if cfg.keep {
				end = i + m
			}
			spans = append(spans, text[:end])
			text = text[i+m:]
		}
		if budget > 0 {
			budget--
		}
	}
	spans = append(spans, text)
	if cfg.reverse {
		for l, r := 0, len(spans)-1; l < r; l, r = l+1, r-1 {
			spans[l], spans[r] = spans[r], spans[l]
		}
	}
	return &Strs{lay: &fragmented{spans: spans, parent: h.owner().Retain()}}, nil
}

// Split divides the haystack at every occurrence of sep
func Split(h *Str, sep []byte) (*Strs, error) {
	return SplitN(h, sep, NoLimit, false)
}

// SplitN divides at up to maxSplits occurrences of sep, left to right;
// the remainder is the final element. A zero bound returns the whole
// haystack as a single element. keep retains the separator at the end
// of each split piece.
func SplitN(h *Str, sep []byte, maxSplits int, keep bool) (*Strs, error) {
	return splitEager(h, splitConfig{sep: sep, keep: keep, maxSplits: maxSplits}, "split")
}

// RSplit divides at every occurrence of sep, scanning from the end
func RSplit(h *Str, sep []byte) (*Strs, error) {
	return RSplitN(h, sep, NoLimit, false)
}

// RSplitN divides at up to maxSplits occurrences of sep, right to
// left, returning pieces in forward order; keep retains the separator
// at the front of each split-off piece
func RSplitN(h *Str, sep []byte, maxSplits int, keep bool) (*Strs, error) {
	return splitEager(h, splitConfig{sep: sep, reverse: true, keep: keep, maxSplits: maxSplits}, "rsplit")
}

// SplitAny divides the haystack at every byte drawn from set
func SplitAny(h *Str, set []byte) (*Strs, error) {
	return SplitAnyN(h, set, NoLimit, false)
}

// SplitAnyN is SplitN with a one-byte match against a byte set
func SplitAnyN(h *Str, set []byte, maxSplits int, keep bool) (*Strs, error) {
	return splitEager(h, splitConfig{
		set: kernel.MakeByteSet(set), isByteSet: true, keep: keep, maxSplits: maxSplits,
	}, "split_any")
}

// RSplitAny divides at every byte drawn from set, scanning from the end
func RSplitAny(h *Str, set []byte) (*Strs, error) {
	return RSplitAnyN(h, set, NoLimit, false)
}

// RSplitAnyN is RSplitN with a one-byte match against a byte set
func RSplitAnyN(h *Str, set []byte, maxSplits int, keep bool) (*Strs, error) {
	return splitEager(h, splitConfig{
		set: kernel.MakeByteSet(set), isByteSet: true, reverse: true, keep: keep, maxSplits: maxSplits,
	}, "rsplit_any")
}

// SplitLines divides at the recognized single-byte line terminators;
// keepBreaks retains each terminator at the end of its line
func SplitLines(h *Str, keepBreaks bool) (*Strs, error) {
	return splitEager(h, splitConfig{
		set: kernel.MakeByteSet(lineBreakSet), isByteSet: true, keep: keepBreaks, maxSplits: NoLimit,
	}, "splitlines")
}
