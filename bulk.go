package bytetape

import (
	"math/rand"
	"time"

	"bytetape/internal/errors"
	"bytetape/internal/kernel"
)

// ClockSeed derives a shuffle/sample seed from the wall clock
func ClockSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// Argsort returns the stable permutation that would sort the
// collection in lexicographic byte order; reverse flips the
// permutation. The receiver is not reordered.
func (s *Strs) Argsort(reverse bool) []int {
	order := kernel.Argsort(argsortSeq{lay: s.lay})
	if reverse {
		for l, r := 0, len(order)-1; l < r; l, r = l+1, r-1 {
			order[l], order[r] = order[r], order[l]
		}
	}
	return order
}

// Sorted returns a fragmented copy ordered by Argsort
func (s *Strs) Sorted(reverse bool) *Strs {
	order := s.Argsort(reverse)
	spans := make([][]byte, len(order))
	for i, from := range order {
		spans[i] = s.lay.item(from)
	}
	return &Strs{lay: &fragmented{spans: spans, parent: s.lay.owner().Retain()}}
}

// Shuffled returns a fragmented copy in Fisher-Yates order under the
// given 64-bit seed; pass ClockSeed() for a clock-derived default
func (s *Strs) Shuffled(seed uint64) *Strs {
	n := s.lay.count()
	spans := make([][]byte, n)
	for i := range spans {
		spans[i] = s.lay.item(i)
	}
	rng := rand.New(rand.NewSource(int64(seed)))
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		spans[i], spans[j] = spans[j], spans[i]
	}
	return &Strs{lay: &fragmented{spans: spans, parent: s.lay.owner().Retain()}}
}

// Sample draws n elements uniformly with replacement (duplicates are
// possible; callers needing unique draws must deduplicate) and returns
// them as a fragmented collection
func (s *Strs) Sample(n int, seed uint64) (*Strs, error) {
	if n < 0 {
		return nil, errors.NewInvalidArgument("strs.sample", "sample size %d below zero", n)
	}
	if n == 0 {
		return NewStrs(), nil
	}
	count := s.lay.count()
	if count == 0 {
		return nil, errors.NewInvalidArgument("strs.sample", "cannot sample from an empty collection")
	}
	rng := rand.New(rand.NewSource(int64(seed)))
	spans := make([][]byte, n)
	for i := range spans {
		spans[i] = s.lay.item(rng.Intn(count))
	}
	return &Strs{lay: &fragmented{spans: spans, parent: s.lay.owner().Retain()}}, nil
}
