// Package kernel hosts the byte-level primitives behind the public
// string types: substring search, byte-set scans, ordering, hashing,
// table translation, UTF-8 validation and sequence argsort. Primitives
// are bundled into backends selected at runtime, so callers never bind
// to a particular implementation tier.
package kernel

import (
	"os"
	"strings"

	"bytetape/internal/alloc"
)

// Backend bundles one implementation tier of the primitive kernels.
// Every function operates on plain byte ranges and retains no state.
type Backend struct {
	Name string

	Find  func(haystack, needle []byte) int
	RFind func(haystack, needle []byte) int

	FindByteFrom  func(haystack []byte, set *ByteSet) int
	RFindByteFrom func(haystack []byte, set *ByteSet) int

	Equal func(a, b []byte) bool
	Order func(a, b []byte) int

	Hash    func(data []byte, seed uint64) uint64
	ByteSum func(data []byte) uint64

	Lookup func(dst, src []byte, table *[256]byte)

	RunesValid func(data []byte) bool
}

var (
	backends = map[string]*Backend{}
	ranking  []string
	active   *Backend
)

// EnvCapabilities names the environment variable that narrows the
// backend set at process start
const EnvCapabilities = "BYTETAPE_CAPS"

func register(b *Backend) {
	backends[b.Name] = b
	ranking = append(ranking, b.Name)
}

func init() {
	register(newSerialBackend())
	register(newSwarBackend())
	active = backends[ranking[len(ranking)-1]]
	if caps := os.Getenv(EnvCapabilities); caps != "" {
		Reset(strings.Split(caps, ","))
	}
}

// Active returns the backend currently serving all primitive calls
func Active() *Backend {
	return active
}

// Capabilities lists the backend names the host supports, baseline first
func Capabilities() []string {
	out := make([]string, len(ranking))
	copy(out, ranking)
	return out
}

// Reset narrows dispatch to the intersection of names and the supported
// set, keeping the highest-ranked survivor. An empty intersection falls
// back to the serial baseline.
func Reset(names []string) string {
	chosen := backends["serial"]
	for _, name := range ranking {
		for _, want := range names {
			if strings.TrimSpace(want) == name {
				chosen = backends[name]
			}
		}
	}
	active = chosen
	return chosen.Name
}

// Find locates the first occurrence of needle in haystack, -1 if absent
func Find(haystack, needle []byte) int {
	return active.Find(haystack, needle)
}

// RFind locates the last occurrence of needle in haystack, -1 if absent
func RFind(haystack, needle []byte) int {
	return active.RFind(haystack, needle)
}

// FindByteFrom returns the offset of the first byte in the set, -1 if none
func FindByteFrom(haystack []byte, set *ByteSet) int {
	return active.FindByteFrom(haystack, set)
}

// RFindByteFrom returns the offset of the last byte in the set, -1 if none
func RFindByteFrom(haystack []byte, set *ByteSet) int {
	return active.RFindByteFrom(haystack, set)
}

// FindByteNotFrom returns the offset of the first byte outside the set
func FindByteNotFrom(haystack []byte, set *ByteSet) int {
	inverted := set.Complement()
	return active.FindByteFrom(haystack, &inverted)
}

// RFindByteNotFrom returns the offset of the last byte outside the set
func RFindByteNotFrom(haystack []byte, set *ByteSet) int {
	inverted := set.Complement()
	return active.RFindByteFrom(haystack, &inverted)
}

// Equal reports byte-identical contents
func Equal(a, b []byte) bool {
	return active.Equal(a, b)
}

// Order compares lexicographically with shorter-is-smaller tie-break,
// returning -1, 0 or 1
func Order(a, b []byte) int {
	return active.Order(a, b)
}

// Hash mixes data into a seeded 64-bit value
func Hash(data []byte, seed uint64) uint64 {
	return active.Hash(data, seed)
}

// ByteSum returns the unsigned sum of byte values modulo 2^64
func ByteSum(data []byte) uint64 {
	return active.ByteSum(data)
}

// Lookup writes table[src[i]] into dst[i] for every position
func Lookup(dst, src []byte, table *[256]byte) {
	active.Lookup(dst, src, table)
}

// RunesValid reports whether data is well-formed UTF-8
func RunesValid(data []byte) bool {
	return active.RunesValid(data)
}

// Sequence describes a random-access run of byte strings for Argsort
type Sequence interface {
	Count() int
	At(i int) []byte
}

// Argsort returns a stable permutation of [0, seq.Count()) that orders
// the sequence lexicographically. The merge temporaries come from the
// pooled scratch arena, so repeated sorts reuse one allocation.
func Argsort(seq Sequence) []int {
	n := seq.Count()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if n < 2 {
		return order
	}
	scratch := alloc.Scratch()
	defer alloc.Recycle(scratch)
	tmp, err := scratch.AllocInts(n)
	if err != nil {
		tmp = make([]int, n)
	}
	mergeOrder(order, tmp, func(a, b int) bool {
		return active.Order(seq.At(a), seq.At(b)) < 0
	})
	return order
}

// mergeOrder is a bottom-up stable merge over the permutation; ties
// keep the left run's element first
func mergeOrder(order, tmp []int, less func(a, b int) bool) {
	n := len(order)
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n-width; lo += 2 * width {
			mid := lo + width
			hi := lo + 2*width
			if hi > n {
				hi = n
			}
			i, j, k := lo, mid, lo
			for i < mid && j < hi {
				if less(order[j], order[i]) {
					tmp[k] = order[j]
					j++
				} else {
					tmp[k] = order[i]
					i++
				}
				k++
			}
			for i < mid {
				tmp[k] = order[i]
				i++
				k++
			}
			for j < hi {
				tmp[k] = order[j]
				j++
				k++
			}
			copy(order[lo:hi], tmp[lo:hi])
		}
	}
}
