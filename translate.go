package bytetape

import (
	"bytetape/internal/alloc"
	"bytetape/internal/kernel"
)

// Translate maps every byte of src through a 256-entry table into dst,
// which must be at least as long as src
func Translate(dst, src []byte, table *[256]byte) {
	kernel.Lookup(dst, src, table)
}

// Translate returns an owned view with every byte mapped through the
// 256-entry table; the output length equals the input length
func (s *Str) Translate(table *[256]byte) (*Str, error) {
	return s.TranslateAlloc(table, alloc.Default())
}

// TranslateAlloc is Translate under a caller-chosen allocator
func (s *Str) TranslateAlloc(table *[256]byte, al alloc.Allocator) (*Str, error) {
	buf, err := al.Alloc(len(s.data))
	if err != nil {
		return nil, err
	}
	kernel.Lookup(buf, s.data, table)
	return ownedStr(buf), nil
}

// IdentityTable returns the table that maps every byte to itself
func IdentityTable() *[256]byte {
	var table [256]byte
	for i := range table {
		table[i] = byte(i)
	}
	return &table
}
