package bytetape

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"bytetape/internal/kernel"
)

// reprCap bounds the printable form of a collection
const reprCap = 1024

// String returns the view's bytes as a host string
func (s *Str) String() string {
	return string(s.data)
}

// Repr returns the quoted printable form: single-quoted UTF-8 when the
// bytes are valid, a b'\xHH...' byte-escape form otherwise
func (s *Str) Repr() string {
	return quoteElement(s.data)
}

func quoteElement(item []byte) string {
	if kernel.RunesValid(item) {
		var sb strings.Builder
		sb.WriteByte('\'')
		for _, b := range item {
			switch b {
			case '\'', '\\':
				sb.WriteByte('\\')
				sb.WriteByte(b)
			default:
				sb.WriteByte(b)
			}
		}
		sb.WriteByte('\'')
		return sb.String()
	}
	var sb strings.Builder
	sb.WriteString("b'")
	for _, b := range item {
		fmt.Fprintf(&sb, "\\x%02x", b)
	}
	sb.WriteByte('\'')
	return sb.String()
}

// String returns the unbounded bracketed list form
func (s *Strs) String() string {
	return s.format("", 0)
}

// Repr returns the prefixed bracketed list form, truncated with an
// ellipsis marker once it would overflow about a kibibyte
func (s *Strs) Repr() string {
	return s.format("Strs(", reprCap)
}

func (s *Strs) format(prefix string, limit int) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteByte('[')
	for i, n := 0, s.lay.count(); i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quoteElement(s.lay.item(i)))
		if limit > 0 && sb.Len() > limit && i+1 < n {
			sb.WriteString(", ...")
			break
		}
	}
	sb.WriteByte(']')
	if prefix != "" {
		sb.WriteByte(')')
	}
	return sb.String()
}

// MemoryFootprint describes the active layout and content size in
// humanized form, for diagnostics
func (s *Strs) MemoryFootprint() string {
	return fmt.Sprintf("%s: %d strings, %s", s.lay.name(), s.lay.count(), humanize.Bytes(s.totalBytes()))
}
