package bytetape

import (
	"strings"
	"testing"
)

// ===== Printable Form Tests =====

func TestStrStringAndRepr(t *testing.T) {
	s := mustStr(t, "it's")
	if s.String() != "it's" {
		t.Errorf("String = %q", s.String())
	}
	if s.Repr() != `'it\'s'` {
		t.Errorf("Repr = %s", s.Repr())
	}
	raw := mustStr(t, []byte{0xde, 0xad})
	if raw.Repr() != `b'\xde\xad'` {
		t.Errorf("invalid UTF-8 Repr = %s", raw.Repr())
	}
}

func TestStrsString(t *testing.T) {
	s := mustStrs(t, []string{"a", "b'c"}, View)
	want := `['a', 'b\'c']`
	if s.String() != want {
		t.Errorf("String = %s, want %s", s.String(), want)
	}
}

func TestStrsRepr(t *testing.T) {
	s := mustStrs(t, []string{"one", "two"}, Copy)
	got := s.Repr()
	if !strings.HasPrefix(got, "Strs([") || !strings.HasSuffix(got, "])") {
		t.Errorf("Repr shape = %s", got)
	}
	if !strings.Contains(got, "'one', 'two'") {
		t.Errorf("Repr contents = %s", got)
	}
}

func TestStrsReprMixedValidity(t *testing.T) {
	s, err := FromBytes([][]byte{[]byte("ok"), {0xff}}, View)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	want := `Strs(['ok', b'\xff'])`
	if got := s.Repr(); got != want {
		t.Errorf("Repr = %s, want %s", got, want)
	}
}

func TestStrsReprTruncates(t *testing.T) {
	items := make([]string, 200)
	for i := range items {
		items[i] = strings.Repeat("x", 32)
	}
	s := mustStrs(t, items, View)
	got := s.Repr()
	if len(got) > reprCap+64 {
		t.Errorf("Repr length %d exceeds the cap region", len(got))
	}
	if !strings.Contains(got, ", ...]") {
		t.Errorf("truncated Repr lacks ellipsis marker: ...%s", got[len(got)-16:])
	}
	// String is unbounded
	if len(s.String()) < 200*32 {
		t.Errorf("String appears truncated at %d bytes", len(s.String()))
	}
}
