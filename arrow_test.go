package bytetape

import (
	"encoding/binary"
	"testing"

	"bytetape/internal/errors"
)

// buildArrowColumn packs items into Arrow variable-size binary buffers.
// nulls marks entries whose bytes are dropped from validity (their
// bytes stay in the data buffer and the offsets still advance past
// them, mimicking producers that leave garbage in null slots).
func buildArrowColumn(items []string, nulls map[int]bool, wide bool) (*ArrowSchema, *ArrowArray) {
	var data []byte
	offsets := []uint64{0}
	for _, item := range items {
		data = append(data, item...)
		offsets = append(offsets, uint64(len(data)))
	}
	var offBuf []byte
	format := "z"
	if wide {
		format = "Z"
		offBuf = make([]byte, 8*len(offsets))
		for i, o := range offsets {
			binary.LittleEndian.PutUint64(offBuf[i*8:], o)
		}
	} else {
		offBuf = make([]byte, 4*len(offsets))
		for i, o := range offsets {
			binary.LittleEndian.PutUint32(offBuf[i*4:], uint32(o))
		}
	}
	var validity []byte
	if len(nulls) > 0 {
		validity = make([]byte, (len(items)+7)/8)
		for i := range items {
			if !nulls[i] {
				validity[i>>3] |= 1 << (i & 7)
			}
		}
	}
	return &ArrowSchema{Format: format},
		&ArrowArray{Length: len(items), NullCount: len(nulls), Validity: validity, Offsets: offBuf, Data: data}
}

// ===== Capsule Construction Tests =====

func TestFromArrowView(t *testing.T) {
	for _, wide := range []bool{false, true} {
		wantLayout := "u32-tape-view"
		if wide {
			wantLayout = "u64-tape-view"
		}
		t.Run(wantLayout, func(t *testing.T) {
			schema, array := buildArrowColumn([]string{"ab", "", "cde"}, nil, wide)
			s, err := FromArrow(schema, array, View)
			if err != nil {
				t.Fatalf("FromArrow view failed: %v", err)
			}
			if s.LayoutName() != wantLayout {
				t.Errorf("layout = %s, want %s", s.LayoutName(), wantLayout)
			}
			assertItems(t, s, []string{"ab", "", "cde"})
		})
	}
}

func TestFromArrowCopy(t *testing.T) {
	schema, array := buildArrowColumn([]string{"ab", "", "cde"}, nil, false)
	s, err := FromArrow(schema, array, Copy)
	if err != nil {
		t.Fatalf("FromArrow copy failed: %v", err)
	}
	if s.LayoutName() != "u32-tape-owned" {
		t.Errorf("layout = %s, want u32-tape-owned", s.LayoutName())
	}
	// mutate the capsule after copying: the copy must not change
	array.Data[0] = 'X'
	assertItems(t, s, []string{"ab", "", "cde"})
}

func TestFromArrowCopyCollapsesNulls(t *testing.T) {
	schema, array := buildArrowColumn([]string{"ab", "gone", "cd"}, map[int]bool{1: true}, false)
	s, err := FromArrow(schema, array, Copy)
	if err != nil {
		t.Fatalf("FromArrow copy failed: %v", err)
	}
	assertItems(t, s, []string{"ab", "", "cd"})
}

func TestFromArrowCapsuleRetained(t *testing.T) {
	released := false
	schema, array := buildArrowColumn([]string{"abc"}, nil, false)
	array.ReleaseFn = func() { released = true }
	s, err := FromArrow(schema, array, View)
	if err != nil {
		t.Fatalf("FromArrow view failed: %v", err)
	}
	item, err := s.Get(0)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	s.Release()
	if released {
		t.Fatal("capsule released while a view still references it")
	}
	item.Release()
	if !released {
		t.Fatal("capsule not released after the last view let go")
	}
}

// ===== Capsule Validation Tests =====

func TestFromArrowRejects(t *testing.T) {
	schema, array := buildArrowColumn([]string{"ab"}, nil, false)

	tests := []struct {
		name   string
		mutate func(s *ArrowSchema, a *ArrowArray)
		kind   errors.Kind
	}{
		{"unknown format", func(s *ArrowSchema, a *ArrowArray) { s.Format = "g" }, errors.TypeMismatch},
		{"short offsets buffer", func(s *ArrowSchema, a *ArrowArray) { a.Offsets = a.Offsets[:4] }, errors.InvalidArgument},
		{"negative length", func(s *ArrowSchema, a *ArrowArray) { a.Length = -1 }, errors.InvalidArgument},
		{"decreasing offsets", func(s *ArrowSchema, a *ArrowArray) {
			binary.LittleEndian.PutUint32(a.Offsets[4:], 99)
			a.Data = append(a.Data, make([]byte, 100)...)
			binary.LittleEndian.PutUint32(a.Offsets[0:], 100)
		}, errors.InvalidArgument},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, a := *schema, *array
			a.Offsets = append([]byte(nil), array.Offsets...)
			a.Data = append([]byte(nil), array.Data...)
			test.mutate(&s, &a)
			_, err := FromArrow(&s, &a, View)
			if !errors.IsKind(err, test.kind) {
				t.Errorf("got %v, want kind %s", err, test.kind)
			}
		})
	}

	if _, err := FromArrow(nil, nil, View); !errors.IsKind(err, errors.InvalidArgument) {
		t.Error("nil capsule must be rejected")
	}
}
