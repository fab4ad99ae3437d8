package bytetape

import (
	"unsafe"

	"bytetape/internal/alloc"
	"bytetape/internal/errors"
)

// ArrowSchema mirrors the schema half of the Arrow C Data Interface
// for a variable-size binary column. Format must be one of "u" or "z"
// (32-bit offsets) or "U" or "Z" (64-bit offsets).
type ArrowSchema struct {
	Format string
}

// ArrowArray mirrors the array half: exactly three buffers in the
// Arrow convention [validity, offsets, data]. ReleaseFn, when set, is
// invoked once no view references the capsule anymore.
type ArrowArray struct {
	Length    int
	NullCount int
	Validity  []byte
	Offsets   []byte
	Data      []byte
	ReleaseFn func()
}

func (a *ArrowArray) valid(i int) bool {
	if a.Validity == nil {
		return true
	}
	return a.Validity[i>>3]&(1<<(i&7)) != 0
}

// FromArrow builds a collection from an Arrow column capsule. View
// mode borrows the offsets and data buffers and retains the capsule as
// parent; Copy mode rebases offsets to zero under the default
// allocator, collapsing null entries to zero-length strings. The
// validity bitmap is not propagated in either mode.
func FromArrow(schema *ArrowSchema, array *ArrowArray, mode Mode) (*Strs, error) {
	return FromArrowAlloc(schema, array, mode, alloc.Default())
}

// FromArrowAlloc is FromArrow under a caller-chosen allocator
func FromArrowAlloc(schema *ArrowSchema, array *ArrowArray, mode Mode, al alloc.Allocator) (*Strs, error) {
	const op = "strs.from_arrow"
	if schema == nil || array == nil {
		return nil, errors.NewInvalidArgument(op, "nil capsule")
	}
	var wide bool
	switch schema.Format {
	case "u", "z":
		wide = false
	case "U", "Z":
		wide = true
	default:
		return nil, errors.NewTypeMismatch(op, "format %q is not a binary-like column", schema.Format)
	}
	if array.Length < 0 {
		return nil, errors.NewInvalidArgument(op, "negative length %d", array.Length)
	}
	if array.Length == 0 {
		return NewStrs(), nil
	}
	if wide {
		offs, err := reinterpretOffsets[uint64](array.Offsets, array.Length, op)
		if err != nil {
			return nil, err
		}
		return arrowLayout(array, offs, mode, al)
	}
	offs, err := reinterpretOffsets[uint32](array.Offsets, array.Length, op)
	if err != nil {
		return nil, err
	}
	return arrowLayout(array, offs, mode, al)
}

// reinterpretOffsets views the raw offsets buffer as count+1 typed
// offsets without copying
func reinterpretOffsets[O offsetWidth](buf []byte, count int, op string) ([]O, error) {
	width := int(unsafe.Sizeof(O(0)))
	need := (count + 1) * width
	if len(buf) < need {
		return nil, errors.NewInvalidArgument(op,
			"offsets buffer holds %d bytes, need %d for %d entries", len(buf), need, count+1)
	}
	if uintptr(unsafe.Pointer(&buf[0]))%uintptr(width) != 0 {
		return nil, errors.NewInvalidArgument(op, "offsets buffer is not %d-byte aligned", width)
	}
	return unsafe.Slice((*O)(unsafe.Pointer(&buf[0])), count+1), nil
}

func arrowLayout[O offsetWidth](array *ArrowArray, offs []O, mode Mode, al alloc.Allocator) (*Strs, error) {
	for i := 0; i < array.Length; i++ {
		if offs[i+1] < offs[i] {
			return nil, errors.NewInvalidArgument("strs.from_arrow",
				"offsets decrease at entry %d", i)
		}
	}
	if mode == View {
		parent := newParent(array.Data, array.ReleaseFn)
		return &Strs{lay: &tapeView[O]{data: array.Data, offs: offs, parent: parent}}, nil
	}
	return copyArrow(array, offs, al)
}

// copyArrow rebases offsets to zero; null entries contribute no bytes
// and become zero-length strings at the current offset
func copyArrow[O offsetWidth](array *ArrowArray, offs []O, al alloc.Allocator) (*Strs, error) {
	if array.Length == 0 {
		return NewStrs(), nil
	}
	var total uint64
	for i := 0; i < array.Length; i++ {
		if array.valid(i) {
			total += uint64(offs[i+1] - offs[i])
		}
	}
	data, err := al.Alloc(int(total))
	if err != nil {
		return nil, err
	}
	itemAt := func(i int) []byte {
		if !array.valid(i) {
			return nil
		}
		return array.Data[offs[i]:offs[i+1]]
	}
	if total >= u64Threshold {
		rebased := make([]uint64, array.Length+1)
		fillTape(data, rebased, array.Length, itemAt)
		return &Strs{lay: newTapeOwned(data, rebased, al)}, nil
	}
	rebased := make([]uint32, array.Length+1)
	fillTape(data, rebased, array.Length, itemAt)
	return &Strs{lay: newTapeOwned(data, rebased, al)}, nil
}
