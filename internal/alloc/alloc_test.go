package alloc

import (
	"testing"

	"bytetape/internal/errors"
)

// ===== Heap Allocator Tests =====

func TestHeapAllocFree(t *testing.T) {
	h := NewHeap(0)
	buf, err := h.Alloc(128)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	if len(buf) != 128 {
		t.Errorf("Alloc returned %d bytes, want 128", len(buf))
	}
	for _, b := range buf {
		if b != 0 {
			t.Fatal("Alloc must return zeroed memory")
		}
	}
	h.Free(buf)
}

func TestHeapBudget(t *testing.T) {
	h := NewHeap(100)
	buf, err := h.Alloc(60)
	if err != nil {
		t.Fatalf("first Alloc failed: %v", err)
	}
	if _, err := h.Alloc(60); !errors.IsKind(err, errors.OutOfMemory) {
		t.Errorf("over-budget Alloc returned %v, want OutOfMemory", err)
	}
	h.Free(buf)
	if h.InUse() != 0 {
		t.Errorf("InUse = %d after free, want 0", h.InUse())
	}
	if _, err := h.Alloc(60); err != nil {
		t.Errorf("Alloc after free failed: %v", err)
	}
}

func TestNegativeSize(t *testing.T) {
	if _, err := NewHeap(0).Alloc(-1); !errors.IsKind(err, errors.InvalidArgument) {
		t.Errorf("negative Alloc returned %v, want InvalidArgument", err)
	}
}

// ===== Allocator Identity Tests =====

func TestEqualByIdentity(t *testing.T) {
	a := NewHeap(0)
	b := NewHeap(0)
	if Equal(a, b) {
		t.Error("distinct allocators compare equal")
	}
	if !Equal(a, a) {
		t.Error("allocator does not compare equal to itself")
	}
	if !Equal(Default(), Default()) {
		t.Error("default allocator identity is unstable")
	}
	if Equal(a, nil) || !Equal(nil, nil) {
		t.Error("nil comparison misbehaves")
	}
}

// ===== Arena Tests =====

func TestArenaGrowth(t *testing.T) {
	a := NewArena()
	first, err := a.Alloc(10)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	second, err := a.Alloc(10)
	if err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	first[0] = 1
	second[0] = 2
	if first[0] != 1 {
		t.Error("arena allocations alias each other")
	}
	// force a block larger than the minimum
	big, err := a.Alloc(arenaMinBlock * 3)
	if err != nil {
		t.Fatalf("large Alloc failed: %v", err)
	}
	if len(big) != arenaMinBlock*3 {
		t.Errorf("large Alloc returned %d bytes", len(big))
	}
}

func TestArenaReset(t *testing.T) {
	a := NewArena()
	if _, err := a.Alloc(100); err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	a.Reset()
	buf, err := a.Alloc(100)
	if err != nil {
		t.Fatalf("Alloc after Reset failed: %v", err)
	}
	if len(buf) != 100 {
		t.Errorf("Alloc after Reset returned %d bytes", len(buf))
	}
}

func TestArenaAllocInts(t *testing.T) {
	a := NewArena()
	if _, err := a.Alloc(3); err != nil {
		t.Fatalf("Alloc failed: %v", err)
	}
	ints, err := a.AllocInts(5)
	if err != nil {
		t.Fatalf("AllocInts failed: %v", err)
	}
	if len(ints) != 5 {
		t.Fatalf("AllocInts returned %d ints, want 5", len(ints))
	}
	for i, v := range ints {
		if v != 0 {
			t.Fatalf("AllocInts[%d] = %d, want zeroed scratch", i, v)
		}
	}
	ints[0] = 42
	more, err := a.AllocInts(2)
	if err != nil {
		t.Fatalf("second AllocInts failed: %v", err)
	}
	more[0] = 7
	if ints[0] != 42 {
		t.Error("int carves alias each other")
	}
	if none, err := a.AllocInts(0); err != nil || none != nil {
		t.Errorf("AllocInts(0) = (%v, %v), want empty", none, err)
	}
}

func TestScratchPool(t *testing.T) {
	a := Scratch()
	if _, err := a.Alloc(32); err != nil {
		t.Fatalf("scratch Alloc failed: %v", err)
	}
	Recycle(a)
	b := Scratch()
	defer Recycle(b)
	if _, err := b.Alloc(32); err != nil {
		t.Fatalf("recycled scratch Alloc failed: %v", err)
	}
}
