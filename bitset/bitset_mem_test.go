package bitset

import "testing"

func TestBitSetMemHas(t *testing.T) {
	bitset := NewBitSetMem(16)
	bitset.Insert(1)
	bitset.Insert(3)
	bitset.Insert(7)
	if !bitset.Has(1) {
		t.Fatal("should be true at index 1")
	}
	if bitset.Has(4) {
		t.Fatal("should be false at index 4")
	}
	if bitset.Size() != 16 {
		t.Fatalf("size should be 16, found %d", bitset.Size())
	}
}

func TestBitSetMemBitCount(t *testing.T) {
	bitset := NewBitSetMem(64)
	bitset.Insert(1)
	bitset.Insert(3)
	bitset.Insert(3)
	bitset.Insert(63)
	if count := bitset.BitCount(); count != 3 {
		t.Fatalf("bit count should be 3, found %d", count)
	}
	bitset.Clear()
	if count := bitset.BitCount(); count != 0 {
		t.Fatalf("bit count should be 0 after clear, found %d", count)
	}
}

func TestBitSetMemEquals(t *testing.T) {
	a := NewBitSetMem(32)
	b := NewBitSetMem(32)
	a.Insert(5)
	b.Insert(5)
	if !a.Equals(b) {
		t.Error("bitsets should be equal")
	}
	b.Insert(6)
	if a.Equals(b) {
		t.Error("bitsets shouldn't be equal")
	}
	if !IsBitSetMem(a) {
		t.Error("a should be a BitSetMem")
	}
}

func TestBitSetMemFromData(t *testing.T) {
	bitset := FromDataMem([]uint64{0b1010})
	if bitset.Size() != 64 {
		t.Fatalf("size should be 64, found %d", bitset.Size())
	}
	if !bitset.Has(1) || !bitset.Has(3) || bitset.Has(2) {
		t.Error("bits 1 and 3 should be set, bit 2 unset")
	}
}
