package bitset

import (
	"github.com/bits-and-blooms/bitset"
)

// BitSetMem is the in-memory implementation of IBitSet.
// _size_ is the number of addressable bits
// _set_ is the bitset implementation adopted from https://github.com/bits-and-blooms/bitset
type BitSetMem struct {
	set  *bitset.BitSet
	size uint
}

// NewBitSetMem creates a new BitSetMem of size _size_
func NewBitSetMem(size uint) *BitSetMem {
	return &BitSetMem{bitset.New(size), size}
}

// FromDataMem creates an instance of BitSetMem backed by the words in _data_
func FromDataMem(data []uint64) *BitSetMem {
	return &BitSetMem{bitset.From(data), uint(len(data) * 64)}
}

// Size returns the size of the bitset
func (bitSet *BitSetMem) Size() uint {
	return bitSet.size
}

// Has checks if the bit at index _index_ is set
func (bitSet *BitSetMem) Has(index uint) bool {
	return bitSet.set.Test(index)
}

// Insert sets the bit at index specified by _index_
func (bitSet *BitSetMem) Insert(index uint) {
	bitSet.set.Set(index)
}

// BitCount returns the total number of set bits in the bitset
func (bitSet *BitSetMem) BitCount() uint {
	return bitSet.set.Count()
}

// Equals checks if two BitSetMem are equal or not
func (bitSet *BitSetMem) Equals(otherBitSet IBitSet) bool {
	other, ok := otherBitSet.(*BitSetMem)
	if !ok {
		return false
	}
	return bitSet.size == other.size && bitSet.set.Equal(other.set)
}

// Clear unsets every bit without reallocating
func (bitSet *BitSetMem) Clear() {
	bitSet.set.ClearAll()
}
