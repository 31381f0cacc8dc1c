/*
Package bitset implements the bit array backing the Bloom filter.
The in-memory implementation wraps https://github.com/bits-and-blooms/bitset.
*/
package bitset

type IBitSet interface {
	// Size returns the number of bits in the bitset
	Size() uint

	// Has returns true if the bit is set at index, else false
	Has(index uint) bool

	// Insert sets the bit at index to true
	Insert(index uint)

	// BitCount returns the total number of set bits in the bitset
	BitCount() uint

	// Equals checks if two bitsets are equal
	Equals(otherBitSet IBitSet) bool

	// Clear unsets every bit
	Clear()
}

// IsBitSetMem is used to check if the passed variable `t`
// is of type *BitSetMem or not
func IsBitSetMem(t interface{}) bool {
	switch t.(type) {
	case *BitSetMem:
		return true
	default:
		return false
	}
}
