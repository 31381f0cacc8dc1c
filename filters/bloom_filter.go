package filters

import (
	"fmt"
	"math"

	"github.com/kwertop/trackbench/bitset"
	"github.com/kwertop/trackbench/hash"
	"github.com/kwertop/trackbench/internal/util"
)

// The BloomFilter data structure. It mainly has two fields: _size_ and _numHashes_
// _size_ denotes the number of bits in the bloom filter (m)
// _numHashes_ denotes the number of hashing functions applied on the entrant element
// during insertion or lookup (k). Hash function i is the rolling hash seeded with i.
// _filter_ is the bitset backing internally the bloom filter
// _length_ is the number of insertions so far (n). It's never decremented.
type BloomFilter struct {
	size      uint
	numHashes uint
	filter    bitset.IBitSet
	length    uint64
}

// NewBloomFilter creates and returns a new in-memory BloomFilter
// _size_ is the number of bits of the bloom filter
// _numHashes_ is the number of hashing functions to be applied on the entrant
func NewBloomFilter(size, numHashes uint) *BloomFilter {
	size = util.Max(size, 1)
	return &BloomFilter{
		size:      size,
		numHashes: util.Max(numHashes, 1),
		filter:    bitset.NewBitSetMem(size),
	}
}

// NewBloomFilterWithBitSet creates and returns a new BloomFilter backed by _filter_
// _size_ is the number of bits of the bloom filter, it must match the size of _filter_
// _numHashes_ is the number of hashing functions to be applied on the entrant
func NewBloomFilterWithBitSet(size, numHashes uint, filter bitset.IBitSet) (*BloomFilter, error) {
	if filter.Size() != size {
		return nil, fmt.Errorf("trackbench: error initializing filter as size of bitset %v doesn't match with size %v passed", filter.Size(), size)
	}
	return &BloomFilter{
		size:      util.Max(size, 1),
		numHashes: util.Max(numHashes, 1),
		filter:    filter,
	}, nil
}

// NewBloomFilterWithParameters creates and returns a new in-memory BloomFilter
// _numItems_ is the number of items expected to be inserted
// _errorRate_ is the acceptable false positive error rate
// Based upon the above two parameters passed, the size of the bloom filter is calculated
func NewBloomFilterWithParameters(numItems uint, errorRate float64) *BloomFilter {
	size, numHashes := EstimateBloomParameters(numItems, errorRate)
	return NewBloomFilter(size, numHashes)
}

// Insert writes _key_ in the bloom filter
func (bloomFilter *BloomFilter) Insert(key string) *BloomFilter {
	for i := uint(0); i < bloomFilter.numHashes; i++ {
		bloomFilter.filter.Insert(bloomFilter.getIndex(key, i))
	}
	bloomFilter.length++
	return bloomFilter
}

// Lookup returns true if the corresponding bits in the bitset for _key_ are set,
// otherwise false
func (bloomFilter *BloomFilter) Lookup(key string) bool {
	for i := uint(0); i < bloomFilter.numHashes; i++ {
		if !bloomFilter.filter.Has(bloomFilter.getIndex(key, i)) {
			return false
		}
	}
	return true
}

// GetCap returns the size of the bloom filter
func (bloomFilter *BloomFilter) GetCap() uint {
	return bloomFilter.size
}

// GetNumHashes returns the number of hash functions used in the bloom filter
func (bloomFilter *BloomFilter) GetNumHashes() uint {
	return bloomFilter.numHashes
}

// GetBitSet returns the internal bitset
func (bloomFilter *BloomFilter) GetBitSet() bitset.IBitSet {
	return bloomFilter.filter
}

// Length returns the number of insertions made so far
func (bloomFilter *BloomFilter) Length() uint64 {
	return bloomFilter.length
}

// MemoryUsage returns the size of the packed bit array in bytes, m/8
func (bloomFilter *BloomFilter) MemoryUsage() float64 {
	return float64(bloomFilter.size) / 8
}

// FillRatio returns the fraction of bits that are set
func (bloomFilter *BloomFilter) FillRatio() float64 {
	return float64(bloomFilter.filter.BitCount()) / float64(bloomFilter.size)
}

// BloomPositiveRate returns the theoretical false positive rate of the filter
// for the current number of insertions, (1 - e^(-kn/m))^k
func (bloomFilter *BloomFilter) BloomPositiveRate() float64 {
	if bloomFilter.length == 0 {
		return 0
	}
	k := float64(bloomFilter.numHashes)
	n := float64(bloomFilter.length)
	m := float64(bloomFilter.size)
	return math.Pow(1-math.Exp(-k*n/m), k)
}

// Equals checks if two BloomFilter's are equal
func (aFilter *BloomFilter) Equals(bFilter *BloomFilter) bool {
	if aFilter.size != bFilter.size || aFilter.numHashes != bFilter.numHashes || aFilter.length != bFilter.length {
		return false
	}
	return aFilter.filter.Equals(bFilter.filter)
}

func (bloomFilter *BloomFilter) getIndex(key string, i uint) uint {
	return uint(hash.Index(key, int32(i), uint64(bloomFilter.size)))
}
