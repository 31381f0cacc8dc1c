package filters

import (
	"errors"
	"fmt"

	"github.com/kwertop/trackbench/buckets"
	"github.com/kwertop/trackbench/internal/util"
)

// ErrInvalidCuckooParameters is returned when a Cuckoo Filter is created with a
// zero capacity or bucket size, or a fingerprint width outside [1, 16]
var ErrInvalidCuckooParameters = errors.New("trackbench: invalid cuckoo filter parameters")

// CuckooFilter is the in-memory implementation of BaseCuckooFilter
// _buckets_ is a slice of BucketMem
// _length_ represents the number of entries present in the Cuckoo Filter. Failed
// insertions don't count.
// _failures_ counts insertions that gave up after _retries_ relocations
// _rnd_ picks the starting bucket and the evicted slot during relocation
type CuckooFilter struct {
	buckets  []buckets.BucketMem
	length   uint64
	failures uint64
	rnd      RandomSource
	*AbstractCuckooFilter
}

// NewCuckooFilter creates a new in-memory CuckooFilter that retries up to
// DefaultRetries relocations
// _capacity_ is the total number of slots wanted, the filter has ceil(capacity/bucketSize) buckets
// _bucketSize_ is the number of slots of the individual buckets
// _fingerPrintLength_ is the width in bits of the stored fingerprints
// _rnd_ drives relocation choices, nil means a time-seeded source
func NewCuckooFilter(capacity, bucketSize, fingerPrintLength uint64, rnd RandomSource) (*CuckooFilter, error) {
	return NewCuckooFilterWithRetries(capacity, bucketSize, fingerPrintLength, DefaultRetries, rnd)
}

// NewCuckooFilterWithRetries creates new in-memory CuckooFilter with specified _retries_
// _retries_ is the number of relocations the Cuckoo filter makes if both candidate
// buckets of the entrant are full
func NewCuckooFilterWithRetries(capacity, bucketSize, fingerPrintLength, retries uint64, rnd RandomSource) (*CuckooFilter, error) {
	if capacity == 0 || bucketSize == 0 {
		return nil, fmt.Errorf("%w: capacity %d and bucket size %d should be greater than 0", ErrInvalidCuckooParameters, capacity, bucketSize)
	}
	if fingerPrintLength == 0 || fingerPrintLength > MaxFingerPrintLength {
		return nil, fmt.Errorf("%w: fingerprint length %d should be between 1 and %d", ErrInvalidCuckooParameters, fingerPrintLength, MaxFingerPrintLength)
	}
	if rnd == nil {
		rnd = util.NewRand()
	}
	baseFilter := makeAbstractCuckooFilter(capacity, bucketSize, fingerPrintLength, retries)
	filter := make([]buckets.BucketMem, baseFilter.size)
	for i := range filter {
		filter[i] = *buckets.NewBucketMem(bucketSize)
	}
	return &CuckooFilter{buckets: filter, rnd: rnd, AbstractCuckooFilter: baseFilter}, nil
}

// NewCuckooFilterWithErrorRate creates an in-memory CuckooFilter with a specified false positive
// rate : _errorRate_. fingerPrintLength is calculated according to this error rate.
func NewCuckooFilterWithErrorRate(capacity, bucketSize, retries uint64, errorRate float64, rnd RandomSource) (*CuckooFilter, error) {
	fingerPrintLength := CalculateFingerPrintLength(bucketSize, errorRate)
	return NewCuckooFilterWithRetries(capacity, bucketSize, fingerPrintLength, retries, rnd)
}

// Length returns the number of entries present in the Cuckoo Filter
func (cuckooFilter *CuckooFilter) Length() uint64 {
	return cuckooFilter.length
}

// Failures returns the number of insertions that were given up
func (cuckooFilter *CuckooFilter) Failures() uint64 {
	return cuckooFilter.failures
}

// Insert writes _key_'s fingerprint in the Cuckoo Filter for future lookup.
// If both candidate buckets are full, random fingerprints are relocated to their
// alternate buckets, at most _retries_ times. When that's not enough every
// relocation is undone, the filter is left as it was before the call and false
// is returned.
func (cuckooFilter *CuckooFilter) Insert(key string) bool {
	fingerPrint, fIndex, sIndex := cuckooFilter.getPositions(key)
	if cuckooFilter.buckets[fIndex].Add(fingerPrint) || cuckooFilter.buckets[sIndex].Add(fingerPrint) {
		cuckooFilter.length++
		return true
	}

	index := fIndex
	if cuckooFilter.rnd.Intn(2) == 1 {
		index = sIndex
	}
	currFingerPrint := fingerPrint
	var items []entry
	for i := uint64(0); i < cuckooFilter.retries; i++ {
		// every bucket visited here is full
		slot := uint64(cuckooFilter.rnd.Intn(int(cuckooFilter.buckets[index].Length())))
		prevFingerPrint := cuckooFilter.buckets[index].Swap(slot, currFingerPrint)
		items = append(items, entry{prevFingerPrint, index, slot})
		index = cuckooFilter.altIndex(index, prevFingerPrint)
		currFingerPrint = prevFingerPrint
		if cuckooFilter.buckets[index].Add(currFingerPrint) {
			cuckooFilter.length++
			return true
		}
	}

	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		cuckooFilter.buckets[item.bucket].Swap(item.slot, item.fingerPrint)
	}
	cuckooFilter.failures++
	return false
}

// Lookup returns true if the _key_ is present in the Cuckoo Filter, else false
func (cuckooFilter *CuckooFilter) Lookup(key string) bool {
	fingerPrint, fIndex, sIndex := cuckooFilter.getPositions(key)
	return cuckooFilter.buckets[fIndex].Lookup(fingerPrint) ||
		cuckooFilter.buckets[sIndex].Lookup(fingerPrint)
}

// Remove deletes one occurrence of _key_'s fingerprint from the Cuckoo Filter
func (cuckooFilter *CuckooFilter) Remove(key string) bool {
	fingerPrint, fIndex, sIndex := cuckooFilter.getPositions(key)
	if cuckooFilter.buckets[fIndex].Remove(fingerPrint) || cuckooFilter.buckets[sIndex].Remove(fingerPrint) {
		cuckooFilter.length--
		return true
	}
	return false
}

// LoadFactor returns the ratio of stored entries to slots
func (cuckooFilter *CuckooFilter) LoadFactor() float64 {
	return float64(cuckooFilter.length) / float64(cuckooFilter.CellSize())
}

// CuckooPositiveRate returns the theoretical false positive rate of the filter at
// its current load factor. A lookup compares against up to 2*bucketSize fingerprints,
// each matching with probability 2^-f, so the rate is 2b * loadFactor / 2^f, capped at 1.
func (cuckooFilter *CuckooFilter) CuckooPositiveRate() float64 {
	rate := float64(2*cuckooFilter.bucketSize) * cuckooFilter.LoadFactor() / float64(uint64(1)<<cuckooFilter.fingerPrintLength)
	if rate > 1 {
		return 1
	}
	return rate
}

// Equals checks if two CuckooFilter are same or not
func (aFilter *CuckooFilter) Equals(bFilter *CuckooFilter) bool {
	if aFilter.size != bFilter.size || aFilter.bucketSize != bFilter.bucketSize ||
		aFilter.fingerPrintLength != bFilter.fingerPrintLength || aFilter.length != bFilter.length {
		return false
	}
	for i := range aFilter.buckets {
		if !aFilter.buckets[i].Equals(&bFilter.buckets[i]) {
			return false
		}
	}
	return true
}
