package filters

import (
	"math/bits"
	"strconv"

	"github.com/kwertop/trackbench/buckets"
	"github.com/kwertop/trackbench/hash"
)

// fingerPrintSeed distinguishes the fingerprint hash from the bucket hash (seed 0)
const fingerPrintSeed = 12345

type BaseCuckooFilter interface {
	Size() uint64
	Length() uint64
	BucketSize() uint64
	FingerPrintLength() uint64
	CellSize() uint64
	Retries() uint64
}

type AbstractCuckooFilter struct {
	BaseCuckooFilter
	size              uint64
	capacity          uint64
	bucketSize        uint64
	fingerPrintLength uint64
	retries           uint64
}

// entry records one swap of a relocation chain so it can be undone
type entry struct {
	fingerPrint buckets.Fingerprint
	bucket      uint64
	slot        uint64
}

func makeAbstractCuckooFilter(capacity, bucketSize, fingerPrintLength, retries uint64) *AbstractCuckooFilter {
	baseFilter := &AbstractCuckooFilter{}
	baseFilter.size = (capacity + bucketSize - 1) / bucketSize
	baseFilter.capacity = capacity
	baseFilter.bucketSize = bucketSize
	baseFilter.fingerPrintLength = fingerPrintLength
	baseFilter.retries = retries
	return baseFilter
}

// Size returns the number of buckets of the Cuckoo Filter, ceil(capacity / bucketSize)
func (cuckooFilter *AbstractCuckooFilter) Size() uint64 {
	return cuckooFilter.size
}

// Capacity returns the capacity the Cuckoo Filter was configured with
func (cuckooFilter *AbstractCuckooFilter) Capacity() uint64 {
	return cuckooFilter.capacity
}

// BucketSize returns the number of slots in each bucket of the Cuckoo Filter
func (cuckooFilter *AbstractCuckooFilter) BucketSize() uint64 {
	return cuckooFilter.bucketSize
}

// FingerPrintLength returns the width of the fingerprints in bits
func (cuckooFilter *AbstractCuckooFilter) FingerPrintLength() uint64 {
	return cuckooFilter.fingerPrintLength
}

// CellSize returns the total number of slots of the Cuckoo Filter - _size_ * _bucketSize_
func (cuckooFilter *AbstractCuckooFilter) CellSize() uint64 {
	return cuckooFilter.size * cuckooFilter.bucketSize
}

// Retries returns the number of relocations the Cuckoo Filter attempts when both
// candidate buckets of an entrant are full
func (cuckooFilter *AbstractCuckooFilter) Retries() uint64 {
	return cuckooFilter.retries
}

// MemoryUsage returns the size of the slot array in bytes,
// numBuckets * bucketSize * fingerPrintLength bits
func (cuckooFilter *AbstractCuckooFilter) MemoryUsage() float64 {
	return float64(cuckooFilter.CellSize()*cuckooFilter.fingerPrintLength) / 8
}

// FingerPrint returns the fingerprint of _key_ in [0, 2^fingerPrintLength)
func (cuckooFilter *AbstractCuckooFilter) FingerPrint(key string) buckets.Fingerprint {
	return buckets.Fingerprint(hash.Abs(key, fingerPrintSeed) % (1 << cuckooFilter.fingerPrintLength))
}

// getPositions returns the fingerprint of _key_ and its two candidate buckets
func (cuckooFilter *AbstractCuckooFilter) getPositions(key string) (buckets.Fingerprint, uint64, uint64) {
	fingerPrint := cuckooFilter.FingerPrint(key)
	firstIndex := hash.Index(key, 0, cuckooFilter.size)
	secondIndex := cuckooFilter.altIndex(firstIndex, fingerPrint)
	return fingerPrint, firstIndex, secondIndex
}

// altIndex returns the partner bucket of _index_ for _fingerPrint_. The bucket
// index is XOR-ed with the hash of the fingerprint's decimal form inside the
// power-of-two block of buckets that holds _index_: the bucket range is split into
// blocks following the binary digits of the bucket count (2500 = 2048+256+128+64+4).
// altIndex(altIndex(i, fp), fp) == i for every i, so a relocated fingerprint
// always lands in one of its key's two candidate buckets. With a power-of-two
// bucket count this is exactly (index ^ h) mod numBuckets.
func (cuckooFilter *AbstractCuckooFilter) altIndex(index uint64, fingerPrint buckets.Fingerprint) uint64 {
	h := fingerPrintHash(fingerPrint)
	base, remaining := uint64(0), cuckooFilter.size
	for {
		block := uint64(1) << (bits.Len64(remaining) - 1)
		if index < base+block {
			return base + ((index - base) ^ (h & (block - 1)))
		}
		base += block
		remaining -= block
	}
}

func fingerPrintHash(fingerPrint buckets.Fingerprint) uint64 {
	return hash.Abs(strconv.FormatUint(uint64(fingerPrint), 10), 0)
}
