package filters

import (
	"math"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	// DefaultRetries is the number of relocations a Cuckoo filter attempts before
	// giving up on an insertion
	DefaultRetries = 500

	// DefaultFingerPrintLength is the default fingerprint width in bits
	DefaultFingerPrintLength = 8

	// MaxFingerPrintLength is the widest fingerprint a bucket slot can hold
	MaxFingerPrintLength = 16
)

// EstimateBloomParameters returns the bit array size and number of hash functions
// needed to hold _numItems_ at a false positive rate of _errorRate_
func EstimateBloomParameters(numItems uint, errorRate float64) (uint, uint) {
	return bloom.EstimateParameters(numItems, errorRate)
}

// CalculateFingerPrintLength returns the fingerprint width in bits needed for a
// false positive rate of _errorRate_ with buckets of _bucketSize_ slots,
// f = ceil(log2(2b / errorRate)), clamped to [1, MaxFingerPrintLength]
func CalculateFingerPrintLength(bucketSize uint64, errorRate float64) uint64 {
	if errorRate <= 0 || errorRate >= 1 {
		return DefaultFingerPrintLength
	}
	v := uint64(math.Ceil(math.Log2(float64(2*bucketSize) / errorRate)))
	if v < 1 {
		return 1
	}
	if v > MaxFingerPrintLength {
		return MaxFingerPrintLength
	}
	return v
}
