package buckets

// Fingerprint is the compact digest stored in a bucket slot. Fingerprints
// up to 16 bits wide are supported.
type Fingerprint uint16

// BucketMem holds up to _size_ fingerprints in a fixed slot array.
// Occupied slots are always packed at the front: elements[0:length]
// are valid, the rest are free. 0 is a valid fingerprint, so occupancy
// is tracked by _length_ and never by a sentinel value.
type BucketMem struct {
	elements []Fingerprint
	*AbstractBucket
}

// NewBucketMem creates a new BucketMem with _size_ slots
func NewBucketMem(size uint64) *BucketMem {
	bucket := &AbstractBucket{}
	bucket.size = size
	return &BucketMem{make([]Fingerprint, size), bucket}
}

// Elements returns the occupied slots of the bucket
func (bucket *BucketMem) Elements() []Fingerprint {
	return bucket.elements[:bucket.length]
}

// At returns the fingerprint stored in slot _index_
func (bucket *BucketMem) At(index uint64) Fingerprint {
	return bucket.elements[index]
}

// Add places _element_ in the next free slot. It returns false if the
// bucket is full.
func (bucket *BucketMem) Add(element Fingerprint) bool {
	if !bucket.IsFree() {
		return false
	}
	bucket.elements[bucket.length] = element
	bucket.length++
	return true
}

// Remove deletes one occurrence of _element_ from the bucket
func (bucket *BucketMem) Remove(element Fingerprint) bool {
	index := bucket.indexOf(element)
	if index < 0 {
		return false
	}
	last := bucket.length - 1
	bucket.elements[index] = bucket.elements[last]
	bucket.elements[last] = 0
	bucket.length--
	return true
}

// Lookup returns true if the _element_ is present in the bucket, otherwise false
func (bucket *BucketMem) Lookup(element Fingerprint) bool {
	return bucket.indexOf(element) > -1
}

// Swap stores _element_ in the occupied slot _index_ and returns the
// fingerprint previously stored there
func (bucket *BucketMem) Swap(index uint64, element Fingerprint) Fingerprint {
	temp := bucket.elements[index]
	bucket.elements[index] = element
	return temp
}

// Reset empties the bucket without reallocating
func (bucket *BucketMem) Reset() {
	for i := range bucket.elements {
		bucket.elements[i] = 0
	}
	bucket.length = 0
}

// Equals checks if two BucketMem hold the same fingerprints in the same slots
func (bucket *BucketMem) Equals(otherBucket *BucketMem) bool {
	if bucket.size != otherBucket.size || bucket.length != otherBucket.length {
		return false
	}
	for index, val := range bucket.Elements() {
		if otherBucket.elements[index] != val {
			return false
		}
	}
	return true
}

func (bucket *BucketMem) indexOf(element Fingerprint) int64 {
	for index, val := range bucket.Elements() {
		if val == element {
			return int64(index)
		}
	}
	return int64(-1)
}
