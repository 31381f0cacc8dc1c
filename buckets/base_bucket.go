/*
Package buckets implements buckets - a container of fixed number of fingerprint
slots used in cuckoo filters.
*/
package buckets

type BaseBucket interface {
	Size() uint64
	Length() uint64
	IsFree() bool
}

type AbstractBucket struct {
	BaseBucket
	size   uint64
	length uint64
}

// Size returns the number of slots in the bucket
func (bucket *AbstractBucket) Size() uint64 {
	return bucket.size
}

// Length returns the number of occupied slots in the bucket
func (bucket *AbstractBucket) Length() uint64 {
	return bucket.length
}

// IsFree returns true if there is room for more entries in the bucket,
// otherwise false.
func (bucket *AbstractBucket) IsFree() bool {
	return bucket.length < bucket.size
}
