/*
Package filters provides data structures and methods for creating probabilistic filters.
This package provides implementations of two of the most widely used filters,
Bloom Filter and Cuckoo Filter, both keyed on strings and hashed with the shared
rolling hash in package hash.

A Bloom filter is a space-efficient probabilistic data structure that is used to test
whether an element is a member of a set. It can report false positives but never
false negatives, and it doesn't support removal.
Refer: https://web.stanford.edu/~balaji/papers/bloom.pdf

A Cuckoo filter stores short fingerprints in two-choice hashed buckets. Unlike a
Bloom filter it supports removal, at the cost of insertions that may fail once the
filter gets close to full.
Refer: https://www.cs.cmu.edu/~dga/papers/cuckoo-conext2014.pdf

None of the filters are safe for concurrent use.
*/
package filters

// BaseFilter is the read side shared by every filter
type BaseFilter interface {
	Lookup(key string) bool
	Length() uint64
	MemoryUsage() float64
}

// RandomSource supplies the random choices made while relocating fingerprints
// in a Cuckoo filter. *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}
