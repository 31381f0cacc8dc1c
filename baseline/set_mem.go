package baseline

import (
	mapset "github.com/deckarep/golang-set"
)

// MemSet is the in-memory ExactSet backed by a thread unsafe mapset.Set
type MemSet struct {
	set mapset.Set
}

// NewMemSet creates a new empty MemSet
func NewMemSet() *MemSet {
	return &MemSet{set: mapset.NewThreadUnsafeSet()}
}

// Add inserts _key_ and returns true if it wasn't present before
func (s *MemSet) Add(key string) (bool, error) {
	return s.set.Add(key), nil
}

// Contains returns true if _key_ was added before
func (s *MemSet) Contains(key string) (bool, error) {
	return s.set.Contains(key), nil
}

// Len returns the number of distinct keys
func (s *MemSet) Len() (uint64, error) {
	return uint64(s.set.Cardinality()), nil
}

// MemoryUsage returns the estimated size of the set in bytes, BytesPerKey per key
func (s *MemSet) MemoryUsage() float64 {
	return estimateMemory(uint64(s.set.Cardinality()))
}

// Clear removes every key
func (s *MemSet) Clear() error {
	s.set.Clear()
	return nil
}
