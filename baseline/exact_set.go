/*
Package baseline implements the exact set used as ground truth for the
approximate structures - both in-memory and redis.
For in-memory, https://github.com/deckarep/golang-set is used while
for redis, set operations of redis are used.
*/
package baseline

// BytesPerKey is the rough memory cost of one key in an exact set
const BytesPerKey = 100

// ExactSet is the set of every distinct key seen so far.
// It never gives false positives or false negatives.
type ExactSet interface {
	Add(key string) (bool, error)
	Contains(key string) (bool, error)
	Len() (uint64, error)
	MemoryUsage() float64
	Clear() error
}

func estimateMemory(length uint64) float64 {
	return float64(length * BytesPerKey)
}
