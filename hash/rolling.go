/*
Package hash implements the seeded rolling hash shared by every structure in trackbench.

The hash walks the UTF-16 code units of a key and folds each one into a signed 32-bit
accumulator: acc = (acc << 5) - acc + code, wrapping on overflow exactly like two's
complement int32 arithmetic. The accumulator starts at the seed, so every hash slot of a
Bloom filter or row of a Count-Min Sketch gets its own index stream for the same key.

It's not a high quality hash. Collision behaviour of the structures built on top of it
depends on the 32-bit wrap, so it must not be widened.
*/
package hash

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Sum returns the raw signed 32-bit accumulator for _key_ started at _seed_
func Sum(key string, seed int32) int32 {
	acc := seed
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c < utf8.RuneSelf {
			acc = (acc << 5) - acc + int32(c)
			continue
		}
		// non-ASCII: fall back to code unit iteration for the remainder
		for _, r := range key[i:] {
			if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError || r2 != utf8.RuneError {
				acc = (acc << 5) - acc + r1
				acc = (acc << 5) - acc + r2
			} else {
				acc = (acc << 5) - acc + r
			}
		}
		break
	}
	return acc
}

// Abs returns the absolute value of Sum(_key_, _seed_). It's computed in 64 bits so
// that math.MinInt32 maps to 2^31 instead of overflowing.
func Abs(key string, seed int32) uint64 {
	v := int64(Sum(key, seed))
	if v < 0 {
		v = -v
	}
	return uint64(v)
}

// Index reduces the hash of _key_ with _seed_ into the range [0, _n_)
func Index(key string, seed int32, n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return Abs(key, seed) % n
}
