package hash

import (
	"math"
	"strconv"
	"testing"
)

func TestSumKnownValues(t *testing.T) {
	cases := []struct {
		key  string
		seed int32
		want int32
	}{
		{"", 0, 0},
		{"", 7, 7},
		{"a", 0, 97},
		{"ab", 0, 3105},
		{"abc", 0, 96354},
		{"hello", 0, 99162322},
		{"ab", 1, 4066},
		{"aé", 0, 3240},
		{"😀", 0, 1772899},
	}
	for _, c := range cases {
		if got := Sum(c.key, c.seed); got != c.want {
			t.Errorf("Sum(%q, %d) should be %d, found %d", c.key, c.seed, c.want, got)
		}
	}
}

func TestSumWrapsAt32Bits(t *testing.T) {
	if got := Sum("Hello World", 0); got != -862545276 {
		t.Errorf("hash should wrap to -862545276, found %d", got)
	}
	if got := Sum("polygenelubricants", 0); got != math.MinInt32 {
		t.Errorf("hash should wrap to MinInt32, found %d", got)
	}
}

func TestAbsOfMinInt32(t *testing.T) {
	if got := Abs("polygenelubricants", 0); got != 1<<31 {
		t.Errorf("abs of MinInt32 should be 2^31, found %d", got)
	}
	if got := Abs("Hello World", 0); got != 862545276 {
		t.Errorf("abs should be 862545276, found %d", got)
	}
}

func TestIndexInRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		key := "https://example.com/blog/" + strconv.Itoa(i)
		for seed := int32(0); seed < 5; seed++ {
			if idx := Index(key, seed, 97); idx >= 97 {
				t.Fatalf("index %d out of range for %q", idx, key)
			}
		}
	}
	if Index("abc", 0, 0) != 0 {
		t.Error("index with empty range should be 0")
	}
}

func TestSeedsDiverge(t *testing.T) {
	key := "https://www.github.com/docs/42"
	seen := make(map[uint64]bool)
	for seed := int32(0); seed < 8; seed++ {
		seen[Index(key, seed, 1000003)] = true
	}
	if len(seen) < 8 {
		t.Errorf("different seeds should produce different indexes, found %d distinct", len(seen))
	}
}

func BenchmarkSum(b *testing.B) {
	key := "https://api.stackoverflow.com/questions?id=123456"
	for i := 0; i < b.N; i++ {
		Sum(key, int32(i&7))
	}
}
