package filters

import (
	"math"
	"strconv"
	"testing"

	"github.com/kwertop/trackbench/bitset"
)

func TestFilterSizeError(t *testing.T) {
	bitset := bitset.NewBitSetMem(1000)
	_, err := NewBloomFilterWithBitSet(100, 4, bitset)
	if err == nil {
		t.Error("should error out as size doesn't match")
	}
}

func TestFilterWithBitSetMem(t *testing.T) {
	bitset := bitset.NewBitSetMem(1000)
	filter, _ := NewBloomFilterWithBitSet(1000, 4, bitset)
	filter.Insert("John")
	ok1 := filter.Lookup("Jane")
	ok2 := filter.Lookup("John")
	filter.Insert("Alice")
	ok3 := filter.Lookup("Bob")
	ok4 := filter.Lookup("Alice")
	if ok1 {
		t.Error("Jane should not be in filter")
	}
	if !ok2 {
		t.Error("John should be in filter")
	}
	if ok3 {
		t.Error("Bob should not be in filter")
	}
	if !ok4 {
		t.Error("Alice should be in filter")
	}
}

func TestFilterZeroSizes(t *testing.T) {
	filter := NewBloomFilter(0, 0)
	if filter.GetCap() != 1 {
		t.Errorf("size: %v should be 1", filter.GetCap())
	}
	if filter.GetNumHashes() != 1 {
		t.Errorf("numHash: %v should be 1", filter.GetNumHashes())
	}
	filter.Insert("anything")
	if !filter.Lookup("anything") {
		t.Error("anything should be in filter")
	}
}

func TestStringInFilter(t *testing.T) {
	filter := NewBloomFilter(1000, 4)
	filter.Insert("This")
	ok1 := filter.Lookup("This")
	ok2 := filter.Lookup("is")
	filter.Insert("present")
	ok3 := filter.Lookup("present")
	ok4 := filter.Lookup("in")
	filter.Insert("bloom")
	if !ok1 {
		t.Error("This should be in filter")
	}
	if ok2 {
		t.Error("is should not be in filter")
	}
	if !ok3 {
		t.Error("present should be in filter")
	}
	if ok4 {
		t.Error("in should not be in filter")
	}
	if filter.Length() != 3 {
		t.Errorf("length should be 3, found %v", filter.Length())
	}
}

func TestEmptyFilter(t *testing.T) {
	filter := NewBloomFilter(1000, 3)
	if filter.Lookup("") || filter.Lookup("https://www.github.com/docs/1") {
		t.Error("empty filter should not contain anything")
	}
	if filter.BloomPositiveRate() != 0 {
		t.Errorf("positive rate of an empty filter should be 0, found %v", filter.BloomPositiveRate())
	}
	if filter.FillRatio() != 0 {
		t.Errorf("fill ratio of an empty filter should be 0, found %v", filter.FillRatio())
	}
}

func TestBloomDuplicateInsertCounts(t *testing.T) {
	filter := NewBloomFilter(1000, 3)
	filter.Insert("dup").Insert("dup")
	if filter.Length() != 2 {
		t.Errorf("length should count duplicates, expected 2, found %v", filter.Length())
	}
	if filter.GetBitSet().BitCount() > 3 {
		t.Errorf("a single key sets at most 3 bits, found %v", filter.GetBitSet().BitCount())
	}
}

func TestBloomMemoryUsage(t *testing.T) {
	filter := NewBloomFilter(1000000, 3)
	if filter.MemoryUsage() != 125000 {
		t.Errorf("memory usage should be 125000 bytes, found %v", filter.MemoryUsage())
	}
}

func TestBloomNoFalseNegatives(t *testing.T) {
	filter := NewBloomFilter(1000000, 3)
	for i := 0; i < 10000; i++ {
		filter.Insert("https://www.example.com/blog/" + strconv.Itoa(i))
	}
	for i := 0; i < 10000; i++ {
		key := "https://www.example.com/blog/" + strconv.Itoa(i)
		if !filter.Lookup(key) {
			t.Fatalf("%v should be in filter", key)
		}
	}
}

func TestBloomTheoreticalRate(t *testing.T) {
	filter := NewBloomFilter(1000000, 3)
	for i := 0; i < 10000; i++ {
		filter.Insert("https://www.example.com/blog/" + strconv.Itoa(i))
	}
	expected := math.Pow(1-math.Exp(-3*10000.0/1000000), 3)
	rate := filter.BloomPositiveRate()
	if math.Abs(rate-expected) > 1e-12 {
		t.Errorf("positive rate should be %v, found %v", expected, rate)
	}
	if rate < 2.5e-5 || rate > 2.7e-5 {
		t.Errorf("positive rate should be about 2.6e-5, found %v", rate)
	}

	falsePositives := 0
	for i := 5000000; i < 5005000; i++ {
		if filter.Lookup("https://www.example.com/blog/" + strconv.Itoa(i)) {
			falsePositives++
		}
	}
	empirical := float64(falsePositives) / 5000
	t.Logf("theoretical %v, empirical %v", rate, empirical)
	if empirical > 0.01 {
		t.Errorf("empirical positive rate %v too high", empirical)
	}
}

func TestBloomPositiveRateGrowsWithItems(t *testing.T) {
	filter := NewBloomFilter(1000, 5)
	prev := filter.BloomPositiveRate()
	for step := 0; step < 20; step++ {
		for i := 0; i < 100; i++ {
			filter.Insert("https://www.example.com/blog/" + strconv.Itoa(step*100+i))
		}
		rate := filter.BloomPositiveRate()
		if rate < prev {
			t.Fatalf("positive rate should not fall as items are added, %v after %v", rate, prev)
		}
		prev = rate
	}
	if prev <= 0 {
		t.Errorf("positive rate should be positive after insertions, found %v", prev)
	}
}

func TestBloomEquals(t *testing.T) {
	filter1 := NewBloomFilter(1000, 3)
	filter2 := NewBloomFilter(1000, 3)
	filter1.Insert("one").Insert("two")
	filter2.Insert("one").Insert("two")
	if !filter1.Equals(filter2) {
		t.Error("filter1 and filter2 should be equal")
	}
	filter2.Insert("three")
	if filter1.Equals(filter2) {
		t.Error("filter1 and filter2 shouldn't be equal")
	}
}

func testPositiveRate(nItems uint, errorRate float64, t *testing.T) {
	filter := NewBloomFilterWithParameters(nItems, errorRate)
	for i := 0; i < int(nItems); i++ {
		filter.Insert(strconv.Itoa(i))
	}
	estimatedErrorRate := filter.BloomPositiveRate()
	if estimatedErrorRate > 1.1*errorRate {
		t.Errorf("estimated error rate %v too high for nItems %v and expected error rate %v", estimatedErrorRate, nItems, errorRate)
	}
}

func TestPositiveRate1000_0001(t *testing.T) {
	testPositiveRate(1000, 0.001, t)
}

func TestPositiveRate10000_001(t *testing.T) {
	testPositiveRate(10000, 0.01, t)
}

func TestPositiveRate100000_01(t *testing.T) {
	testPositiveRate(100000, 0.1, t)
}

func BenchmarkBloomInsert(b *testing.B) {
	filter := NewBloomFilter(1000000, 3)
	for i := 0; i < b.N; i++ {
		filter.Insert("https://www.example.com/blog/" + strconv.Itoa(i))
	}
}

func BenchmarkBloomLookup(b *testing.B) {
	filter := NewBloomFilter(1000000, 3)
	for i := 0; i < 10000; i++ {
		filter.Insert("https://www.example.com/blog/" + strconv.Itoa(i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		filter.Lookup("https://www.example.com/blog/" + strconv.Itoa(i))
	}
}
