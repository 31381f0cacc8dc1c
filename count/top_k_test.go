package count

import (
	"testing"
)

var items = []string{
	"apple",
	"orange",
	"banana",
	"carrot",
	"apple",
	"grape",
	"apple",
	"carrot",
	"apple",
	"banana",
	"plum",
	"plum",
	"peach",
	"apple",
	"carrot",
	"peach",
	"mango",
	"apple",
	"grape",
	"melon",
	"pineapple",
	"kiwi",
	"banana",
	"grape",
	"apple",
	"kiwi",
	"pineapple",
	"mango",
	"plum",
	"peach",
	"banana",
}

var expectedTopElements = []string{
	"apple",
	"banana",
	"carrot",
	"grape",
	"peach",
	"plum",
	"kiwi",
	"mango",
	"pineapple",
	"melon",
	"orange",
}

func TestTopKBasic(t *testing.T) {
	topk := NewTopK(5, 0.001, delta)
	for i := range items {
		topk.Insert(items[i], 1)
	}

	val := topk.Values()
	if len(val) != 5 {
		t.Fatalf("topk should hold 5 values, found %d", len(val))
	}
	if val[0].Element != "apple" || val[0].Count != 7 {
		t.Errorf("first value should be apple with 7, found %v", val[0])
	}
	if val[1].Element != "banana" || val[1].Count != 4 {
		t.Errorf("second value should be banana with 4, found %v", val[1])
	}
	for i := 2; i < 5; i++ {
		if val[i].Count != 3 {
			t.Errorf("value at position %d should have count 3, found %v", i, val[i])
		}
	}
}

func TestTopKAllElements(t *testing.T) {
	topk := NewTopK(11, 0.001, delta)

	frequencyMap := make(map[string]int)
	for i := range items {
		topk.Insert(items[i], 1)
		frequencyMap[items[i]]++
	}

	val := topk.Values()
	if len(val) != len(expectedTopElements) {
		t.Fatalf("topk should hold %d values, found %d", len(expectedTopElements), len(val))
	}
	for i := range expectedTopElements {
		if expectedTopElements[i] != val[i].Element {
			t.Errorf("values at position %d don't match, expected %s found %s", i, expectedTopElements[i], val[i].Element)
		}
		if val[i].Count != uint64(frequencyMap[val[i].Element]) {
			t.Errorf("frequency doesn't match for %s. Instead found %d and %d", val[i].Element, val[i].Count, frequencyMap[val[i].Element])
		}
	}
}

func TestTopKBatchInsert(t *testing.T) {
	topk := NewTopK(2, 0.001, delta)
	topk.Insert("apple", 7)
	topk.Insert("banana", 4)
	topk.Insert("carrot", 3)
	topk.Insert("grape", 0)

	val := topk.Values()
	if len(val) != 2 {
		t.Fatalf("topk should hold 2 values, found %d", len(val))
	}
	if val[0] != (TopKElement{"apple", 7}) || val[1] != (TopKElement{"banana", 4}) {
		t.Errorf("values should be apple:7 and banana:4, found %v", val)
	}
}

func TestTopKEmpty(t *testing.T) {
	topk := NewTopK(3, 0.001, delta)
	if len(topk.Values()) != 0 {
		t.Errorf("empty topk shouldn't have values")
	}
}

func TestTopKZero(t *testing.T) {
	topk := NewTopK(0, 0.001, delta)
	topk.Insert("apple", 1)
	topk.Insert("banana", 3)
	if len(topk.Values()) != 0 {
		t.Errorf("topk with k 0 shouldn't have values, found %v", topk.Values())
	}
}

func TestEquals(t *testing.T) {
	k := NewTopK(10, 0.001, delta)
	for i := 0; i < 10; i++ {
		k.Insert(items[i], 1)
	}

	l := NewTopK(10, 0.001, delta)
	for i := 0; i < 10; i++ {
		l.Insert(items[i], 1)
	}

	if !l.Equals(k) {
		t.Errorf("topk k and l should be equal")
	}
	l.Insert("apple", 1)
	if l.Equals(k) {
		t.Errorf("topk k and l shouldn't be equal")
	}
}
