package count

import (
	"container/heap"
	"sort"
	"strings"
)

type HeapElement struct {
	value     string
	frequency uint64
}

type MinHeap []HeapElement

func (h MinHeap) Len() int {
	return len(h)
}

func (h MinHeap) Less(i, j int) bool {
	return h[i].frequency < h[j].frequency
}

func (h MinHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *MinHeap) Push(x any) {
	*h = append(*h, x.(HeapElement))
}

func (h *MinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

func (h MinHeap) IndexOf(element string) int {
	for i := range h {
		if h[i].value == element {
			return i
		}
	}
	return -1
}

// TopK keeps the _k_ most frequent keys seen so far. Frequencies come from a
// CountMinSketch, so they may be overestimated.
type TopK struct {
	k         uint
	errorRate float64
	accuracy  float64
	sketch    *CountMinSketch
	heap      MinHeap
}

// TopKElement is a key together with its estimated frequency
type TopKElement struct {
	Element string `json:"element"`
	Count   uint64 `json:"count"`
}

// NewTopK creates a TopK for the _k_ most frequent keys. _errorRate_ and _accuracy_
// size the underlying sketch, see NewCountMinSketchFromEstimates.
func NewTopK(k uint, errorRate, accuracy float64) *TopK {
	sketch, _ := NewCountMinSketchFromEstimates(errorRate, accuracy)
	heap := &MinHeap{}
	return &TopK{k, errorRate, accuracy, sketch, *heap}
}

// Insert adds _count_ occurrences of _key_. A zero count is ignored, and so is
// every insertion when _k_ is 0.
func (t *TopK) Insert(key string, count uint64) {
	if count == 0 || t.k == 0 {
		return
	}
	sketch := t.sketch
	sketch.Update(key, count)
	frequency := sketch.Count(key)
	if uint(len(t.heap)) < t.k || frequency >= t.heap[0].frequency {
		index := t.heap.IndexOf(key)
		if index > -1 {
			heap.Remove(&t.heap, index)
		}
		heap.Push(&t.heap, HeapElement{key, frequency})
		if uint(len(t.heap)) > t.k {
			heap.Pop(&t.heap)
		}
	}
}

// Values returns the tracked keys by decreasing frequency, ties broken alphabetically
func (t *TopK) Values() []TopKElement {
	results := make([]TopKElement, 0, len(t.heap))
	for i := len(t.heap) - 1; i >= 0; i-- {
		results = append(results, TopKElement{t.heap[i].value, t.heap[i].frequency})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Count == results[j].Count {
			return strings.Compare(results[i].Element, results[j].Element) < 0
		}
		return results[i].Count > results[j].Count
	})
	return results
}

// Equals checks if two TopK have the same parameters, sketch and heap
func (t *TopK) Equals(u *TopK) bool {
	if t.k != u.k || t.accuracy != u.accuracy || t.errorRate != u.errorRate {
		return false
	}
	if !t.sketch.Equals(u.sketch) || len(t.heap) != len(u.heap) {
		return false
	}
	for i := range t.heap {
		if t.heap[i] != u.heap[i] {
			return false
		}
	}
	return true
}
