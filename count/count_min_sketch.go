package count

import (
	"fmt"
	"math"
)

// CountMinSketch is a _rows_ x _columns_ matrix of 32 bit counters. Counters
// saturate at math.MaxUint32 instead of wrapping.
type CountMinSketch struct {
	AbstractCountMinSketch
	matrix [][]uint32
}

// NewCountMinSketch creates a Count-Min Sketch with _rows_ hash functions (depth) and
// _columns_ counters per row (width)
func NewCountMinSketch(rows, columns uint) (*CountMinSketch, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("trackbench: rows and columns size should be greater than 0")
	}
	abstractSketch := MakeAbstractCountMinSketch(rows, columns, 0)
	matrix := make([][]uint32, rows)
	for i := range matrix {
		matrix[i] = make([]uint32, columns)
	}
	sketch := &CountMinSketch{*abstractSketch, matrix}
	return sketch, nil
}

// NewCountMinSketchFromEstimates sizes the sketch so that estimates exceed the true
// count by at most _errorRate_ * total with probability 1 - _delta_
func NewCountMinSketchFromEstimates(errorRate, delta float64) (*CountMinSketch, error) {
	columns := uint(math.Ceil(math.E / errorRate))
	rows := uint(math.Ceil(math.Log(1 / delta)))
	return NewCountMinSketch(rows, columns)
}

func (cms *CountMinSketch) UpdateOnce(key string) {
	cms.Update(key, 1)
}

// Update adds _count_ to the counter of _key_ in every row
func (cms *CountMinSketch) Update(key string, count uint64) {
	for r, c := range cms.getPositions(key) {
		cms.matrix[r][c] = saturatingAdd(cms.matrix[r][c], count)
	}
	cms.allSum += count
}

// Count returns the estimated count of _key_, the smallest of its counters.
// It's never lower than the true count (barring saturation).
func (cms *CountMinSketch) Count(key string) uint64 {
	var min uint32
	for r, c := range cms.getPositions(key) {
		if r == 0 || cms.matrix[r][c] < min {
			min = cms.matrix[r][c]
		}
	}
	return uint64(min)
}

// MemoryUsage returns the size of the counter matrix in bytes, 4 bytes per counter
func (cms *CountMinSketch) MemoryUsage() float64 {
	return float64(cms.rows*cms.columns) * 4
}

// CountMinPositiveRate estimates the probability that a key never added has a non zero
// count, (1 - e^(-total/columns))^rows
func (cms *CountMinSketch) CountMinPositiveRate() float64 {
	if cms.allSum == 0 {
		return 0
	}
	return math.Pow(1-math.Exp(-float64(cms.allSum)/float64(cms.columns)), float64(cms.rows))
}

// AverageError returns the expected overestimation of a count, total/columns
func (cms *CountMinSketch) AverageError() float64 {
	return float64(cms.allSum) / float64(cms.columns)
}

// Merge adds the counters of _cms1_ into _cms_. Both sketches must have the same shape.
func (cms *CountMinSketch) Merge(cms1 *CountMinSketch) error {
	if cms.rows != cms1.rows {
		return fmt.Errorf("trackbench: can't merge sketches with unequal row counts, %d and %d", cms.rows, cms1.rows)
	}
	if cms.columns != cms1.columns {
		return fmt.Errorf("trackbench: can't merge sketches with unequal column counts, %d and %d", cms.columns, cms1.columns)
	}
	for i := range cms.matrix {
		for j := range cms.matrix[i] {
			cms.matrix[i][j] = saturatingAdd(cms.matrix[i][j], uint64(cms1.matrix[i][j]))
		}
	}
	cms.allSum += cms1.allSum
	return nil
}

func (cms *CountMinSketch) Equals(cms1 *CountMinSketch) bool {
	if cms.rows != cms1.rows || cms.columns != cms1.columns || cms.allSum != cms1.allSum {
		return false
	}
	for i := range cms.matrix {
		for j := range cms.matrix[i] {
			if cms.matrix[i][j] != cms1.matrix[i][j] {
				return false
			}
		}
	}
	return true
}

func saturatingAdd(counter uint32, count uint64) uint32 {
	if count >= uint64(math.MaxUint32-counter) {
		return math.MaxUint32
	}
	return counter + uint32(count)
}
