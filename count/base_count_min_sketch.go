/*
Package count implements frequency estimation over a stream of keys:
a Count-Min Sketch and a Top-K heavy hitters tracker built on top of it.
*/
package count

import (
	"github.com/kwertop/trackbench/hash"
)

type BaseCountMinSketch interface {
	GetRows() uint
	GetColumns() uint
	Update(key string, count uint64)
	Count(key string) uint64
	UpdateOnce(key string)
}

// AbstractCountMinSketch holds the shape of a sketch
// _rows_ is the depth, one hash function per row
// _columns_ is the width, the number of counters per row
// _allSum_ is the total weight added so far
type AbstractCountMinSketch struct {
	BaseCountMinSketch
	rows    uint
	columns uint
	allSum  uint64
}

func MakeAbstractCountMinSketch(rows, columns uint, allSum uint64) *AbstractCountMinSketch {
	cms := &AbstractCountMinSketch{}
	cms.rows = rows
	cms.columns = columns
	cms.allSum = allSum
	return cms
}

func (cms *AbstractCountMinSketch) GetRows() uint {
	return cms.rows
}

func (cms *AbstractCountMinSketch) GetColumns() uint {
	return cms.columns
}

// TotalCount returns the sum of all the weights added to the sketch
func (cms *AbstractCountMinSketch) TotalCount() uint64 {
	return cms.allSum
}

// getPositions returns the column of _key_ in every row. Row r hashes with seed r.
func (cms AbstractCountMinSketch) getPositions(key string) []uint {
	positions := make([]uint, cms.rows)
	for r := range positions {
		positions[r] = uint(hash.Index(key, int32(r), uint64(cms.columns)))
	}
	return positions
}
