package harness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRate(t *testing.T) {
	assert.Zero(t, Rate(0, 0))
	assert.Zero(t, Rate(3, 0))
	assert.Equal(t, 0.25, Rate(1, 4))
}

func TestBytesToMB(t *testing.T) {
	assert.Equal(t, 1.0, BytesToMB(1024*1024))
	assert.Equal(t, 0.5, BytesToMB(512*1024))
}

func TestTimingsAverage(t *testing.T) {
	total := Timings{ExactSet: 4 * time.Microsecond, Bloom: 8 * time.Microsecond, Cuckoo: 12 * time.Microsecond, CountMin: 16 * time.Microsecond}
	assert.Equal(t, Timings{time.Microsecond, 2 * time.Microsecond, 3 * time.Microsecond, 4 * time.Microsecond}, total.Average(4))
	assert.Equal(t, Timings{}, total.Average(0))
}
