package harness

import (
	"fmt"
	"math"

	"github.com/kwertop/trackbench/filters"
)

// Level names a preset trade-off between accuracy and memory
type Level string

const (
	High     Level = "high"
	Balanced Level = "balanced"
	Low      Level = "low"
)

// ParseLevel returns the Level named _s_
func ParseLevel(s string) (Level, error) {
	switch level := Level(s); level {
	case High, Balanced, Low:
		return level, nil
	}
	return "", fmt.Errorf("trackbench: unknown preset %q, expected high, balanced or low", s)
}

func BloomPreset(level Level) BloomConfig {
	switch level {
	case High:
		return BloomConfig{Size: 5000000, NumHashes: 8}
	case Low:
		return BloomConfig{Size: 10000, NumHashes: 2}
	}
	return BloomConfig{Size: 2500000, NumHashes: 5}
}

func CuckooPreset(level Level) CuckooConfig {
	config := DefaultConfig().Cuckoo
	switch level {
	case High:
		config.Capacity, config.BucketSize = 50000, 8
	case Low:
		config.Capacity, config.BucketSize = 1000, 2
	default:
		config.Capacity, config.BucketSize = 25000, 5
	}
	return config
}

func CountMinPreset(level Level) CountMinConfig {
	switch level {
	case High:
		return CountMinConfig{Width: 50000, Depth: 8}
	case Low:
		return CountMinConfig{Width: 1000, Depth: 3}
	}
	return CountMinConfig{Width: 25000, Depth: 6}
}

// Preset returns DefaultConfig with every structure sized for _level_
func Preset(level Level) Config {
	config := DefaultConfig()
	config.Bloom = BloomPreset(level)
	config.Cuckoo = CuckooPreset(level)
	config.CountMin = CountMinPreset(level)
	return config
}

func HighPerformance() Config {
	return Preset(High)
}

func BalancedPerformance() Config {
	return Preset(Balanced)
}

func LowPerformance() Config {
	return Preset(Low)
}

// BloomConfigFromEstimates sizes a Bloom filter for _numItems_ at _errorRate_
func BloomConfigFromEstimates(numItems uint, errorRate float64) BloomConfig {
	size, numHashes := filters.EstimateBloomParameters(numItems, errorRate)
	return BloomConfig{Size: size, NumHashes: numHashes}
}

// CuckooConfigFromEstimates picks the fingerprint length that keeps a full filter
// of _capacity_ slots below _errorRate_
func CuckooConfigFromEstimates(capacity, bucketSize uint64, errorRate float64) CuckooConfig {
	return CuckooConfig{
		Capacity:          capacity,
		BucketSize:        bucketSize,
		FingerPrintLength: filters.CalculateFingerPrintLength(bucketSize, errorRate),
		Retries:           filters.DefaultRetries,
	}
}

// CountMinConfigFromEstimates sizes a sketch whose overestimation stays below
// _errorRate_ * total with probability 1 - _delta_
func CountMinConfigFromEstimates(errorRate, delta float64) CountMinConfig {
	return CountMinConfig{
		Width: uint(math.Ceil(math.E / errorRate)),
		Depth: uint(math.Ceil(math.Log(1 / delta))),
	}
}
