package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kwertop/trackbench/filters"
	"github.com/pkg/errors"
)

const (
	DefaultInsertionCap = 10000
	DefaultTrialSize    = 5000
	DefaultTrialOffset  = 5000000
	DefaultTopK         = 10
	DefaultSpeed        = 100
	MaxSpeed            = 100
)

// BloomConfig sizes the Bloom filter
// _Size_ is the number of bits (m), _NumHashes_ the number of hash functions (k)
type BloomConfig struct {
	Size      uint `json:"size"`
	NumHashes uint `json:"num_hashes"`
}

// CuckooConfig sizes the Cuckoo filter
type CuckooConfig struct {
	Capacity          uint64 `json:"capacity"`
	BucketSize        uint64 `json:"bucket_size"`
	FingerPrintLength uint64 `json:"fingerprint_length"`
	Retries           uint64 `json:"retries"`
}

// CountMinConfig sizes the Count-Min Sketch
type CountMinConfig struct {
	Width uint `json:"width"`
	Depth uint `json:"depth"`
}

// Config is everything a Harness is built from. It's a plain value: changing it
// after Configure has no effect on the running structures.
//
// _TrialOffset_ is added to the insertion index space to generate trial keys,
// it must be at least _InsertionCap_ so that trial keys are never inserted.
// _Speed_ is in [1, 100], the pacing interval between steps is (101 - Speed) ms.
// An empty _RedisURI_ keeps the exact set in memory.
type Config struct {
	Bloom        BloomConfig    `json:"bloom"`
	Cuckoo       CuckooConfig   `json:"cuckoo"`
	CountMin     CountMinConfig `json:"count_min"`
	InsertionCap uint64         `json:"insertion_cap"`
	TrialSize    uint64         `json:"trial_size"`
	TrialOffset  uint64         `json:"trial_offset"`
	Seed         int64          `json:"seed"`
	TopK         uint           `json:"top_k"`
	Speed        int            `json:"speed"`
	RedisURI     string         `json:"redis_uri"`
}

// DefaultConfig returns the configuration used when nothing else is specified
func DefaultConfig() Config {
	return Config{
		Bloom: BloomConfig{Size: 1000000, NumHashes: 3},
		Cuckoo: CuckooConfig{
			Capacity:          10000,
			BucketSize:        4,
			FingerPrintLength: filters.DefaultFingerPrintLength,
			Retries:           filters.DefaultRetries,
		},
		CountMin:     CountMinConfig{Width: 10000, Depth: 5},
		InsertionCap: DefaultInsertionCap,
		TrialSize:    DefaultTrialSize,
		TrialOffset:  DefaultTrialOffset,
		Seed:         1,
		TopK:         DefaultTopK,
		Speed:        DefaultSpeed,
	}
}

// Interval returns the pause between two paced steps
func (c Config) Interval() time.Duration {
	return time.Duration(MaxSpeed+1-c.Speed) * time.Millisecond
}

// Validate checks that every structure can be built from _c_
func (c Config) Validate() error {
	switch {
	case c.Bloom.Size == 0 || c.Bloom.NumHashes == 0:
		return fmt.Errorf("%w: bloom size %d and hash count %d should be greater than 0", ErrInvalidConfig, c.Bloom.Size, c.Bloom.NumHashes)
	case c.Cuckoo.Capacity == 0 || c.Cuckoo.BucketSize == 0:
		return fmt.Errorf("%w: cuckoo capacity %d and bucket size %d should be greater than 0", ErrInvalidConfig, c.Cuckoo.Capacity, c.Cuckoo.BucketSize)
	case c.Cuckoo.FingerPrintLength == 0 || c.Cuckoo.FingerPrintLength > filters.MaxFingerPrintLength:
		return fmt.Errorf("%w: cuckoo fingerprint length %d should be between 1 and %d", ErrInvalidConfig, c.Cuckoo.FingerPrintLength, filters.MaxFingerPrintLength)
	case c.Cuckoo.Retries == 0:
		return fmt.Errorf("%w: cuckoo retries should be greater than 0", ErrInvalidConfig)
	case c.CountMin.Width == 0 || c.CountMin.Depth == 0:
		return fmt.Errorf("%w: count-min width %d and depth %d should be greater than 0", ErrInvalidConfig, c.CountMin.Width, c.CountMin.Depth)
	case c.InsertionCap == 0 || c.TrialSize == 0:
		return fmt.Errorf("%w: insertion cap %d and trial size %d should be greater than 0", ErrInvalidConfig, c.InsertionCap, c.TrialSize)
	case c.TrialOffset < c.InsertionCap:
		return fmt.Errorf("%w: trial offset %d overlaps the insertion range [0, %d)", ErrInvalidConfig, c.TrialOffset, c.InsertionCap)
	case c.Speed < 1 || c.Speed > MaxSpeed:
		return fmt.Errorf("%w: speed %d should be between 1 and %d", ErrInvalidConfig, c.Speed, MaxSpeed)
	}
	return nil
}

// LoadConfig reads a JSON configuration file. Fields missing from the file keep
// their DefaultConfig value.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrap(err, "reading config")
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := config.Validate(); err != nil {
		return config, errors.Wrapf(err, "validating config %s", path)
	}
	return config, nil
}
