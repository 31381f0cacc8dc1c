package harness

import "time"

const bytesPerMB = 1024 * 1024

// Rate returns _count_ / _total_, 0 when _total_ is 0
func Rate(count, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

// BytesToMB converts a byte count to mebibytes
func BytesToMB(bytes float64) float64 {
	return bytes / bytesPerMB
}

// Timings holds one duration per tracker
type Timings struct {
	ExactSet time.Duration `json:"exact_set"`
	Bloom    time.Duration `json:"bloom"`
	Cuckoo   time.Duration `json:"cuckoo"`
	CountMin time.Duration `json:"count_min"`
}

func (t *Timings) add(o Timings) {
	t.ExactSet += o.ExactSet
	t.Bloom += o.Bloom
	t.Cuckoo += o.Cuckoo
	t.CountMin += o.CountMin
}

// Average divides every duration by _n_, zero when _n_ is 0
func (t Timings) Average(n uint64) Timings {
	if n == 0 {
		return Timings{}
	}
	d := time.Duration(n)
	return Timings{t.ExactSet / d, t.Bloom / d, t.Cuckoo / d, t.CountMin / d}
}

// Memory holds one memory estimate per tracker, in MB
type Memory struct {
	ExactSet float64 `json:"exact_set_mb"`
	Bloom    float64 `json:"bloom_mb"`
	Cuckoo   float64 `json:"cuckoo_mb"`
	CountMin float64 `json:"count_min_mb"`
}

// StructureTrial is the outcome of a trial for one approximate structure
type StructureTrial struct {
	FalsePositives uint64  `json:"false_positives"`
	Empirical      float64 `json:"empirical_rate"`
	Theoretical    float64 `json:"theoretical_rate"`
}

func newStructureTrial(falsePositives, total uint64, theoretical float64) StructureTrial {
	return StructureTrial{falsePositives, Rate(falsePositives, total), theoretical}
}

// TrialResult is the outcome of querying every structure with keys never inserted
type TrialResult struct {
	Total    uint64         `json:"total"`
	Inserted uint64         `json:"inserted"`
	Bloom    StructureTrial `json:"bloom"`
	Cuckoo   StructureTrial `json:"cuckoo"`
	CountMin StructureTrial `json:"count_min"`
}
