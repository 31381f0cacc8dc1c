/*
Package harness drives the tracking structures side by side: it generates URL-like
keys, inserts every key in an exact set, a Bloom filter, a Cuckoo filter and a
Count-Min Sketch while timing each of them, and measures their false positives
against keys that were never inserted.
*/
package harness

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/kwertop/trackbench/baseline"
	"github.com/kwertop/trackbench/count"
	"github.com/kwertop/trackbench/filters"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidConfig          = errors.New("trackbench: invalid configuration")
	ErrNotConfigured          = errors.New("trackbench: harness isn't configured")
	ErrInvalidTransition      = errors.New("trackbench: invalid state transition")
	ErrReconfigureAfterInsert = errors.New("trackbench: can't reconfigure after insertions, reset first")
	ErrCapReached             = errors.New("trackbench: insertion cap reached")
)

const (
	sectionErrorRate = 0.001
	sectionDelta     = 0.01
)

type State int

const (
	Idle State = iota
	Configuring
	Ready
	Running
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Configuring:
		return "configuring"
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Harness owns the exact set and the three approximate structures. They are only
// ever mutated through Step and read through Snapshot and RunTrial.
// Harness isn't safe for concurrent use.
type Harness struct {
	state     State
	config    Config
	log       *logrus.Entry
	generator *Generator

	exact    baseline.ExactSet
	bloom    *filters.BloomFilter
	cuckoo   *filters.CuckooFilter
	cms      *count.CountMinSketch
	sections *count.TopK

	count uint64
	last  Timings
	total Timings
	trial *TrialResult
}

// New creates an Idle harness logging to _log_, or to the standard logger if nil
func New(log *logrus.Entry) *Harness {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Harness{state: Idle, log: log.WithField("component", "harness")}
}

func (h *Harness) State() State {
	return h.state
}

// Config returns the configuration the structures were built from
func (h *Harness) Config() Config {
	return h.config
}

// Count returns the number of keys inserted so far
func (h *Harness) Count() uint64 {
	return h.count
}

// Configure builds fresh structures from _config_. It's allowed until the first
// insertion, after that the harness must be Reset.
func (h *Harness) Configure(config Config) error {
	switch h.state {
	case Idle, Configuring, Ready:
	default:
		if h.count > 0 {
			return ErrReconfigureAfterInsert
		}
		return fmt.Errorf("%w: configure from %s", ErrInvalidTransition, h.state)
	}
	h.setState(Configuring)
	if err := h.build(config); err != nil {
		h.release()
		return err
	}
	h.log.WithFields(logrus.Fields{
		"bloom":     config.Bloom,
		"cuckoo":    config.Cuckoo,
		"count_min": config.CountMin,
		"cap":       config.InsertionCap,
		"redis":     config.RedisURI != "",
	}).Debug("structures configured")
	h.setState(Ready)
	return nil
}

// build replaces the structures with fresh ones sized by _config_. On error the
// previous structures are left in place for the caller to release.
func (h *Harness) build(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	exact, err := newExactSet(config)
	if err != nil {
		return err
	}
	cuckoo, err := filters.NewCuckooFilterWithRetries(config.Cuckoo.Capacity, config.Cuckoo.BucketSize,
		config.Cuckoo.FingerPrintLength, config.Cuckoo.Retries, rand.New(rand.NewSource(config.Seed)))
	if err != nil {
		return err
	}
	cms, err := count.NewCountMinSketch(config.CountMin.Depth, config.CountMin.Width)
	if err != nil {
		return err
	}
	h.discard()
	h.config = config
	h.exact = exact
	h.bloom = filters.NewBloomFilter(config.Bloom.Size, config.Bloom.NumHashes)
	h.cuckoo = cuckoo
	h.cms = cms
	h.sections = nil
	if config.TopK > 0 {
		h.sections = count.NewTopK(config.TopK, sectionErrorRate, sectionDelta)
	}
	h.generator = NewGenerator(config.Seed)
	h.last, h.total = Timings{}, Timings{}
	h.trial = nil
	return nil
}

// Start moves a configured harness to Running
func (h *Harness) Start() error {
	switch h.state {
	case Ready:
		h.setState(Running)
		return nil
	case Idle, Configuring:
		return ErrNotConfigured
	}
	return fmt.Errorf("%w: start from %s", ErrInvalidTransition, h.state)
}

func (h *Harness) Pause() error {
	if h.state != Running {
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, h.state)
	}
	h.setState(Paused)
	return nil
}

func (h *Harness) Resume() error {
	if h.state != Paused {
		return fmt.Errorf("%w: resume from %s", ErrInvalidTransition, h.state)
	}
	h.setState(Running)
	return nil
}

// Reset discards every structure and measurement and goes back to Configuring
func (h *Harness) Reset() error {
	err := h.release()
	h.setState(Configuring)
	return err
}

// StepResult describes the key inserted by one Step
type StepResult struct {
	Key          string  `json:"key"`
	Timings      Timings `json:"timings"`
	CuckooStored bool    `json:"cuckoo_stored"`
}

// Step generates the next key and inserts it in every structure, timing each
// insertion. A failed Cuckoo insertion isn't an error, the key is just not stored
// there. The harness stops by itself once the insertion cap is reached.
func (h *Harness) Step() (StepResult, error) {
	switch h.state {
	case Running:
	case Stopped:
		return StepResult{}, ErrCapReached
	case Idle, Configuring:
		return StepResult{}, ErrNotConfigured
	default:
		return StepResult{}, fmt.Errorf("%w: step while %s", ErrInvalidTransition, h.state)
	}

	key := h.generator.URL(h.count)
	var timings Timings

	start := time.Now()
	if _, err := h.exact.Add(key); err != nil {
		return StepResult{}, err
	}
	timings.ExactSet = time.Since(start)

	start = time.Now()
	h.bloom.Insert(key)
	timings.Bloom = time.Since(start)

	start = time.Now()
	stored := h.cuckoo.Insert(key)
	timings.Cuckoo = time.Since(start)

	start = time.Now()
	h.cms.UpdateOnce(key)
	timings.CountMin = time.Since(start)

	if h.sections != nil {
		h.sections.Insert(Section(key), 1)
	}
	if !stored {
		h.log.WithFields(logrus.Fields{
			"key":         key,
			"load_factor": h.cuckoo.LoadFactor(),
			"failures":    h.cuckoo.Failures(),
		}).Debug("cuckoo insertion failed")
	}

	h.count++
	h.last = timings
	h.total.add(timings)
	if h.count >= h.config.InsertionCap {
		h.setState(Stopped)
		h.log.WithField("count", h.count).Info("insertion cap reached")
	}
	return StepResult{Key: key, Timings: timings, CuckooStored: stored}, nil
}

// RunTrial queries every approximate structure with TrialSize keys taken past
// TrialOffset, far from the insertion range, and counts the positives the exact
// set disagrees with. It can run in any configured state. Trial keys come from
// their own generator so a trial never shifts the keys inserted after it.
func (h *Harness) RunTrial() (TrialResult, error) {
	if h.state == Idle || h.state == Configuring {
		return TrialResult{}, ErrNotConfigured
	}
	trials := NewGenerator(h.config.Seed)
	var bloomFP, cuckooFP, cmsFP uint64
	total := h.config.TrialSize
	for i := uint64(0); i < total; i++ {
		key := trials.URL(h.count + h.config.TrialOffset + i)
		present, err := h.exact.Contains(key)
		if err != nil {
			return TrialResult{}, err
		}
		if present {
			continue
		}
		if h.bloom.Lookup(key) {
			bloomFP++
		}
		if h.cuckoo.Lookup(key) {
			cuckooFP++
		}
		if h.cms.Count(key) > 0 {
			cmsFP++
		}
	}
	result := TrialResult{
		Total:    total,
		Inserted: h.count,
		Bloom:    newStructureTrial(bloomFP, total, h.bloom.BloomPositiveRate()),
		Cuckoo:   newStructureTrial(cuckooFP, total, h.cuckoo.CuckooPositiveRate()),
		CountMin: newStructureTrial(cmsFP, total, h.cms.CountMinPositiveRate()),
	}
	h.trial = &result
	h.log.WithFields(logrus.Fields{
		"inserted":  h.count,
		"trials":    total,
		"bloom":     bloomFP,
		"cuckoo":    cuckooFP,
		"count_min": cmsFP,
	}).Info("false positive trial done")
	return result, nil
}

// Metrics is a read-only view of the harness
type Metrics struct {
	State          string              `json:"state"`
	Count          uint64              `json:"count"`
	InsertionCap   uint64              `json:"insertion_cap"`
	LastTimings    Timings             `json:"last_timings"`
	TotalTimings   Timings             `json:"total_timings"`
	Memory         Memory              `json:"memory"`
	BloomFillRatio float64             `json:"bloom_fill_ratio"`
	CuckooStored   uint64              `json:"cuckoo_stored"`
	CuckooFailures uint64              `json:"cuckoo_failures"`
	CuckooLoad     float64             `json:"cuckoo_load_factor"`
	CountMinTotal  uint64              `json:"count_min_total"`
	CountMinError  float64             `json:"count_min_average_error"`
	TopSections    []count.TopKElement `json:"top_sections,omitempty"`
	Trial          *TrialResult        `json:"trial,omitempty"`
}

// Snapshot returns the current Metrics. Before Configure only State is set.
func (h *Harness) Snapshot() Metrics {
	metrics := Metrics{State: h.state.String(), Count: h.count}
	if h.bloom == nil {
		return metrics
	}
	metrics.InsertionCap = h.config.InsertionCap
	metrics.LastTimings = h.last
	metrics.TotalTimings = h.total
	metrics.Memory = Memory{
		ExactSet: BytesToMB(h.exact.MemoryUsage()),
		Bloom:    BytesToMB(h.bloom.MemoryUsage()),
		Cuckoo:   BytesToMB(h.cuckoo.MemoryUsage()),
		CountMin: BytesToMB(h.cms.MemoryUsage()),
	}
	metrics.BloomFillRatio = h.bloom.FillRatio()
	metrics.CuckooStored = h.cuckoo.Length()
	metrics.CuckooFailures = h.cuckoo.Failures()
	metrics.CuckooLoad = h.cuckoo.LoadFactor()
	metrics.CountMinTotal = h.cms.TotalCount()
	metrics.CountMinError = h.cms.AverageError()
	if h.sections != nil {
		metrics.TopSections = h.sections.Values()
	}
	if h.trial != nil {
		trial := *h.trial
		metrics.Trial = &trial
	}
	return metrics
}

func (h *Harness) setState(state State) {
	if state == h.state {
		return
	}
	h.log.WithFields(logrus.Fields{"from": h.state, "to": state}).Debug("state change")
	h.state = state
}

// release drops every structure and measurement
func (h *Harness) release() error {
	err := h.discard()
	h.exact, h.bloom, h.cuckoo, h.cms, h.sections, h.generator = nil, nil, nil, nil, nil, nil
	h.count = 0
	h.last, h.total = Timings{}, Timings{}
	h.trial = nil
	return err
}

// discard releases the exact set of the previous configuration
func (h *Harness) discard() error {
	if h.exact == nil {
		return nil
	}
	if err := h.exact.Clear(); err != nil {
		h.log.WithError(err).Warn("could not clear exact set")
		return err
	}
	return nil
}

func newExactSet(config Config) (baseline.ExactSet, error) {
	if config.RedisURI == "" {
		return baseline.NewMemSet(), nil
	}
	options, err := baseline.ParseRedisURI(config.RedisURI)
	if err != nil {
		return nil, err
	}
	baseline.MakeRedisClient(*options)
	return baseline.NewRedisSet()
}
