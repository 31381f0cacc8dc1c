package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/kwertop/trackbench/harness"
)

type report struct {
	Config  harness.Config  `json:"config"`
	Metrics harness.Metrics `json:"metrics"`
	Average harness.Timings `json:"average_timings"`
}

func newReport(config harness.Config, metrics harness.Metrics) report {
	return report{config, metrics, metrics.TotalTimings.Average(metrics.Count)}
}

func (r report) writeJSON(out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

func percent(rate float64) string {
	return fmt.Sprintf("%.6f%%", rate*100)
}

func (r report) writeText(out io.Writer) error {
	m := r.Metrics
	fmt.Fprintf(out, "%d URLs inserted (%s)\n\n", m.Count, m.State)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STRUCTURE\tLAST INSERT\tAVG INSERT\tMEMORY (MB)\tFALSE POSITIVES\tEMPIRICAL\tTHEORETICAL")
	fmt.Fprintf(w, "exact set\t%v\t%v\t%.6f\t-\t-\t-\n", m.LastTimings.ExactSet, r.Average.ExactSet, m.Memory.ExactSet)
	rows := []struct {
		name   string
		last   time.Duration
		avg    time.Duration
		memory float64
		trial  harness.StructureTrial
	}{
		{"bloom", m.LastTimings.Bloom, r.Average.Bloom, m.Memory.Bloom, harness.StructureTrial{}},
		{"cuckoo", m.LastTimings.Cuckoo, r.Average.Cuckoo, m.Memory.Cuckoo, harness.StructureTrial{}},
		{"count-min", m.LastTimings.CountMin, r.Average.CountMin, m.Memory.CountMin, harness.StructureTrial{}},
	}
	if m.Trial != nil {
		rows[0].trial, rows[1].trial, rows[2].trial = m.Trial.Bloom, m.Trial.Cuckoo, m.Trial.CountMin
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%v\t%v\t%.6f\t%d\t%s\t%s\n", row.name, row.last, row.avg, row.memory,
			row.trial.FalsePositives, percent(row.trial.Empirical), percent(row.trial.Theoretical))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if m.Trial != nil {
		fmt.Fprintf(out, "\ntrial: %d never inserted URLs\n", m.Trial.Total)
	}
	fmt.Fprintf(out, "bloom: fill ratio %.4f\n", m.BloomFillRatio)
	fmt.Fprintf(out, "cuckoo: %d stored, %d failed, load factor %.4f\n", m.CuckooStored, m.CuckooFailures, m.CuckooLoad)
	fmt.Fprintf(out, "count-min: total %d, average error %.4f\n", m.CountMinTotal, m.CountMinError)

	if len(m.TopSections) == 0 {
		return nil
	}
	fmt.Fprintln(out, "\nhottest sections:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, section := range m.TopSections {
		fmt.Fprintf(w, "  %s\t%d\n", section.Element, section.Count)
	}
	return w.Flush()
}
