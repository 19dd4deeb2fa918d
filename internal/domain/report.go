package domain

import (
	"sort"
	"time"
)

// ExampleOutcome is the per-example row of a Report.
type ExampleOutcome struct {
	ID         string      `json:"id"`
	SourcePath string      `json:"source_path"`
	Line       int         `json:"line"`
	Kind       ExampleKind `json:"kind"`
	Status     Status      `json:"status"`
	Malformed  bool        `json:"malformed,omitempty"`
	DurationMS int64       `json:"duration_ms"`
}

// Report is the aggregate output of one full validation run.
type Report struct {
	RunID                    string           `json:"run_id"`
	Timestamp                time.Time        `json:"timestamp"`
	CommitHash               string           `json:"commit_hash,omitempty"`
	TotalExamples            int              `json:"total_examples"`
	CountsByStatus           map[Status]int   `json:"counts_by_status"`
	MalformedExamples        int              `json:"malformed_examples"`
	ExcludeMalformedFromRate bool             `json:"exclude_malformed_from_rate"`
	Examples                 []ExampleOutcome `json:"examples"`
	Violations               []Violation      `json:"violations"`
}

// SuccessRate is always recomputed from the status counts so it cannot
// drift from them through serialization.
func (r *Report) SuccessRate() float64 {
	total := r.TotalExamples
	if r.ExcludeMalformedFromRate {
		total -= r.MalformedExamples
	}
	if total <= 0 {
		return 0
	}
	return float64(r.CountsByStatus[StatusSuccess]) / float64(total)
}

// StatusByExample returns the per-example status map used for baseline
// digests and gate comparison.
func (r *Report) StatusByExample() map[string]Status {
	m := make(map[string]Status, len(r.Examples))
	for _, e := range r.Examples {
		m[e.ID] = e.Status
	}
	return m
}

// CriticalViolations returns the critical subset in report order.
func (r *Report) CriticalViolations() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == SeverityCritical {
			out = append(out, v)
		}
	}
	return out
}

// ValidatedExample bundles the triple handed to the aggregator.
type ValidatedExample struct {
	Example    Example
	Result     ExecutionResult
	Violations []Violation
}

// ReportOptions carries run metadata into BuildReport.
type ReportOptions struct {
	RunID                    string
	CommitHash               string
	Timestamp                time.Time
	ExcludeMalformedFromRate bool
}

// BuildReport folds per-example results into one Report. Workers may
// complete in any order; the fold restores the deterministic discovery
// order (source path, then line) so repeated runs are diffable.
func BuildReport(items []ValidatedExample, opts ReportOptions) *Report {
	sorted := make([]ValidatedExample, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Example, sorted[j].Example
		if a.SourcePath != b.SourcePath {
			return a.SourcePath < b.SourcePath
		}
		return a.Line < b.Line
	})

	ts := opts.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	report := &Report{
		RunID:                    opts.RunID,
		Timestamp:                ts,
		CommitHash:               opts.CommitHash,
		TotalExamples:            len(sorted),
		CountsByStatus:           make(map[Status]int),
		ExcludeMalformedFromRate: opts.ExcludeMalformedFromRate,
	}

	for _, item := range sorted {
		ex, res := item.Example, item.Result

		// Every example lands in exactly one status bucket.
		report.CountsByStatus[res.Status]++
		if ex.Malformed {
			report.MalformedExamples++
		}

		report.Examples = append(report.Examples, ExampleOutcome{
			ID:         ex.ID,
			SourcePath: ex.SourcePath,
			Line:       ex.Line,
			Kind:       ex.Kind,
			Status:     res.Status,
			Malformed:  ex.Malformed,
			DurationMS: res.DurationMS,
		})
		report.Violations = append(report.Violations, item.Violations...)
	}

	return report
}
