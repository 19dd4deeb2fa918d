// Package gate decides pass/fail for CI consumption by comparing a fresh
// report against the stored baseline.
package gate

import (
	"errors"
	"fmt"

	"github.com/docvet/docvet/internal/domain"
)

// Outcome is the gate state after comparing report and baseline.
type Outcome string

const (
	NoBaseline          Outcome = "NO_BASELINE"
	BaselineMatch       Outcome = "BASELINE_MATCH"
	RegressionDetected  Outcome = "REGRESSION_DETECTED"
	ImprovementDetected Outcome = "IMPROVEMENT_DETECTED"
)

// ErrRegression is the sentinel the CLI maps to exit code 1.
var ErrRegression = errors.New("regression detected")

// Regression names one example that got worse and why.
type Regression struct {
	ExampleID string `json:"example_id"`
	Reason    string `json:"reason"`
}

// Decision is the gate's full verdict.
type Decision struct {
	Outcome      Outcome      `json:"outcome"`
	Regressions  []Regression `json:"regressions,omitempty"`
	Improvements []string     `json:"improvements,omitempty"`
	NewCriticals []string     `json:"new_criticals,omitempty"`
}

// Err maps the decision to the CLI error contract: regressions fail,
// everything else passes.
func (d Decision) Err() error {
	if d.Outcome == RegressionDetected {
		n := len(d.Regressions) + len(d.NewCriticals)
		return fmt.Errorf("%w: %d finding(s)", ErrRegression, n)
	}
	return nil
}

// Evaluate compares the report's per-example statuses against the baseline.
//
// Regressions: an example that was succeeding (or unknown) in the baseline
// and is not succeeding now, unless every one of its current violations has
// been explicitly accepted. A newly introduced critical violation always
// forces RegressionDetected, regardless of improvements elsewhere; the gate
// never lets a critical hide behind an improving aggregate.
func Evaluate(b *domain.Baseline, r *domain.Report) Decision {
	if b == nil {
		return Decision{Outcome: NoBaseline}
	}

	d := Decision{}

	violationsByExample := make(map[string][]domain.Violation)
	for _, v := range r.Violations {
		violationsByExample[v.ExampleID] = append(violationsByExample[v.ExampleID], v)
	}

	for _, ex := range r.Examples {
		prev, known := b.Statuses[ex.ID]
		now := ex.Status

		switch {
		case now == domain.StatusSuccess:
			if known && prev != domain.StatusSuccess {
				d.Improvements = append(d.Improvements, ex.ID)
			}
		case !known:
			if !waived(b, violationsByExample[ex.ID]) {
				d.Regressions = append(d.Regressions, Regression{
					ExampleID: ex.ID,
					Reason:    fmt.Sprintf("new example fails with %s", now),
				})
			}
		case prev == domain.StatusSuccess:
			if !waived(b, violationsByExample[ex.ID]) {
				d.Regressions = append(d.Regressions, Regression{
					ExampleID: ex.ID,
					Reason:    fmt.Sprintf("was %s, now %s", prev, now),
				})
			}
			// Previously failing examples that still fail are neither
			// regression nor improvement.
		}
	}

	for _, v := range r.CriticalViolations() {
		id := v.Identity()
		if b.HasViolation(id) || b.Accepted(id) {
			continue
		}
		d.NewCriticals = append(d.NewCriticals, id)
	}

	switch {
	case len(d.Regressions) > 0 || len(d.NewCriticals) > 0:
		d.Outcome = RegressionDetected
	case len(d.Improvements) > 0:
		d.Outcome = ImprovementDetected
	default:
		d.Outcome = BaselineMatch
	}
	return d
}

// waived reports whether a failing example is fully covered by accepted
// violation identities. An example with no violations at all cannot be
// waived; there is nothing on record to accept.
func waived(b *domain.Baseline, vs []domain.Violation) bool {
	if len(vs) == 0 {
		return false
	}
	for _, v := range vs {
		if !b.Accepted(v.Identity()) {
			return false
		}
	}
	return true
}
