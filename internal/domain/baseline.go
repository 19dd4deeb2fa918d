package domain

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Baseline is the fingerprint of a previously accepted Report. It is
// read at gate start and written only on an explicit accept; the file
// format keeps every collection sorted so version-control diffs stay
// readable.
type Baseline struct {
	Digest               string            `json:"digest"`
	CreatedAt            time.Time         `json:"created_at"`
	CommitHash           string            `json:"commit_hash,omitempty"`
	Statuses             map[string]Status `json:"statuses"`
	ViolationIDs         []string          `json:"violation_ids"`
	AcceptedViolationIDs []string          `json:"accepted_violation_ids"`
}

// NewBaseline fingerprints a report. The accepted set is carried over by
// the caller from the previous baseline, if any.
func NewBaseline(r *Report, accepted []string) *Baseline {
	statuses := r.StatusByExample()

	ids := make(map[string]bool)
	for _, v := range r.Violations {
		ids[v.Identity()] = true
	}

	b := &Baseline{
		Digest:               ReportDigest(statuses),
		CreatedAt:            r.Timestamp,
		CommitHash:           r.CommitHash,
		Statuses:             statuses,
		ViolationIDs:         sortedKeys(ids),
		AcceptedViolationIDs: dedupSorted(accepted),
	}
	return b
}

// Accepted reports whether a violation identity has been explicitly waived.
func (b *Baseline) Accepted(violationID string) bool {
	for _, id := range b.AcceptedViolationIDs {
		if id == violationID {
			return true
		}
	}
	return false
}

// HasViolation reports whether the baseline recorded a violation identity.
func (b *Baseline) HasViolation(violationID string) bool {
	for _, id := range b.ViolationIDs {
		if id == violationID {
			return true
		}
	}
	return false
}

// ReportDigest hashes the per-example status map. It is computed over
// sorted "id=status" lines so it is stable across cosmetic report changes
// and worker completion order.
func ReportDigest(statuses map[string]Status) string {
	lines := make([]string, 0, len(statuses))
	for id, st := range statuses {
		lines = append(lines, id+"="+string(st))
	}
	sort.Strings(lines)

	h := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return fmt.Sprintf("%x", h)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func dedupSorted(items []string) []string {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		if it != "" {
			set[it] = true
		}
	}
	return sortedKeys(set)
}
