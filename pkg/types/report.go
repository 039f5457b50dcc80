// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// BatchReport aggregates conversion outcomes for one run. It is built by
// folding outcomes one at a time; the fold is commutative, so outcome
// arrival order does not matter.
type BatchReport struct {
	Attempted int `json:"attempted" yaml:"attempted"`
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Add folds one outcome into the report.
func (r *BatchReport) Add(o Outcome) {
	r.Attempted++
	if o.Success() {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

// SuccessRate returns the percentage of succeeded outcomes formatted with
// two decimal places, e.g. "66.67%". An empty batch reports "0.00%".
func (r BatchReport) SuccessRate() string {
	if r.Attempted == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(r.Succeeded)/float64(r.Attempted)*100)
}

// HasFailures reports whether any task failed.
func (r BatchReport) HasFailures() bool {
	return r.Failed > 0
}

// AllFailed reports total failure: a non-empty batch with zero successes.
// Callers use this to decide exit-code policy.
func (r BatchReport) AllFailed() bool {
	return r.Attempted > 0 && r.Succeeded == 0
}
