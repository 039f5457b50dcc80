// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutcomeStatus is the terminal state of one conversion task.
type OutcomeStatus string

const (
	OutcomeConverted OutcomeStatus = "converted"
	OutcomeFailed    OutcomeStatus = "failed"
)

// Outcome is the result of one conversion task. Each task produces exactly
// one Outcome; outcomes are never retried and never mutated after creation.
type Outcome struct {
	// Input is the (sanitized) source file path.
	Input string `json:"input" yaml:"input"`

	// Output is the derived target path. Empty when the task failed before
	// an output path could be derived (e.g. a sanitization collision).
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Status tags the outcome as converted or failed.
	Status OutcomeStatus `json:"status" yaml:"status"`

	// Reason carries the failure diagnostic, verbatim from the backend
	// where one was reported. Empty on success.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Success reports whether the outcome is a successful conversion.
func (o Outcome) Success() bool {
	return o.Status == OutcomeConverted
}
