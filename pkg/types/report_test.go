// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestBatchReport_Add(t *testing.T) {
	var r BatchReport
	outcomes := []Outcome{
		{Input: "a.docx", Status: OutcomeConverted},
		{Input: "b.docx", Status: OutcomeFailed, Reason: "boom"},
		{Input: "c.docx", Status: OutcomeConverted},
	}
	for _, o := range outcomes {
		r.Add(o)
	}

	if r.Attempted != 3 || r.Succeeded != 2 || r.Failed != 1 {
		t.Errorf("report = %+v, want {3 2 1}", r)
	}
	if r.Succeeded+r.Failed != r.Attempted {
		t.Errorf("succeeded + failed != attempted: %+v", r)
	}
}

func TestBatchReport_SuccessRate(t *testing.T) {
	tests := []struct {
		name   string
		report BatchReport
		want   string
	}{
		{"empty batch", BatchReport{}, "0.00%"},
		{"all succeeded", BatchReport{Attempted: 2, Succeeded: 2}, "100.00%"},
		{"all failed", BatchReport{Attempted: 4, Failed: 4}, "0.00%"},
		{"two thirds", BatchReport{Attempted: 3, Succeeded: 2, Failed: 1}, "66.67%"},
		{"one of eight", BatchReport{Attempted: 8, Succeeded: 1, Failed: 7}, "12.50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.report.SuccessRate(); got != tt.want {
				t.Errorf("SuccessRate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBatchReport_AllFailed(t *testing.T) {
	if (BatchReport{}).AllFailed() {
		t.Error("empty batch is not total failure")
	}
	if !(BatchReport{Attempted: 2, Failed: 2}).AllFailed() {
		t.Error("non-empty batch with zero successes is total failure")
	}
	if (BatchReport{Attempted: 2, Succeeded: 1, Failed: 1}).AllFailed() {
		t.Error("partial success is not total failure")
	}
}
