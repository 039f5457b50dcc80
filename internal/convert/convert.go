// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert orchestrates conversion tasks over a bounded worker
// pool. One failing task never cancels its siblings; every dispatched task
// produces exactly one outcome, folded into a BatchReport by a single
// aggregating consumer.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pdiddy/docbatch/internal/backend"
	"github.com/pdiddy/docbatch/internal/sanitize"
	"github.com/pdiddy/docbatch/pkg/types"
)

// ErrBackendUnavailable is returned when the backend's installation probe
// fails before any task is dispatched.
var ErrBackendUnavailable = errors.New("conversion backend not available")

// ConvertBatch sanitizes and converts the discovered files using c,
// running at most cfg.Workers conversions at once. Per-file progress is
// written to w as each outcome arrives; completion order need not match
// dispatch order.
//
// Cancelling ctx stops new dispatch while tasks already handed to a worker
// run to completion, so no outcome is dropped and no truncated output is
// left behind. The returned report covers every outcome produced.
// The outcome slice carries one entry per attempted task, in completion
// order, for callers that record or inspect individual results.
func ConvertBatch(ctx context.Context, c backend.Converter, files []types.DiscoveredFile, cfg types.ConvertConfig, w io.Writer) (types.BatchReport, []types.Outcome, error) {
	var report types.BatchReport

	if !c.CheckInstalled() {
		return report, nil, fmt.Errorf("%w: %s not found or not responding", ErrBackendUnavailable, c.Name())
	}

	// Sanitization runs sequentially before any dispatch; a task is only
	// ever constructed from a sanitized path. A rename collision excludes
	// the file and becomes a failure outcome for it.
	//
	// Two inputs differing only in extension case ("a.docx", "a.DOCX")
	// derive the same output; the duplicate is failed here rather than
	// letting two concurrent tasks race past the exists check.
	var pending []Task
	var excluded []types.Outcome
	claimed := make(map[string]string)
	for _, f := range files {
		path, err := sanitize.Path(f.Path, w)
		if err != nil {
			excluded = append(excluded, types.Outcome{
				Input:  f.Path,
				Status: types.OutcomeFailed,
				Reason: err.Error(),
			})
			continue
		}
		f.Path = path
		f.RelPath = sanitize.Clean(f.RelPath)

		t := BuildTask(f, cfg.OutputExt, cfg.OutputDir)
		if prev, ok := claimed[t.Output]; ok {
			excluded = append(excluded, types.Outcome{
				Input:  f.Path,
				Output: t.Output,
				Status: types.OutcomeFailed,
				Reason: fmt.Sprintf("output %s already claimed by %s", t.Output, prev),
			})
			continue
		}
		claimed[t.Output] = f.Path
		pending = append(pending, t)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = types.DefaultWorkers
	}
	if workers > len(pending) && len(pending) > 0 {
		workers = len(pending)
	}

	tasks := make(chan Task)
	results := make(chan types.Outcome, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				results <- runTask(ctx, c, t)
			}
		}()
	}

	// The dispatcher stops handing out tasks once ctx is cancelled; tasks
	// already picked up by a worker run to completion. Only the consumer
	// below writes to w, so progress output never interleaves.
	go func() {
		defer close(tasks)
		for _, t := range pending {
			if ctx.Err() != nil {
				return
			}
			select {
			case <-ctx.Done():
			case tasks <- t:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]types.Outcome, 0, len(files))
	for _, o := range excluded {
		logOutcome(w, o)
		report.Add(o)
		outcomes = append(outcomes, o)
	}
	for o := range results {
		logOutcome(w, o)
		report.Add(o)
		outcomes = append(outcomes, o)
	}

	if ctx.Err() != nil && report.Attempted < len(files) {
		fmt.Fprintf(w, "warning: cancelled, %d files were not attempted\n", len(files)-report.Attempted)
	}

	fmt.Fprintf(w, "\nProcessed a total of %d files\n", report.Attempted)
	fmt.Fprintf(w, "Successfully processed %d files\n", report.Succeeded)
	fmt.Fprintf(w, "Failed a total of %d files\n", report.Failed)
	fmt.Fprintf(w, "Success rate: %s\n", report.SuccessRate())

	return report, outcomes, nil
}

// runTask executes one task and always returns an outcome: filesystem
// errors, backend errors, and panics inside the backend are captured as
// failures rather than propagated.
func runTask(ctx context.Context, c backend.Converter, t Task) (o types.Outcome) {
	o = types.Outcome{Input: t.Input, Output: t.Output}

	defer func() {
		if r := recover(); r != nil {
			o.Status = types.OutcomeFailed
			o.Reason = fmt.Sprintf("backend panic: %v", r)
		}
	}()

	if _, err := os.Stat(t.Output); err == nil {
		o.Status = types.OutcomeFailed
		o.Reason = fmt.Sprintf("output already exists: %s", t.Output)
		return o
	}

	// Two tasks may map into the same output directory; MkdirAll treats
	// an existing path as success, so concurrent creation is safe.
	if err := os.MkdirAll(filepath.Dir(t.Output), 0o755); err != nil {
		o.Status = types.OutcomeFailed
		o.Reason = fmt.Sprintf("creating output directory: %v", err)
		return o
	}

	if err := c.Convert(ctx, t.Input, t.Output); err != nil {
		o.Status = types.OutcomeFailed
		o.Reason = err.Error()
		return o
	}

	o.Status = types.OutcomeConverted
	return o
}

func logOutcome(w io.Writer, o types.Outcome) {
	if o.Success() {
		fmt.Fprintf(w, "converted: %s -> %s\n", o.Input, o.Output)
		return
	}
	fmt.Fprintf(w, "failed:    %s (%s)\n", o.Input, o.Reason)
}
