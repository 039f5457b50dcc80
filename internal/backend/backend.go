// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backend defines the conversion backend contract and its concrete
// implementations. A backend turns one input document into one output file;
// the orchestrator never interprets document content itself.
package backend

import (
	"bytes"
	"context"
	"os/exec"
)

// Converter is the capability contract every conversion backend satisfies.
// New backends (LibreOffice, a native library) are added as new
// implementations; callers never branch on a concrete type.
type Converter interface {
	// Convert transforms input into output. The backend's diagnostic text
	// is carried verbatim in the returned error on failure. A conversion
	// already in flight is allowed to finish even when ctx is cancelled.
	Convert(ctx context.Context, input, output string) error

	// CheckInstalled probes backend availability without touching any
	// document data. Callers must probe before dispatching a batch.
	CheckInstalled() bool

	// Name returns a stable identifier for logging and reporting.
	Name() string
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunCaptured(name string, args ...string) (stderr string, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunCaptured(name string, args ...string) (string, error) {
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

var defaultExec = &osExecutor{}
