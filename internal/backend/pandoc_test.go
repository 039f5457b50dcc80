// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	capturedCalls []string
	stderr        string
	runErr        error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunCaptured(name string, args ...string) (string, error) {
	m.capturedCalls = append(m.capturedCalls, name+" "+strings.Join(args, " "))
	return m.stderr, m.runErr
}

func TestCheckInstalled(t *testing.T) {
	tests := []struct {
		name string
		exec *mockExecutor
		want bool
	}{
		{
			name: "pandoc on PATH and responding",
			exec: &mockExecutor{
				availableBins: map[string]bool{"pandoc": true},
				runnableCmds:  map[string]bool{"pandoc --version": true},
			},
			want: true,
		},
		{
			name: "pandoc missing from PATH",
			exec: &mockExecutor{
				availableBins: map[string]bool{},
				runnableCmds:  map[string]bool{},
			},
			want: false,
		},
		{
			name: "pandoc present but version probe fails",
			exec: &mockExecutor{
				availableBins: map[string]bool{"pandoc": true},
				runnableCmds:  map[string]bool{},
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPandocConverter("")
			p.exec = tt.exec
			if got := p.CheckInstalled(); got != tt.want {
				t.Errorf("CheckInstalled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvert_InvocationShape(t *testing.T) {
	mock := &mockExecutor{}
	p := NewPandocConverter("pandoc")
	p.exec = mock

	input := filepath.Join("docs", "report.docx")
	output := filepath.Join("out", "report.md")
	if err := p.Convert(context.Background(), input, output); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if len(mock.capturedCalls) != 1 {
		t.Fatalf("got %d invocations, want 1", len(mock.capturedCalls))
	}
	call := mock.capturedCalls[0]
	wantMedia := filepath.Join("out", "report")
	for _, frag := range []string{"--extract-media", wantMedia, "-s", input, "-o", output} {
		if !strings.Contains(call, frag) {
			t.Errorf("invocation %q missing %q", call, frag)
		}
	}
}

func TestConvert_StderrCarriedVerbatim(t *testing.T) {
	mock := &mockExecutor{
		stderr: "pandoc: corrupt docx container\n",
		runErr: errors.New("exit status 1"),
	}
	p := NewPandocConverter("pandoc")
	p.exec = mock

	err := p.Convert(context.Background(), "bad.docx", "bad.md")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "pandoc: corrupt docx container") {
		t.Errorf("error %q should carry backend stderr verbatim", err)
	}
}

func TestConvert_EmptyStderrFallsBackToExitError(t *testing.T) {
	mock := &mockExecutor{runErr: errors.New("exit status 2")}
	p := NewPandocConverter("pandoc")
	p.exec = mock

	err := p.Convert(context.Background(), "a.docx", "a.md")
	if err == nil || !strings.Contains(err.Error(), "exit status 2") {
		t.Errorf("err = %v, want exit error in message", err)
	}
}

func TestConvert_CancelledBeforeStart(t *testing.T) {
	mock := &mockExecutor{}
	p := NewPandocConverter("pandoc")
	p.exec = mock

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Convert(ctx, "a.docx", "a.md"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(mock.capturedCalls) != 0 {
		t.Error("cancelled convert must not start the process")
	}
}

func TestName_DefaultsToPandoc(t *testing.T) {
	if got := NewPandocConverter("").Name(); got != "pandoc" {
		t.Errorf("Name() = %q, want %q", got, "pandoc")
	}
}
