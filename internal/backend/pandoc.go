// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

const defaultPandocBin = "pandoc"

// PandocConverter shells out to a pandoc binary for each conversion.
type PandocConverter struct {
	bin  string
	exec executor
}

// NewPandocConverter creates a converter using the given pandoc binary.
// An empty bin falls back to "pandoc" resolved from PATH.
func NewPandocConverter(bin string) *PandocConverter {
	if bin == "" {
		bin = defaultPandocBin
	}
	return &PandocConverter{bin: bin, exec: defaultExec}
}

// Convert runs pandoc in standalone mode. Embedded binary assets are
// extracted into a sibling directory named after the input's stem; that
// directory is part of a successful outcome, not a separate task.
//
// The command is started without a context kill so an in-flight conversion
// runs to completion and never leaves a truncated output behind; ctx is
// only consulted before the process starts.
func (p *PandocConverter) Convert(ctx context.Context, input, output string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("conversion of %s not started: %w", input, err)
	}

	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	mediaDir := filepath.Join(filepath.Dir(output), stem)

	stderr, err := p.exec.RunCaptured(p.bin,
		"--extract-media", mediaDir,
		"-s", input,
		"-o", output,
	)
	if err != nil {
		if msg := strings.TrimSpace(stderr); msg != "" {
			return fmt.Errorf("converting %s: %s", input, msg)
		}
		return fmt.Errorf("converting %s: %w", input, err)
	}
	return nil
}

// CheckInstalled reports whether the pandoc binary resolves and responds
// to a version probe. It never touches document data.
func (p *PandocConverter) CheckInstalled() bool {
	if _, err := p.exec.LookPath(p.bin); err != nil {
		return false
	}
	return p.exec.RunSilent(p.bin, "--version") == nil
}

// Name returns the backend identifier used in logs and reports.
func (p *PandocConverter) Name() string { return p.bin }
