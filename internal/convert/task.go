// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"path/filepath"
	"strings"

	"github.com/pdiddy/docbatch/internal/discover"
	"github.com/pdiddy/docbatch/pkg/types"
)

// Task maps one discovered file to one conversion attempt. Each task is
// owned exclusively by the worker that runs it and produces exactly one
// outcome.
type Task struct {
	Input  string
	Output string
}

// BuildTask derives the output path for a discovered file: the input path
// with its extension replaced by outputExt, relocated under outputRoot
// when one is given. Relocation mirrors the input tree's subdirectory
// structure using the file's relative path, so single-file and deeply
// nested batches derive outputs the same way.
func BuildTask(f types.DiscoveredFile, outputExt, outputRoot string) Task {
	ext := "." + discover.NormalizeExt(outputExt)

	if outputRoot == "" {
		out := strings.TrimSuffix(f.Path, filepath.Ext(f.Path)) + ext
		return Task{Input: f.Path, Output: out}
	}

	rel := strings.TrimSuffix(f.RelPath, filepath.Ext(f.RelPath)) + ext
	return Task{Input: f.Path, Output: filepath.Join(outputRoot, rel)}
}
