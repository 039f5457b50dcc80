// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConvertConfig holds settings for one conversion run.
type ConvertConfig struct {
	// InputExt is the source extension to discover (dot optional,
	// case-insensitive; "docx" and ".DOCX" are equivalent).
	InputExt string `json:"input_ext" yaml:"input_ext"`

	// OutputExt is the target extension for converted files.
	OutputExt string `json:"output_ext" yaml:"output_ext"`

	// OutputDir, when set, relocates outputs under this root, mirroring
	// the input tree's subdirectory structure. When empty each output is
	// written next to its input.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// Workers bounds how many conversions run at once (default 4).
	// Zero or negative selects the default; the bound keeps a large batch
	// from exhausting process and file-handle limits.
	Workers int `json:"workers" yaml:"workers"`
}

// DefaultWorkers is the conversion concurrency used when ConvertConfig
// does not specify one.
const DefaultWorkers = 4

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// StateDir is the directory holding history.db (default ".docbatch").
	StateDir string `json:"state_dir" yaml:"state_dir"`

	// MaxResults is the default maximum number of runs listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
