// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the value types shared across pipeline stages:
// discovered files, conversion outcomes, batch reports, and stage
// configuration.
package types

// DiscoveredFile describes one file found during the discovery walk.
// Immutable once produced; consumed exactly once by the orchestrator.
type DiscoveredFile struct {
	// Path is the absolute path to the file.
	Path string `json:"path" yaml:"path"`

	// RelPath is the path relative to the discovery root, used to mirror
	// the input subtree under an output root.
	RelPath string `json:"rel_path" yaml:"rel_path"`

	// Ext is the normalized extension: lower-case, no leading dot.
	Ext string `json:"ext" yaml:"ext"`
}
