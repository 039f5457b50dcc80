// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover walks a directory tree and collects the files matching
// a configured extension.
package discover

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docbatch/pkg/types"
)

// NormalizeExt strips a leading dot and lower-cases ext, so "docx" and
// ".DOCX" select the same files.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Discover walks root and returns every regular file whose extension
// matches ext (case-insensitive, dot optional), in lexical path order.
// An unreadable entry is logged to w and skipped; it does not fail the
// walk. The walk is read-only.
func Discover(root, ext string, w io.Writer) ([]types.DiscoveredFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("input directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", root)
	}

	want := NormalizeExt(ext)
	if want == "" {
		return nil, fmt.Errorf("input extension is empty")
	}

	var files []types.DiscoveredFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(w, "warning: skipping unreadable entry %s: %v\n", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		got := NormalizeExt(filepath.Ext(path))
		if got != want {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			fmt.Fprintf(w, "warning: skipping %s: %v\n", path, err)
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		files = append(files, types.DiscoveredFile{
			Path:    abs,
			RelPath: rel,
			Ext:     got,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}
