// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sanitize renames files and directories whose names contain
// characters that break shell quoting and expansion in downstream tooling.
package sanitize

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// dangerChars are the name characters replaced during sanitization. `~`
// expands to $HOME and `$` starts variable expansion in every common shell,
// so both routinely mangle converter invocations.
const dangerChars = "$~"

const safeChar = "_"

// ErrNameCollision is returned when the sanitized name already exists, so
// the rename cannot be performed without clobbering another file.
var ErrNameCollision = errors.New("sanitized name already exists")

// Clean returns name with every dangerous character replaced. The rest of
// the name, including the extension, is preserved exactly.
func Clean(name string) string {
	for _, c := range dangerChars {
		name = strings.ReplaceAll(name, string(c), safeChar)
	}
	return name
}

// NeedsClean reports whether name contains any dangerous character.
func NeedsClean(name string) bool {
	return strings.ContainsAny(name, dangerChars)
}

// Path renames the file at path if its base name contains dangerous
// characters, and returns the (possibly new) path. A clean name is an
// idempotent no-op: the original path is returned and the filesystem is
// not touched. Only the base name is rewritten; parent directories are
// left alone so a leading ~ in the root path keeps its meaning.
func Path(path string, w io.Writer) (string, error) {
	base := filepath.Base(path)
	if !NeedsClean(base) {
		return path, nil
	}

	fixed := filepath.Join(filepath.Dir(path), Clean(base))
	if _, err := os.Lstat(fixed); err == nil {
		return "", fmt.Errorf("renaming %s to %s: %w", path, fixed, ErrNameCollision)
	}

	fmt.Fprintf(w, "warning: renaming %s -> %s\n", path, fixed)
	if err := os.Rename(path, fixed); err != nil {
		return "", fmt.Errorf("renaming %s: %w", path, err)
	}
	return fixed, nil
}

// Tree walks root and sanitizes every file and directory name beneath it.
// Entries are processed deepest-first so a directory rename never
// invalidates the paths of entries still to be renamed inside it. A
// collision on one entry is logged and skipped; it does not stop the pass.
func Tree(root string, w io.Writer) error {
	var dirty []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(w, "warning: skipping unreadable entry %s: %v\n", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path != root && NeedsClean(filepath.Base(path)) {
			dirty = append(dirty, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Slice(dirty, func(i, j int) bool {
		return strings.Count(dirty[i], string(os.PathSeparator)) >
			strings.Count(dirty[j], string(os.PathSeparator))
	})

	for _, path := range dirty {
		if _, err := Path(path, w); err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
		}
	}
	return nil
}
