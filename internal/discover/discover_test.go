// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNormalizeExt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"docx", "docx"},
		{".docx", "docx"},
		{".DOCX", "docx"},
		{"Md", "md"},
		{"", ""},
		{".", ""},
	}
	for _, tt := range tests {
		if got := NormalizeExt(tt.in); got != tt.want {
			t.Errorf("NormalizeExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDiscover_FiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.docx", "b.DOCX", "c.txt", "sub/d.docx", "sub/deep/e.Docx")

	var log bytes.Buffer
	files, err := Discover(root, ".DOCX", &log)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	var rels []string
	for _, f := range files {
		rels = append(rels, f.RelPath)
		if f.Ext != "docx" {
			t.Errorf("ext = %q, want %q", f.Ext, "docx")
		}
		if !filepath.IsAbs(f.Path) {
			t.Errorf("path %q is not absolute", f.Path)
		}
	}
	sort.Strings(rels)

	want := []string{"a.docx", "b.DOCX", filepath.Join("sub", "d.docx"), filepath.Join("sub", "deep", "e.Docx")}
	sort.Strings(want)
	if len(rels) != len(want) {
		t.Fatalf("discovered %v, want %v", rels, want)
	}
	for i := range want {
		if rels[i] != want[i] {
			t.Errorf("discovered %v, want %v", rels, want)
			break
		}
	}
}

func TestDiscover_EachFileAppearsOnce(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.docx", "b.docx")

	var log bytes.Buffer
	files, err := Discover(root, "docx", &log)
	if err != nil {
		t.Fatal(err)
	}

	seen := map[string]int{}
	for _, f := range files {
		seen[f.Path]++
	}
	for path, n := range seen {
		if n != 1 {
			t.Errorf("%s discovered %d times", path, n)
		}
	}
	if len(seen) != 2 {
		t.Errorf("discovered %d files, want 2", len(seen))
	}
}

func TestDiscover_DeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "z.docx", "a.docx", "m/x.docx")

	var log bytes.Buffer
	first, err := Discover(root, "docx", &log)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Discover(root, "docx", &log)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("runs disagree on count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Path != second[i].Path {
			t.Errorf("order differs at %d: %q vs %q", i, first[i].Path, second[i].Path)
		}
	}
}

func TestDiscover_UnreadableSubdirSkipped(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("directory permissions do not apply to root")
	}

	root := t.TempDir()
	writeFiles(t, root, "a.docx", filepath.Join("locked", "b.docx"), "c.docx")

	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	var log bytes.Buffer
	files, err := Discover(root, "docx", &log)
	if err != nil {
		t.Fatalf("unreadable subtree must not fail the walk: %v", err)
	}

	var rels []string
	for _, f := range files {
		rels = append(rels, f.RelPath)
	}
	sort.Strings(rels)
	want := []string{"a.docx", "c.docx"}
	if len(rels) != len(want) || rels[0] != want[0] || rels[1] != want[1] {
		t.Errorf("discovered %v, want %v", rels, want)
	}

	if !strings.Contains(log.String(), "skipping unreadable entry") {
		t.Errorf("log %q should warn about the unreadable directory", log.String())
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	var log bytes.Buffer
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), "docx", &log); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestDiscover_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.docx")

	var log bytes.Buffer
	if _, err := Discover(filepath.Join(root, "a.docx"), "docx", &log); err == nil {
		t.Error("expected error for non-directory root")
	}
}

func TestDiscover_EmptyExtension(t *testing.T) {
	var log bytes.Buffer
	if _, err := Discover(t.TempDir(), ".", &log); err == nil {
		t.Error("expected error for empty extension")
	}
}
