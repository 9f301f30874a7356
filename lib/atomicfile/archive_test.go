// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import (
	"errors"
	"maps"
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/groundwork/lib/testutil"
)

func TestArchiveBackupRoundTrip(t *testing.T) {
	base := t.TempDir()
	tree := filepath.Join(base, "state")
	files := map[string]string{
		"config.yaml":   "threshold: 5\n",
		"data/a.bin":    "alpha",
		"data/b.bin":    "beta",
		"data/deep/c":   "gamma",
		"empty-subdir/": "",
	}
	testutil.WriteTree(t, tree, files)
	if err := os.Symlink("a.bin", filepath.Join(tree, "data", "link")); err != nil {
		t.Fatalf("Symlink: %v", err)
	}

	if err := ArchiveBackup(tree, ".bak"); err != nil {
		t.Fatalf("ArchiveBackup: %v", err)
	}
	archive := tree + ".bak" + ArchiveSuffix
	if _, err := os.Stat(archive); err != nil {
		t.Fatalf("archive missing: %v", err)
	}
	if got := testutil.ReadTree(t, tree); !maps.Equal(got, map[string]string{
		"config.yaml": "threshold: 5\n",
		"data/a.bin":  "alpha",
		"data/b.bin":  "beta",
		"data/deep/c": "gamma",
	}) {
		t.Errorf("original tree disturbed: %v", got)
	}

	restored := filepath.Join(base, "restored")
	if err := RestoreArchive(archive, restored, ReplaceOptions{}); err != nil {
		t.Fatalf("RestoreArchive: %v", err)
	}
	if got := testutil.ReadTree(t, restored); !maps.Equal(got, map[string]string{
		"config.yaml": "threshold: 5\n",
		"data/a.bin":  "alpha",
		"data/b.bin":  "beta",
		"data/deep/c": "gamma",
	}) {
		t.Errorf("restored tree = %v", got)
	}
	if info, err := os.Stat(filepath.Join(restored, "empty-subdir")); err != nil || !info.IsDir() {
		t.Errorf("empty subdirectory not restored: %v", err)
	}
	target, err := os.Readlink(filepath.Join(restored, "data", "link"))
	if err != nil {
		t.Fatalf("Readlink: %v", err)
	}
	if target != "a.bin" {
		t.Errorf("restored link target = %q, want a.bin", target)
	}
}

func TestArchiveBackupSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("remember"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := ArchiveBackup(path, ".bak"); err != nil {
		t.Fatalf("ArchiveBackup: %v", err)
	}

	restored := filepath.Join(dir, "restored.txt")
	if err := RestoreArchive(path+".bak"+ArchiveSuffix, restored, ReplaceOptions{}); err != nil {
		t.Fatalf("RestoreArchive: %v", err)
	}
	if got, _ := os.ReadFile(restored); string(got) != "remember" {
		t.Errorf("restored = %q", got)
	}
}

func TestArchiveBackupMissingPath(t *testing.T) {
	dir := t.TempDir()
	if err := ArchiveBackup(filepath.Join(dir, "absent"), ".bak"); err != nil {
		t.Errorf("ArchiveBackup(missing) = %v, want nil", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("archive created for missing path: %v", entries)
	}
}

func TestArchiveBackupEmptySuffix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := ArchiveBackup(path, ""); !errors.Is(err, ErrBackupSuffixEmpty) {
		t.Errorf("ArchiveBackup = %v, want ErrBackupSuffixEmpty", err)
	}
}

func TestArchiveBackupReplacesPrior(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state")
	testutil.WriteTree(t, path, map[string]string{"v.txt": "one"})

	if err := ArchiveBackup(path, ".bak"); err != nil {
		t.Fatalf("first ArchiveBackup: %v", err)
	}
	if err := os.WriteFile(filepath.Join(path, "v.txt"), []byte("two"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := ArchiveBackup(path, ".bak"); err != nil {
		t.Fatalf("second ArchiveBackup: %v", err)
	}

	restored := filepath.Join(dir, "restored")
	if err := RestoreArchive(path+".bak"+ArchiveSuffix, restored, ReplaceOptions{}); err != nil {
		t.Fatalf("RestoreArchive: %v", err)
	}
	if got, _ := os.ReadFile(filepath.Join(restored, "v.txt")); string(got) != "two" {
		t.Errorf("restored = %q, want latest snapshot", got)
	}
}
