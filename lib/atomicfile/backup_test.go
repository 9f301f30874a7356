// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestTimestampedBackupsAccumulate(t *testing.T) {
	parent := t.TempDir()
	destination := filepath.Join(parent, "data.txt")
	options := ReplaceOptions{BackupSuffix: DefaultBackupSuffix}

	const generations = 4
	for i := range generations {
		content := []byte(fmt.Sprintf("generation %d", i))
		if err := Replace(destination, options, writePopulate(content)); err != nil {
			t.Fatalf("Replace #%d: %v", i, err)
		}
	}

	backups, err := filepath.Glob(filepath.Join(parent, "data.txt*"+BackupSuffix))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	// The first replacement had nothing to back up.
	if len(backups) != generations-1 {
		t.Fatalf("found %d backups, want %d", len(backups), generations-1)
	}

	// Timestamped backup names sort by creation order, so backup i
	// holds generation i.
	sort.Strings(backups)
	for i, backup := range backups {
		got, err := os.ReadFile(backup)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", backup, err)
		}
		if want := fmt.Sprintf("generation %d", i); string(got) != want {
			t.Errorf("backup %s = %q, want %q", backup, got, want)
		}
	}
}

func TestFixedBackupClobbers(t *testing.T) {
	parent := t.TempDir()
	destination := filepath.Join(parent, "data.txt")
	options := ReplaceOptions{BackupSuffix: ".bak"}

	for i := range 4 {
		content := []byte(fmt.Sprintf("generation %d", i))
		if err := Replace(destination, options, writePopulate(content)); err != nil {
			t.Fatalf("Replace #%d: %v", i, err)
		}
	}

	backups, err := filepath.Glob(filepath.Join(parent, "data.txt*.bak"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("found %d backups, want exactly 1", len(backups))
	}
	got, err := os.ReadFile(backups[0])
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	// Only the immediately-prior generation survives.
	if string(got) != "generation 2" {
		t.Errorf("backup = %q, want %q", got, "generation 2")
	}
}

func TestMoveToBackupMissingPath(t *testing.T) {
	if err := MoveToBackup(filepath.Join(t.TempDir(), "never-existed"), ".bak"); err != nil {
		t.Fatalf("MoveToBackup on missing path = %v, want nil", err)
	}
}

func TestMoveToBackupEmptySuffix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := MoveToBackup(path, ""); !errors.Is(err, ErrBackupSuffixEmpty) {
		t.Fatalf("MoveToBackup = %v, want ErrBackupSuffixEmpty", err)
	}
}

func TestMoveToBackupDirectory(t *testing.T) {
	parent := t.TempDir()
	path := filepath.Join(parent, "tree")
	if err := os.MkdirAll(filepath.Join(path, "sub"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	if err := MoveToBackup(path, ".bak"); err != nil {
		t.Fatalf("MoveToBackup: %v", err)
	}
	if _, err := os.Lstat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("original still present after backup")
	}
	if info, err := os.Stat(filepath.Join(parent, "tree.bak", "sub")); err != nil || !info.IsDir() {
		t.Errorf("backup tree incomplete: %v", err)
	}
}

func TestBackupClearsSymlink(t *testing.T) {
	parent := t.TempDir()
	path := filepath.Join(parent, "data.txt")
	if err := os.WriteFile(path, []byte("current"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	elsewhere := filepath.Join(parent, "elsewhere")
	if err := os.WriteFile(elsewhere, []byte("target"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// Plant a symlink where the backup will go.
	backupPath := path + ".bak"
	if err := os.Symlink(elsewhere, backupPath); err != nil {
		t.Fatalf("Symlink: %v", err)
	}

	if err := MoveToBackup(path, ".bak"); err != nil {
		t.Fatalf("MoveToBackup: %v", err)
	}
	info, err := os.Lstat(backupPath)
	if err != nil {
		t.Fatalf("Lstat backup: %v", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		t.Errorf("backup path is still a symlink")
	}
	// The symlink target must be untouched.
	if got, _ := os.ReadFile(elsewhere); string(got) != "target" {
		t.Errorf("symlink target damaged: %q", got)
	}
}

func TestBackupClearsDirectory(t *testing.T) {
	parent := t.TempDir()
	path := filepath.Join(parent, "data.txt")
	if err := os.WriteFile(path, []byte("current"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	backupPath := path + ".bak"
	if err := os.MkdirAll(filepath.Join(backupPath, "junk"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	if err := MoveToBackup(path, ".bak"); err != nil {
		t.Fatalf("MoveToBackup: %v", err)
	}
	got, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("backup is not a plain file: %v", err)
	}
	if string(got) != "current" {
		t.Errorf("backup = %q, want %q", got, "current")
	}
}

func TestCopyToBackupKeepsOriginal(t *testing.T) {
	parent := t.TempDir()
	path := filepath.Join(parent, "data.txt")
	if err := os.WriteFile(path, []byte("current"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := CopyToBackup(path, ".bak"); err != nil {
		t.Fatalf("CopyToBackup: %v", err)
	}
	if got, err := os.ReadFile(path); err != nil || string(got) != "current" {
		t.Errorf("original damaged: %q, %v", got, err)
	}
	if got, err := os.ReadFile(path + ".bak"); err != nil || string(got) != "current" {
		t.Errorf("backup copy wrong: %q, %v", got, err)
	}
}

func TestCopyToBackupMissingPath(t *testing.T) {
	if err := CopyToBackup(filepath.Join(t.TempDir(), "never-existed"), ".bak"); err != nil {
		t.Fatalf("CopyToBackup on missing path = %v, want nil", err)
	}
}
