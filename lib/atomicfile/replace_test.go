// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bureau-foundation/groundwork/lib/testutil"
)

func writePopulate(content []byte) func(string) error {
	return func(staging string) error {
		return os.WriteFile(staging, content, 0o644)
	}
}

func TestReplaceWritesContent(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "out.txt")

	if err := Replace(destination, ReplaceOptions{}, writePopulate([]byte("payload"))); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, err := os.ReadFile(destination)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("content = %q, want %q", got, "payload")
	}
}

func TestReplaceOverwritesExisting(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(destination, []byte("old"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := Replace(destination, ReplaceOptions{}, writePopulate([]byte("new"))); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, _ := os.ReadFile(destination)
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}

// TestReplaceNoIntermediateState hammers the destination with a
// polling reader while it is repeatedly replaced. Every read must
// observe one of the complete payloads, never a prefix, a mix, or a
// missing file.
func TestReplaceNoIntermediateState(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "watched.dat")

	payloadA := bytes.Repeat([]byte("a"), 64*1024)
	payloadB := bytes.Repeat([]byte("b"), 64*1024)
	if err := os.WriteFile(destination, payloadA, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stop atomic.Bool
	anomalies := make(chan string, 1)
	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		for !stop.Load() {
			content, err := os.ReadFile(destination)
			if err != nil {
				select {
				case anomalies <- fmt.Sprintf("read failed: %v", err):
				default:
				}
				return
			}
			if !bytes.Equal(content, payloadA) && !bytes.Equal(content, payloadB) {
				select {
				case anomalies <- fmt.Sprintf("partial state observed: %d bytes", len(content)):
				default:
				}
				return
			}
		}
	}()

	for i := range 25 {
		payload := payloadA
		if i%2 == 0 {
			payload = payloadB
		}
		if err := Replace(destination, ReplaceOptions{}, writePopulate(payload)); err != nil {
			t.Fatalf("Replace #%d: %v", i, err)
		}
	}
	stop.Store(true)
	testutil.RequireClosed(t, watcherDone, 10*time.Second, "watcher shutdown")

	select {
	case anomaly := <-anomalies:
		t.Fatal(anomaly)
	default:
	}
}

// TestReplaceIdempotent checks that repeated replacement with no
// backup suffix leaves a single file and no strays in the parent.
func TestReplaceIdempotent(t *testing.T) {
	parent := t.TempDir()
	destination := filepath.Join(parent, "out.txt")

	for range 2 {
		if err := Replace(destination, ReplaceOptions{}, writePopulate([]byte("same"))); err != nil {
			t.Fatalf("Replace: %v", err)
		}
	}

	entries, err := os.ReadDir(parent)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.txt" {
		var names []string
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		t.Errorf("parent contains %v, want [out.txt]", names)
	}
}

func TestReplacePopulateFailureLeavesDestination(t *testing.T) {
	parent := t.TempDir()
	destination := filepath.Join(parent, "out.txt")
	original := []byte("original content")
	if err := os.WriteFile(destination, original, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	populateErr := errors.New("simulated failure")
	err := Replace(destination, ReplaceOptions{}, func(staging string) error {
		// Write half the content, then fail.
		if err := os.WriteFile(staging, []byte("partial"), 0o644); err != nil {
			return err
		}
		return populateErr
	})
	if !errors.Is(err, populateErr) {
		t.Fatalf("Replace = %v, want the populate error", err)
	}

	got, readErr := os.ReadFile(destination)
	if readErr != nil {
		t.Fatalf("ReadFile: %v", readErr)
	}
	if !bytes.Equal(got, original) {
		t.Errorf("destination changed after failed populate: %q", got)
	}

	// The staging leftover is kept for inspection, marked by the
	// staging suffix.
	strays, err := filepath.Glob(filepath.Join(parent, "*"+StagingSuffix))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(strays) != 1 {
		t.Errorf("found %d staging leftovers, want 1 (kept for inspection)", len(strays))
	}
}

func TestReplaceStagingMissing(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "out.txt")

	err := Replace(destination, ReplaceOptions{}, func(staging string) error {
		return nil // claims success, writes nothing
	})
	if !errors.Is(err, ErrStagingMissing) {
		t.Fatalf("Replace = %v, want ErrStagingMissing", err)
	}
	if _, statErr := os.Lstat(destination); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("destination exists after verification failure")
	}
}

func TestReplaceDirectoryConflict(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "slot")
	if err := os.Mkdir(destination, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	inside := filepath.Join(destination, "keep.txt")
	if err := os.WriteFile(inside, []byte("keep"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := Replace(destination, ReplaceOptions{}, writePopulate([]byte("new")))
	if !errors.Is(err, ErrDestinationConflict) {
		t.Fatalf("Replace = %v, want ErrDestinationConflict", err)
	}

	// The directory and its contents are intact.
	if got, readErr := os.ReadFile(inside); readErr != nil || string(got) != "keep" {
		t.Errorf("directory contents damaged: %q, %v", got, readErr)
	}
}

func TestReplaceDirectoryForce(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "slot")
	if err := os.MkdirAll(filepath.Join(destination, "nested"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	if err := Replace(destination, ReplaceOptions{Force: true}, writePopulate([]byte("new"))); err != nil {
		t.Fatalf("Replace with Force: %v", err)
	}
	got, err := os.ReadFile(destination)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}

func TestReplaceTrailingSlashDestination(t *testing.T) {
	// A trailing slash must not move the staging path inside the
	// destination directory, where Force removal would take the
	// staged content down with the old one.
	destination := filepath.Join(t.TempDir(), "site")
	if err := os.Mkdir(destination, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(destination, "old.txt"), []byte("old"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := Replace(destination+string(filepath.Separator), ReplaceOptions{Force: true}, func(staging string) error {
		if err := os.Mkdir(staging, 0o755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(staging, "new.txt"), []byte("new"), 0o644)
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(destination, "new.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
	if _, err := os.Stat(filepath.Join(destination, "old.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("old.txt still present after forced replacement")
	}
}

func TestReplaceDirectoryWithBackup(t *testing.T) {
	// A successful backup moves the directory aside, so no Force is
	// needed.
	parent := t.TempDir()
	destination := filepath.Join(parent, "slot")
	if err := os.Mkdir(destination, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	options := ReplaceOptions{BackupSuffix: DefaultBackupSuffix}
	if err := Replace(destination, options, writePopulate([]byte("new"))); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, err := os.ReadFile(destination)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}

	backups, err := filepath.Glob(filepath.Join(parent, "slot*"+BackupSuffix))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("found %d backups, want 1", len(backups))
	}
}

func TestReplaceMakeParents(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "deep", "nested", "out.txt")

	err := Replace(destination, ReplaceOptions{}, writePopulate([]byte("x")))
	if err == nil {
		t.Fatal("Replace without MakeParents should fail when parents are missing")
	}

	if err := Replace(destination, ReplaceOptions{MakeParents: true}, writePopulate([]byte("x"))); err != nil {
		t.Fatalf("Replace with MakeParents: %v", err)
	}
	if _, err := os.Stat(destination); err != nil {
		t.Errorf("destination missing: %v", err)
	}
}

func TestReplaceNullSink(t *testing.T) {
	var observed string
	err := Replace(os.DevNull, ReplaceOptions{}, func(staging string) error {
		observed = staging
		return os.WriteFile(staging, []byte("discarded"), 0o644)
	})
	if err != nil {
		t.Fatalf("Replace to null sink: %v", err)
	}
	if observed != os.DevNull {
		t.Errorf("populate received %q, want the null sink %q", observed, os.DevNull)
	}
}

func TestStagingNameShape(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "target.bin")

	var staging string
	err := Replace(destination, ReplaceOptions{}, func(path string) error {
		staging = path
		return os.WriteFile(path, []byte("x"), 0o644)
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if filepath.Dir(staging) != filepath.Dir(destination) {
		t.Errorf("staging %q is not a sibling of destination %q", staging, destination)
	}
	base := filepath.Base(staging)
	if !strings.HasPrefix(base, "target.bin") || !strings.HasSuffix(base, StagingSuffix) {
		t.Errorf("staging name %q, want target.bin<token>%s", base, StagingSuffix)
	}
	if base == "target.bin"+StagingSuffix {
		t.Errorf("staging name %q has no random token", base)
	}
}

func TestWriteFile(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "config.json")

	if err := WriteFile(destination, []byte(`{"a":1}`), 0o600, ReplaceOptions{}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := os.ReadFile(destination)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("content = %q", got)
	}
	info, err := os.Stat(destination)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %o, want 600", info.Mode().Perm())
	}
}

func TestDevNullHandle(t *testing.T) {
	first, err := DevNull()
	if err != nil {
		t.Fatalf("DevNull: %v", err)
	}
	if _, err := first.Write([]byte("discarded")); err != nil {
		t.Errorf("writing to null handle: %v", err)
	}

	second, err := DevNull()
	if err != nil {
		t.Fatalf("DevNull: %v", err)
	}
	if first != second {
		t.Errorf("DevNull returned distinct handles; want one process-wide handle")
	}
}
