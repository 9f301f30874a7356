// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bureau-foundation/groundwork/lib/ident"
)

// StagingSuffix marks in-flight staging paths. A staging path is the
// destination name plus a fresh random token plus this suffix, placed
// in the destination's parent directory so the final rename never
// crosses a filesystem boundary.
const StagingSuffix = ".partial"

// ReplaceOptions configures Replace and the operations built on it.
// The zero value is the common case: no parent creation, no backup,
// no directory clobbering.
type ReplaceOptions struct {
	// MakeParents creates the destination's missing parent
	// directories before populating.
	MakeParents bool

	// ParentMode is the permission mode for directories created by
	// MakeParents. Zero means 0o777 (before umask).
	ParentMode fs.FileMode

	// BackupSuffix, when non-empty, preserves the current destination
	// at destination+suffix before the new content is committed. The
	// substring "{timestamp}" expands to a fresh sortable unique
	// token, giving unbounded non-colliding backup history; without
	// it, the same backup path is silently overwritten each time.
	BackupSuffix string

	// Force authorizes recursive removal of the destination when it
	// is a directory and no backup moved it out of the way. Without
	// Force that situation fails with ErrDestinationConflict.
	Force bool
}

// parentMode returns the effective mode for created parents.
func (o ReplaceOptions) parentMode() fs.FileMode {
	if o.ParentMode == 0 {
		return 0o777
	}
	return o.ParentMode
}

// Replace installs new content at destination atomically. It stages
// under a temporary sibling name, calls populate to write the full
// content there, then commits with a single rename. An external
// reader of destination sees either the complete old state or the
// complete new state, never anything in between, even if the process
// crashes mid-operation.
//
// populate receives the staging path and must create it (as a file or
// a directory) before returning nil. If populate returns an error,
// Replace returns it with the destination untouched; the staging path
// is deliberately NOT cleaned up, so a partial artifact can never be
// mistaken for success but remains available for inspection. Callers
// that want tidiness on failure remove their own staging output.
//
// Two Replace calls racing on the same destination each commit
// all-or-nothing; the last rename wins. With a fixed (non-timestamped)
// BackupSuffix, racing callers may overwrite each other's backup, an
// accepted race matching the backup path's advertised clobbering
// behavior.
//
// Writing to the platform's null sink (os.DevNull) skips staging
// entirely: populate receives the sink path itself.
func Replace(destination string, options ReplaceOptions, populate func(staging string) error) error {
	// A trailing slash on destination would turn the staging path
	// into a child of the destination, which Force removal would
	// then destroy before the commit rename.
	destination = filepath.Clean(destination)
	if destination == os.DevNull {
		return populate(os.DevNull)
	}

	staging := destination + "." + ident.NewUID(ident.DefaultUIDBits) + StagingSuffix
	if options.MakeParents {
		if err := MakeParentDirs(staging, options.parentMode()); err != nil {
			return err
		}
	}

	if err := populate(staging); err != nil {
		// No cleanup here: see the function comment.
		return err
	}

	if _, err := os.Lstat(staging); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("replacing %s: staging path %s: %w", destination, staging, ErrStagingMissing)
		}
		return fmt.Errorf("replacing %s: checking staging path: %w", destination, err)
	}

	if options.BackupSuffix != "" {
		if err := MoveToBackup(destination, options.BackupSuffix); err != nil {
			return fmt.Errorf("replacing %s: %w", destination, err)
		}
	}

	// A directory cannot be renamed over. If a backup just moved it
	// aside this stat misses; otherwise removal needs explicit
	// authorization.
	if info, err := os.Stat(destination); err == nil && info.IsDir() {
		if !options.Force {
			return fmt.Errorf("replacing %s: destination is a directory: %w", destination, ErrDestinationConflict)
		}
		if err := os.RemoveAll(destination); err != nil {
			return fmt.Errorf("replacing %s: removing existing directory: %w", destination, err)
		}
	}

	if err := os.Rename(staging, destination); err != nil {
		return fmt.Errorf("replacing %s: committing staged content: %w", destination, err)
	}
	return nil
}

// WriteFile atomically replaces destination with data. The staged
// file is synced to disk before the commit rename, so after WriteFile
// returns the destination holds either its prior bytes or data, even
// across a crash or power loss.
func WriteFile(destination string, data []byte, perm fs.FileMode, options ReplaceOptions) error {
	return Replace(destination, options, func(staging string) error {
		file, err := os.OpenFile(staging, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
		if err != nil {
			return fmt.Errorf("creating staging file: %w", err)
		}
		if _, err := file.Write(data); err != nil {
			file.Close()
			os.Remove(staging)
			return fmt.Errorf("writing staging file %s: %w", staging, err)
		}
		if err := file.Sync(); err != nil {
			file.Close()
			os.Remove(staging)
			return fmt.Errorf("syncing staging file %s: %w", staging, err)
		}
		if err := file.Close(); err != nil {
			os.Remove(staging)
			return fmt.Errorf("closing staging file %s: %w", staging, err)
		}
		return nil
	})
}

// MakeParentDirs creates the missing parent directories of path.
func MakeParentDirs(path string, mode fs.FileMode) error {
	parent := filepath.Dir(path)
	if err := os.MkdirAll(parent, mode); err != nil {
		return fmt.Errorf("creating parent directory %s: %w", parent, err)
	}
	return nil
}

// devNull opens the process-wide write handle to the null device on
// first use. It stays open for the life of the process; the OS
// reclaims it at exit.
var devNull = sync.OnceValues(func() (*os.File, error) {
	return os.OpenFile(os.DevNull, os.O_WRONLY, 0)
})

// DevNull returns a shared, lazily opened handle to the platform's
// null data sink. The handle is process-wide, not per-call or
// per-goroutine; callers must not close it.
func DevNull() (*os.File, error) {
	file, err := devNull()
	if err != nil {
		return nil, fmt.Errorf("opening null device: %w", err)
	}
	return file, nil
}
