// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MoveFile moves source onto destination, creating destination's
// parent directories as needed. With keepBackup, an existing
// destination is first preserved at its backup name (suffix expanded
// as in MoveToBackup); without it, an existing destination is an
// ErrDestinationConflict.
//
// The move itself is a plain rename, not an atomic replace: across
// volumes it degrades to copy-then-delete, during which both paths
// briefly coexist. Use Replace or CopyFile when atomicity at the
// destination matters.
func MoveFile(source, destination string, keepBackup bool, suffix string) error {
	destinationExists := true
	if _, err := os.Lstat(destination); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking move destination %s: %w", destination, err)
		}
		destinationExists = false
	}

	if !keepBackup && destinationExists {
		return fmt.Errorf("moving %s to %s: %w", source, destination, ErrDestinationConflict)
	}
	if keepBackup {
		if _, err := os.Lstat(source); err == nil {
			if err := MoveToBackup(destination, suffix); err != nil {
				return fmt.Errorf("moving %s to %s: %w", source, destination, err)
			}
		}
	}

	if err := MakeParentDirs(destination, 0o777); err != nil {
		return err
	}
	if err := movePath(source, destination); err != nil {
		return fmt.Errorf("moving %s to %s: %w", source, destination, err)
	}
	return nil
}

// movePath renames source to destination, falling back to
// copy-then-delete when the rename crosses a filesystem boundary
// (EXDEV). The fallback is not atomic; callers that need atomicity
// arrange for same-volume staging instead (as Replace does).
func movePath(source, destination string) error {
	err := os.Rename(source, destination)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, unix.EXDEV) {
		return err
	}

	info, statErr := os.Lstat(source)
	if statErr != nil {
		return fmt.Errorf("checking %s for cross-volume move: %w", source, statErr)
	}
	if info.IsDir() {
		if mkdirErr := os.Mkdir(destination, info.Mode().Perm()); mkdirErr != nil {
			return fmt.Errorf("creating %s for cross-volume move: %w", destination, mkdirErr)
		}
		if copyErr := copyTreeContents(source, destination, true); copyErr != nil {
			return copyErr
		}
	} else {
		if copyErr := copyFileContents(source, destination); copyErr != nil {
			return copyErr
		}
	}
	return RemoveAny(source)
}
