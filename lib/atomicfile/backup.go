// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/bureau-foundation/groundwork/lib/ident"
)

// TimestampVar is the placeholder recognized inside backup suffix
// expressions. Each expansion substitutes a fresh sortable unique
// token, so a suffix containing it never collides with an earlier
// backup.
const TimestampVar = "{timestamp}"

// BackupSuffix is the conventional backup extension.
const BackupSuffix = ".bak"

// DefaultBackupSuffix keeps unbounded timestamped backup history.
const DefaultBackupSuffix = TimestampVar + BackupSuffix

// expandBackupSuffix substitutes TimestampVar with a fresh timestamped
// token; a suffix without the placeholder is returned unchanged.
func expandBackupSuffix(suffix string) string {
	if !strings.Contains(suffix, TimestampVar) {
		return suffix
	}
	return strings.ReplaceAll(suffix, TimestampVar, ident.NewTimestampedUID(ident.DefaultTimestampedUIDBits))
}

// prepareBackup computes the backup path for path and clears the way
// for content to move there: an existing symlink at the backup path is
// unlinked and an existing directory is recursively removed. A plain
// existing file is left alone; the subsequent move or copy clobbers
// it. Nothing is moved here.
//
// Clearing is not atomic with the later move. Two callers expanding to
// the identical fixed backup path can overwrite each other's backup;
// with a TimestampVar suffix the paths are unique and the race cannot
// happen.
func prepareBackup(path, suffix string) (string, error) {
	if suffix == "" {
		return "", ErrBackupSuffixEmpty
	}

	backupPath := path + expandBackupSuffix(suffix)

	info, err := os.Lstat(backupPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Nothing in the way.
	case err != nil:
		return "", fmt.Errorf("checking backup path %s: %w", backupPath, err)
	case info.Mode()&fs.ModeSymlink != 0:
		if err := os.Remove(backupPath); err != nil {
			return "", fmt.Errorf("unlinking old backup symlink %s: %w", backupPath, err)
		}
	case info.IsDir():
		if err := os.RemoveAll(backupPath); err != nil {
			return "", fmt.Errorf("removing old backup directory %s: %w", backupPath, err)
		}
	}

	return backupPath, nil
}

// MoveToBackup moves the file or directory at path to its backup
// name: path plus the expanded suffix. If path does not exist this is
// a no-op. If path vanishes between the existence check and the move
// (another goroutine or process moved it first), that is also treated
// as success: the desired end state (nothing at path) already holds.
//
// Without TimestampVar in the suffix, an earlier backup at the same
// name is clobbered.
func MoveToBackup(path, suffix string) error {
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking %s before backup: %w", path, err)
	}

	backupPath, err := prepareBackup(path, suffix)
	if err != nil {
		return err
	}

	if err := movePath(path, backupPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("moving %s to backup %s: %w", path, backupPath, err)
	}
	return nil
}

// CopyToBackup is MoveToBackup except the original stays in place: the
// file or directory is copied (atomically) to the backup path.
func CopyToBackup(path, suffix string) error {
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking %s before backup: %w", path, err)
	}

	backupPath, err := prepareBackup(path, suffix)
	if err != nil {
		return err
	}

	if err := CopyTree(path, backupPath, ReplaceOptions{}); err != nil {
		return fmt.Errorf("copying %s to backup %s: %w", path, backupPath, err)
	}
	return nil
}
