// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyOptions configures CopyTree beyond the Replace options.
type CopyOptions struct {
	// CopySymlinks reproduces symlinks as symlinks. When false (the
	// default), symlinks are followed and their targets copied.
	CopySymlinks bool
}

// CopyFile copies source to destination atomically: partial copies
// are never visible at the destination name. The source's permission
// bits and modification time are preserved.
func CopyFile(source, destination string, options ReplaceOptions) error {
	return Replace(destination, options, func(staging string) error {
		return copyFileContents(source, staging)
	})
}

// CopyTree copies a file or directory recursively and atomically: the
// whole tree is staged next to the destination and renamed into place
// when complete. A plain file source behaves exactly like CopyFile.
func CopyTree(source, destination string, options ReplaceOptions, copyOptions ...CopyOptions) error {
	var co CopyOptions
	if len(copyOptions) > 0 {
		co = copyOptions[0]
	}

	info, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("checking copy source %s: %w", source, err)
	}
	if !info.IsDir() {
		return CopyFile(source, destination, options)
	}

	return Replace(destination, options, func(staging string) error {
		if err := os.Mkdir(staging, info.Mode().Perm()); err != nil {
			return fmt.Errorf("creating staging directory: %w", err)
		}
		return copyTreeContents(source, staging, co.CopySymlinks)
	})
}

// copyFileContents copies one regular file byte for byte, preserving
// permission bits and modification time. The destination must not
// exist.
func copyFileContents(source, destination string) error {
	sourceInfo, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("checking copy source %s: %w", source, err)
	}

	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("opening copy source %s: %w", source, err)
	}
	defer in.Close()

	out, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_EXCL, sourceInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating copy destination %s: %w", destination, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", source, destination, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return fmt.Errorf("syncing %s: %w", destination, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", destination, err)
	}

	modTime := sourceInfo.ModTime()
	if err := os.Chtimes(destination, modTime, modTime); err != nil {
		return fmt.Errorf("preserving modification time of %s: %w", destination, err)
	}
	return nil
}

// copyTreeContents recursively copies the entries of the source
// directory into the existing destination directory.
func copyTreeContents(source, destination string, copySymlinks bool) error {
	entries, err := os.ReadDir(source)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", source, err)
	}

	for _, entry := range entries {
		sourcePath := filepath.Join(source, entry.Name())
		destinationPath := filepath.Join(destination, entry.Name())

		entryType := entry.Type()
		if entryType&fs.ModeSymlink != 0 {
			if copySymlinks {
				target, err := os.Readlink(sourcePath)
				if err != nil {
					return fmt.Errorf("reading symlink %s: %w", sourcePath, err)
				}
				if err := os.Symlink(target, destinationPath); err != nil {
					return fmt.Errorf("creating symlink %s: %w", destinationPath, err)
				}
				continue
			}
			// Follow the link and copy whatever it points at.
			resolved, err := os.Stat(sourcePath)
			if err != nil {
				return fmt.Errorf("resolving symlink %s: %w", sourcePath, err)
			}
			if resolved.IsDir() {
				if err := os.Mkdir(destinationPath, resolved.Mode().Perm()); err != nil {
					return fmt.Errorf("creating directory %s: %w", destinationPath, err)
				}
				if err := copyTreeContents(sourcePath, destinationPath, copySymlinks); err != nil {
					return err
				}
				continue
			}
			if err := copyFileContents(sourcePath, destinationPath); err != nil {
				return err
			}
			continue
		}

		if entryType.IsDir() {
			info, err := entry.Info()
			if err != nil {
				return fmt.Errorf("checking directory %s: %w", sourcePath, err)
			}
			if err := os.Mkdir(destinationPath, info.Mode().Perm()); err != nil {
				return fmt.Errorf("creating directory %s: %w", destinationPath, err)
			}
			if err := copyTreeContents(sourcePath, destinationPath, copySymlinks); err != nil {
				return err
			}
			continue
		}

		if err := copyFileContents(sourcePath, destinationPath); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAny removes path whatever it is: directories recursively,
// files and symlinks with a single unlink (a symlink to a directory
// is unlinked, never descended). Removing a path that does not exist
// is a no-op.
func RemoveAny(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking %s for removal: %w", path, err)
	}
	if info.IsDir() {
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("removing directory %s: %w", path, err)
		}
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}
