// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomicfile

import (
	"fmt"
	"os"
)

// TempOptions configures WithTempFile and WithTempDir.
type TempOptions struct {
	// Prefix and Suffix frame the random portion of the temporary
	// name. Prefix defaults to "tmp".
	Prefix string
	Suffix string

	// Dir is the parent directory. Empty means the system default
	// temporary directory.
	Dir string

	// MakeParents creates Dir if it is missing.
	MakeParents bool

	// AlwaysClean removes the temporary resource even when the scoped
	// function fails. Without it, cleanup is skipped on failure so the
	// partial output stays available for post-mortem inspection, the
	// same way Replace leaves its staging path behind.
	AlwaysClean bool
}

// pattern builds the os.CreateTemp / os.MkdirTemp name pattern.
func (o TempOptions) pattern() string {
	prefix := o.Prefix
	if prefix == "" {
		prefix = "tmp"
	}
	return prefix + "*" + o.Suffix
}

func (o TempOptions) ensureDir() error {
	if o.Dir == "" || !o.MakeParents {
		return nil
	}
	if err := os.MkdirAll(o.Dir, 0o777); err != nil {
		return fmt.Errorf("creating temporary directory parent %s: %w", o.Dir, err)
	}
	return nil
}

// WithTempFile creates a temporary file eagerly, runs fn with the open
// handle and the path, then removes the file. Removal is best-effort:
// errors are swallowed, and (unless AlwaysClean is set) removal is
// skipped entirely when fn returns an error. fn may close the file
// itself; the final close here tolerates that.
func WithTempFile(options TempOptions, fn func(file *os.File, path string) error) error {
	if err := options.ensureDir(); err != nil {
		return err
	}
	file, err := os.CreateTemp(options.Dir, options.pattern())
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	path := file.Name()
	clean := func() {
		file.Close()
		_ = RemoveAny(path)
	}

	if err := fn(file, path); err != nil {
		if options.AlwaysClean {
			clean()
		} else {
			file.Close()
		}
		return err
	}
	clean()
	return nil
}

// WithTempDir creates a temporary directory eagerly, runs fn with its
// path, then removes it recursively. Cleanup semantics match
// WithTempFile.
func WithTempDir(options TempOptions, fn func(path string) error) error {
	if err := options.ensureDir(); err != nil {
		return err
	}
	path, err := os.MkdirTemp(options.Dir, options.pattern())
	if err != nil {
		return fmt.Errorf("creating temporary directory: %w", err)
	}

	if err := fn(path); err != nil {
		if options.AlwaysClean {
			_ = RemoveAny(path)
		}
		return err
	}
	_ = RemoveAny(path)
	return nil
}
