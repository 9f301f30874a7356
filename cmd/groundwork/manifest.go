// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/groundwork/lib/atomicfile"
)

// Manifest is a declarative list of file operations applied in order
// by "groundwork apply".
type Manifest struct {
	Steps []Step `yaml:"steps"`
}

// Step is one file operation in a manifest.
type Step struct {
	// Action selects the operation: copy, copytree, move, backup,
	// or archive.
	Action string `yaml:"action"`

	// Source is the path read from. Unused by backup and archive,
	// which operate on Path.
	Source string `yaml:"source,omitempty"`

	// Destination is the path written. Unused by backup and archive.
	Destination string `yaml:"destination,omitempty"`

	// Path is the file or directory that backup and archive snapshot.
	Path string `yaml:"path,omitempty"`

	// BackupSuffix backs up an existing destination under this
	// suffix before replacement. {timestamp} expands to a sortable
	// unique ID. For backup and archive steps this is the backup
	// suffix itself and defaults to ".{timestamp}.bak".
	BackupSuffix string `yaml:"backup_suffix,omitempty"`

	// Force replaces the destination even when it is a directory and
	// the source is not, or vice versa.
	Force bool `yaml:"force,omitempty"`

	// MakeParents creates missing parent directories of the
	// destination.
	MakeParents bool `yaml:"make_parents,omitempty"`

	// Symlinks copies symlinks as symlinks instead of following
	// them (copytree only).
	Symlinks bool `yaml:"symlinks,omitempty"`
}

// LoadManifest reads and validates a manifest file. Unknown YAML keys
// are rejected so a typo like "destintion" fails loudly instead of
// silently skipping the field.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	manifest, err := parseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return manifest, nil
}

func parseManifest(data []byte) (*Manifest, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var manifest Manifest
	if err := decoder.Decode(&manifest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest is empty")
		}
		return nil, err
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// Validate checks every step for a known action and the arguments that
// action requires.
func (m *Manifest) Validate() error {
	if len(m.Steps) == 0 {
		return fmt.Errorf("manifest has no steps")
	}
	var errs []error
	for i, step := range m.Steps {
		if err := step.validate(); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Step) validate() error {
	switch s.Action {
	case "copy", "copytree", "move":
		if s.Source == "" || s.Destination == "" {
			return fmt.Errorf("%s requires source and destination", s.Action)
		}
		if s.Path != "" {
			return fmt.Errorf("%s does not take path", s.Action)
		}
	case "backup", "archive":
		if s.Path == "" {
			return fmt.Errorf("%s requires path", s.Action)
		}
		if s.Source != "" || s.Destination != "" {
			return fmt.Errorf("%s takes path, not source/destination", s.Action)
		}
	case "":
		return fmt.Errorf("missing action")
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	return nil
}

// describe returns a one-line summary used for logging and dry runs.
func (s *Step) describe() string {
	switch s.Action {
	case "backup", "archive":
		return fmt.Sprintf("%s %s", s.Action, s.Path)
	default:
		return fmt.Sprintf("%s %s -> %s", s.Action, s.Source, s.Destination)
	}
}

// apply executes the step.
func (s *Step) apply() error {
	options := atomicfile.ReplaceOptions{
		BackupSuffix: s.BackupSuffix,
		Force:        s.Force,
		MakeParents:  s.MakeParents,
	}
	suffix := s.BackupSuffix
	if suffix == "" {
		suffix = atomicfile.DefaultBackupSuffix
	}
	switch s.Action {
	case "copy":
		return atomicfile.CopyFile(s.Source, s.Destination, options)
	case "copytree":
		return atomicfile.CopyTree(s.Source, s.Destination, options,
			atomicfile.CopyOptions{CopySymlinks: s.Symlinks})
	case "move":
		return atomicfile.MoveFile(s.Source, s.Destination, s.BackupSuffix != "", suffix)
	case "backup":
		return atomicfile.MoveToBackup(s.Path, suffix)
	case "archive":
		return atomicfile.ArchiveBackup(s.Path, suffix)
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
}
