// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/groundwork/cmd/groundwork/cli"
)

func applyCommand() *cli.Command {
	var manifestPath string
	var dryRun bool
	var verbose bool
	return &cli.Command{
		Name:    "apply",
		Summary: "Run a manifest of file operations",
		Description: `Apply a YAML manifest of file operations in order.

Each step is one atomic operation (copy, copytree, move, backup, or
archive). The manifest is validated up front; a step failure stops the
run, and steps already applied stay applied. --dry-run prints the plan
without touching anything.

Manifest format:

  steps:
    - action: copytree
      source: build/site
      destination: /srv/www/site
      backup_suffix: ".{timestamp}.bak"
      force: true
    - action: archive
      path: /srv/www/site`,
		Usage: "groundwork apply --manifest <file> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("apply", pflag.ContinueOnError)
			flagSet.StringVar(&manifestPath, "manifest", "", "path to the manifest file (required)")
			flagSet.BoolVar(&dryRun, "dry-run", false, "print the plan without applying it")
			flagSet.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return cli.Usagef("apply takes no positional arguments")
			}
			if manifestPath == "" {
				return cli.Usagef("--manifest is required")
			}
			manifest, err := LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			logger := cli.NewCommandLogger(verbose).With("command", "apply", "manifest", manifestPath)

			if dryRun {
				for i, step := range manifest.Steps {
					fmt.Printf("%d. %s\n", i+1, step.describe())
				}
				return nil
			}
			for i, step := range manifest.Steps {
				logger.Debug("applying step", "step", i+1, "operation", step.describe())
				if err := step.apply(); err != nil {
					return fmt.Errorf("step %d (%s): %w", i+1, step.describe(), err)
				}
			}
			logger.Debug("manifest applied", "steps", len(manifest.Steps))
			return nil
		},
	}
}
