// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bureau-foundation/groundwork/cmd/groundwork/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := root().Execute(os.Args[1:]); err != nil {
		// Commands that print their own output return an ExitError
		// with the desired code. Don't print a redundant "error:"
		// line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var usage *cli.UsageError
		if errors.As(err, &usage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func root() *cli.Command {
	return &cli.Command{
		Name:    "groundwork",
		Summary: "atomic file operations with automatic backups",
		Description: `Groundwork: atomic file operations with automatic backups.

Copies, moves, and backups commit with a single rename, so readers of
the destination never observe a partially written file or tree.`,
		Subcommands: []*cli.Command{
			copyCommand(),
			copyTreeCommand(),
			backupCommand(),
			restoreCommand(),
			hashCommand(),
			uidCommand(),
			applyCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("groundwork %s\n", version)
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Replace a config file, keeping timestamped backups",
				Command:     "groundwork copy --backup-suffix '.{timestamp}.bak' new.yaml /etc/app/config.yaml",
			},
			{
				Description: "Deploy a directory tree atomically",
				Command:     "groundwork copytree --force build/site /srv/www/site",
			},
			{
				Description: "Snapshot a directory into a compressed archive",
				Command:     "groundwork backup --archive state/",
			},
			{
				Description: "Run a manifest of file operations",
				Command:     "groundwork apply --manifest deploy.yaml",
			},
		},
	}
}
