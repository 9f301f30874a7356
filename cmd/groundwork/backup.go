// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/groundwork/cmd/groundwork/cli"
	"github.com/bureau-foundation/groundwork/lib/atomicfile"
)

func backupCommand() *cli.Command {
	var suffix string
	var copyMode bool
	var archiveMode bool
	var verbose bool
	return &cli.Command{
		Name:    "backup",
		Summary: "Move, copy, or archive a path to a backup",
		Description: `Create a backup of a file or directory.

By default the path is moved to its backup name. --copy leaves the
original in place, and --archive writes a compressed tar archive next
to it instead. A {timestamp} in the suffix expands to a sortable
unique ID, so repeated backups accumulate rather than overwrite.`,
		Usage: "groundwork backup [flags] <path>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("backup", pflag.ContinueOnError)
			flagSet.StringVar(&suffix, "suffix", atomicfile.DefaultBackupSuffix, "backup suffix")
			flagSet.BoolVar(&copyMode, "copy", false, "copy to the backup instead of moving")
			flagSet.BoolVar(&archiveMode, "archive", false,
				"write a compressed .tar.zst archive instead of a plain copy")
			flagSet.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Usagef("backup requires exactly one argument: <path>")
			}
			if copyMode && archiveMode {
				return cli.Usagef("--copy and --archive are mutually exclusive")
			}
			path := args[0]
			logger := cli.NewCommandLogger(verbose).With("command", "backup", "path", path)
			switch {
			case archiveMode:
				logger.Debug("archiving", "suffix", suffix+atomicfile.ArchiveSuffix)
				return atomicfile.ArchiveBackup(path, suffix)
			case copyMode:
				logger.Debug("copying to backup", "suffix", suffix)
				return atomicfile.CopyToBackup(path, suffix)
			default:
				logger.Debug("moving to backup", "suffix", suffix)
				return atomicfile.MoveToBackup(path, suffix)
			}
		},
	}
}

func restoreCommand() *cli.Command {
	var flags replaceFlags
	return &cli.Command{
		Name:    "restore",
		Summary: "Restore a path from a compressed archive",
		Description: `Extract a .tar.zst archive written by "groundwork backup --archive".

The archive's contents are staged next to the destination and renamed
into place, following the same atomic replacement rules as copy.`,
		Usage: "groundwork restore [flags] <archive> <destination>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("restore", pflag.ContinueOnError)
			flags.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return cli.Usagef("restore requires exactly two arguments: <archive> <destination>")
			}
			archive, destination := args[0], args[1]
			logger := cli.NewCommandLogger(flags.verbose).With("command", "restore")
			logger.Debug("restoring archive", "archive", archive, "destination", destination)
			return atomicfile.RestoreArchive(archive, destination, flags.options())
		},
	}
}
