// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/groundwork/cmd/groundwork/cli"
	"github.com/bureau-foundation/groundwork/lib/atomicfile"
)

// replaceFlags are the flags shared by copy commands.
type replaceFlags struct {
	backupSuffix string
	force        bool
	makeParents  bool
	verbose      bool
}

func (f *replaceFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.backupSuffix, "backup-suffix", "",
		"back up an existing destination under this suffix; {timestamp} expands to a sortable unique ID")
	flagSet.BoolVar(&f.force, "force", false,
		"replace the destination even when it is a directory and the source is not (or vice versa)")
	flagSet.BoolVar(&f.makeParents, "make-parents", false,
		"create missing parent directories of the destination")
	flagSet.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
}

func (f *replaceFlags) options() atomicfile.ReplaceOptions {
	return atomicfile.ReplaceOptions{
		BackupSuffix: f.backupSuffix,
		Force:        f.force,
		MakeParents:  f.makeParents,
	}
}

func copyCommand() *cli.Command {
	var flags replaceFlags
	return &cli.Command{
		Name:    "copy",
		Summary: "Copy a file atomically",
		Description: `Copy a single file so the destination is replaced in one rename.

The destination never holds a partially written copy: content is staged
at a sibling path, synced, and renamed into place. Permissions and
modification time are preserved from the source.`,
		Usage: "groundwork copy [flags] <source> <destination>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("copy", pflag.ContinueOnError)
			flags.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return cli.Usagef("copy requires exactly two arguments: <source> <destination>")
			}
			source, destination := args[0], args[1]
			logger := cli.NewCommandLogger(flags.verbose).With("command", "copy")
			logger.Debug("copying file", "source", source, "destination", destination)
			return atomicfile.CopyFile(source, destination, flags.options())
		},
	}
}

func copyTreeCommand() *cli.Command {
	var flags replaceFlags
	var copySymlinks bool
	return &cli.Command{
		Name:    "copytree",
		Summary: "Copy a directory tree atomically",
		Description: `Copy a file or directory tree so the destination appears in one rename.

The whole tree is staged next to the destination and renamed into place
when complete, so readers see either the old tree or the new one, never
a mix. Symlinks are followed by default; --symlinks reproduces them as
links instead.`,
		Usage: "groundwork copytree [flags] <source> <destination>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("copytree", pflag.ContinueOnError)
			flags.register(flagSet)
			flagSet.BoolVar(&copySymlinks, "symlinks", false,
				"copy symlinks as symlinks instead of following them")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return cli.Usagef("copytree requires exactly two arguments: <source> <destination>")
			}
			source, destination := args[0], args[1]
			logger := cli.NewCommandLogger(flags.verbose).With("command", "copytree")
			logger.Debug("copying tree", "source", source, "destination", destination,
				"symlinks", copySymlinks)
			return atomicfile.CopyTree(source, destination, flags.options(),
				atomicfile.CopyOptions{CopySymlinks: copySymlinks})
		},
	}
}
