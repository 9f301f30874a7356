// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/groundwork/cmd/groundwork/cli"
	"github.com/bureau-foundation/groundwork/lib/ident"
)

func uidCommand() *cli.Command {
	var bits int
	var timestamped bool
	var count int
	return &cli.Command{
		Name:    "uid",
		Summary: "Generate random identifiers",
		Description: `Generate base 36 random identifiers.

--timestamped prepends a UTC timestamp with microseconds, producing
IDs that sort by creation time, the same format used for {timestamp}
backup suffixes.`,
		Usage: "groundwork uid [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("uid", pflag.ContinueOnError)
			flagSet.IntVar(&bits, "bits", ident.DefaultUIDBits, "bits of randomness")
			flagSet.BoolVar(&timestamped, "timestamped", false, "prepend a sortable UTC timestamp")
			flagSet.IntVarP(&count, "count", "n", 1, "number of identifiers to generate")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return cli.Usagef("uid takes no positional arguments")
			}
			if bits < 1 {
				return cli.Usagef("--bits must be positive")
			}
			if count < 1 {
				return cli.Usagef("--count must be positive")
			}
			for range count {
				if timestamped {
					fmt.Println(ident.NewTimestampedUID(bits))
				} else {
					fmt.Println(ident.NewUID(bits))
				}
			}
			return nil
		},
	}
}
