// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/groundwork/cmd/groundwork/cli"
	"github.com/bureau-foundation/groundwork/lib/texthash"
)

func hashCommand() *cli.Command {
	var algorithm string
	var base36 bool
	var prefix string
	return &cli.Command{
		Name:    "hash",
		Summary: "Hash file contents",
		Description: `Hash one or more files and print a digest per file.

Digests print as hex by default; --base36 prints the more compact
base 36 form used in generated identifiers. --prefix prepends an
algorithm prefix like "sha1:" so the digest is self-describing.`,
		Usage: "groundwork hash [flags] <file>...",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("hash", pflag.ContinueOnError)
			flagSet.StringVar(&algorithm, "algorithm", string(texthash.SHA1),
				"hash algorithm: sha1, sha256, or blake3")
			flagSet.BoolVar(&base36, "base36", false, "print digests in base 36")
			flagSet.StringVar(&prefix, "prefix", "", "prepend this prefix to each digest")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return cli.Usagef("hash requires at least one file argument")
			}
			switch texthash.Algorithm(algorithm) {
			case texthash.SHA1, texthash.SHA256, texthash.BLAKE3:
			default:
				return cli.Usagef("unknown algorithm %q (want sha1, sha256, or blake3)", algorithm)
			}
			for _, path := range args {
				hash, err := texthash.HashFile(path, texthash.Algorithm(algorithm))
				if err != nil {
					return err
				}
				digest := hash.Hex()
				if base36 {
					digest = hash.Base36()
				}
				if prefix != "" {
					digest = prefix + digest
				}
				if len(args) == 1 {
					fmt.Println(digest)
				} else {
					fmt.Printf("%s  %s\n", digest, path)
				}
			}
			return nil
		},
	}
}
