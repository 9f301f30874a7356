// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the groundwork
// CLI.
//
// The central type is [Command], a named subcommand with optional
// nested [Command.Subcommands], a [pflag.FlagSet] factory, and a Run
// function. Commands are assembled into a tree in cmd/groundwork and
// dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against the known names and
// suggests the closest match (threshold: distance <= 3).
//
// [ExitError] lets a command exit non-zero without an error message,
// and [NewCommandLogger] builds the slog logger shared by all
// subcommands, switching between text and JSON output based on whether
// stderr is a terminal.
package cli
