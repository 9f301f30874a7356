// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without an extra error
// message. When a command handler returns an ExitError, main exits with
// the given code and prints nothing; the command has already written
// its own output.
//
// Commands use this where a non-zero exit is a valid outcome rather
// than a failure, such as "hash --check" reporting a mismatch.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this method on
// returned errors to distinguish a handled non-zero exit from an
// unexpected error to display.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// UsageError marks an error as a command-line usage problem (unknown
// command, bad flag, wrong arguments). main exits with code 2 for
// usage errors and code 1 for operational failures.
type UsageError struct {
	message string
}

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) error {
	return &UsageError{message: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string {
	return e.message
}
