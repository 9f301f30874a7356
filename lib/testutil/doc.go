// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for groundwork
// packages.
//
// [RequireReceive] and [RequireClosed] encapsulate the timeout safety
// valve pattern (select with time.After fallback) so that individual
// tests do not need direct time.After calls; these are the only
// wall-clock timeouts in the test suite.
//
// [WriteTree] and [ReadTree] build and snapshot directory trees as
// path→content maps, which is how the atomic copy tests compare a
// destination against its source.
//
// [UniqueID] generates monotonically increasing identifiers for
// markers that must be distinguishable within a test binary.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no dependencies on other groundwork packages.
package testutil
