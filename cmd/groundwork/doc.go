// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// The groundwork command exposes atomic file operations on the command
// line: crash-safe copies of files and directory trees, backup
// rotation with sortable timestamped names, compressed archive
// snapshots, content hashing, identifier generation, and declarative
// manifests of operations via "groundwork apply".
package main
