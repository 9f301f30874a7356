// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package atomicfile replaces files and directories atomically, with
// optional backup retention.
//
// # Atomic replacement
//
// [Replace] is the core primitive: content is fully prepared at a
// staging path next to the destination, then committed with a single
// same-volume rename. A reader of the destination name sees the
// complete old state or the complete new state, never a partial write,
// even across a crash. [WriteFile], [CopyFile], and [CopyTree]
// are built on it. Two callers racing on one destination each commit
// all-or-nothing; the last rename wins.
//
// If the populate step fails, the destination is untouched and the
// staging path is intentionally left behind rather than cleaned up:
// an incomplete artifact must never be mistaken for success, and the
// leftover is often exactly what you want to inspect. The ".partial"
// suffix makes strays easy to find and remove.
//
// # Backups
//
// A backup suffix containing the "{timestamp}" placeholder yields
// unbounded history (every backup gets a fresh sortable unique name);
// a fixed suffix keeps exactly one backup, silently overwritten each
// time. [MoveToBackup], [CopyToBackup], and [ArchiveBackup] apply the
// same expansion; the last writes a zstd-compressed tar that
// [RestoreArchive] can reinstall atomically.
//
// # Scoped temporaries
//
// [WithTempFile] and [WithTempDir] create a temporary resource for
// the duration of a callback. Cleanup is best-effort and, by default,
// skipped when the callback fails; set AlwaysClean for guaranteed
// removal. The default mirrors Replace's keep-the-evidence policy.
//
// # Requirements
//
// Correctness rests on the host filesystem providing atomic rename
// within a volume (POSIX rename semantics). Staging paths are always
// siblings of their destination, so the commit rename never crosses a
// volume boundary. [MoveFile] is the one deliberately non-atomic
// operation here, and it says so.
package atomicfile
