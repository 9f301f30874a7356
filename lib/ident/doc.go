// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ident generates random, timestamped, and readable
// identifiers.
//
// [NewUID] draws base36 characters from the system's secure random
// source. [Generator.TimestampedUID] prefixes a compact UTC timestamp
// so identifiers sort by creation time; this is what backup rotation
// uses to make every backup name unique. [CleanAlphanum] and
// [CleanAlphanumHash] turn arbitrary strings into readable,
// filename-safe identifiers, the latter with a base36 SHA1 suffix so
// collisions are unlikely. [FileMtimeHash] derives a fast
// change-detection key from a file's name, size, and modification
// time without reading its content.
//
// Time-dependent functions are methods on [Generator], which carries
// an injected clock; package-level wrappers use the real clock.
package ident
