// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package texthash provides flexible content hashing for strings and
// files.
//
// The [Hash] value type carries its algorithm alongside the digest and
// renders as hex, base36, or an algorithm-prefixed string. Base36 is
// the interesting one: it produces short, filename-safe, case-
// insensitive identifiers (a SHA1 digest is ~31 characters), which is
// what lib/ident builds its readable hashed identifiers on.
//
// Three algorithms are supported: SHA1 (the default for identifier
// derivation), SHA256, and BLAKE3 for fast hashing of large files.
package texthash
