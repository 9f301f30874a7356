// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ident

import (
	"fmt"
	"os"
	"regexp"

	"github.com/bureau-foundation/groundwork/lib/texthash"
)

var nonAlphanumeric = regexp.MustCompile(`(?i)[^a-z0-9]+`)

// CleanAlphanum converts a string to a readable identifier: runs of
// non-alphanumeric characters become single underscores, and the
// result is truncated to maxLength (0 means no limit).
//
// The mapping is for readability only and collides easily on different
// inputs; use [CleanAlphanumHash] when collisions matter.
func CleanAlphanum(s string, maxLength int) string {
	cleaned := nonAlphanumeric.ReplaceAllString(s, "_")
	if maxLength > 0 && len(cleaned) > maxLength {
		cleaned = cleaned[:maxLength]
	}
	return cleaned
}

// CleanAlphanumHash converts a string to a readable identifier with a
// base36 SHA1 hash suffix so collisions are unlikely. The result is at
// most maxLength characters unless maxLength is too short for the
// hash itself, in which case just the hash is returned. maxHashLength
// (0 means full length) truncates the hash portion.
//
// Example: CleanAlphanumHash("foo", 64, 0)
//
//	-> "foo_1e6gpc3ehk0mu2jqu8cg42g009s796b"
func CleanAlphanumHash(s string, maxLength, maxHashLength int) string {
	hashed, err := texthash.HashString(s, texthash.SHA1)
	if err != nil {
		// SHA1 is always available; only an unknown algorithm fails.
		panic(fmt.Sprintf("hashing identifier: %v", err))
	}
	hashStr := hashed.Base36()
	if maxHashLength > 0 && len(hashStr) > maxHashLength {
		hashStr = hashStr[:maxHashLength]
	}
	if maxLength < len(hashStr)+1 {
		return hashStr
	}
	return CleanAlphanum(s, maxLength-len(hashStr)-1) + "_" + hashStr
}

// FileMtimeHash returns a fast change-detection identifier for a file,
// derived from its name, size, and high-resolution modification time.
// The readable prefix preserves the name and size to help with sorting
// and debugging.
//
// This is not a content hash: the file's bytes are never read. It is
// good enough to detect modifications in simple caching use cases.
func FileMtimeHash(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s for mtime hash: %w", path, err)
	}
	key := fmt.Sprintf("%s-%d-%d", info.Name(), info.Size(), info.ModTime().UnixNano())
	return CleanAlphanumHash(key, 64, 0), nil
}
