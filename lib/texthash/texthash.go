// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package texthash

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"math/big"
	"os"

	"github.com/zeebo/blake3"
)

// Algorithm names a supported digest algorithm.
type Algorithm string

// Supported algorithms. SHA1 is the default throughout this module:
// these hashes name things (identifiers, backup tokens, cache keys),
// they do not authenticate them, so collision resistance against an
// adversary is not required. Use BLAKE3 where speed on large files
// matters.
const (
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
	BLAKE3 Algorithm = "blake3"
)

// Hash is a digest together with the algorithm that produced it. It
// renders as hex, base36, or an algorithm-prefixed form so callers can
// pick the representation that fits: hex for interoperability, base36
// for short filename-safe identifiers (case-insensitive, so safe even
// on case-insensitive filesystems).
type Hash struct {
	// Algorithm that produced the digest.
	Algorithm Algorithm

	// Digest is the raw digest bytes.
	Digest []byte
}

// Hex returns the lowercase hex encoding of the digest.
func (h Hash) Hex() string {
	return hex.EncodeToString(h.Digest)
}

// Base36 returns the digest interpreted as a big-endian integer and
// encoded in base 36 (digits and lowercase letters). A SHA1 digest is
// about 31 characters in this form.
func (h Hash) Base36() string {
	return new(big.Int).SetBytes(h.Digest).Text(36)
}

// WithPrefix returns "<algorithm>:<hex>", the canonical self-describing
// form for logs and stored metadata.
func (h Hash) WithPrefix() string {
	return fmt.Sprintf("%s:%s", h.Algorithm, h.Hex())
}

// String returns the prefixed form.
func (h Hash) String() string { return h.WithPrefix() }

// newHasher returns a streaming hash for the given algorithm.
func newHasher(algorithm Algorithm) (hash.Hash, error) {
	switch algorithm {
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case BLAKE3:
		return blake3.New(), nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %q", algorithm)
	}
}

// HashString computes the digest of s.
func HashString(s string, algorithm Algorithm) (Hash, error) {
	return HashBytes([]byte(s), algorithm)
}

// HashBytes computes the digest of data.
func HashBytes(data []byte, algorithm Algorithm) (Hash, error) {
	hasher, err := newHasher(algorithm)
	if err != nil {
		return Hash{}, err
	}
	hasher.Write(data)
	return Hash{Algorithm: algorithm, Digest: hasher.Sum(nil)}, nil
}

// HashFile computes the digest of the file at path. The file is
// streamed through the hash function (via io.Copy) to keep memory
// usage constant regardless of file size.
func HashFile(path string, algorithm Algorithm) (Hash, error) {
	hasher, err := newHasher(algorithm)
	if err != nil {
		return Hash{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return Hash{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	if _, err := io.Copy(hasher, file); err != nil {
		return Hash{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return Hash{Algorithm: algorithm, Digest: hasher.Sum(nil)}, nil
}
