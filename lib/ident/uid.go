// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ident

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/bureau-foundation/groundwork/lib/clock"
)

// base36Alphabet is the digit set for random identifiers. Base 36 is
// not case sensitive, so identifiers built from it are safe as
// filenames even on case-insensitive filesystems.
const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Default randomness for the two identifier flavors. Timestamped
// identifiers need fewer random bits because the timestamp already
// disambiguates all but same-microsecond collisions.
const (
	DefaultUIDBits            = 64
	DefaultTimestampedUIDBits = 32
)

// NewUID returns a random base36 identifier with at least the given
// bits of randomness (64 bits is 13 characters).
func NewUID(bits int) string {
	// log2(36) ≈ 5.17, so each character carries a bit over 5 bits.
	length := int(float64(bits)/5.16) + 1
	return randomBase36(length)
}

// randomBase36 returns length uniformly random base36 characters from
// the system's secure random source. Rejection sampling avoids the
// modulo bias of mapping bytes straight into a 36-character alphabet.
func randomBase36(length int) string {
	out := make([]byte, 0, length)
	buffer := make([]byte, 32)
	for len(out) < length {
		if _, err := rand.Read(buffer); err != nil {
			// crypto/rand.Read is documented to never fail on
			// supported platforms.
			panic(fmt.Sprintf("reading random bytes: %v", err))
		}
		for _, b := range buffer {
			// 252 is the largest multiple of 36 below 256; values at
			// or above it would bias the low digits.
			if b >= 252 {
				continue
			}
			out = append(out, base36Alphabet[b%36])
			if len(out) == length {
				break
			}
		}
	}
	return string(out)
}

// Base36Encode encodes n in base 36.
func Base36Encode(n uint64) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append(digits, base36Alphabet[n%36])
		n /= 36
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

// Generator produces identifiers and timestamps using an injected
// clock. The zero value is not usable; construct with a Clock.
type Generator struct {
	Clock clock.Clock
}

// TimestampedUID returns an identifier that begins with a compact UTC
// timestamp (to the microsecond) followed by random base36 characters.
// It sorts by creation time while remaining unique.
//
// Example: 20150912T084555Z-378465-43vtwbx
func (g Generator) TimestampedUID(bits int) string {
	now := g.Clock.Now().UTC()
	return fmt.Sprintf("%sZ-%06d-%s",
		now.Format("20060102T150405"),
		now.Nanosecond()/1000,
		NewUID(bits))
}

// ISOTimestamp returns the clock's current time as an ISO 8601 / RFC
// 3339 UTC timestamp ending in Z.
func (g Generator) ISOTimestamp(withMicroseconds bool) string {
	return FormatISOTimestamp(g.Clock.Now(), withMicroseconds)
}

// NewTimestampedUID is Generator.TimestampedUID on the real clock.
func NewTimestampedUID(bits int) string {
	return Generator{Clock: clock.Real()}.TimestampedUID(bits)
}

// ISOTimestamp is Generator.ISOTimestamp on the real clock.
func ISOTimestamp(withMicroseconds bool) string {
	return Generator{Clock: clock.Real()}.ISOTimestamp(withMicroseconds)
}

// FormatISOTimestamp formats t as an ISO 8601 / RFC 3339 UTC timestamp
// with a trailing Z, with or without the microsecond fraction.
//
// Example with microseconds: 2015-09-12T08:41:12.397217Z
// Example without: 2015-09-12T08:41:12Z
func FormatISOTimestamp(t time.Time, withMicroseconds bool) string {
	if withMicroseconds {
		return t.UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
