// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package textsplice

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrOverlappingSpans is returned when two replacements cover
// overlapping byte ranges.
var ErrOverlappingSpans = errors.New("overlapping replacement spans")

// Insertion adds Text at a byte offset of the original string.
type Insertion struct {
	// Offset is the byte position in the original text where Text is
	// inserted. Offsets always refer to the original text, not to any
	// intermediate result.
	Offset int

	// Text is the string to insert.
	Text string
}

// Replacement substitutes the byte range [Start, End) of the original
// string with Text.
type Replacement struct {
	// Start is the first byte of the replaced span in the original
	// text.
	Start int

	// End is one past the last byte of the replaced span. Start ==
	// End inserts without removing anything.
	End int

	// Text is the replacement string.
	Text string
}

// InsertMultiple applies all insertions to text at once. Offsets refer
// to positions in the original text, so insertions never shift each
// other. Insertions at the same offset keep their given order.
func InsertMultiple(text string, insertions []Insertion) (string, error) {
	sorted := make([]Insertion, len(insertions))
	copy(sorted, insertions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	var builder strings.Builder
	lastEnd := 0
	for _, insertion := range sorted {
		if insertion.Offset < 0 || insertion.Offset > len(text) {
			return "", fmt.Errorf("insertion offset %d out of range [0, %d]", insertion.Offset, len(text))
		}
		builder.WriteString(text[lastEnd:insertion.Offset])
		builder.WriteString(insertion.Text)
		lastEnd = insertion.Offset
	}
	builder.WriteString(text[lastEnd:])
	return builder.String(), nil
}

// ReplaceMultiple applies all replacements to text simultaneously.
// Spans refer to the original text and must not overlap; touching
// spans (one ends where the next starts) are fine.
func ReplaceMultiple(text string, replacements []Replacement) (string, error) {
	sorted := make([]Replacement, len(replacements))
	copy(sorted, replacements)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var builder strings.Builder
	lastEnd := 0
	for _, replacement := range sorted {
		if replacement.Start < 0 || replacement.End > len(text) || replacement.Start > replacement.End {
			return "", fmt.Errorf("replacement span [%d, %d) out of range [0, %d)", replacement.Start, replacement.End, len(text))
		}
		if replacement.Start < lastEnd {
			return "", fmt.Errorf("span [%d, %d) begins before previous span ends at %d: %w",
				replacement.Start, replacement.End, lastEnd, ErrOverlappingSpans)
		}
		builder.WriteString(text[lastEnd:replacement.Start])
		builder.WriteString(replacement.Text)
		lastEnd = replacement.End
	}
	builder.WriteString(text[lastEnd:])
	return builder.String(), nil
}
