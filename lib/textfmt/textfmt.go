// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package textfmt

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultIndicator is the truncation marker used by the CLI and
// recommended for callers that have no better choice.
const DefaultIndicator = "…"

// AbbrevString truncates s to at most maxLength characters (runes, not
// bytes), appending indicator when truncation happened. maxLength 0
// disables truncation. If the budget cannot fit the indicator, the
// string is hard-cut instead.
func AbbrevString(s string, maxLength int, indicator string) string {
	if s == "" || maxLength == 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	indicatorRunes := []rune(indicator)
	if maxLength <= len(indicatorRunes) {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-len(indicatorRunes)]) + indicator
}

// AbbrevList renders items joined by joiner, truncating each item to
// itemMaxLength characters and appending indicator as a final element
// when the list itself was cut at maxItems. itemMaxLength 0 disables
// per-item truncation.
func AbbrevList(items []string, maxItems, itemMaxLength int, joiner, indicator string) string {
	if len(items) == 0 {
		return ""
	}
	shown := items
	truncated := false
	if maxItems > 0 && len(items) > maxItems {
		shown = items[:maxItems]
		truncated = true
	}
	shortened := make([]string, 0, len(shown)+1)
	for _, item := range shown {
		shortened = append(shortened, AbbrevString(item, itemMaxLength, indicator))
	}
	if truncated {
		shortened = append(shortened, indicator)
	}
	return strings.Join(shortened, joiner)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// SingleLine collapses all whitespace runs (including newlines) to
// single spaces and trims the ends.
func SingleLine(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// quotable matches any character outside the set that can appear
// unquoted in a shell word. Same logic as shell quoting rules, with ~
// added since it rarely needs protection in practice.
var quotable = regexp.MustCompile(`[^a-zA-Z0-9_@%+=:,./~-]`)

// IsQuotable reports whether s needs quoting for unambiguous display.
func IsQuotable(s string) bool {
	return quotable.MatchString(s)
}

// QuoteIfNeeded formats a string or path for display, quoting only
// when needed for clarity. Intended for readable log and error output,
// not as a parsable format; use strconv.Quote directly when the result
// must round-trip.
func QuoteIfNeeded(s string) string {
	if s == "" || IsQuotable(s) {
		return strconv.Quote(s)
	}
	return s
}

// ByteLen returns the length of s in bytes of its UTF-8 encoding.
// This is just len(s), named for call sites where the byte/rune
// distinction is the whole point.
func ByteLen(s string) int {
	return len(s)
}
