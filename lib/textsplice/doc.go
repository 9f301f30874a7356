// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package textsplice edits multiple spans of a string in one pass.
//
// All offsets refer to the original text, so a batch of insertions or
// replacements can be computed up front (for example from a parser's
// source positions) and applied without tracking how earlier edits
// shift later ones. Replacement spans must not overlap.
package textsplice
