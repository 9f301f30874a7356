// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package textfmt abbreviates and quotes strings for human-readable
// output: log lines, error messages, progress reports.
//
// Nothing here is a parsable or reversible format. [AbbrevString] and
// [AbbrevList] keep output bounded, [SingleLine] flattens multi-line
// text, and [QuoteIfNeeded] adds quotes only when a value would
// otherwise be ambiguous to a reader.
package textfmt
