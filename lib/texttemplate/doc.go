// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package texttemplate provides a small validated string template.
//
// A [Template] is a pattern with {name} placeholders drawn from an
// explicit set of allowed fields, each with an argument kind (string,
// int, float). Validation happens at construction, so a pattern read
// from configuration fails fast rather than at first use, and Format
// type-checks every argument.
//
// This is deliberately much smaller than text/template: no logic, no
// functions, no nesting. Just named substitution with an allowlist.
// Use it where the pattern comes from a user or a config file and the
// set of meaningful variables is fixed, such as backup suffix
// expressions or display name patterns.
package texttemplate
