// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable wall-clock abstraction for
// testability.
//
// Production code accepts a Clock parameter instead of calling
// time.Now directly. Real() provides the standard library behavior;
// Fake() provides a deterministic clock that moves only when the test
// calls Advance or Set.
//
//	generator := ident.Generator{Clock: clock.Real()}
//
// In tests:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	generator := ident.Generator{Clock: c}
//	c.Advance(5 * time.Second)
package clock
