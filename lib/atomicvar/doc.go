// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package atomicvar provides a mutex-guarded container for a single
// value of any type.
//
// [Var] is for shared state that is read and replaced as a unit: a
// flag, a current configuration, a result slot, an accumulating list.
// Where a dedicated primitive fits, prefer it: sync/atomic for
// machine words, channels for handoff, sync.Map for concurrent maps.
// Var earns its keep when the value is an arbitrary type and the
// alternative is a hand-rolled struct{ mu sync.Mutex; v T } repeated
// across the codebase.
//
// [Var.Swap] and [Var.Update] make read-modify-write a single locked
// step. [Var.Mutate] gives a callback brief pointer access to the slot
// for in-place edits of mutable values; constructing the Var with
// [Immutable] disables Mutate for values whose owner promises nobody
// edits their interior, which lets readers use Get results without
// copying.
package atomicvar
