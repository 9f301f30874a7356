// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomicvar

import (
	"errors"
	"fmt"
	"sync"
)

// ErrImmutable is returned by Mutate when the Var was constructed with
// the Immutable option. In-place mutation of a value the owner has
// declared immutable is almost always a bug: the declaration exists so
// that readers may hold the result of Get without copying.
var ErrImmutable = errors.New("atomicvar: in-place mutation of immutable value")

// Var guards a single value of type T behind a mutex. Every access to
// the slot goes through a method that holds the mutex for its full
// duration, so the value is never observed mid-update.
//
// Callbacks passed to Update and Mutate receive the value itself, not
// the Var, and must not call back into the same Var; the mutex is not
// reentrant and doing so deadlocks. No operation supports timeout or
// cancellation; a callback that blocks forever stalls all other
// accessors.
type Var[T any] struct {
	mu        sync.Mutex
	value     T
	immutable bool
	clone     func(T) T
}

// Option configures a Var at construction.
type Option[T any] func(*Var[T])

// Immutable declares that the held value will never be mutated in
// place. Get may then hand out the value without defensive copying,
// and Mutate returns ErrImmutable. Replacement via Set, Swap, and
// Update remains allowed. The flag is about the value's interior, not
// the slot.
func Immutable[T any]() Option[T] {
	return func(v *Var[T]) { v.immutable = true }
}

// WithClone supplies a deep-copy function used by Clone. Without it,
// Clone returns the value as-is, which is a plain value copy; shared
// interior state (slice backing arrays, map storage, pointer targets)
// is not duplicated.
func WithClone[T any](clone func(T) T) Option[T] {
	return func(v *Var[T]) { v.clone = clone }
}

// New returns a Var holding initial. By default the value is assumed
// mutable; pass Immutable to declare otherwise.
func New[T any](initial T, options ...Option[T]) *Var[T] {
	v := &Var[T]{value: initial}
	for _, option := range options {
		option(v)
	}
	return v
}

// Get returns the current value. For value types this is a safe
// snapshot; for reference types the caller shares interior state with
// the slot and should use Clone (or Mutate for writes) instead.
func (v *Var[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Set replaces the value unconditionally.
func (v *Var[T]) Set(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value = value
}

// Swap replaces the value and returns the previous one in a single
// locked step, so concurrent swappers never lose an update the way a
// separate Get-then-Set would.
func (v *Var[T]) Swap(value T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	old := v.value
	v.value = value
	return old
}

// Update computes a replacement from the current value under the lock,
// installs it, and returns it. The callback must be pure with respect
// to the Var: it receives the value and must not touch the Var itself.
func (v *Var[T]) Update(update func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value = update(v.value)
	return v.value
}

// Mutate runs the callback on a pointer to the slot under the lock,
// for in-place modification of mutable values (append to a slice,
// insert into a map). The pointer is valid only for the duration of
// the callback; storing it escapes the lock and defeats the Var.
// Returns ErrImmutable, without invoking the callback, when the Var
// was declared immutable.
func (v *Var[T]) Mutate(mutate func(*T)) error {
	if v.immutable {
		return ErrImmutable
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	mutate(&v.value)
	return nil
}

// Clone returns a snapshot of the value safe for unsynchronized use:
// the configured clone function's result if one was supplied, else a
// plain value copy.
func (v *Var[T]) Clone() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.clone != nil {
		return v.clone(v.value)
	}
	return v.value
}

// String renders the current value with the fmt package's default
// formatting.
func (v *Var[T]) String() string {
	return fmt.Sprintf("%v", v.Get())
}
