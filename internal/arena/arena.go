// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package arena defines an Arena type with compact pointers. It backs
// ir.File's Struct pool: StructRef payload types hold a Pointer[Struct]
// into the arena rather than a language-level pointer or reference-counted
// handle, per the shared read-only ownership model in spec §9.
package arena

import "fmt"

// Untyped is an untyped arena pointer. The zero value is nil.
type Untyped uint32

// Nil returns whether this pointer is nil.
func (p Untyped) Nil() bool {
	return p == 0
}

// Pointer is a compressed arena pointer. It cannot be dereferenced
// directly; see Pointer.In.
type Pointer[T any] Untyped

// Nil returns whether this pointer is nil.
func (p Pointer[T]) Nil() bool {
	return Untyped(p).Nil()
}

// In looks up this pointer in the given arena. arena must be the arena
// that allocated this pointer.
func (p Pointer[T]) In(arena *Arena[T]) *T {
	return arena.At(Untyped(p))
}

// Arena is a simple append-only arena of T, addressed by compact Pointer
// values instead of language pointers. Values live in a single growable
// slice, so a *T returned by At or Pointer.In may be left pointing at a stale
// copy after a later New; a Pointer stays valid for the lifetime of the
// Arena.
type Arena[T any] struct {
	items []T
}

// New allocates a new value on the arena and returns a pointer to it.
func (a *Arena[T]) New(value T) Pointer[T] {
	a.items = append(a.items, value)
	return Pointer[T](Untyped(len(a.items)))
}

// At dereferences an untyped arena pointer, as if by Pointer.In.
func (a *Arena[T]) At(ptr Untyped) *T {
	if ptr.Nil() {
		panic("arena: nil pointer dereference")
	}
	idx := int(ptr) - 1
	if idx < 0 || idx >= len(a.items) {
		panic(fmt.Sprintf("arena: pointer out of range: %d", ptr))
	}
	return &a.items[idx]
}

// Len returns the number of values allocated on the arena.
func (a *Arena[T]) Len() int {
	return len(a.items)
}

// All iterates every value in allocation order.
func (a *Arena[T]) All() []T {
	return a.items
}
