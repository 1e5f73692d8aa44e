// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// A package-level convenience wrapping a single global *Allocator, for
// callers that want the C-style init/allocate/release surface instead of
// constructing their own Allocator value. It is a thin wrapper with no
// independent logic: every function below just forwards to the global
// instance, allocating it lazily on first use (per the Design Notes'
// "Global state" guidance).

package malloc

var global *Allocator

// Init (re)creates the package-level Allocator over a fresh MemRegion with
// the given Options. Callers that never call Init get DefaultOptions() on
// first use of Allocate/Release/Resize/ZeroAllocate.
func Init(opts Options) error {
	a, err := New(nil, opts)
	if err != nil {
		return err
	}
	global = a
	return nil
}

func ensureGlobal() *Allocator {
	if global == nil {
		a, err := New(nil, DefaultOptions())
		if err != nil {
			panic(err) // not reached: New over a MemRegion with DefaultOptions does not fail
		}
		global = a
	}
	return global
}

// Allocate forwards to the package-level Allocator's Allocate.
func Allocate(n uint) Ptr { return ensureGlobal().Allocate(n) }

// Release forwards to the package-level Allocator's Release.
func Release(p Ptr) { ensureGlobal().Release(p) }

// Resize forwards to the package-level Allocator's Resize.
func Resize(p Ptr, n uint) Ptr { return ensureGlobal().Resize(p, n) }

// ZeroAllocate forwards to the package-level Allocator's ZeroAllocate.
func ZeroAllocate(count, elemSize uint) Ptr { return ensureGlobal().ZeroAllocate(count, elemSize) }

// Bytes forwards to the package-level Allocator's Bytes.
func Bytes(p Ptr) []byte { return ensureGlobal().Bytes(p) }

// CheckHeap forwards to the package-level Allocator's CheckHeap.
func CheckHeap(verbose bool, log func(error) bool) (AllocStats, bool) {
	return ensureGlobal().CheckHeap(verbose, log)
}
