// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The external region abstraction. A Region is the sbrk-like primitive the
// rest of the allocator is built on: a linear, append-only byte store that
// can only grow. Modeled on lldb.Filer/lldb.MemFiler, stripped of the
// persistence, transaction and hole-punching concerns that apply only to an
// on-disk store.

package malloc

// Ptr is an opaque heap address: a byte offset from a Region's base. The
// zero Ptr is reserved as the "null" value; it never designates a real
// payload because offset 0 always falls inside the leading padding word.
type Ptr uint32

// Region is the external, caller-supplied growable byte store the allocator
// manages. The allocator never returns bytes to a Region; it only ever asks
// for more.
type Region interface {
	// Low returns the offset of the first byte ever made available by
	// Extend. It is always 0 for a freshly constructed Region.
	Low() Ptr

	// High returns the offset one past the last byte made available by
	// any Extend call so far.
	High() Ptr

	// Extend grows the region by exactly n bytes (n must be a multiple of
	// wordSize) and returns the offset of the first new byte. It fails
	// only when the region cannot grow further.
	Extend(n int) (Ptr, error)

	// Bytes returns a view of the whole region, offset 0 meaning Low().
	// This is the Go-idiomatic stand-in for the raw pointer a real
	// sbrk-like primitive would hand back: since the core operates
	// byte-for-byte on the region (boundary tags, free-list links), it
	// needs direct slice access rather than a ReadAt/WriteAt pair. The
	// slice returned is only guaranteed valid until the next Extend call.
	Bytes() []byte
}

var _ Region = (*MemRegion)(nil)

// MemRegion is an in-process, memory backed Region. It is the default used
// by New when the caller supplies none, and is what the heap-extension
// tests exercise against.
type MemRegion struct {
	buf []byte
}

// NewMemRegion returns an empty MemRegion.
func NewMemRegion() *MemRegion {
	return &MemRegion{}
}

// Low implements Region.
func (r *MemRegion) Low() Ptr { return 0 }

// High implements Region.
func (r *MemRegion) High() Ptr { return Ptr(len(r.buf)) }

// Extend implements Region. A MemRegion never fails to extend short of
// running out of Go heap, in which case append panics like any other slice
// growth would; real, bounded region providers are expected to fail
// gracefully instead.
func (r *MemRegion) Extend(n int) (Ptr, error) {
	if n <= 0 || n%wordSize != 0 {
		return 0, &ErrInvalid{"Region.Extend: n must be a positive multiple of 8", n}
	}

	base := Ptr(len(r.buf))
	r.buf = append(r.buf, make([]byte, n)...)
	return base, nil
}

// Bytes implements Region.
func (r *MemRegion) Bytes() []byte { return r.buf }
