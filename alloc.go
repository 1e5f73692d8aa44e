// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The public API: New, Allocate, Release, Resize, ZeroAllocate. Grounded on
// lldb/falloc.go's NewAllocator/Alloc/Free/Realloc, adapted from lldb's
// handle-addressed, content-carrying blocks (Alloc takes the bytes to
// store) to spec.md's pointer-addressed, opaque-payload blocks (Allocate
// takes only a size, the caller owns what goes in the payload).

package malloc

import "math/bits"

// AllocStats accumulates counters a CheckHeap pass (and the Heap Extender)
// fill in, mirroring lldb.AllocStats.
type AllocStats struct {
	HeapBytes  int64 // total size of the region, in bytes
	UsedBytes  int64 // bytes occupied by allocated blocks, headers included
	FreeBytes  int64 // bytes occupied by free blocks, header+footer included
	UsedBlocks int64
	FreeBlocks int64
	Extensions int64 // number of Heap Extender invocations since New
}

// Allocator is a segregated-fit allocator over a single Region. It is not
// safe for concurrent use; wrap it in an external mutex if that is needed.
type Allocator struct {
	region    Region
	opts      Options
	sentinels Ptr // address of class 0's sentinel; class i's is sentinels+i*8
	epilogue  Ptr // current epilogue payload address; always == region.High()
	stats     AllocStats
}

// New constructs an Allocator over r. If r is nil, a fresh MemRegion is
// used. New extends r by its bookkeeping header (padding, prologue, ten
// sentinels, epilogue) and then by opts.InitSize, exactly as spec.md's
// init() does. New is the only entry point that reports failure as a Go
// error; every other public method degrades to Ptr(0) per spec.md §7.
func New(r Region, opts Options) (*Allocator, error) {
	if r == nil {
		r = NewMemRegion()
	}
	if err := opts.check(); err != nil {
		return nil, err
	}

	a := &Allocator{region: r, opts: opts}

	headerBytes := (2*numClasses + 4) * tagSize // padding + prologue + epilogue header
	base, err := r.Extend(headerBytes)
	if err != nil {
		return nil, err
	}

	a.writeU32(base, 0) // zero padding word

	prologueBp := base + 2*tagSize
	prologueSize := uint32(tagSize + numClasses*2*tagSize + tagSize)
	a.sentinels = prologueBp
	a.writeU32(header(prologueBp), tag{size: prologueSize, alloc: true, prevAlloc: true}.pack())
	a.initFreeLists()
	a.writeU32(footer(prologueBp, prologueSize), tag{size: prologueSize, alloc: true}.pack())

	epilogueBp := prologueBp + Ptr(prologueSize)
	a.writeAllocatedHeader(epilogueBp, 0, true)
	a.epilogue = epilogueBp

	if err := a.extend(uint32(a.opts.InitSize)); err != nil {
		return nil, err
	}

	return a, nil
}

// buf returns the current backing slice for the region. Called afresh on
// every access rather than cached, so that a Region implementation is free
// to reallocate its backing array on Extend.
func (a *Allocator) buf() []byte { return a.region.Bytes() }

// Allocate reserves a block able to hold n bytes and returns the address of
// its payload, or Ptr(0) if n is 0 or the region cannot grow enough to
// satisfy the request.
func (a *Allocator) Allocate(n uint) Ptr {
	if n == 0 {
		return 0
	}
	if n > uint(sizeMask-tagSize) {
		// the adjusted size would not fit in a 32-bit block tag
		return 0
	}

	size := adjustedSize(n)
	bp := a.fit(size)
	if bp == 0 {
		if err := a.extend(size); err != nil {
			return 0
		}
		bp = a.fit(size)
		if bp == 0 {
			return 0
		}
	}

	a.place(bp, size)
	return bp
}

// Release deallocates the block previously returned by Allocate or Resize.
// Releasing Ptr(0) is a silent no-op. Releasing a pointer not obtained from
// Allocate/Resize, or already released, is undefined behavior: Release does
// not validate its argument.
func (a *Allocator) Release(p Ptr) {
	if p == 0 {
		return
	}

	size := a.size(p)
	pa := a.prevAlloc(p)
	a.writeFreeTags(p, size, pa)
	a.coalesce(p)
}

// Resize changes the size of the block at p to n bytes, preserving the
// first min(n, old payload size) bytes of content, and returns the address
// of the (possibly relocated) block. Resize(0, n) behaves like Allocate(n).
// Resize(p, 0) behaves like Release(p) and returns Ptr(0). If growing fails,
// the original block at p is left untouched and Ptr(0) is returned.
func (a *Allocator) Resize(p Ptr, n uint) Ptr {
	if n == 0 {
		a.Release(p)
		return 0
	}
	if p == 0 {
		return a.Allocate(n)
	}

	oldPayload := uint(a.size(p)) - tagSize
	q := a.Allocate(n)
	if q == 0 {
		return 0
	}

	keep := n
	if oldPayload < keep {
		keep = oldPayload
	}
	copy(a.Bytes(q)[:keep], a.Bytes(p)[:keep])
	a.Release(p)
	return q
}

// ZeroAllocate reserves storage for count elements of elemSize bytes each,
// zeroed. It returns Ptr(0) if the multiplication would overflow a uint
// (the source does not check this; spec.md §9 calls for the safer
// behavior), or if the underlying Allocate fails.
func (a *Allocator) ZeroAllocate(count, elemSize uint) Ptr {
	hi, lo := bits.Mul(count, elemSize)
	if hi != 0 {
		return 0
	}

	p := a.Allocate(lo)
	if p == 0 {
		return 0
	}

	b := a.Bytes(p)
	for i := range b {
		b[i] = 0
	}
	return p
}

// Bytes returns the payload of the block at p as a slice bounded to that
// block's usable size. It exists because Go, unlike the source language,
// has no raw pointer Allocate can simply hand back for direct reads/writes.
func (a *Allocator) Bytes(p Ptr) []byte {
	size := a.size(p)
	payloadLen := size - tagSize
	buf := a.buf()
	return buf[p : p+Ptr(payloadLen) : p+Ptr(payloadLen)]
}

// Stats returns a snapshot of the allocator's running counters. HeapBytes,
// UsedBytes, FreeBytes, UsedBlocks and FreeBlocks are only ever filled in
// by CheckHeap; until the first CheckHeap call they read zero.
func (a *Allocator) Stats() AllocStats { return a.stats }
