// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package malloc implements a segregated-fit dynamic storage allocator over
// a single contiguous, monotonically growable byte region (the "heap").
//
// The heap
//
// The heap is a []byte-like arena supplied by a Region (see region.go). All
// addresses are expressed as Ptr, a 32-bit offset from the region's base,
// and are always 8-byte aligned. The arena grows but never shrinks: freed
// memory is recycled within the arena, it is never returned to the Region.
//
// Block layout
//
// A block is a variably sized run of bytes whose size is always a multiple
// of 8. Every block has a 4-byte header immediately preceding its payload
// pointer, packing the block's size together with two flag bits: whether the
// block itself is allocated, and whether its lexical predecessor is
// allocated (the "prev_alloc" bit). Free blocks additionally carry a 4-byte
// footer replicating the header's size and alloc bit, which lets the
// allocator walk backwards across a free neighbor without maintaining a
// separate backward-linked block chain. Allocated blocks omit the footer;
// prev_alloc tells a downstream block whether its predecessor is allocated,
// so the absent footer of an allocated predecessor is never read.
//
// Free blocks double as the nodes of one of ten segregated, circular,
// doubly linked free lists, keyed by size class (see class.go). This mirrors
// how lldb.Allocator threads a free list through the unused blocks of a
// Filer rather than keeping a side index, adapted here to fixed-width
// 32-bit offsets and ten size classes instead of a Filer-defined,
// configurable bucket table.
//
// Placement and coalescing
//
// Small requests (classes 0-3) are satisfied first-fit; large requests
// (classes 4-9) are satisfied best-fit, scanning the whole class for the
// tightest fit. On release, a freed block is merged with any free lexical
// neighbor via a four-case boundary-tag coalesce before being reinserted
// into its (possibly larger) class.
//
// Concurrency
//
// An Allocator is not safe for concurrent use. Every exported method
// assumes exclusive access to the Allocator for its entire duration; wrap it
// in an external mutex if concurrent access is required.
package malloc
