// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The block codec: encoding and decoding of the 4-byte header/footer tag and
// navigation between lexical neighbors via boundary tags. Grounded on the
// tag-byte read/write helpers in lldb/falloc.go (nfo, leftNfo, makeFree,
// makeUsedBlock), adapted from lldb's 1-byte head/tail tags over 16-byte
// atoms to a single packed 32-bit header/footer word over byte-granular,
// 8-byte aligned blocks.

package malloc

import "encoding/binary"

const (
	wordSize = 8 // alignment granularity; every block size is a multiple of this
	tagSize  = 4 // header and footer are each one 32-bit word
	minFree  = 16
	minAlloc = 16

	flagAlloc     = 1 << 0
	flagPrevAlloc = 1 << 1
	sizeMask      = ^uint32(0x7)
)

// tag is the decoded form of a header or footer word: a block size plus its
// two flag bits, packed size|prevAlloc|alloc per the design's Tagged-flag
// header note. Footers never carry a meaningful prevAlloc bit (see writeFreeTags).
type tag struct {
	size      uint32
	alloc     bool
	prevAlloc bool
}

func unpackTag(word uint32) tag {
	return tag{
		size:      word & sizeMask,
		alloc:     word&flagAlloc != 0,
		prevAlloc: word&flagPrevAlloc != 0,
	}
}

func (t tag) pack() uint32 {
	w := t.size & sizeMask
	if t.alloc {
		w |= flagAlloc
	}
	if t.prevAlloc {
		w |= flagPrevAlloc
	}
	return w
}

// readU32/writeU32 are the allocator's entire unsafe-equivalent surface: the
// only place raw bytes in the arena are reinterpreted as an integer.
func (a *Allocator) readU32(off Ptr) uint32 {
	return binary.BigEndian.Uint32(a.buf()[off : off+4])
}

func (a *Allocator) writeU32(off Ptr, v uint32) {
	binary.BigEndian.PutUint32(a.buf()[off:off+4], v)
}

// header returns the address of bp's header word.
func header(bp Ptr) Ptr { return bp - tagSize }

// footer returns the address of bp's footer word, valid only when bp refers
// to a free block (or the prologue, which carries one by convention) of the
// given size. It is the block's last word, immediately preceding the
// successor's header at nextBlock(bp) - tagSize == bp + size - tagSize; the
// footer itself sits one word further back, at bp + size - 2*tagSize.
func footer(bp Ptr, size uint32) Ptr { return bp + Ptr(size) - 2*tagSize }

func (a *Allocator) headerTag(bp Ptr) tag {
	return unpackTag(a.readU32(header(bp)))
}

func (a *Allocator) footerTag(bp Ptr, size uint32) tag {
	return unpackTag(a.readU32(footer(bp, size)))
}

// size decodes the block size, in bytes, of the block whose payload begins
// at bp.
func (a *Allocator) size(bp Ptr) uint32 { return a.headerTag(bp).size }

// alloc reports whether the block at bp is allocated.
func (a *Allocator) alloc(bp Ptr) bool { return a.headerTag(bp).alloc }

// prevAlloc reports whether bp's lexical predecessor is allocated.
func (a *Allocator) prevAlloc(bp Ptr) bool { return a.headerTag(bp).prevAlloc }

// nextBlock returns the payload address of bp's lexical successor.
func (a *Allocator) nextBlock(bp Ptr) Ptr { return bp + Ptr(a.size(bp)) }

// prevBlock returns the payload address of bp's lexical predecessor. It is
// valid only when prevAlloc(bp) is false: the predecessor must be free and
// therefore must have a footer to read its size from.
func (a *Allocator) prevBlock(bp Ptr) Ptr {
	prevSize := unpackTag(a.readU32(bp - 2*tagSize)).size
	return bp - Ptr(prevSize)
}

// markPrevAlloc sets or clears bp's prev_alloc bit, leaving its size and
// alloc bit untouched.
func (a *Allocator) markPrevAlloc(bp Ptr, v bool) {
	t := a.headerTag(bp)
	t.prevAlloc = v
	a.writeU32(header(bp), t.pack())
}

// writeAllocatedHeader installs an allocated block's header. Allocated
// blocks never carry a footer.
func (a *Allocator) writeAllocatedHeader(bp Ptr, size uint32, prevAlloc bool) {
	t := tag{size: size, alloc: true, prevAlloc: prevAlloc}
	a.writeU32(header(bp), t.pack())
}

// writeFreeTags installs a free block's header and footer. The footer omits
// prevAlloc: spec.md's footer layout replicates only size and alloc.
func (a *Allocator) writeFreeTags(bp Ptr, size uint32, prevAlloc bool) {
	h := tag{size: size, alloc: false, prevAlloc: prevAlloc}
	f := tag{size: size, alloc: false}
	a.writeU32(header(bp), h.pack())
	a.writeU32(footer(bp, size), f.pack())
}

// roundUp8 rounds n up to the nearest multiple of 8.
func roundUp8(n uint) uint { return (n + 7) &^ 7 }

// adjustedSize computes the total block size (header + payload, rounded and
// floored) a request of n bytes needs, per spec.md §4.8.
func adjustedSize(n uint) uint32 {
	if n <= 12 {
		return minAlloc
	}
	return uint32(roundUp8(n + tagSize))
}
