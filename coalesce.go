// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The coalescer: a four-case boundary-tag merge run whenever a block
// becomes free, restoring the no-adjacent-free invariant. Grounded directly
// on lldb/falloc.go's free2, which already dispatches on the same four
// (left-free?, right-free?) cases against boundary tags; adapted from
// lldb's atom counts and isTail/truncate handling (a Filer can shrink) to
// byte sizes and an always-growing arena, and from lldb's single FLT head
// pointer to this module's per-class doubly linked lists.

package malloc

// coalesce merges bp with any free lexical neighbor and (re)inserts the
// resulting block into its class's free list. bp must already carry a valid
// free header/footer and must not yet be linked into any free list. It
// returns the address of the (possibly merged) free block.
func (a *Allocator) coalesce(bp Ptr) Ptr {
	size := a.size(bp)
	prevFree := !a.prevAlloc(bp)
	nb := a.nextBlock(bp)
	nextFree := !a.alloc(nb)

	switch {
	case !prevFree && !nextFree:
		// (P=1, N=1): isolated, no merge.
		a.flInsert(bp, classOf(size))
		a.markPrevAlloc(nb, false)
		return bp

	case !prevFree && nextFree:
		// (P=1, N=0): merge with next.
		nSize := a.size(nb)
		a.flRemove(nb)
		newSize := size + nSize
		a.writeFreeTags(bp, newSize, true)
		a.flInsert(bp, classOf(newSize))
		return bp

	case prevFree && !nextFree:
		// (P=0, N=1): merge with prev.
		prev := a.prevBlock(bp)
		prevSize := a.size(prev)
		prevPA := a.prevAlloc(prev)
		a.flRemove(prev)
		newSize := prevSize + size
		a.writeFreeTags(prev, newSize, prevPA)
		a.markPrevAlloc(nb, false)
		a.flInsert(prev, classOf(newSize))
		return prev

	default:
		// (P=0, N=0): merge all three.
		prev := a.prevBlock(bp)
		prevSize := a.size(prev)
		prevPA := a.prevAlloc(prev)
		nSize := a.size(nb)
		a.flRemove(prev)
		a.flRemove(nb)
		newSize := prevSize + size + nSize
		a.writeFreeTags(prev, newSize, prevPA)
		a.flInsert(prev, classOf(newSize))
		return prev
	}
}
