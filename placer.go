// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The placer: installs a request into a free block the Fit Finder chose,
// splitting off a free remainder when worthwhile. Grounded on the
// unlink-then-link sequence in lldb/falloc.go's alloc, adapted from lldb's
// atom-count split threshold (any leftover atom is kept) to spec.md's
// minFree-byte split threshold.

package malloc

// place removes bp from its free list and installs req bytes of allocated
// block there, splitting off a free remainder when the leftover is at
// least minFree bytes. bp must be free and at least req bytes.
func (a *Allocator) place(bp Ptr, req uint32) {
	c := a.size(bp)
	pa := a.prevAlloc(bp)
	a.flRemove(bp)

	if c-req >= minFree {
		a.writeAllocatedHeader(bp, req, pa)

		rem := bp + Ptr(req)
		remSize := c - req
		a.writeFreeTags(rem, remSize, true)
		a.flInsert(rem, classOf(remSize))
		return
	}

	a.writeAllocatedHeader(bp, c, pa)
	a.markPrevAlloc(a.nextBlock(bp), true)
}
