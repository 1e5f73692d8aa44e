// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The fit finder: first-fit for small classes, best-fit for large ones.
// Grounded on lldb/flt.go's flt.find, which scans a table of buckets from
// the requested size's bucket upward and returns the first nonempty one;
// generalized here because this module's buckets are wide size *ranges*
// (not single-block stacks), so the large-class path must additionally
// scan within a class to find the tightest fit rather than taking whatever
// sits at the class head.

package malloc

// fit selects a free block able to hold a request of the given adjusted
// size, or returns Ptr(0) ("none") if no class has one.
func (a *Allocator) fit(size uint32) Ptr {
	i0 := classOf(size)
	if i0 >= largeClass {
		return a.bestFit(i0, size)
	}
	return a.firstFit(i0, size)
}

// firstFit scans classes [i0..9] in order, returning the first block
// encountered whose size is big enough.
func (a *Allocator) firstFit(i0 int, size uint32) Ptr {
	for i := i0; i < numClasses; i++ {
		s := a.sentinel(i)
		for bp := a.flNext(s); bp != s; bp = a.flNext(bp) {
			if a.size(bp) >= size {
				return bp
			}
		}
	}
	return 0
}

// bestFit scans classes [i0..9] entirely, returning the smallest block that
// still fits. Ties are broken in favor of the first block scanned, i.e. the
// one nearer the head of its class's list.
func (a *Allocator) bestFit(i0 int, size uint32) Ptr {
	var best Ptr
	var bestSize uint32

	for i := i0; i < numClasses; i++ {
		s := a.sentinel(i)
		for bp := a.flNext(s); bp != s; bp = a.flNext(bp) {
			sz := a.size(bp)
			if sz < size {
				continue
			}
			if best == 0 || sz < bestSize {
				best, bestSize = bp, sz
			}
		}
	}
	return best
}
