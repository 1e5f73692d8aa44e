// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The heap extender: grows the backing region on a fit miss and folds the
// new space into the heap as a free block. Grounded on the "must grow" path
// of lldb/falloc.go's alloc (h = off2h(a.f.Size())), generalized from
// lldb's append-at-end-of-file write into an explicit epilogue relocation
// plus a run through the Coalescer, since this module keeps a persistent
// epilogue marker lldb's Filer-backed design does not need.

package malloc

import "github.com/cznic/mathutil"

// extend grows the region by max(reqSize, ChunkSize) bytes, relocates the
// epilogue, and feeds the new space through the Coalescer so it is
// immediately available to the Fit Finder.
func (a *Allocator) extend(reqSize uint32) error {
	ext := uint32(mathutil.Max(int(reqSize), a.opts.ChunkSize))

	oldEpilogue := a.epilogue
	oldPrevAlloc := a.prevAlloc(oldEpilogue)

	newFree, err := a.region.Extend(int(ext))
	if err != nil {
		return err
	}

	a.writeFreeTags(newFree, ext, oldPrevAlloc)

	newEpilogue := a.region.High()
	a.writeAllocatedHeader(newEpilogue, 0, false)
	a.epilogue = newEpilogue

	a.stats.Extensions++
	a.coalesce(newFree)
	return nil
}
