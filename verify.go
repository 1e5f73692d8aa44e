// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The heap checker. Grounded on lldb/falloc.go's Allocator.Verify, which
// walks the block chain once (recording every block start in a bitmap),
// walks the free list table cross-checking it against that bitmap, and
// reports any left-over ("lost") free blocks. This module's arena is small
// enough in-process not to need lldb's external bitmap Filer: the same
// two-pass cross-check is done with a plain Go map instead, and findings are
// reported through the same func(error) bool callback contract lldb.Verify
// uses, generalized here so a false return also stops the scan early.

package malloc

import (
	"fmt"
	"sort"

	"github.com/cznic/sortutil"
)

// CheckHeap walks the heap and every free list, verifying the invariants
// documented in spec.md §3 (1-8) and §8 (class containment). Every
// violation found is reported via log, in heap-walk order; log may be nil,
// in which case nothing is reported but the return values are still
// accurate. If log returns false, the scan stops at the next opportunity.
// When verbose is set, log additionally receives one Info-kind *ErrCorrupt
// per block walked, carrying a one-line dump in Detail; these never affect
// the returned ok value.
func (a *Allocator) CheckHeap(verbose bool, log func(error) bool) (AllocStats, bool) {
	if log == nil {
		log = func(error) bool { return true }
	}

	ok := true
	cont := true
	report := func(err error) {
		ok = false
		if cont {
			cont = log(err)
		}
	}
	inform := func(bp Ptr, size uint32, alloc bool) {
		if !verbose || !cont {
			return
		}
		kind := "free"
		if alloc {
			kind = "alloc"
		}
		cont = log(&ErrCorrupt{Kind: Info, Off: bp, Detail: fmt.Sprintf("%s size=%d", kind, size)})
	}

	var st AllocStats
	st.HeapBytes = int64(a.region.High() - a.region.Low())

	if a.readU32(a.region.Low()) != 0 {
		report(&ErrCorrupt{Kind: ErrBadPadding, Off: a.region.Low()})
	}

	prologueSize := a.size(a.sentinels)
	if !a.alloc(a.sentinels) || !a.prevAlloc(a.sentinels) {
		report(&ErrCorrupt{Kind: ErrBadPrologue, Off: a.sentinels, Detail: "must be allocated with prev_alloc set"})
	}
	if want := uint32(tagSize + numClasses*2*tagSize + tagSize); prologueSize != want {
		report(&ErrCorrupt{Kind: ErrBadPrologue, Off: a.sentinels, Detail: "unexpected size"})
	}

	heapFree := map[Ptr]uint32{}
	prevWasFree := false

	bp := a.nextBlock(a.sentinels)
	for cont && bp != a.epilogue {
		if bp < a.region.Low() || bp >= a.region.High() {
			report(&ErrCorrupt{Kind: ErrOutOfRange, Off: bp})
			break
		}
		if bp%wordSize != 0 {
			report(&ErrCorrupt{Kind: ErrBadAlignment, Off: bp})
		}

		size := a.size(bp)
		if size < minFree {
			report(&ErrCorrupt{Kind: ErrTooSmall, Off: bp})
		}

		// prevAlloc(bp) must agree with whether the predecessor just
		// walked was free.
		if a.prevAlloc(bp) == prevWasFree {
			report(&ErrCorrupt{Kind: ErrBadPrevAlloc, Off: bp})
		}

		isFree := !a.alloc(bp)
		inform(bp, size, !isFree)

		if isFree {
			ft := a.footerTag(bp, size)
			if ft.size != size || ft.alloc {
				report(&ErrCorrupt{Kind: ErrTagMismatch, Off: bp})
			}
			if prevWasFree {
				report(&ErrCorrupt{Kind: ErrAdjacentFree, Off: bp})
			}
			heapFree[bp] = size
			st.FreeBlocks++
			st.FreeBytes += int64(size)
		} else {
			st.UsedBlocks++
			st.UsedBytes += int64(size)
		}

		prevWasFree = isFree
		bp = a.nextBlock(bp)
	}

	if cont {
		if !a.alloc(a.epilogue) || a.size(a.epilogue) != 0 {
			report(&ErrCorrupt{Kind: ErrBadEpilogue, Off: a.epilogue})
		}
		if a.prevAlloc(a.epilogue) == prevWasFree {
			report(&ErrCorrupt{Kind: ErrBadPrevAlloc, Off: a.epilogue})
		}
	}

	if cont {
		a.checkFreeLists(heapFree, report)
	}

	st.Extensions = a.stats.Extensions
	a.stats = st
	return st, ok
}

// checkFreeLists walks every class's list, verifying cycle-freedom,
// prev/next consistency and class containment, and cross-checks the set of
// addresses found there against heapFree (the free blocks the linear heap
// walk discovered). report is called for every discrepancy found.
func (a *Allocator) checkFreeLists(heapFree map[Ptr]uint32, report func(error)) {
	seen := map[Ptr]bool{}

	for i := 0; i < numClasses; i++ {
		s := a.sentinel(i)

		if a.hasCycle(s) {
			report(&ErrCorrupt{Kind: ErrListCycle, Off: s})
			continue
		}

		for bp := a.flNext(s); bp != s; bp = a.flNext(bp) {
			seen[bp] = true

			if a.flNext(a.flPrev(bp)) != bp || a.flPrev(a.flNext(bp)) != bp {
				report(&ErrCorrupt{Kind: ErrListLink, Off: bp})
			}

			size, inHeap := heapFree[bp]
			if !inHeap {
				report(&ErrCorrupt{Kind: ErrListCount, Off: bp, Detail: "free list member not found by heap walk"})
				continue
			}
			if !inClass(i, size) {
				report(&ErrCorrupt{Kind: ErrWrongClass, Off: bp, Detail: "size does not match its list's class"})
			}
		}
	}

	if len(seen) == len(heapFree) {
		return
	}

	missing := make(sortutil.Int64Slice, 0, len(heapFree))
	for bp := range heapFree {
		if !seen[bp] {
			missing = append(missing, int64(bp))
		}
	}
	sort.Sort(missing)
	for _, off := range missing {
		report(&ErrCorrupt{Kind: ErrListCount, Off: Ptr(off), Detail: "free block missing from every free list"})
	}
}

// hasCycle reports whether class s's list contains a cycle, via Floyd's
// tortoise-and-hare (spec.md §4.9's Checker requirement).
func (a *Allocator) hasCycle(s Ptr) bool {
	slow, fast := s, s
	for {
		fast = a.flNext(fast)
		if fast == s {
			return false
		}
		fast = a.flNext(fast)
		if fast == s {
			return false
		}
		slow = a.flNext(slow)
		if slow == fast {
			return true
		}
	}
}
