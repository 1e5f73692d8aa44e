// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "testing"

func TestCheckHeapCleanAllocator(t *testing.T) {
	a := newTestAllocator(t)
	stats, ok := a.CheckHeap(false, nil)
	if !ok {
		t.Fatalf("fresh allocator reports corruption: %+v", stats)
	}
	if stats.FreeBlocks != 1 {
		t.Fatalf("fresh allocator should have exactly one free block (the InitSize chunk), got %d", stats.FreeBlocks)
	}
}

func TestCheckHeapAfterMixedTraffic(t *testing.T) {
	a := newTestAllocator(t)

	var live []Ptr
	for i := 0; i < 40; i++ {
		p := a.Allocate(uint(16 + i*8))
		if p == 0 {
			t.Fatalf("Allocate failed at i=%d", i)
		}
		live = append(live, p)
	}
	for i, p := range live {
		if i%3 == 0 {
			a.Release(p)
		}
	}

	stats, ok := a.CheckHeap(false, nil)
	if !ok {
		t.Fatalf("CheckHeap reports corruption after mixed traffic: %+v", stats)
	}
	if stats.UsedBlocks+stats.FreeBlocks == 0 {
		t.Fatal("CheckHeap did not walk any blocks")
	}
}

func TestCheckHeapVerboseEmitsInfoWithoutFailing(t *testing.T) {
	a := newTestAllocator(t)
	a.Allocate(64)

	var kinds []CorruptKind
	_, ok := a.CheckHeap(true, func(err error) bool {
		if ec, isCorrupt := err.(*ErrCorrupt); isCorrupt {
			kinds = append(kinds, ec.Kind)
		}
		return true
	})
	if !ok {
		t.Fatal("verbose mode must not turn a clean heap unhealthy")
	}

	sawInfo := false
	for _, k := range kinds {
		if k == Info {
			sawInfo = true
		}
		if k != Info {
			t.Fatalf("unexpected violation kind %v on a clean heap", k)
		}
	}
	if !sawInfo {
		t.Fatal("verbose=true must emit at least one Info entry for a non-empty heap")
	}
}

func TestCheckHeapQuietEmitsNoInfo(t *testing.T) {
	a := newTestAllocator(t)
	a.Allocate(64)

	var n int
	a.CheckHeap(false, func(err error) bool {
		n++
		return true
	})
	if n != 0 {
		t.Fatalf("verbose=false must not invoke log at all on a clean heap, got %d calls", n)
	}
}

func TestCheckHeapDetectsBadPadding(t *testing.T) {
	a := newTestAllocator(t)
	a.writeU32(a.region.Low(), 1) // the leading padding word must stay zero

	var errs []error
	_, ok := a.CheckHeap(false, func(err error) bool {
		errs = append(errs, err)
		return true
	})
	if ok {
		t.Fatal("CheckHeap must detect the corrupted padding word")
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want exactly 1 (ErrBadPadding)", len(errs))
	}
	if ec, isCorrupt := errs[0].(*ErrCorrupt); !isCorrupt || ec.Kind != ErrBadPadding {
		t.Fatalf("got %v, want an ErrBadPadding *ErrCorrupt", errs[0])
	}
}

func TestCheckHeapStopsWhenLogReturnsFalse(t *testing.T) {
	a := newTestAllocator(t)

	// two independent violations: the padding word (caught immediately)
	// and a free block wired into the wrong class list (only caught in
	// the later free-list cross-check).
	a.writeU32(a.region.Low(), 1)

	bp := freeBlock(t, a, 28) // adjustedSize 32, belongs in class 2
	a.flInsert(bp, numClasses-1)

	n := 0
	a.CheckHeap(false, func(error) bool {
		n++
		return false
	})
	if n != 1 {
		t.Fatalf("log was called %d times, want exactly 1 (scan must stop on false before reaching the free-list check)", n)
	}
}

func TestHasCycleOnCleanList(t *testing.T) {
	a := newTestAllocator(t)
	for i := 0; i < numClasses; i++ {
		if a.hasCycle(a.sentinel(i)) {
			t.Fatalf("class %d falsely reports a cycle", i)
		}
	}
}

func TestHasCycleDetectsCycle(t *testing.T) {
	a := newTestAllocator(t)

	p0 := freeBlock(t, a, 28)
	p1 := freeBlock(t, a, 28)
	i := classOf(a.size(p0))
	a.flInsert(p0, i)
	a.flInsert(p1, i)

	// corrupt the list into a 2-cycle that excludes the sentinel.
	a.setFlNext(p0, p1)
	a.setFlNext(p1, p0)

	if !a.hasCycle(a.sentinel(i)) {
		t.Fatal("hasCycle failed to detect a cycle excluding the sentinel")
	}
}
