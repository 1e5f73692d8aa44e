// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "testing"

func TestExtendGrowsByAtLeastChunkSize(t *testing.T) {
	opts := Options{ChunkSize: 256, InitSize: 256}
	a, err := New(nil, opts)
	if err != nil {
		t.Fatal(err)
	}

	before := a.region.High()
	if err := a.extend(64); err != nil {
		t.Fatal(err)
	}
	grown := int(a.region.High() - before)
	if grown < opts.ChunkSize {
		t.Fatalf("region grew by %d bytes, want at least ChunkSize (%d)", grown, opts.ChunkSize)
	}
}

func TestExtendGrowsByRequestWhenLarger(t *testing.T) {
	opts := Options{ChunkSize: 64, InitSize: 64}
	a, err := New(nil, opts)
	if err != nil {
		t.Fatal(err)
	}

	before := a.region.High()
	const req = 4096
	if err := a.extend(req); err != nil {
		t.Fatal(err)
	}
	if grown := int(a.region.High() - before); grown < req {
		t.Fatalf("region grew by %d bytes, want at least the request (%d)", grown, req)
	}
}

func TestExtendIncrementsStats(t *testing.T) {
	a := newTestAllocator(t)
	before := a.stats.Extensions
	if err := a.extend(uint32(a.opts.ChunkSize)); err != nil {
		t.Fatal(err)
	}
	if a.stats.Extensions != before+1 {
		t.Fatalf("Extensions = %d, want %d", a.stats.Extensions, before+1)
	}
}

func TestExtendLeavesHeapConsistent(t *testing.T) {
	a := newTestAllocator(t)

	// drain the initial chunk, forcing at least one extension.
	var ptrs []Ptr
	for i := 0; i < 64; i++ {
		p := a.Allocate(200)
		if p == 0 {
			t.Fatalf("Allocate failed at i=%d", i)
		}
		ptrs = append(ptrs, p)
	}

	if stats, ok := a.CheckHeap(false, nil); !ok {
		t.Fatalf("CheckHeap failed after forcing extension: %+v", stats)
	}
	if a.stats.Extensions == 0 {
		t.Fatal("expected at least one extension after draining the initial chunk")
	}
}
