// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "testing"

func TestTagPackUnpack(t *testing.T) {
	table := []tag{
		{size: 16, alloc: false, prevAlloc: false},
		{size: 16, alloc: true, prevAlloc: false},
		{size: 16, alloc: false, prevAlloc: true},
		{size: 16, alloc: true, prevAlloc: true},
		{size: 4096, alloc: true, prevAlloc: false},
		{size: 0xfffffff8, alloc: true, prevAlloc: true},
	}

	for i, want := range table {
		got := unpackTag(want.pack())
		if got != want {
			t.Fatalf("case %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestAdjustedSize(t *testing.T) {
	table := []struct {
		n    uint
		want uint32
	}{
		{0, minAlloc},
		{1, minAlloc},
		{12, minAlloc},
		{13, 24},
		{20, 24},
		{21, 32},
		{100, 104},
	}

	for _, c := range table {
		if got := adjustedSize(c.n); got != c.want {
			t.Errorf("adjustedSize(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestRoundUp8(t *testing.T) {
	table := []struct{ n, want uint }{
		{0, 0}, {1, 8}, {7, 8}, {8, 8}, {9, 16}, {16, 16},
	}
	for _, c := range table {
		if got := roundUp8(c.n); got != c.want {
			t.Errorf("roundUp8(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestBlockNavigation(t *testing.T) {
	a, err := New(nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	p := a.Allocate(32)
	if p == 0 {
		t.Fatal("Allocate failed")
	}

	size := a.size(p)
	next := a.nextBlock(p)
	if next != p+Ptr(size) {
		t.Fatalf("nextBlock(%d) = %d, want %d", p, next, p+Ptr(size))
	}

	if !a.prevAlloc(p) {
		t.Fatalf("first real block must have prevAlloc set (prologue is allocated)")
	}
}

func TestWriteFreeTagsRoundtrip(t *testing.T) {
	a, err := New(nil, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	// Allocate a second block after p so p has a real successor whose
	// header must survive p's writeFreeTags untouched.
	p := a.Allocate(64)
	succ := a.Allocate(32)
	size := a.size(p)

	wantFooter := p + Ptr(size) - 2*tagSize
	if got := footer(p, size); got != wantFooter {
		t.Fatalf("footer(%d, %d) = %d, want %d (immediately before nextBlock's header at %d)",
			p, size, got, wantFooter, header(a.nextBlock(p)))
	}
	if got := header(a.nextBlock(p)); got != wantFooter+tagSize {
		t.Fatalf("footer and nextBlock's header are not adjacent: footer=%d, nextHeader=%d", wantFooter, got)
	}

	succHeaderBefore := a.headerTag(succ)

	a.writeFreeTags(p, size, true)

	ht := a.headerTag(p)
	ft := unpackTag(a.readU32(wantFooter))

	if ht.size != size || ht.alloc || !ht.prevAlloc {
		t.Fatalf("header tag wrong: %+v", ht)
	}
	if ft.size != size || ft.alloc {
		t.Fatalf("footer tag wrong: %+v", ft)
	}

	if got := a.headerTag(succ); got != succHeaderBefore {
		t.Fatalf("writeFreeTags(%d, ...) disturbed the successor's header: got %+v, want %+v", p, got, succHeaderBefore)
	}
}
