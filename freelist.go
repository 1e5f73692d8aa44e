// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The free list index: ten circular, doubly linked free lists, one per size
// class, each anchored by a fixed sentinel living in the prologue's body.
// Grounded on the link/unlink pair in lldb/falloc.go, which performs the
// same O(1) splice against a free block's own prev/next fields; adapted
// from lldb's single-head-per-bucket stack (FLTSlot.Head/SetHead) to a
// proper circular doubly linked list per class, since spec.md requires
// O(1) removal of an arbitrary interior block (needed by the Coalescer),
// not just push/pop at the head.

package malloc

// sentinel returns the address of size class i's anchor node.
func (a *Allocator) sentinel(i int) Ptr {
	return a.sentinels + Ptr(i*2*tagSize)
}

func (a *Allocator) flNext(node Ptr) Ptr { return Ptr(a.readU32(node)) }
func (a *Allocator) flPrev(node Ptr) Ptr { return Ptr(a.readU32(node + tagSize)) }

func (a *Allocator) setFlNext(node, v Ptr) { a.writeU32(node, uint32(v)) }
func (a *Allocator) setFlPrev(node, v Ptr) { a.writeU32(node+tagSize, uint32(v)) }

// classEmpty reports whether class i currently holds no free blocks.
func (a *Allocator) classEmpty(i int) bool {
	s := a.sentinel(i)
	return a.flNext(s) == s
}

// flInsert pushes bp onto the front of class i's free list. bp must already
// carry a valid free header/footer; flInsert only wires the list links.
func (a *Allocator) flInsert(bp Ptr, i int) {
	s := a.sentinel(i)
	head := a.flNext(s)

	a.setFlNext(bp, head)
	a.setFlPrev(bp, s)
	a.setFlPrev(head, bp)
	a.setFlNext(s, bp)
}

// flRemove splices bp out of whichever free list it currently belongs to.
// bp must currently be a member of some class's list.
func (a *Allocator) flRemove(bp Ptr) {
	p := a.flPrev(bp)
	n := a.flNext(bp)
	a.setFlNext(p, n)
	a.setFlPrev(n, p)
}

// initFreeLists makes every class's sentinel point to itself, denoting ten
// empty lists.
func (a *Allocator) initFreeLists() {
	for i := 0; i < numClasses; i++ {
		s := a.sentinel(i)
		a.setFlNext(s, s)
		a.setFlPrev(s, s)
	}
}
