// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The segregated size-class table. Grounded on lldb/flt.go's newCannedFLT,
// which likewise maps a requested size to one of a fixed table of buckets by
// linear scan of ascending minimums; adapted from lldb's
// configurable-cardinality FLT kinds (FLTPowersOf2/FLTFib/FLTFull) to the
// ten fixed ranges spec.md mandates, including its non-power-of-two
// boundaries at 1022 and 2055.

package malloc

// numClasses is MAXLIST+1 from spec.md: ten segregated free lists, indices
// 0..9.
const numClasses = 10

// largeClass is the first class the Fit Finder treats as "large" (best-fit
// across the whole class instead of first-fit), per the spec's adopted
// class-index-4 threshold (see SPEC_FULL.md §9 / DESIGN.md).
const largeClass = 4

// classMin holds, for each class, the smallest block size (in bytes,
// inclusive) that belongs to it. classMin[9] is the open-ended class:
// everything size >= classMin[9] belongs to class 9.
var classMin = [numClasses]uint32{
	0:  16,
	1:  17,
	2:  32,
	3:  64,
	4:  128,
	5:  256,
	6:  512,
	7:  1023,
	8:  2056,
	9:  4096,
}

// classOf returns the size class a block of the given size (in bytes)
// belongs to. size must already be a valid block size (>= minFree, multiple
// of 8); classOf always returns a value in [0, numClasses).
func classOf(size uint32) int {
	for i := numClasses - 1; i >= 0; i-- {
		if size >= classMin[i] {
			return i
		}
	}
	return 0
}

// inClass reports whether size falls within class i's documented inclusive
// range. Used by the Checker (invariant 9 / "class containment").
func inClass(i int, size uint32) bool {
	if i < 0 || i >= numClasses {
		return false
	}
	if size < classMin[i] {
		return false
	}
	if i == numClasses-1 {
		return true
	}
	return size < classMin[i+1]
}
