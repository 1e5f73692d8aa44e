// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

// Options amend the behavior of New. The compatibility promise is the same
// as for struct types elsewhere in the standard library: new fields may be
// added, client code should assign by field name.
type Options struct {
	// ChunkSize is the minimum number of bytes the Heap Extender requests
	// from the Region on a fit miss (CHUNK in the design). It must be a
	// multiple of wordSize. Performance-tunable within [256, 4096];
	// values outside that range are accepted but not recommended.
	ChunkSize int

	// InitSize is the size, in bytes, of the first chunk fed through the
	// coalescer immediately after the prologue/epilogue are written
	// (INIT in the design). It must be a multiple of wordSize.
	InitSize int

	checked bool
}

// DefaultOptions returns the Options New uses when called with the zero
// value: ChunkSize 512, InitSize 4096.
func DefaultOptions() Options {
	return Options{ChunkSize: 512, InitSize: 4096}
}

// check fills in zero fields with their defaults and validates the rest.
func (o *Options) check() error {
	if o.checked {
		return nil
	}

	if o.ChunkSize == 0 {
		o.ChunkSize = 512
	}
	if o.InitSize == 0 {
		o.InitSize = 4096
	}

	if o.ChunkSize <= 0 || o.ChunkSize%wordSize != 0 {
		return &ErrInvalid{"Options.ChunkSize must be a positive multiple of 8", o.ChunkSize}
	}
	if o.InitSize <= 0 || o.InitSize%wordSize != 0 {
		return &ErrInvalid{"Options.InitSize must be a positive multiple of 8", o.InitSize}
	}

	o.checked = true
	return nil
}
