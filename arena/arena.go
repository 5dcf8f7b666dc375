// Copyright 2025 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package arena provides a region allocator
// whose allocations are all freed in a single step.
//
// An [Arena] hands out byte regions from large chunks,
// and a [Pool] hands out typed values from slabs
// tied to an arena's lifetime.
// Neither supports freeing individual allocations:
// calling [Arena.Release] invalidates everything at once.
package arena

import "fmt"

// chunkSize is the default size of a new arena chunk.
// Allocations larger than a chunk get a dedicated chunk.
const chunkSize = 64 * 1024

// maxAlign is the largest supported alignment.
// Chunks come from the Go heap, which aligns at least this strictly.
const maxAlign = 16

// An Arena is a bump allocator over a list of chunks.
// The zero value is an empty arena ready for use.
// An Arena must not be used from multiple goroutines concurrently.
type Arena struct {
	chunks   [][]byte
	off      int // used bytes in the last chunk
	total    int
	released bool

	pools []interface{ release() }
}

// New returns a new, empty arena.
func New() *Arena {
	return new(Arena)
}

// Alloc returns a zeroed byte region of the given size,
// whose first byte is aligned to the given power-of-two alignment.
// The region remains valid until [Arena.Release] is called.
func (a *Arena) Alloc(size, align int) []byte {
	if a.released {
		panic("arena: Alloc after Release")
	}
	if size < 0 {
		panic("arena: negative Alloc size")
	}
	if align <= 0 || align > maxAlign || align&(align-1) != 0 {
		panic(fmt.Sprintf("arena: invalid alignment %d", align))
	}
	if n := len(a.chunks); n > 0 {
		cur := a.chunks[n-1]
		off := (a.off + align - 1) &^ (align - 1)
		if off+size <= len(cur) {
			a.off = off + size
			a.total += size
			return cur[off : off+size : off+size]
		}
	}
	n := chunkSize
	if size > n {
		n = size
	}
	chunk := make([]byte, n)
	a.chunks = append(a.chunks, chunk)
	a.off = size
	a.total += size
	return chunk[:size:size]
}

// Copy copies p into the arena and returns the arena-owned copy.
// A nil or empty slice returns nil without allocating.
func (a *Arena) Copy(p []byte) []byte {
	if len(p) == 0 {
		return nil
	}
	region := a.Alloc(len(p), 1)
	copy(region, p)
	return region
}

// Allocated returns the total number of bytes handed out by Alloc.
// Typed pool allocations are not included.
func (a *Arena) Allocated() int {
	return a.total
}

// Released reports whether Release has been called.
func (a *Arena) Released() bool {
	return a.released
}

// Release drops every chunk and every attached pool slab in one step.
// All regions and values previously returned from this arena are invalid
// after Release returns. Release is idempotent.
func (a *Arena) Release() {
	if a.released {
		return
	}
	for _, p := range a.pools {
		p.release()
	}
	a.pools = nil
	a.chunks = nil
	a.off = 0
	a.total = 0
	a.released = true
}
