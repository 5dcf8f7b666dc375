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

package arena

// slabLen is the number of values in a pool slab.
const slabLen = 256

// A Pool allocates values of a single type from slabs
// owned by an [Arena].
// Unlike raw [Arena.Alloc] regions, pool slabs are typed Go slices,
// so values may contain pointers and remain visible to the garbage collector.
// Releasing the arena releases every pool attached to it.
type Pool[T any] struct {
	arena *Arena
	slabs [][]T
	off   int // used values in the last slab
}

// NewPool returns a pool that draws slabs tied to a's lifetime.
func NewPool[T any](a *Arena) *Pool[T] {
	if a.released {
		panic("arena: NewPool after Release")
	}
	p := &Pool[T]{arena: a}
	a.pools = append(a.pools, p)
	return p
}

// New returns a pointer to a zeroed value that remains valid
// until the owning arena is released.
func (p *Pool[T]) New() *T {
	if p.arena.released {
		panic("arena: pool New after Release")
	}
	if n := len(p.slabs); n > 0 && p.off < len(p.slabs[n-1]) {
		v := &p.slabs[n-1][p.off]
		p.off++
		return v
	}
	slab := make([]T, slabLen)
	p.slabs = append(p.slabs, slab)
	p.off = 1
	return &slab[0]
}

// MakeSlice returns a zeroed slice of the given length
// backed by pool memory.
// The slice must not be appended to beyond its length.
func (p *Pool[T]) MakeSlice(length int) []T {
	if p.arena.released {
		panic("arena: pool MakeSlice after Release")
	}
	if length == 0 {
		return nil
	}
	if length > slabLen {
		// Oversized request gets a dedicated slab.
		slab := make([]T, length)
		n := len(p.slabs)
		p.slabs = append(p.slabs, slab)
		if n > 0 {
			// Keep the bump slab last.
			p.slabs[n], p.slabs[n-1] = p.slabs[n-1], p.slabs[n]
		} else {
			// No bump slab yet: mark the dedicated slab fully used
			// so later allocations never carve from it.
			p.off = length
		}
		return slab
	}
	if n := len(p.slabs); n > 0 && p.off+length <= len(p.slabs[n-1]) {
		s := p.slabs[n-1][p.off : p.off+length : p.off+length]
		p.off += length
		return s
	}
	slab := make([]T, slabLen)
	p.slabs = append(p.slabs, slab)
	p.off = length
	return slab[:length:length]
}

func (p *Pool[T]) release() {
	p.slabs = nil
	p.off = 0
}
