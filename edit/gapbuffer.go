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

package edit

// minGap is the smallest gap left after the buffer grows.
const minGap = 64

// A GapBuffer stores text as one contiguous byte array
// with a movable empty gap at the last edit site.
// Edits at or near the gap are amortized O(1);
// moving the edit site costs O(distance moved).
// Offsets are logical byte offsets, as if the gap did not exist.
type GapBuffer struct {
	buf      []byte
	gapStart int
	gapEnd   int
}

// NewGapBuffer returns a buffer seeded with initial text.
// The initial bytes are copied.
func NewGapBuffer(initial []byte) *GapBuffer {
	buf := make([]byte, len(initial)+minGap)
	copy(buf, initial)
	return &GapBuffer{
		buf:      buf,
		gapStart: len(initial),
		gapEnd:   len(buf),
	}
}

// Len returns the logical length of the text in bytes.
func (g *GapBuffer) Len() int {
	return len(g.buf) - (g.gapEnd - g.gapStart)
}

// GapStart returns the logical offset the gap currently sits at,
// which is the position of the last edit.
func (g *GapBuffer) GapStart() int {
	return g.gapStart
}

// ByteAt returns the byte at the logical offset.
func (g *GapBuffer) ByteAt(off int) byte {
	if off < g.gapStart {
		return g.buf[off]
	}
	return g.buf[off+(g.gapEnd-g.gapStart)]
}

// Bytes returns a copy of the full logical text.
func (g *GapBuffer) Bytes() []byte {
	out := make([]byte, 0, g.Len())
	out = append(out, g.buf[:g.gapStart]...)
	out = append(out, g.buf[g.gapEnd:]...)
	return out
}

// Slice returns a copy of the logical text in [start, end).
// The range is clamped to the text.
func (g *GapBuffer) Slice(start, end int) []byte {
	start = g.clamp(start)
	end = g.clamp(end)
	if end <= start {
		return nil
	}
	out := make([]byte, 0, end-start)
	if start < g.gapStart {
		front := g.gapStart
		if end < front {
			front = end
		}
		out = append(out, g.buf[start:front]...)
	}
	if end > g.gapStart {
		back := g.gapStart
		if start > back {
			back = start
		}
		gap := g.gapEnd - g.gapStart
		out = append(out, g.buf[back+gap:end+gap]...)
	}
	return out
}

// Insert inserts p at the logical offset,
// moving the gap there first.
// Offsets outside [0, Len] are clamped.
func (g *GapBuffer) Insert(off int, p []byte) {
	if len(p) == 0 {
		return
	}
	off = g.clamp(off)
	g.moveGap(off)
	if g.gapEnd-g.gapStart < len(p) {
		g.grow(len(p))
	}
	copy(g.buf[g.gapStart:], p)
	g.gapStart += len(p)
}

// Delete removes n bytes starting at the logical offset.
// The range is clamped to the text.
func (g *GapBuffer) Delete(off, n int) {
	off = g.clamp(off)
	if n > g.Len()-off {
		n = g.Len() - off
	}
	if n <= 0 {
		return
	}
	g.moveGap(off)
	g.gapEnd += n
}

func (g *GapBuffer) clamp(off int) int {
	if off < 0 {
		return 0
	}
	if n := g.Len(); off > n {
		return n
	}
	return off
}

// moveGap relocates the gap so that it starts at the logical offset,
// shifting the bytes in between across the gap.
func (g *GapBuffer) moveGap(off int) {
	switch {
	case off < g.gapStart:
		n := g.gapStart - off
		copy(g.buf[g.gapEnd-n:g.gapEnd], g.buf[off:g.gapStart])
		g.gapStart = off
		g.gapEnd -= n
	case off > g.gapStart:
		n := off - g.gapStart
		copy(g.buf[g.gapStart:], g.buf[g.gapEnd:g.gapEnd+n])
		g.gapStart += n
		g.gapEnd += n
	}
}

// grow reallocates so the gap can hold at least need bytes.
func (g *GapBuffer) grow(need int) {
	newSize := len(g.buf) * 2
	if min := g.Len() + need + minGap; newSize < min {
		newSize = min
	}
	buf := make([]byte, newSize)
	copy(buf, g.buf[:g.gapStart])
	tail := len(g.buf) - g.gapEnd
	copy(buf[len(buf)-tail:], g.buf[g.gapEnd:])
	g.buf = buf
	g.gapEnd = len(buf) - tail
}
