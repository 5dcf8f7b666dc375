// Copyright 2023 Ross Light
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

package mdedit

// A Span is a range of bytes in a document's source,
// identified by 0-based byte offsets.
// Spans are zero-copy views: they hold no text themselves
// and are invalidated when the source is mutated
// or the owning document is closed.
type Span struct {
	Start int
	End   int
}

// NullSpan returns an invalid span.
func NullSpan() Span {
	return Span{-1, -1}
}

// IsValid reports whether the span can be used to slice a source buffer.
func (s Span) IsValid() bool {
	return s.Start >= 0 && s.Start <= s.End
}

// Len returns the number of bytes the span covers
// or zero if the span is invalid.
func (s Span) Len() int {
	if !s.IsValid() {
		return 0
	}
	return s.End - s.Start
}

// Bytes returns the bytes of source the span covers.
// The returned slice aliases source; it must not be retained
// across a mutation of the underlying buffer.
func (s Span) Bytes(source []byte) []byte {
	if !s.IsValid() {
		return nil
	}
	return source[s.Start:s.End:s.End]
}

// Text returns the source bytes the span covers as a string.
func (s Span) Text(source []byte) string {
	if !s.IsValid() {
		return ""
	}
	return string(source[s.Start:s.End])
}

// Contains reports whether the half-open span contains the offset.
func (s Span) Contains(offset int) bool {
	return s.IsValid() && s.Start <= offset && offset < s.End
}

// touches is Contains with an inclusive end,
// so a cursor resting just past the last byte of a block
// still maps to that block.
func (s Span) touches(offset int) bool {
	return s.IsValid() && s.Start <= offset && offset <= s.End
}
