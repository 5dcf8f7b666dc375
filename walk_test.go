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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWalk(t *testing.T) {
	d := Parse([]byte("# h\n\n*a* b\n"))
	defer d.Close()

	var pre, post []BlockKind
	Walk(d.Root(), &WalkOptions{
		Pre: func(c *Cursor) bool {
			pre = append(pre, c.Node().Kind())
			return true
		},
		Post: func(c *Cursor) bool {
			post = append(post, c.Node().Kind())
			return true
		},
	})

	wantPre := []BlockKind{
		DocumentKind,
		HeadingKind,
		RawTextKind,
		ParagraphKind,
		EmphasisKind,
		RawTextKind,
		RawTextKind,
	}
	if diff := cmp.Diff(wantPre, pre); diff != "" {
		t.Errorf("pre-order kinds (-want +got):\n%s", diff)
	}
	wantPost := []BlockKind{
		RawTextKind,
		HeadingKind,
		RawTextKind,
		EmphasisKind,
		RawTextKind,
		ParagraphKind,
		DocumentKind,
	}
	if diff := cmp.Diff(wantPost, post); diff != "" {
		t.Errorf("post-order kinds (-want +got):\n%s", diff)
	}
}

func TestWalkParent(t *testing.T) {
	d := Parse([]byte("> hi\n"))
	defer d.Close()

	Walk(d.Root(), &WalkOptions{
		Pre: func(c *Cursor) bool {
			switch c.Node().Kind() {
			case DocumentKind:
				if c.Parent() != nil {
					t.Errorf("document parent = %v; want nil", c.Parent().Kind())
				}
			case ParagraphKind:
				if got := c.Parent().Kind(); got != BlockQuoteKind {
					t.Errorf("paragraph parent = %v; want %v", got, BlockQuoteKind)
				}
			}
			return true
		},
	})
}

func TestWalkPrune(t *testing.T) {
	d := Parse([]byte("# h\n\np\n"))
	defer d.Close()

	var visited []BlockKind
	Walk(d.Root(), &WalkOptions{
		Pre: func(c *Cursor) bool {
			visited = append(visited, c.Node().Kind())
			// Do not descend into the heading's inline children.
			return c.Node().Kind() != HeadingKind
		},
	})
	want := []BlockKind{DocumentKind, HeadingKind, ParagraphKind, RawTextKind}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("visited kinds (-want +got):\n%s", diff)
	}
}
