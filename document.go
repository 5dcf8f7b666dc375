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
	"bytes"
	"fmt"
	"os"

	"go4.org/bytereplacer"
	"zombiezen.com/go/mdedit/arena"
)

type pool = arena.Pool[Block]
type ptrPool = arena.Pool[*Block]

// nulScrubber replaces NUL bytes with the Unicode replacement character
// before parsing, keeping the parser total over arbitrary valid UTF-8.
var nulScrubber = bytereplacer.New("\x00", "�")

// A Document owns one parsed markdown tree,
// the source bytes its spans reference,
// and the arena every node is allocated from.
// The arena, source, and tree share a lifecycle:
// created together by a parse and destroyed together by [Document.Close].
// A Document has exactly one owner and must not be shared between goroutines.
type Document struct {
	arena  *arena.Arena
	nodes  *pool
	ptrs   *ptrPool
	source []byte
	root   *Block

	idBase     BlockID
	generation uint64
	closed     bool
}

// Parse parses markdown source into a new Document.
// Parsing is total: any byte sequence yields a tree, never an error.
// The source bytes are copied into the document's arena.
func Parse(source []byte) *Document {
	return ParseSeeded(source, 1)
}

// ParseSeeded is [Parse] with an explicit first block ID,
// so separate documents can be given disjoint ID spaces.
func ParseSeeded(source []byte, base BlockID) *Document {
	if base < 1 {
		base = 1
	}
	d := &Document{idBase: base}
	d.reparse(source)
	return d
}

// Open reads the file at path and parses its contents.
// An unreadable path is reported as an error and no document is created.
func Open(path string) (*Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open markdown document: %w", err)
	}
	return Parse(source), nil
}

// CreateEmptyFile creates a new empty file at path.
// It fails if the file already exists.
func CreateEmptyFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create markdown file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("create markdown file: %w", err)
	}
	return nil
}

// Update replaces the document's source with a new revision and re-parses.
// Every span and block pointer obtained before Update is invalid afterwards;
// [Document.Generation] changes to make stale use detectable.
// IDs restart from the document's base,
// so an unchanged structure keeps its IDs across updates.
func (d *Document) Update(source []byte) {
	if d.closed {
		panic("mdedit: Update on closed Document")
	}
	d.generation++
	d.reparse(source)
}

// reparse builds a whole new revision in a fresh arena,
// then releases the previous revision's arena in one step.
// The caller must not pass a source slice owned by the old arena.
func (d *Document) reparse(source []byte) {
	a := arena.New()
	nodes := arena.NewPool[Block](a)
	ptrs := arena.NewPool[*Block](a)

	src := a.Copy(source)
	if bytes.IndexByte(src, 0) >= 0 {
		src = nulScrubber.Replace(src)
	}
	p := &parser{source: src, nodes: nodes, ptrs: ptrs}
	next := d.idBase
	root := p.parse(&next)

	if d.arena != nil {
		d.arena.Release()
	}
	d.arena = a
	d.nodes = nodes
	d.ptrs = ptrs
	d.source = src
	d.root = root
}

// Root returns the Document node of the current tree,
// or nil after Close.
func (d *Document) Root() *Block {
	if d == nil || d.closed {
		return nil
	}
	return d.root
}

// Source returns the bytes the tree's spans reference,
// or nil after Close.
// The slice must not be modified or retained across [Document.Update].
func (d *Document) Source() []byte {
	if d == nil || d.closed {
		return nil
	}
	return d.source
}

// Generation returns the revision counter of the source buffer.
// It increments on every Update;
// consumers holding spans can compare generations
// to detect that their views went stale.
func (d *Document) Generation() uint64 {
	return d.generation
}

// Closed reports whether Close has been called.
func (d *Document) Closed() bool {
	return d == nil || d.closed
}

// Close releases the document's arena,
// invalidating the tree and every span into the source in one step.
// Close is idempotent, and calling it on a nil document is a no-op.
func (d *Document) Close() {
	if d == nil || d.closed {
		return
	}
	d.arena.Release()
	d.root = nil
	d.source = nil
	d.closed = true
}

// BlockAt returns the smallest block whose source span contains
// the given byte offset, or nil if the offset falls outside
// every block other than the document root.
// This is the position-based lookup the edit session uses
// to re-anchor the cursor's active block after a re-parse.
func (d *Document) BlockAt(offset int) *Block {
	if d.Closed() {
		return nil
	}
	b := d.root.find(offset)
	if b == d.root {
		return nil
	}
	return b
}

// BlockByID returns the block with the given ID in the current tree,
// or nil if no such block exists.
func (d *Document) BlockByID(id BlockID) *Block {
	if d.Closed() || id == NoBlock {
		return nil
	}
	var found *Block
	Walk(d.root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			if found != nil {
				return false
			}
			if c.Node().ID() == id {
				found = c.Node()
				return false
			}
			return true
		},
	})
	return found
}
