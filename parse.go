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

// Package mdedit implements a markdown document engine:
// a line-oriented markdown parser producing a typed block tree
// with zero-copy text spans into the source buffer,
// an arena-backed document lifecycle,
// and (in the edit subpackage) a live, cursor-driven edit session.
//
// The dialect is deliberately small rather than CommonMark-complete:
// ATX headings, fenced code blocks, block quotes, ordered and unordered
// lists, emphasis, strong, links, and images.
// Parsing is total: malformed syntax degrades to literal text,
// never to an error.
package mdedit

import "bytes"

// parser holds the state of one block-level pass over a source buffer.
// It is local to a single parse call; the parser keeps no state
// between calls and may be discarded afterwards.
type parser struct {
	source []byte
	nodes  *pool
	ptrs   *ptrPool

	// Open containers. quotes[i] has nesting depth i+1;
	// lists[i] has nesting depth i+1 and its last child is the
	// item currently accepting content at that depth.
	quotes []*Block
	lists  []*Block

	para      *Block
	paraLines []Span

	code             *Block
	codeContentStart int
}

func (p *parser) newBlock(kind BlockKind, level int, span Span) *Block {
	b := p.nodes.New()
	b.kind = kind
	b.level = level
	b.span = span
	b.content = NullSpan()
	b.annotation = NullSpan()
	return b
}

// parse runs the block pass and the inline pass over p.source
// and returns the Document root.
// IDs are assigned afterwards by seal, in pre-order,
// so that identical input always yields identical IDs.
func (p *parser) parse(next *BlockID) *Block {
	root := p.newBlock(DocumentKind, 0, Span{0, len(p.source)})

	src := p.source
	for ls := 0; ls < len(src); {
		le := len(src)
		if i := bytes.IndexByte(src[ls:], '\n'); i >= 0 {
			le = ls + i
		}
		p.line(root, ls, le)
		ls = le + 1
	}
	p.closeParagraph()
	p.closeCode(len(src))

	p.seal(root, next)
	return root
}

// line processes one source line spanning [ls, le)
// (le excludes the newline byte).
func (p *parser) line(root *Block, ls, le int) {
	src := p.source

	// Fenced code swallows everything until the closing fence.
	if p.code != nil {
		if isFenceLine(trimIndent(src[ls:le])) {
			end := ls
			if end > p.codeContentStart && src[end-1] == '\n' {
				end--
			}
			if p.codeContentStart > end {
				p.codeContentStart = end
			}
			p.code.content = Span{p.codeContentStart, end}
			p.code.span.End = le
			p.code = nil
		} else {
			p.code.span.End = le
		}
		return
	}

	depth, rest := countQuoteMarkers(src[ls:le])
	ro := ls + rest // absolute offset of the line remainder

	if isBlankLine(src[ro:le]) {
		// A fully blank line closes every open container;
		// a blank line behind quote markers only breaks the paragraph,
		// keeping the quote chain open.
		p.closeParagraph()
		p.lists = nil
		if depth == 0 {
			p.quotes = nil
		} else if depth < len(p.quotes) {
			p.quotes = p.quotes[:depth]
		}
		return
	}

	// Reconcile the open blockquote chain with the marker depth.
	if depth != len(p.quotes) {
		p.closeParagraph()
		p.lists = nil
		if depth < len(p.quotes) {
			p.quotes = p.quotes[:depth]
		} else {
			parent := root
			if len(p.quotes) > 0 {
				parent = p.quotes[len(p.quotes)-1]
			}
			for d := len(p.quotes) + 1; d <= depth; d++ {
				q := p.newBlock(BlockQuoteKind, d, Span{ls, le})
				p.appendChild(parent, q)
				p.quotes = append(p.quotes, q)
				parent = q
			}
		}
	}
	for _, q := range p.quotes {
		q.span.End = le
	}

	container := root
	if len(p.quotes) > 0 {
		container = p.quotes[len(p.quotes)-1]
	}

	switch {
	case isFenceLine(src[ro:le]):
		p.closeParagraph()
		p.lists = nil
		p.code = p.newBlock(CodeBlockKind, 0, Span{ls, le})
		p.codeContentStart = le + 1
		p.appendChild(container, p.code)

	default:
		if level, textStart, ok := parseHeadingMarker(src[ro:le]); ok {
			p.closeParagraph()
			p.lists = nil
			h := p.newBlock(HeadingKind, level, Span{ls, le})
			h.content = trimSpanRight(src, Span{ro + textStart, le})
			p.parseInlines(h, h.content)
			p.appendChild(container, h)
			return
		}
		if m, ok := parseListMarker(src[ro:le]); ok {
			p.closeParagraph()
			p.openListItem(container, m, ls, ro, le)
			return
		}

		// Plain text: paragraph content.
		p.lists = nil
		if p.para == nil {
			p.para = p.newBlock(ParagraphKind, 0, Span{ls, le})
			p.appendChild(container, p.para)
		} else {
			p.para.span.End = le
		}
		p.paraLines = append(p.paraLines, Span{ro, le})
	}
}

// openListItem reconciles the open list chain with the item's depth
// and appends a new item block holding the item text.
func (p *parser) openListItem(container *Block, m listMarker, ls, ro, le int) {
	depth := m.indent/2 + 1
	listKind, itemKind := UnorderedListKind, UnorderedListItemKind
	if m.ordered {
		listKind, itemKind = OrderedListKind, OrderedListItemKind
	}

	if depth < len(p.lists) {
		p.lists = p.lists[:depth]
	}
	if len(p.lists) == depth && p.lists[depth-1].kind != listKind {
		// Marker family changed at the same depth: a new list starts.
		p.lists = p.lists[:depth-1]
	}
	for len(p.lists) < depth {
		parent := container
		if n := len(p.lists); n > 0 {
			parent = p.lists[n-1]
			if item := parent.lastChild(); item != nil {
				parent = item
			}
		}
		list := p.newBlock(listKind, len(p.lists)+1, Span{ls, le})
		p.appendChild(parent, list)
		p.lists = append(p.lists, list)
	}
	for i, list := range p.lists {
		list.span.End = le
		if i < len(p.lists)-1 {
			if item := list.lastChild(); item != nil {
				item.span.End = le
			}
		}
	}

	item := p.newBlock(itemKind, depth, Span{ls, le})
	item.content = trimSpanRight(p.source, Span{ro + m.textStart, le})
	p.parseInlines(item, item.content)
	p.appendChild(p.lists[depth-1], item)
}

// closeParagraph finalizes the open paragraph, if any,
// running the inline pass over each of its lines.
func (p *parser) closeParagraph() {
	if p.para == nil {
		return
	}
	p.para.content = Span{p.paraLines[0].Start, p.paraLines[len(p.paraLines)-1].End}
	for _, line := range p.paraLines {
		p.parseInlines(p.para, trimSpanRight(p.source, line))
	}
	p.para = nil
	p.paraLines = p.paraLines[:0]
}

// closeCode finalizes an unterminated fenced code block at end of input.
func (p *parser) closeCode(end int) {
	if p.code == nil {
		return
	}
	start := p.codeContentStart
	if start > end {
		start = end
	}
	contentEnd := end
	if contentEnd > start && p.source[contentEnd-1] == '\n' {
		contentEnd--
	}
	p.code.content = Span{start, contentEnd}
	p.code.span.End = end
	p.code = nil
}

// appendChild attaches child to parent.
// Children live in ordinary slices while the tree is under construction;
// seal moves them into arena storage once the shape is final.
func (p *parser) appendChild(parent, child *Block) {
	parent.children = append(parent.children, child)
}

// seal assigns IDs in pre-order and copies every child slice
// into the document's arena.
func (p *parser) seal(b *Block, next *BlockID) {
	b.id = *next
	*next++
	if len(b.children) == 0 {
		return
	}
	children := p.ptrs.MakeSlice(len(b.children))
	copy(children, b.children)
	b.children = children
	for _, c := range children {
		p.seal(c, next)
	}
}

// countQuoteMarkers counts leading '>' markers
// (each optionally followed by one space)
// and returns the nesting depth and the offset of the remainder.
func countQuoteMarkers(line []byte) (depth, rest int) {
	i := 0
	for i < len(line) && line[i] == '>' {
		depth++
		i++
		if i < len(line) && line[i] == ' ' {
			i++
		}
	}
	return depth, i
}

// parseHeadingMarker recognizes an ATX heading:
// 1–6 '#' bytes followed by a space, tab, or end of line.
// Seven or more '#' bytes are not a heading.
func parseHeadingMarker(line []byte) (level, textStart int, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level < 1 || level > 6 {
		return 0, 0, false
	}
	if level == len(line) {
		return level, level, true
	}
	if line[level] != ' ' && line[level] != '\t' {
		return 0, 0, false
	}
	textStart = level + 1
	for textStart < len(line) && (line[textStart] == ' ' || line[textStart] == '\t') {
		textStart++
	}
	return level, textStart, true
}

type listMarker struct {
	ordered   bool
	indent    int // leading indentation in columns
	textStart int // offset of the item text within the line remainder
}

// parseListMarker recognizes an ordered ("1." / "1)") or
// unordered ("-" / "*" / "+") list item marker.
// The marker must be followed by whitespace or end of line.
func parseListMarker(line []byte) (listMarker, bool) {
	i := 0
	indent := 0
	for i < len(line) {
		if line[i] == ' ' {
			indent++
		} else if line[i] == '\t' {
			indent += 4
		} else {
			break
		}
		i++
	}

	markerEnd := -1
	ordered := false
	switch {
	case i < len(line) && (line[i] == '-' || line[i] == '*' || line[i] == '+'):
		markerEnd = i + 1
	default:
		j := i
		for j < len(line) && line[j] >= '0' && line[j] <= '9' {
			j++
		}
		if j > i && j < len(line) && (line[j] == '.' || line[j] == ')') {
			markerEnd = j + 1
			ordered = true
		}
	}
	if markerEnd < 0 {
		return listMarker{}, false
	}
	if markerEnd < len(line) && line[markerEnd] != ' ' && line[markerEnd] != '\t' {
		return listMarker{}, false
	}
	textStart := markerEnd
	for textStart < len(line) && (line[textStart] == ' ' || line[textStart] == '\t') {
		textStart++
	}
	return listMarker{ordered: ordered, indent: indent, textStart: textStart}, true
}

// isFenceLine reports whether the line opens or closes a fenced code block.
// An opening fence may carry an info string; it is ignored,
// since syntax highlighting is out of scope.
func isFenceLine(line []byte) bool {
	return len(line) >= 3 && line[0] == '`' && line[1] == '`' && line[2] == '`'
}

func trimIndent(line []byte) []byte {
	return bytes.TrimLeft(line, " \t")
}

func isBlankLine(line []byte) bool {
	for _, b := range line {
		if !(b == '\r' || b == '\n' || b == ' ' || b == '\t') {
			return false
		}
	}
	return true
}

// trimSpanRight shrinks the span to exclude trailing spaces, tabs,
// and carriage returns, keeping the zero-copy property.
func trimSpanRight(source []byte, s Span) Span {
	for s.End > s.Start {
		switch source[s.End-1] {
		case ' ', '\t', '\r':
			s.End--
		default:
			return s
		}
	}
	return s
}
