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

// BlockID identifies a block within one document.
// IDs are assigned in pre-order during parsing,
// so parsing the same source twice yields the same IDs.
type BlockID int64

// NoBlock is the sentinel BlockID meaning "no block",
// used when the cursor sits outside every leaf block.
const NoBlock BlockID = 0

// BlockKind is the tag of a [Block] variant.
// The zero value is not a valid kind.
type BlockKind uint16

const (
	// Structural kinds.
	DocumentKind BlockKind = 1 + iota
	ParagraphKind
	HeadingKind
	CodeBlockKind
	BlockQuoteKind
	OrderedListKind
	OrderedListItemKind
	UnorderedListKind
	UnorderedListItemKind

	// Inline kinds.
	RawTextKind
	StrongKind
	EmphasisKind
	StrongEmphasisKind
	LinkKind
	ImageKind
)

// IsInline reports whether the kind is a text-level element
// rather than a document-structure element.
func (kind BlockKind) IsInline() bool {
	return kind >= RawTextKind
}

// String returns the name of the kind.
func (kind BlockKind) String() string {
	switch kind {
	case DocumentKind:
		return "Document"
	case ParagraphKind:
		return "Paragraph"
	case HeadingKind:
		return "Heading"
	case CodeBlockKind:
		return "CodeBlock"
	case BlockQuoteKind:
		return "BlockQuote"
	case OrderedListKind:
		return "OrderedList"
	case OrderedListItemKind:
		return "OrderedListItem"
	case UnorderedListKind:
		return "UnorderedList"
	case UnorderedListItemKind:
		return "UnorderedListItem"
	case RawTextKind:
		return "RawText"
	case StrongKind:
		return "Strong"
	case EmphasisKind:
		return "Emphasis"
	case StrongEmphasisKind:
		return "StrongEmphasis"
	case LinkKind:
		return "Link"
	case ImageKind:
		return "Image"
	default:
		return "Invalid"
	}
}

// A Block is one node of the markdown tree.
// Its text is stored as [Span] views into the owning document's source;
// a Block never copies source bytes.
// Blocks are allocated from the owning document's arena
// and become invalid when the document is closed.
type Block struct {
	kind       BlockKind
	level      int
	id         BlockID
	span       Span
	content    Span
	annotation Span
	children   []*Block
}

// Kind returns the variant tag of the block.
// Calling Kind on a nil block returns the zero kind.
func (b *Block) Kind() BlockKind {
	if b == nil {
		return 0
	}
	return b.kind
}

// Level returns the heading level (1–6) for a Heading
// or the nesting depth (≥1) for quote and list blocks.
// It is zero for every other kind.
func (b *Block) Level() int {
	if b == nil {
		return 0
	}
	return b.level
}

// ID returns the block's document-unique identifier.
func (b *Block) ID() BlockID {
	if b == nil {
		return NoBlock
	}
	return b.id
}

// Span returns the source extent of the block.
func (b *Block) Span() Span {
	if b == nil {
		return NullSpan()
	}
	return b.span
}

// Content returns the span of the block's raw text content,
// or an invalid span for kinds that bear no text.
// The span is a raw source extent: for a paragraph continued
// across quoted lines it includes the interior quote markers,
// while the inline children carry the marker-free text of each line.
func (b *Block) Content() Span {
	if b == nil {
		return NullSpan()
	}
	return b.content
}

// Annotation returns the span of the URL for Link and Image blocks,
// or an invalid span for every other kind.
func (b *Block) Annotation() Span {
	if b == nil {
		return NullSpan()
	}
	return b.annotation
}

// Children returns the block's children in document order.
// The returned slice must not be modified.
func (b *Block) Children() []*Block {
	if b == nil {
		return nil
	}
	return b.children
}

// ChildCount returns the number of children the block has.
// Calling ChildCount on a nil block returns 0.
func (b *Block) ChildCount() int {
	if b == nil {
		return 0
	}
	return len(b.children)
}

// Child returns the i'th child of the block.
func (b *Block) Child(i int) *Block {
	return b.children[i]
}

func (b *Block) lastChild() *Block {
	if b == nil || len(b.children) == 0 {
		return nil
	}
	return b.children[len(b.children)-1]
}

// find returns the deepest structural descendant of b (possibly b itself)
// whose span contains the given offset.
// Inline nodes are skipped: the cursor anchors to text-bearing blocks,
// not to individual emphasis or link spans.
// Later children are preferred so that an offset on a shared boundary
// resolves to the block the cursor just typed into.
func (b *Block) find(offset int) *Block {
	if b == nil || b.kind.IsInline() || !b.span.touches(offset) {
		return nil
	}
	for i := len(b.children) - 1; i >= 0; i-- {
		if sub := b.children[i].find(offset); sub != nil {
			return sub
		}
	}
	return b
}
