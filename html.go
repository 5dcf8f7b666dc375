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
	"fmt"
	"io"
	"strconv"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
)

// urlEscaper percent-encodes the characters that would terminate
// or break an HTML attribute value.
var urlEscaper = bytereplacer.New(
	`"`, "%22",
	"<", "%3C",
	">", "%3E",
	" ", "%20",
	"\\", "%5C",
)

// RenderHTML renders the document's current tree as HTML.
// It is a debug and export surface, not the display path:
// interactive rendering is the host's concern.
func RenderHTML(w io.Writer, d *Document) error {
	if d.Closed() {
		return fmt.Errorf("render markdown to html: document is closed")
	}
	var buf []byte
	for _, b := range d.Root().Children() {
		buf = appendHTML(buf, d.Source(), b)
		buf = append(buf, '\n')
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("render markdown to html: %w", err)
	}
	return nil
}

func appendHTML(dst []byte, source []byte, b *Block) []byte {
	switch b.Kind() {
	case ParagraphKind:
		dst = append(dst, "<p>"...)
		dst = appendChildrenHTML(dst, source, b)
		dst = append(dst, "</p>"...)
	case HeadingKind:
		dst = append(dst, "<h"...)
		dst = strconv.AppendInt(dst, int64(b.Level()), 10)
		dst = append(dst, ">"...)
		dst = appendChildrenHTML(dst, source, b)
		dst = append(dst, "</h"...)
		dst = strconv.AppendInt(dst, int64(b.Level()), 10)
		dst = append(dst, ">"...)
	case CodeBlockKind:
		dst = append(dst, "<pre><code>"...)
		dst = append(dst, html.EscapeString(b.Content().Text(source))...)
		dst = append(dst, "\n</code></pre>"...)
	case BlockQuoteKind:
		dst = append(dst, "<blockquote>"...)
		dst = appendChildrenHTML(dst, source, b)
		dst = append(dst, "</blockquote>"...)
	case OrderedListKind:
		dst = append(dst, "<ol>"...)
		dst = appendChildrenHTML(dst, source, b)
		dst = append(dst, "</ol>"...)
	case UnorderedListKind:
		dst = append(dst, "<ul>"...)
		dst = appendChildrenHTML(dst, source, b)
		dst = append(dst, "</ul>"...)
	case OrderedListItemKind, UnorderedListItemKind:
		dst = append(dst, "<li>"...)
		dst = appendChildrenHTML(dst, source, b)
		dst = append(dst, "</li>"...)
	case RawTextKind:
		dst = append(dst, html.EscapeString(b.Content().Text(source))...)
	case EmphasisKind:
		dst = append(dst, "<em>"...)
		dst = appendChildrenHTML(dst, source, b)
		dst = append(dst, "</em>"...)
	case StrongKind:
		dst = append(dst, "<strong>"...)
		dst = appendChildrenHTML(dst, source, b)
		dst = append(dst, "</strong>"...)
	case StrongEmphasisKind:
		dst = append(dst, "<em><strong>"...)
		dst = appendChildrenHTML(dst, source, b)
		dst = append(dst, "</strong></em>"...)
	case LinkKind:
		dst = append(dst, `<a href="`...)
		dst = appendURL(dst, source, b.Annotation())
		dst = append(dst, `">`...)
		dst = appendChildrenHTML(dst, source, b)
		dst = append(dst, "</a>"...)
	case ImageKind:
		dst = append(dst, `<img src="`...)
		dst = appendURL(dst, source, b.Annotation())
		dst = append(dst, `" alt="`...)
		dst = append(dst, html.EscapeString(plainText(source, b))...)
		dst = append(dst, `">`...)
	}
	return dst
}

func appendChildrenHTML(dst []byte, source []byte, parent *Block) []byte {
	for _, c := range parent.Children() {
		dst = appendHTML(dst, source, c)
	}
	return dst
}

func appendURL(dst []byte, source []byte, s Span) []byte {
	if !s.IsValid() {
		return dst
	}
	escaped := urlEscaper.Replace(append([]byte(nil), s.Bytes(source)...))
	return append(dst, escaped...)
}

// plainText flattens the raw text of a subtree,
// used for image alt attributes.
func plainText(source []byte, b *Block) string {
	var buf []byte
	Walk(b, &WalkOptions{
		Pre: func(c *Cursor) bool {
			if c.Node().Kind() == RawTextKind {
				buf = append(buf, c.Node().Content().Bytes(source)...)
			}
			return true
		},
	})
	return string(buf)
}
