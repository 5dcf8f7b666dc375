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

// parseInlines scans the span left to right for emphasis runs and
// link/image syntax, appending inline children to parent.
// Anything unmatched or malformed stays literal text:
// the inline pass cannot fail.
func (p *parser) parseInlines(parent *Block, s Span) {
	src := p.source
	i := s.Start
	lit := i

	flush := func(end int) {
		if end > lit {
			t := p.newBlock(RawTextKind, 0, Span{lit, end})
			t.content = t.span
			p.appendChild(parent, t)
		}
	}

	for i < s.End {
		switch c := src[i]; {
		case c == '*' || c == '_':
			n := delimiterRun(src, i, s.End, c)
			if n > 3 {
				// Runs of four or more never match; leave them literal.
				i += n
				continue
			}
			closer := findCloser(src, i+n, s.End, c, n)
			if closer < 0 {
				i += n
				continue
			}
			flush(i)
			var kind BlockKind
			switch n {
			case 1:
				kind = EmphasisKind
			case 2:
				kind = StrongKind
			default:
				kind = StrongEmphasisKind
			}
			node := p.newBlock(kind, 0, Span{i, closer + n})
			p.appendChild(parent, node)
			p.parseInlines(node, Span{i + n, closer})
			i = closer + n
			lit = i

		case c == '[' || (c == '!' && i+1 < s.End && src[i+1] == '['):
			bracket := i
			kind := LinkKind
			if c == '!' {
				bracket = i + 1
				kind = ImageKind
			}
			textEnd, urlStart, urlEnd, ok := parseLinkAt(src, bracket, s.End)
			if !ok {
				i++
				continue
			}
			flush(i)
			node := p.newBlock(kind, 0, Span{i, urlEnd + 1})
			node.annotation = Span{urlStart, urlEnd}
			p.appendChild(parent, node)
			p.parseInlines(node, Span{bracket + 1, textEnd})
			i = urlEnd + 1
			lit = i

		default:
			i++
		}
	}
	flush(s.End)
}

// delimiterRun returns the length of the run of the byte c starting at i.
func delimiterRun(src []byte, i, end int, c byte) int {
	n := 0
	for i+n < end && src[i+n] == c {
		n++
	}
	return n
}

// findCloser returns the start of the nearest run of c
// at least n bytes long (equal or greater strength),
// or -1 if the span holds no valid closing run.
func findCloser(src []byte, from, end int, c byte, n int) int {
	for j := from; j < end; {
		if src[j] != c {
			j++
			continue
		}
		r := delimiterRun(src, j, end, c)
		if r >= n {
			return j
		}
		j += r
	}
	return -1
}

// parseLinkAt matches "[text](url)" with src[lb] == '['.
// Brackets nest within the text part; the URL part runs to the first ')'.
// textEnd is the offset of ']', urlStart/urlEnd delimit the URL,
// and the whole construct ends at urlEnd+1 (the ')').
func parseLinkAt(src []byte, lb, end int) (textEnd, urlStart, urlEnd int, ok bool) {
	depth := 0
	textEnd = -1
	for j := lb; j < end; j++ {
		switch src[j] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				textEnd = j
			}
		}
		if textEnd >= 0 {
			break
		}
	}
	if textEnd < 0 || textEnd+1 >= end || src[textEnd+1] != '(' {
		return 0, 0, 0, false
	}
	urlStart = textEnd + 2
	for j := urlStart; j < end; j++ {
		if src[j] == ')' {
			return textEnd, urlStart, j, true
		}
	}
	return 0, 0, 0, false
}
