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

func TestParseInlines(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []nodeSummary
	}{
		{
			name:   "TripleDelimiter",
			source: "***both***",
			want: []nodeSummary{
				{Kind: StrongEmphasisKind, Children: []nodeSummary{text("both")}},
			},
		},
		{
			name:   "UnderscoreEmphasis",
			source: "_em_",
			want: []nodeSummary{
				{Kind: EmphasisKind, Children: []nodeSummary{text("em")}},
			},
		},
		{
			name:   "NestedEmphasisInStrong",
			source: "**a _b_ c**",
			want: []nodeSummary{
				{Kind: StrongKind, Children: []nodeSummary{
					text("a "),
					{Kind: EmphasisKind, Children: []nodeSummary{text("b")}},
					text(" c"),
				}},
			},
		},
		{
			name:   "UnclosedEmphasisIsLiteral",
			source: "*unclosed",
			want:   []nodeSummary{text("*unclosed")},
		},
		{
			name:   "BareDoubleDelimiterIsLiteral",
			source: "a ** b",
			want:   []nodeSummary{text("a ** b")},
		},
		{
			name:   "RunOfFourIsLiteral",
			source: "****x****",
			want:   []nodeSummary{text("****x****")},
		},
		{
			name:   "LinkWithNestedBrackets",
			source: "[a [b] c](u)",
			want: []nodeSummary{
				{Kind: LinkKind, URL: "u", Children: []nodeSummary{text("a [b] c")}},
			},
		},
		{
			name:   "LinkMissingCloseParenIsLiteral",
			source: "[text](url",
			want:   []nodeSummary{text("[text](url")},
		},
		{
			name:   "BangWithoutBracketIsLiteral",
			source: "hi! there",
			want:   []nodeSummary{text("hi! there")},
		},
		{
			name:   "ImageMissingURLIsLiteral",
			source: "![x]",
			want:   []nodeSummary{text("![x]")},
		},
		{
			name:   "EmphasisAroundLink",
			source: "*[a](u)*",
			want: []nodeSummary{
				{Kind: EmphasisKind, Children: []nodeSummary{
					{Kind: LinkKind, URL: "u", Children: []nodeSummary{text("a")}},
				}},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := Parse([]byte(test.source))
			defer d.Close()

			para := d.Root().Child(0)
			if para.Kind() != ParagraphKind {
				t.Fatalf("Child(0).Kind() = %v; want %v", para.Kind(), ParagraphKind)
			}
			var got []nodeSummary
			for _, c := range para.Children() {
				got = append(got, summarize(d.Source(), c))
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("inlines (-want +got):\n%s", diff)
			}
		})
	}
}
