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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "HeadingAndInlines",
			source: "# Title\n\nSome *em* and **strong** text.",
			want: "<h1>Title</h1>\n" +
				"<p>Some <em>em</em> and <strong>strong</strong> text.</p>\n",
		},
		{
			name:   "Link",
			source: "[site](http://x)",
			want:   `<p><a href="http://x">site</a></p>` + "\n",
		},
		{
			name:   "Image",
			source: "![alt text](http://x/y.png)",
			want:   `<p><img src="http://x/y.png" alt="alt text"></p>` + "\n",
		},
		{
			name:   "URLEscaping",
			source: `[a](http://x/"<b> c)`,
			want:   `<p><a href="http://x/%22%3Cb%3E%20c">a</a></p>` + "\n",
		},
		{
			name:   "TextEscaping",
			source: "a < b & c\n",
			want:   "<p>a &lt; b &amp; c</p>\n",
		},
		{
			name:   "CodeBlock",
			source: "```\nx < y\n```\n",
			want:   "<pre><code>x &lt; y\n</code></pre>\n",
		},
		{
			name:   "BlockQuote",
			source: "> hi\n",
			want:   "<blockquote><p>hi</p></blockquote>\n",
		},
		{
			name:   "Lists",
			source: "- a\n- b\n\n1. c\n",
			want: "<ul><li>a</li><li>b</li></ul>\n" +
				"<ol><li>c</li></ol>\n",
		},
		{
			name:   "StrongEmphasis",
			source: "***x***",
			want:   "<p><em><strong>x</strong></em></p>\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := Parse([]byte(test.source))
			defer d.Close()
			buf := new(strings.Builder)
			if err := RenderHTML(buf, d); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, buf.String()); diff != "" {
				t.Errorf("html (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderHTMLClosed(t *testing.T) {
	d := Parse([]byte("hi"))
	d.Close()
	if err := RenderHTML(new(strings.Builder), d); err == nil {
		t.Error("RenderHTML succeeded on a closed document")
	}
}
