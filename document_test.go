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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBlockAt(t *testing.T) {
	const source = "# Title\n\nhello world\n\n> quoted\n"
	d := Parse([]byte(source))
	defer d.Close()

	tests := []struct {
		name   string
		offset int
		want   BlockKind
	}{
		{"InsideHeading", 3, HeadingKind},
		{"InsideParagraph", 12, ParagraphKind},
		{"ParagraphEnd", 20, ParagraphKind},
		{"InsideQuotedParagraph", 26, ParagraphKind},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := d.BlockAt(test.offset)
			if b == nil {
				t.Fatalf("BlockAt(%d) = nil; want %v", test.offset, test.want)
			}
			if b.Kind() != test.want {
				t.Errorf("BlockAt(%d).Kind() = %v; want %v", test.offset, b.Kind(), test.want)
			}
		})
	}

	t.Run("BetweenBlocks", func(t *testing.T) {
		// Offset 8 is the blank line between heading and paragraph.
		if b := d.BlockAt(8); b != nil && b.Kind() != ParagraphKind && b.Kind() != HeadingKind {
			t.Errorf("BlockAt(8).Kind() = %v; want nil or an adjacent block", b.Kind())
		}
	})
	t.Run("OutOfRange", func(t *testing.T) {
		if b := d.BlockAt(10_000); b != nil {
			t.Errorf("BlockAt(10000) = %v block; want nil", b.Kind())
		}
		if b := d.BlockAt(-1); b != nil {
			t.Errorf("BlockAt(-1) = %v block; want nil", b.Kind())
		}
	})

	t.Run("QuotedOffsetIsDeepest", func(t *testing.T) {
		// Inside "> quoted" the deepest structural block is the paragraph,
		// not the quote that contains it.
		b := d.BlockAt(25)
		if b == nil || b.Kind() != ParagraphKind {
			t.Fatalf("BlockAt(25) = %v; want %v", b.Kind(), ParagraphKind)
		}
	})
}

func TestBlockByID(t *testing.T) {
	d := Parse([]byte("# Title\n\nhello\n"))
	defer d.Close()

	para := d.Root().Child(1)
	if got := d.BlockByID(para.ID()); got != para {
		t.Errorf("BlockByID(%d) = %p; want %p", para.ID(), got, para)
	}
	if got := d.BlockByID(NoBlock); got != nil {
		t.Errorf("BlockByID(NoBlock) = %v; want nil", got.Kind())
	}
	if got := d.BlockByID(9999); got != nil {
		t.Errorf("BlockByID(9999) = %v; want nil", got.Kind())
	}
}

func TestDocumentClose(t *testing.T) {
	d := Parse([]byte("hello"))
	if d.Closed() {
		t.Fatal("Closed() = true before Close")
	}
	d.Close()
	if !d.Closed() {
		t.Error("Closed() = false after Close")
	}
	if d.Root() != nil {
		t.Error("Root() != nil after Close")
	}
	if d.Source() != nil {
		t.Error("Source() != nil after Close")
	}
	if b := d.BlockAt(0); b != nil {
		t.Error("BlockAt(0) != nil after Close")
	}
	// Close again must be a no-op, not a panic.
	d.Close()
}

func TestNULScrub(t *testing.T) {
	d := Parse([]byte("a\x00b"))
	defer d.Close()
	if got := string(d.Source()); strings.ContainsRune(got, 0) {
		t.Errorf("Source() = %q; want NUL bytes replaced", got)
	}
	if got, want := string(d.Source()), "a�b"; got != want {
		t.Errorf("Source() = %q; want %q", got, want)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing", func(t *testing.T) {
		if _, err := Open(filepath.Join(dir, "missing.md")); err == nil {
			t.Error("Open succeeded on a missing file")
		}
	})

	t.Run("Exists", func(t *testing.T) {
		path := filepath.Join(dir, "doc.md")
		if err := os.WriteFile(path, []byte("# hi\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		d, err := Open(path)
		if err != nil {
			t.Fatal(err)
		}
		defer d.Close()
		if got := d.Root().Child(0).Kind(); got != HeadingKind {
			t.Errorf("Child(0).Kind() = %v; want %v", got, HeadingKind)
		}
	})
}

func TestCreateEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.md")

	if err := CreateEmptyFile(path); err != nil {
		t.Fatal(err)
	}
	d, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	if got := d.Root().ChildCount(); got != 0 {
		t.Errorf("ChildCount() = %d; want 0", got)
	}

	// A second create must fail rather than truncate.
	if err := CreateEmptyFile(path); err == nil {
		t.Error("CreateEmptyFile succeeded on an existing file")
	}
}
