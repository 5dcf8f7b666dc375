// Copyright 2025 Ross Light
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

// mdinspect is a developer tool for poking at the markdown engine:
// it parses a file and dumps the block tree, or renders it as HTML.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"zombiezen.com/go/mdedit"
)

var (
	kindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	idStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	urlStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Underline(true)
)

func main() {
	var (
		renderHTML bool
		create     bool
	)
	rootCmd := &cobra.Command{
		Use:          "mdinspect FILE",
		Short:        "Inspect the block tree of a markdown file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if create {
				if err := mdedit.CreateEmptyFile(path); err != nil {
					return err
				}
				log.Info("created empty markdown file", "path", path)
				return nil
			}
			doc, err := mdedit.Open(path)
			if err != nil {
				return err
			}
			defer doc.Close()
			if renderHTML {
				return mdedit.RenderHTML(os.Stdout, doc)
			}
			dumpTree(doc)
			return nil
		},
	}
	rootCmd.Flags().BoolVar(&renderHTML, "html", false, "render the document as HTML instead of dumping the tree")
	rootCmd.Flags().BoolVar(&create, "create", false, "create an empty markdown file and exit")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func dumpTree(doc *mdedit.Document) {
	source := doc.Source()
	depth := 0
	mdedit.Walk(doc.Root(), &mdedit.WalkOptions{
		Pre: func(c *mdedit.Cursor) bool {
			b := c.Node()
			line := strings.Repeat("  ", depth) + kindStyle.Render(b.Kind().String())
			if b.Level() > 0 {
				line += kindStyle.Render("(" + strconv.Itoa(b.Level()) + ")")
			}
			line += " " + idStyle.Render("#"+strconv.FormatInt(int64(b.ID()), 10))
			if content := b.Content(); content.IsValid() && !hasBlockChildren(b) {
				line += " " + textStyle.Render(strconv.Quote(preview(content.Text(source))))
			}
			if ann := b.Annotation(); ann.IsValid() {
				line += " " + urlStyle.Render(ann.Text(source))
			}
			fmt.Println(line)
			depth++
			return true
		},
		Post: func(c *mdedit.Cursor) bool {
			depth--
			return true
		},
	})
}

// hasBlockChildren reports whether the block's text
// is already shown through inline children.
func hasBlockChildren(b *mdedit.Block) bool {
	return b.ChildCount() > 0 && b.Kind() != mdedit.RawTextKind
}

func preview(s string) string {
	const max = 48
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
