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

// A Cursor describes a [Block] encountered during [Walk].
type Cursor struct {
	node   *Block
	parent *Block
}

// Node returns the current [Block].
func (c *Cursor) Node() *Block {
	return c.node
}

// Parent returns the parent of the current [Block]
// (as returned by [*Cursor.Node]).
func (c *Cursor) Parent() *Block {
	return c.parent
}

// WalkOptions is the set of parameters to [Walk].
type WalkOptions struct {
	// If Pre is not nil, it is called for each block before the block's children are traversed (pre-order).
	// If Pre returns false, no children are traversed, and Post is not called for that block.
	Pre func(c *Cursor) bool
	// If Post is not nil, it is called for each block after the block's children are traversed (post-order).
	// If Post returns false, traversal is terminated and Walk returns immediately.
	Post func(c *Cursor) bool
}

// Walk traverses a block tree in document order, starting with root,
// and calling [WalkOptions.Pre] and [WalkOptions.Post].
func Walk(root *Block, opts *WalkOptions) {
	type walkFrame struct {
		node   *Block
		parent *Block
		post   bool
	}

	stack := []walkFrame{{node: root}}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := &Cursor{node: curr.node, parent: curr.parent}
		if curr.post {
			if opts.Post != nil && !opts.Post(c) {
				return
			}
			continue
		}
		if opts.Pre != nil && !opts.Pre(c) {
			continue
		}
		if opts.Post != nil {
			stack = append(stack, walkFrame{node: curr.node, parent: curr.parent, post: true})
		}
		children := curr.node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, walkFrame{node: children[i], parent: curr.node})
		}
	}
}
