// Copyright 2025 Miðeind ehf.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testutil

import (
	"fmt"
	"sort"

	"github.com/mideind/go-bin/internal/latin"
)

type dawgNode struct {
	children map[byte]*dawgNode
	final    bool
}

func newDawgNode() *dawgNode {
	return &dawgNode{children: map[byte]*dawgNode{}}
}

// BuildDawg packs a word list into the DAWG file format. The graph is
// a plain trie without suffix sharing, which is a valid (if
// non-minimal) DAWG; minimality only matters for the production-sized
// word lists.
func BuildDawg(words ...string) []byte {
	root := newDawgNode()
	for _, w := range words {
		b, ok := latin.Encode(w)
		if !ok {
			panic(fmt.Sprintf("not Latin-1: %q", w))
		}
		if len(b) == 0 {
			continue
		}
		n := root
		for _, c := range b {
			child := n.children[c]
			if child == nil {
				child = newDawgNode()
				n.children[c] = child
			}
			n = child
		}
		n.final = true
	}

	// Node 0 is reserved as an empty sibling list.
	nodes := []uint32{0x40000000}

	var writeEdges func(n *dawgNode) uint32
	writeEdges = func(n *dawgNode) uint32 {
		if len(n.children) == 0 {
			return 0
		}
		keys := make([]int, 0, len(n.children))
		for c := range n.children {
			keys = append(keys, int(c))
		}
		sort.Ints(keys)
		start := uint32(len(nodes))
		for range keys {
			nodes = append(nodes, 0)
		}
		for i, ci := range keys {
			child := n.children[byte(ci)]
			childIx := writeEdges(child)
			if childIx >= 1<<22 {
				panic("dawg too large")
			}
			w := uint32(ci) | childIx<<8
			if child.final {
				w |= 0x80000000
			}
			if i == len(keys)-1 {
				w |= 0x40000000
			}
			nodes[start+uint32(i)] = w
		}
		return start
	}

	rootIx := writeEdges(root)

	var buf []byte
	buf = append(buf, 'D', 'A', 'W', 'G')
	buf = append32(buf, 1)
	buf = append32(buf, uint32(len(nodes)))
	buf = append32(buf, rootIx)
	for _, n := range nodes {
		buf = append32(buf, n)
	}
	return buf
}
