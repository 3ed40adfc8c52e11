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
)

// noValue is the end-of-word sentinel of an interim trie node.
const noValue = 0x007FFFFF

// charNode is a plain one-byte-per-node trie used while collecting the
// vocabulary.
type charNode struct {
	children map[byte]*charNode
	value    int64 // -1 when no word ends here
}

func newCharNode() *charNode {
	return &charNode{children: map[byte]*charNode{}, value: -1}
}

// radixNode is a path-compressed node ready for serialization.
type radixNode struct {
	frag     []byte
	value    int64
	children []*radixNode
}

// buildTrie builds a radix trie over the Latin-1 surface forms, with
// each word's value being its mapping offset.
func buildTrie(surfaces []string, values map[string]uint32) *radixNode {
	root := newCharNode()
	for _, s := range surfaces {
		n := root
		for i := 0; i < len(s); i++ {
			c := s[i]
			child := n.children[c]
			if child == nil {
				child = newCharNode()
				n.children[c] = child
			}
			n = child
		}
		n.value = int64(values[s])
	}
	return &radixNode{value: -1, children: compress(root)}
}

// compress merges chains of valueless single-child nodes into fragments.
func compress(n *charNode) []*radixNode {
	keys := make([]int, 0, len(n.children))
	for c := range n.children {
		keys = append(keys, int(c))
	}
	sort.Ints(keys)
	out := make([]*radixNode, 0, len(keys))
	for _, ci := range keys {
		c := byte(ci)
		child := n.children[c]
		frag := []byte{c}
		for child.value < 0 && len(child.children) == 1 {
			for c2, n2 := range child.children {
				frag = append(frag, c2)
				child = n2
			}
		}
		out = append(out, &radixNode{
			frag:     frag,
			value:    child.value,
			children: compress(child),
		})
	}
	return out
}

// serializeTrie writes the radix trie in the image's node format. The
// base offset of the forms section is needed because child pointers
// are absolute byte offsets.
func serializeTrie(root *radixNode, base uint32, alphaIndex map[byte]uint32) []byte {
	var buf []byte

	var writeNode func(n *radixNode) uint32
	writeNode = func(n *radixNode) uint32 {
		off := base + uint32(len(buf))

		value := uint32(noValue)
		if n.value >= 0 {
			if n.value >= noValue {
				panic(fmt.Sprintf("trie value out of range: %d", n.value))
			}
			value = uint32(n.value)
		}

		single := len(n.frag) == 1
		var childless uint32
		if len(n.children) == 0 {
			childless = 0x40000000
		}

		var hdr uint32
		if single {
			aix, ok := alphaIndex[n.frag[0]]
			if !ok {
				panic(fmt.Sprintf("byte %#x not in alphabet", n.frag[0]))
			}
			hdr = 0x80000000 | childless | (aix+1)<<23 | value
		} else {
			hdr = childless | value
		}
		buf = append32(buf, hdr)

		var slotBase int
		if len(n.children) > 0 {
			buf = append32(buf, uint32(len(n.children)))
			slotBase = len(buf)
			for range n.children {
				buf = append32(buf, 0)
			}
		}

		if !single {
			// Zero-terminated fragment, padded to 32-bit alignment.
			buf = append(buf, n.frag...)
			buf = append(buf, 0)
			for len(buf)%4 != 0 {
				buf = append(buf, 0)
			}
		}

		for i, child := range n.children {
			childOff := writeNode(child)
			patch32(buf, slotBase+4*i, childOff)
		}
		return off
	}

	writeNode(root)
	return buf
}

func patch32(b []byte, pos int, v uint32) {
	b[pos] = byte(v)
	b[pos+1] = byte(v >> 8)
	b[pos+2] = byte(v >> 16)
	b[pos+3] = byte(v >> 24)
}
