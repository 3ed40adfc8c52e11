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

package cbin

// Packed meaning records. Every surface form maps to a sequence of one
// or more records; a record is one or two 32-bit words. Bit 31 of the
// final word of the final record terminates the sequence; bits 30..29
// of the first word of each record select its shape.
const (
	mapTerm      = 0x80000000
	mapShapeMask = 0x60000000

	// Single full: the ksnid index is one of the two common values,
	// selected by bit 28; the meaning index is 8 bits, the lemma id 20.
	mapSingleFull = 0x20000000

	// Single compact: reuses the preceding record's lemma id; the
	// meaning index is 10 bits, the ksnid index 19.
	mapSingleCompact = 0x40000000

	// Double: the first word carries the lemma id; the second word
	// carries an 11-bit meaning index and a 19-bit ksnid index.
	mapDouble = 0x60000000

	lemmaIDMask = 0x000FFFFF
	ksnidMask   = 0x0007FFFF
)

// Ref is a decoded packed-meaning record: indices into the lemma,
// meaning and ksnid tables.
type Ref struct {
	Lemma   uint32
	Meaning uint32
	Ksnid   uint32
}

// Refs decodes the packed meaning sequence at the given byte offset
// within the mappings section. A sequence violating the record
// invariants (an unknown shape, or a compact record with no preceding
// lemma id) yields nil: corruption is contained to the one sequence.
func (im *Image) Refs(off uint32) []Ref {
	var refs []Ref
	pos := im.mappings + off
	var prevLemma uint32
	havePrev := false
	for {
		w0 := im.b.U32(pos)
		pos += 4
		var r Ref
		done := w0&mapTerm != 0
		switch w0 & mapShapeMask {
		case mapSingleFull:
			r.Lemma = w0 & lemmaIDMask
			r.Meaning = (w0 >> 20) & 0xFF
			r.Ksnid = (w0 >> 28) & 1
			prevLemma, havePrev = r.Lemma, true
		case mapSingleCompact:
			if !havePrev {
				return nil
			}
			r.Lemma = prevLemma
			r.Meaning = (w0 >> 19) & 0x3FF
			r.Ksnid = w0 & ksnidMask
		case mapDouble:
			w1 := im.b.U32(pos)
			pos += 4
			r.Lemma = w0 & lemmaIDMask
			r.Meaning = (w1 >> 19) & 0x7FF
			r.Ksnid = w1 & ksnidMask
			prevLemma, havePrev = r.Lemma, true
			done = w1&mapTerm != 0
		default:
			return nil
		}
		refs = append(refs, r)
		if done {
			return refs
		}
	}
}
