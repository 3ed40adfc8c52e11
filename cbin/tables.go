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

import (
	"bytes"

	"github.com/mideind/go-bin/internal/latin"
)

const (
	// lemmaStride is the size of a lemma record: string offset,
	// binding word, template offset and a reserved word.
	lemmaStride = 16

	// meaningLen is the padded length of a meaning record.
	meaningLen = 24

	// lemmaHasTemplates flags a lemma record whose template word holds
	// a form-set offset.
	lemmaHasTemplates = 0x80000000

	// lemmaSubcatMask extracts the subcategory index from the binding
	// word.
	lemmaSubcatMask = 0x1F
)

// Meaning resolves a meaning index to its word class and inflection
// tag, decoded from Latin-1 to UTF-8.
func (im *Image) Meaning(ix uint32) (wordClass, tag string, ok bool) {
	off := im.b.U32(im.meanings + 4*ix)
	raw := im.b.Bytes(off, meaningLen)
	if raw == nil {
		return "", "", false
	}
	sp := bytes.IndexByte(raw, ' ')
	if sp < 0 {
		return "", "", false
	}
	rest := bytes.TrimRight(raw[sp+1:], " \x00")
	return latin.Decode(raw[:sp]), latin.Decode(rest), true
}

// Lemma resolves a lemma id to its Latin-1 headword string and
// subcategory (domain) name. Id 0 is reserved for synthetic compounds
// and never resolves.
func (im *Image) Lemma(id uint32) (lemma []byte, domain string, ok bool) {
	if id == 0 || id >= im.lemmaCount {
		return nil, "", false
	}
	rec := im.lemmas + lemmaStride*id
	strOff := im.b.U32(rec)
	binding := im.b.U32(rec + 4)
	n := uint32(im.b.U8(strOff))
	s := im.b.Bytes(strOff+1, n)
	if s == nil && n > 0 {
		return nil, "", false
	}
	return s, im.Subcat(int(binding & lemmaSubcatMask)), true
}

// KsnidString resolves a ksnid index to its raw nine-field string.
func (im *Image) KsnidString(ix uint32) (string, bool) {
	off := im.b.U32(im.ksnid + 4*ix)
	n := uint32(im.b.U8(off))
	s := im.b.Bytes(off+1, n)
	if s == nil && n > 0 {
		return "", false
	}
	return string(s), true
}

// LemmaForms returns all inflected forms of the given lemma, as
// Latin-1 byte strings, decompressed from the lemma's template set.
// The lemma's own headword form is always included. The result is nil
// for an invalid id.
func (im *Image) LemmaForms(id uint32) [][]byte {
	if id == 0 || id >= im.lemmaCount {
		return nil
	}
	rec := im.lemmas + lemmaStride*id
	strOff := im.b.U32(rec)
	binding := im.b.U32(rec + 4)
	n := uint32(im.b.U8(strOff))
	lemma := im.b.Bytes(strOff+1, n)
	if lemma == nil && n > 0 {
		return nil
	}
	if binding&lemmaHasTemplates == 0 {
		return [][]byte{lemma}
	}
	forms := im.readFormSet(im.b.U32(rec+8), lemma)
	return append(forms, lemma)
}

// readFormSet decompresses a delta-compressed string set from the
// templates section. Each entry is a cut byte (how many characters to
// drop from the end of the previous word) followed by the divergent
// suffix; a zero cut byte terminates the set.
func (im *Image) readFormSet(off uint32, base []byte) [][]byte {
	var forms [][]byte
	p := im.templates + off
	last := base
	lw := len(last)
	for {
		cut := int(im.b.U8(p))
		p++
		if cut == 0x00 {
			break
		}
		var lwNew int
		if cut&0x80 != 0 {
			// Long form: cut in the low 7 bits, length in the next byte.
			cut &= 0x7F
			lwNew = int(im.b.U8(p))
			p++
		} else {
			// Short form: cut in bits 3..6, (length - cut) in the low 3
			// bits as a signed value.
			diff := (cut & 0x03) - (cut & 0x04)
			cut >>= 3
			lwNew = cut + diff
		}
		common := lw - cut
		if common < 0 || common > len(last) || lwNew < 0 {
			// Corrupt set: keep what has been decoded so far.
			break
		}
		lw = lwNew
		w := make([]byte, 0, common+lw)
		w = append(w, last[:common]...)
		if lw > 0 {
			tail := im.b.Bytes(p, uint32(lw))
			if tail == nil {
				break
			}
			w = append(w, tail...)
			p += uint32(lw)
		}
		forms = append(forms, w)
		last = w
		lw += common
	}
	return forms
}
