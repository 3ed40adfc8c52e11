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

// Package testutil builds synthetic BÍN images and DAWG files in
// memory for tests. It is the mirror of the readers in the cbin and
// dawg packages: the byte layouts written here are the layouts those
// packages consume.
package testutil

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/mideind/go-bin/internal/latin"
)

// Entry is one test-vocabulary row.
type Entry struct {
	Lemma   string
	ID      int
	Cat     string
	Domain  string
	Surface string
	Tag     string

	// Ksnid optionally carries an explicit nine-field ksnid string.
	// Empty means the default attributes.
	Ksnid string
}

// The two common ksnid strings occupying the reserved table slots.
const (
	ksnidCommon0 = "1;;;;K;1;;;"
	ksnidCommon1 = "1;;;;V;1;;;"
)

// ImageBuilder accumulates vocabulary rows and packs them into an
// image byte slice.
type ImageBuilder struct {
	entries []Entry
}

// NewImage returns an empty image builder.
func NewImage() *ImageBuilder {
	return &ImageBuilder{}
}

// Add appends a vocabulary row.
func (ib *ImageBuilder) Add(entries ...Entry) *ImageBuilder {
	ib.entries = append(ib.entries, entries...)
	return ib
}

// ref is a packed-record triple.
type ref struct {
	lemma   uint32
	meaning uint32
	ksnid   uint32
}

type lemmaInfo struct {
	lemma  []byte
	subcat int
	forms  [][]byte
}

// Build packs the accumulated rows. It panics on rows that cannot be
// represented (out-of-range ids or indices, non-Latin-1 text); this is
// test fixture code.
func (ib *ImageBuilder) Build() []byte {
	enc := func(s string) []byte {
		b, ok := latin.Encode(s)
		if !ok {
			panic(fmt.Sprintf("not Latin-1: %q", s))
		}
		return b
	}

	// Meaning, ksnid and subcategory tables, in first-seen order.
	meaningIx := map[string]uint32{}
	var meaningList []string
	ksnidIx := map[string]uint32{ksnidCommon0: 0, ksnidCommon1: 1}
	ksnidList := []string{ksnidCommon0, ksnidCommon1}
	subcatIx := map[string]int{}
	var subcatList []string

	lemmas := map[int]*lemmaInfo{}
	var surfaceOrder []string
	surfaceRefs := map[string][]ref{}

	maxID := 0
	for _, e := range ib.entries {
		if e.ID <= 0 || e.ID >= 1<<20 {
			panic(fmt.Sprintf("lemma id out of range: %d", e.ID))
		}
		if e.ID > maxID {
			maxID = e.ID
		}

		m := e.Cat + " " + e.Tag
		if len(m) > 24 {
			panic(fmt.Sprintf("meaning too long: %q", m))
		}
		mix, ok := meaningIx[m]
		if !ok {
			mix = uint32(len(meaningList))
			if mix >= 1<<11 {
				panic("too many meanings")
			}
			meaningIx[m] = mix
			meaningList = append(meaningList, m)
		}

		ks := e.Ksnid
		if ks == "" {
			ks = ksnidCommon0
		}
		kix, ok := ksnidIx[ks]
		if !ok {
			kix = uint32(len(ksnidList))
			if kix >= 1<<19 {
				panic("too many ksnid strings")
			}
			ksnidIx[ks] = kix
			ksnidList = append(ksnidList, ks)
		}

		six, ok := subcatIx[e.Domain]
		if !ok {
			six = len(subcatList)
			if six >= 1<<5 {
				panic("too many subcategories")
			}
			subcatIx[e.Domain] = six
			subcatList = append(subcatList, e.Domain)
		}

		li := lemmas[e.ID]
		if li == nil {
			li = &lemmaInfo{lemma: enc(e.Lemma), subcat: six}
			lemmas[e.ID] = li
		}

		surface := string(enc(e.Surface))
		if _, ok := surfaceRefs[surface]; !ok {
			surfaceOrder = append(surfaceOrder, surface)
		}
		surfaceRefs[surface] = append(surfaceRefs[surface], ref{
			lemma:   uint32(e.ID),
			meaning: mix,
			ksnid:   kix,
		})
		addForm(li, []byte(surface))
	}

	// The alphabet covers every byte occurring in a surface form or
	// lemma, in ascending byte order.
	alphaSet := map[byte]struct{}{}
	for _, s := range surfaceOrder {
		for _, c := range []byte(s) {
			alphaSet[c] = struct{}{}
		}
	}
	for _, li := range lemmas {
		for _, c := range li.lemma {
			alphaSet[c] = struct{}{}
		}
	}
	var alpha []byte
	for c := range alphaSet {
		alpha = append(alpha, c)
	}
	sort.Slice(alpha, func(i, j int) bool { return alpha[i] < alpha[j] })
	if len(alpha) > 126 {
		panic("alphabet too large")
	}
	alphaIndex := map[byte]uint32{}
	for i, c := range alpha {
		alphaIndex[c] = uint32(i)
	}

	// Pack the meaning record sequences, one per surface form.
	var mappings []byte
	mappingOff := map[string]uint32{}
	for _, surface := range surfaceOrder {
		mappingOff[surface] = uint32(len(mappings))
		mappings = appendRefs(mappings, surfaceRefs[surface])
	}

	const headerLen = 16 + 8*4
	mappingsBase := uint32(headerLen)
	formsBase := mappingsBase + uint32(len(mappings))

	trie := buildTrie(surfaceOrder, mappingOff)
	trieBuf := serializeTrie(trie, formsBase, alphaIndex)

	lemmasBase := formsBase + uint32(len(trieBuf))
	lemmaCount := uint32(maxID + 1)
	templatesBase := lemmasBase + 16*lemmaCount

	// The templates section holds the delta-compressed form sets and
	// the lemma strings themselves. Unused lemma slots share one empty
	// string so that stray reads resolve to a zero-length lemma.
	var tmpl []byte
	emptyStrOff := templatesBase
	tmpl = append(tmpl, 0)

	type lemmaRec struct {
		strOff  uint32
		binding uint32
		tmplOff uint32
	}
	recs := make([]lemmaRec, lemmaCount)
	for i := range recs {
		recs[i] = lemmaRec{strOff: emptyStrOff}
	}
	ids := make([]int, 0, len(lemmas))
	for id := range lemmas {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		li := lemmas[id]
		binding := uint32(li.subcat)
		var tmplOff uint32
		forms := formsExceptLemma(li)
		if len(forms) > 0 {
			tmplOff = uint32(len(tmpl))
			tmpl = append(tmpl, compressSet(li.lemma, forms)...)
			binding |= 0x80000000
		}
		strOff := templatesBase + uint32(len(tmpl))
		tmpl = append(tmpl, byte(len(li.lemma)))
		tmpl = append(tmpl, li.lemma...)
		recs[id] = lemmaRec{strOff: strOff, binding: binding, tmplOff: tmplOff}
	}

	meaningsBase := templatesBase + uint32(len(tmpl))
	var meanings []byte
	recBase := meaningsBase + 4*uint32(len(meaningList))
	for i := range meaningList {
		meanings = append32(meanings, recBase+24*uint32(i))
	}
	for _, m := range meaningList {
		rec := make([]byte, 24)
		copy(rec, enc(m))
		for i := len(m); i < 24; i++ {
			rec[i] = ' '
		}
		meanings = append(meanings, rec...)
	}

	alphabetBase := meaningsBase + uint32(len(meanings))
	alphabetLen := uint32(4 + len(alpha))

	subcatsBase := alphabetBase + alphabetLen
	var subcats []byte
	subBlobBase := subcatsBase + 4 + 4*uint32(len(subcatList))
	subcats = append32(subcats, uint32(len(subcatList)))
	blobOff := subBlobBase
	for _, s := range subcatList {
		subcats = append32(subcats, blobOff)
		blobOff += uint32(1 + len(s))
	}
	for _, s := range subcatList {
		b := enc(s)
		subcats = append(subcats, byte(len(b)))
		subcats = append(subcats, b...)
	}

	ksnidBase := subcatsBase + uint32(len(subcats))
	var ksnid []byte
	ksnidBlobBase := ksnidBase + 4*uint32(len(ksnidList))
	blobOff = ksnidBlobBase
	for _, s := range ksnidList {
		ksnid = append32(ksnid, blobOff)
		blobOff += uint32(1 + len(s))
	}
	for _, s := range ksnidList {
		b := enc(s)
		ksnid = append(ksnid, byte(len(b)))
		ksnid = append(ksnid, b...)
	}

	// Assemble the image.
	var img []byte
	img = append(img, []byte("Greynir 04.00.00")...)
	for _, off := range []uint32{
		mappingsBase, formsBase, lemmasBase, templatesBase,
		meaningsBase, alphabetBase, subcatsBase, ksnidBase,
	} {
		img = append32(img, off)
	}
	img = append(img, mappings...)
	img = append(img, trieBuf...)
	for _, r := range recs {
		img = append32(img, r.strOff)
		img = append32(img, r.binding)
		img = append32(img, r.tmplOff)
		img = append32(img, 0)
	}
	img = append(img, tmpl...)
	img = append(img, meanings...)
	img = append32(img, uint32(len(alpha)))
	img = append(img, alpha...)
	img = append(img, subcats...)
	img = append(img, ksnid...)
	return img
}

// addForm records a distinct surface form for a lemma, preserving
// insertion order.
func addForm(li *lemmaInfo, form []byte) {
	for _, f := range li.forms {
		if string(f) == string(form) {
			return
		}
	}
	li.forms = append(li.forms, form)
}

// formsExceptLemma returns the lemma's forms minus its own headword
// string, which the reader appends by itself.
func formsExceptLemma(li *lemmaInfo) [][]byte {
	var out [][]byte
	for _, f := range li.forms {
		if string(f) != string(li.lemma) {
			out = append(out, f)
		}
	}
	return out
}

// appendRefs packs a meaning-record sequence. Records that repeat the
// preceding lemma id become compact; records with a common ksnid and a
// small meaning index become single full words; everything else is a
// double.
func appendRefs(buf []byte, refs []ref) []byte {
	for j, r := range refs {
		last := j == len(refs)-1
		var term uint32
		if last {
			term = 0x80000000
		}
		if r.lemma >= 1<<20 || r.meaning >= 1<<11 || r.ksnid >= 1<<19 {
			panic(fmt.Sprintf("record out of range: %+v", r))
		}
		switch {
		case j > 0 && r.lemma == refs[j-1].lemma && r.meaning < 1<<10:
			buf = append32(buf, term|0x40000000|r.meaning<<19|r.ksnid)
		case r.ksnid <= 1 && r.meaning < 1<<8:
			buf = append32(buf, term|0x20000000|r.ksnid<<28|r.meaning<<20|r.lemma)
		default:
			buf = append32(buf, 0x60000000|r.lemma)
			buf = append32(buf, term|r.meaning<<19|r.ksnid)
		}
	}
	return buf
}

// compressSet delta-compresses a set of byte strings against a base
// word, in the cut-byte format the reader's readFormSet expects.
func compressSet(base []byte, forms [][]byte) []byte {
	var out []byte
	last := base
	for _, w := range forms {
		common := 0
		for common < len(last) && common < len(w) && last[common] == w[common] {
			common++
		}
		cut := len(last) - common
		lw := len(w) - common
		diff := lw - cut
		switch {
		case cut <= 15 && diff >= -4 && diff <= 3 && (cut != 0 || diff != 0):
			out = append(out, byte(cut<<3)|byte(diff&0x07))
		case cut <= 127 && lw <= 255:
			out = append(out, 0x80|byte(cut), byte(lw))
		default:
			panic(fmt.Sprintf("cannot delta-encode %q after %q", w, last))
		}
		out = append(out, w[common:]...)
		last = w
	}
	return append(out, 0x00)
}

func append32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}
