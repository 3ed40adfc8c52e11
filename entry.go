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

package bin

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry is a basic BÍN entry: one grammatical reading of a surface
// form. All strings are owned copies; nothing borrows from the image.
type Entry struct {
	// Lemma is the headword. For synthetic compounds it contains a
	// hyphen between the prefix and the suffix lemma.
	Lemma string

	// ID is the BÍN lemma id. 0 marks a synthetic compound entry.
	ID int

	// Cat is the word class (kk, kvk, hk, so, lo, ...).
	Cat string

	// Domain is the lemma's semantic subcategory (alm, örn, ism, ...).
	Domain string

	// Surface is the matched inflected form, equal to the search key
	// except for the hyphen inserted into compounds.
	Surface string

	// Tag is the grammatical tag string (e.g. ÞGFETgr).
	Tag string
}

// String returns a compact representation of the entry.
func (e Entry) String() string {
	return fmt.Sprintf("(%s, %s/%s/%d, %q, %s)", e.Lemma, e.Cat, e.Domain, e.ID, e.Surface, e.Tag)
}

// Ksnid is an augmented entry carrying the KRISTÍNsnid attributes in
// addition to the basic six fields.
type Ksnid struct {
	Entry

	// Correctness is the lemma's correctness grade, 1 to 5.
	Correctness int

	// Register is the lemma's language register label.
	Register string

	// GrammarNote holds grammatical marker strings for the lemma.
	GrammarNote string

	// CrossRef is a reference to a related lemma id.
	CrossRef string

	// Publication is 'K' for the BÍN kernel, 'V' otherwise.
	Publication string

	// FormCorrectness is the form's correctness grade, 1 to 5.
	FormCorrectness int

	// FormRegister is the form's language register label.
	FormRegister string

	// FormBinding holds usage binding markers for the form.
	FormBinding string

	// AltLemma is an alternative headword, if any.
	AltLemma string
}

// defaultKsnid are the augmented attributes used when a record has no
// explicit ksnid string.
var defaultKsnid = Ksnid{
	Correctness:     1,
	Publication:     "K",
	FormCorrectness: 1,
}

// parseKsnid fills the augmented attributes of k from a nine-field
// semicolon-separated ksnid string. Malformed strings fall back to the
// defaults.
func parseKsnid(s string, k *Ksnid) {
	k.Correctness = defaultKsnid.Correctness
	k.Publication = defaultKsnid.Publication
	k.FormCorrectness = defaultKsnid.FormCorrectness
	fields := strings.Split(s, ";")
	if len(fields) != 9 {
		return
	}
	if n, err := strconv.Atoi(fields[0]); err == nil {
		k.Correctness = n
	}
	k.Register = fields[1]
	k.GrammarNote = fields[2]
	k.CrossRef = fields[3]
	if fields[4] != "" {
		k.Publication = fields[4]
	}
	if n, err := strconv.Atoi(fields[5]); err == nil {
		k.FormCorrectness = n
	}
	k.FormRegister = fields[6]
	k.FormBinding = fields[7]
	k.AltLemma = fields[8]
}

// LemmaCat is a (lemma, word class) pair.
type LemmaCat struct {
	Lemma string
	Cat   string
}

// dedupeKey identifies an entry for result deduplication.
type dedupeKey struct {
	surface string
	tag     string
	lemma   string
	cat     string
}

// dedupe removes duplicate entries, keeping the first occurrence and
// preserving order. The result is always a fresh slice so that cached
// lookup results are never aliased by callers.
func dedupe(ks []Ksnid) []Ksnid {
	if ks == nil {
		return nil
	}
	seen := make(map[dedupeKey]struct{}, len(ks))
	out := make([]Ksnid, 0, len(ks))
	for _, k := range ks {
		key := dedupeKey{k.Surface, k.Tag, k.Lemma, k.Cat}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, k)
	}
	return out
}

// toEntries projects augmented entries to their basic six fields.
func toEntries(ks []Ksnid) []Entry {
	if ks == nil {
		return nil
	}
	out := make([]Entry, len(ks))
	for i, k := range ks {
		out[i] = k.Entry
	}
	return out
}
