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
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mideind/go-bin/internal/latin"
)

// Lookup returns the basic entries for a surface form, along with the
// search key that was actually matched. The search key differs from
// word when z-replacement or sentence-start lowercasing applied. A
// word with no reading yields the search key and an empty list.
//
// With atSentenceStart set, a capitalised word that is not found as
// written is retried with its first letter lowercased. With
// autoUppercase set, the first letter of the search key is uppercased
// whenever any returned entry's surface form is capitalised.
func (b *Bin) Lookup(word string, atSentenceStart, autoUppercase bool) (string, []Entry) {
	key, ks := b.lookup(word, atSentenceStart, autoUppercase)
	return key, toEntries(ks)
}

// LookupKsnid is Lookup returning augmented entries.
func (b *Bin) LookupKsnid(word string, atSentenceStart, autoUppercase bool) (string, []Ksnid) {
	return b.lookup(word, atSentenceStart, autoUppercase)
}

// lookup runs the shared front-end pipeline: z-replacement, direct
// trie lookup, sentence-start retry, compound fallback, deduplication.
func (b *Bin) lookup(word string, atSentenceStart, autoUppercase bool) (string, []Ksnid) {
	if word == "" {
		return word, nil
	}
	b.metrics.Lookups.Inc()

	key := word
	if b.replaceZ {
		key = replaceZ(key)
	}

	m := b.cachedLookup(key)

	if len(m) == 0 && atSentenceStart {
		if lower := lowerFirst(key); lower != key {
			if lm := b.cachedLookup(lower); len(lm) > 0 {
				key, m = lower, lm
			}
		}
	}

	if len(m) == 0 && b.addCompounds {
		key, m = b.compound(key)
	}

	if autoUppercase {
		for _, k := range m {
			if startsUpper(k.Surface) {
				key = upperFirst(key)
				break
			}
		}
	}

	return key, dedupe(m)
}

// LookupCats returns the set of word classes of a surface form, as a
// sorted slice.
func (b *Bin) LookupCats(word string, atSentenceStart bool) []string {
	_, ks := b.lookup(word, atSentenceStart, false)
	seen := map[string]struct{}{}
	var cats []string
	for _, k := range ks {
		if _, ok := seen[k.Cat]; !ok {
			seen[k.Cat] = struct{}{}
			cats = append(cats, k.Cat)
		}
	}
	sort.Strings(cats)
	return cats
}

// LookupLemmasAndCats returns the set of (lemma, word class) pairs of
// a surface form, sorted by lemma then class.
func (b *Bin) LookupLemmasAndCats(word string, atSentenceStart bool) []LemmaCat {
	_, ks := b.lookup(word, atSentenceStart, false)
	seen := map[LemmaCat]struct{}{}
	var pairs []LemmaCat
	for _, k := range ks {
		lc := LemmaCat{Lemma: k.Lemma, Cat: k.Cat}
		if _, ok := seen[lc]; !ok {
			seen[lc] = struct{}{}
			pairs = append(pairs, lc)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Lemma != pairs[j].Lemma {
			return pairs[i].Lemma < pairs[j].Lemma
		}
		return pairs[i].Cat < pairs[j].Cat
	})
	return pairs
}

// LookupLemmas returns the entries for which the given string is the
// headword itself.
func (b *Bin) LookupLemmas(lemma string) (string, []Entry) {
	key, ks := b.lookup(lemma, false, false)
	var out []Ksnid
	for _, k := range ks {
		if k.Lemma == key {
			out = append(out, k)
		}
	}
	return key, toEntries(out)
}

// LookupID returns the augmented headword entries of the lemma with
// the given BÍN id.
func (b *Bin) LookupID(id int) []Ksnid {
	if id <= 0 || id >= b.im.LemmaCount() {
		return nil
	}
	lemma, _, ok := b.im.Lemma(uint32(id))
	if !ok {
		return nil
	}
	var out []Ksnid
	for _, k := range b.cachedLookup(latin.Decode(lemma)) {
		if k.ID == id {
			out = append(out, k)
		}
	}
	return dedupe(out)
}

// replaceZ applies the spelling modernisations tzt->st and then z->s,
// left to right, non-overlapping.
func replaceZ(w string) string {
	if !strings.Contains(w, "z") {
		return w
	}
	return strings.ReplaceAll(strings.ReplaceAll(w, "tzt", "st"), "z", "s")
}

// lowerFirst lowercases the first code point of w only.
func lowerFirst(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return w
	}
	return string(unicode.ToLower(r)) + w[size:]
}

// upperFirst uppercases the first code point of w only.
func upperFirst(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

// startsUpper reports whether w starts with an uppercase letter.
func startsUpper(w string) bool {
	r, _ := utf8.DecodeRuneInString(w)
	return unicode.IsUpper(r)
}
