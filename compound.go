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
	"strings"

	"github.com/mideind/go-bin/internal/latin"
)

// noSplit is the compound-cache marker for a word with no valid split.
const noSplit = -1

// compound analyses an unknown word as prefix+suffix, using the
// prefix DAWG to propose split points and the suffix DAWG to accept
// the remainder. The suffix's readings are templated into synthetic
// entries with a hyphenated lemma and surface and a lemma id of 0. A
// capitalised word that cannot be split is retried lowercased.
func (b *Bin) compound(word string) (string, []Ksnid) {
	b.metrics.CompoundRuns.Inc()
	if m := b.compoundWord(word); len(m) > 0 {
		b.metrics.CompoundHits.Inc()
		return word, m
	}
	if lower := strings.ToLower(word); lower != word {
		if m := b.compoundWord(lower); len(m) > 0 {
			b.metrics.CompoundHits.Inc()
			return lower, m
		}
	}
	return word, nil
}

// compoundWord splits a single word and templates the suffix readings.
func (b *Bin) compoundWord(word string) []Ksnid {
	wl, ok := latin.Encode(word)
	if !ok {
		return nil
	}
	split := b.findSplit(string(wl), wl)
	if split == noSplit {
		return nil
	}
	prefix := latin.Decode(wl[:split])
	suffix := latin.Decode(wl[split:])
	var out []Ksnid
	for _, k := range b.cachedLookup(suffix) {
		k.Lemma = prefix + "-" + k.Lemma
		k.Surface = prefix + "-" + suffix
		k.ID = 0
		out = append(out, k)
	}
	return out
}

// findSplit returns the split position for a word: the shortest prefix
// (hence longest suffix) such that the prefix is a legal compound
// prefix, the remainder is a legal compound suffix, and the remainder
// has at least one reading in the image. The result is cached.
func (b *Bin) findSplit(key string, wl []byte) int {
	if split, ok := b.splitCache.Get(key); ok {
		return split
	}
	split := noSplit
	for _, i := range b.prefixes.Splits(wl) {
		rest := wl[i:]
		if !b.suffixes.Contains(rest) {
			continue
		}
		if !b.im.Contains(rest) {
			continue
		}
		split = i
		break
	}
	b.splitCache.Put(key, split)
	return split
}
