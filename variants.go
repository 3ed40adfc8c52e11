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

// nounCats are the classes matched by the pseudo-category "no".
var nounCats = map[string]struct{}{"kk": {}, "kvk": {}, "hk": {}}

// Constraint optionally narrows a variant lookup to a particular
// lemma, lemma id, or tag predicate.
type Constraint struct {
	// Lemma restricts candidates to this headword when non-empty.
	Lemma string

	// ID restricts candidates to this lemma id when non-zero.
	ID int

	// Filter, when non-nil, must accept the tag of every returned
	// entry.
	Filter func(tag string) bool
}

// LookupVariants returns the inflected forms of the lemmas of word
// that satisfy every requirement. A requirement is either a feature
// substring that must occur in the tag (case, number, person, degree,
// and so on, in upper case or lower case; p1/p2/p3 are accepted for
// 1P/2P/3P) or the token "nogr", demanding a form without the attached
// definite article. cat selects the word class of the seed candidates,
// with "no" matching nouns of any gender. Results are deduplicated on
// (surface, tag) and keep the enumeration order of the image.
func (b *Bin) LookupVariants(word, cat string, requirements []string, constraint *Constraint) []Ksnid {
	b.metrics.VariantRuns.Inc()
	if constraint == nil {
		constraint = &Constraint{}
	}
	reqs := make([]string, len(requirements))
	for i, r := range requirements {
		reqs[i] = normalizeRequirement(r)
	}

	_, candidates := b.lookup(word, false, false)

	type variantKey struct{ surface, tag string }
	seen := map[variantKey]struct{}{}
	var out []Ksnid
	for _, cand := range candidates {
		if cat != "no" {
			if cand.Cat != cat {
				continue
			}
		} else if _, ok := nounCats[cand.Cat]; !ok {
			continue
		}
		if constraint.Lemma != "" && cand.Lemma != constraint.Lemma {
			continue
		}
		if constraint.ID != 0 && cand.ID != constraint.ID {
			continue
		}

		id, prefix := cand.ID, ""
		if id == 0 {
			// Synthetic compound: enumerate the suffix lemma's forms
			// and re-attach the prefix afterwards.
			id, prefix = b.compoundSeed(cand)
			if id == 0 {
				continue
			}
		}

		for _, form := range b.im.LemmaForms(uint32(id)) {
			f := latin.Decode(form)
			for _, e := range b.cachedLookup(f) {
				if e.ID != id || e.Cat != cand.Cat {
					continue
				}
				if !tagSatisfies(e.Tag, reqs) {
					continue
				}
				if constraint.Filter != nil && !constraint.Filter(e.Tag) {
					continue
				}
				if prefix != "" {
					e.Lemma = prefix + "-" + e.Lemma
					e.Surface = prefix + "-" + e.Surface
					e.ID = 0
				}
				key := variantKey{e.Surface, e.Tag}
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, e)
			}
		}
	}
	return out
}

// compoundSeed resolves a synthetic compound candidate to the lemma id
// of its suffix and the compound prefix.
func (b *Bin) compoundSeed(cand Ksnid) (int, string) {
	cut := strings.LastIndexByte(cand.Surface, '-')
	if cut < 0 {
		return 0, ""
	}
	prefix := cand.Surface[:cut]
	suffix := cand.Surface[cut+1:]
	suffixLemma := cand.Lemma
	if j := strings.LastIndexByte(cand.Lemma, '-'); j >= 0 {
		suffixLemma = cand.Lemma[j+1:]
	}
	for _, e := range b.cachedLookup(suffix) {
		if e.Lemma == suffixLemma && e.Cat == cand.Cat {
			return e.ID, prefix
		}
	}
	return 0, ""
}

// normalizeRequirement maps a requirement token to its tag spelling:
// gr and nogr stay as given, p1/p2/p3 become 1P/2P/3P, and everything
// else is uppercased.
func normalizeRequirement(t string) string {
	switch t {
	case "gr", "nogr":
		return t
	case "p1", "p2", "p3":
		return t[1:] + "P"
	}
	return strings.ToUpper(t)
}

// tagSatisfies reports whether a tag contains every requirement
// substring, honouring the special nogr token.
func tagSatisfies(tag string, reqs []string) bool {
	for _, r := range reqs {
		if r == "nogr" {
			if strings.Contains(tag, "gr") {
				return false
			}
			continue
		}
		if !strings.Contains(tag, r) {
			return false
		}
	}
	return true
}
