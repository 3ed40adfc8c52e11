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

package bin_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mideind/go-bin"
)

// TestLookupVariants_Case tests requesting another case of a seed
// form.
func TestLookupVariants_Case(t *testing.T) {
	t.Parallel()

	b := openFixture(t, nil)

	ks := b.LookupVariants("Laugavegur", "kk", []string{"ÞGF"}, nil)
	if len(ks) == 0 {
		t.Fatal("expected variants")
	}
	found := false
	for _, k := range ks {
		if k.Surface == "Laugavegi" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected surface Laugavegi, got %v", ks)
	}
}

// TestLookupVariants_Requirements tests combining case, number and the
// nogr token.
func TestLookupVariants_Requirements(t *testing.T) {
	t.Parallel()

	b := openFixture(t, nil)

	ks := b.LookupVariants("heftaranum", "kk", []string{"NF", "FT", "nogr"}, nil)
	if len(ks) == 0 {
		t.Fatal("expected variants")
	}
	if ks[0].Surface != "heftarar" {
		t.Fatalf("first variant: got %q, want heftarar", ks[0].Surface)
	}
	for _, k := range ks {
		if strings.Contains(k.Tag, "gr") {
			t.Errorf("nogr violated: %v", k)
		}
		for _, req := range []string{"NF", "FT"} {
			if !strings.Contains(k.Tag, req) {
				t.Errorf("requirement %q not in tag of %v", req, k)
			}
		}
	}
}

// TestLookupVariants_LowercaseRequirements tests the token spellings:
// lower-case feature names and Greynir-style person variants.
func TestLookupVariants_LowercaseRequirements(t *testing.T) {
	t.Parallel()

	b := openFixture(t, nil)

	upper := b.LookupVariants("heftaranum", "kk", []string{"NF", "FT", "nogr"}, nil)
	lower := b.LookupVariants("heftaranum", "kk", []string{"nf", "ft", "nogr"}, nil)
	if diff := cmp.Diff(upper, lower); diff != "" {
		t.Fatalf("lowercase requirements differ (-upper, +lower):\n%s", diff)
	}

	person := b.LookupVariants("fara", "so", []string{"p1"}, nil)
	for _, k := range person {
		if !strings.Contains(k.Tag, "1P") {
			t.Errorf("person requirement not honoured: %v", k)
		}
	}
}

// TestLookupVariants_NounAnyGender tests the pseudo-category "no".
func TestLookupVariants_NounAnyGender(t *testing.T) {
	t.Parallel()

	b := openFixture(t, nil)

	ks := b.LookupVariants("heftaranum", "no", []string{"NF", "ET"}, nil)
	found := false
	for _, k := range ks {
		if k.Surface == "heftari" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected surface heftari, got %v", ks)
	}

	// A verb seed is not accepted by the noun pseudo-category.
	if ks := b.LookupVariants("fara", "no", []string{"NF"}, nil); len(ks) != 0 {
		t.Fatalf("expected no variants for a verb seed, got %v", ks)
	}
}

// TestLookupVariants_Constraint tests the lemma, id and filter
// constraints.
func TestLookupVariants_Constraint(t *testing.T) {
	t.Parallel()

	b := openFixture(t, nil)

	// The seed form færi belongs to three lemmas; constrain to the
	// neuter noun.
	ks := b.LookupVariants("færi", "hk", []string{"ÞGF"}, &bin.Constraint{Lemma: "færi", ID: 1198})
	if len(ks) != 1 || ks[0].Tag != "ÞGFET" || ks[0].ID != 1198 {
		t.Fatalf("constrained variants: got %v", ks)
	}

	// A mismatched id yields nothing.
	if ks := b.LookupVariants("færi", "hk", []string{"ÞGF"}, &bin.Constraint{ID: 999}); len(ks) != 0 {
		t.Fatalf("expected no variants, got %v", ks)
	}

	// A tag filter applies after the requirements.
	ks = b.LookupVariants("heftaranum", "kk", []string{"NF"}, &bin.Constraint{
		Filter: func(tag string) bool { return strings.Contains(tag, "FT") },
	})
	for _, k := range ks {
		if !strings.Contains(k.Tag, "FT") {
			t.Errorf("filter violated: %v", k)
		}
	}
}

// TestLookupVariants_Compound tests variants of a synthetic compound:
// the suffix inflects and the prefix is carried over.
func TestLookupVariants_Compound(t *testing.T) {
	t.Parallel()

	b := openFixture(t, nil)

	ks := b.LookupVariants("hundakjóll", "kk", []string{"ÞF"}, nil)
	expectedSurface := "hunda-kjól"
	found := false
	for _, k := range ks {
		if k.Surface == expectedSurface {
			found = true
			if k.ID != 0 || k.Lemma != "hunda-kjóll" {
				t.Errorf("compound variant fields: %+v", k)
			}
		}
	}
	if !found {
		t.Fatalf("expected surface %q, got %v", expectedSurface, ks)
	}
}

// TestLookupVariants_Dedupe tests that variants deduplicate on surface
// and tag and honour every requirement.
func TestLookupVariants_Dedupe(t *testing.T) {
	t.Parallel()

	b := openFixture(t, nil)

	ks := b.LookupVariants("laga", "hk", []string{"EF"}, nil)
	type key struct{ surface, tag string }
	seen := map[key]struct{}{}
	for _, k := range ks {
		kk := key{k.Surface, k.Tag}
		if _, ok := seen[kk]; ok {
			t.Errorf("duplicate variant %v", k)
		}
		seen[kk] = struct{}{}
	}
}
