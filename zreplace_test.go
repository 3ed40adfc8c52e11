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
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestReplaceZ tests the literal substitution cases.
func TestReplaceZ(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		expected string
	}{
		{in: "þýzk", expected: "þýsk"},
		{in: "lízt", expected: "líst"},
		{in: "setzt", expected: "sest"},
		{in: "zzz", expected: "sss"},
		{in: "hestur", expected: "hestur"},
		{in: "", expected: ""},
		{in: "Zeta", expected: "Zeta"},
	}
	for _, test := range tests {
		if got := replaceZ(test.in); got != test.expected {
			t.Errorf("replaceZ(%q): got %q, want %q", test.in, got, test.expected)
		}
	}
}

// TestReplaceZ_Properties verifies the normaliser's invariants with
// property-based testing.
func TestReplaceZ_Properties(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("no lowercase z remains", prop.ForAll(
		func(s string) bool {
			return !strings.Contains(replaceZ(s), "z")
		},
		gen.AlphaString(),
	))

	properties.Property("idempotent", prop.ForAll(
		func(s string) bool {
			once := replaceZ(s)
			return replaceZ(once) == once
		},
		gen.AlphaString(),
	))

	properties.Property("z-free input unchanged", prop.ForAll(
		func(s string) bool {
			if strings.Contains(s, "z") {
				return true
			}
			return replaceZ(s) == s
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
