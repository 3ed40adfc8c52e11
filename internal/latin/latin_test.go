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

package latin_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mideind/go-bin/internal/latin"
)

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string

		expected []byte
		ok       bool
	}{
		{
			name:     "ascii",
			in:       "hestur",
			expected: []byte("hestur"),
			ok:       true,
		},
		{
			name:     "icelandic letters",
			in:       "þýskur",
			expected: []byte{0xFE, 0xFD, 's', 'k', 'u', 'r'},
			ok:       true,
		},
		{
			name:     "empty",
			in:       "",
			expected: []byte{},
			ok:       true,
		},
		{
			name: "outside latin-1",
			in:   "日本語",
			ok:   false,
		},
		{
			name: "mixed",
			in:   "færi𝄞",
			ok:   false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, ok := latin.Encode(test.in)
			if ok != test.ok {
				t.Fatalf("Encode ok: got %v, want %v", ok, test.ok)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Encode (-want, +got):\n%s", diff)
			}
			if back := latin.Decode(got); back != test.in {
				t.Fatalf("Decode: got %q, want %q", back, test.in)
			}
		})
	}
}
