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

package dawg_test

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mideind/go-bin/dawg"
	"github.com/mideind/go-bin/internal/latin"
	"github.com/mideind/go-bin/internal/testutil"
)

func mustLatin(t *testing.T, s string) []byte {
	t.Helper()
	b, ok := latin.Encode(s)
	require.True(t, ok, "not latin-1: %q", s)
	return b
}

func TestDawg_Contains(t *testing.T) {
	t.Parallel()

	d, err := dawg.FromBytes(testutil.BuildDawg("hunda", "hundakofa", "síamskattar", "kjólanna"))
	require.NoError(t, err)

	for _, w := range []string{"hunda", "hundakofa", "síamskattar", "kjólanna"} {
		assert.True(t, d.Contains(mustLatin(t, w)), "expected %q in dawg", w)
	}
	for _, w := range []string{"", "h", "hund", "hundak", "hundakofar", "kjóll", "xyz"} {
		assert.False(t, d.Contains(mustLatin(t, w)), "expected %q not in dawg", w)
	}
}

func TestDawg_Splits(t *testing.T) {
	t.Parallel()

	d, err := dawg.FromBytes(testutil.BuildDawg("hunda", "hundakofa", "síamskattar"))
	require.NoError(t, err)

	tests := []struct {
		word     string
		expected []int
	}{
		// Both "hunda" and "hundakofa" are prefixes of the word.
		{word: "hundakofakjólanna", expected: []int{5, 9}},
		{word: "hundamatur", expected: []int{5}},
		{word: "síamskattarkjólanna", expected: []int{11}},
		// A whole word yields no proper split.
		{word: "hunda", expected: nil},
		{word: "kettir", expected: nil},
	}
	for _, test := range tests {
		wl := mustLatin(t, test.word)
		if diff := cmp.Diff(test.expected, d.Splits(wl)); diff != "" {
			t.Errorf("Splits(%q) (-want, +got):\n%s", test.word, diff)
		}
	}
}

func TestDawg_Errors(t *testing.T) {
	t.Parallel()

	_, err := dawg.FromBytes([]byte("xx"))
	assert.ErrorIs(t, err, dawg.ErrTooSmall)

	bad := testutil.BuildDawg("orð")
	bad[0] = 'X'
	_, err = dawg.FromBytes(bad)
	assert.ErrorIs(t, err, dawg.ErrBadSignature)

	wrongVer := testutil.BuildDawg("orð")
	binary.LittleEndian.PutUint32(wrongVer[4:], 2)
	_, err = dawg.FromBytes(wrongVer)
	assert.ErrorIs(t, err, dawg.ErrBadVersion)

	truncated := testutil.BuildDawg("orð")
	binary.LittleEndian.PutUint32(truncated[8:], 1<<20)
	_, err = dawg.FromBytes(truncated)
	assert.ErrorIs(t, err, dawg.ErrTooSmall)
}

func TestDawg_OpenFile(t *testing.T) {
	t.Parallel()

	d, err := dawg.Open(testutil.WriteFile(t, "prefixes.dawg", testutil.BuildDawg("hunda")))
	require.NoError(t, err)
	defer d.Close()

	assert.True(t, d.Contains(mustLatin(t, "hunda")))

	_, err = dawg.Open("no-such-file.dawg")
	assert.Error(t, err)
}
