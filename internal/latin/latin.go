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

// Package latin bridges the engine's internal single-byte encoding
// (a Latin-1 superset restricted to the BÍN alphabet) and the UTF-8
// strings of the public API.
package latin

import (
	"golang.org/x/text/encoding/charmap"
)

// Encode converts a UTF-8 string to Latin-1 bytes. It returns false if
// the string contains a code point above U+00FF; such a word cannot
// occur in the image and the caller should treat it as unknown.
func Encode(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			return nil, false
		}
		out = append(out, b)
	}
	return out, true
}

// Decode converts Latin-1 bytes to a UTF-8 string. The conversion is
// total: every byte maps to the code point with the same value.
func Decode(b []byte) string {
	out := make([]rune, len(b))
	for i, c := range b {
		out[i] = charmap.ISO8859_1.DecodeByte(c)
	}
	return string(out)
}
