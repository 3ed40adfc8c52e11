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

// Package bin implements a read-only, memory-resident lookup engine
// for the Database of Icelandic Morphology (Beygingarlýsing íslensks
// nútímamáls, BÍN) in pure Go.
//
// The engine consumes three binary files:
//  1. The compressed main image, holding a radix trie over all surface
//     forms, packed meaning records, and the lemma, meaning,
//     subcategory and ksnid tables. See the cbin package.
//  2. A DAWG of word forms allowed as the leading parts of compound
//     words.
//  3. A DAWG of word forms allowed as the final part of compound
//     words. See the dawg package.
//
// Given a surface form, the engine answers which lemmas, word classes
// and grammatical tags it can carry, falls back to compound-word
// analysis for unknown words, and can enumerate alternative inflected
// forms of the same lemma. All lookups are read-only and safe for
// concurrent use.
package bin
