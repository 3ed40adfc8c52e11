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

// Package cbin implements reading the compressed BÍN image.
//
// The image is a single binary file with a 16-byte signature, eight
// little-endian section offsets, and the sections themselves: the
// packed meaning records, the surface-form radix trie, the lemma,
// template, meaning, subcategory and ksnid tables, and the compression
// alphabet. All surface forms and lemma strings inside the image are
// in a single-byte Latin-1 encoding.
package cbin

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mideind/go-bin/blob"
	"github.com/mideind/go-bin/internal/latin"
)

// Signature is the fixed prefix of a compatible image file.
const Signature = "Greynir 04.00.00"

// headerLen is the signature plus the eight section offsets.
const headerLen = 16 + 8*4

// maxAlphabet is the largest alphabet that the trie header layout can
// index (7 bits, with index zero reserved).
const maxAlphabet = 127

var (
	// ErrTooSmall indicates a truncated image file.
	ErrTooSmall = errors.New("image too small")

	// ErrBadSignature indicates a file that is not a compatible image.
	ErrBadSignature = errors.New("bad image signature")

	// errBadOffsets indicates section offsets pointing outside the image.
	errBadOffsets = errors.New("inconsistent section offsets")
)

// Image is a read-only, memory-resident BÍN image.
type Image struct {
	b *blob.Blob

	// Section offsets, in file order.
	mappings  uint32
	forms     uint32
	lemmas    uint32
	templates uint32
	meanings  uint32
	alphabet  uint32
	subcats   uint32
	ksnid     uint32

	rootHdr    uint32
	alpha      []byte
	alphaIndex [256]int16
	subcatList []string
	lemmaCount uint32
}

// Open opens and validates the image at path.
func Open(path string) (*Image, error) {
	b, err := blob.Open(path)
	if err != nil {
		return nil, err
	}
	im, err := New(b)
	if err != nil {
		b.Close()
		return nil, err
	}
	return im, nil
}

// FromBytes constructs an Image over an in-memory byte slice.
func FromBytes(data []byte) (*Image, error) {
	return New(blob.FromBytes(data))
}

// New constructs an Image over an already opened blob. The Image takes
// ownership of the blob.
func New(b *blob.Blob) (*Image, error) {
	if b.Len() < headerLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooSmall, b.Len())
	}
	sig := b.Bytes(0, 16)
	if !bytes.Equal(sig, []byte(Signature)) {
		return nil, fmt.Errorf("%w: %q", ErrBadSignature, sig)
	}

	im := &Image{b: b}
	offs := []*uint32{
		&im.mappings, &im.forms, &im.lemmas, &im.templates,
		&im.meanings, &im.alphabet, &im.subcats, &im.ksnid,
	}
	for i, p := range offs {
		*p = b.U32(uint32(16 + 4*i))
		if int64(*p) > int64(b.Len()) {
			return nil, fmt.Errorf("%w: section %d at %d", errBadOffsets, i, *p)
		}
	}
	if im.templates < im.lemmas {
		return nil, fmt.Errorf("%w: templates before lemmas", errBadOffsets)
	}
	im.lemmaCount = (im.templates - im.lemmas) / lemmaStride

	// The trie root header is read once; every lookup starts from it.
	im.rootHdr = b.U32(im.forms)

	alphaLen := b.U32(im.alphabet)
	if alphaLen == 0 || alphaLen > maxAlphabet {
		return nil, fmt.Errorf("%w: alphabet of %d bytes", ErrBadSignature, alphaLen)
	}
	im.alpha = b.Bytes(im.alphabet+4, alphaLen)
	if im.alpha == nil {
		return nil, fmt.Errorf("%w: alphabet", errBadOffsets)
	}
	for i := range im.alphaIndex {
		im.alphaIndex[i] = -1
	}
	for i, c := range im.alpha {
		im.alphaIndex[c] = int16(i)
	}

	// Decode the subcategory (domain) name table.
	nsub := b.U32(im.subcats)
	if nsub > 1024 {
		return nil, fmt.Errorf("%w: %d subcategories", errBadOffsets, nsub)
	}
	for i := uint32(0); i < nsub; i++ {
		off := b.U32(im.subcats + 4 + 4*i)
		n := uint32(b.U8(off))
		s := b.Bytes(off+1, n)
		if s == nil && n > 0 {
			return nil, fmt.Errorf("%w: subcats", errBadOffsets)
		}
		im.subcatList = append(im.subcatList, latin.Decode(s))
	}

	return im, nil
}

// Close releases the underlying mapping.
func (im *Image) Close() error {
	//nolint:wrapcheck // blob errors are already wrapped
	return im.b.Close()
}

// Alphabet returns the compression alphabet: the i-th byte is the
// Latin-1 byte for compressed letter index i.
func (im *Image) Alphabet() []byte {
	return im.alpha
}

// AlphaIndex returns the compressed letter index for a Latin-1 byte,
// or -1 if the byte is not in the alphabet.
func (im *Image) AlphaIndex(c byte) int {
	return int(im.alphaIndex[c])
}

// LemmaCount returns the number of lemma records, including the
// reserved record 0.
func (im *Image) LemmaCount() int {
	return int(im.lemmaCount)
}

// Subcat resolves a subcategory index to its name.
func (im *Image) Subcat(ix int) string {
	if ix < 0 || ix >= len(im.subcatList) {
		return ""
	}
	return im.subcatList[ix]
}
