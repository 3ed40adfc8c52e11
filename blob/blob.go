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

// Package blob implements a bounds-checked, read-only view over a
// memory-mapped binary image file.
//
// All multi-byte reads are little-endian. Out-of-range reads return a
// zero value or nil slice; they never fault. Images may optionally be
// gzip- or dictzip-compressed, in which case the file is inflated into
// memory instead of mapped.
package blob

import (
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ianlewis/go-dictzip"
	"golang.org/x/exp/mmap"
)

// ErrOpen indicates that the image file could not be opened or mapped.
var ErrOpen = errors.New("opening image")

// Blob is a read-only byte image. The zero value is an empty image.
type Blob struct {
	// r is the memory mapping, nil when the image was inflated into
	// memory or constructed from a byte slice.
	r    *mmap.ReaderAt
	data []byte
	size int
}

// Open opens the image at path. Files ending in .gz or .dz are
// inflated into memory; anything else is memory-mapped read-only.
func Open(path string) (*Blob, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".gz"):
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrOpen, path, err)
		}
		defer f.Close()
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrOpen, path, err)
		}
		defer z.Close()
		data, err := io.ReadAll(z)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrOpen, path, err)
		}
		return FromBytes(data), nil
	case strings.HasSuffix(strings.ToLower(path), ".dz"):
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrOpen, path, err)
		}
		defer f.Close()
		z, err := dictzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrOpen, path, err)
		}
		defer z.Close()
		data, err := io.ReadAll(z)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrOpen, path, err)
		}
		return FromBytes(data), nil
	default:
		r, err := mmap.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrOpen, path, err)
		}
		return &Blob{r: r, size: r.Len()}, nil
	}
}

// FromBytes wraps an in-memory byte slice as a Blob. The slice is not
// copied and must not be mutated afterwards.
func FromBytes(data []byte) *Blob {
	return &Blob{data: data, size: len(data)}
}

// Close releases the mapping, if any. The Blob must not be used after
// Close.
func (b *Blob) Close() error {
	b.data = nil
	b.size = 0
	if b.r != nil {
		r := b.r
		b.r = nil
		if err := r.Close(); err != nil {
			return fmt.Errorf("closing image: %w", err)
		}
	}
	return nil
}

// Len returns the image size in bytes.
func (b *Blob) Len() int {
	return b.size
}

// U8 returns the byte at off, or 0 if off is out of range.
func (b *Blob) U8(off uint32) byte {
	if int64(off) >= int64(b.size) {
		return 0
	}
	if b.data != nil {
		return b.data[off]
	}
	return b.r.At(int(off))
}

// U16 returns the little-endian uint16 at off, or 0 if out of range.
func (b *Blob) U16(off uint32) uint16 {
	if int64(off)+2 > int64(b.size) {
		return 0
	}
	if b.data != nil {
		return binary.LittleEndian.Uint16(b.data[off:])
	}
	var buf [2]byte
	if _, err := b.r.ReadAt(buf[:], int64(off)); err != nil {
		return 0
	}
	return binary.LittleEndian.Uint16(buf[:])
}

// U32 returns the little-endian uint32 at off, or 0 if out of range.
func (b *Blob) U32(off uint32) uint32 {
	if int64(off)+4 > int64(b.size) {
		return 0
	}
	if b.data != nil {
		return binary.LittleEndian.Uint32(b.data[off:])
	}
	var buf [4]byte
	if _, err := b.r.ReadAt(buf[:], int64(off)); err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(buf[:])
}

// Bytes returns a copy of n bytes starting at off, or nil if the range
// is out of bounds.
func (b *Blob) Bytes(off, n uint32) []byte {
	if n == 0 || int64(off)+int64(n) > int64(b.size) {
		return nil
	}
	out := make([]byte, n)
	if b.data != nil {
		copy(out, b.data[off:])
		return out
	}
	if _, err := b.r.ReadAt(out, int64(off)); err != nil {
		return nil
	}
	return out
}

// CStr returns a copy of the zero-terminated byte string at off,
// excluding the terminator, or nil if no terminator is found before
// the end of the image.
func (b *Blob) CStr(off uint32) []byte {
	if b.data != nil {
		if int64(off) >= int64(b.size) {
			return nil
		}
		for i := off; int64(i) < int64(b.size); i++ {
			if b.data[i] == 0 {
				out := make([]byte, i-off)
				copy(out, b.data[off:i])
				return out
			}
		}
		return nil
	}
	out := []byte{}
	var buf [64]byte
	pos := int64(off)
	for pos < int64(b.size) {
		n := int64(len(buf))
		if pos+n > int64(b.size) {
			n = int64(b.size) - pos
		}
		if _, err := b.r.ReadAt(buf[:n], pos); err != nil {
			return nil
		}
		for i := int64(0); i < n; i++ {
			if buf[i] == 0 {
				return append(out, buf[:i]...)
			}
		}
		out = append(out, buf[:n]...)
		pos += n
	}
	return nil
}
