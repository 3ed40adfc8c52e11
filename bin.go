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
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mideind/go-bin/cbin"
	"github.com/mideind/go-bin/dawg"
	"github.com/mideind/go-bin/internal/cache"
	"github.com/mideind/go-bin/internal/latin"
	"github.com/mideind/go-bin/internal/metrics"
)

// Options configure a Bin engine.
type Options struct {
	// Prefixes and Suffixes are the paths of the two compound-word
	// DAWG files. When empty, prefixes.dawg and suffixes.dawg next to
	// the main image are used. A missing DAWG file silently disables
	// the compound analyser; direct lookups are unaffected.
	Prefixes string
	Suffixes string

	// AddCompounds enables compound-word analysis for words not found
	// in the image.
	AddCompounds bool

	// ReplaceZ applies the spelling modernisations tzt->st and z->s
	// before lookup.
	ReplaceZ bool

	// AddNegation and AddLegur are accepted for configuration
	// compatibility. The result augmentations they name are produced
	// by an upstream collaborator, not by this engine.
	AddNegation bool
	AddLegur    bool

	// OnlyBin disables all augmentations and modifications above,
	// returning image content only.
	OnlyBin bool

	// MeaningCacheSize and SplitCacheSize bound the two lookup caches.
	MeaningCacheSize int
	SplitCacheSize   int

	// Registerer optionally receives the engine's Prometheus
	// collectors.
	Registerer prometheus.Registerer
}

// DefaultOptions are the options used when Open is given nil options.
var DefaultOptions = &Options{
	AddCompounds:     true,
	ReplaceZ:         true,
	AddNegation:      true,
	AddLegur:         true,
	MeaningCacheSize: 1000,
	SplitCacheSize:   500,
}

// Bin is a BÍN lookup engine. The image and DAWGs are immutable after
// Open; a single engine may be shared by concurrent goroutines.
type Bin struct {
	im       *cbin.Image
	prefixes *dawg.Dawg
	suffixes *dawg.Dawg

	addCompounds bool
	replaceZ     bool

	meaningCache *cache.LRU[[]Ksnid]
	splitCache   *cache.LRU[int]
	metrics      *metrics.Metrics
}

// Open opens the compressed image at path and the two compound DAWGs.
// A nil options value is equivalent to DefaultOptions.
func Open(path string, options *Options) (*Bin, error) {
	if options == nil {
		options = DefaultOptions
	}

	im, err := cbin.Open(path)
	if err != nil {
		return nil, err
	}

	b := &Bin{
		im:           im,
		addCompounds: options.AddCompounds && !options.OnlyBin,
		replaceZ:     options.ReplaceZ && !options.OnlyBin,
		meaningCache: cache.New[[]Ksnid](options.MeaningCacheSize),
		splitCache:   cache.New[int](options.SplitCacheSize),
		metrics:      metrics.New(options.Registerer),
	}

	if b.addCompounds {
		dir := filepath.Dir(path)
		prefixes := options.Prefixes
		if prefixes == "" {
			prefixes = filepath.Join(dir, "prefixes.dawg")
		}
		suffixes := options.Suffixes
		if suffixes == "" {
			suffixes = filepath.Join(dir, "suffixes.dawg")
		}
		// Missing or invalid DAWGs disable the compound path only.
		if pd, err := dawg.Open(prefixes); err == nil {
			b.prefixes = pd
		}
		if sd, err := dawg.Open(suffixes); err == nil {
			b.suffixes = sd
		}
		if b.prefixes == nil || b.suffixes == nil {
			b.closeDawgs()
			b.addCompounds = false
		}
	}

	return b, nil
}

func (b *Bin) closeDawgs() {
	if b.prefixes != nil {
		b.prefixes.Close()
		b.prefixes = nil
	}
	if b.suffixes != nil {
		b.suffixes.Close()
		b.suffixes = nil
	}
}

// Close releases the image and DAWG mappings. The engine must not be
// used after Close.
func (b *Bin) Close() error {
	b.closeDawgs()
	//nolint:wrapcheck // image errors are already wrapped
	return b.im.Close()
}

// rawLookup fetches the undecorated augmented entries of a single
// word, bypassing normalisation and the compound analyser. The surface
// of every returned entry is the word itself.
func (b *Bin) rawLookup(word string) []Ksnid {
	wl, ok := latin.Encode(word)
	if !ok {
		// A word with code points above U+00FF cannot be in the trie.
		return nil
	}
	off, ok := b.im.Mapping(wl)
	if !ok {
		return nil
	}
	var out []Ksnid
	for _, ref := range b.im.Refs(off) {
		cat, tag, ok := b.im.Meaning(ref.Meaning)
		if !ok {
			continue
		}
		lemma, domain, ok := b.im.Lemma(ref.Lemma)
		if !ok {
			continue
		}
		k := defaultKsnid
		if ref.Ksnid != 0 {
			if s, ok := b.im.KsnidString(ref.Ksnid); ok {
				parseKsnid(s, &k)
			}
		}
		k.Lemma = latin.Decode(lemma)
		k.ID = int(ref.Lemma)
		k.Cat = cat
		k.Domain = domain
		k.Surface = word
		k.Tag = tag
		out = append(out, k)
	}
	return out
}

// cachedLookup is rawLookup behind the meaning cache.
func (b *Bin) cachedLookup(word string) []Ksnid {
	if m, ok := b.meaningCache.Get(word); ok {
		b.metrics.CacheHits.Inc()
		return m
	}
	b.metrics.CacheMisses.Inc()
	m := b.rawLookup(word)
	b.meaningCache.Put(word, m)
	return m
}
