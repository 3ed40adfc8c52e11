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

// Package metrics provides optional Prometheus instrumentation for the
// lookup engine. When no registerer is supplied the counters still
// exist but are not exported anywhere; updating them is cheap enough
// that the engine does not branch on it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's counters.
type Metrics struct {
	Lookups       prometheus.Counter
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
	CompoundRuns  prometheus.Counter
	CompoundHits  prometheus.Counter
	VariantRuns   prometheus.Counter
}

// New creates the engine counters and registers them with reg when reg
// is non-nil.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Lookups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bin_lookups_total",
			Help: "Number of surface-form lookups.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bin_cache_hits_total",
			Help: "Number of lookups answered from the meaning cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bin_cache_misses_total",
			Help: "Number of lookups that missed the meaning cache.",
		}),
		CompoundRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bin_compound_analyses_total",
			Help: "Number of compound-word analyses attempted.",
		}),
		CompoundHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bin_compound_hits_total",
			Help: "Number of compound-word analyses that produced entries.",
		}),
		VariantRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bin_variant_lookups_total",
			Help: "Number of variant enumerations.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.Lookups, m.CacheHits, m.CacheMisses,
			m.CompoundRuns, m.CompoundHits, m.VariantRuns,
		)
	}
	return m
}
