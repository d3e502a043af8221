// Copyright (c) 2025 The E9th developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync/atomic"

	"github.com/VltrnOne/E9th/metrics"
)

var metricCacheLookups = metrics.LazyLoadCounterVec("cache_lookups_total", []string{"cache", "result"})

// Stats is a utility for collecting cache hit/miss.
type Stats struct {
	name      string
	hit, miss atomic.Int64
}

// NewStats creates counters reported under name.
func NewStats(name string) *Stats {
	return &Stats{name: name}
}

// Hit records a hit.
func (cs *Stats) Hit() int64 {
	metricCacheLookups().AddWithLabel(1, map[string]string{"cache": cs.name, "result": "hit"})
	return cs.hit.Add(1)
}

// Miss records a miss.
func (cs *Stats) Miss() int64 {
	metricCacheLookups().AddWithLabel(1, map[string]string{"cache": cs.name, "result": "miss"})
	return cs.miss.Add(1)
}

// Stats returns the number of hits and misses.
func (cs *Stats) Stats() (hit, miss int64) {
	return cs.hit.Load(), cs.miss.Load()
}

// HitRate is hits over lookups, 0 before the first lookup.
func (cs *Stats) HitRate() float64 {
	hit, miss := cs.Stats()
	if hit+miss == 0 {
		return 0
	}
	return float64(hit) / float64(hit+miss)
}
