// Package bench provides the engine's diagnostics surface: named cycle
// counters and the L2 cache's access/hit-ratio counters, rendered on demand
// as a human-readable report instead of structured metrics.
package bench

import (
	"fmt"
	"sort"
	"strings"
)

// Profiler accumulates named counters across a run. It is not safe for
// concurrent use; the engine is single-threaded by design.
type Profiler struct {
	counts map[string]uint64
	order  []string
}

// NewProfiler builds an empty Profiler.
func NewProfiler() *Profiler {
	return &Profiler{counts: make(map[string]uint64)}
}

// Incr bumps a named counter by delta, registering it on first use.
func (p *Profiler) Incr(name string, delta uint64) {
	if _, ok := p.counts[name]; !ok {
		p.order = append(p.order, name)
	}
	p.counts[name] += delta
}

// Count returns the current value of a named counter.
func (p *Profiler) Count(name string) uint64 {
	return p.counts[name]
}

// Reset zeroes every counter without forgetting their names/order.
func (p *Profiler) Reset() {
	for k := range p.counts {
		p.counts[k] = 0
	}
}

// Stats renders a human-readable counter report, sorted by counter name.
func (p *Profiler) Stats() string {
	var sb strings.Builder
	keys := make([]string, 0, len(p.counts))
	for k := range p.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "  %-24s: %d\n", k, p.counts[k])
	}
	return sb.String()
}

// L2Counters is the benchmark surface for the shared L2 cache: total accesses and
// hit ratio for the shared L2 cache, resettable on demand.
type L2Counters struct {
	p *Profiler
}

// NewL2Counters wraps a Profiler with the two named counters the L2 cache
// needs.
func NewL2Counters(p *Profiler) L2Counters {
	return L2Counters{p: p}
}

const (
	l2AccessCounter = "l2_accesses"
	l2HitCounter    = "l2_hits"
)

// RecordAccess records one port read this tick, and whether it hit.
func (c L2Counters) RecordAccess(hit bool) {
	c.p.Incr(l2AccessCounter, 1)
	if hit {
		c.p.Incr(l2HitCounter, 1)
	}
}

// TotalAccesses returns the number of L2 accesses since the last reset.
func (c L2Counters) TotalAccesses() uint64 {
	return c.p.Count(l2AccessCounter)
}

// HitRatio returns hits/accesses since the last reset, or 0 if there have
// been no accesses.
func (c L2Counters) HitRatio() float64 {
	total := c.p.Count(l2AccessCounter)
	if total == 0 {
		return 0
	}
	return float64(c.p.Count(l2HitCounter)) / float64(total)
}

// Reset zeroes both counters, keeping the underlying Profiler's other
// counters untouched.
func (c L2Counters) Reset() {
	c.p.counts[l2AccessCounter] = 0
	c.p.counts[l2HitCounter] = 0
}
