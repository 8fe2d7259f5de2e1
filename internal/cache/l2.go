package cache

import (
	"github.com/voxelrt/fpga-voxel-engine/internal/bench"
	"github.com/voxelrt/fpga-voxel-engine/internal/fixed"
	"github.com/voxelrt/fpga-voxel-engine/internal/voxel"
)

type entry struct {
	key     fixed.Vec3i
	value   voxel.Block
	present bool
}

// L2Cache is a P-port, S-entry fully-associative cache with FIFO
// replacement and static-priority miss arbitration toward a shared L3Cache
// Port and entry counts are fixed at construction time, since
// Go has no const-generic array lengths to mirror Rust's L2Cache<P, S>.
type L2Cache struct {
	Reset bool

	AddrIn      []fixed.Vec3i
	ReadEnabled []bool
	VoxelOut    []voxel.Block
	ValidOut    []bool

	L3 *L3Cache

	entries         []entry
	nextReplacement int

	counters    bench.L2Counters
	prevAddrIn  []fixed.Vec3i
	prevEnabled []bool
}

// NewL2Cache builds an L2Cache with the given port and entry counts, shared
// by every VTU and backed by l3.
func NewL2Cache(ports, entries int, l3 *L3Cache, counters bench.L2Counters) *L2Cache {
	return &L2Cache{
		AddrIn:      make([]fixed.Vec3i, ports),
		ReadEnabled: make([]bool, ports),
		VoxelOut:    make([]voxel.Block, ports),
		ValidOut:    make([]bool, ports),
		L3:          l3,
		entries:     make([]entry, entries),
		counters:    counters,
		prevAddrIn:  make([]fixed.Vec3i, ports),
		prevEnabled: make([]bool, ports),
	}
}

// Ports returns the number of ports this cache was constructed with.
func (l *L2Cache) Ports() int {
	return len(l.AddrIn)
}

// RisingClkEdge advances the cache by one tick.
func (l *L2Cache) RisingClkEdge() {
	if l.Reset {
		for i := range l.VoxelOut {
			l.VoxelOut[i] = voxel.Air
			l.ValidOut[i] = false
		}
		for i := range l.entries {
			l.entries[i] = entry{}
		}
		l.nextReplacement = 0
		for i := range l.prevEnabled {
			l.prevEnabled[i] = false
			l.prevAddrIn[i] = fixed.Vec3i{}
		}
		return
	}

	// 1. Answer each port's query from the entry array. A "new request" is a
	// rising read-enable edge or a changed address; re-asserting the same
	// address while stalled on a prior miss is not a fresh access, so the
	// benchmark counters track steps taken rather than ticks spent waiting.
	for i := range l.AddrIn {
		isNewRequest := l.ReadEnabled[i] && (!l.prevEnabled[i] || !l.prevAddrIn[i].Eq(l.AddrIn[i]))

		l.ValidOut[i] = false
		if l.ReadEnabled[i] {
			for _, e := range l.entries {
				if e.present && e.key.Eq(l.AddrIn[i]) {
					l.ValidOut[i] = true
					l.VoxelOut[i] = e.value
					break
				}
			}
			if isNewRequest {
				l.counters.RecordAccess(l.ValidOut[i])
			}
		}

		l.prevEnabled[i] = l.ReadEnabled[i]
		l.prevAddrIn[i] = l.AddrIn[i]
	}

	// 2. Fill from the previous tick's L3 result, if any.
	if l.L3.ValidOut {
		l.entries[l.nextReplacement] = entry{key: l.L3.AddrIn, value: l.L3.VoxelOut, present: true}
		l.nextReplacement = (l.nextReplacement + 1) % len(l.entries)
	}

	// 3. Static-priority miss arbitration: the lowest-indexed missing port
	// wins the shared L3 this tick.
	missIdx := -1
	for i := range l.AddrIn {
		if l.ReadEnabled[i] && !l.ValidOut[i] {
			missIdx = i
			break
		}
	}
	if missIdx >= 0 {
		l.L3.AddrIn = l.AddrIn[missIdx]
		l.L3.ReadEnabled = true
	} else {
		l.L3.ReadEnabled = false
	}
}
