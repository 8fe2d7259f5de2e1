// Package cache implements the engine's memory hierarchy: a single-port
// L3Cache modelling DRAM latency in front of the backing chunk store, and a
// multi-port L2Cache with FIFO replacement and static-priority miss
// arbitration toward it.
package cache

import (
	"github.com/voxelrt/fpga-voxel-engine/internal/fixed"
	"github.com/voxelrt/fpga-voxel-engine/internal/voxel"
)

// ChunkSource is anything that answers voxel queries by centered index; the
// production backing store is *chunk.MockChunk, but tests may substitute a
// smaller fake.
type ChunkSource interface {
	Query(idx fixed.Vec3i) (voxel.Block, bool)
}

// L3Cache is a single-port clocked cache in front of a ChunkSource. It
// models a multi-cycle DRAM latency: StallCycles additional ticks of
// ValidOut=false are inserted between a read request and its result,
// so tests can tolerate any finite stall.
type L3Cache struct {
	Reset       bool
	AddrIn      fixed.Vec3i
	ReadEnabled bool

	VoxelOut voxel.Block
	ValidOut bool

	// StallCycles is the number of extra idle ticks before a pending read
	// resolves. Zero means a read resolves on the very next tick.
	StallCycles int

	source  ChunkSource
	pending bool
	left    int
}

// NewL3Cache wires an L3Cache to its backing store.
func NewL3Cache(source ChunkSource) *L3Cache {
	return &L3Cache{source: source}
}

// RisingClkEdge advances the cache by one tick.
func (l *L3Cache) RisingClkEdge() {
	if l.Reset {
		l.VoxelOut = voxel.Air
		l.ValidOut = false
		l.pending = false
		l.left = 0
		return
	}

	if !l.ReadEnabled {
		l.ValidOut = false
		l.pending = false
		return
	}

	if !l.pending {
		l.pending = true
		l.left = l.StallCycles
	}

	if l.left > 0 {
		l.left--
		l.ValidOut = false
		return
	}

	block, ok := l.source.Query(l.AddrIn)
	if !ok {
		block = voxel.Air
	}
	l.VoxelOut = block
	l.ValidOut = true
	l.pending = false
}
