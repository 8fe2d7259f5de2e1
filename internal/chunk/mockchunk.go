// Package chunk implements the backing voxel store: a finite cubic array of
// Blocks, addressed by centered integer coordinates, with a miss returned
// for anything outside its bounds. Contents are loaded from an external
// blob; this package only owns the indexing rule.
package chunk

import (
	"fmt"
	"io"
	"os"

	"github.com/voxelrt/fpga-voxel-engine/internal/fixed"
	"github.com/voxelrt/fpga-voxel-engine/internal/voxel"
)

// Size is the chunk's edge length in voxels (reference value: 128).
const Size = 128

// MockChunk is a finite N^3 array of Blocks, indexed by centered Vec3i
// coordinates in [-N/2, N/2).
type MockChunk struct {
	n      int32
	blocks []voxel.Block
}

// NewEmpty builds an all-Air chunk of edge length n.
func NewEmpty(n int32) *MockChunk {
	return &MockChunk{n: n, blocks: make([]voxel.Block, int(n)*int(n)*int(n))}
}

// NewFromBytes wraps a raw blob of N^3 bytes, mapping unknown IDs
// to Air.
func NewFromBytes(n int32, raw []byte) (*MockChunk, error) {
	want := int(n) * int(n) * int(n)
	if len(raw) != want {
		return nil, fmt.Errorf("chunk: expected %d bytes for a %d^3 chunk, got %d", want, n, len(raw))
	}
	blocks := make([]voxel.Block, want)
	for i, b := range raw {
		blocks[i] = voxel.FromByte(b)
	}
	return &MockChunk{n: n, blocks: blocks}, nil
}

// Load reads a chunk blob from disk.
func Load(path string, n int32) (*MockChunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return NewFromBytes(n, raw)
}

// Size returns the chunk's edge length.
func (c *MockChunk) Size() int32 {
	return c.n
}

// SetVoxel overwrites a single voxel; used by tests and the procedural demo
// generator. Out-of-bounds writes are silently ignored.
func (c *MockChunk) SetVoxel(idx fixed.Vec3i, b voxel.Block) {
	i, ok := c.offset(idx)
	if !ok {
		return
	}
	c.blocks[i] = b
}

// Query returns the Block at idx, and false if idx falls outside the chunk
// (a "miss").
func (c *MockChunk) Query(idx fixed.Vec3i) (voxel.Block, bool) {
	i, ok := c.offset(idx)
	if !ok {
		return voxel.Air, false
	}
	return c.blocks[i], true
}

func (c *MockChunk) offset(idx fixed.Vec3i) (int, bool) {
	half := c.n / 2
	x := idx.X + half
	y := idx.Y + half
	z := idx.Z + half

	if x < 0 || x >= c.n || y < 0 || y >= c.n || z < 0 || z >= c.n {
		return 0, false
	}
	return int(c.n*(c.n*z+y) + x), true
}
