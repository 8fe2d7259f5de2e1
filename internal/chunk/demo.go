package chunk

import (
	"github.com/voxelrt/fpga-voxel-engine/internal/fixed"
	"github.com/voxelrt/fpga-voxel-engine/internal/voxel"
)

// GenerateGrassFloor fills every voxel at y == floorY with Grass, Air
// elsewhere — a stand-in world for quick visual iteration and for the
// "lower half Grass, upper half sky" end-to-end scenario.
func GenerateGrassFloor(n int32, floorY int32) *MockChunk {
	c := NewEmpty(n)
	half := n / 2
	for z := -half; z < half; z++ {
		for x := -half; x < half; x++ {
			c.SetVoxel(fixed.NewVec3i(x, floorY, z), voxel.Grass)
		}
	}
	return c
}

// GenerateSlab fills every voxel with zLo <= z < zHi with the given block.
func GenerateSlab(n int32, zLo, zHi int32, b voxel.Block) *MockChunk {
	c := NewEmpty(n)
	half := n / 2
	for z := zLo; z < zHi; z++ {
		for y := -half; y < half; y++ {
			for x := -half; x < half; x++ {
				c.SetVoxel(fixed.NewVec3i(x, y, z), b)
			}
		}
	}
	return c
}

// GenerateFilled fills the entire chunk with the given block.
func GenerateFilled(n int32, b voxel.Block) *MockChunk {
	return GenerateSlab(n, -n/2, n/2, b)
}
