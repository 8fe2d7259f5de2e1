package engine

import (
	"github.com/voxelrt/fpga-voxel-engine/internal/fixed"
	"github.com/voxelrt/fpga-voxel-engine/internal/voxel"
)

// shade applies the single directional sun light to a hit voxel: sky blue
// for a miss, flat-shaded block colors otherwise.
func shade(b voxel.Block, normal fixed.Vec3) fixed.Rgb565 {
	if b == voxel.Air {
		return fixed.NewRgb565(174, 200, 235)
	}

	light := fixed.FromFloat32(0.4).Add(fixed.FromFloat32(0.2).Mul(normal.Dot(sun)))

	var base fixed.Rgb565
	switch b {
	case voxel.Water:
		base = fixed.NewRgb565(52, 67, 138)
	case voxel.Grass:
		base = fixed.NewRgb565(90, 133, 77)
	case voxel.Dirt:
		base = fixed.NewRgb565(133, 96, 77)
	case voxel.OakLog:
		base = fixed.NewRgb565(91, 58, 42)
	case voxel.OakLeaves:
		base = fixed.NewRgb565(129, 165, 118)
	default:
		base = fixed.NewRgb565(82, 70, 84)
	}

	return base.MulFixed(light)
}
