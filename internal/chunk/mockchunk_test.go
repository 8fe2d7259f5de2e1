package chunk

import (
	"testing"

	"github.com/voxelrt/fpga-voxel-engine/internal/fixed"
	"github.com/voxelrt/fpga-voxel-engine/internal/voxel"
)

func TestNewEmptyIsAllAir(t *testing.T) {
	c := NewEmpty(8)
	b, ok := c.Query(fixed.NewVec3i(0, 0, 0))
	if !ok || b != voxel.Air {
		t.Errorf("empty chunk center should be Air, got %v, ok=%v", b, ok)
	}
}

func TestSetVoxelAndQuery(t *testing.T) {
	c := NewEmpty(8)
	c.SetVoxel(fixed.NewVec3i(1, 2, 3), voxel.Stone)

	b, ok := c.Query(fixed.NewVec3i(1, 2, 3))
	if !ok || b != voxel.Stone {
		t.Errorf("Query after SetVoxel = (%v, %v), want (Stone, true)", b, ok)
	}
}

func TestQueryOutOfBoundsMisses(t *testing.T) {
	c := NewEmpty(8)
	cases := []fixed.Vec3i{
		fixed.NewVec3i(4, 0, 0),
		fixed.NewVec3i(-5, 0, 0),
		fixed.NewVec3i(0, 100, 0),
	}
	for _, idx := range cases {
		_, ok := c.Query(idx)
		if ok {
			t.Errorf("Query(%v) should miss, chunk size 8", idx)
		}
	}
}

func TestNewFromBytesMapsUnknownIDsToAir(t *testing.T) {
	raw := make([]byte, 2*2*2)
	raw[0] = byte(voxel.Stone)
	raw[1] = 200 // unknown tag

	c, err := NewFromBytes(2, raw)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}

	b, ok := c.Query(fixed.NewVec3i(-1, -1, -1))
	if !ok || b != voxel.Stone {
		t.Errorf("first voxel should be Stone, got %v", b)
	}

	b, ok = c.Query(fixed.NewVec3i(0, -1, -1))
	if !ok || b != voxel.Air {
		t.Errorf("unknown tag should map to Air, got %v", b)
	}
}

func TestNewFromBytesWrongLength(t *testing.T) {
	_, err := NewFromBytes(4, make([]byte, 3))
	if err == nil {
		t.Errorf("expected an error for a mis-sized blob")
	}
}

func TestGenerateGrassFloor(t *testing.T) {
	c := GenerateGrassFloor(8, 0)

	b, ok := c.Query(fixed.NewVec3i(1, 0, 1))
	if !ok || b != voxel.Grass {
		t.Errorf("floor voxel should be Grass, got %v", b)
	}

	b, ok = c.Query(fixed.NewVec3i(1, 1, 1))
	if !ok || b != voxel.Air {
		t.Errorf("above floor should be Air, got %v", b)
	}
}

func TestGenerateFilled(t *testing.T) {
	c := GenerateFilled(4, voxel.Stone)
	b, ok := c.Query(fixed.NewVec3i(0, 0, 0))
	if !ok || b != voxel.Stone {
		t.Errorf("filled chunk center should be Stone, got %v", b)
	}
}
