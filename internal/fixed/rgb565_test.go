package fixed

import "testing"

func TestRgb565PackUnpackLossy(t *testing.T) {
	c := NewRgb565(255, 255, 255)
	if c.R() != 248 || c.G() != 252 || c.B() != 248 {
		t.Errorf("white round-trip = (%d, %d, %d), want (248, 252, 248)", c.R(), c.G(), c.B())
	}

	black := NewRgb565(0, 0, 0)
	if black.Packed() != 0 {
		t.Errorf("black should pack to 0, got %d", black.Packed())
	}
}

func TestRgb565MulFixedFull(t *testing.T) {
	c := NewRgb565(100, 150, 200)
	lit := c.MulFixed(FromFloat32(1.0))
	if lit.Packed() != c.Packed() {
		t.Errorf("multiplying by 1.0 should be a no-op: %v != %v", lit, c)
	}
}

func TestRgb565MulFixedDark(t *testing.T) {
	c := NewRgb565(100, 150, 200)
	dark := c.MulFixed(FromFloat32(0.0))
	if dark.Packed() != 0 {
		t.Errorf("multiplying by 0.0 should produce black, got %v", dark)
	}
}
