// Package fixed implements the signed fixed-point arithmetic substrate the
// rest of the engine runs on: Fixed scalars, Vec3/Vec3i vectors and the
// packed Rgb565 color used by the framebuffer. Every operation here must be
// pure and deterministic so that two identically-clocked runs produce
// bit-identical framebuffers (see the "Frame reproducibility" scenario).
package fixed

import (
	"fmt"
	"math"
	"math/bits"
)

// Fixed is a signed fixed-point number: raw interpreted as raw * 2^-D.
type Fixed struct {
	raw int32
}

// D is the number of fractional bits. The reference implementation uses 15;
// callers needing a different trade-off between range and precision can
// recompile with a different D in [8, 20].
const D = 15

// B is the bit width of the raw representation used by the inv_sqrt LUT.
const B = 32

var (
	// MaxFixed is the largest representable value.
	MaxFixed = Fixed{raw: math.MaxInt32}
	// MinFixed is the smallest representable value.
	MinFixed = Fixed{raw: math.MinInt32}
)

// FromRaw builds a Fixed directly from its raw representation.
func FromRaw(raw int32) Fixed {
	return Fixed{raw: raw}
}

// Raw returns the underlying fixed-point representation.
func (f Fixed) Raw() int32 {
	return f.raw
}

// FromFloat32 converts an IEEE-754 float to Fixed via round-to-zero(x * 2^D).
func FromFloat32(x float32) Fixed {
	return Fixed{raw: int32(x * float32(int64(1)<<D))}
}

// FromInt converts a small signed integer to a whole-number Fixed.
func FromInt(v int16) Fixed {
	return Fixed{raw: int32(v) << D}
}

// Float32 converts back to an approximate IEEE-754 float, for logging/tests.
func (f Fixed) Float32() float32 {
	return float32(f.raw) / float32(int64(1)<<D)
}

// Floor truncates toward negative infinity and returns a plain signed int.
func (f Fixed) Floor() int32 {
	return f.raw >> D
}

// Add returns f + g. Overflow wraps silently.
func (f Fixed) Add(g Fixed) Fixed {
	return Fixed{raw: f.raw + g.raw}
}

// Sub returns f - g. Overflow wraps silently.
func (f Fixed) Sub(g Fixed) Fixed {
	return Fixed{raw: f.raw - g.raw}
}

// Neg returns -f.
func (f Fixed) Neg() Fixed {
	return Fixed{raw: -f.raw}
}

// Mul multiplies using a 64-bit intermediate, then shifts right by D.
func (f Fixed) Mul(g Fixed) Fixed {
	wide := (int64(f.raw) * int64(g.raw)) >> D
	return Fixed{raw: int32(wide)}
}

// Abs returns the absolute value of f.
func (f Fixed) Abs() Fixed {
	if f.raw < 0 {
		return Fixed{raw: -f.raw}
	}
	return f
}

// Sign returns -1, 0 or 1 matching the sign of the raw value.
func (f Fixed) Sign() int32 {
	switch {
	case f.raw > 0:
		return 1
	case f.raw < 0:
		return -1
	default:
		return 0
	}
}

// Eq, Lt, Gt compare two Fixed values.
func (f Fixed) Eq(g Fixed) bool { return f.raw == g.raw }
func (f Fixed) Lt(g Fixed) bool { return f.raw < g.raw }
func (f Fixed) Gt(g Fixed) bool { return f.raw > g.raw }

// IsZero reports whether f represents exactly zero.
func (f Fixed) IsZero() bool { return f.raw == 0 }

// invSqrtLUT approximates 1/sqrt(2^(30-i) * 3), keyed by leading-zero count
// of the raw representation; this is the hardware LUT's first iteration.
func invSqrtLUT(leadingZeros uint32) Fixed {
	var sample Fixed
	if leadingZeros == B-1 {
		sample = FromRaw(0b1)
	} else {
		sample = FromRaw(int32(0b11) << (B - 2 - leadingZeros))
	}
	return FromFloat32(float32(1.0 / math.Sqrt(float64(sample.Float32()))))
}

// InvSqrt approximates 1/sqrt(v) for v > 0 the way the FPGA would: one LUT
// lookup keyed by leading-zero count, then two Newton-Raphson refinements.
func (f Fixed) InvSqrt() Fixed {
	lz := bits.LeadingZeros32(uint32(f.raw))
	x0 := invSqrtLUT(uint32(lz))

	half := FromRaw(f.raw >> 1)
	threeHalves := FromFloat32(1.5)

	// x(n+1) = x(n) * (1.5 - 0.5*v*x(n)^2)
	x1 := x0.Mul(threeHalves.Sub(half.Mul(x0.Mul(x0))))
	x2 := x1.Mul(threeHalves.Sub(half.Mul(x1.Mul(x1))))
	return x2
}

// recipLUT emulates a 64-entry reciprocal lookup table indexed by the top 6
// fractional bits of |v|.
func recipLUT(idx int32) Fixed {
	if idx == 0 {
		return FromFloat32(1.0)
	}
	sample := FromRaw(idx << (D - 6))
	return FromFloat32(1.0 / sample.Float32())
}

// RecipLte1 approximates 1/v for 0 < |v| <= 1: a 64-entry LUT lookup
// followed by two Newton-Raphson refinements.
func (f Fixed) RecipLte1() Fixed {
	idx := (f.raw >> (D - 6)) & 63
	if f.raw < 0 {
		idx = ((-f.raw) >> (D - 6)) & 63
	}
	x0 := recipLUT(idx)
	if f.raw < 0 {
		x0 = x0.Neg()
	}

	// x(n+1) = 2*x(n) - v*x(n)^2. Order matters to avoid overflow.
	two := func(x Fixed) Fixed { return FromRaw(x.raw << 1) }
	x1 := two(x0).Sub(x0.Mul(f.Mul(x0)))
	x2 := two(x1).Sub(x1.Mul(f.Mul(x1)))
	return x2
}

func (f Fixed) String() string {
	return fmt.Sprintf("%g", f.Float32())
}
