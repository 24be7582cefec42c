/*
   VFPU math helpers.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package vfpu

import "math"

/*
   Classification and rounding helpers for single precision guest
   values, plus the VFPU transcendental functions. The VFPU measures
   angles in quarter turns: an argument of 1.0 is 90 degrees. The
   classifiers work on the raw bit pattern so that quiet and signaling
   NaNs are treated alike and no host float conversion is involved.
*/

const (
	expMask  uint32 = 0x7f800000
	fracMask uint32 = 0x007fffff
)

// IsNaN reports whether v is any NaN encoding.
func IsNaN(v float32) bool {
	bits := math.Float32bits(v)
	return bits&expMask == expMask && bits&fracMask != 0
}

// IsInf reports whether v is positive or negative infinity.
func IsInf(v float32) bool {
	bits := math.Float32bits(v)
	return bits&expMask == expMask && bits&fracMask == 0
}

// IsNaNOrInf reports whether the exponent field is saturated.
func IsNaNOrInf(v float32) bool {
	return math.Float32bits(v)&expMask == expMask
}

// Clamp bounds v to [low, high]. NaN passes through unchanged and
// -0.0 collapses onto a +0.0 lower bound, both required by the
// saturation opcodes.
func Clamp(v, low, high float32) float32 {
	if v >= high {
		return high
	}
	if v <= low {
		return low
	}
	return v
}

// RoundEven rounds to the nearest integer, ties to even, the IEEE-754
// default mode used by cvt.w.s under rounding mode 0.
func RoundEven(v float64) float64 {
	return math.RoundToEven(v)
}

// Reduce an angle in quarter turns to [0, 4).
func reduce(angle float32) float64 {
	r := math.Mod(float64(angle), 4)
	if r < 0 {
		r += 4
	}
	return r
}

// Sin of an angle in quarter turns.
func Sin(angle float32) float32 {
	if IsNaNOrInf(angle) {
		return float32(math.NaN())
	}
	switch r := reduce(angle); r {
	case 0, 2:
		return 0
	case 1:
		return 1
	case 3:
		return -1
	default:
		return float32(math.Sin(r * math.Pi / 2))
	}
}

// Cos of an angle in quarter turns.
func Cos(angle float32) float32 {
	if IsNaNOrInf(angle) {
		return float32(math.NaN())
	}
	switch r := reduce(angle); r {
	case 0:
		return 1
	case 1, 3:
		return 0
	case 2:
		return -1
	default:
		return float32(math.Cos(r * math.Pi / 2))
	}
}

// Asin returns the arc sine scaled to quarter turns, so the result of
// a valid argument lands in [-1, 1]. Out of range arguments produce
// NaN as on the hardware.
func Asin(v float32) float32 {
	return float32(math.Asin(float64(v)) / (math.Pi / 2))
}
