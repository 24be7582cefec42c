/*
   VFPU math helper test cases.

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

import (
	"math"
	"testing"
)

func TestClassifiers(t *testing.T) {
	inf := float32(math.Inf(1))
	ninf := float32(math.Inf(-1))
	nan := float32(math.NaN())

	if !IsNaN(nan) || IsNaN(inf) || IsNaN(1.0) {
		t.Error("Wrong IsNaN classification")
	}
	if !IsInf(inf) || !IsInf(ninf) || IsInf(nan) || IsInf(0) {
		t.Error("Wrong IsInf classification")
	}
	if !IsNaNOrInf(nan) || !IsNaNOrInf(inf) || IsNaNOrInf(math.MaxFloat32) {
		t.Error("Wrong IsNaNOrInf classification")
	}
	// Negative NaN encodings classify too.
	if !IsNaN(math.Float32frombits(0xffc00001)) {
		t.Error("Negative NaN not recognized")
	}
}

func TestClamp(t *testing.T) {
	if r := Clamp(0.5, 0, 1); r != 0.5 {
		t.Errorf("Wrong clamp inside got: %g", r)
	}
	if r := Clamp(2, 0, 1); r != 1 {
		t.Errorf("Wrong clamp high got: %g", r)
	}
	if r := Clamp(-2, 0, 1); r != 0 {
		t.Errorf("Wrong clamp low got: %g", r)
	}
	// -0.0 collapses onto a +0.0 bound.
	if r := Clamp(float32(math.Copysign(0, -1)), 0, 1); math.Signbit(float64(r)) {
		t.Error("Wrong clamp of -0.0")
	}
	// NaN passes through.
	if r := Clamp(float32(math.NaN()), 0, 1); !IsNaN(r) {
		t.Errorf("Clamp of NaN got: %g", r)
	}
}

func TestRoundEven(t *testing.T) {
	if r := RoundEven(2.5); r != 2 {
		t.Errorf("Wrong round of 2.5 got: %g", r)
	}
	if r := RoundEven(3.5); r != 4 {
		t.Errorf("Wrong round of 3.5 got: %g", r)
	}
	if r := RoundEven(-2.5); r != -2 {
		t.Errorf("Wrong round of -2.5 got: %g", r)
	}
}

func TestSinCosLattice(t *testing.T) {
	// Quarter turn units: integral arguments are exact.
	tests := []struct {
		angle    float32
		sin, cos float32
	}{
		{0, 0, 1},
		{1, 1, 0},
		{2, 0, -1},
		{3, -1, 0},
		{4, 0, 1},
		{-1, -1, 0},
		{5, 1, 0},
	}
	for _, test := range tests {
		if r := Sin(test.angle); r != test.sin {
			t.Errorf("Sin(%g) got: %g want: %g", test.angle, r, test.sin)
		}
		if r := Cos(test.angle); r != test.cos {
			t.Errorf("Cos(%g) got: %g want: %g", test.angle, r, test.cos)
		}
	}
}

func TestSinCosSpecials(t *testing.T) {
	if !IsNaN(Sin(float32(math.Inf(1)))) {
		t.Error("Sin of infinity not NaN")
	}
	if !IsNaN(Cos(float32(math.NaN()))) {
		t.Error("Cos of NaN not NaN")
	}
	// Between lattice points the value is in range.
	if r := Sin(0.5); r < 0.7 || r > 0.8 {
		t.Errorf("Sin(0.5) out of range got: %g", r)
	}
}

func TestAsin(t *testing.T) {
	if r := Asin(1); r != 1 {
		t.Errorf("Wrong asin(1) got: %g", r)
	}
	if r := Asin(-1); r != -1 {
		t.Errorf("Wrong asin(-1) got: %g", r)
	}
	if r := Asin(0); r != 0 {
		t.Errorf("Wrong asin(0) got: %g", r)
	}
	if !IsNaN(Asin(2)) {
		t.Error("Asin out of range not NaN")
	}
}
