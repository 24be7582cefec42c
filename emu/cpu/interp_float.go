/*
   Scalar float kernels with the MIPS/VFPU quirks.

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

package cpu

import (
	"math"

	"github.com/iota97/allegrex/emu/vfpu"
)

// Infinity times zero yields the canonical quiet NaN instead of the
// host result.
func (cs *CPUState) fMul(inst *IRInst) {
	a := cs.F(inst.Src1)
	b := cs.F(inst.Src2)
	if (vfpu.IsInf(a) && b == 0) || (vfpu.IsInf(b) && a == 0) {
		cs.FP[inst.Dest] = quietNaN
	} else {
		cs.SetF(inst.Dest, a*b)
	}
}

// Min/max keep the first operand when the comparison is unordered,
// matching the guest ALU.
func (cs *CPUState) fMin(inst *IRInst) {
	a := cs.F(inst.Src1)
	b := cs.F(inst.Src2)
	if b < a {
		cs.SetF(inst.Dest, b)
	} else {
		cs.SetF(inst.Dest, a)
	}
}

func (cs *CPUState) fMax(inst *IRInst) {
	a := cs.F(inst.Src1)
	b := cs.F(inst.Src2)
	if b > a {
		cs.SetF(inst.Dest, b)
	} else {
		cs.SetF(inst.Dest, a)
	}
}

func (cs *CPUState) fSqrt(inst *IRInst) {
	cs.SetF(inst.Dest, float32(math.Sqrt(float64(cs.F(inst.Src1)))))
}

func (cs *CPUState) fRSqrt(inst *IRInst) {
	root := float32(math.Sqrt(float64(cs.F(inst.Src1))))
	cs.SetF(inst.Dest, 1.0/root)
}

func (cs *CPUState) fSin(inst *IRInst) {
	cs.SetF(inst.Dest, vfpu.Sin(cs.F(inst.Src1)))
}

func (cs *CPUState) fCos(inst *IRInst) {
	cs.SetF(inst.Dest, vfpu.Cos(cs.F(inst.Src1)))
}

func (cs *CPUState) fAsin(inst *IRInst) {
	cs.SetF(inst.Dest, vfpu.Asin(cs.F(inst.Src1)))
}

func (cs *CPUState) fSat(inst *IRInst, low, high float32) {
	// NaN and -0.0 need the library clamp, not a plain min/max.
	cs.SetF(inst.Dest, vfpu.Clamp(cs.F(inst.Src1), low, high))
}

// Sign function on the raw bits: both zero encodings give +0.0.
func (cs *CPUState) fSign(inst *IRInst) {
	val := cs.FP[inst.Src1]
	switch {
	case val == 0 || val == MSIGN:
		cs.SetF(inst.Dest, 0.0)
	case val>>31 == 0:
		cs.SetF(inst.Dest, 1.0)
	default:
		cs.SetF(inst.Dest, -1.0)
	}
}

func (cs *CPUState) fCmp(inst *IRInst) {
	a := cs.F(inst.Src1)
	b := cs.F(inst.Src2)
	switch inst.Dest {
	case FCmpFalse:
		cs.FpCond = 0
	case FCmpEitherUnordered:
		cs.FpCond = boolToReg(!(a > b || a < b || a == b))
	case FCmpEqualOrdered, FCmpEqualUnordered:
		cs.FpCond = boolToReg(a == b)
	case FCmpLessEqualOrdered, FCmpLessEqualUnordered:
		cs.FpCond = boolToReg(a <= b)
	case FCmpLessOrdered, FCmpLessUnordered:
		cs.FpCond = boolToReg(a < b)
	}
}

// Store the saturated result for a NaN or infinite conversion source:
// negative infinity pins to INT_MIN, everything else to INT_MAX.
// Reports whether it handled the value.
func (cs *CPUState) cvtSaturate(dest uint8, value float32) bool {
	if !vfpu.IsNaNOrInf(value) {
		return false
	}
	if vfpu.IsInf(value) && value < 0 {
		cs.SetFS(dest, math.MinInt32)
	} else {
		cs.SetFS(dest, math.MaxInt32)
	}
	return true
}

// Convert a finite float to int32. The overflow check happens on the
// float value; out of range converts to INT_MIN as the hardware
// truncation does.
func toInt32(value float64) int32 {
	if value >= 2147483648.0 || value < -2147483648.0 {
		return math.MinInt32
	}
	return int32(value)
}

func (cs *CPUState) fRound(inst *IRInst) {
	value := cs.F(inst.Src1)
	if cs.cvtSaturate(inst.Dest, value) {
		return
	}
	cs.SetFS(inst.Dest, toInt32(math.Floor(float64(value+0.5))))
}

func (cs *CPUState) fTrunc(inst *IRInst) {
	value := cs.F(inst.Src1)
	if cs.cvtSaturate(inst.Dest, value) {
		return
	}
	if value >= 0 {
		floor := math.Floor(float64(value))
		if floor >= 2147483648.0 {
			// Overflow, but it was positive.
			cs.SetFS(inst.Dest, math.MaxInt32)
		} else {
			cs.SetFS(inst.Dest, int32(floor))
		}
	} else {
		// Overflow happens to be the right value anyway.
		cs.SetFS(inst.Dest, toInt32(math.Ceil(float64(value))))
	}
}

func (cs *CPUState) fCeil(inst *IRInst) {
	value := cs.F(inst.Src1)
	if cs.cvtSaturate(inst.Dest, value) {
		return
	}
	cs.SetFS(inst.Dest, toInt32(math.Ceil(float64(value))))
}

func (cs *CPUState) fFloor(inst *IRInst) {
	value := cs.F(inst.Src1)
	if cs.cvtSaturate(inst.Dest, value) {
		return
	}
	cs.SetFS(inst.Dest, toInt32(math.Floor(float64(value))))
}

// cvt.w.s honors the rounding mode selector in the low bits of fcr31.
func (cs *CPUState) fCvtWS(inst *IRInst) {
	src := cs.F(inst.Src1)
	if cs.cvtSaturate(inst.Dest, src) {
		return
	}
	switch cs.FCR31 & 3 {
	case 0:
		cs.SetFS(inst.Dest, toInt32(vfpu.RoundEven(float64(src))))
	case 1:
		cs.SetFS(inst.Dest, toInt32(math.Trunc(float64(src))))
	case 2:
		cs.SetFS(inst.Dest, toInt32(math.Ceil(float64(src))))
	case 3:
		cs.SetFS(inst.Dest, toInt32(math.Floor(float64(src))))
	}
}
