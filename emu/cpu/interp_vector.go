/*
   VFPU vector and compare/control kernels.

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

import "github.com/iota97/allegrex/emu/vfpu"

// The eight canonical init patterns selected by Src1: all zero, all
// one, all minus one, then the four unit axes.
var vec4InitValues = [8][4]float32{
	{0.0, 0.0, 0.0, 0.0},
	{1.0, 1.0, 1.0, 1.0},
	{-1.0, -1.0, -1.0, -1.0},
	{1.0, 0.0, 0.0, 0.0},
	{0.0, 1.0, 0.0, 0.0},
	{0.0, 0.0, 1.0, 0.0},
	{0.0, 0.0, 0.0, 1.0},
	{0.0, 0.0, 0.0, 0.0},
}

func (cs *CPUState) vec4Init(inst *IRInst) {
	for lane := uint8(0); lane < 4; lane++ {
		cs.SetF(inst.Dest+lane, vec4InitValues[inst.Src1][lane])
	}
}

// Two bits of Src2 per output lane select the source lane; all 256
// shuffles are expressible. Lanes are produced in order, so an
// overlapping dest reads lanes already written, as on the source
// interpreter.
func (cs *CPUState) vec4Shuffle(inst *IRInst) {
	for lane := uint8(0); lane < 4; lane++ {
		cs.FP[inst.Dest+lane] = cs.FP[inst.Src1+((inst.Src2>>(lane*2))&3)]
	}
}

// Lane-wise dot product, accumulated in lane order.
func (cs *CPUState) vec4Dot(inst *IRInst) {
	dot := cs.F(inst.Src1) * cs.F(inst.Src2)
	for lane := uint8(1); lane < 4; lane++ {
		dot += cs.F(inst.Src1+lane) * cs.F(inst.Src2+lane)
	}
	cs.SetF(inst.Dest, dot)
}

// Lane compare writing one of the four user CC bits. The low nibble
// of Dest picks the predicate, the high nibble the bit.
func (cs *CPUState) fCmpVfpuBit(inst *IRInst) {
	op := inst.Dest & 0xf
	bit := inst.Dest >> 4
	var result bool
	switch op {
	case VCondEQ:
		result = cs.F(inst.Src1) == cs.F(inst.Src2)
	case VCondNE:
		result = cs.F(inst.Src1) != cs.F(inst.Src2)
	case VCondLT:
		result = cs.F(inst.Src1) < cs.F(inst.Src2)
	case VCondLE:
		result = cs.F(inst.Src1) <= cs.F(inst.Src2)
	case VCondGT:
		result = cs.F(inst.Src1) > cs.F(inst.Src2)
	case VCondGE:
		result = cs.F(inst.Src1) >= cs.F(inst.Src2)
	case VCondEZ:
		result = cs.F(inst.Src1) == 0.0
	case VCondNZ:
		result = cs.F(inst.Src1) != 0.0
	case VCondEN:
		result = vfpu.IsNaN(cs.F(inst.Src1))
	case VCondNN:
		result = !vfpu.IsNaN(cs.F(inst.Src1))
	case VCondEI:
		result = vfpu.IsInf(cs.F(inst.Src1))
	case VCondNI:
		result = !vfpu.IsInf(cs.F(inst.Src1))
	case VCondES:
		result = vfpu.IsNaNOrInf(cs.F(inst.Src1))
	case VCondNS:
		result = !vfpu.IsNaNOrInf(cs.F(inst.Src1))
	case VCondTR:
		result = true
	case VCondFL:
		result = false
	}
	if result {
		cs.VfpuCtrl[VfpuCtrlCC] |= 1 << bit
	} else {
		cs.VfpuCtrl[VfpuCtrlCC] &^= 1 << bit
	}
}

// Derive the any/all aggregate bits over the lane bits selected by
// the mask in Dest; everything outside bits 4 and 5 is preserved.
func (cs *CPUState) fCmpVfpuAggregate(inst *IRInst) {
	mask := uint32(inst.Dest)
	cc := cs.VfpuCtrl[VfpuCtrlCC]
	var anyBit, allBit uint32
	if cc&mask != 0 {
		anyBit = ccAnyBit
	}
	if cc&mask == mask {
		allBit = ccAllBit
	}
	cs.VfpuCtrl[VfpuCtrlCC] = (cc &^ (ccAnyBit | ccAllBit)) | anyBit | allBit
}

// Conditional move on a CC bit: Src2 low nibble selects the bit,
// bit 7 the expected value.
func (cs *CPUState) fCmovVfpuCC(inst *IRInst) {
	bit := inst.Src2 & 0xf
	expected := uint32(inst.Src2) >> 7
	if (cs.VfpuCtrl[VfpuCtrlCC]>>bit)&1 == expected {
		cs.FP[inst.Dest] = cs.FP[inst.Src1]
	}
}
