/*
   Allegrex CPU state and IR record definitions.

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

import "math"

/*
   The Allegrex is the MIPS32 core of the PSP. It carries 32 general
   purpose registers, the lo/hi multiply result pair, a scalar FPU with
   32 single precision registers and the VFPU vector coprocessor with
   128 more, plus 16 VFPU control registers. Guest code is recompiled
   into straight line blocks of pre-decoded IR records; Interpret runs
   one such block against this state.

   The FPU and VFPU registers live in one raw 32 bit cell array. Any
   cell can be viewed as an IEEE-754 float, raw unsigned bits or a
   signed int; a write through one view is visible through all.
*/

// One decoded IR operation. Dest/Src fields are register indices or
// opcode specific small immediates; Constant carries offsets, literal
// values, exit targets or an encoded MIPS opcode for the bridge ops.
type IRInst struct {
	Op       IROp
	Dest     uint8
	Src1     uint8
	Src2     uint8
	Src3     uint8
	Constant uint32
}

// CPUState is the guest register file one interpreter call mutates.
type CPUState struct {
	R  [32]uint32  // General purpose registers, R[0] stays zero
	FP [256]uint32 // FPU + VFPU register file, raw 32 bit cells

	Lo uint32 // Low word of the multiply/divide result
	Hi uint32 // High word of the multiply/divide result

	PC     uint32 // Program counter
	FpCond uint32 // Result of the last scalar FP compare
	FCR31  uint32 // FP control; only the low 2 bits are observed

	VfpuCtrl [16]uint32 // VFPU control registers

	Downcount int32 // Remaining cycle budget
}

// Float view of an FP cell.
func (cs *CPUState) F(reg uint8) float32 {
	return math.Float32frombits(cs.FP[reg])
}

// Signed int view of an FP cell.
func (cs *CPUState) FS(reg uint8) int32 {
	return int32(cs.FP[reg])
}

func (cs *CPUState) SetF(reg uint8, value float32) {
	cs.FP[reg] = math.Float32bits(value)
}

func (cs *CPUState) SetFS(reg uint8, value int32) {
	cs.FP[reg] = uint32(value)
}

// Load the lo/hi pair as the 64 bit multiply accumulator.
func (cs *CPUState) loadAcc() int64 {
	return int64((uint64(cs.Hi) << 32) | uint64(cs.Lo))
}

// Store a 64 bit value back into the lo/hi pair.
func (cs *CPUState) storeAcc(value int64) {
	cs.Lo = uint32(uint64(value) & LMASKL)
	cs.Hi = uint32(uint64(value) >> 32)
}

const (
	// VFPU control register indices.
	VfpuCtrlSPrefix = 0
	VfpuCtrlTPrefix = 1
	VfpuCtrlDPrefix = 2
	VfpuCtrlCC      = 3
	VfpuCtrlInf4    = 4
	VfpuCtrlRev     = 7
	VfpuCtrlRcx0    = 8

	// CC aggregate bits; bits 0-3 are the lane bits.
	ccAnyBit uint32 = 0x10
	ccAllBit uint32 = 0x20

	// Mask constants.
	MSIGN  uint32 = 0x80000000 // Minus sign
	FMASK  uint32 = 0xffffffff // Full word mask
	LMASK  uint32 = 0x0000ffff // Lower half word mask
	HMASK  uint32 = 0xffff0000 // Upper half word mask
	WMASK  uint32 = 0xfffffffc // Word boundary mask

	LMASKL uint64 = 0x00000000ffffffff // Lower word of a long

	quietNaN uint32 = 0x7fc00000 // Canonical VFPU quiet NaN
)

// Scalar FP compare predicates for FCmp, carried in Dest.
const (
	FCmpFalse = iota
	FCmpEitherUnordered
	FCmpEqualOrdered
	FCmpEqualUnordered
	FCmpLessEqualOrdered
	FCmpLessEqualUnordered
	FCmpLessOrdered
	FCmpLessUnordered
)

// VFPU lane compare predicates for FCmpVfpuBit, low nibble of Dest.
const (
	VCondEQ = iota
	VCondNE
	VCondLT
	VCondLE
	VCondGT
	VCondGE
	VCondEZ
	VCondNZ
	VCondEN
	VCondNN
	VCondEI
	VCondNI
	VCondES
	VCondNS
	VCondTR
	VCondFL
)

// When set the dispatcher verifies R[0] after every record and crashes
// on a violation. Driven by the DEBUG config option.
var DebugChecks bool
