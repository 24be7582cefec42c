/*
   Division quirks and unaligned word access kernels.

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

	mem "github.com/iota97/allegrex/emu/memory"
)

// Signed divide. The Allegrex never traps: INT_MIN/-1 keeps the
// numerator, divide by zero yields +/-1 with the numerator in hi.
// The remainder takes the sign of the numerator.
func (cs *CPUState) div(numerator, denominator int32) {
	switch {
	case numerator == math.MinInt32 && denominator == -1:
		cs.Lo = MSIGN
		cs.Hi = FMASK
	case denominator != 0:
		cs.Lo = uint32(numerator / denominator)
		cs.Hi = uint32(numerator % denominator)
	default:
		if numerator < 0 {
			cs.Lo = 1
		} else {
			cs.Lo = FMASK
		}
		cs.Hi = uint32(numerator)
	}
}

// Unsigned divide. Divide by zero yields 0xffff for small numerators
// and all ones otherwise, with the numerator in hi.
func (cs *CPUState) divu(numerator, denominator uint32) {
	if denominator != 0 {
		cs.Lo = numerator / denominator
		cs.Hi = numerator % denominator
	} else {
		if numerator <= 0xffff {
			cs.Lo = 0xffff
		} else {
			cs.Lo = FMASK
		}
		cs.Hi = numerator
	}
}

/*
   MIPS lwl/lwr/swl/swr semantics. The effective address selects a
   byte lane inside the aligned word; the loads merge the word into
   the destination register around the preserved bytes, the stores
   merge the register into memory the same way.
*/

func (cs *CPUState) load32Left(inst *IRInst) {
	addr := cs.R[inst.Src1] + inst.Constant
	shift := (addr & 3) * 8
	word := mem.GetWord(addr & WMASK)
	destMask := uint32(0x00ffffff) >> shift
	cs.R[inst.Dest] = (cs.R[inst.Dest] & destMask) | (word << (24 - shift))
}

func (cs *CPUState) load32Right(inst *IRInst) {
	addr := cs.R[inst.Src1] + inst.Constant
	shift := (addr & 3) * 8
	word := mem.GetWord(addr & WMASK)
	destMask := uint32(0xffffff00) << (24 - shift)
	cs.R[inst.Dest] = (cs.R[inst.Dest] & destMask) | (word >> shift)
}

func (cs *CPUState) store32Left(inst *IRInst) {
	addr := cs.R[inst.Src1] + inst.Constant
	shift := (addr & 3) * 8
	word := mem.GetWord(addr & WMASK)
	memMask := uint32(0xffffff00) << shift
	result := (cs.R[inst.Src3] >> (24 - shift)) | (word & memMask)
	mem.PutWord(addr&WMASK, result)
}

func (cs *CPUState) store32Right(inst *IRInst) {
	addr := cs.R[inst.Src1] + inst.Constant
	shift := (addr & 3) * 8
	word := mem.GetWord(addr & WMASK)
	memMask := uint32(0x00ffffff) >> (24 - shift)
	result := (cs.R[inst.Src3] << shift) | (word & memMask)
	mem.PutWord(addr&WMASK, result)
}
