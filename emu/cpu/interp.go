/*
   IR block interpreter: dispatch and integer kernels.

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
	"fmt"
	"log/slog"
	"math/bits"

	"github.com/iota97/allegrex/emu/debugger"
	"github.com/iota97/allegrex/emu/event"
	mem "github.com/iota97/allegrex/emu/memory"
)

// Host services, bound by the core and HLE layers at startup. The
// defaults keep the package runnable standalone.
var (
	// CallSyscall hands an encoded MIPS syscall opcode to the HLE layer.
	CallSyscall = func(opcode uint32) {}
	// InterpretOp runs one encoded MIPS opcode in the fallback interpreter.
	InterpretOp = func(opcode uint32) {}
	// GetReplacementFunc resolves a replacement table index to a
	// function returning its cycle cost.
	GetReplacementFunc = func(index int) func() int {
		return func() int { return 0 }
	}
	// CoreBreak asks the host core to stop after the current block.
	CoreBreak = func() {}
	// CoreStillRunning reports whether the core is still in the
	// running state after a host call.
	CoreStillRunning = func() bool { return true }
)

// Fatal construction bug. These indicate a defective block producer
// and must not be masked.
func crash(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	slog.Error(msg)
	panic(msg)
}

func runBreakpoint(pc uint32) bool {
	// Should we skip this breakpoint?
	if debugger.CheckSkipFirst() == pc {
		return false
	}
	debugger.ExecBreakPoint(pc)
	return !CoreStillRunning()
}

func runMemCheck(pc, addr uint32) bool {
	// Should we skip this breakpoint?
	if debugger.CheckSkipFirst() == pc {
		return false
	}
	debugger.ExecOpMemCheck(addr, pc)
	return !CoreStillRunning()
}

// Interpret runs one straight line block of IR records against cs and
// returns the next guest PC. A return of 0 tells the caller to
// re-enter at the current PC; the suspension paths stage the PC before
// returning it. Every well formed block ends in an exit record, so
// falling off the end is fatal.
func Interpret(cs *CPUState, block []IRInst) uint32 {
	for i := range block {
		inst := &block[i]
		switch inst.Op {
		case OpNop:
			crash("Nop in live IR block")

		case OpSetConst:
			cs.R[inst.Dest] = inst.Constant
		case OpSetConstF:
			cs.FP[inst.Dest] = inst.Constant
		case OpMov:
			cs.R[inst.Dest] = cs.R[inst.Src1]

		case OpAdd:
			cs.R[inst.Dest] = cs.R[inst.Src1] + cs.R[inst.Src2]
		case OpSub:
			cs.R[inst.Dest] = cs.R[inst.Src1] - cs.R[inst.Src2]
		case OpNeg:
			cs.R[inst.Dest] = uint32(-int32(cs.R[inst.Src1]))
		case OpNot:
			cs.R[inst.Dest] = ^cs.R[inst.Src1]
		case OpAnd:
			cs.R[inst.Dest] = cs.R[inst.Src1] & cs.R[inst.Src2]
		case OpOr:
			cs.R[inst.Dest] = cs.R[inst.Src1] | cs.R[inst.Src2]
		case OpXor:
			cs.R[inst.Dest] = cs.R[inst.Src1] ^ cs.R[inst.Src2]
		case OpAddConst:
			cs.R[inst.Dest] = cs.R[inst.Src1] + inst.Constant
		case OpSubConst:
			cs.R[inst.Dest] = cs.R[inst.Src1] - inst.Constant
		case OpAndConst:
			cs.R[inst.Dest] = cs.R[inst.Src1] & inst.Constant
		case OpOrConst:
			cs.R[inst.Dest] = cs.R[inst.Src1] | inst.Constant
		case OpXorConst:
			cs.R[inst.Dest] = cs.R[inst.Src1] ^ inst.Constant
		case OpExt8to32:
			cs.R[inst.Dest] = uint32(int32(int8(cs.R[inst.Src1])))
		case OpExt16to32:
			cs.R[inst.Dest] = uint32(int32(int16(cs.R[inst.Src1])))
		case OpReverseBits:
			cs.R[inst.Dest] = bits.Reverse32(cs.R[inst.Src1])
		case OpBSwap16:
			x := cs.R[inst.Src1]
			cs.R[inst.Dest] = ((x & 0xff00ff00) >> 8) | ((x & 0x00ff00ff) << 8)
		case OpBSwap32:
			cs.R[inst.Dest] = bits.ReverseBytes32(cs.R[inst.Src1])
		case OpClz:
			cs.R[inst.Dest] = uint32(bits.LeadingZeros32(cs.R[inst.Src1]))

		case OpShl:
			cs.R[inst.Dest] = cs.R[inst.Src1] << (cs.R[inst.Src2] & 31)
		case OpShr:
			cs.R[inst.Dest] = cs.R[inst.Src1] >> (cs.R[inst.Src2] & 31)
		case OpSar:
			cs.R[inst.Dest] = uint32(int32(cs.R[inst.Src1]) >> (cs.R[inst.Src2] & 31))
		case OpRor:
			cs.R[inst.Dest] = bits.RotateLeft32(cs.R[inst.Src1], -int(cs.R[inst.Src2]&31))
		case OpShlImm:
			cs.R[inst.Dest] = cs.R[inst.Src1] << inst.Src2
		case OpShrImm:
			cs.R[inst.Dest] = cs.R[inst.Src1] >> inst.Src2
		case OpSarImm:
			cs.R[inst.Dest] = uint32(int32(cs.R[inst.Src1]) >> inst.Src2)
		case OpRorImm:
			cs.R[inst.Dest] = bits.RotateLeft32(cs.R[inst.Src1], -int(inst.Src2))

		case OpSlt:
			cs.R[inst.Dest] = boolToReg(int32(cs.R[inst.Src1]) < int32(cs.R[inst.Src2]))
		case OpSltConst:
			cs.R[inst.Dest] = boolToReg(int32(cs.R[inst.Src1]) < int32(inst.Constant))
		case OpSltU:
			cs.R[inst.Dest] = boolToReg(cs.R[inst.Src1] < cs.R[inst.Src2])
		case OpSltUConst:
			cs.R[inst.Dest] = boolToReg(cs.R[inst.Src1] < inst.Constant)
		case OpMovZ:
			if cs.R[inst.Src1] == 0 {
				cs.R[inst.Dest] = cs.R[inst.Src2]
			}
		case OpMovNZ:
			if cs.R[inst.Src1] != 0 {
				cs.R[inst.Dest] = cs.R[inst.Src2]
			}
		case OpMax:
			if int32(cs.R[inst.Src1]) > int32(cs.R[inst.Src2]) {
				cs.R[inst.Dest] = cs.R[inst.Src1]
			} else {
				cs.R[inst.Dest] = cs.R[inst.Src2]
			}
		case OpMin:
			if int32(cs.R[inst.Src1]) < int32(cs.R[inst.Src2]) {
				cs.R[inst.Dest] = cs.R[inst.Src1]
			} else {
				cs.R[inst.Dest] = cs.R[inst.Src2]
			}

		case OpMtLo:
			cs.Lo = cs.R[inst.Src1]
		case OpMtHi:
			cs.Hi = cs.R[inst.Src1]
		case OpMfLo:
			cs.R[inst.Dest] = cs.Lo
		case OpMfHi:
			cs.R[inst.Dest] = cs.Hi
		case OpMult:
			cs.storeAcc(int64(int32(cs.R[inst.Src1])) * int64(int32(cs.R[inst.Src2])))
		case OpMultU:
			cs.storeAcc(int64(uint64(cs.R[inst.Src1]) * uint64(cs.R[inst.Src2])))
		case OpMadd:
			cs.storeAcc(cs.loadAcc() + int64(int32(cs.R[inst.Src1]))*int64(int32(cs.R[inst.Src2])))
		case OpMaddU:
			cs.storeAcc(cs.loadAcc() + int64(uint64(cs.R[inst.Src1])*uint64(cs.R[inst.Src2])))
		case OpMsub:
			cs.storeAcc(cs.loadAcc() - int64(int32(cs.R[inst.Src1]))*int64(int32(cs.R[inst.Src2])))
		case OpMsubU:
			cs.storeAcc(cs.loadAcc() - int64(uint64(cs.R[inst.Src1])*uint64(cs.R[inst.Src2])))
		case OpDiv:
			cs.div(int32(cs.R[inst.Src1]), int32(cs.R[inst.Src2]))
		case OpDivU:
			cs.divu(cs.R[inst.Src1], cs.R[inst.Src2])

		case OpLoad8:
			cs.R[inst.Dest] = uint32(mem.GetByte(cs.R[inst.Src1] + inst.Constant))
		case OpLoad8Ext:
			cs.R[inst.Dest] = uint32(int32(int8(mem.GetByte(cs.R[inst.Src1] + inst.Constant))))
		case OpLoad16:
			cs.R[inst.Dest] = uint32(mem.GetHalf(cs.R[inst.Src1] + inst.Constant))
		case OpLoad16Ext:
			cs.R[inst.Dest] = uint32(int32(int16(mem.GetHalf(cs.R[inst.Src1] + inst.Constant))))
		case OpLoad32:
			cs.R[inst.Dest] = mem.GetWord(cs.R[inst.Src1] + inst.Constant)
		case OpLoad32Left:
			cs.load32Left(inst)
		case OpLoad32Right:
			cs.load32Right(inst)
		case OpLoadFloat:
			cs.FP[inst.Dest] = mem.GetWord(cs.R[inst.Src1] + inst.Constant)
		case OpLoadVec4:
			base := cs.R[inst.Src1] + inst.Constant
			for lane := uint8(0); lane < 4; lane++ {
				cs.FP[inst.Dest+lane] = mem.GetWord(base + 4*uint32(lane))
			}

		case OpStore8:
			mem.PutByte(cs.R[inst.Src1]+inst.Constant, uint8(cs.R[inst.Src3]))
		case OpStore16:
			mem.PutHalf(cs.R[inst.Src1]+inst.Constant, uint16(cs.R[inst.Src3]))
		case OpStore32:
			mem.PutWord(cs.R[inst.Src1]+inst.Constant, cs.R[inst.Src3])
		case OpStore32Left:
			cs.store32Left(inst)
		case OpStore32Right:
			cs.store32Right(inst)
		case OpStoreFloat:
			mem.PutWord(cs.R[inst.Src1]+inst.Constant, cs.FP[inst.Src3])
		case OpStoreVec4:
			base := cs.R[inst.Src1] + inst.Constant
			for lane := uint8(0); lane < 4; lane++ {
				mem.PutWord(base+4*uint32(lane), cs.FP[inst.Dest+lane])
			}

		case OpFAdd:
			cs.SetF(inst.Dest, cs.F(inst.Src1)+cs.F(inst.Src2))
		case OpFSub:
			cs.SetF(inst.Dest, cs.F(inst.Src1)-cs.F(inst.Src2))
		case OpFMul:
			cs.fMul(inst)
		case OpFDiv:
			cs.SetF(inst.Dest, cs.F(inst.Src1)/cs.F(inst.Src2))
		case OpFMin:
			cs.fMin(inst)
		case OpFMax:
			cs.fMax(inst)
		case OpFMov:
			cs.FP[inst.Dest] = cs.FP[inst.Src1]
		case OpFAbs:
			cs.FP[inst.Dest] = cs.FP[inst.Src1] &^ MSIGN
		case OpFSqrt:
			cs.fSqrt(inst)
		case OpFNeg:
			cs.FP[inst.Dest] = cs.FP[inst.Src1] ^ MSIGN
		case OpFSign:
			cs.fSign(inst)
		case OpFSat0_1:
			cs.fSat(inst, 0.0, 1.0)
		case OpFSatMinus1_1:
			cs.fSat(inst, -1.0, 1.0)
		case OpFSin:
			cs.fSin(inst)
		case OpFCos:
			cs.fCos(inst)
		case OpFAsin:
			cs.fAsin(inst)
		case OpFRSqrt:
			cs.fRSqrt(inst)
		case OpFRecip:
			cs.SetF(inst.Dest, 1.0/cs.F(inst.Src1))
		case OpFCmp:
			cs.fCmp(inst)
		case OpFCvtWS:
			cs.fCvtWS(inst)
		case OpFCvtSW:
			cs.SetF(inst.Dest, float32(cs.FS(inst.Src1)))
		case OpFRound:
			cs.fRound(inst)
		case OpFTrunc:
			cs.fTrunc(inst)
		case OpFCeil:
			cs.fCeil(inst)
		case OpFFloor:
			cs.fFloor(inst)

		case OpFCmpVfpuBit:
			cs.fCmpVfpuBit(inst)
		case OpFCmpVfpuAggregate:
			cs.fCmpVfpuAggregate(inst)
		case OpFCmovVfpuCC:
			cs.fCmovVfpuCC(inst)

		case OpVec4Init:
			cs.vec4Init(inst)
		case OpVec4Shuffle:
			cs.vec4Shuffle(inst)
		case OpVec4Mov:
			for lane := uint8(0); lane < 4; lane++ {
				cs.FP[inst.Dest+lane] = cs.FP[inst.Src1+lane]
			}
		case OpVec4Add:
			for lane := uint8(0); lane < 4; lane++ {
				cs.SetF(inst.Dest+lane, cs.F(inst.Src1+lane)+cs.F(inst.Src2+lane))
			}
		case OpVec4Sub:
			for lane := uint8(0); lane < 4; lane++ {
				cs.SetF(inst.Dest+lane, cs.F(inst.Src1+lane)-cs.F(inst.Src2+lane))
			}
		case OpVec4Mul:
			for lane := uint8(0); lane < 4; lane++ {
				cs.SetF(inst.Dest+lane, cs.F(inst.Src1+lane)*cs.F(inst.Src2+lane))
			}
		case OpVec4Div:
			for lane := uint8(0); lane < 4; lane++ {
				cs.SetF(inst.Dest+lane, cs.F(inst.Src1+lane)/cs.F(inst.Src2+lane))
			}
		case OpVec4Scale:
			scale := cs.F(inst.Src2)
			for lane := uint8(0); lane < 4; lane++ {
				cs.SetF(inst.Dest+lane, cs.F(inst.Src1+lane)*scale)
			}
		case OpVec4Neg:
			for lane := uint8(0); lane < 4; lane++ {
				cs.FP[inst.Dest+lane] = cs.FP[inst.Src1+lane] ^ MSIGN
			}
		case OpVec4Abs:
			for lane := uint8(0); lane < 4; lane++ {
				cs.FP[inst.Dest+lane] = cs.FP[inst.Src1+lane] &^ MSIGN
			}
		case OpVec4Dot:
			cs.vec4Dot(inst)
		case OpVec2Unpack16To31:
			cs.FP[inst.Dest] = (cs.FP[inst.Src1] << 16) >> 1
			cs.FP[inst.Dest+1] = (cs.FP[inst.Src1] & HMASK) >> 1
		case OpVec2Unpack16To32:
			cs.FP[inst.Dest] = cs.FP[inst.Src1] << 16
			cs.FP[inst.Dest+1] = cs.FP[inst.Src1] & HMASK
		case OpVec4Unpack8To32:
			cs.FP[inst.Dest] = cs.FP[inst.Src1] << 24
			cs.FP[inst.Dest+1] = (cs.FP[inst.Src1] << 16) & 0xff000000
			cs.FP[inst.Dest+2] = (cs.FP[inst.Src1] << 8) & 0xff000000
			cs.FP[inst.Dest+3] = cs.FP[inst.Src1] & 0xff000000
		case OpVec2Pack31To16:
			val := (cs.FP[inst.Src1] >> 15) & LMASK
			val |= (cs.FP[inst.Src1+1] << 1) & HMASK
			cs.FP[inst.Dest] = val
		case OpVec2Pack32To16:
			val := cs.FP[inst.Src1] >> 16
			cs.FP[inst.Dest] = (cs.FP[inst.Src1+1] & HMASK) | val
		case OpVec4Pack31To8:
			val := (cs.FP[inst.Src1] >> 23) & 0xff
			val |= (cs.FP[inst.Src1+1] >> 15) & 0xff00
			val |= (cs.FP[inst.Src1+2] >> 7) & 0xff0000
			val |= (cs.FP[inst.Src1+3] << 1) & 0xff000000
			cs.FP[inst.Dest] = val
		case OpVec4Pack32To8:
			val := cs.FP[inst.Src1] >> 24
			val |= (cs.FP[inst.Src1+1] >> 16) & 0xff00
			val |= (cs.FP[inst.Src1+2] >> 8) & 0xff0000
			val |= cs.FP[inst.Src1+3] & 0xff000000
			cs.FP[inst.Dest] = val
		case OpVec2ClampToZero:
			for lane := uint8(0); lane < 2; lane++ {
				cs.FP[inst.Dest+lane] = clampToZero(cs.FP[inst.Src1+lane])
			}
		case OpVec4ClampToZero:
			for lane := uint8(0); lane < 4; lane++ {
				cs.FP[inst.Dest+lane] = clampToZero(cs.FP[inst.Src1+lane])
			}
		case OpVec4DuplicateUpperBitsAndShift1:
			for lane := uint8(0); lane < 4; lane++ {
				val := cs.FP[inst.Src1+lane]
				val |= val >> 8
				val |= val >> 16
				val >>= 1
				cs.FP[inst.Dest+lane] = val
			}

		case OpFMovFromGPR:
			cs.FP[inst.Dest] = cs.R[inst.Src1]
		case OpFMovToGPR:
			cs.R[inst.Dest] = cs.FP[inst.Src1]
		case OpFpCondToReg:
			cs.R[inst.Dest] = cs.FpCond
		case OpZeroFpCond:
			cs.FpCond = 0
		case OpVfpuCtrlToReg:
			cs.R[inst.Dest] = cs.VfpuCtrl[inst.Src1]
		case OpSetCtrlVFPU:
			cs.VfpuCtrl[inst.Dest] = inst.Constant
		case OpSetCtrlVFPUReg:
			cs.VfpuCtrl[inst.Dest] = cs.R[inst.Src1]
		case OpSetCtrlVFPUFReg:
			cs.VfpuCtrl[inst.Dest] = cs.FP[inst.Src1]

		case OpExitToConst:
			return inst.Constant
		case OpExitToReg:
			return cs.R[inst.Src1]
		case OpExitToPC:
			return cs.PC
		case OpExitToConstIfEq:
			if cs.R[inst.Src1] == cs.R[inst.Src2] {
				return inst.Constant
			}
		case OpExitToConstIfNeq:
			if cs.R[inst.Src1] != cs.R[inst.Src2] {
				return inst.Constant
			}
		case OpExitToConstIfGtZ:
			if int32(cs.R[inst.Src1]) > 0 {
				return inst.Constant
			}
		case OpExitToConstIfGeZ:
			if int32(cs.R[inst.Src1]) >= 0 {
				return inst.Constant
			}
		case OpExitToConstIfLtZ:
			if int32(cs.R[inst.Src1]) < 0 {
				return inst.Constant
			}
		case OpExitToConstIfLeZ:
			if int32(cs.R[inst.Src1]) <= 0 {
				return inst.Constant
			}

		case OpDowncount:
			cs.Downcount -= int32(inst.Constant)
		case OpSetPC:
			cs.PC = cs.R[inst.Src1]
		case OpSetPCConst:
			cs.PC = inst.Constant

		case OpSyscall:
			// SetPC was staged by the producer before this record.
			CallSyscall(inst.Constant)
			if !CoreStillRunning() {
				event.ForceCheck()
			}
		case OpInterpret:
			// Slow single opcode fallback.
			InterpretOp(inst.Constant)
		case OpCallReplacement:
			cycles := GetReplacementFunc(int(inst.Constant))()
			cs.Downcount -= int32(cycles)
		case OpBreak:
			CoreBreak()
			return cs.PC + 4
		case OpBreakpoint:
			if runBreakpoint(cs.PC) {
				event.ForceCheck()
				return cs.PC
			}
		case OpMemoryCheck:
			if runMemCheck(cs.PC, cs.R[inst.Src1]+inst.Constant) {
				event.ForceCheck()
				return cs.PC
			}

		case OpApplyRoundingMode, OpRestoreRoundingMode, OpUpdateRoundingMode:
			// Reserved. FP rounding mode is only observed by FCvtWS.

		default:
			crash("unknown IR op %d", inst.Op)
		}

		if DebugChecks && cs.R[0] != 0 {
			crash("r0 modified to %08x by %s", cs.R[0], inst.Op)
		}
	}

	// A well formed block never runs off the end.
	crash("IR block without exit")
	return 0
}

func boolToReg(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Lanes are signed ints here; negative becomes zero.
func clampToZero(val uint32) uint32 {
	if int32(val) >= 0 {
		return val
	}
	return 0
}
