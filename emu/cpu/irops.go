/*
   IR opcode enumeration.

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

// IROp selects the kernel an IR record runs. The enumeration is
// closed; a tag outside it in a live block is a producer bug.
type IROp uint8

const (
	OpNop IROp = iota

	// Constants and moves.
	OpSetConst
	OpSetConstF
	OpMov

	// Integer ALU.
	OpAdd
	OpSub
	OpNeg
	OpNot
	OpAnd
	OpOr
	OpXor
	OpAddConst
	OpSubConst
	OpAndConst
	OpOrConst
	OpXorConst
	OpExt8to32
	OpExt16to32
	OpReverseBits
	OpBSwap16
	OpBSwap32
	OpClz

	// Shifts and rotates.
	OpShl
	OpShr
	OpSar
	OpRor
	OpShlImm
	OpShrImm
	OpSarImm
	OpRorImm

	// Comparisons and conditional moves.
	OpSlt
	OpSltConst
	OpSltU
	OpSltUConst
	OpMovZ
	OpMovNZ
	OpMax
	OpMin

	// Multiply, divide and the lo/hi pair.
	OpMtLo
	OpMtHi
	OpMfLo
	OpMfHi
	OpMult
	OpMultU
	OpMadd
	OpMaddU
	OpMsub
	OpMsubU
	OpDiv
	OpDivU

	// Loads and stores.
	OpLoad8
	OpLoad8Ext
	OpLoad16
	OpLoad16Ext
	OpLoad32
	OpLoad32Left
	OpLoad32Right
	OpLoadFloat
	OpLoadVec4
	OpStore8
	OpStore16
	OpStore32
	OpStore32Left
	OpStore32Right
	OpStoreFloat
	OpStoreVec4

	// Scalar float.
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFMin
	OpFMax
	OpFMov
	OpFAbs
	OpFSqrt
	OpFNeg
	OpFSign
	OpFSat0_1
	OpFSatMinus1_1
	OpFSin
	OpFCos
	OpFAsin
	OpFRSqrt
	OpFRecip
	OpFCmp
	OpFCvtWS
	OpFCvtSW
	OpFRound
	OpFTrunc
	OpFCeil
	OpFFloor

	// VFPU compare and control.
	OpFCmpVfpuBit
	OpFCmpVfpuAggregate
	OpFCmovVfpuCC

	// Vector, four lanes unless named otherwise.
	OpVec4Init
	OpVec4Shuffle
	OpVec4Mov
	OpVec4Add
	OpVec4Sub
	OpVec4Mul
	OpVec4Div
	OpVec4Scale
	OpVec4Neg
	OpVec4Abs
	OpVec4Dot
	OpVec2Unpack16To31
	OpVec2Unpack16To32
	OpVec4Unpack8To32
	OpVec2Pack31To16
	OpVec2Pack32To16
	OpVec4Pack31To8
	OpVec4Pack32To8
	OpVec2ClampToZero
	OpVec4ClampToZero
	OpVec4DuplicateUpperBitsAndShift1

	// Register bank transfers.
	OpFMovFromGPR
	OpFMovToGPR
	OpFpCondToReg
	OpZeroFpCond
	OpVfpuCtrlToReg
	OpSetCtrlVFPU
	OpSetCtrlVFPUReg
	OpSetCtrlVFPUFReg

	// Block exits.
	OpExitToConst
	OpExitToReg
	OpExitToPC
	OpExitToConstIfEq
	OpExitToConstIfNeq
	OpExitToConstIfGtZ
	OpExitToConstIfGeZ
	OpExitToConstIfLtZ
	OpExitToConstIfLeZ

	// Host bridge and bookkeeping.
	OpDowncount
	OpSetPC
	OpSetPCConst
	OpSyscall
	OpInterpret
	OpCallReplacement
	OpBreak
	OpBreakpoint
	OpMemoryCheck
	OpApplyRoundingMode
	OpRestoreRoundingMode
	OpUpdateRoundingMode

	numIROps
)

var irOpNames = [numIROps]string{
	OpNop:       "Nop",
	OpSetConst:  "SetConst",
	OpSetConstF: "SetConstF",
	OpMov:       "Mov",

	OpAdd:         "Add",
	OpSub:         "Sub",
	OpNeg:         "Neg",
	OpNot:         "Not",
	OpAnd:         "And",
	OpOr:          "Or",
	OpXor:         "Xor",
	OpAddConst:    "AddConst",
	OpSubConst:    "SubConst",
	OpAndConst:    "AndConst",
	OpOrConst:     "OrConst",
	OpXorConst:    "XorConst",
	OpExt8to32:    "Ext8to32",
	OpExt16to32:   "Ext16to32",
	OpReverseBits: "ReverseBits",
	OpBSwap16:     "BSwap16",
	OpBSwap32:     "BSwap32",
	OpClz:         "Clz",

	OpShl:    "Shl",
	OpShr:    "Shr",
	OpSar:    "Sar",
	OpRor:    "Ror",
	OpShlImm: "ShlImm",
	OpShrImm: "ShrImm",
	OpSarImm: "SarImm",
	OpRorImm: "RorImm",

	OpSlt:       "Slt",
	OpSltConst:  "SltConst",
	OpSltU:      "SltU",
	OpSltUConst: "SltUConst",
	OpMovZ:      "MovZ",
	OpMovNZ:     "MovNZ",
	OpMax:       "Max",
	OpMin:       "Min",

	OpMtLo:  "MtLo",
	OpMtHi:  "MtHi",
	OpMfLo:  "MfLo",
	OpMfHi:  "MfHi",
	OpMult:  "Mult",
	OpMultU: "MultU",
	OpMadd:  "Madd",
	OpMaddU: "MaddU",
	OpMsub:  "Msub",
	OpMsubU: "MsubU",
	OpDiv:   "Div",
	OpDivU:  "DivU",

	OpLoad8:        "Load8",
	OpLoad8Ext:     "Load8Ext",
	OpLoad16:       "Load16",
	OpLoad16Ext:    "Load16Ext",
	OpLoad32:       "Load32",
	OpLoad32Left:   "Load32Left",
	OpLoad32Right:  "Load32Right",
	OpLoadFloat:    "LoadFloat",
	OpLoadVec4:     "LoadVec4",
	OpStore8:       "Store8",
	OpStore16:      "Store16",
	OpStore32:      "Store32",
	OpStore32Left:  "Store32Left",
	OpStore32Right: "Store32Right",
	OpStoreFloat:   "StoreFloat",
	OpStoreVec4:    "StoreVec4",

	OpFAdd:         "FAdd",
	OpFSub:         "FSub",
	OpFMul:         "FMul",
	OpFDiv:         "FDiv",
	OpFMin:         "FMin",
	OpFMax:         "FMax",
	OpFMov:         "FMov",
	OpFAbs:         "FAbs",
	OpFSqrt:        "FSqrt",
	OpFNeg:         "FNeg",
	OpFSign:        "FSign",
	OpFSat0_1:      "FSat0_1",
	OpFSatMinus1_1: "FSatMinus1_1",
	OpFSin:         "FSin",
	OpFCos:         "FCos",
	OpFAsin:        "FAsin",
	OpFRSqrt:       "FRSqrt",
	OpFRecip:       "FRecip",
	OpFCmp:         "FCmp",
	OpFCvtWS:       "FCvtWS",
	OpFCvtSW:       "FCvtSW",
	OpFRound:       "FRound",
	OpFTrunc:       "FTrunc",
	OpFCeil:        "FCeil",
	OpFFloor:       "FFloor",

	OpFCmpVfpuBit:       "FCmpVfpuBit",
	OpFCmpVfpuAggregate: "FCmpVfpuAggregate",
	OpFCmovVfpuCC:       "FCmovVfpuCC",

	OpVec4Init:                        "Vec4Init",
	OpVec4Shuffle:                     "Vec4Shuffle",
	OpVec4Mov:                         "Vec4Mov",
	OpVec4Add:                         "Vec4Add",
	OpVec4Sub:                         "Vec4Sub",
	OpVec4Mul:                         "Vec4Mul",
	OpVec4Div:                         "Vec4Div",
	OpVec4Scale:                       "Vec4Scale",
	OpVec4Neg:                         "Vec4Neg",
	OpVec4Abs:                         "Vec4Abs",
	OpVec4Dot:                         "Vec4Dot",
	OpVec2Unpack16To31:                "Vec2Unpack16To31",
	OpVec2Unpack16To32:                "Vec2Unpack16To32",
	OpVec4Unpack8To32:                 "Vec4Unpack8To32",
	OpVec2Pack31To16:                  "Vec2Pack31To16",
	OpVec2Pack32To16:                  "Vec2Pack32To16",
	OpVec4Pack31To8:                   "Vec4Pack31To8",
	OpVec4Pack32To8:                   "Vec4Pack32To8",
	OpVec2ClampToZero:                 "Vec2ClampToZero",
	OpVec4ClampToZero:                 "Vec4ClampToZero",
	OpVec4DuplicateUpperBitsAndShift1: "Vec4DuplicateUpperBitsAndShift1",

	OpFMovFromGPR:     "FMovFromGPR",
	OpFMovToGPR:       "FMovToGPR",
	OpFpCondToReg:     "FpCondToReg",
	OpZeroFpCond:      "ZeroFpCond",
	OpVfpuCtrlToReg:   "VfpuCtrlToReg",
	OpSetCtrlVFPU:     "SetCtrlVFPU",
	OpSetCtrlVFPUReg:  "SetCtrlVFPUReg",
	OpSetCtrlVFPUFReg: "SetCtrlVFPUFReg",

	OpExitToConst:      "ExitToConst",
	OpExitToReg:        "ExitToReg",
	OpExitToPC:         "ExitToPC",
	OpExitToConstIfEq:  "ExitToConstIfEq",
	OpExitToConstIfNeq: "ExitToConstIfNeq",
	OpExitToConstIfGtZ: "ExitToConstIfGtZ",
	OpExitToConstIfGeZ: "ExitToConstIfGeZ",
	OpExitToConstIfLtZ: "ExitToConstIfLtZ",
	OpExitToConstIfLeZ: "ExitToConstIfLeZ",

	OpDowncount:           "Downcount",
	OpSetPC:               "SetPC",
	OpSetPCConst:          "SetPCConst",
	OpSyscall:             "Syscall",
	OpInterpret:           "Interpret",
	OpCallReplacement:     "CallReplacement",
	OpBreak:               "Break",
	OpBreakpoint:          "Breakpoint",
	OpMemoryCheck:         "MemoryCheck",
	OpApplyRoundingMode:   "ApplyRoundingMode",
	OpRestoreRoundingMode: "RestoreRoundingMode",
	OpUpdateRoundingMode:  "UpdateRoundingMode",
}

func (op IROp) String() string {
	if op >= numIROps || irOpNames[op] == "" {
		return "Unknown"
	}
	return irOpNames[op]
}
