/*
 * Allegrex integer kernel test cases.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package cpu

import (
	"math/rand"
	"testing"

	mem "github.com/iota97/allegrex/emu/memory"
)

// Run one two operand ALU op.
func alu(op IROp, src1, src2 uint32) uint32 {
	var cs CPUState
	cs.R[1] = src1
	cs.R[2] = src2
	run(&cs, IRInst{Op: op, Dest: 3, Src1: 1, Src2: 2})
	return cs.R[3]
}

func TestAddSubWrap(t *testing.T) {
	if r := alu(OpAdd, 0xffffffff, 1); r != 0 {
		t.Errorf("Wrong add got: %08x", r)
	}
	if r := alu(OpAdd, 0x7fffffff, 1); r != 0x80000000 {
		t.Errorf("Wrong add overflow got: %08x", r)
	}
	if r := alu(OpSub, 0, 1); r != 0xffffffff {
		t.Errorf("Wrong sub got: %08x", r)
	}
}

func TestLogicOps(t *testing.T) {
	if r := alu(OpAnd, 0xff00ff00, 0x0ff00ff0); r != 0x0f000f00 {
		t.Errorf("Wrong and got: %08x", r)
	}
	if r := alu(OpOr, 0xff00ff00, 0x0ff00ff0); r != 0xfff0fff0 {
		t.Errorf("Wrong or got: %08x", r)
	}
	if r := alu(OpXor, 0xff00ff00, 0x0ff00ff0); r != 0xf0f0f0f0 {
		t.Errorf("Wrong xor got: %08x", r)
	}
}

func TestConstOps(t *testing.T) {
	var cs CPUState
	cs.R[1] = 0x1000
	run(&cs,
		IRInst{Op: OpAddConst, Dest: 2, Src1: 1, Constant: 0xfffffffc}, // -4
		IRInst{Op: OpSubConst, Dest: 3, Src1: 1, Constant: 8},
		IRInst{Op: OpAndConst, Dest: 4, Src1: 1, Constant: 0xff00},
		IRInst{Op: OpOrConst, Dest: 5, Src1: 1, Constant: 0x0f},
		IRInst{Op: OpXorConst, Dest: 6, Src1: 1, Constant: 0x1001},
		IRInst{Op: OpSltConst, Dest: 7, Src1: 1, Constant: 0x2000},
		IRInst{Op: OpSltUConst, Dest: 8, Src1: 1, Constant: 0x800},
	)
	if cs.R[2] != 0xffc {
		t.Errorf("Wrong addconst got: %08x", cs.R[2])
	}
	if cs.R[3] != 0xff8 {
		t.Errorf("Wrong subconst got: %08x", cs.R[3])
	}
	if cs.R[4] != 0x1000 {
		t.Errorf("Wrong andconst got: %08x", cs.R[4])
	}
	if cs.R[5] != 0x100f {
		t.Errorf("Wrong orconst got: %08x", cs.R[5])
	}
	if cs.R[6] != 0x0001 {
		t.Errorf("Wrong xorconst got: %08x", cs.R[6])
	}
	if cs.R[7] != 1 {
		t.Errorf("Wrong sltconst got: %08x", cs.R[7])
	}
	if cs.R[8] != 0 {
		t.Errorf("Wrong sltuconst got: %08x", cs.R[8])
	}
}

func TestNegNotRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		x := rng.Uint32()
		if r := alu(OpNeg, alu(OpNeg, x, 0), 0); r != x {
			t.Errorf("Neg not an involution for %08x got: %08x", x, r)
		}
		if r := alu(OpNot, alu(OpNot, x, 0), 0); r != x {
			t.Errorf("Not not an involution for %08x got: %08x", x, r)
		}
	}
	if r := alu(OpNeg, 0x80000000, 0); r != 0x80000000 {
		t.Errorf("Wrong neg of INT_MIN got: %08x", r)
	}
}

func TestSignExtension(t *testing.T) {
	if r := alu(OpExt8to32, 0x1280, 0); r != 0xffffff80 {
		t.Errorf("Wrong ext8 got: %08x", r)
	}
	if r := alu(OpExt8to32, 0x127f, 0); r != 0x7f {
		t.Errorf("Wrong ext8 got: %08x", r)
	}
	if r := alu(OpExt16to32, 0x128000, 0); r != 0xffff8000 {
		t.Errorf("Wrong ext16 got: %08x", r)
	}
}

func TestByteSwaps(t *testing.T) {
	if r := alu(OpBSwap16, 0x11223344, 0); r != 0x22114433 {
		t.Errorf("Wrong bswap16 got: %08x", r)
	}
	if r := alu(OpBSwap32, 0x11223344, 0); r != 0x44332211 {
		t.Errorf("Wrong bswap32 got: %08x", r)
	}
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		x := rng.Uint32()
		if r := alu(OpBSwap16, alu(OpBSwap16, x, 0), 0); r != x {
			t.Errorf("bswap16 round trip failed for %08x got: %08x", x, r)
		}
		if r := alu(OpBSwap32, alu(OpBSwap32, x, 0), 0); r != x {
			t.Errorf("bswap32 round trip failed for %08x got: %08x", x, r)
		}
		if r := alu(OpReverseBits, alu(OpReverseBits, x, 0), 0); r != x {
			t.Errorf("reversebits round trip failed for %08x got: %08x", x, r)
		}
	}
}

func TestClz(t *testing.T) {
	if r := alu(OpClz, 0, 0); r != 32 {
		t.Errorf("Wrong clz of zero got: %d", r)
	}
	if r := alu(OpClz, 0x80000000, 0); r != 0 {
		t.Errorf("Wrong clz got: %d", r)
	}
	if r := alu(OpClz, 0x00010000, 0); r != 15 {
		t.Errorf("Wrong clz got: %d", r)
	}
}

func TestShifts(t *testing.T) {
	// Variable shift amounts mask to the low 5 bits.
	if r := alu(OpShl, 1, 33); r != 2 {
		t.Errorf("Wrong shl mask got: %08x", r)
	}
	if r := alu(OpShr, 0x80000000, 31); r != 1 {
		t.Errorf("Wrong shr got: %08x", r)
	}
	if r := alu(OpSar, 0x80000000, 31); r != 0xffffffff {
		t.Errorf("Wrong sar got: %08x", r)
	}
	if r := alu(OpRor, 0x80000001, 1); r != 0xc0000000 {
		t.Errorf("Wrong ror got: %08x", r)
	}

	var cs CPUState
	cs.R[1] = 0x80000001
	run(&cs,
		IRInst{Op: OpShlImm, Dest: 2, Src1: 1, Src2: 4},
		IRInst{Op: OpShrImm, Dest: 3, Src1: 1, Src2: 4},
		IRInst{Op: OpSarImm, Dest: 4, Src1: 1, Src2: 4},
		IRInst{Op: OpRorImm, Dest: 5, Src1: 1, Src2: 1},
	)
	if cs.R[2] != 0x00000010 {
		t.Errorf("Wrong shlimm got: %08x", cs.R[2])
	}
	if cs.R[3] != 0x08000000 {
		t.Errorf("Wrong shrimm got: %08x", cs.R[3])
	}
	if cs.R[4] != 0xf8000000 {
		t.Errorf("Wrong sarimm got: %08x", cs.R[4])
	}
	if cs.R[5] != 0xc0000000 {
		t.Errorf("Wrong rorimm got: %08x", cs.R[5])
	}
}

func TestCompares(t *testing.T) {
	if r := alu(OpSlt, 0xffffffff, 0); r != 1 {
		t.Errorf("Wrong slt got: %d", r)
	}
	if r := alu(OpSltU, 0xffffffff, 0); r != 0 {
		t.Errorf("Wrong sltu got: %d", r)
	}
	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 200; i++ {
		a := rng.Uint32()
		b := rng.Uint32()
		if got, want := alu(OpSlt, a, b) == 1, int32(a) < int32(b); got != want {
			t.Errorf("Slt(%08x,%08x) mismatch", a, b)
		}
		if got, want := alu(OpSltU, a, b) == 1, a < b; got != want {
			t.Errorf("SltU(%08x,%08x) mismatch", a, b)
		}
	}
}

func TestMinMax(t *testing.T) {
	if r := alu(OpMax, 0xffffffff, 1); r != 1 {
		t.Errorf("Wrong max got: %08x", r)
	}
	if r := alu(OpMin, 0xffffffff, 1); r != 0xffffffff {
		t.Errorf("Wrong min got: %08x", r)
	}
}

func TestConditionalMoves(t *testing.T) {
	var cs CPUState
	cs.R[1] = 0 // condition
	cs.R[2] = 0x1111
	cs.R[3] = 0x9999
	run(&cs, IRInst{Op: OpMovZ, Dest: 3, Src1: 1, Src2: 2})
	if cs.R[3] != 0x1111 {
		t.Errorf("MovZ not taken got: %08x", cs.R[3])
	}
	cs.R[3] = 0x9999
	run(&cs, IRInst{Op: OpMovNZ, Dest: 3, Src1: 1, Src2: 2})
	if cs.R[3] != 0x9999 {
		t.Errorf("MovNZ taken got: %08x", cs.R[3])
	}
}

func TestMultAccumulator(t *testing.T) {
	var cs CPUState
	cs.R[1] = 0xffffffff // -1
	cs.R[2] = 2
	run(&cs, IRInst{Op: OpMult, Src1: 1, Src2: 2})
	if cs.Lo != 0xfffffffe || cs.Hi != 0xffffffff {
		t.Errorf("Wrong mult got: %08x %08x", cs.Lo, cs.Hi)
	}

	run(&cs, IRInst{Op: OpMultU, Src1: 1, Src2: 2})
	if cs.Lo != 0xfffffffe || cs.Hi != 0x00000001 {
		t.Errorf("Wrong multu got: %08x %08x", cs.Lo, cs.Hi)
	}
}

func TestMaddMsubLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	var cs CPUState
	acc := int64(0)
	cs.Lo = 0
	cs.Hi = 0
	for i := 0; i < 100; i++ {
		a := rng.Uint32()
		b := rng.Uint32()
		cs.R[1] = a
		cs.R[2] = b
		switch i % 4 {
		case 0:
			run(&cs, IRInst{Op: OpMadd, Src1: 1, Src2: 2})
			acc += int64(int32(a)) * int64(int32(b))
		case 1:
			run(&cs, IRInst{Op: OpMsub, Src1: 1, Src2: 2})
			acc -= int64(int32(a)) * int64(int32(b))
		case 2:
			run(&cs, IRInst{Op: OpMaddU, Src1: 1, Src2: 2})
			acc += int64(uint64(a) * uint64(b))
		default:
			run(&cs, IRInst{Op: OpMsubU, Src1: 1, Src2: 2})
			acc -= int64(uint64(a) * uint64(b))
		}
		got := (uint64(cs.Hi) << 32) | uint64(cs.Lo)
		if got != uint64(acc) {
			t.Fatalf("Accumulator diverged at %d got: %016x want: %016x", i, got, uint64(acc))
		}
	}
}

func TestMtMfLoHi(t *testing.T) {
	var cs CPUState
	cs.R[1] = 0x1234
	cs.R[2] = 0x5678
	run(&cs,
		IRInst{Op: OpMtLo, Src1: 1},
		IRInst{Op: OpMtHi, Src1: 2},
		IRInst{Op: OpMfLo, Dest: 3},
		IRInst{Op: OpMfHi, Dest: 4},
	)
	if cs.R[3] != 0x1234 || cs.R[4] != 0x5678 {
		t.Errorf("Wrong lo/hi transfers got: %08x %08x", cs.R[3], cs.R[4])
	}
}

func TestDivEdges(t *testing.T) {
	tests := []struct {
		num, den uint32
		lo, hi   uint32
	}{
		{0x80000000, 0xffffffff, 0x80000000, 0xffffffff}, // INT_MIN / -1
		{7, 2, 3, 1},
		{0xfffffff9, 2, 0xfffffffd, 0xffffffff},          // -7/2 = -3 rem -1
		{7, 0xfffffffe, 0xfffffffd, 1},                   // 7/-2 = -3 rem 1
		{0x00001234, 0, 0xffffffff, 0x00001234},          // div by zero, positive
		{0x80001234, 0, 0x00000001, 0x80001234},          // div by zero, negative
	}
	for _, test := range tests {
		var cs CPUState
		cs.R[1] = test.num
		cs.R[2] = test.den
		run(&cs, IRInst{Op: OpDiv, Src1: 1, Src2: 2})
		if cs.Lo != test.lo || cs.Hi != test.hi {
			t.Errorf("Div(%08x,%08x) got: lo=%08x hi=%08x want: lo=%08x hi=%08x",
				test.num, test.den, cs.Lo, cs.Hi, test.lo, test.hi)
		}
	}
}

func TestDivUEdges(t *testing.T) {
	tests := []struct {
		num, den uint32
		lo, hi   uint32
	}{
		{0x0000abcd, 0, 0x0000ffff, 0x0000abcd},
		{0x00010000, 0, 0xffffffff, 0x00010000},
		{100, 7, 14, 2},
		{0xffffffff, 0x10000, 0xffff, 0xffff},
	}
	for _, test := range tests {
		var cs CPUState
		cs.R[1] = test.num
		cs.R[2] = test.den
		run(&cs, IRInst{Op: OpDivU, Src1: 1, Src2: 2})
		if cs.Lo != test.lo || cs.Hi != test.hi {
			t.Errorf("DivU(%08x,%08x) got: lo=%08x hi=%08x want: lo=%08x hi=%08x",
				test.num, test.den, cs.Lo, cs.Hi, test.lo, test.hi)
		}
	}
}

func TestLoadStoreWidths(t *testing.T) {
	mem.PutWord(0x2000, 0xddccbbaa)
	var cs CPUState
	cs.R[1] = 0x2000
	run(&cs,
		IRInst{Op: OpLoad8, Dest: 2, Src1: 1, Constant: 3},
		IRInst{Op: OpLoad8Ext, Dest: 3, Src1: 1, Constant: 3},
		IRInst{Op: OpLoad16, Dest: 4, Src1: 1, Constant: 2},
		IRInst{Op: OpLoad16Ext, Dest: 5, Src1: 1, Constant: 2},
		IRInst{Op: OpLoad32, Dest: 6, Src1: 1, Constant: 0},
	)
	if cs.R[2] != 0xdd {
		t.Errorf("Wrong load8 got: %08x", cs.R[2])
	}
	if cs.R[3] != 0xffffffdd {
		t.Errorf("Wrong load8ext got: %08x", cs.R[3])
	}
	if cs.R[4] != 0xddcc {
		t.Errorf("Wrong load16 got: %08x", cs.R[4])
	}
	if cs.R[5] != 0xffffddcc {
		t.Errorf("Wrong load16ext got: %08x", cs.R[5])
	}
	if cs.R[6] != 0xddccbbaa {
		t.Errorf("Wrong load32 got: %08x", cs.R[6])
	}

	cs.R[7] = 0x55667788
	run(&cs,
		IRInst{Op: OpStore8, Src1: 1, Src3: 7, Constant: 0x10},
		IRInst{Op: OpStore16, Src1: 1, Src3: 7, Constant: 0x14},
		IRInst{Op: OpStore32, Src1: 1, Src3: 7, Constant: 0x18},
	)
	if got := mem.GetByte(0x2010); got != 0x88 {
		t.Errorf("Wrong store8 got: %02x", got)
	}
	if got := mem.GetHalf(0x2014); got != 0x7788 {
		t.Errorf("Wrong store16 got: %04x", got)
	}
	if got := mem.GetWord(0x2018); got != 0x55667788 {
		t.Errorf("Wrong store32 got: %08x", got)
	}
}

// Negative offsets are encoded as wrapping constants.
func TestLoadNegativeOffset(t *testing.T) {
	mem.PutWord(0x3000, 0x12345678)
	var cs CPUState
	cs.R[1] = 0x3004
	run(&cs, IRInst{Op: OpLoad32, Dest: 2, Src1: 1, Constant: 0xfffffffc})
	if cs.R[2] != 0x12345678 {
		t.Errorf("Wrong load got: %08x", cs.R[2])
	}
}

func TestLoadWordLeftRight(t *testing.T) {
	// Little endian word 0xddccbbaa at 0x1000.
	mem.PutByte(0x1000, 0xaa)
	mem.PutByte(0x1001, 0xbb)
	mem.PutByte(0x1002, 0xcc)
	mem.PutByte(0x1003, 0xdd)

	var cs CPUState
	cs.R[1] = 0x1002
	cs.R[5] = 0x11223344
	run(&cs,
		IRInst{Op: OpLoad32Left, Dest: 5, Src1: 1, Constant: 0},
		IRInst{Op: OpLoad32Right, Dest: 5, Src1: 1, Constant: 0xfffffffe}, // ea = 0x1000
	)
	if cs.R[5] != 0xddccbbaa {
		t.Errorf("Wrong lwl/lwr reconstruction got: %08x", cs.R[5])
	}
}

func TestLoadWordLeftMerge(t *testing.T) {
	mem.PutWord(0x1000, 0xddccbbaa)
	var cs CPUState
	cs.R[1] = 0x1001
	cs.R[5] = 0x11223344
	run(&cs, IRInst{Op: OpLoad32Left, Dest: 5, Src1: 1, Constant: 0})
	// shift=8, keep low 2 bytes, word shifted left 16.
	if cs.R[5] != 0xbbaa3344 {
		t.Errorf("Wrong lwl merge got: %08x", cs.R[5])
	}
}

func TestStoreWordLeftRight(t *testing.T) {
	mem.PutWord(0x1100, 0xddccbbaa)
	var cs CPUState
	cs.R[1] = 0x1102
	cs.R[7] = 0x11223344
	run(&cs, IRInst{Op: OpStore32Left, Src1: 1, Src3: 7, Constant: 0})
	// shift=16, store reg>>8 under mask 0xff000000 kept from memory.
	if got := mem.GetWord(0x1100); got != 0xdd112233 {
		t.Errorf("Wrong swl got: %08x", got)
	}

	mem.PutWord(0x1100, 0xddccbbaa)
	run(&cs, IRInst{Op: OpStore32Right, Src1: 1, Src3: 7, Constant: 0})
	// shift=16, store reg<<16 over low halfword preserved.
	if got := mem.GetWord(0x1100); got != 0x3344bbaa {
		t.Errorf("Wrong swr got: %08x", got)
	}
}

// A full unaligned store pair writes the register across the boundary.
func TestStoreWordPair(t *testing.T) {
	mem.PutWord(0x1200, 0x00000000)
	mem.PutWord(0x1204, 0x00000000)
	var cs CPUState
	cs.R[1] = 0x1202
	cs.R[7] = 0x8899aabb
	run(&cs,
		IRInst{Op: OpStore32Right, Src1: 1, Src3: 7, Constant: 0},
		IRInst{Op: OpStore32Left, Src1: 1, Src3: 7, Constant: 3},
	)
	if got := mem.GetWord(0x1200); got != 0xaabb0000 {
		t.Errorf("Wrong low word got: %08x", got)
	}
	if got := mem.GetWord(0x1204); got != 0x00008899 {
		t.Errorf("Wrong high word got: %08x", got)
	}
}
