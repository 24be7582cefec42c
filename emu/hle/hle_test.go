package hle

/*
 * Allegrex - HLE dispatch test cases
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

import (
	"testing"

	"github.com/iota97/allegrex/emu/cpu"
)

func TestSyscallDispatch(t *testing.T) {
	var cs cpu.CPUState
	Bind(&cs)

	called := false
	Register(0x2015, func(state *cpu.CPUState) {
		called = true
		// Result lands in v0 per the guest ABI.
		state.R[2] = 0x1234
	})

	// Encoded syscall opcode: code field in bits 6..25.
	CallSyscall(0x2015 << 6)
	if !called {
		t.Error("Syscall handler not dispatched")
	}
	if cs.R[2] != 0x1234 {
		t.Errorf("Wrong syscall result got: %08x", cs.R[2])
	}

	// Unknown numbers log and continue.
	CallSyscall(0x9999 << 6)
}

func TestSyscallThroughInterpreter(t *testing.T) {
	var cs cpu.CPUState
	Bind(&cs)
	Register(0x2020, func(state *cpu.CPUState) {
		state.R[2] = state.R[4] + state.R[5]
	})

	cs.R[4] = 40
	cs.R[5] = 2
	block := []cpu.IRInst{
		{Op: cpu.OpSetPCConst, Constant: 0x08804000},
		{Op: cpu.OpSyscall, Constant: 0x2020 << 6},
		{Op: cpu.OpExitToPC},
	}
	next := cpu.Interpret(&cs, block)
	if next != 0x08804000 {
		t.Errorf("Wrong next pc got: %08x", next)
	}
	if cs.R[2] != 42 {
		t.Errorf("Wrong result got: %d", cs.R[2])
	}
}

func TestReplacement(t *testing.T) {
	var cs cpu.CPUState
	Bind(&cs)

	idx := AddReplacement(ReplacementEntry{Name: "memcpy", Cycles: 100})
	if cycles := GetReplacementFunc(idx)(); cycles != 100 {
		t.Errorf("Wrong fixed cycles got: %d", cycles)
	}

	idx = AddReplacement(ReplacementEntry{
		Name: "strlen",
		Replace: func(state *cpu.CPUState) int {
			state.R[2] = 7
			return 30
		},
	})
	if cycles := GetReplacementFunc(idx)(); cycles != 30 {
		t.Errorf("Wrong computed cycles got: %d", cycles)
	}
	if cs.R[2] != 7 {
		t.Errorf("Replacement did not run got: %08x", cs.R[2])
	}

	// Bad index degrades to a zero cost no-op.
	if cycles := GetReplacementFunc(9999)(); cycles != 0 {
		t.Errorf("Wrong bad index cycles got: %d", cycles)
	}
}

func TestReplacementThroughInterpreter(t *testing.T) {
	var cs cpu.CPUState
	Bind(&cs)
	idx := AddReplacement(ReplacementEntry{Name: "memset", Cycles: 250})

	cs.Downcount = 1000
	block := []cpu.IRInst{
		{Op: cpu.OpCallReplacement, Constant: uint32(idx)},
		{Op: cpu.OpExitToConst, Constant: 0x1000},
	}
	cpu.Interpret(&cs, block)
	if cs.Downcount != 750 {
		t.Errorf("Wrong downcount got: %d", cs.Downcount)
	}
}

func TestFallback(t *testing.T) {
	var cs cpu.CPUState
	Bind(&cs)
	var gotOp uint32
	SetFallback(func(opcode uint32) { gotOp = opcode })
	InterpretOp(0x00431021) // addu v0, v0, v1
	if gotOp != 0x00431021 {
		t.Errorf("Wrong fallback opcode got: %08x", gotOp)
	}
}
