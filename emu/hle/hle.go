package hle

/*
 * Allegrex - HLE syscall dispatch and replacement table
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
	"log/slog"

	"github.com/iota97/allegrex/emu/cpu"
)

/*
 * The Syscall IR record carries the encoded MIPS syscall opcode; the
 * call number lives in the code field, bits 6 to 25. Handlers receive
 * the CPU state, read arguments from a0..a3 and leave results in v0,
 * per the guest ABI. Replacement functions stand in for recognized
 * guest routines and report the cycles the original would have spent.
 */

// Handler runs one HLE syscall against the CPU state.
type Handler func(cs *cpu.CPUState)

// ReplacementEntry is one slot of the replacement table.
type ReplacementEntry struct {
	Name    string
	Cycles  int
	Replace func(cs *cpu.CPUState) int
}

type dispatcher struct {
	syscalls     map[uint32]Handler
	replacements []ReplacementEntry
	fallback     func(opcode uint32)
	state        *cpu.CPUState
}

var disp = dispatcher{
	syscalls: map[uint32]Handler{},
	fallback: func(opcode uint32) {
		slog.Warn("no fallback interpreter bound", "opcode", opcode)
	},
}

// Syscall call number from an encoded syscall opcode.
func callNumber(opcode uint32) uint32 {
	return (opcode >> 6) & 0xfffff
}

// Bind attaches the CPU state the handlers operate on and hooks this
// package into the interpreter.
func Bind(cs *cpu.CPUState) {
	disp.state = cs
	cpu.CallSyscall = CallSyscall
	cpu.InterpretOp = InterpretOp
	cpu.GetReplacementFunc = GetReplacementFunc
}

// Register installs a handler for a syscall number.
func Register(num uint32, h Handler) {
	disp.syscalls[num] = h
}

// SetFallback installs the slow single-opcode interpreter.
func SetFallback(fn func(opcode uint32)) {
	disp.fallback = fn
}

// AddReplacement appends a replacement entry and returns its index.
func AddReplacement(entry ReplacementEntry) int {
	disp.replacements = append(disp.replacements, entry)
	return len(disp.replacements) - 1
}

// CallSyscall decodes the opcode and dispatches the handler.
// Unregistered numbers log and continue; the guest sees v0 untouched.
func CallSyscall(opcode uint32) {
	num := callNumber(opcode)
	h, ok := disp.syscalls[num]
	if !ok {
		slog.Warn("unknown syscall", "num", num, "pc", disp.state.PC)
		return
	}
	h(disp.state)
}

// InterpretOp runs one MIPS opcode through the fallback interpreter.
func InterpretOp(opcode uint32) {
	disp.fallback(opcode)
}

// GetReplacementFunc resolves a replacement index. Out of range
// indexes are producer bugs and resolve to a zero cost no-op after
// logging.
func GetReplacementFunc(index int) func() int {
	if index < 0 || index >= len(disp.replacements) {
		slog.Error("bad replacement index", "index", index)
		return func() int { return 0 }
	}
	entry := disp.replacements[index]
	return func() int {
		cycles := entry.Cycles
		if entry.Replace != nil {
			cycles = entry.Replace(disp.state)
		}
		return cycles
	}
}
