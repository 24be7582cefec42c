package memory

/*
 * Allegrex - Guest memory gateway
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
	"encoding/binary"
	"math"
)

/*
 * Flat little endian guest RAM with unchecked accessors. The size is
 * always a power of two and every address is masked to it; bounds and
 * alignment validity is the block producer's problem, as on the real
 * machine where the MMU model vouches for the address.
 */

type mem struct {
	ram  []uint8
	mask uint32
}

var memory mem

const defaultSize = 32 * 1024 // 32M in K

// Set size in K, rounded up to a power of two. Allocates fresh RAM.
func SetSize(k int) {
	if k <= 0 {
		k = defaultSize
	}
	size := uint32(1)
	for size < uint32(k)*1024 {
		size <<= 1
	}
	memory.ram = make([]uint8, size)
	memory.mask = size - 1
}

// Return size of memory in bytes.
func GetSize() uint32 {
	return memory.mask + 1
}

// Get a byte from memory.
func GetByte(addr uint32) uint8 {
	return memory.ram[addr&memory.mask]
}

// Get a half word from memory.
func GetHalf(addr uint32) uint16 {
	addr &= memory.mask
	return binary.LittleEndian.Uint16(memory.ram[addr : addr+2])
}

// Get a word from memory.
func GetWord(addr uint32) uint32 {
	addr &= memory.mask
	return binary.LittleEndian.Uint32(memory.ram[addr : addr+4])
}

// Get a float from memory, no reinterpretation beyond the bits.
func GetFloat(addr uint32) float32 {
	return math.Float32frombits(GetWord(addr))
}

// Put a byte to memory.
func PutByte(addr uint32, data uint8) {
	memory.ram[addr&memory.mask] = data
}

// Put a half word to memory.
func PutHalf(addr uint32, data uint16) {
	addr &= memory.mask
	binary.LittleEndian.PutUint16(memory.ram[addr:addr+2], data)
}

// Put a word to memory.
func PutWord(addr uint32, data uint32) {
	addr &= memory.mask
	binary.LittleEndian.PutUint32(memory.ram[addr:addr+4], data)
}

// Put a float to memory.
func PutFloat(addr uint32, data float32) {
	PutWord(addr, math.Float32bits(data))
}

// GetPointer returns the backing bytes at addr, used for aligned
// 16 byte vector transfers.
func GetPointer(addr uint32) []uint8 {
	return memory.ram[addr&memory.mask:]
}

func init() {
	SetSize(defaultSize)
}
