/*
   Block table used by the core loop.

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

package core

import (
	"sync"

	"github.com/iota97/allegrex/emu/cpu"
)

// BlockTable is a map backed BlockSource the translator (or a test)
// fills in. Blocks are immutable once added; the table may be grown
// from another goroutine while the core runs.
type BlockTable struct {
	mu     sync.RWMutex
	blocks map[uint32][]cpu.IRInst
}

func NewBlockTable() *BlockTable {
	return &BlockTable{blocks: map[uint32][]cpu.IRInst{}}
}

// Add installs the block starting at pc.
func (bt *BlockTable) Add(pc uint32, block []cpu.IRInst) {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	bt.blocks[pc] = block
}

// Lookup resolves pc to its block.
func (bt *BlockTable) Lookup(pc uint32) ([]cpu.IRInst, bool) {
	bt.mu.RLock()
	defer bt.mu.RUnlock()
	block, ok := bt.blocks[pc]
	return block, ok
}
