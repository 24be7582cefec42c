package debugger

/*
 * Allegrex - Breakpoint and memory check registry
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
	"sync"
)

/*
 * The interpreter consults this registry from Breakpoint and
 * MemoryCheck records. Other threads (the monitor) add and remove
 * entries, so everything is guarded by one mutex. The skip-first
 * address implements resume-over-breakpoint: the core arms it with
 * the current PC before re-entering a block so the breakpoint that
 * suspended execution does not fire again immediately.
 */

type memCheck struct {
	start uint32
	end   uint32
}

type registry struct {
	mu        sync.Mutex
	breaks    map[uint32]bool
	memChecks []memCheck
	skipFirst uint32
	hasSkip   bool
}

var reg = registry{breaks: map[uint32]bool{}}

// Hit is invoked when a breakpoint or memory check fires, bound by
// the core to its stop handling. Default just logs.
var Hit = func(pc uint32) {
	slog.Info("breakpoint", "pc", pc)
}

// SetBreakpoint arms a breakpoint at pc.
func SetBreakpoint(pc uint32) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.breaks[pc] = true
}

// ClearBreakpoint removes the breakpoint at pc.
func ClearBreakpoint(pc uint32) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.breaks, pc)
}

// IsBreakpoint reports whether pc has a breakpoint armed.
func IsBreakpoint(pc uint32) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.breaks[pc]
}

// Breakpoints returns the armed addresses, for the monitor display.
func Breakpoints() []uint32 {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	list := make([]uint32, 0, len(reg.breaks))
	for pc := range reg.breaks {
		list = append(list, pc)
	}
	return list
}

// SetMemCheck watches accesses in [start, end].
func SetMemCheck(start, end uint32) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.memChecks = append(reg.memChecks, memCheck{start: start, end: end})
}

// ClearMemChecks drops all watch ranges.
func ClearMemChecks() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.memChecks = nil
}

// SetSkipFirst arms the skip for pc. The core arms it before
// resuming over a breakpoint and clears it once the block completes.
func SetSkipFirst(pc uint32) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.skipFirst = pc
	reg.hasSkip = true
}

// ClearSkipFirst disarms the skip address.
func ClearSkipFirst() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.hasSkip = false
}

// CheckSkipFirst returns the armed skip address, or an all ones
// sentinel when none is armed.
func CheckSkipFirst() uint32 {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if !reg.hasSkip {
		return 0xffffffff
	}
	return reg.skipFirst
}

// ExecBreakPoint fires the breakpoint at pc if one is armed.
func ExecBreakPoint(pc uint32) {
	reg.mu.Lock()
	armed := reg.breaks[pc]
	reg.mu.Unlock()
	if armed {
		Hit(pc)
	}
}

// ExecOpMemCheck fires when addr falls inside a watched range.
func ExecOpMemCheck(addr, pc uint32) {
	reg.mu.Lock()
	hit := false
	for _, mc := range reg.memChecks {
		if addr >= mc.start && addr <= mc.end {
			hit = true
			break
		}
	}
	reg.mu.Unlock()
	if hit {
		Hit(pc)
	}
}
