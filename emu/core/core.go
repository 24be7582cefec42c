/*
   Core Allegrex emulator loop.

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
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iota97/allegrex/emu/cpu"
	"github.com/iota97/allegrex/emu/debugger"
	"github.com/iota97/allegrex/emu/event"
	"github.com/iota97/allegrex/emu/hle"
	"github.com/iota97/allegrex/emu/master"
)

/*
   The interpreter executes exactly one block per call; this loop
   drives it block by block, resolving each returned next-PC through
   the block source and feeding consumed cycles to the event
   scheduler. Run state transitions are observed between blocks only,
   matching the no-mid-block-cancellation contract.
*/

// BlockSource resolves a guest PC to the IR block starting there.
// The translator that populates it is outside this repository; tests
// and main install table driven sources.
type BlockSource interface {
	Lookup(pc uint32) ([]cpu.IRInst, bool)
}

// Cycle budget handed to the guest between scheduler checks.
const sliceCycles = 1 << 16

const (
	stateStopped int32 = iota
	stateRunning
	stateStepping
)

type Core struct {
	wg      sync.WaitGroup
	done    chan struct{} // Signal to shutdown the core
	master  chan master.Packet
	blocks  BlockSource
	state   *cpu.CPUState
	run     atomic.Int32
	stepsWanted uint32
}

// NewCore wires the interpreter hooks to this core and returns it
// ready to Start.
func NewCore(masterChan chan master.Packet, blocks BlockSource) *Core {
	core := &Core{
		master: masterChan,
		done:   make(chan struct{}),
		blocks: blocks,
		state:  &cpu.CPUState{},
	}

	cpu.CoreBreak = core.Break
	cpu.CoreStillRunning = core.Running
	debugger.Hit = func(pc uint32) {
		slog.Info("execution stopped", "pc", pc)
		core.run.Store(stateStopped)
	}
	hle.Bind(core.state)
	return core
}

// State exposes the CPU state to the monitor.
func (core *Core) State() *cpu.CPUState {
	return core.state
}

// Running reports whether the core is still in the running state.
func (core *Core) Running() bool {
	return core.run.Load() != stateStopped
}

// Break asks the core to stop after the current block.
func (core *Core) Break() {
	core.run.Store(stateStopped)
}

// Start runs the core until Stop. Call on its own goroutine.
func (core *Core) Start() {
	core.wg.Add(1)
	defer core.wg.Done()

	for {
		if core.run.Load() != stateStopped {
			core.runSlice()
		}

		select {
		case <-core.done:
			slog.Info("Shutdown CPU core")
			return
		case packet := <-core.master:
			core.processPacket(packet)
		default:
		}
	}
}

// Run one downcount slice of blocks, then advance the events by what
// was consumed.
func (core *Core) runSlice() {
	cs := core.state
	cs.Downcount = sliceCycles

	for cs.Downcount > 0 && core.run.Load() != stateStopped {
		block, ok := core.blocks.Lookup(cs.PC)
		if !ok {
			slog.Error("no block for pc", "pc", cs.PC)
			core.run.Store(stateStopped)
			break
		}

		next := cpu.Interpret(cs, block)
		if next != 0 {
			cs.PC = next
		}
		debugger.ClearSkipFirst()

		if event.Forced() {
			break
		}
		if core.run.Load() == stateStepping {
			if core.stepsWanted > 0 {
				core.stepsWanted--
			}
			if core.stepsWanted == 0 {
				core.run.Store(stateStopped)
			}
		}
	}

	event.Advance(sliceCycles - int(cs.Downcount))
}

// Stop a running core and wait for the goroutine to drain.
func (core *Core) Stop() {
	close(core.done)
	done := make(chan struct{})
	go func() {
		core.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for CPU to finish.")
		return
	}
}

// Process a packet sent to the core.
func (core *Core) processPacket(packet master.Packet) {
	switch packet.Msg {
	case master.Start:
		// Resume over an armed breakpoint at the current PC.
		debugger.SetSkipFirst(core.state.PC)
		core.run.Store(stateRunning)
	case master.Stop:
		core.run.Store(stateStopped)
	case master.Step:
		count := packet.Value
		if count == 0 {
			count = 1
		}
		core.stepsWanted = count
		debugger.SetSkipFirst(core.state.PC)
		core.run.Store(stateStepping)
	case master.SetPC:
		core.state.PC = packet.Value
	}
}
