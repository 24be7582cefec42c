/*
 * Allegrex - Interactive monitor
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

package monitor

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/iota97/allegrex/emu/core"
	"github.com/iota97/allegrex/emu/debugger"
	"github.com/iota97/allegrex/emu/master"
	mem "github.com/iota97/allegrex/emu/memory"
)

type command struct {
	name string
	help string
	fn   func(args []string, core *core.Core, masterChan chan master.Packet) (bool, error)
}

var commands []command

func init() {
	commands = []command{
		{"run", "resume execution", cmdRun},
		{"stop", "halt after the current block", cmdStop},
		{"step", "step [n] blocks", cmdStep},
		{"regs", "show general registers", cmdRegs},
		{"freg", "freg n, show an FP register", cmdFreg},
		{"setreg", "setreg n value", cmdSetReg},
		{"mem", "mem addr [words]", cmdMem},
		{"break", "break addr, arm a breakpoint", cmdBreak},
		{"unbreak", "unbreak addr", cmdUnbreak},
		{"help", "show commands", cmdHelp},
		{"quit", "shut down", cmdQuit},
	}
}

// ConsoleReader runs the monitor until quit or Ctrl-C.
func ConsoleReader(core *core.Core, masterChan chan master.Packet) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completeCmd)

	for {
		text, err := line.Prompt("psp> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			slog.Error("error reading line: " + err.Error())
			return
		}
		line.AppendHistory(text)

		quit, err := processCommand(text, core, masterChan)
		if err != nil {
			fmt.Println("Error: " + err.Error())
		}
		if quit {
			return
		}
	}
}

func completeCmd(text string) []string {
	var matches []string
	for _, cmd := range commands {
		if strings.HasPrefix(cmd.name, strings.ToLower(text)) {
			matches = append(matches, cmd.name)
		}
	}
	return matches
}

func processCommand(text string, core *core.Core, masterChan chan master.Packet) (bool, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false, nil
	}
	name := strings.ToLower(fields[0])
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd.fn(fields[1:], core, masterChan)
		}
	}
	return false, errors.New("unknown command: " + name)
}

func parseHex(text string) (uint32, error) {
	value, err := strconv.ParseUint(strings.TrimPrefix(text, "0x"), 16, 32)
	if err != nil {
		return 0, errors.New("bad hex value: " + text)
	}
	return uint32(value), nil
}

func cmdRun(_ []string, _ *core.Core, masterChan chan master.Packet) (bool, error) {
	masterChan <- master.Packet{Msg: master.Start}
	return false, nil
}

func cmdStop(_ []string, _ *core.Core, masterChan chan master.Packet) (bool, error) {
	masterChan <- master.Packet{Msg: master.Stop}
	return false, nil
}

func cmdStep(args []string, _ *core.Core, masterChan chan master.Packet) (bool, error) {
	count := uint32(1)
	if len(args) > 0 {
		n, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return false, errors.New("bad step count: " + args[0])
		}
		count = uint32(n)
	}
	masterChan <- master.Packet{Msg: master.Step, Value: count}
	return false, nil
}

func cmdRegs(_ []string, core *core.Core, _ chan master.Packet) (bool, error) {
	cs := core.State()
	fmt.Printf("PC=%08x LO=%08x HI=%08x CC=%02x\n",
		cs.PC, cs.Lo, cs.Hi, cs.VfpuCtrl[3])
	for i := 0; i < 32; i += 4 {
		fmt.Printf("r%-2d %08x  r%-2d %08x  r%-2d %08x  r%-2d %08x\n",
			i, cs.R[i], i+1, cs.R[i+1], i+2, cs.R[i+2], i+3, cs.R[i+3])
	}
	return false, nil
}

func cmdFreg(args []string, core *core.Core, _ chan master.Packet) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("usage: freg n")
	}
	n, err := strconv.ParseUint(args[0], 10, 8)
	if err != nil {
		return false, errors.New("bad register number: " + args[0])
	}
	cs := core.State()
	fmt.Printf("f%d = %08x (%g)\n", n, cs.FP[n], cs.F(uint8(n)))
	return false, nil
}

func cmdSetReg(args []string, core *core.Core, _ chan master.Packet) (bool, error) {
	if len(args) != 2 {
		return false, errors.New("usage: setreg n value")
	}
	n, err := strconv.ParseUint(args[0], 10, 5)
	if err != nil || n == 0 {
		return false, errors.New("bad register number: " + args[0])
	}
	value, err := parseHex(args[1])
	if err != nil {
		return false, err
	}
	core.State().R[n] = value
	return false, nil
}

func cmdMem(args []string, _ *core.Core, _ chan master.Packet) (bool, error) {
	if len(args) < 1 {
		return false, errors.New("usage: mem addr [words]")
	}
	addr, err := parseHex(args[0])
	if err != nil {
		return false, err
	}
	words := 4
	if len(args) > 1 {
		words, err = strconv.Atoi(args[1])
		if err != nil {
			return false, errors.New("bad word count: " + args[1])
		}
	}
	for i := 0; i < words; i++ {
		if i%4 == 0 {
			fmt.Printf("\n%08x:", addr+uint32(i*4))
		}
		fmt.Printf(" %08x", mem.GetWord(addr+uint32(i*4)))
	}
	fmt.Println()
	return false, nil
}

func cmdBreak(args []string, _ *core.Core, _ chan master.Packet) (bool, error) {
	if len(args) == 0 {
		list := debugger.Breakpoints()
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
		for _, pc := range list {
			fmt.Printf("break %08x\n", pc)
		}
		return false, nil
	}
	addr, err := parseHex(args[0])
	if err != nil {
		return false, err
	}
	debugger.SetBreakpoint(addr)
	return false, nil
}

func cmdUnbreak(args []string, _ *core.Core, _ chan master.Packet) (bool, error) {
	if len(args) != 1 {
		return false, errors.New("usage: unbreak addr")
	}
	addr, err := parseHex(args[0])
	if err != nil {
		return false, err
	}
	debugger.ClearBreakpoint(addr)
	return false, nil
}

func cmdHelp(_ []string, _ *core.Core, _ chan master.Packet) (bool, error) {
	for _, cmd := range commands {
		fmt.Printf("%-8s %s\n", cmd.name, cmd.help)
	}
	return false, nil
}

func cmdQuit(_ []string, _ *core.Core, _ chan master.Packet) (bool, error) {
	return true, nil
}
