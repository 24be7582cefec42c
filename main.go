/*
 * Allegrex - Main process
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

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/iota97/allegrex/command/monitor"
	config "github.com/iota97/allegrex/config/configparser"
	core "github.com/iota97/allegrex/emu/core"
	master "github.com/iota97/allegrex/emu/master"
	logger "github.com/iota97/allegrex/util/logger"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug records")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	if *optDebug {
		programLevel.Set(slog.LevelDebug)
	}
	slog.SetDefault(slog.New(logger.NewHandler(file, programLevel)))

	slog.Info("Allegrex started")

	if *optConfig != "" {
		if err := config.LoadConfigFile(*optConfig); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
	}

	masterChannel := make(chan master.Packet)

	// The translator that fills the block table is a separate tool;
	// the monitor drives whatever has been installed.
	blocks := core.NewBlockTable()
	cpuCore := core.NewCore(masterChannel, blocks)

	// Start main emulator.
	go cpuCore.Start()

	// The monitor owns the console until quit.
	monitor.ConsoleReader(cpuCore, masterChannel)

	slog.Info("Shutting down CPU")
	cpuCore.Stop()
}
