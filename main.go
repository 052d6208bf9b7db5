/*
 * ARM emulator - Main process.
 *
 * Copyright 2025, ICTeam34
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
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	config "github.com/ICTeam34/arm-emulator/config/configparser"
	cpu "github.com/ICTeam34/arm-emulator/emu/cpu"
	logger "github.com/ICTeam34/arm-emulator/util/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optDebug := getopt.BoolLong("debug", 'd', "Debug logging")
	optNoDump := getopt.BoolLong("no-dump", 'n', "Suppress the state dump")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		return 0
	}

	args := getopt.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: the number of arguments is %d.\n", len(args))
		getopt.Usage()
		return 1
	}

	cfg := &config.Config{}
	if *optConfig != "" {
		var err error
		cfg, err = config.LoadConfigFile(*optConfig)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error: ", err)
			return 1
		}
	}

	// Command line flags win over the configuration file.
	if *optLogFile != "" {
		cfg.LogFile = *optLogFile
	}
	if *optDebug {
		cfg.Debug = true
	}

	var logOut *os.File
	if cfg.LogFile != "" {
		var err error
		logOut, err = os.Create(cfg.LogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error: ", err)
			return 1
		}
		defer logOut.Close()
	}

	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	var handler *logger.LogHandler
	if logOut != nil {
		handler = logger.NewHandler(logOut, &slog.HandlerOptions{Level: programLevel}, cfg.Debug)
	} else {
		handler = logger.NewHandler(nil, &slog.HandlerOptions{Level: programLevel}, cfg.Debug)
	}
	slog.SetDefault(slog.New(handler))

	program, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: Something went wrong while reading the file.")
		return 1
	}

	cpu.InitializeCPU(cfg.RAMSize)
	if err := cpu.LoadProgram(program); err != nil {
		fmt.Fprintln(os.Stderr, "Error: ", err)
		return 1
	}

	slog.Info("Emulation started", "binary", args[0], "bytes", len(program))

	// The execute-decode-fetch pipeline.
	cpu.Loop()

	slog.Info("Emulation halted")

	if !*optNoDump {
		cpu.DumpState()
	}
	return 0
}
