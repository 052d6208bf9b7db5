/*
 * ARM emulator - Configuration file parser.
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

package configparser

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line>    := <keyword> *(<whitespace> <option>)
 * <keyword> := 'MEMORY' | 'LOG'
 * <option>  := <name> | <name> '=' <value>
 * <value>   := <number> | <hexnumber> | <number> 'K' | <string>
 *
 * Statements:
 *   MEMORY SIZE=64K          RAM size in bytes, K suffix and 0x accepted.
 *   LOG FILE=run.log DEBUG   Log destination and debug gate.
 */

// Config holds the machine options a file can set. Command line
// flags override whatever is read here.
type Config struct {
	RAMSize uint32 // Zero means the built in default.
	LogFile string
	Debug   bool
}

// Option is one NAME or NAME=VALUE element of a statement line.
type Option struct {
	Name     string
	EqualOpt string
}

var lineNumber int

// LoadConfigFile reads and applies a configuration file.
func LoadConfigFile(name string) (*Config, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := &Config{}
	lineNumber = 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNumber++
		if err := cfg.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) parseLine(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	keyword := strings.ToUpper(fields[0])
	options := make([]Option, 0, len(fields)-1)
	for _, f := range fields[1:] {
		name, value, _ := strings.Cut(f, "=")
		options = append(options, Option{Name: strings.ToUpper(name), EqualOpt: value})
	}

	switch keyword {
	case "MEMORY":
		return cfg.parseMemory(options)
	case "LOG":
		return cfg.parseLog(options)
	default:
		return fmt.Errorf("line %d: unknown keyword: %s", lineNumber, keyword)
	}
}

func (cfg *Config) parseMemory(options []Option) error {
	for _, opt := range options {
		switch opt.Name {
		case "SIZE":
			size, err := parseSize(opt.EqualOpt)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNumber, err)
			}
			cfg.RAMSize = size
		default:
			return fmt.Errorf("line %d: unknown MEMORY option: %s", lineNumber, opt.Name)
		}
	}
	return nil
}

func (cfg *Config) parseLog(options []Option) error {
	for _, opt := range options {
		switch opt.Name {
		case "FILE":
			if opt.EqualOpt == "" {
				return fmt.Errorf("line %d: LOG FILE needs a value", lineNumber)
			}
			cfg.LogFile = opt.EqualOpt
		case "DEBUG":
			cfg.Debug = true
		default:
			return fmt.Errorf("line %d: unknown LOG option: %s", lineNumber, opt.Name)
		}
	}
	return nil
}

// parseSize accepts decimal, 0x hex, and a K multiplier suffix. The
// result must be a positive multiple of 4.
func parseSize(value string) (uint32, error) {
	if value == "" {
		return 0, fmt.Errorf("SIZE needs a value")
	}
	mult := uint64(1)
	upper := strings.ToUpper(value)
	if strings.HasSuffix(upper, "K") {
		mult = 1024
		upper = strings.TrimSuffix(upper, "K")
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(upper), "0x"), sizeBase(upper), 64)
	if err != nil {
		return 0, fmt.Errorf("bad SIZE value: %s", value)
	}
	n *= mult
	if n == 0 || n%4 != 0 || n > 1<<32-4 {
		return 0, fmt.Errorf("SIZE must be a positive multiple of 4: %s", value)
	}
	return uint32(n), nil
}

func sizeBase(value string) int {
	if strings.HasPrefix(strings.ToLower(value), "0x") {
		return 16
	}
	return 10
}
