/*
 * ARM emulator - CPU state and the fetch/decode/execute pipeline.
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

package cpu

import (
	"fmt"
	"log/slog"

	"github.com/ICTeam34/arm-emulator/emu/devices"
	"github.com/ICTeam34/arm-emulator/emu/memory"
	"github.com/ICTeam34/arm-emulator/util/bits"
)

/*
   The machine runs a three stage pipeline. Each cycle executes the
   previously decoded instruction, decodes the previously fetched
   word, fetches the word at PC and advances PC by 4. An executing
   instruction therefore sees PC eight bytes past its own address,
   and a control flow change must flush the two younger stages.

   Halting is not an instruction: a zero word propagates from fetch
   to decode, and the loop stops when the decode slot reports it.
*/

// Holds the state of the CPU.
type cpuState struct {
	regs [regNum]uint32

	// Pipeline latches.
	hasFetched bool
	fetched    uint32
	decoded    decoded

	// Carry scratch the barrel shifter accumulates into; execute
	// collapses it into the C flag. Any set bit means carry.
	cTemp uint32

	devices memory.Map
	ram     *memory.Region
	timer   *memory.Region
	mailbox *memory.Region
	gpio    *memory.Region
}

var sysCPU cpuState

// InitializeCPU resets the machine to its boot state: registers
// zeroed, pipeline empty, and the standard device table installed
// with RAM first. A ramSize of zero selects the default.
func InitializeCPU(ramSize uint32) {
	sysCPU = cpuState{}
	sysCPU.decoded.typ = instEmpty

	sysCPU.ram = devices.NewRAM(ramSize)
	sysCPU.addDevice(sysCPU.ram)

	sysCPU.timer = devices.NewTimer()
	sysCPU.addDevice(sysCPU.timer)

	sysCPU.mailbox = devices.NewMailbox()
	sysCPU.addDevice(sysCPU.mailbox)

	sysCPU.gpio = devices.NewGPIO()
	sysCPU.addDevice(sysCPU.gpio)
}

func (cpu *cpuState) addDevice(device *memory.Region) {
	cpu.devices = append(cpu.devices, device)
}

// LoadProgram copies a flat binary image to RAM address 0.
func LoadProgram(program []byte) error {
	if len(program)%4 != 0 {
		return fmt.Errorf("the number of bytes in the binary is not divisible by 4")
	}
	if uint32(len(program)) > sysCPU.ram.Size {
		return fmt.Errorf("program of %d bytes does not fit in %d bytes of RAM",
			len(program), sysCPU.ram.Size)
	}
	copy(sysCPU.ram.Mem, program)
	return nil
}

// Loop drives the pipeline until a halt word reaches the decode
// slot.
func Loop() {
	for sysCPU.decoded.typ != instHalt {
		sysCPU.execute()

		if sysCPU.hasFetched {
			sysCPU.decoded = decode(sysCPU.fetched)
		} else {
			// Priming cycle after boot or a flush: inject a
			// bubble and let fetch refill the pipeline.
			sysCPU.decoded = decoded{typ: instEmpty}
			sysCPU.hasFetched = true
		}

		// A PC that ran off the end of RAM fetches a halt word.
		if pc := sysCPU.regs[regPC]; pc <= sysCPU.ram.Size-4 {
			sysCPU.fetched = sysCPU.ram.Read(pc)
		} else {
			fmt.Printf("Error: Out of bounds memory access at address 0x%08x\n", pc)
			sysCPU.fetched = 0
		}

		// Word addressed machine, PC moves in fours.
		sysCPU.regs[regPC] += 4
	}
}

// execute runs the decode slot if its condition holds. Bubbles and
// the halt word have no effect.
func (cpu *cpuState) execute() {
	d := &cpu.decoded
	if d.typ == instHalt || d.typ == instEmpty {
		return
	}

	if !cpu.eval(d.cond) {
		return
	}

	slog.Debug("execute",
		"pc", fmt.Sprintf("0x%08x", cpu.regs[regPC]-8),
		"inst", fmt.Sprintf("0x%08x", d.raw),
		"type", d.typ.String())

	switch d.typ {
	case instProc:
		cpu.executeProc(&d.proc)
	case instMult:
		cpu.executeMult(&d.mult)
	case instSDT:
		cpu.executeSDT(&d.sdt)
	case instBranch:
		cpu.executeBranch(&d.branch)
	case instBX:
		cpu.executeBX(&d.bx)
	case instBDT:
		cpu.executeBDT(&d.bdt)
	}
}

// eval maps a condition code against the current flags.
func (cpu *cpuState) eval(condition uint8) bool {
	n := cpu.flag(flagN)
	z := cpu.flag(flagZ)
	c := cpu.flag(flagC)
	v := cpu.flag(flagV)

	switch condition {
	case condEQ:
		return z
	case condNE:
		return !z
	case condCS:
		return c
	case condCC:
		return !c
	case condMI:
		return n
	case condPL:
		return !n
	case condVS:
		return v
	case condVC:
		return !v
	case condHI:
		return c && !z
	case condLS:
		return !c || z
	case condGE:
		return n == v
	case condLT:
		return n != v
	case condGT:
		return !z && n == v
	case condLE:
		return z || n != v
	case condAL:
		return true
	default:
		// Includes the never encoding 0xF.
		return false
	}
}

func (cpu *cpuState) flag(bit int) bool {
	return bits.Bit(cpu.regs[regCPSR], bit)
}

func (cpu *cpuState) setFlag(bit int, value bool) {
	if value {
		cpu.regs[regCPSR] |= 1 << uint(bit)
	} else {
		cpu.regs[regCPSR] &^= 1 << uint(bit)
	}
}

// flushPipeline invalidates the decode slot and the fetch latch
// after a control flow change, discarding the two instructions
// behind it. The same cycle primes the pipeline again and fetches
// the target, so the next cycle retires a bubble and the target
// executes in the cycle after that.
func (cpu *cpuState) flushPipeline() {
	cpu.hasFetched = false
	cpu.decoded = decoded{typ: instEmpty}
}

// DumpState prints the register file and the non zero RAM words.
// R13 and R14 are left out of the register listing.
func DumpState() {
	fmt.Println("Registers:")
	for i := 0; i < regNum; i++ {
		switch {
		case i < 13:
			fmt.Printf("$%-3d: %10d (0x%08x)\n", i, sysCPU.regs[i], sysCPU.regs[i])
		case i == regPC:
			fmt.Printf("PC  : %10d (0x%08x)\n", sysCPU.regs[i], sysCPU.regs[i])
		case i == regCPSR:
			fmt.Printf("CPSR: %10d (0x%08x)\n", sysCPU.regs[i], sysCPU.regs[i])
		}
	}
	sysCPU.ram.DumpState()
}
