/*
 * ARM emulator - Instruction execution.
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
	"os"

	"github.com/ICTeam34/arm-emulator/util/bits"
)

// executeProc runs a data processing instruction. The carry scratch
// is cleared first; the operand evaluation and the opcode both feed
// it, and the S bit collapses it into the C flag at the end. The V
// flag is never updated.
func (cpu *cpuState) executeProc(inst *procInst) {
	cpu.cTemp = 0

	var operandVal uint32
	if inst.imm {
		// Rotate the 8 bit immediate right by twice the 4 bit
		// rotate field.
		rotateBy := uint8(bits.Bits(uint32(inst.op2), 8, 11) * 2)
		operandVal = cpu.rotateRight(bits.Bits(uint32(inst.op2), 0, 7), rotateBy)
	} else {
		operandVal = cpu.getNotImmediate(inst.op2, true)
	}

	var result int32

	switch inst.opcode {
	case opAND:
		result = int32(cpu.regs[inst.rn] & operandVal)
		cpu.regs[inst.rd] = uint32(result)
	case opEOR:
		result = int32(cpu.regs[inst.rn] ^ operandVal)
		cpu.regs[inst.rd] = uint32(result)
	case opSUB:
		result = int32(cpu.regs[inst.rn] - operandVal)
		cpu.cTemp = cpu.subCarry(uint32(result), cpu.regs[inst.rn], operandVal)
		cpu.regs[inst.rd] = uint32(result)
	case opRSB:
		result = int32(operandVal - cpu.regs[inst.rn])
		cpu.cTemp = cpu.subCarry(uint32(result), cpu.regs[inst.rn], operandVal)
		cpu.regs[inst.rd] = uint32(result)
	case opADD:
		// 64 bit add makes the carry out of bit 32 trivial.
		realResult := uint64(cpu.regs[inst.rn]) + uint64(operandVal)
		result = int32(uint32(realResult))
		cpu.cTemp += uint32(realResult >> 32)
		cpu.regs[inst.rd] = uint32(result)
	case opTST:
		result = int32(cpu.regs[inst.rn] & operandVal)
	case opTEQ:
		result = int32(cpu.regs[inst.rn] ^ operandVal)
	case opCMP:
		result = int32(cpu.regs[inst.rn] - operandVal)
		cpu.cTemp = cpu.subCarry(uint32(result), cpu.regs[inst.rn], operandVal)
	case opORR:
		result = int32(cpu.regs[inst.rn] | operandVal)
		cpu.regs[inst.rd] = uint32(result)
	case opMOV:
		result = int32(operandVal)
		cpu.regs[inst.rd] = uint32(result)
		if inst.rd == regPC {
			cpu.flushPipeline()
		}
	}

	if inst.set {
		cpu.setFlag(flagZ, uint32(result) == 0)
		cpu.setFlag(flagN, result < 0)
		cpu.setFlag(flagC, cpu.cTemp > 0)
	}
}

// subCarry derives the borrow for the subtracting opcodes. This is
// the machine's historical rule, not the ARM one: it compares the
// unsigned result against Rn and the operand against zero.
func (cpu *cpuState) subCarry(result, rn, operand uint32) uint32 {
	if (result < rn) != (operand > 0) {
		return 0
	}
	return 1
}

// executeMult runs a multiply, optionally accumulating Rn. With the
// S bit, N tracks bit 31 of the product and Z is set on a zero
// product but never cleared on a non zero one.
func (cpu *cpuState) executeMult(inst *multInst) {
	if inst.acc {
		cpu.regs[inst.rd] = cpu.regs[inst.rm]*cpu.regs[inst.rs] + cpu.regs[inst.rn]
	} else {
		cpu.regs[inst.rd] = cpu.regs[inst.rm] * cpu.regs[inst.rs]
	}

	if inst.set {
		cpu.setFlag(flagN, bits.Bit(cpu.regs[inst.rd], 31))
		if cpu.regs[inst.rd] == 0 {
			cpu.setFlag(flagZ, true)
		}
	}
}

// executeSDT runs a single data transfer. The effective address is
// dispatched through the device table; misses and the rejected
// operand shapes skip the memory effect but the pipeline still
// advances. The write back bit is not honored separately: write back
// happens exactly when post indexing.
func (cpu *cpuState) executeSDT(inst *sdtInst) {
	rm := uint8(bits.Bits(uint32(inst.offset), 0, 3))

	if !inst.load && inst.rd == regPC {
		fmt.Fprintln(os.Stderr, "Error: PC is source register in str")
		return
	}

	offsetVal := int32(inst.offset)
	if inst.reg {
		if !inst.pre && inst.rn == rm {
			fmt.Fprintln(os.Stderr, "Error: Offset register = base register in postindexing")
			return
		}
		if rm == regPC {
			fmt.Fprintln(os.Stderr, "Error: PC is specified as register offset")
			return
		}
		offsetVal = int32(cpu.getNotImmediate(inst.offset, false))
	}

	if !inst.up {
		offsetVal = -offsetVal
	}

	rnContent := int32(cpu.regs[inst.rn])
	if inst.pre {
		rnContent += offsetVal
	}

	address := uint32(rnContent)
	device := cpu.devices.Find(address)
	if device == nil {
		fmt.Printf("Error: Out of bounds memory access at address 0x%08x\n", address)
		return
	}

	if inst.load {
		cpu.regs[inst.rd] = device.Read(address)
	} else {
		device.Write(address, cpu.regs[inst.rd])
	}

	if !inst.pre {
		cpu.regs[inst.rn] += uint32(offsetVal)
	}
}

// executeBDT runs a block data transfer. The walking address lives
// in a 16 bit temporary, so the base and the written back value are
// truncated. The S bit is ignored.
func (cpu *cpuState) executeBDT(inst *bdtInst) {
	addr := uint16(cpu.regs[inst.rn])
	regv := bits.RegList(uint32(inst.regBits))

	var after uint16
	if inst.load {
		after = cpu.loadBlocks(regv, uint32(addr), inst.mode)
	} else {
		after = cpu.storeBlocks(regv, uint32(addr), inst.mode)
	}

	if inst.wb {
		cpu.regs[inst.rn] = uint32(after)
	}
}

// storeBlocks writes the listed registers to memory in ascending
// register order and returns the post operation address. The
// decrementing modes drop the address by the full block first and
// then walk upward.
func (cpu *cpuState) storeBlocks(regv []uint32, addr uint32, mode uint8) uint16 {
	device := cpu.devices.Find(addr)
	if device == nil {
		fmt.Printf("Error: Out of bounds memory access at address 0x%08x\n", addr)
		return 0
	}

	var csp uint16
	switch mode {
	case addrPreInc:
		for _, r := range regv {
			addr += 4
			device.Write(addr, cpu.regs[r])
		}
	case addrPostInc:
		for _, r := range regv {
			device.Write(addr, cpu.regs[r])
			addr += 4
		}
	case addrPreDec:
		addr -= 4 * uint32(len(regv))
		csp = uint16(addr)
		for _, r := range regv {
			device.Write(uint32(csp), cpu.regs[r])
			csp += 4
		}
	case addrPostDec:
		addr -= 4 * uint32(len(regv))
		csp = uint16(addr)
		for _, r := range regv {
			csp += 4
			device.Write(uint32(csp), cpu.regs[r])
		}
	}

	return uint16(addr)
}

// loadBlocks reads memory into the listed registers in ascending
// register order and returns the post operation address. Loading
// the PC flushes the pipeline.
func (cpu *cpuState) loadBlocks(regv []uint32, addr uint32, mode uint8) uint16 {
	device := cpu.devices.Find(addr)
	if device == nil {
		fmt.Printf("Error: Out of bounds memory access at address 0x%08x\n", addr)
		return 0
	}

	var csp uint32
	switch mode {
	case addrPreInc:
		for _, r := range regv {
			addr += 4
			cpu.regs[r] = device.Read(addr)
			if r == regPC {
				cpu.flushPipeline()
			}
		}
	case addrPostInc:
		for _, r := range regv {
			cpu.regs[r] = device.Read(addr)
			addr += 4
			if r == regPC {
				cpu.flushPipeline()
			}
		}
	case addrPreDec:
		addr -= 4 * uint32(len(regv))
		csp = addr
		for _, r := range regv {
			cpu.regs[r] = device.Read(csp)
			csp += 4
			if r == regPC {
				cpu.flushPipeline()
			}
		}
	case addrPostDec:
		addr -= 4 * uint32(len(regv))
		csp = addr
		for _, r := range regv {
			csp += 4
			cpu.regs[r] = device.Read(csp)
			if r == regPC {
				cpu.flushPipeline()
			}
		}
	}

	return uint16(addr)
}

// executeBranch adds the sign extended word offset to PC. With the
// link bit, LR receives the address of the next instruction in
// program order, which is PC minus 4 while PC runs two words ahead.
func (cpu *cpuState) executeBranch(inst *branchInst) {
	offset := inst.offset << 2
	if bits.Bit(inst.offset, 23) {
		offset |= 0xFC000000
	}

	if inst.link {
		cpu.regs[regLR] = cpu.regs[regPC] - 4
	}

	cpu.regs[regPC] += offset
	cpu.flushPipeline()
}

// executeBX jumps to the address in Rn with bit 0 cleared. Using the
// PC as the operand is rejected.
func (cpu *cpuState) executeBX(inst *bxInst) {
	if inst.rn == regPC {
		fmt.Fprintln(os.Stderr, "Error: PC is specified as operand in bx")
		return
	}
	cpu.regs[regPC] = cpu.regs[inst.rn] & 0xFFFFFFFE
	cpu.flushPipeline()
}

// rotateRight rotates x right by n bits. A non zero rotate feeds the
// bits that wrapped around into the carry scratch.
func (cpu *cpuState) rotateRight(x uint32, n uint8) uint32 {
	if n > 0 {
		cpu.cTemp += uint32(uint8(bits.Bits(x, 0, int(n)-1)))
	}
	return x>>n | x<<(32-n)
}

// getNotImmediate evaluates the shifted register form of operand 2:
// Rm shifted by an immediate amount or by the low byte of a shift
// register. When carry update is requested, the bits shifted out are
// accumulated into the carry scratch.
//
// Two historical shapes are kept as they are: ASR is a logical shift
// whose result is negated when the input was negative and the result
// non zero, and the ROR carry window is one bit wider than the
// rotate helper's own contribution (which this path overwrites).
func (cpu *cpuState) getNotImmediate(operand uint16, setCTemp bool) uint32 {
	shiftType := uint8(bits.Bits(uint32(operand), 5, 6))
	rm := uint8(bits.Bits(uint32(operand), 0, 3))

	var shiftInt uint8
	if bits.Bit(uint32(operand), 4) {
		shiftReg := uint8(bits.Bits(uint32(operand), 8, 11))
		shiftInt = uint8(cpu.regs[shiftReg])
	} else {
		shiftInt = uint8(bits.Bits(uint32(operand), 7, 11))
	}

	operandVal := cpu.regs[rm]
	cTempNew := cpu.cTemp

	switch shiftType {
	case shiftLSL:
		cTempNew += uint32(uint8(bits.Bits(operandVal, 32-int(shiftInt), 31)))
		operandVal <<= shiftInt
	case shiftLSR:
		if shiftInt > 0 {
			cTempNew += uint32(uint8(bits.Bits(operandVal, 0, int(shiftInt)-1)))
			operandVal >>= shiftInt
		}
	case shiftASR:
		neg := int32(operandVal) < 0
		cTempNew += uint32(uint8(bits.Bits(operandVal, 32-int(shiftInt), 31)))
		operandVal >>= shiftInt
		if neg && operandVal > 0 {
			operandVal = -operandVal
		}
	case shiftROR:
		if shiftInt > 0 {
			cTempNew += uint32(uint8(bits.Bits(operandVal, 0, int(shiftInt))))
		}
		operandVal = cpu.rotateRight(operandVal, shiftInt)
	}

	if setCTemp {
		cpu.cTemp = cTempNew
	}

	return operandVal
}
