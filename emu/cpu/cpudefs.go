/*
 * ARM emulator - CPU definitions.
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

// Number of registers: 13 general purpose, SP, LR, PC and CPSR.
const regNum = 17

// Register aliases.
const (
	regSP   = 13
	regLR   = 14
	regPC   = 15
	regCPSR = 16
)

// CPSR flag bit positions. The flags live in the top four bits of
// register 16; the lower bits are reserved and held at zero.
const (
	flagV = 28 // Signed overflow
	flagC = 29 // Carry, borrow or shifter carry out
	flagZ = 30 // Last result was zero
	flagN = 31 // Sign of last result
)

// Condition codes.
const (
	condEQ = 0x0
	condNE = 0x1
	condCS = 0x2
	condCC = 0x3
	condMI = 0x4
	condPL = 0x5
	condVS = 0x6
	condVC = 0x7
	condHI = 0x8
	condLS = 0x9
	condGE = 0xA
	condLT = 0xB
	condGT = 0xC
	condLE = 0xD
	condAL = 0xE
)

// Data processing opcodes.
const (
	opAND = 0x0
	opEOR = 0x1
	opSUB = 0x2
	opRSB = 0x3
	opADD = 0x4
	opTST = 0x8
	opTEQ = 0x9
	opCMP = 0xA
	opORR = 0xC
	opMOV = 0xD
)

// Shift types for the barrel shifter.
const (
	shiftLSL = 0
	shiftLSR = 1
	shiftASR = 2
	shiftROR = 3
)

// Block data transfer addressing modes, as encoded by the P and U
// bits taken together.
const (
	addrPostDec = 0
	addrPostInc = 1
	addrPreDec  = 2
	addrPreInc  = 3
)

// Decoder magic values.
const (
	multMagic = 0x9
	bxMagic   = 0x12FFF1
)

// instType tags a decoded instruction with its family.
type instType int

const (
	instProc   instType = iota // Data processing
	instMult                   // Multiply
	instSDT                    // Single data transfer
	instBranch                 // Branch
	instBX                     // Branch and exchange
	instBDT                    // Block data transfer
	instHalt                   // Zero word, stops the machine
	instEmpty                  // Pipeline bubble
)

func (t instType) String() string {
	switch t {
	case instProc:
		return "PROC"
	case instMult:
		return "MULT"
	case instSDT:
		return "SDT"
	case instBranch:
		return "BRANCH"
	case instBX:
		return "BX"
	case instBDT:
		return "BDT"
	case instHalt:
		return "HALT"
	case instEmpty:
		return "EMPTY"
	}
	return "UNKNOWN"
}

// Per family field records. The decoder extracts every field up
// front; execution never goes back to the raw word.

type procInst struct {
	imm    bool   // Operand 2 is a rotated immediate
	opcode uint8  // Operation, one of the op constants
	set    bool   // Update the condition flags
	rn     uint8  // First operand register
	rd     uint8  // Destination register
	op2    uint16 // 12 bit operand field
}

type multInst struct {
	acc bool // Accumulate Rn into the product
	set bool // Update the condition flags
	rd  uint8
	rn  uint8
	rs  uint8
	rm  uint8
}

type sdtInst struct {
	reg    bool // Offset is a shifted register, not a literal
	pre    bool // Pre indexed addressing
	up     bool // Add the offset instead of subtracting
	byt    bool // Byte quantity bit, unused
	wb     bool // Write back bit, addressing is implied by pre
	load   bool // Load instead of store
	rn     uint8
	rd     uint8
	offset uint16
}

type bdtInst struct {
	mode    uint8 // P and U bits, one of the addr constants
	psr     bool  // S bit, ignored by design
	wb      bool  // Write the final address back to Rn
	load    bool  // Load instead of store
	rn      uint8
	regBits uint16 // Register selection bitmap
}

type branchInst struct {
	link   bool   // Save the return address in LR
	offset uint32 // 24 bit signed word offset
}

type bxInst struct {
	rn uint8
}

// decoded is the pipeline's decode slot: the family tag, the raw
// word it came from, the condition, and the field record matching
// the tag.
type decoded struct {
	typ  instType
	raw  uint32
	cond uint8

	proc   procInst
	mult   multInst
	sdt    sdtInst
	bdt    bdtInst
	branch branchInst
	bx     bxInst
}
