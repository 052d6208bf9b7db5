/*
 * ARM emulator - Instruction decoder.
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
	"github.com/ICTeam34/arm-emulator/util/bits"
)

// decode classifies a fetched word into its instruction family and
// extracts the family's fields. The BX magic is checked before the
// type bits so it wins over the data processing pattern it would
// otherwise match. Words that fit no family decode to a bubble.
func decode(word uint32) decoded {
	d := decoded{raw: word, cond: uint8(bits.Bits(word, 28, 31))}

	if word == 0 {
		d.typ = instHalt
		return d
	}

	if bits.Bits(word, 4, 27) == bxMagic {
		d.typ = instBX
		d.bx = bxInst{rn: uint8(bits.Bits(word, 0, 3))}
		return d
	}

	switch bits.Bits(word, 26, 27) {
	case 0: // 00
		if bits.Bits(word, 4, 7) == multMagic {
			d.typ = instMult
			d.mult = multInst{
				acc: bits.Bit(word, 21),
				set: bits.Bit(word, 20),
				rd:  uint8(bits.Bits(word, 16, 19)),
				rn:  uint8(bits.Bits(word, 12, 15)),
				rs:  uint8(bits.Bits(word, 8, 11)),
				rm:  uint8(bits.Bits(word, 0, 3)),
			}
		} else {
			d.typ = instProc
			d.proc = procInst{
				imm:    bits.Bit(word, 25),
				opcode: uint8(bits.Bits(word, 21, 24)),
				set:    bits.Bit(word, 20),
				rn:     uint8(bits.Bits(word, 16, 19)),
				rd:     uint8(bits.Bits(word, 12, 15)),
				op2:    uint16(bits.Bits(word, 0, 11)),
			}
		}
	case 1: // 01
		d.typ = instSDT
		d.sdt = sdtInst{
			reg:    bits.Bit(word, 25),
			pre:    bits.Bit(word, 24),
			up:     bits.Bit(word, 23),
			byt:    bits.Bit(word, 22),
			wb:     bits.Bit(word, 21),
			load:   bits.Bit(word, 20),
			rn:     uint8(bits.Bits(word, 16, 19)),
			rd:     uint8(bits.Bits(word, 12, 15)),
			offset: uint16(bits.Bits(word, 0, 11)),
		}
	case 2: // 10
		if bits.Bit(word, 25) {
			d.typ = instBranch
			d.branch = branchInst{
				link:   bits.Bit(word, 24),
				offset: bits.Bits(word, 0, 23),
			}
		} else {
			d.typ = instBDT
			d.bdt = bdtInst{
				mode:    uint8(bits.Bits(word, 23, 24)),
				psr:     bits.Bit(word, 22),
				wb:      bits.Bit(word, 21),
				load:    bits.Bit(word, 20),
				rn:      uint8(bits.Bits(word, 16, 19)),
				regBits: uint16(bits.Bits(word, 0, 15)),
			}
		}
	default:
		d.typ = instEmpty
	}

	return d
}
