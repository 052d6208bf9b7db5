/*
 * ARM emulator - Instruction decoder tests.
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
	"testing"
)

func TestDecodeTypes(t *testing.T) {
	tests := []struct {
		word uint32
		want instType
	}{
		{0x00000000, instHalt},
		{0xE12FFF11, instBX},     // Magic wins over the PROC pattern.
		{0x012FFF1F, instBX},     // Any condition, any Rn.
		{0xE3A01005, instProc},   // MOV R1,#5
		{0xE0923002, instProc},   // ADDS R3,R2,R2
		{0xE0030291, instMult},   // MUL R3,R1,R2
		{0xE0234192, instMult},   // MLA R3,R2,R1,R4
		{0xE5810000, instSDT},    // STR R0,[R1]
		{0xE5912000, instSDT},    // LDR R2,[R1]
		{0xEA000001, instBranch}, // B +4
		{0x1AFFFFFC, instBranch}, // BNE -16
		{0xE8B1001C, instBDT},    // LDMIA R1!,{R2-R4}
		{0xE92D0003, instBDT},    // STMDB R13!,{R0,R1}
		{0xEC000000, instEmpty},  // Type bits 11 fit no family.
	}

	for _, test := range tests {
		if got := decode(test.word).typ; got != test.want {
			t.Errorf("decode(%08x) type got: %v expected: %v", test.word, got, test.want)
		}
	}
}

func TestDecodeCondition(t *testing.T) {
	for cond := uint32(0); cond < 16; cond++ {
		word := cond<<28 | 0x03A01005 // MOV R1,#5 under every condition.
		d := decode(word)
		if d.cond != uint8(cond) {
			t.Errorf("decode(%08x) cond got: %x expected: %x", word, d.cond, cond)
		}
	}
}

func TestDecodeProcFields(t *testing.T) {
	d := decode(0xE2422001) // SUB R2,R2,#1
	if d.typ != instProc {
		t.Fatalf("type got: %v expected: PROC", d.typ)
	}
	p := d.proc
	if !p.imm || p.opcode != opSUB || p.set || p.rn != 2 || p.rd != 2 || p.op2 != 1 {
		t.Errorf("SUB fields got: %+v", p)
	}

	d = decode(0xE0923002) // ADDS R3,R2,R2
	p = d.proc
	if p.imm || p.opcode != opADD || !p.set || p.rn != 2 || p.rd != 3 || p.op2 != 2 {
		t.Errorf("ADDS fields got: %+v", p)
	}
}

func TestDecodeMultFields(t *testing.T) {
	d := decode(0xE0234192) // MLA R3,R2,R1,R4
	m := d.mult
	if !m.acc || m.set || m.rd != 3 || m.rn != 4 || m.rs != 1 || m.rm != 2 {
		t.Errorf("MLA fields got: %+v", m)
	}

	d = decode(0xE0130291) // MULS R3,R1,R2
	m = d.mult
	if m.acc || !m.set || m.rd != 3 || m.rn != 0 || m.rs != 2 || m.rm != 1 {
		t.Errorf("MULS fields got: %+v", m)
	}
}

func TestDecodeSDTFields(t *testing.T) {
	d := decode(0xE5810000) // STR R0,[R1]
	s := d.sdt
	if s.reg || !s.pre || !s.up || s.byt || s.wb || s.load || s.rn != 1 || s.rd != 0 || s.offset != 0 {
		t.Errorf("STR fields got: %+v", s)
	}

	d = decode(0xE5912004) // LDR R2,[R1,#4]
	s = d.sdt
	if !s.load || s.rn != 1 || s.rd != 2 || s.offset != 4 {
		t.Errorf("LDR fields got: %+v", s)
	}
}

func TestDecodeBDTFields(t *testing.T) {
	d := decode(0xE8B1001C) // LDMIA R1!,{R2-R4}
	b := d.bdt
	if b.mode != addrPostInc || b.psr || !b.wb || !b.load || b.rn != 1 || b.regBits != 0x001C {
		t.Errorf("LDMIA fields got: %+v", b)
	}

	d = decode(0xE92D0003) // STMDB R13!,{R0,R1}
	b = d.bdt
	if b.mode != addrPreDec || !b.wb || b.load || b.rn != 13 || b.regBits != 0x0003 {
		t.Errorf("STMDB fields got: %+v", b)
	}
}

func TestDecodeBranchFields(t *testing.T) {
	d := decode(0xEB000010) // BL +64
	if !d.branch.link || d.branch.offset != 0x10 {
		t.Errorf("BL fields got: %+v", d.branch)
	}

	d = decode(0x1AFFFFFC) // BNE -16
	if d.branch.link || d.branch.offset != 0xFFFFFC || d.cond != condNE {
		t.Errorf("BNE fields got: %+v cond: %x", d.branch, d.cond)
	}
}

func TestDecodeBXFields(t *testing.T) {
	d := decode(0xE12FFF11) // BX R1
	if d.bx.rn != 1 {
		t.Errorf("BX Rn got: %d expected: 1", d.bx.rn)
	}
}

func TestDecodeKeepsRawWord(t *testing.T) {
	d := decode(0xE3A01005)
	if d.raw != 0xE3A01005 {
		t.Errorf("raw word got: %08x expected: e3a01005", d.raw)
	}
}
