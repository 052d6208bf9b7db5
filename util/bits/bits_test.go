/*
 * ARM emulator - Bit field utility tests.
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

package bits

import (
	"reflect"
	"testing"
)

func TestBits(t *testing.T) {
	tests := []struct {
		word       uint32
		start, end int
		want       uint32
	}{
		{0xE3A01005, 28, 31, 0xE},
		{0xE3A01005, 0, 11, 0x005},
		{0xE3A01005, 0, 31, 0xE3A01005},
		{0x012FFF10, 4, 27, 0x12FFF1},
		{0xFFFFFFFF, 31, 31, 1},
		{0xFFFFFFFF, 0, 0, 1},
		// Start past end is defined as zero; the barrel shifter
		// relies on this for a zero shift amount.
		{0xFFFFFFFF, 32, 31, 0},
		{0xFFFFFFFF, 5, 2, 0},
		// End past bit 31 clamps.
		{0xF0000000, 28, 35, 0xF},
	}

	for _, test := range tests {
		got := Bits(test.word, test.start, test.end)
		if got != test.want {
			t.Errorf("Bits(%08x, %d, %d) got: %08x expected: %08x",
				test.word, test.start, test.end, got, test.want)
		}
	}
}

func TestBit(t *testing.T) {
	if !Bit(0x80000000, 31) {
		t.Errorf("Bit 31 of 80000000 should be set")
	}
	if Bit(0x7FFFFFFF, 31) {
		t.Errorf("Bit 31 of 7fffffff should be clear")
	}
	if !Bit(0x00000010, 4) {
		t.Errorf("Bit 4 of 00000010 should be set")
	}
}

func TestSetBits(t *testing.T) {
	tests := []struct {
		word       uint32
		start, end int
		value      uint32
		want       uint32
	}{
		{0x00000000, 28, 31, 0xF, 0xF0000000},
		{0xFFFFFFFF, 28, 31, 0x0, 0x0FFFFFFF},
		{0x00000000, 0, 3, 0xA, 0x0000000A},
		{0x12345678, 8, 15, 0xFF, 0x1234FF78},
	}

	for _, test := range tests {
		got := SetBits(test.word, test.start, test.end, test.value)
		if got != test.want {
			t.Errorf("SetBits(%08x, %d, %d, %x) got: %08x expected: %08x",
				test.word, test.start, test.end, test.value, got, test.want)
		}
	}
}

func TestCountSet(t *testing.T) {
	tests := []struct {
		word uint32
		want int
	}{
		{0, 0},
		{1, 1},
		{0xFFFFFFFF, 32},
		{0x0000001C, 3},
		{0x80000001, 2},
	}

	for _, test := range tests {
		if got := CountSet(test.word); got != test.want {
			t.Errorf("CountSet(%08x) got: %d expected: %d", test.word, got, test.want)
		}
	}
}

func TestRegList(t *testing.T) {
	tests := []struct {
		word uint32
		want []uint32
	}{
		{0x0000, []uint32{}},
		{0x0001, []uint32{0}},
		{0x001C, []uint32{2, 3, 4}},
		{0x8001, []uint32{0, 15}},
		{0xFFFF, []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}},
	}

	for _, test := range tests {
		got := RegList(test.word)
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("RegList(%04x) got: %v expected: %v", test.word, got, test.want)
		}
	}
}
