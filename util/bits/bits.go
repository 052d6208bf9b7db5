/*
 * ARM emulator - Bit field utilities.
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

import mbits "math/bits"

// Bits returns bits start..end of word shifted down to bit 0.
// A start past end yields 0; the barrel shifter relies on this
// for zero-length carry windows.
func Bits(word uint32, start, end int) uint32 {
	if start < 0 || start > end {
		return 0
	}
	if end > 31 {
		end = 31
	}
	mask := ^uint32(0) >> uint(31+start-end)
	return (word >> uint(start)) & mask
}

// Bit returns a single bit of word as a boolean.
func Bit(word uint32, bit int) bool {
	return word&(1<<uint(bit)) != 0
}

// SetBits replaces bits start..end of word with the low bits of value.
func SetBits(word uint32, start, end int, value uint32) uint32 {
	mask := Bits(^uint32(0), start, end) << uint(start)
	return (word &^ mask) | ((value << uint(start)) & mask)
}

// CountSet returns the population count of word.
func CountSet(word uint32) int {
	return mbits.OnesCount32(word)
}

// RegList returns the indices of the set bits in the low 16 bits of
// word, in ascending order. Block data transfers walk registers in
// this order no matter which direction the addresses move.
func RegList(word uint32) []uint32 {
	list := make([]uint32, 0, CountSet(word&0xffff))
	for i := 0; i < 16; i++ {
		if Bit(word, i) {
			list = append(list, uint32(i))
		}
	}
	return list
}
