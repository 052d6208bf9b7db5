package memory

/*
 * ARM emulator - Memory region tests.
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

import (
	"testing"
)

func TestReadWriteRoundTrip(t *testing.T) {
	ram := NewRegion(0, 256)
	for _, addr := range []uint32{0, 4, 100, 248} {
		if !ram.Write(addr, 0xDEADBEEF) {
			t.Errorf("Write to %08x failed", addr)
		}
		if got := ram.Read(addr); got != 0xDEADBEEF {
			t.Errorf("Read(%08x) got: %08x expected: %08x", addr, got, 0xDEADBEEF)
		}
	}
}

func TestLittleEndianLayout(t *testing.T) {
	ram := NewRegion(0, 16)
	ram.Write(0, 0x11223344)
	want := []uint8{0x44, 0x33, 0x22, 0x11}
	for i, b := range want {
		if ram.Mem[i] != b {
			t.Errorf("byte %d got: %02x expected: %02x", i, ram.Mem[i], b)
		}
	}
}

func TestWriteBoundsCheck(t *testing.T) {
	region := NewRegion(0x100, 16)

	// The last word slot the check accepts is size-7 rounded down
	// to a word, so offset 8 works and offset 12 is rejected.
	if !region.Write(0x108, 0x12345678) {
		t.Errorf("Write inside region failed")
	}
	if region.Write(0x10C, 0x12345678) {
		t.Errorf("Write past the check succeeded")
	}
	if got := region.ReadRaw(12); got != 0 {
		t.Errorf("rejected write mutated memory: %08x", got)
	}
}

// patchHandler models the timer: on read it rewrites the word the
// read is about to observe.
type patchHandler struct {
	reads, writes int
}

func (h *patchHandler) OnAccess(r *Region, relAddr uint32, write bool) {
	if write {
		h.writes++
		return
	}
	h.reads++
	r.WriteRaw(relAddr, 0x00C0FFEE)
}

func TestHandlerRunsBeforeRead(t *testing.T) {
	region := NewRegion(0x2000, 32)
	handler := &patchHandler{}
	region.Handler = handler

	if got := region.Read(0x2004); got != 0x00C0FFEE {
		t.Errorf("read did not observe the handler's patch, got: %08x", got)
	}
	if handler.reads != 1 {
		t.Errorf("handler read count got: %d expected: 1", handler.reads)
	}
}

func TestRawAccessBypassesHandler(t *testing.T) {
	region := NewRegion(0x2000, 32)
	handler := &patchHandler{}
	region.Handler = handler

	region.WriteRaw(4, 0x55)
	if got := region.ReadRaw(4); got != 0x55 {
		t.Errorf("ReadRaw got: %08x expected: 55", got)
	}
	if handler.reads != 0 || handler.writes != 0 {
		t.Errorf("raw access invoked the handler: %d reads %d writes",
			handler.reads, handler.writes)
	}
}

func TestMapFind(t *testing.T) {
	ram := NewRegion(0, 1<<16)
	timer := NewRegion(0x20003000, 22)
	devices := Map{ram, timer}

	tests := []struct {
		addr uint32
		want *Region
	}{
		{0, ram},
		{0xFFFC, ram},           // Last word of RAM.
		{0x10000, nil},          // One past the end.
		{0x20003000, timer},     //
		{0x20003012, timer},     // base+size-4
		{0x20003013, nil},       //
		{0xDEADBEEF & ^uint32(3), nil},
	}

	for _, test := range tests {
		if got := devices.Find(test.addr); got != test.want {
			t.Errorf("Find(%08x) got: %v expected: %v", test.addr, got, test.want)
		}
	}
}

func TestFindFirstMatchWins(t *testing.T) {
	a := NewRegion(0x100, 64)
	b := NewRegion(0x100, 64)
	devices := Map{a, b}

	if got := devices.Find(0x110); got != a {
		t.Errorf("overlapping regions: expected the first installed region")
	}
}

func TestSwap(t *testing.T) {
	if got := Swap(0x11223344); got != 0x44332211 {
		t.Errorf("Swap got: %08x expected: 44332211", got)
	}
	if got := Swap(Swap(0xE3A01005)); got != 0xE3A01005 {
		t.Errorf("double Swap is not the identity: %08x", got)
	}
}

func TestReadIsStable(t *testing.T) {
	ram := NewRegion(0, 64)
	ram.Write(16, 0xCAFEBABE)
	first := ram.Read(16)
	second := ram.Read(16)
	if first != second {
		t.Errorf("repeated reads differ: %08x then %08x", first, second)
	}
}
