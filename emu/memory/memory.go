package memory

/*
 * ARM emulator - Memory mapped regions and address decoding.
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
	"encoding/binary"
	"fmt"
	mbits "math/bits"
)

// Default RAM size, 2^16 byte addressable locations.
const RAMSize uint32 = 1 << 16

// AccessHandler gives a device the chance to act on an access to its
// region. The handler runs before the effecting read or write: on a
// read it may patch the underlying bytes that the read will then
// observe. The timer depends on this ordering.
type AccessHandler interface {
	OnAccess(r *Region, relAddr uint32, write bool)
}

// Region is a contiguous byte addressed span of the global address
// space. Every device on the machine is one of these; plain RAM is a
// region with no handler.
type Region struct {
	Base    uint32
	Size    uint32
	Mem     []uint8
	Handler AccessHandler

	// Scratch storage for the owning device. The timer keeps its
	// boot time reference clock here.
	Scratch uint64
}

func NewRegion(base, size uint32) *Region {
	return &Region{
		Base: base,
		Size: size,
		Mem:  make([]uint8, size),
	}
}

// Read returns the little endian word at the given absolute address.
// Callers must have dispatched through Map.Find first; there is no
// bounds check beyond what the handler performs.
func (r *Region) Read(addr uint32) uint32 {
	addr -= r.Base
	if r.Handler != nil {
		r.Handler.OnAccess(r, addr, false)
	}
	return r.ReadRaw(addr)
}

// Write stores a little endian word at the given absolute address.
// Returns false without mutation when the relative address plus 3
// exceeds size-4, which also rejects the last word of the region.
func (r *Region) Write(addr, value uint32) bool {
	addr -= r.Base
	if addr+3 > r.Size-4 {
		fmt.Println("Invalid address, this is probably an error in address_decoder")
		return false
	}
	if r.Handler != nil {
		r.Handler.OnAccess(r, addr, true)
	}
	r.WriteRaw(addr, value)
	return true
}

// ReadRaw reads the word at a relative offset, bypassing the handler
// and the bounds check. Handlers use it to avoid re-entering
// themselves.
func (r *Region) ReadRaw(relAddr uint32) uint32 {
	return binary.LittleEndian.Uint32(r.Mem[relAddr:])
}

// WriteRaw stores the word at a relative offset, bypassing the
// handler and the bounds check.
func (r *Region) WriteRaw(relAddr, value uint32) {
	binary.LittleEndian.PutUint32(r.Mem[relAddr:], value)
}

// DumpState prints every non zero word of the region. Values are
// byte swapped so the dump reads in storage order.
func (r *Region) DumpState() {
	fmt.Println("Non-zero memory:")
	for rel := uint32(0); rel <= r.Size-4; rel += 4 {
		if value := r.Read(r.Base + rel); value != 0 {
			fmt.Printf("0x%08x: 0x%08x\n", rel, Swap(value))
		}
	}
}

// Swap reverses the byte order of a word for display.
func Swap(value uint32) uint32 {
	return mbits.ReverseBytes32(value)
}

// Map is the machine's device table, in installation order. Dispatch
// uses address ranges, not order; RAM is installed first at base 0.
type Map []*Region

// Find selects the region whose span contains the given address.
// The upper bound leaves room for the 4 byte access. Returns nil when
// no region matches; callers report the out of bounds access and
// drop the effect.
func (m Map) Find(addr uint32) *Region {
	for _, r := range m {
		if addr >= r.Base && addr <= r.Base+r.Size-4 {
			return r
		}
	}
	return nil
}
