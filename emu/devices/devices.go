/*
 * ARM emulator - Standard memory mapped devices.
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

package devices

import (
	"fmt"
	"time"

	"github.com/ICTeam34/arm-emulator/emu/memory"
)

// Fixed bases of the memory mapped devices.
const (
	TimerBase   uint32 = 0x20003000
	TimerSize   uint32 = 22
	MailboxBase uint32 = 0x2000B880
	MailboxSize uint32 = 36
	GPIOBase    uint32 = 0x20200000
	GPIOSize    uint32 = 64
)

// Timer registers, relative to TimerBase.
const (
	timerValueLow  uint32 = 0x4
	timerValueHigh uint32 = 0x8
)

// NewRAM builds main memory. A size of zero selects the default.
// RAM has no access handler.
func NewRAM(size uint32) *memory.Region {
	if size == 0 {
		size = memory.RAMSize
	}
	return memory.NewRegion(0, size)
}

// NewTimer builds the system timer. The scratch buffer holds the
// reference clock sampled at boot; reads of the counter report the
// microseconds elapsed since then.
func NewTimer() *memory.Region {
	timer := memory.NewRegion(TimerBase, TimerSize)
	timer.Handler = timerHandler{}
	timer.Scratch = uint64(time.Now().UnixMicro())
	return timer
}

type timerHandler struct{}

// OnAccess samples the clock on a read of the counter register and
// patches the low and high words before the read observes them.
func (timerHandler) OnAccess(r *memory.Region, relAddr uint32, write bool) {
	if relAddr == timerValueLow && !write {
		elapsed := uint64(time.Now().UnixMicro()) - r.Scratch
		r.WriteRaw(timerValueLow, uint32(elapsed))
		r.WriteRaw(timerValueHigh, uint32(elapsed>>32))
		fmt.Println("Time requested")
	}
}

// NewMailbox builds the mailbox device.
func NewMailbox() *memory.Region {
	mailbox := memory.NewRegion(MailboxBase, MailboxSize)
	mailbox.Handler = mailboxHandler{}
	return mailbox
}

type mailboxHandler struct{}

func (mailboxHandler) OnAccess(r *memory.Region, relAddr uint32, write bool) {
	switch relAddr {
	case 0x0: // Read: receiving mail.
	case 0x10: // Poll: receive without retrieving.
	case 0x14: // Sender information.
	case 0x18: // Status information.
	case 0x1C: // Configuration settings.
	case 0x20: // Write: sending mail.
	}
}

// NewGPIO builds the GPIO controller. The first three function
// select registers identify themselves with their own addresses.
func NewGPIO() *memory.Region {
	gpio := memory.NewRegion(GPIOBase, GPIOSize)
	gpio.Handler = gpioHandler{}
	gpio.WriteRaw(0x0, GPIOBase)
	gpio.WriteRaw(0x4, GPIOBase+4)
	gpio.WriteRaw(0x8, GPIOBase+8)
	return gpio
}

type gpioHandler struct{}

func (gpioHandler) OnAccess(r *memory.Region, relAddr uint32, write bool) {
	switch relAddr {
	case 0x0:
		fmt.Println("One GPIO pin from 0 to 9 has been accessed")
	case 0x4:
		fmt.Println("One GPIO pin from 10 to 19 has been accessed")
	case 0x8:
		fmt.Println("One GPIO pin from 20 to 29 has been accessed")
	case 0x1c:
		fmt.Println("PIN ON")
	case 0x28:
		fmt.Println("PIN OFF")
	}
}
