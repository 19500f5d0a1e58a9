// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ringsim emulates an IS31FL3746 LED ring as an i2c.Bus.
//
// Useful to develop against the is31fl3746 driver without the hardware: the
// emulated chip keeps both register pages in memory, honors the command
// register lock and can mirror the ring to a terminal or to an image.
package ringsim

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/GermanBionicSystems/ledring/is31fl3746"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// ErrNoDevice is returned for a transaction to an address the chip doesn't
// answer to, like a NACK on a real bus.
var ErrNoDevice = errors.New("ringsim: no device at address")

const (
	regID          = 0xFC
	regCommand     = 0xFD
	regCommandLock = 0xFE
	unlockCode     = 0xC5

	regConfiguration = 0x50
	regGlobalCurrent = 0x51
	regTemperature   = 0x5F
	regReset         = 0x8F
	resetCode        = 0xAE
)

// Chip is an emulated IS31FL3746. It is safe for concurrent use.
type Chip struct {
	addr uint16

	mu       sync.Mutex
	pages    [2][256]byte
	page     byte
	unlocked bool
	term     *Terminal
	txs      int
}

// New returns a chip answering at addr, in its power-on state.
func New(addr uint16) *Chip {
	return &Chip{addr: addr}
}

func (c *Chip) String() string {
	return fmt.Sprintf("ringsim(%#x)", c.addr)
}

// Close implements i2c.BusCloser.
func (c *Chip) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.term != nil {
		return c.term.Halt()
	}
	return nil
}

// SetSpeed implements i2c.Bus. The emulator has no clock.
func (c *Chip) SetSpeed(f physic.Frequency) error {
	return nil
}

// Tx implements i2c.Bus.
//
// w[0] is the register address, the rest of w is written from there on and
// r is read after it, both auto-incrementing within the selected page.
func (c *Chip) Tx(addr uint16, w, r []byte) error {
	if addr != c.addr {
		return fmt.Errorf("%w %#x", ErrNoDevice, addr)
	}
	if len(w) == 0 {
		return errors.New("ringsim: missing register address")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.txs++
	reg := w[0]
	drawn := false
	for i, v := range w[1:] {
		if c.write(reg+byte(i), v) {
			drawn = true
		}
	}
	for i := range r {
		r[i] = c.read(reg + byte(i))
	}
	if drawn && c.term != nil {
		return c.term.Render(c.pixels())
	}
	return nil
}

// write stores v and reports whether a PWM register changed.
func (c *Chip) write(reg, v byte) bool {
	switch reg {
	case regCommandLock:
		c.unlocked = v == unlockCode
		return false
	case regCommand:
		if c.unlocked && v <= is31fl3746.Page1 {
			c.page = v
		}
		c.unlocked = false
		return false
	case regID:
		return false
	}
	if c.page == is31fl3746.Page1 && reg == regReset {
		if v == resetCode {
			c.reset()
			return true
		}
		return false
	}
	c.pages[c.page][reg] = v
	return c.page == is31fl3746.Page0
}

func (c *Chip) read(reg byte) byte {
	switch reg {
	case regID:
		return byte(c.addr << 1)
	case regCommand:
		return c.page
	case regCommandLock:
		return 0
	}
	return c.pages[c.page][reg]
}

// reset keeps the temperature status, which reflects the die and not a
// setting.
func (c *Chip) reset() {
	t := c.pages[is31fl3746.Page1][regTemperature]
	c.pages = [2][256]byte{}
	c.pages[is31fl3746.Page1][regTemperature] = t
	c.page = is31fl3746.Page0
	c.unlocked = false
}

// Attach mirrors the ring to t after every PWM change. Pass nil to detach.
func (c *Chip) Attach(t *Terminal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.term = t
}

// SetTemperature sets the value returned by the temperature register.
func (c *Chip) SetTemperature(v byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[is31fl3746.Page1][regTemperature] = v
}

// Page returns the selected register page.
func (c *Chip) Page() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Register returns the content of reg in page.
func (c *Chip) Register(page, reg byte) byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pages[page&1][reg]
}

// Transactions returns the number of transactions addressed to the chip.
func (c *Chip) Transactions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.txs
}

// Pixels returns the light output of every LED: the PWM value weighted by
// its scaling register and the global current. Everything is black while
// the chip is in software shutdown.
func (c *Chip) Pixels() []color.NRGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pixels()
}

func (c *Chip) pixels() []color.NRGBA {
	out := make([]color.NRGBA, is31fl3746.NumLEDs)
	cfg := &c.pages[is31fl3746.Page1]
	on := cfg[regConfiguration]&1 != 0
	gcc := uint32(cfg[regGlobalCurrent])
	for n := range out {
		out[n].A = 0xFF
		if !on {
			continue
		}
		var v [3]byte
		for ch := is31fl3746.Red; ch <= is31fl3746.Blue; ch++ {
			reg, _ := is31fl3746.Register(ch, n)
			pwm := uint32(c.pages[is31fl3746.Page0][reg])
			v[ch] = byte(pwm * uint32(cfg[reg]) * gcc / (255 * 255))
		}
		out[n].R, out[n].G, out[n].B = v[0], v[1], v[2]
	}
	return out
}

var _ i2c.BusCloser = &Chip{}
