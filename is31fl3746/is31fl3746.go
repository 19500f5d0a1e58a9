// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package is31fl3746 controls an ISSI IS31FL3746 matrix LED driver wired as
// a ring of 24 RGB LEDs.
//
// The chip has two register pages. Page 0 holds the PWM (brightness) value
// of every output, page 1 holds the scaling registers and the configuration
// registers. A page is selected by writing the unlock code to the command
// lock register, then the page number to the command register.
//
// The driver keeps no copy of the chip state: every configuration call
// selects page 1 again before touching its register. The per-LED calls
// (SetRGB, SetRed, SetGreen, SetBlue and Draw) write to whatever page is
// selected, so call PWMMode first.
//
// # Datasheet
//
// https://www.lumissil.com/assets/pdf/core/IS31FL3746A_DS.pdf
package is31fl3746

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// Register pages.
const (
	Page0 byte = 0x00 // PWM values
	Page1 byte = 0x01 // scaling and configuration
)

const (
	_COMMAND_REGISTER byte = 0xFD
	_COMMAND_LOCK     byte = 0xFE
	_ID_REGISTER      byte = 0xFC
	_UNLOCK_CODE      byte = 0xC5

	_CONFIGURATION   byte = 0x50
	_GLOBAL_CURRENT  byte = 0x51
	_PULLUP_DOWN     byte = 0x52
	_OPEN_SHORT      byte = 0x53
	_TEMPERATURE     byte = 0x5F
	_SPREAD_SPECTRUM byte = 0x60
	_RESET           byte = 0x8F
	_PWM_FREQ_ENABLE byte = 0xE0
	_PWM_FREQ_SET    byte = 0xE2

	_RESET_CODE byte = 0xAE
)

const (
	// NumLEDs is the number of RGB LEDs on the ring.
	NumLEDs = 24
	// FirstChannel and LastChannel bound the PWM and scaling registers.
	FirstChannel byte = 1
	LastChannel  byte = 3 * NumLEDs
)

// Channel selects one color of an RGB LED.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// ledMap translates (channel, LED index) to a register address. It is the
// board wiring and never changes.
var ledMap = [3][NumLEDs]byte{
	{0x48, 0x36, 0x24, 0x12, 0x45, 0x33, 0x21, 0x0F, 0x42, 0x30, 0x1E, 0x0C, 0x3F, 0x2D, 0x1B, 0x09, 0x3C, 0x2A, 0x18, 0x06, 0x39, 0x27, 0x15, 0x03},
	{0x47, 0x35, 0x23, 0x11, 0x44, 0x32, 0x20, 0x0E, 0x41, 0x2F, 0x1D, 0x0B, 0x3E, 0x2C, 0x1A, 0x08, 0x3B, 0x29, 0x17, 0x05, 0x38, 0x26, 0x14, 0x02},
	{0x46, 0x34, 0x22, 0x10, 0x43, 0x31, 0x1F, 0x0D, 0x40, 0x2E, 0x1C, 0x0A, 0x3D, 0x2B, 0x19, 0x07, 0x3A, 0x28, 0x16, 0x04, 0x37, 0x25, 0x13, 0x01},
}

// Register returns the register address driving channel ch of LED n. ok is
// false when either is out of range.
func Register(ch Channel, n int) (reg byte, ok bool) {
	if ch < Red || ch > Blue || n < 0 || n >= len(ledMap[ch]) {
		return 0, false
	}
	return ledMap[ch][n], true
}

// ErrInvalidLED is returned by the per-LED calls for an out of range index
// when Opts.StrictIndex is set.
var ErrInvalidLED = errors.New("is31fl3746: LED index out of range")

// Opts holds the configuration options.
type Opts struct {
	// StrictIndex makes SetRGB, SetRed, SetGreen and SetBlue return
	// ErrInvalidLED for an index outside [0, NumLEDs). When false such calls
	// are ignored.
	StrictIndex bool

	_ struct{}
}

// DefaultOpts ignores out of range LED indexes.
var DefaultOpts = Opts{}

// Dev is a handle to an IS31FL3746 on an I²C bus.
//
// The bus is borrowed: Dev never closes it.
type Dev struct {
	d    i2c.Dev
	opts Opts
}

// New returns a handle to the chip at addr on bus. No I/O is done.
func New(bus i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if bus == nil {
		return nil, errors.New("is31fl3746: nil bus")
	}
	if addr > 0x7F {
		return nil, fmt.Errorf("is31fl3746: invalid address %#x", addr)
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	return &Dev{d: i2c.Dev{Bus: bus, Addr: addr}, opts: *opts}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("IS31FL3746{%s}", &d.d)
}

// Halt turns every LED off. Implements conn.Resource.
func (d *Dev) Halt() error {
	return d.ClearAll()
}

// WriteRegister writes value to reg in the currently selected page.
func (d *Dev) WriteRegister(reg, value byte) error {
	return d.d.Tx([]byte{reg, value}, nil)
}

// ReadRegister reads reg in the currently selected page.
func (d *Dev) ReadRegister(reg byte) (byte, error) {
	var r [1]byte
	if err := d.d.Tx([]byte{reg}, r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}

// SelectBank unlocks the command register and selects page bank.
func (d *Dev) SelectBank(bank byte) error {
	if err := d.WriteRegister(_COMMAND_LOCK, _UNLOCK_CODE); err != nil {
		return err
	}
	return d.WriteRegister(_COMMAND_REGISTER, bank)
}

// PWMMode selects page 0 so the per-LED calls set brightness.
func (d *Dev) PWMMode() error {
	return d.SelectBank(Page0)
}

// writeConfig selects page 1 then writes one register.
func (d *Dev) writeConfig(reg, value byte) error {
	if err := d.SelectBank(Page1); err != nil {
		return err
	}
	return d.WriteRegister(reg, value)
}

// Configuration writes the configuration register. Bit 0 clear puts the chip
// in software shutdown.
func (d *Dev) Configuration(value byte) error {
	return d.writeConfig(_CONFIGURATION, value)
}

// SetScaling writes the scaling register reg, one of FirstChannel to
// LastChannel. The scaling register has the same address as the PWM register
// it scales.
func (d *Dev) SetScaling(reg, value byte) error {
	return d.writeConfig(reg, value)
}

// SetScalingAll writes value to every scaling register.
func (d *Dev) SetScalingAll(value byte) error {
	if err := d.SelectBank(Page1); err != nil {
		return err
	}
	return d.fill(value)
}

// GlobalCurrent sets the global current control register.
func (d *Dev) GlobalCurrent(value byte) error {
	return d.writeConfig(_GLOBAL_CURRENT, value)
}

// PullUpDown sets the pull-up and pull-down resistor register.
func (d *Dev) PullUpDown(value byte) error {
	return d.writeConfig(_PULLUP_DOWN, value)
}

// Temperature reads the temperature status register.
func (d *Dev) Temperature() (byte, error) {
	if err := d.SelectBank(Page1); err != nil {
		return 0, err
	}
	return d.ReadRegister(_TEMPERATURE)
}

// SpreadSpectrum sets the spread spectrum register.
func (d *Dev) SpreadSpectrum(value byte) error {
	return d.writeConfig(_SPREAD_SPECTRUM, value)
}

// Reset restores every register to its power-on default.
func (d *Dev) Reset() error {
	return d.writeConfig(_RESET, _RESET_CODE)
}

// PWMFrequencyEnable sets the PWM frequency enable register.
func (d *Dev) PWMFrequencyEnable(value byte) error {
	return d.writeConfig(_PWM_FREQ_ENABLE, value)
}

// PWMFrequencySetting sets the PWM frequency register.
func (d *Dev) PWMFrequencySetting(value byte) error {
	return d.writeConfig(_PWM_FREQ_SET, value)
}

// SetRGB sets LED n to the packed 0xRRGGBB color rgb. Bits above 23 are
// ignored.
func (d *Dev) SetRGB(n int, rgb uint32) error {
	if !d.valid(n) {
		return d.invalid()
	}
	if err := d.WriteRegister(ledMap[Red][n], byte(rgb>>16)); err != nil {
		return err
	}
	if err := d.WriteRegister(ledMap[Green][n], byte(rgb>>8)); err != nil {
		return err
	}
	return d.WriteRegister(ledMap[Blue][n], byte(rgb))
}

// SetRed sets the red channel of LED n.
func (d *Dev) SetRed(n int, value byte) error {
	return d.setChannel(Red, n, value)
}

// SetGreen sets the green channel of LED n.
func (d *Dev) SetGreen(n int, value byte) error {
	return d.setChannel(Green, n, value)
}

// SetBlue sets the blue channel of LED n.
func (d *Dev) SetBlue(n int, value byte) error {
	return d.setChannel(Blue, n, value)
}

// Fill sets every LED to rgb.
func (d *Dev) Fill(rgb uint32) error {
	for n := 0; n < NumLEDs; n++ {
		if err := d.SetRGB(n, rgb); err != nil {
			return err
		}
	}
	return nil
}

// ClearAll selects page 0 and sets every PWM register to 0.
func (d *Dev) ClearAll() error {
	if err := d.PWMMode(); err != nil {
		return err
	}
	return d.fill(0)
}

func (d *Dev) setChannel(ch Channel, n int, value byte) error {
	reg, ok := Register(ch, n)
	if !ok {
		return d.invalid()
	}
	return d.WriteRegister(reg, value)
}

// fill writes value to registers FirstChannel to LastChannel of the current
// page.
func (d *Dev) fill(value byte) error {
	for reg := FirstChannel; reg <= LastChannel; reg++ {
		if err := d.WriteRegister(reg, value); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dev) valid(n int) bool {
	return n >= 0 && n < NumLEDs
}

func (d *Dev) invalid() error {
	if d.opts.StrictIndex {
		return ErrInvalidLED
	}
	return nil
}

var _ conn.Resource = &Dev{}
