// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ringsim

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Opts represents the options for a Terminal.
type Opts struct {
	// Palette used to approximate colors. Defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Plain prints hex values instead of ANSI color blocks.
	Plain bool

	_ struct{}
}

// Terminal draws the ring as one line of colored blocks, rewriting the line
// on every refresh.
type Terminal struct {
	w       io.Writer
	palette ansi256.Palette
	plain   bool

	buf bytes.Buffer
}

// NewTerminal returns a Terminal writing to w.
//
// When w is nil it writes to stdout, and falls back to plain output if
// stdout is not a terminal.
func NewTerminal(w io.Writer, opts *Opts) *Terminal {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	t := &Terminal{w: w, palette: *p, plain: opts.Plain}
	if w == nil {
		fd := os.Stdout.Fd()
		t.w = colorable.NewColorableStdout()
		t.plain = t.plain || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	}
	return t
}

func (t *Terminal) String() string {
	return "ringsim.Terminal"
}

// Halt resets the terminal colors and ends the line.
func (t *Terminal) Halt() error {
	if t.plain {
		return nil
	}
	_, err := io.WriteString(t.w, "\n\033[0m")
	return err
}

// Render draws pixels, one block per LED.
func (t *Terminal) Render(pixels []color.NRGBA) error {
	t.buf.Reset()
	if t.plain {
		for i, c := range pixels {
			if i != 0 {
				_ = t.buf.WriteByte(' ')
			}
			_, _ = fmt.Fprintf(&t.buf, "%02x%02x%02x", c.R, c.G, c.B)
		}
		_ = t.buf.WriteByte('\n')
	} else {
		_, _ = t.buf.WriteString("\r\033[0m")
		for _, c := range pixels {
			_, _ = t.buf.WriteString(t.palette.Block(c))
		}
		_, _ = t.buf.WriteString("\033[0m ")
	}
	_, err := t.buf.WriteTo(t.w)
	return err
}
