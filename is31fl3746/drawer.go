// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package is31fl3746

import (
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
)

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer. The ring is seen as one row of NumLEDs
// pixels, X being the LED index.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, NumLEDs, 1)
}

// Draw implements display.Drawer.
//
// Like SetRGB it writes to the selected page; call PWMMode first.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.Bounds())
	srcR := src.Bounds()
	for n := r.Min.X; n < r.Max.X; n++ {
		p := image.Pt(sp.X+n-r.Min.X, sp.Y)
		if !p.In(srcR) {
			continue
		}
		c := color.NRGBAModel.Convert(src.At(p.X, p.Y)).(color.NRGBA)
		if err := d.SetRGB(n, PackRGB(c)); err != nil {
			return err
		}
	}
	return nil
}

// PackRGB returns c as 0xRRGGBB, dropping alpha.
func PackRGB(c color.NRGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// UnpackRGB is the inverse of PackRGB; the result is opaque.
func UnpackRGB(rgb uint32) color.NRGBA {
	return color.NRGBA{R: byte(rgb >> 16), G: byte(rgb >> 8), B: byte(rgb), A: 0xFF}
}

var _ display.Drawer = &Dev{}
