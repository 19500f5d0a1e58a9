// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ringsim

import (
	"image"
	"math"
	"strconv"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce sync.Once
	goFont   *truetype.Font
)

func labelFace(size float64) font.Face {
	fontOnce.Do(func() {
		goFont, _ = truetype.Parse(goregular.TTF)
	})
	if goFont == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(goFont, &truetype.Options{Size: size})
}

// Snapshot draws the ring as a size×size image, LED 0 at the top and
// indexes growing clockwise.
func (c *Chip) Snapshot(size int) image.Image {
	if size < 64 {
		size = 64
	}
	pixels := c.Pixels()
	s := float64(size)
	center := s / 2
	ring := s * 0.36
	radius := s * 0.04

	dc := gg.NewContext(size, size)
	dc.SetRGB(0.08, 0.08, 0.08)
	dc.Clear()
	dc.SetFontFace(labelFace(s / 36))
	for n, p := range pixels {
		a := 2*math.Pi*float64(n)/float64(len(pixels)) - math.Pi/2
		x := center + ring*math.Cos(a)
		y := center + ring*math.Sin(a)
		dc.DrawCircle(x, y, radius)
		dc.SetColor(p)
		dc.FillPreserve()
		dc.SetRGB(0.4, 0.4, 0.4)
		dc.SetLineWidth(1)
		dc.Stroke()

		lx := center + (ring+3*radius)*math.Cos(a)
		ly := center + (ring+3*radius)*math.Sin(a)
		dc.SetRGB(0.8, 0.8, 0.8)
		dc.DrawStringAnchored(strconv.Itoa(n), lx, ly, 0.5, 0.5)
	}
	return dc.Image()
}
