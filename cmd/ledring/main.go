// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// ledring drives an IS31FL3746 RGB LED ring, real or emulated.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/GermanBionicSystems/ledring/is31fl3746"
	"github.com/GermanBionicSystems/ledring/ringsim"
	"github.com/fogleman/gg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

const usage = `usage: ledring [flags] <command> [args]

commands:
  clear               turn every LED off
  fill <rrggbb>       set every LED to one color
  set <n> <rrggbb>    set LED n
  wheel               one hue per LED
  temp                print the temperature status register
  reset               reset the chip registers

flags:
`

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "ledring: %s.\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	busName := flag.String("bus", "", "I²C bus to use")
	addr := flag.Uint("addr", 0x74, "I²C address of the chip")
	sim := flag.Bool("sim", false, "use an emulated chip printed to the terminal")
	png := flag.String("png", "", "with -sim, save a snapshot of the ring to this PNG file")
	strict := flag.Bool("strict", false, "fail on out of range LED indexes")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() == 0 {
		flag.Usage()
		return errors.New("missing command")
	}
	if *png != "" && !*sim {
		return errors.New("-png requires -sim")
	}

	var bus i2c.BusCloser
	var chip *ringsim.Chip
	if *sim {
		chip = ringsim.New(uint16(*addr))
		chip.Attach(ringsim.NewTerminal(nil, nil))
		bus = chip
	} else {
		if _, err := host.Init(); err != nil {
			return err
		}
		b, err := i2creg.Open(*busName)
		if err != nil {
			return err
		}
		bus = b
	}
	defer bus.Close()
	log.Printf("using %s", bus)

	dev, err := is31fl3746.New(bus, uint16(*addr), &is31fl3746.Opts{StrictIndex: *strict})
	if err != nil {
		return err
	}
	if err = run(dev, flag.Args()); err != nil {
		return err
	}
	if *png != "" {
		log.Printf("saving %s", *png)
		return gg.SavePNG(*png, chip.Snapshot(512))
	}
	return nil
}

func run(dev *is31fl3746.Dev, args []string) error {
	switch cmd := args[0]; cmd {
	case "clear":
		if err := checkArgs(args, 0); err != nil {
			return err
		}
		return dev.ClearAll()
	case "fill":
		if err := checkArgs(args, 1); err != nil {
			return err
		}
		rgb, err := parseRGB(args[1])
		if err != nil {
			return err
		}
		if err := setup(dev); err != nil {
			return err
		}
		return dev.Fill(rgb)
	case "set":
		if err := checkArgs(args, 2); err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid LED index %q", args[1])
		}
		rgb, err := parseRGB(args[2])
		if err != nil {
			return err
		}
		if err := setup(dev); err != nil {
			return err
		}
		return dev.SetRGB(n, rgb)
	case "wheel":
		if err := checkArgs(args, 0); err != nil {
			return err
		}
		if err := setup(dev); err != nil {
			return err
		}
		return dev.Draw(dev.Bounds(), wheel(), dev.Bounds().Min)
	case "temp":
		if err := checkArgs(args, 0); err != nil {
			return err
		}
		t, err := dev.Temperature()
		if err != nil {
			return err
		}
		fmt.Printf("%#02x\n", t)
		return nil
	case "reset":
		if err := checkArgs(args, 0); err != nil {
			return err
		}
		return dev.Reset()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func checkArgs(args []string, n int) error {
	if len(args)-1 != n {
		return fmt.Errorf("%s takes %d argument(s)", args[0], n)
	}
	return nil
}

// setup leaves software shutdown, opens the current fully and selects the
// PWM page.
func setup(dev *is31fl3746.Dev) error {
	log.Printf("configuring %s", dev)
	if err := dev.Configuration(0x01); err != nil {
		return err
	}
	if err := dev.SetScalingAll(0xff); err != nil {
		return err
	}
	if err := dev.GlobalCurrent(0xff); err != nil {
		return err
	}
	return dev.PWMMode()
}

func parseRGB(s string) (uint32, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return 0, fmt.Errorf("invalid color %q, expected rrggbb", s)
	}
	return uint32(v), nil
}

// wheel returns a NumLEDs×1 image going once around the hue circle.
func wheel() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, is31fl3746.NumLEDs, 1))
	for n := 0; n < is31fl3746.NumLEDs; n++ {
		img.SetNRGBA(n, 0, hue(n*360/is31fl3746.NumLEDs))
	}
	return img
}

// hue converts a hue in degrees at full saturation and value.
func hue(h int) color.NRGBA {
	x := byte((60 - abs(h%120-60)) * 255 / 60)
	switch h / 60 {
	case 0:
		return color.NRGBA{0xff, x, 0, 0xff}
	case 1:
		return color.NRGBA{x, 0xff, 0, 0xff}
	case 2:
		return color.NRGBA{0, 0xff, x, 0xff}
	case 3:
		return color.NRGBA{0, x, 0xff, 0xff}
	case 4:
		return color.NRGBA{x, 0, 0xff, 0xff}
	default:
		return color.NRGBA{0xff, 0, x, 0xff}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
