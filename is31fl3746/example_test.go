// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package is31fl3746_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/ledring/is31fl3746"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg I²C bus registry to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer b.Close()

	dev, err := is31fl3746.New(b, 0x74, &is31fl3746.DefaultOpts)
	if err != nil {
		log.Fatalln(err)
	}

	// Leave software shutdown and open up the output current.
	if err = dev.Configuration(0x01); err != nil {
		log.Fatalln(err)
	}
	if err = dev.SetScalingAll(0xff); err != nil {
		log.Fatalln(err)
	}
	if err = dev.GlobalCurrent(0xff); err != nil {
		log.Fatalln(err)
	}

	// Per-LED writes go to the PWM page.
	if err = dev.PWMMode(); err != nil {
		log.Fatalln(err)
	}
	for n := 0; n < is31fl3746.NumLEDs; n++ {
		if err = dev.SetRGB(n, 0xff8000); err != nil {
			log.Fatalln(err)
		}
	}

	t, err := dev.Temperature()
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("temperature status: %#x\n", t)

	if err = dev.Halt(); err != nil {
		log.Fatalln(err)
	}
}
