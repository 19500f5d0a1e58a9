// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ledring is a container for the IS31FL3746 LED ring driver, its
// emulator and the ledring command.
//
// See is31fl3746 for the driver and ringsim to run it without hardware.
package ledring
