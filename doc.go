// go-ld2410
// Copyright (c) 2026 The go-ld2410 Authors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-ld2410.
//
// go-ld2410 is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-ld2410 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-ld2410; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

/*
Package ld2410 provides a pure Go client for the Hi-Link HLK-LD2410 24GHz
presence-detection radar module over its serial protocol.

The LD2410 streams unsolicited status reports (target presence, distance,
energy) and accepts configuration commands inside a dedicated configuration
mode. This library handles the wire protocol end to end: frame reassembly
from the raw byte stream, request/reply correlation, report delivery, and
the configuration-mode session.

Basic usage:

	import (
	    "github.com/hlk-sensors/go-ld2410"
	    "github.com/hlk-sensors/go-ld2410/transport/uart"
	)

	transport, err := uart.New("/dev/ttyUSB0")
	if err != nil {
	    log.Fatal(err)
	}

	device, err := ld2410.New(transport)
	if err != nil {
	    log.Fatal(err)
	}
	if err := device.Connect(); err != nil {
	    log.Fatal(err)
	}
	defer device.Close()

	// Stream presence reports.
	for report := range device.Reports(ctx) {
	    fmt.Printf("motion=%v distance=%dcm\n",
	        report.Basic.TargetStatus.Motion(),
	        report.Basic.DetectionDistance)
	}

Configuration commands require a configuration session. The device stops
reporting while the session is open and resumes afterwards:

	err = device.Configure(ctx, func(s *ld2410.ConfigSession) error {
	    version, err := s.GetFirmwareVersion(ctx)
	    if err != nil {
	        return err
	    }
	    fmt.Println("firmware", version)

	    return s.SetParameters(ctx, ld2410.Parameters{
	        MotionMaxDistanceGate:     8,
	        StandstillMaxDistanceGate: 8,
	        NoOneIdleDuration:         5,
	    })
	})

Error handling:

All expected failure modes are typed. Match them with errors.Is and
errors.As: ErrCommandTimeout, ErrConnectionClosed, ErrCommandContext,
ErrInvalidParameter, and *CommandStatusError for commands the device
rejected. Corrupted or partial frames on the wire are recovered internally
and never surface to callers.
*/
package ld2410
