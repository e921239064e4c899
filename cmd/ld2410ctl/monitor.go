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

package main

import (
	"flag"
	"fmt"
	"strings"

	ld2410 "github.com/hlk-sensors/go-ld2410"
	"github.com/hlk-sensors/go-ld2410/transport/uart"
)

func runMonitor(args []string) error {
	fs := flag.NewFlagSet("monitor", flag.ExitOnError)
	devicePath := fs.String("device", "", "serial port path (e.g. /dev/ttyUSB0 or COM3); auto-detect when empty")
	baudRate := fs.Int("baud", uart.DefaultBaudRate, "serial baud rate")
	engineering := fs.Bool("engineering", false, "enable engineering mode for per-gate energies")
	verbose := fs.Bool("verbose", false, "log protocol events to stderr")
	_ = fs.Parse(args)

	log := newLogger(*verbose)
	device, err := connect(*devicePath, *baudRate, log)
	if err != nil {
		return err
	}
	defer func() { _ = device.Close() }()

	ctx, cancel := signalContext()
	defer cancel()

	if *engineering {
		err := device.Configure(ctx, func(s *ld2410.ConfigSession) error {
			return s.SetEngineeringMode(ctx, true)
		})
		if err != nil {
			return fmt.Errorf("failed to enable engineering mode: %w", err)
		}
	}

	_, _ = fmt.Println("Monitoring, Ctrl-C to stop.")
	for report := range device.Reports(ctx) {
		printReport(report)
	}
	return nil
}

func printReport(r ld2410.Report) {
	basic := r.Basic
	var target string
	switch {
	case basic.TargetStatus.Motion() && basic.TargetStatus.Standstill():
		target = "motion+standstill"
	case basic.TargetStatus.Motion():
		target = "motion"
	case basic.TargetStatus.Standstill():
		target = "standstill"
	default:
		target = "none"
	}

	_, _ = fmt.Printf("target=%-17s detection=%3dcm motion=%3dcm/%3d%% standstill=%3dcm/%3d%%",
		target,
		basic.DetectionDistance,
		basic.MotionDistance, basic.MotionEnergy,
		basic.StandstillDistance, basic.StandstillEnergy)

	if eng := r.Engineering; eng != nil {
		_, _ = fmt.Printf(" gates=[%s|%s] photo=%d out=%d",
			gateEnergies(eng.MotionGateEnergy),
			gateEnergies(eng.StandstillGateEnergy),
			eng.PhotosensitiveValue, eng.OutPinStatus)
	}
	_, _ = fmt.Println()
}

func gateEnergies(energies [ld2410.GateCount]uint8) string {
	parts := make([]string, len(energies))
	for i, e := range energies {
		parts[i] = fmt.Sprintf("%d", e)
	}
	return strings.Join(parts, " ")
}
