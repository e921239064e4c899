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

// Package detection finds serial ports that are likely to have an LD2410
// module attached. The module itself cannot be identified without opening
// the port, so detection is based on the USB serial bridges the boards
// ship with.
package detection

import (
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

// DeviceInfo describes one candidate serial port.
type DeviceInfo struct {
	// Path is the port path usable with uart.New.
	Path string
	// Name is a human-readable description of the adapter, if known.
	Name string
	// VID and PID are the USB identifiers, empty for non-USB ports.
	VID string
	PID string
}

// Options controls detection behavior.
type Options struct {
	// AllPorts lists every serial port instead of only known USB serial
	// bridges.
	AllPorts bool
}

// DefaultOptions returns the default detection options.
func DefaultOptions() Options {
	return Options{}
}

// knownBridges maps "vid:pid" of USB serial adapters commonly wired to
// LD2410 boards to a display name.
var knownBridges = map[string]string{
	"10c4:ea60": "Silicon Labs CP210x",
	"1a86:7523": "WCH CH340",
	"1a86:55d4": "WCH CH9102",
	"0403:6001": "FTDI FT232R",
	"067b:2303": "Prolific PL2303",
}

// DetectAll lists candidate ports for LD2410 modules.
func DetectAll(opts *Options) ([]DeviceInfo, error) {
	options := DefaultOptions()
	if opts != nil {
		options = *opts
	}

	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	var devices []DeviceInfo
	for _, port := range ports {
		if !port.IsUSB {
			if options.AllPorts {
				devices = append(devices, DeviceInfo{Path: port.Name})
			}
			continue
		}
		key := strings.ToLower(port.VID) + ":" + strings.ToLower(port.PID)
		name, known := knownBridges[key]
		if !known && !options.AllPorts {
			continue
		}
		devices = append(devices, DeviceInfo{
			Path: port.Name,
			Name: name,
			VID:  port.VID,
			PID:  port.PID,
		})
	}
	return devices, nil
}
