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
	"fmt"

	"github.com/BurntSushi/toml"

	ld2410 "github.com/hlk-sensors/go-ld2410"
)

// deviceConfig is the TOML configuration file applied by the configure
// command. Every section and field is optional; only what is present gets
// written to the device.
//
//	resolution = 20      # per-gate distance in cm: 75 or 20
//	baud-rate = 256000
//	restart = true       # force a restart even if no setting needs one
//
//	[parameters]
//	motion-max-gate = 8
//	standstill-max-gate = 8
//	idle-duration = 5    # seconds
//
//	[[gate]]             # omit 'gate' to apply to all gates
//	gate = 3
//	motion = 40
//	standstill = 40
//
//	[bluetooth]
//	enabled = true
//	password = "HiLink"
//
//	[auxiliary]
//	mode = "under"       # off, under, above
//	threshold = 128
//	default-out = 0
type deviceConfig struct {
	Parameters *parametersConfig `toml:"parameters"`
	Bluetooth  *bluetoothConfig  `toml:"bluetooth"`
	Auxiliary  *auxiliaryConfig  `toml:"auxiliary"`
	Resolution *int              `toml:"resolution"`
	BaudRate   *int              `toml:"baud-rate"`
	Gates      []gateConfig      `toml:"gate"`
	Restart    bool              `toml:"restart"`
}

type parametersConfig struct {
	MotionMaxGate     uint8  `toml:"motion-max-gate"`
	StandstillMaxGate uint8  `toml:"standstill-max-gate"`
	IdleDuration      uint16 `toml:"idle-duration"`
}

type gateConfig struct {
	// Gate is the distance gate to configure; nil applies to all gates.
	Gate       *uint8 `toml:"gate"`
	Motion     uint8  `toml:"motion"`
	Standstill uint8  `toml:"standstill"`
}

type bluetoothConfig struct {
	Enabled  *bool  `toml:"enabled"`
	Password string `toml:"password"`
}

type auxiliaryConfig struct {
	Mode       string `toml:"mode"`
	Threshold  uint8  `toml:"threshold"`
	DefaultOut uint8  `toml:"default-out"`
}

func (a *auxiliaryConfig) control() ld2410.AuxiliaryControl {
	switch a.Mode {
	case "under":
		return ld2410.AuxiliaryUnderThreshold
	case "above":
		return ld2410.AuxiliaryAboveThreshold
	default:
		return ld2410.AuxiliaryDisabled
	}
}

func loadConfig(path string) (*deviceConfig, error) {
	var cfg deviceConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if a := cfg.Auxiliary; a != nil {
		switch a.Mode {
		case "", "off", "under", "above":
		default:
			return nil, fmt.Errorf("config %s: auxiliary mode must be off, under or above, got %q", path, a.Mode)
		}
	}
	for _, g := range cfg.Gates {
		if g.Gate != nil && *g.Gate >= ld2410.GateCount {
			return nil, fmt.Errorf("config %s: gate %d out of range (0-%d)", path, *g.Gate, ld2410.GateCount-1)
		}
	}
	return &cfg, nil
}
