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
	"context"
	"errors"
	"flag"
	"fmt"

	ld2410 "github.com/hlk-sensors/go-ld2410"
	"github.com/hlk-sensors/go-ld2410/transport/uart"
)

func runConfigure(args []string) error {
	fs := flag.NewFlagSet("configure", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the TOML configuration file (required)")
	devicePath := fs.String("device", "", "serial port path; auto-detect when empty")
	baudRate := fs.Int("baud", uart.DefaultBaudRate, "serial baud rate")
	verbose := fs.Bool("verbose", false, "log protocol events to stderr")
	_ = fs.Parse(args)

	if *configPath == "" {
		return errors.New("configure: -config is required")
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	log := newLogger(*verbose)
	device, err := connect(*devicePath, *baudRate, log)
	if err != nil {
		return err
	}
	defer func() { _ = device.Close() }()

	ctx, cancel := signalContext()
	defer cancel()

	err = device.Configure(ctx, func(s *ld2410.ConfigSession) error {
		return applyConfig(ctx, s, cfg)
	})
	if ld2410.IsRestarted(err) {
		_, _ = fmt.Println("Module restarted to apply settings.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}
	_, _ = fmt.Println("Configuration applied.")
	return nil
}

// applyConfig pushes every setting present in cfg to the device, in an
// order that keeps earlier settings valid if a later one fails. A restart
// is requested last, when any applied setting needs one.
func applyConfig(ctx context.Context, s *ld2410.ConfigSession, cfg *deviceConfig) error {
	version, err := s.GetFirmwareVersion(ctx)
	if err != nil {
		return fmt.Errorf("read firmware version: %w", err)
	}
	_, _ = fmt.Printf("Firmware: %s (mode: protocol v%d, buffer %d bytes)\n",
		version, s.Mode().ProtocolVersion, s.Mode().BufferSize)

	needRestart := false

	if p := cfg.Parameters; p != nil {
		err := s.SetParameters(ctx, ld2410.Parameters{
			MotionMaxDistanceGate:     p.MotionMaxGate,
			StandstillMaxDistanceGate: p.StandstillMaxGate,
			NoOneIdleDuration:         p.IdleDuration,
		})
		if err != nil {
			return fmt.Errorf("set parameters: %w", err)
		}
		_, _ = fmt.Println("Parameters set.")
	}

	for _, g := range cfg.Gates {
		gate := ld2410.GateBroadcast
		if g.Gate != nil {
			gate = uint16(*g.Gate)
		}
		err := s.SetGateSensitivity(ctx, ld2410.GateSensitivity{
			DistanceGate:          gate,
			MotionSensitivity:     g.Motion,
			StandstillSensitivity: g.Standstill,
		})
		if err != nil {
			return fmt.Errorf("set gate sensitivity: %w", err)
		}
	}
	if len(cfg.Gates) > 0 {
		_, _ = fmt.Printf("Gate sensitivities set (%d entries).\n", len(cfg.Gates))
	}

	if cfg.Resolution != nil {
		if err := s.SetDistanceResolution(ctx, *cfg.Resolution); err != nil {
			return fmt.Errorf("set distance resolution: %w", err)
		}
		_, _ = fmt.Printf("Distance resolution set to %d cm.\n", *cfg.Resolution)
		needRestart = true
	}

	if b := cfg.Bluetooth; b != nil {
		if b.Enabled != nil {
			if err := s.SetBluetoothMode(ctx, *b.Enabled); err != nil {
				return fmt.Errorf("set bluetooth mode: %w", err)
			}
			needRestart = true
		}
		if b.Password != "" {
			if err := s.SetBluetoothPassword(ctx, b.Password); err != nil {
				return fmt.Errorf("set bluetooth password: %w", err)
			}
		}
	}

	if a := cfg.Auxiliary; a != nil {
		err := s.SetAuxiliaryControl(ctx, ld2410.AuxiliaryControlStatus{
			Control:   a.control(),
			Threshold: a.Threshold,
			Default:   ld2410.OutPinLevel(a.DefaultOut),
		})
		if err != nil {
			return fmt.Errorf("set auxiliary control: %w", err)
		}
		_, _ = fmt.Println("Auxiliary control set.")
	}

	if cfg.BaudRate != nil {
		if err := s.SetBaudRate(ctx, *cfg.BaudRate); err != nil {
			return fmt.Errorf("set baud rate: %w", err)
		}
		_, _ = fmt.Printf("Baud rate set to %d; reconnect with -baud %d after restart.\n",
			*cfg.BaudRate, *cfg.BaudRate)
		needRestart = true
	}

	if needRestart || cfg.Restart {
		if err := s.RestartModule(ctx); err != nil {
			return fmt.Errorf("restart module: %w", err)
		}
		return ld2410.ErrModuleRestarted
	}
	return nil
}
