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

// ld2410ctl is a small utility for HLK-LD2410 presence radar modules:
// it detects serial ports, streams live presence reports, and applies a
// configuration file to the device.
//
// Usage:
//
//	ld2410ctl detect [-all]
//	ld2410ctl monitor [-device PATH] [-baud RATE] [-engineering]
//	ld2410ctl configure -config FILE [-device PATH] [-baud RATE]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	ld2410 "github.com/hlk-sensors/go-ld2410"
	"github.com/hlk-sensors/go-ld2410/detection"
	"github.com/hlk-sensors/go-ld2410/transport/uart"
)

func usage() {
	_, _ = fmt.Fprintf(os.Stderr, `Usage: %s <command> [flags]

Commands:
  detect     List serial ports likely to have an LD2410 attached
  monitor    Stream presence reports to stdout
  configure  Apply a TOML configuration file to the device

Run '%s <command> -h' for command flags.
`, os.Args[0], os.Args[0])
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// connect opens the device on path, auto-detecting the port when path is
// empty.
func connect(path string, baudRate int, log zerolog.Logger) (*ld2410.Device, error) {
	if path == "" {
		devices, err := detection.DetectAll(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to detect serial ports: %w", err)
		}
		if len(devices) == 0 {
			return nil, fmt.Errorf("no candidate serial port found; pass -device explicitly")
		}
		path = devices[0].Path
		_, _ = fmt.Printf("Auto-detected port: %s\n", path)
	}

	factory := func(path string) (ld2410.Transport, error) {
		return uart.New(path, uart.WithBaudRate(baudRate))
	}
	device, err := ld2410.ConnectDevice(path, factory, ld2410.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", path, err)
	}
	return device, nil
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	allPorts := fs.Bool("all", false, "list every serial port, not just known USB serial bridges")
	_ = fs.Parse(args)

	devices, err := detection.DetectAll(&detection.Options{AllPorts: *allPorts})
	if err != nil {
		return fmt.Errorf("failed to detect serial ports: %w", err)
	}
	if len(devices) == 0 {
		_, _ = fmt.Println("No candidate ports found.")
		return nil
	}
	for _, dev := range devices {
		if dev.VID == "" {
			_, _ = fmt.Printf("%s\n", dev.Path)
			continue
		}
		name := dev.Name
		if name == "" {
			name = "unknown adapter"
		}
		_, _ = fmt.Printf("%s\t%s (%s:%s)\n", dev.Path, name, dev.VID, dev.PID)
	}
	return nil
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "detect":
		err = runDetect(os.Args[2:])
	case "monitor":
		err = runMonitor(os.Args[2:])
	case "configure":
		err = runConfigure(os.Args[2:])
	case "-h", "--help", "help":
		usage()
	default:
		_, _ = fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
