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

// Package uart provides the serial transport for LD2410 modules.
package uart

import (
	"fmt"
	"io"
	"sync"

	"go.bug.st/serial"

	ld2410 "github.com/hlk-sensors/go-ld2410"
)

// DefaultBaudRate is the LD2410's factory baud rate.
const DefaultBaudRate = 256000

// Transport implements the byte-stream transport over a serial port.
type Transport struct {
	port     serial.Port
	portName string
	mu       sync.Mutex
	closed   bool
}

// Option configures a Transport.
type Option func(*config)

type config struct {
	baudRate int
}

// WithBaudRate sets the serial baud rate. Use this after changing the
// device's rate with SetBaudRate and restarting it.
func WithBaudRate(baudRate int) Option {
	return func(c *config) {
		c.baudRate = baudRate
	}
}

// New opens the serial port at portName (e.g. /dev/ttyUSB0 or COM3).
func New(portName string, opts ...Option) (*Transport, error) {
	cfg := &config{baudRate: DefaultBaudRate}
	for _, opt := range opts {
		opt(cfg)
	}

	mode := &serial.Mode{
		BaudRate: cfg.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	return &Transport{
		port:     port,
		portName: portName,
	}, nil
}

// PortName returns the path of the underlying serial port.
func (t *Transport) PortName() string {
	return t.portName
}

// Read blocks until the port delivers bytes or fails. After Close it
// returns io.EOF so the device's frame pump terminates.
func (t *Transport) Read(p []byte) (int, error) {
	n, err := t.port.Read(p)
	if err != nil {
		if t.isClosed() {
			return n, io.EOF
		}
		return n, fmt.Errorf("serial read: %w", err)
	}
	if n == 0 {
		// go.bug.st/serial reports a closed port as a zero-length read.
		return 0, io.EOF
	}
	return n, nil
}

// Write sends bytes to the device.
func (t *Transport) Write(p []byte) (int, error) {
	n, err := t.port.Write(p)
	if err != nil {
		return n, fmt.Errorf("serial write: %w", err)
	}
	return n, nil
}

// Close closes the serial port, unblocking any pending Read.
func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	if err := t.port.Close(); err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", t.portName, err)
	}
	return nil
}

// Connected reports whether the port is still open.
func (t *Transport) Connected() bool {
	return !t.isClosed()
}

// Type returns TransportUART.
func (*Transport) Type() ld2410.TransportType {
	return ld2410.TransportUART
}

func (t *Transport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
