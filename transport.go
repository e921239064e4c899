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

package ld2410

import "io"

// Transport is a byte-oriented duplex link to an LD2410 module. The Device
// owns framing and correlation; a transport only moves raw bytes.
//
// Read blocks until at least one byte is available or the link fails. After
// Close, Read must return an error so the background frame pump terminates.
type Transport interface {
	io.ReadWriteCloser

	// Connected reports whether the link is still usable.
	Connected() bool

	// Type returns the transport type.
	Type() TransportType
}

// TransportType represents the type of transport.
type TransportType string

const (
	// TransportUART is the serial transport, the module's native link.
	TransportUART TransportType = "uart"
	// TransportMock is an in-memory transport for testing.
	TransportMock TransportType = "mock"
)

// TransportFactory creates a transport for a device path.
type TransportFactory func(path string) (Transport, error)
