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

import (
	"time"

	"github.com/rs/zerolog"
)

// Option is a functional option for configuring a Device.
type Option func(*Device) error

// WithCommandTimeout bounds how long each command waits for its reply.
// Zero disables the timeout; requests then wait until a reply arrives or
// the connection dies.
func WithCommandTimeout(timeout time.Duration) Option {
	return func(d *Device) error {
		d.config.CommandTimeout = timeout
		return nil
	}
}

// WithReadBufferSize sets the chunk size used by the background reader.
func WithReadBufferSize(size int) Option {
	return func(d *Device) error {
		if size <= 0 {
			return ErrInvalidParameter
		}
		d.config.ReadBufferSize = size
		return nil
	}
}

// WithLogger routes the library's diagnostics (framing resynchronization,
// discarded replies, session teardown issues) to log. The default logger
// discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Device) error {
		d.log = log
		return nil
	}
}
