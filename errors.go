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
	"errors"
	"fmt"
)

// Library errors. All expected failure modes are distinguishable with
// errors.Is / errors.As; callers never need to match on error strings.
var (
	// ErrNotConnected is returned when an operation needs a live connection
	// and there is none. Reconnect before retrying.
	ErrNotConnected = errors.New("not connected")

	// ErrConnectionClosed is returned when the connection died while the
	// operation was in flight (EOF, transport closed, fatal read error).
	ErrConnectionClosed = errors.New("connection closed")

	// ErrCommandTimeout is returned when the device did not reply to a
	// command within the configured timeout.
	ErrCommandTimeout = errors.New("command timeout")

	// ErrCommandContext is returned when a command that requires the
	// configuration mode is issued outside of a configuration session.
	ErrCommandContext = errors.New("command requires configuration mode")

	// ErrInvalidParameter is returned when a caller-supplied argument is
	// rejected before anything is written to the device.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnexpectedReply is returned when the device replied with something
	// that does not match the expected layout for the command.
	ErrUnexpectedReply = errors.New("unexpected reply")

	// ErrModuleRestarted signals that the device restarted and terminated
	// the configuration session on its own. It is not a failure: a
	// Configure callback returns it to make Configure surface the restart
	// after the session unwinds.
	ErrModuleRestarted = errors.New("module restarted")
)

// CommandStatusError is returned when the device acknowledged a command with
// a failure status.
type CommandStatusError struct {
	Code   CommandCode
	Status ReplyStatus
}

// Error implements the error interface.
func (e *CommandStatusError) Error() string {
	return fmt.Sprintf("command %s failed with status %d", e.Code, e.Status)
}
