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
	"context"
	"encoding/binary"
	"errors"
	"fmt"
)

// ConfigMode describes the device's protocol as returned when entering the
// configuration mode.
type ConfigMode struct {
	// ProtocolVersion is the version of the communication protocol.
	ProtocolVersion uint16
	// BufferSize is the size of the device's internal read buffer in bytes.
	BufferSize uint16
}

// ConfigSession exposes the commands that require the configuration mode.
// It is only valid inside the Configure callback that produced it and must
// not be used from multiple goroutines.
type ConfigSession struct {
	dev       *Device
	mode      ConfigMode
	restarted bool
	closed    bool
}

// Mode returns the protocol information the device sent when the session
// was opened.
func (s *ConfigSession) Mode() ConfigMode {
	return s.mode
}

// guard rejects commands once the session ended, either normally or
// because the module restarted.
func (s *ConfigSession) guard() error {
	if s.closed || s.restarted {
		return ErrCommandContext
	}
	return nil
}

func (s *ConfigSession) request(ctx context.Context, code CommandCode, payload []byte) (reply, error) {
	if err := s.guard(); err != nil {
		return reply{}, fmt.Errorf("command %s: %w", code, err)
	}
	return s.dev.request(ctx, code, payload)
}

// Configure opens a configuration session and runs fn inside it. At most
// one session exists per device; concurrent callers serialize on the
// session lock. The device emits no reports while the session is open.
//
// The session is always closed on return, whether fn succeeded or not. A
// failure status from the mode-exit command is logged rather than returned
// so teardown never fails. When fn restarted the module (see
// RestartModule), the device already left the configuration mode and the
// exit command is skipped.
//
// Configure returns fn's error unchanged. A callback that wants the caller
// to observe a module restart returns ErrModuleRestarted; Configure
// performs the abbreviated exit first and then passes the error through.
func (d *Device) Configure(ctx context.Context, fn func(*ConfigSession) error) error {
	d.configMu.Lock()
	defer d.configMu.Unlock()

	rep, err := d.request(ctx, CmdConfigEnable, configEnablePayload())
	if err != nil {
		return fmt.Errorf("enter configuration mode: %w", err)
	}

	session := &ConfigSession{dev: d}
	session.mode, err = parseConfigMode(rep.data)
	if err == nil {
		err = fn(session)
	}
	session.closed = true

	switch {
	case session.restarted:
		// The restart already terminated the mode on the device side.
		d.log.Info().Msg("configuration session closed by module restart")
	case d.Connected():
		if _, exitErr := d.request(ctx, CmdConfigDisable, nil); exitErr != nil {
			d.log.Warn().Err(exitErr).Msg("failed to leave configuration mode")
		}
	}

	return err
}

// RestartModule restarts the device immediately and terminates the current
// configuration session: the device leaves the configuration mode on its
// own, so the surrounding Configure skips the mode-exit command. Any later
// command on this session fails with ErrCommandContext.
//
// The module needs on the order of a second before it responds again.
// Settings like baud rate, factory defaults and distance resolution only
// take effect after a restart.
//
// To make Configure's caller observe the restart, return ErrModuleRestarted
// from the Configure callback after calling RestartModule.
func (s *ConfigSession) RestartModule(ctx context.Context) error {
	if _, err := s.request(ctx, CmdModuleRestart, nil); err != nil {
		return err
	}
	s.restarted = true
	return nil
}

// configEnablePayload is the constant word carried by CONFIG_ENABLE.
func configEnablePayload() []byte {
	return []byte{0x01, 0x00}
}

// parseConfigMode decodes the CONFIG_ENABLE reply payload.
func parseConfigMode(data []byte) (ConfigMode, error) {
	if len(data) < 4 {
		return ConfigMode{}, fmt.Errorf("config mode status too short (%d bytes): %w", len(data), ErrUnexpectedReply)
	}
	return ConfigMode{
		ProtocolVersion: binary.LittleEndian.Uint16(data),
		BufferSize:      binary.LittleEndian.Uint16(data[2:]),
	}, nil
}

// IsRestarted reports whether err is the module-restarted signal.
func IsRestarted(err error) bool {
	return errors.Is(err, ErrModuleRestarted)
}
