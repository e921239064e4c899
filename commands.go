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
	"fmt"
	"net"
	"unicode"
)

// Parameters holds the standard detection parameters written with
// SetParameters. They apply immediately and persist across restarts.
type Parameters struct {
	// MotionMaxDistanceGate is the furthest gate considered for motion
	// detection (2-8).
	MotionMaxDistanceGate uint8
	// StandstillMaxDistanceGate is the furthest gate considered for
	// stationary detection (2-8).
	StandstillMaxDistanceGate uint8
	// NoOneIdleDuration is how long the sensor keeps reporting a presence
	// after the person moved away, in seconds.
	NoOneIdleDuration uint16
}

// ParametersStatus is the device's current standard configuration.
type ParametersStatus struct {
	// MaxDistanceGate is the furthest gate the chip supports (8).
	MaxDistanceGate           uint8
	MotionMaxDistanceGate     uint8
	StandstillMaxDistanceGate uint8
	// Per-gate sensitivities in percent.
	MotionSensitivity     [GateCount]uint8
	StandstillSensitivity [GateCount]uint8
	// NoOneIdleDuration in seconds.
	NoOneIdleDuration uint16
}

// GateSensitivity configures the sensitivity of one distance gate, or of
// all gates when DistanceGate is GateBroadcast.
type GateSensitivity struct {
	// DistanceGate is the gate to configure (0-8) or GateBroadcast.
	DistanceGate uint16
	// MotionSensitivity in percent (0-100).
	MotionSensitivity uint8
	// StandstillSensitivity in percent (0-100).
	StandstillSensitivity uint8
}

// GateBroadcast applies a gate sensitivity to every gate at once.
const GateBroadcast uint16 = 0xFFFF

// FirmwareVersion describes the device's firmware.
type FirmwareVersion struct {
	// Type is the firmware type (documented as 0).
	Type uint16
	// Revision is conventionally displayed in hex.
	Revision uint32
	Major    uint8
	Minor    uint8
}

// String formats the version the way the vendor tooling displays it.
func (v FirmwareVersion) String() string {
	return fmt.Sprintf("%d.%02d.%08x", v.Major, v.Minor, v.Revision)
}

// AuxiliaryControl determines when the photo sensor drives the OUT pin.
type AuxiliaryControl uint8

// Auxiliary control modes
const (
	AuxiliaryDisabled       AuxiliaryControl = 0
	AuxiliaryUnderThreshold AuxiliaryControl = 1
	AuxiliaryAboveThreshold AuxiliaryControl = 2
)

// AuxiliaryControlStatus is the light-control configuration for the OUT pin.
type AuxiliaryControlStatus struct {
	Control AuxiliaryControl
	// Threshold is the photo-sensitivity threshold (0-255).
	Threshold uint8
	// Default is the OUT pin level when not triggered.
	Default OutPinLevel
}

// baudRateIndex maps supported baud rates to their wire index.
var baudRateIndex = map[int]uint16{
	9600:   0x01,
	19200:  0x02,
	38400:  0x03,
	57600:  0x04,
	115200: 0x05,
	230400: 0x06,
	256000: 0x07,
	460800: 0x08,
}

// Distance resolution wire indexes
const (
	resolution75cm uint16 = 0x00
	resolution20cm uint16 = 0x01
)

// appendWord appends one tagged parameter: a 16-bit word id followed by a
// 32-bit value, both little-endian.
func appendWord(payload []byte, word uint16, value uint32) []byte {
	payload = binary.LittleEndian.AppendUint16(payload, word)
	return binary.LittleEndian.AppendUint32(payload, value)
}

// SetParameters writes the standard detection parameters.
func (s *ConfigSession) SetParameters(ctx context.Context, p Parameters) error {
	payload := make([]byte, 0, 18)
	payload = appendWord(payload, 0x0000, uint32(p.MotionMaxDistanceGate))
	payload = appendWord(payload, 0x0001, uint32(p.StandstillMaxDistanceGate))
	payload = appendWord(payload, 0x0002, uint32(p.NoOneIdleDuration))
	_, err := s.request(ctx, CmdParametersWrite, payload)
	return err
}

// GetParameters reads the current standard detection parameters.
func (s *ConfigSession) GetParameters(ctx context.Context) (ParametersStatus, error) {
	rep, err := s.request(ctx, CmdParametersRead, nil)
	if err != nil {
		return ParametersStatus{}, err
	}
	data := rep.data
	if len(data) < 4+2*GateCount+2 {
		return ParametersStatus{}, fmt.Errorf("parameters status too short (%d bytes): %w", len(data), ErrUnexpectedReply)
	}
	if data[0] != 0xAA {
		return ParametersStatus{}, fmt.Errorf("parameters status marker 0x%02X: %w", data[0], ErrUnexpectedReply)
	}

	var status ParametersStatus
	status.MaxDistanceGate = data[1]
	status.MotionMaxDistanceGate = data[2]
	status.StandstillMaxDistanceGate = data[3]
	copy(status.MotionSensitivity[:], data[4:4+GateCount])
	copy(status.StandstillSensitivity[:], data[4+GateCount:4+2*GateCount])
	status.NoOneIdleDuration = binary.LittleEndian.Uint16(data[4+2*GateCount:])
	return status, nil
}

// SetGateSensitivity configures motion and standstill sensitivity for one
// gate, or for all gates with GateBroadcast.
func (s *ConfigSession) SetGateSensitivity(ctx context.Context, g GateSensitivity) error {
	payload := make([]byte, 0, 18)
	payload = appendWord(payload, 0x0000, uint32(g.DistanceGate))
	payload = appendWord(payload, 0x0001, uint32(g.MotionSensitivity))
	payload = appendWord(payload, 0x0002, uint32(g.StandstillSensitivity))
	_, err := s.request(ctx, CmdGateSensitivitySet, payload)
	return err
}

// SetEngineeringMode toggles engineering reports, which add per-gate
// energies to every report. The setting is lost on restart.
func (s *ConfigSession) SetEngineeringMode(ctx context.Context, enabled bool) error {
	code := CmdEngineeringDisable
	if enabled {
		code = CmdEngineeringEnable
	}
	_, err := s.request(ctx, code, nil)
	return err
}

// GetFirmwareVersion reads the device's firmware version.
func (s *ConfigSession) GetFirmwareVersion(ctx context.Context) (FirmwareVersion, error) {
	rep, err := s.request(ctx, CmdFirmwareVersion, nil)
	if err != nil {
		return FirmwareVersion{}, err
	}
	data := rep.data
	if len(data) < 8 {
		return FirmwareVersion{}, fmt.Errorf("firmware version too short (%d bytes): %w", len(data), ErrUnexpectedReply)
	}
	return FirmwareVersion{
		// The type field is the one big-endian value in the protocol.
		Type:     binary.BigEndian.Uint16(data),
		Minor:    data[2],
		Major:    data[3],
		Revision: binary.LittleEndian.Uint32(data[4:]),
	}, nil
}

// SetBaudRate changes the serial baud rate. Only the device's fixed rate
// table is accepted (9600 up to 460800); anything else fails with
// ErrInvalidParameter before touching the transport. Takes effect after a
// module restart.
func (s *ConfigSession) SetBaudRate(ctx context.Context, baudRate int) error {
	index, ok := baudRateIndex[baudRate]
	if !ok {
		return fmt.Errorf("unsupported baud rate %d: %w", baudRate, ErrInvalidParameter)
	}
	_, err := s.request(ctx, CmdBaudRateSet, binary.LittleEndian.AppendUint16(nil, index))
	return err
}

// FactoryReset resets every setting to factory defaults. Takes effect
// after a module restart.
func (s *ConfigSession) FactoryReset(ctx context.Context) error {
	_, err := s.request(ctx, CmdFactoryReset, nil)
	return err
}

// SetBluetoothMode enables or disables the bluetooth radio. Takes effect
// after a module restart.
func (s *ConfigSession) SetBluetoothMode(ctx context.Context, enabled bool) error {
	var flags uint16
	if enabled {
		flags = 1
	}
	_, err := s.request(ctx, CmdBluetoothSet, binary.LittleEndian.AppendUint16(nil, flags))
	return err
}

// GetBluetoothAddress reads the device's bluetooth MAC address.
func (s *ConfigSession) GetBluetoothAddress(ctx context.Context) (net.HardwareAddr, error) {
	rep, err := s.request(ctx, CmdBluetoothMACGet, []byte{0x01, 0x00})
	if err != nil {
		return nil, err
	}
	if len(rep.data) < 6 {
		return nil, fmt.Errorf("bluetooth address too short (%d bytes): %w", len(rep.data), ErrUnexpectedReply)
	}
	addr := make(net.HardwareAddr, 6)
	copy(addr, rep.data)
	return addr, nil
}

// SetBluetoothPassword sets the bluetooth pairing password. The password
// must be at most 6 ASCII characters; shorter passwords are zero-padded on
// the wire.
func (s *ConfigSession) SetBluetoothPassword(ctx context.Context, password string) error {
	if len(password) > 6 || !isASCII(password) {
		return fmt.Errorf("bluetooth password must be at most 6 ASCII characters: %w", ErrInvalidParameter)
	}
	payload := make([]byte, 6)
	copy(payload, password)
	_, err := s.request(ctx, CmdBluetoothPasswordSet, payload)
	return err
}

// SetDistanceResolution sets the per-gate distance in centimeters. The only
// valid values are 75 and 20. Takes effect after a module restart.
func (s *ConfigSession) SetDistanceResolution(ctx context.Context, centimeters int) error {
	var index uint16
	switch centimeters {
	case 75:
		index = resolution75cm
	case 20:
		index = resolution20cm
	default:
		return fmt.Errorf("unsupported distance resolution %d cm: %w", centimeters, ErrInvalidParameter)
	}
	_, err := s.request(ctx, CmdResolutionSet, binary.LittleEndian.AppendUint16(nil, index))
	return err
}

// GetDistanceResolution reads the per-gate distance in centimeters.
func (s *ConfigSession) GetDistanceResolution(ctx context.Context) (int, error) {
	rep, err := s.request(ctx, CmdResolutionGet, nil)
	if err != nil {
		return 0, err
	}
	if len(rep.data) < 2 {
		return 0, fmt.Errorf("distance resolution too short (%d bytes): %w", len(rep.data), ErrUnexpectedReply)
	}
	switch binary.LittleEndian.Uint16(rep.data) {
	case resolution75cm:
		return 75, nil
	case resolution20cm:
		return 20, nil
	default:
		return 0, fmt.Errorf("unhandled distance resolution index %d: %w",
			binary.LittleEndian.Uint16(rep.data), ErrUnexpectedReply)
	}
}

// SetAuxiliaryControl configures how the photo sensor drives the OUT pin.
// Available on firmware v2.4 and later.
func (s *ConfigSession) SetAuxiliaryControl(ctx context.Context, cfg AuxiliaryControlStatus) error {
	payload := []byte{byte(cfg.Control), cfg.Threshold}
	payload = binary.LittleEndian.AppendUint16(payload, uint16(cfg.Default))
	_, err := s.request(ctx, CmdAuxiliaryControlSet, payload)
	return err
}

// GetAuxiliaryControl reads the OUT pin light-control configuration.
// Available on firmware v2.4 and later.
func (s *ConfigSession) GetAuxiliaryControl(ctx context.Context) (AuxiliaryControlStatus, error) {
	rep, err := s.request(ctx, CmdAuxiliaryControlGet, nil)
	if err != nil {
		return AuxiliaryControlStatus{}, err
	}
	if len(rep.data) < 4 {
		return AuxiliaryControlStatus{}, fmt.Errorf("auxiliary control status too short (%d bytes): %w",
			len(rep.data), ErrUnexpectedReply)
	}
	return AuxiliaryControlStatus{
		Control:   AuxiliaryControl(rep.data[0]),
		Threshold: rep.data[1],
		Default:   OutPinLevel(binary.LittleEndian.Uint16(rep.data[2:])),
	}, nil
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
