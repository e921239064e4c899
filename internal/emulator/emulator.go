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

// Package emulator implements an in-memory LD2410 device behind the
// Transport interface, for tests that exercise the full client stack
// without hardware. It models the configuration mode, the command set,
// report emission, and a few wire-level fault-injection knobs.
package emulator

import (
	"encoding/binary"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	ld2410 "github.com/hlk-sensors/go-ld2410"
	"github.com/hlk-sensors/go-ld2410/internal/frame"
)

// Default identity the emulated device reports.
const (
	ProtocolVersion uint16 = 1
	BufferSize      uint16 = 64
)

// state is the emulated device's persistent configuration.
type state struct {
	motionSensitivity     [9]uint8
	standstillSensitivity [9]uint8
	motionMaxGate         uint8
	standstillMaxGate     uint8
	idleDuration          uint16
	resolution            uint16
	bluetooth             bool
}

func factoryState() state {
	return state{
		motionMaxGate:         8,
		standstillMaxGate:     8,
		idleDuration:          5,
		resolution:            0, // 75 cm
		bluetooth:             true,
		motionSensitivity:     [9]uint8{50, 50, 40, 30, 20, 15, 15, 15, 15},
		standstillSensitivity: [9]uint8{0, 0, 40, 40, 30, 30, 20, 20, 20},
	}
}

// Device emulates an LD2410 module. It implements ld2410.Transport: Read
// returns device-to-host bytes, Write feeds host-to-device bytes into the
// emulated firmware.
type Device struct {
	incoming  chan []byte
	closed    chan struct{}
	closeOnce sync.Once

	mu          sync.Mutex
	stream      *frame.Stream
	pending     []byte
	state       state
	configMode  bool
	engineering bool

	// fault injection
	dropReplies  int
	staleOpcode  ld2410.CommandCode
	staleArmed   bool
	garbage      []byte
	maxChunkSize int
}

// New creates a connected emulated device with factory settings.
func New() *Device {
	return &Device{
		incoming: make(chan []byte, 256),
		closed:   make(chan struct{}),
		stream:   frame.NewStream(zerolog.Nop()),
		state:    factoryState(),
	}
}

// Read blocks until the emulated device emitted bytes or Close was called.
func (d *Device) Read(p []byte) (int, error) {
	d.mu.Lock()
	if len(d.pending) > 0 {
		n := copy(p, d.pending)
		d.pending = d.pending[n:]
		d.mu.Unlock()
		return n, nil
	}
	d.mu.Unlock()

	select {
	case chunk := <-d.incoming:
		n := copy(p, chunk)
		if n < len(chunk) {
			d.mu.Lock()
			d.pending = append(d.pending, chunk[n:]...)
			d.mu.Unlock()
		}
		return n, nil
	case <-d.closed:
		return 0, io.EOF
	}
}

// Write feeds host bytes into the emulated firmware, which replies on the
// Read side.
func (d *Device) Write(p []byte) (int, error) {
	select {
	case <-d.closed:
		return 0, io.ErrClosedPipe
	default:
	}

	d.mu.Lock()
	d.stream.Push(p)
	var commands [][]byte
	for f := range d.stream.Frames() {
		if f.Type == frame.TypeCommand {
			commands = append(commands, f.Data)
		}
	}
	d.mu.Unlock()

	for _, body := range commands {
		d.handleCommand(body)
	}
	return len(p), nil
}

// Close disconnects the emulated device; pending Reads fail with io.EOF.
func (d *Device) Close() error {
	d.closeOnce.Do(func() { close(d.closed) })
	return nil
}

// Connected reports whether Close was called.
func (d *Device) Connected() bool {
	select {
	case <-d.closed:
		return false
	default:
		return true
	}
}

// Type returns TransportMock.
func (*Device) Type() ld2410.TransportType {
	return ld2410.TransportMock
}

// InConfigMode reports whether the device is in configuration mode.
func (d *Device) InConfigMode() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.configMode
}

// DropNextReplies silences the next n command replies, so requests time
// out on the host side.
func (d *Device) DropNextReplies(n int) {
	d.mu.Lock()
	d.dropReplies = n
	d.mu.Unlock()
}

// StaleNextReply makes the device emit a bogus reply with the given opcode
// before the real reply of the next command.
func (d *Device) StaleNextReply(code ld2410.CommandCode) {
	d.mu.Lock()
	d.staleOpcode = code
	d.staleArmed = true
	d.mu.Unlock()
}

// GarbageBefore prepends raw bytes to the next reply, exercising the
// host's resynchronization path.
func (d *Device) GarbageBefore(garbage []byte) {
	d.mu.Lock()
	d.garbage = append([]byte(nil), garbage...)
	d.mu.Unlock()
}

// SplitWrites chunks every device-to-host transmission into pieces of at
// most size bytes, exercising partial-frame reassembly.
func (d *Device) SplitWrites(size int) {
	d.mu.Lock()
	d.maxChunkSize = size
	d.mu.Unlock()
}

// EmitBasicReport sends one basic report, unless the device is in
// configuration mode (the real module stops reporting there).
func (d *Device) EmitBasicReport(status ld2410.TargetStatus, motionDist, standstillDist, detectionDist uint16) {
	d.mu.Lock()
	if d.configMode {
		d.mu.Unlock()
		return
	}
	engineering := d.engineering
	st := d.state
	d.mu.Unlock()

	body := []byte{0x02, 0xAA}
	if engineering {
		body[0] = 0x01
	}
	body = append(body, byte(status))
	body = binary.LittleEndian.AppendUint16(body, motionDist)
	body = append(body, 60) // motion energy
	body = binary.LittleEndian.AppendUint16(body, standstillDist)
	body = append(body, 40) // standstill energy
	body = binary.LittleEndian.AppendUint16(body, detectionDist)
	if engineering {
		body = append(body, st.motionMaxGate, st.standstillMaxGate)
		body = append(body, st.motionSensitivity[:]...)
		body = append(body, st.standstillSensitivity[:]...)
		body = append(body, 128, 0) // photo sensor, OUT pin low
	}
	body = append(body, 0x55, 0x00)

	d.send(frame.Encode(frame.TypeReport, body))
}

// StartReports emits basic reports on a fixed interval until the device is
// closed. Reports are suppressed while in configuration mode.
func (d *Device) StartReports(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-d.closed:
				return
			case <-ticker.C:
				d.EmitBasicReport(ld2410.TargetMotion, 120, 0, 120)
			}
		}
	}()
}

// SendRaw pushes arbitrary bytes to the host, bypassing the firmware.
func (d *Device) SendRaw(data []byte) {
	d.send(data)
}

func (d *Device) send(data []byte) {
	d.mu.Lock()
	chunk := d.maxChunkSize
	d.mu.Unlock()

	if chunk <= 0 {
		chunk = len(data)
	}
	for off := 0; off < len(data); off += chunk {
		end := off + chunk
		if end > len(data) {
			end = len(data)
		}
		select {
		case d.incoming <- append([]byte(nil), data[off:end]...):
		case <-d.closed:
			return
		}
	}
}

// reply builds and transmits a reply frame, honoring the fault-injection
// knobs.
func (d *Device) reply(code ld2410.CommandCode, status uint16, data []byte) {
	d.mu.Lock()
	if d.dropReplies > 0 {
		d.dropReplies--
		d.mu.Unlock()
		return
	}
	var prefix []byte
	if len(d.garbage) > 0 {
		prefix = d.garbage
		d.garbage = nil
	}
	stale := d.staleArmed
	staleCode := d.staleOpcode
	d.staleArmed = false
	d.mu.Unlock()

	if prefix != nil {
		d.send(prefix)
	}
	if stale {
		d.send(frame.Encode(frame.TypeCommand, buildReply(staleCode, 0, nil)))
	}
	d.send(frame.Encode(frame.TypeCommand, buildReply(code, status, data)))
}

func buildReply(code ld2410.CommandCode, status uint16, data []byte) []byte {
	body := []byte{byte(code), 0x01}
	body = binary.LittleEndian.AppendUint16(body, status)
	return append(body, data...)
}

// handleCommand runs one command body through the emulated firmware.
func (d *Device) handleCommand(body []byte) {
	if len(body) < 2 {
		return
	}
	code := ld2410.CommandCode(body[0])
	payload := body[2:]

	d.mu.Lock()
	configMode := d.configMode
	d.mu.Unlock()

	if code == ld2410.CmdConfigEnable {
		d.mu.Lock()
		d.configMode = true
		d.mu.Unlock()
		data := binary.LittleEndian.AppendUint16(nil, ProtocolVersion)
		data = binary.LittleEndian.AppendUint16(data, BufferSize)
		d.reply(code, 0, data)
		return
	}

	// Every other command is only valid in configuration mode.
	if !configMode {
		d.reply(code, 1, nil)
		return
	}

	switch code {
	case ld2410.CmdConfigDisable:
		d.mu.Lock()
		d.configMode = false
		d.mu.Unlock()
		d.reply(code, 0, nil)
	case ld2410.CmdModuleRestart:
		d.mu.Lock()
		d.configMode = false
		d.engineering = false
		d.mu.Unlock()
		d.reply(code, 0, nil)
	case ld2410.CmdParametersWrite:
		d.handleParametersWrite(code, payload)
	case ld2410.CmdParametersRead:
		d.handleParametersRead(code)
	case ld2410.CmdEngineeringEnable:
		d.setEngineering(true)
		d.reply(code, 0, nil)
	case ld2410.CmdEngineeringDisable:
		d.setEngineering(false)
		d.reply(code, 0, nil)
	case ld2410.CmdGateSensitivitySet:
		d.handleGateSensitivity(code, payload)
	case ld2410.CmdFirmwareVersion:
		data := []byte{0x00, 0x00, 0x22, 0x01} // type, minor 0x22, major 1
		data = binary.LittleEndian.AppendUint32(data, 0x22062416)
		d.reply(code, 0, data)
	case ld2410.CmdBaudRateSet:
		if len(payload) < 2 || binary.LittleEndian.Uint16(payload) < 1 || binary.LittleEndian.Uint16(payload) > 8 {
			d.reply(code, 1, nil)
			return
		}
		d.reply(code, 0, nil)
	case ld2410.CmdFactoryReset:
		d.mu.Lock()
		d.state = factoryState()
		d.mu.Unlock()
		d.reply(code, 0, nil)
	case ld2410.CmdBluetoothSet:
		d.mu.Lock()
		d.state.bluetooth = len(payload) >= 2 && binary.LittleEndian.Uint16(payload)&1 != 0
		d.mu.Unlock()
		d.reply(code, 0, nil)
	case ld2410.CmdBluetoothMACGet:
		d.reply(code, 0, []byte{0x8F, 0x27, 0x2E, 0xB8, 0x0F, 0x65})
	case ld2410.CmdBluetoothPasswordSet:
		if len(payload) != 6 {
			d.reply(code, 1, nil)
			return
		}
		d.reply(code, 0, nil)
	case ld2410.CmdResolutionSet:
		if len(payload) < 2 || binary.LittleEndian.Uint16(payload) > 1 {
			d.reply(code, 1, nil)
			return
		}
		d.mu.Lock()
		d.state.resolution = binary.LittleEndian.Uint16(payload)
		d.mu.Unlock()
		d.reply(code, 0, nil)
	case ld2410.CmdResolutionGet:
		d.mu.Lock()
		res := d.state.resolution
		d.mu.Unlock()
		d.reply(code, 0, binary.LittleEndian.AppendUint16(nil, res))
	case ld2410.CmdAuxiliaryControlSet:
		if len(payload) < 4 {
			d.reply(code, 1, nil)
			return
		}
		d.reply(code, 0, nil)
	case ld2410.CmdAuxiliaryControlGet:
		data := []byte{0x00, 0x80}
		data = binary.LittleEndian.AppendUint16(data, 0x0000)
		d.reply(code, 0, data)
	default:
		d.reply(code, 1, nil)
	}
}

func (d *Device) setEngineering(enabled bool) {
	d.mu.Lock()
	d.engineering = enabled
	d.mu.Unlock()
}

func (d *Device) handleParametersWrite(code ld2410.CommandCode, payload []byte) {
	if len(payload) != 18 {
		d.reply(code, 1, nil)
		return
	}
	d.mu.Lock()
	for off := 0; off < len(payload); off += 6 {
		word := binary.LittleEndian.Uint16(payload[off:])
		value := binary.LittleEndian.Uint32(payload[off+2:])
		switch word {
		case 0x0000:
			d.state.motionMaxGate = uint8(value)
		case 0x0001:
			d.state.standstillMaxGate = uint8(value)
		case 0x0002:
			d.state.idleDuration = uint16(value)
		}
	}
	d.mu.Unlock()
	d.reply(code, 0, nil)
}

func (d *Device) handleParametersRead(code ld2410.CommandCode) {
	d.mu.Lock()
	st := d.state
	d.mu.Unlock()

	data := []byte{0xAA, 8, st.motionMaxGate, st.standstillMaxGate}
	data = append(data, st.motionSensitivity[:]...)
	data = append(data, st.standstillSensitivity[:]...)
	data = binary.LittleEndian.AppendUint16(data, st.idleDuration)
	d.reply(code, 0, data)
}

func (d *Device) handleGateSensitivity(code ld2410.CommandCode, payload []byte) {
	if len(payload) != 18 {
		d.reply(code, 1, nil)
		return
	}
	gate := binary.LittleEndian.Uint32(payload[2:])
	motion := uint8(binary.LittleEndian.Uint32(payload[8:]))
	standstill := uint8(binary.LittleEndian.Uint32(payload[14:]))

	d.mu.Lock()
	if gate == 0xFFFF {
		for i := range d.state.motionSensitivity {
			d.state.motionSensitivity[i] = motion
			d.state.standstillSensitivity[i] = standstill
		}
	} else if gate < uint32(len(d.state.motionSensitivity)) {
		d.state.motionSensitivity[gate] = motion
		d.state.standstillSensitivity[gate] = standstill
	}
	d.mu.Unlock()
	d.reply(code, 0, nil)
}
