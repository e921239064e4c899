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
	"encoding/binary"
	"fmt"
)

// CommandCode identifies a command/reply pair's semantics.
type CommandCode byte

// Command opcodes understood by the LD2410.
const (
	CmdParametersWrite       CommandCode = 0x60
	CmdParametersRead        CommandCode = 0x61
	CmdEngineeringEnable     CommandCode = 0x62
	CmdEngineeringDisable    CommandCode = 0x63
	CmdGateSensitivitySet    CommandCode = 0x64
	CmdFirmwareVersion       CommandCode = 0xA0
	CmdBaudRateSet           CommandCode = 0xA1
	CmdFactoryReset          CommandCode = 0xA2
	CmdModuleRestart         CommandCode = 0xA3
	CmdBluetoothSet          CommandCode = 0xA4
	CmdBluetoothMACGet       CommandCode = 0xA5
	CmdBluetoothAuthenticate CommandCode = 0xA8 // bluetooth link only
	CmdBluetoothPasswordSet  CommandCode = 0xA9
	CmdResolutionSet         CommandCode = 0xAA
	CmdResolutionGet         CommandCode = 0xAB
	CmdAuxiliaryControlSet   CommandCode = 0xAD
	CmdAuxiliaryControlGet   CommandCode = 0xAE
	CmdConfigDisable         CommandCode = 0xFE
	CmdConfigEnable          CommandCode = 0xFF
)

// String returns the opcode name for logging and error messages.
func (c CommandCode) String() string {
	switch c {
	case CmdParametersWrite:
		return "ParametersWrite"
	case CmdParametersRead:
		return "ParametersRead"
	case CmdEngineeringEnable:
		return "EngineeringEnable"
	case CmdEngineeringDisable:
		return "EngineeringDisable"
	case CmdGateSensitivitySet:
		return "GateSensitivitySet"
	case CmdFirmwareVersion:
		return "FirmwareVersion"
	case CmdBaudRateSet:
		return "BaudRateSet"
	case CmdFactoryReset:
		return "FactoryReset"
	case CmdModuleRestart:
		return "ModuleRestart"
	case CmdBluetoothSet:
		return "BluetoothSet"
	case CmdBluetoothMACGet:
		return "BluetoothMACGet"
	case CmdBluetoothAuthenticate:
		return "BluetoothAuthenticate"
	case CmdBluetoothPasswordSet:
		return "BluetoothPasswordSet"
	case CmdResolutionSet:
		return "ResolutionSet"
	case CmdResolutionGet:
		return "ResolutionGet"
	case CmdAuxiliaryControlSet:
		return "AuxiliaryControlSet"
	case CmdAuxiliaryControlGet:
		return "AuxiliaryControlGet"
	case CmdConfigDisable:
		return "ConfigDisable"
	case CmdConfigEnable:
		return "ConfigEnable"
	default:
		return fmt.Sprintf("CommandCode(0x%02X)", byte(c))
	}
}

// ReplyStatus is the acknowledgement status carried by every reply.
type ReplyStatus uint16

// Reply statuses
const (
	StatusSuccess ReplyStatus = 0
	StatusFailure ReplyStatus = 1
)

// replyMarker is the constant byte that distinguishes a reply body from a
// command body carrying the same opcode.
const replyMarker = 0x01

// buildCommand assembles a command body: opcode, reserved zero byte, payload.
func buildCommand(code CommandCode, payload []byte) []byte {
	body := make([]byte, 0, 2+len(payload))
	body = append(body, byte(code), 0x00)
	return append(body, payload...)
}

// reply is a decoded reply envelope. Data is only present on success.
type reply struct {
	data   []byte
	code   CommandCode
	status ReplyStatus
}

// parseReply decodes a reply envelope from a command-class frame body.
func parseReply(body []byte) (reply, error) {
	if len(body) < 4 {
		return reply{}, fmt.Errorf("reply too short (%d bytes): %w", len(body), ErrUnexpectedReply)
	}
	if body[1] != replyMarker {
		return reply{}, fmt.Errorf("reply marker 0x%02X: %w", body[1], ErrUnexpectedReply)
	}
	r := reply{
		code:   CommandCode(body[0]),
		status: ReplyStatus(binary.LittleEndian.Uint16(body[2:])),
	}
	if r.status == StatusSuccess {
		r.data = body[4:]
	}
	return r, nil
}
