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

package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// Type identifies which header/footer pair a frame was built with.
type Type byte

const (
	// TypeCommand frames carry commands and their replies.
	TypeCommand Type = 1
	// TypeReport frames carry unsolicited status reports.
	TypeReport Type = 2
)

// String returns the frame type name for logging.
func (t Type) String() string {
	switch t {
	case TypeCommand:
		return "command"
	case TypeReport:
		return "report"
	default:
		return "unknown"
	}
}

// Codec errors
var (
	// ErrTruncated means the buffer does not yet hold a complete frame.
	ErrTruncated = errors.New("truncated frame")
	// ErrUnknownHeader means the buffer does not start with a known header.
	ErrUnknownHeader = errors.New("unknown frame header")
	// ErrFooterMismatch means the footer bytes do not match the header's pair.
	ErrFooterMismatch = errors.New("frame footer mismatch")
)

// Frame is one decoded unit of the wire protocol.
type Frame struct {
	Data []byte
	Type Type
}

// Encode builds a complete frame around body. The length field is always
// computed from the actual body so Encode(Decode(x)) round-trips byte-for-byte.
func Encode(t Type, body []byte) []byte {
	header, footer := HeaderCommand, FooterCommand
	if t == TypeReport {
		header, footer = HeaderReport, FooterReport
	}

	out := make([]byte, 0, MinSize+len(body))
	out = append(out, header...)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(body)))
	out = append(out, body...)
	out = append(out, footer...)
	return out
}

// Decode extracts a single frame from the start of buf. It returns the frame
// and the number of bytes consumed. ErrTruncated is returned while buf may
// still grow into a valid frame; ErrUnknownHeader and ErrFooterMismatch are
// returned for bytes that can never decode at this offset.
func Decode(buf []byte) (Frame, int, error) {
	if len(buf) < HeaderSize {
		return Frame{}, 0, ErrTruncated
	}

	var typ Type
	var footer []byte
	switch {
	case bytes.Equal(buf[:HeaderSize], HeaderCommand):
		typ, footer = TypeCommand, FooterCommand
	case bytes.Equal(buf[:HeaderSize], HeaderReport):
		typ, footer = TypeReport, FooterReport
	default:
		return Frame{}, 0, ErrUnknownHeader
	}

	if len(buf) < HeaderSize+LengthSize {
		return Frame{}, 0, ErrTruncated
	}
	length := int(binary.LittleEndian.Uint16(buf[HeaderSize:]))
	total := MinSize + length
	if len(buf) < total {
		return Frame{}, 0, ErrTruncated
	}

	if !bytes.Equal(buf[HeaderSize+LengthSize+length:total], footer) {
		return Frame{}, 0, ErrFooterMismatch
	}

	// Copy out the body so the frame stays valid after buffer compaction.
	data := make([]byte, length)
	copy(data, buf[HeaderSize+LengthSize:])
	return Frame{Type: typ, Data: data}, total, nil
}
