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

// Package frame provides the LD2410 frame envelope codec and the byte-stream
// reassembler that recovers discrete frames from a raw serial stream.
package frame

// Frame envelope sizes
const (
	HeaderSize = 4 // fixed header marker
	LengthSize = 2 // little-endian body length
	FooterSize = 4 // fixed footer marker

	// MinSize is the size of a frame with an empty body.
	MinSize = HeaderSize + LengthSize + FooterSize
)

// Header and footer markers. The command pair carries command/reply traffic,
// the report pair carries unsolicited status reports.
var (
	HeaderCommand = []byte{0xFD, 0xFC, 0xFB, 0xFA}
	FooterCommand = []byte{0x04, 0x03, 0x02, 0x01}
	HeaderReport  = []byte{0xF4, 0xF3, 0xF2, 0xF1}
	FooterReport  = []byte{0xF8, 0xF7, 0xF6, 0xF5}
)
