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
	"encoding/hex"
	"iter"

	"github.com/rs/zerolog"
)

// Stream reassembles frames from a serial byte stream fed in arbitrary chunks.
// It synchronizes to frame boundaries across garbage and partial frames: bytes
// that cannot decode yet are kept until a later Push settles whether they are
// the start of a frame or junk to skip.
//
// Stream is not safe for concurrent use; the frame pump is its only caller.
type Stream struct {
	log zerolog.Logger
	buf []byte
	pos int
}

// NewStream returns an empty Stream logging resynchronization events to log.
func NewStream(log zerolog.Logger) *Stream {
	return &Stream{log: log}
}

// Push appends data to the stream without disturbing the read position.
func (s *Stream) Push(data []byte) int {
	s.buf = append(s.buf, data...)
	return len(data)
}

// Buffered returns the number of unconsumed bytes.
func (s *Stream) Buffered() int {
	return len(s.buf) - s.pos
}

// Frames returns an iterator over the complete frames currently decodable.
// Each call resumes from the stream's position; an incomplete trailing frame
// stays buffered for the next Push. Garbage and corrupted frames are skipped
// and logged, never yielded.
func (s *Stream) Frames() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for {
			f, n, err := Decode(s.buf[s.pos:])
			if err == nil {
				s.pos += n
				if !yield(f) {
					return
				}
				continue
			}

			remain := len(s.buf) - s.pos
			if remain < MinSize {
				if remain == 0 {
					// Everything consumed, drop the dead prefix.
					s.buf = s.buf[:0]
					s.pos = 0
				}
				return
			}

			idx := s.findHeader()
			if idx < 0 {
				// No header in sight. This may still be the tail of a split
				// header, so keep it for the next push.
				return
			}
			if idx > 0 {
				s.log.Warn().
					Int("count", idx).
					Str("bytes", hex.EncodeToString(s.buf[s.pos:s.pos+idx])).
					Msg("skipping garbage bytes")
				s.pos += idx
				continue
			}

			// Header at position 0: either the declared body has not fully
			// arrived yet, or the frame is corrupted past the header.
			declared := int(binary.LittleEndian.Uint16(s.buf[s.pos+HeaderSize:]))
			if remain < MinSize+declared {
				return
			}
			s.log.Warn().
				Str("bytes", hex.EncodeToString(s.buf[s.pos:s.pos+HeaderSize])).
				Msg("skipping corrupted header")
			s.pos += HeaderSize
		}
	}
}

// findHeader returns the offset of the earliest header marker in the
// unconsumed bytes, or -1 when neither marker is present.
func (s *Stream) findHeader() int {
	data := s.buf[s.pos:]
	idx := bytes.Index(data, HeaderCommand)
	if j := bytes.Index(data, HeaderReport); j >= 0 && (idx < 0 || j < idx) {
		idx = j
	}
	return idx
}
