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
	"errors"
	"testing"
)

func TestEncode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body []byte
		typ  Type
		want []byte
	}{
		{
			name: "command with body",
			typ:  TypeCommand,
			body: []byte{0xFE, 0x00},
			want: []byte{
				0xFD, 0xFC, 0xFB, 0xFA,
				0x02, 0x00,
				0xFE, 0x00,
				0x04, 0x03, 0x02, 0x01,
			},
		},
		{
			name: "command empty body",
			typ:  TypeCommand,
			body: nil,
			want: []byte{
				0xFD, 0xFC, 0xFB, 0xFA,
				0x00, 0x00,
				0x04, 0x03, 0x02, 0x01,
			},
		},
		{
			name: "report with body",
			typ:  TypeReport,
			body: []byte{0x02, 0xAA, 0x55, 0x00},
			want: []byte{
				0xF4, 0xF3, 0xF2, 0xF1,
				0x04, 0x00,
				0x02, 0xAA, 0x55, 0x00,
				0xF8, 0xF7, 0xF6, 0xF5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Encode(tt.typ, tt.body)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		wantErr  error
		name     string
		buf      []byte
		wantData []byte
		wantN    int
		wantType Type
	}{
		{
			name:     "command frame",
			buf:      []byte{0xFD, 0xFC, 0xFB, 0xFA, 0x02, 0x00, 0xFE, 0x00, 0x04, 0x03, 0x02, 0x01},
			wantType: TypeCommand,
			wantData: []byte{0xFE, 0x00},
			wantN:    12,
		},
		{
			name:     "report frame empty body",
			buf:      []byte{0xF4, 0xF3, 0xF2, 0xF1, 0x00, 0x00, 0xF8, 0xF7, 0xF6, 0xF5},
			wantType: TypeReport,
			wantData: []byte{},
			wantN:    10,
		},
		{
			name:     "trailing bytes ignored",
			buf:      []byte{0xFD, 0xFC, 0xFB, 0xFA, 0x00, 0x00, 0x04, 0x03, 0x02, 0x01, 0xAA, 0xBB},
			wantType: TypeCommand,
			wantData: []byte{},
			wantN:    10,
		},
		{
			name:    "empty buffer",
			buf:     nil,
			wantErr: ErrTruncated,
		},
		{
			name:    "partial header",
			buf:     []byte{0xFD, 0xFC, 0xFB},
			wantErr: ErrTruncated,
		},
		{
			name:    "header without length",
			buf:     []byte{0xFD, 0xFC, 0xFB, 0xFA, 0x02},
			wantErr: ErrTruncated,
		},
		{
			name:    "declared length exceeds buffer",
			buf:     []byte{0xFD, 0xFC, 0xFB, 0xFA, 0x20, 0x00, 0xFE, 0x00, 0x04, 0x03, 0x02, 0x01},
			wantErr: ErrTruncated,
		},
		{
			name:    "unknown header",
			buf:     []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09},
			wantErr: ErrUnknownHeader,
		},
		{
			name:    "footer mismatch",
			buf:     []byte{0xFD, 0xFC, 0xFB, 0xFA, 0x00, 0x00, 0xF8, 0xF7, 0xF6, 0xF5},
			wantErr: ErrFooterMismatch,
		},
		{
			name:    "cross-kind footer",
			buf:     []byte{0xF4, 0xF3, 0xF2, 0xF1, 0x00, 0x00, 0x04, 0x03, 0x02, 0x01},
			wantErr: ErrFooterMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f, n, err := Decode(tt.buf)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if f.Type != tt.wantType {
				t.Errorf("Decode() type = %v, want %v", f.Type, tt.wantType)
			}
			if !bytes.Equal(f.Data, tt.wantData) {
				t.Errorf("Decode() data = % X, want % X", f.Data, tt.wantData)
			}
			if n != tt.wantN {
				t.Errorf("Decode() consumed = %d, want %d", n, tt.wantN)
			}
		})
	}
}

// TestRoundTrip checks that re-encoding a decoded frame reproduces the exact
// input bytes, with the length field recomputed from the body.
func TestRoundTrip(t *testing.T) {
	t.Parallel()
	bodies := [][]byte{
		nil,
		{0xFE, 0x00},
		{0xFF, 0x01, 0x00, 0x00},
		bytes.Repeat([]byte{0x5A}, 300),
	}

	for _, typ := range []Type{TypeCommand, TypeReport} {
		for _, body := range bodies {
			encoded := Encode(typ, body)
			f, n, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode(Encode(%v, % X)) error: %v", typ, body, err)
			}
			if n != len(encoded) {
				t.Fatalf("Decode() consumed %d of %d bytes", n, len(encoded))
			}
			if !bytes.Equal(f.Data, body) {
				t.Fatalf("round trip body = % X, want % X", f.Data, body)
			}
			if again := Encode(f.Type, f.Data); !bytes.Equal(again, encoded) {
				t.Fatalf("re-encode = % X, want % X", again, encoded)
			}
		}
	}
}

func TestTypeString(t *testing.T) {
	t.Parallel()
	if got := TypeCommand.String(); got != "command" {
		t.Errorf("TypeCommand.String() = %q", got)
	}
	if got := TypeReport.String(); got != "report" {
		t.Errorf("TypeReport.String() = %q", got)
	}
	if got := Type(9).String(); got != "unknown" {
		t.Errorf("Type(9).String() = %q", got)
	}
}
