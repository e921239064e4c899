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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    CommandCode
		payload []byte
		want    []byte
	}{
		{
			name: "no payload",
			code: CmdConfigDisable,
			want: []byte{0xFE, 0x00},
		},
		{
			name:    "config enable payload",
			code:    CmdConfigEnable,
			payload: []byte{0x01, 0x00},
			want:    []byte{0xFF, 0x00, 0x01, 0x00},
		},
		{
			name:    "baud rate index",
			code:    CmdBaudRateSet,
			payload: []byte{0x07, 0x00},
			want:    []byte{0xA1, 0x00, 0x07, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, buildCommand(tt.code, tt.payload))
		})
	}
}

func TestParseReply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    []byte
		want    reply
		wantErr bool
	}{
		{
			name: "success without data",
			body: []byte{0xFE, 0x01, 0x00, 0x00},
			want: reply{code: CmdConfigDisable, status: StatusSuccess, data: []byte{}},
		},
		{
			name: "success with data",
			body: []byte{0xFF, 0x01, 0x00, 0x00, 0x01, 0x00, 0x40, 0x00},
			want: reply{code: CmdConfigEnable, status: StatusSuccess, data: []byte{0x01, 0x00, 0x40, 0x00}},
		},
		{
			name: "failure status drops data",
			body: []byte{0xA1, 0x01, 0x01, 0x00, 0xDE, 0xAD},
			want: reply{code: CmdBaudRateSet, status: StatusFailure},
		},
		{
			name:    "too short",
			body:    []byte{0xFE, 0x01, 0x00},
			wantErr: true,
		},
		{
			name:    "command marker instead of reply marker",
			body:    []byte{0xFE, 0x00, 0x00, 0x00},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseReply(tt.body)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnexpectedReply)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.code, got.code)
			assert.Equal(t, tt.want.status, got.status)
			assert.Equal(t, tt.want.data, got.data)
		})
	}
}

func TestCommandCodeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ConfigEnable", CmdConfigEnable.String())
	assert.Equal(t, "ParametersWrite", CmdParametersWrite.String())
	assert.Equal(t, "CommandCode(0x42)", CommandCode(0x42).String())
}
