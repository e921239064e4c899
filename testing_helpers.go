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
	"io"
	"sync"
)

// MockTransport is an in-memory Transport for tests: bytes pushed with Feed
// become readable on the host side, and everything the host writes is
// recorded. An optional OnWrite hook lets a test script device replies.
type MockTransport struct {
	incoming chan []byte
	closed   chan struct{}

	// OnWrite, when set, is invoked with each Write's bytes. Set it before
	// connecting the device.
	OnWrite func(data []byte)

	mu        sync.Mutex
	writes    [][]byte
	pending   []byte
	closeOnce sync.Once
}

// NewMockTransport creates a connected mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		incoming: make(chan []byte, 64),
		closed:   make(chan struct{}),
	}
}

// Feed makes data readable on the host side, as if the device sent it.
func (m *MockTransport) Feed(data []byte) {
	buf := make([]byte, len(data))
	copy(buf, data)
	select {
	case m.incoming <- buf:
	case <-m.closed:
	}
}

// Read blocks until fed bytes are available or the transport is closed.
func (m *MockTransport) Read(p []byte) (int, error) {
	m.mu.Lock()
	if len(m.pending) > 0 {
		n := copy(p, m.pending)
		m.pending = m.pending[n:]
		m.mu.Unlock()
		return n, nil
	}
	m.mu.Unlock()

	select {
	case chunk := <-m.incoming:
		n := copy(p, chunk)
		if n < len(chunk) {
			m.mu.Lock()
			m.pending = append(m.pending, chunk[n:]...)
			m.mu.Unlock()
		}
		return n, nil
	case <-m.closed:
		return 0, io.EOF
	}
}

// Write records the host's bytes and triggers OnWrite.
func (m *MockTransport) Write(p []byte) (int, error) {
	select {
	case <-m.closed:
		return 0, io.ErrClosedPipe
	default:
	}

	buf := make([]byte, len(p))
	copy(buf, p)
	m.mu.Lock()
	m.writes = append(m.writes, buf)
	hook := m.OnWrite
	m.mu.Unlock()

	if hook != nil {
		hook(buf)
	}
	return len(p), nil
}

// Writes returns everything written so far, one entry per Write call.
func (m *MockTransport) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.writes))
	copy(out, m.writes)
	return out
}

// Close disconnects the mock; pending and future Reads fail with io.EOF.
func (m *MockTransport) Close() error {
	m.closeOnce.Do(func() { close(m.closed) })
	return nil
}

// Connected reports whether Close was called.
func (m *MockTransport) Connected() bool {
	select {
	case <-m.closed:
		return false
	default:
		return true
	}
}

// Type returns TransportMock.
func (*MockTransport) Type() TransportType {
	return TransportMock
}
