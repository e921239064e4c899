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
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hlk-sensors/go-ld2410/internal/frame"
)

// DeviceConfig contains configuration options for the Device.
type DeviceConfig struct {
	// CommandTimeout bounds how long a request waits for its reply.
	// Zero disables the timeout and requests wait indefinitely.
	CommandTimeout time.Duration
	// ReadBufferSize is the chunk size used by the background reader.
	ReadBufferSize int
}

// DefaultDeviceConfig returns the default device configuration.
func DefaultDeviceConfig() *DeviceConfig {
	return &DeviceConfig{
		CommandTimeout: 2 * time.Second,
		ReadBufferSize: 2048,
	}
}

// Device is a client for one LD2410 presence-detection radar module.
//
// A background goroutine started by Connect reads the transport, reassembles
// frames, and dispatches them: replies go to the single in-flight request,
// reports go to the report feed. All exported methods are safe for
// concurrent use; commands are serialized one at a time per connection.
type Device struct {
	transport Transport
	config    *DeviceConfig
	log       zerolog.Logger
	reports   *reportFeed

	// requestMu serializes requests: one round trip at a time.
	requestMu sync.Mutex
	// configMu is the single-holder configuration session lock.
	configMu sync.Mutex

	mu   sync.Mutex
	conn *conn
}

// conn is one connection handle: the transport plus the frame pump started
// on it. It is replaced wholesale on reconnect, never reused.
type conn struct {
	transport Transport
	// replies is the single-slot mailbox for inbound replies. The pump
	// drains a stale entry before pushing, so the newest reply wins.
	replies chan reply
	// done is closed when the pump exits; it doubles as the disconnect
	// sentinel for any in-flight request.
	done chan struct{}
}

// alive reports whether the frame pump is still running.
func (c *conn) alive() bool {
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// New creates a new LD2410 device on the given transport. Call Connect to
// start communicating.
func New(transport Transport, opts ...Option) (*Device, error) {
	device := &Device{
		transport: transport,
		config:    DefaultDeviceConfig(),
		log:       zerolog.Nop(),
		reports:   newReportFeed(),
	}

	for _, opt := range opts {
		if err := opt(device); err != nil {
			return nil, err
		}
	}

	return device, nil
}

// ConnectDevice opens a transport for path with factory, creates the device
// and connects it. This is the high-level entry point used by most callers:
//
//	device, err := ld2410.ConnectDevice("/dev/ttyUSB0", func(path string) (ld2410.Transport, error) {
//	    return uart.New(path)
//	})
func ConnectDevice(path string, factory TransportFactory, opts ...Option) (*Device, error) {
	if factory == nil {
		return nil, errors.New("transport factory not provided")
	}

	transport, err := factory(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport for path %s: %w", path, err)
	}

	device, err := New(transport, opts...)
	if err != nil {
		_ = transport.Close()
		return nil, err
	}
	if err := device.Connect(); err != nil {
		_ = transport.Close()
		return nil, err
	}
	return device, nil
}

// Transport returns the underlying transport.
func (d *Device) Transport() Transport {
	return d.transport
}

// Connect starts the background frame pump. It fails if the transport is
// not usable or the device is already connected. After a connection loss,
// Connect may be called again once the transport is usable again.
func (d *Device) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn != nil && d.conn.alive() {
		return errors.New("already connected")
	}
	if !d.transport.Connected() {
		return ErrNotConnected
	}

	c := &conn{
		transport: d.transport,
		replies:   make(chan reply, 1),
		done:      make(chan struct{}),
	}
	d.conn = c
	go d.readLoop(c)
	return nil
}

// Connected reports whether the frame pump is running and the transport is
// still up.
func (d *Device) Connected() bool {
	c := d.currentConn()
	return c != nil && c.alive() && c.transport.Connected()
}

// Close tears the connection down: it closes the transport, which stops the
// background pump, and waits for the pump to exit before returning.
func (d *Device) Close() error {
	d.mu.Lock()
	c := d.conn
	d.mu.Unlock()

	var err error
	if d.transport != nil {
		if cerr := d.transport.Close(); cerr != nil {
			err = fmt.Errorf("failed to close transport: %w", cerr)
		}
	}
	if c != nil {
		<-c.done
	}
	return err
}

func (d *Device) currentConn() *conn {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conn
}

// readLoop is the background frame pump: the sole reader of the transport
// and the sole writer of the reply mailbox and the report feed.
func (d *Device) readLoop(c *conn) {
	// Closing done is the disconnect sentinel: it can never block, and it
	// unblocks any request still waiting on a reply.
	defer close(c.done)

	stream := frame.NewStream(d.log)
	buf := make([]byte, d.config.ReadBufferSize)
	for {
		n, err := c.transport.Read(buf)
		if n > 0 {
			stream.Push(buf[:n])
			for f := range stream.Frames() {
				d.dispatch(c, f)
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				d.log.Debug().Err(err).Msg("frame pump terminated")
			}
			return
		}
	}
}

// dispatch routes one decoded frame. Faulty frame bodies are logged and
// dropped; they are never fatal to the connection.
func (d *Device) dispatch(c *conn, f frame.Frame) {
	switch f.Type {
	case frame.TypeCommand:
		rep, err := parseReply(f.Data)
		if err != nil {
			d.log.Warn().Err(err).Str("data", hex.EncodeToString(f.Data)).Msg("dropping unparseable reply")
			return
		}
		for {
			select {
			case c.replies <- rep:
				return
			default:
				// Slot occupied by a reply nobody claimed: replace it.
				select {
				case <-c.replies:
				default:
				}
			}
		}
	case frame.TypeReport:
		rep, err := parseReport(f.Data)
		if err != nil {
			d.log.Warn().Err(err).Str("data", hex.EncodeToString(f.Data)).Msg("dropping unparseable report")
			return
		}
		d.reports.record(rep)
	}
}

// SendRequest sends a raw opcoded command and returns the reply payload.
// This is the generic primitive behind every typed command; use it for
// opcodes this library has no wrapper for. The payload is the bytes after
// the opcode and reserved byte of the command body.
func (d *Device) SendRequest(ctx context.Context, code CommandCode, payload []byte) ([]byte, error) {
	rep, err := d.request(ctx, code, payload)
	if err != nil {
		return nil, err
	}
	return rep.data, nil
}

// request performs one command round trip: write the framed command, then
// wait for the reply carrying the same opcode. Only one request is in
// flight at a time; replies with a different opcode are stale leftovers of
// a timed-out request and are discarded.
func (d *Device) request(ctx context.Context, code CommandCode, payload []byte) (reply, error) {
	d.requestMu.Lock()
	defer d.requestMu.Unlock()

	c := d.currentConn()
	if c == nil || !c.alive() || !c.transport.Connected() {
		return reply{}, fmt.Errorf("command %s: %w", code, ErrNotConnected)
	}

	frm := frame.Encode(frame.TypeCommand, buildCommand(code, payload))
	if _, err := c.transport.Write(frm); err != nil {
		return reply{}, fmt.Errorf("command %s: write: %w", code, err)
	}

	var timeout <-chan time.Time
	if d.config.CommandTimeout > 0 {
		timer := time.NewTimer(d.config.CommandTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		select {
		case rep := <-c.replies:
			if rep.code != code {
				d.log.Warn().
					Stringer("got", rep.code).
					Stringer("want", code).
					Msg("discarding reply with stale opcode")
				continue
			}
			if rep.status != StatusSuccess {
				return reply{}, &CommandStatusError{Code: code, Status: rep.status}
			}
			return rep, nil
		case <-c.done:
			return reply{}, fmt.Errorf("command %s: %w", code, ErrConnectionClosed)
		case <-timeout:
			return reply{}, fmt.Errorf("command %s: %w", code, ErrCommandTimeout)
		case <-ctx.Done():
			return reply{}, ctx.Err()
		}
	}
}
