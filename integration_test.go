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

package ld2410_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ld2410 "github.com/hlk-sensors/go-ld2410"
	"github.com/hlk-sensors/go-ld2410/internal/emulator"
)

// connectEmulated wires a device to a fresh emulated module.
func connectEmulated(t *testing.T, opts ...ld2410.Option) (*ld2410.Device, *emulator.Device) {
	t.Helper()

	emu := emulator.New()
	device, err := ld2410.New(emu, opts...)
	require.NoError(t, err)
	require.NoError(t, device.Connect())
	t.Cleanup(func() { _ = device.Close() })
	return device, emu
}

func TestEmulatedConfigurationRoundTrip(t *testing.T) {
	t.Parallel()

	device, emu := connectEmulated(t)
	ctx := context.Background()

	err := device.Configure(ctx, func(s *ld2410.ConfigSession) error {
		assert.Equal(t, emulator.ProtocolVersion, s.Mode().ProtocolVersion)
		assert.Equal(t, emulator.BufferSize, s.Mode().BufferSize)
		assert.True(t, emu.InConfigMode())

		version, err := s.GetFirmwareVersion(ctx)
		if err != nil {
			return err
		}
		assert.Equal(t, "1.34.22062416", version.String())

		err = s.SetParameters(ctx, ld2410.Parameters{
			MotionMaxDistanceGate:     6,
			StandstillMaxDistanceGate: 7,
			NoOneIdleDuration:         120,
		})
		if err != nil {
			return err
		}

		status, err := s.GetParameters(ctx)
		if err != nil {
			return err
		}
		assert.Equal(t, uint8(6), status.MotionMaxDistanceGate)
		assert.Equal(t, uint8(7), status.StandstillMaxDistanceGate)
		assert.Equal(t, uint16(120), status.NoOneIdleDuration)
		return nil
	})
	require.NoError(t, err)

	// The session teardown must have left the configuration mode.
	assert.False(t, emu.InConfigMode())
}

func TestEmulatedGateSensitivity(t *testing.T) {
	t.Parallel()

	device, _ := connectEmulated(t)
	ctx := context.Background()

	err := device.Configure(ctx, func(s *ld2410.ConfigSession) error {
		err := s.SetGateSensitivity(ctx, ld2410.GateSensitivity{
			DistanceGate:          3,
			MotionSensitivity:     77,
			StandstillSensitivity: 66,
		})
		if err != nil {
			return err
		}

		status, err := s.GetParameters(ctx)
		if err != nil {
			return err
		}
		assert.Equal(t, uint8(77), status.MotionSensitivity[3])
		assert.Equal(t, uint8(66), status.StandstillSensitivity[3])
		return nil
	})
	require.NoError(t, err)
}

func TestEmulatedCommandOutsideConfigMode(t *testing.T) {
	t.Parallel()

	device, _ := connectEmulated(t)

	// The emulated firmware rejects configuration commands outside the
	// configuration mode with a failure status.
	_, err := device.SendRequest(context.Background(), ld2410.CmdFirmwareVersion, nil)
	var statusErr *ld2410.CommandStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, ld2410.CmdFirmwareVersion, statusErr.Code)
}

func TestEmulatedRestart(t *testing.T) {
	t.Parallel()

	device, emu := connectEmulated(t)
	ctx := context.Background()

	err := device.Configure(ctx, func(s *ld2410.ConfigSession) error {
		if err := s.RestartModule(ctx); err != nil {
			return err
		}
		return ld2410.ErrModuleRestarted
	})
	require.True(t, ld2410.IsRestarted(err))
	assert.False(t, emu.InConfigMode())
}

func TestEmulatedReportStream(t *testing.T) {
	t.Parallel()

	device, emu := connectEmulated(t)

	emu.EmitBasicReport(ld2410.TargetMotion, 150, 0, 150)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	report, err := device.WaitNextReport(ctx)
	require.NoError(t, err)

	assert.True(t, report.Basic.TargetStatus.Motion())
	assert.False(t, report.Basic.TargetStatus.Standstill())
	assert.Equal(t, uint16(150), report.Basic.MotionDistance)
	assert.Equal(t, uint16(150), report.Basic.DetectionDistance)
	assert.Nil(t, report.Engineering)
}

func TestEmulatedEngineeringReports(t *testing.T) {
	t.Parallel()

	device, emu := connectEmulated(t)
	ctx := context.Background()

	err := device.Configure(ctx, func(s *ld2410.ConfigSession) error {
		return s.SetEngineeringMode(ctx, true)
	})
	require.NoError(t, err)

	emu.EmitBasicReport(ld2410.TargetMotion, 90, 0, 90)

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	report, err := device.WaitNextReport(waitCtx)
	require.NoError(t, err)

	require.NotNil(t, report.Engineering)
	assert.Equal(t, uint8(8), report.Engineering.MotionMaxDistanceGate)
}

func TestEmulatedNoReportsDuringConfiguration(t *testing.T) {
	t.Parallel()

	device, emu := connectEmulated(t)
	ctx := context.Background()

	err := device.Configure(ctx, func(*ld2410.ConfigSession) error {
		// The emulated device suppresses reports in configuration mode.
		emu.EmitBasicReport(ld2410.TargetMotion, 100, 0, 100)

		waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err := device.WaitNextReport(waitCtx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		return nil
	})
	require.NoError(t, err)
}

func TestEmulatedGarbageResynchronization(t *testing.T) {
	t.Parallel()

	device, emu := connectEmulated(t)

	// Line noise before the next reply must not break the request.
	emu.GarbageBefore([]byte{0x00, 0x13, 0x37, 0xFD, 0xFC})

	err := device.Configure(context.Background(), func(*ld2410.ConfigSession) error {
		return nil
	})
	require.NoError(t, err)
}

func TestEmulatedSplitTransmissions(t *testing.T) {
	t.Parallel()

	device, emu := connectEmulated(t)
	emu.SplitWrites(3)

	ctx := context.Background()
	err := device.Configure(ctx, func(s *ld2410.ConfigSession) error {
		_, err := s.GetParameters(ctx)
		return err
	})
	require.NoError(t, err)

	emu.EmitBasicReport(ld2410.TargetStandstill, 0, 200, 200)
	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	report, err := device.WaitNextReport(waitCtx)
	require.NoError(t, err)
	assert.Equal(t, uint16(200), report.Basic.StandstillDistance)
}

func TestEmulatedDroppedReplyTimesOut(t *testing.T) {
	t.Parallel()

	device, emu := connectEmulated(t, ld2410.WithCommandTimeout(50*time.Millisecond))
	emu.DropNextReplies(1)

	err := device.Configure(context.Background(), func(*ld2410.ConfigSession) error {
		return nil
	})
	assert.ErrorIs(t, err, ld2410.ErrCommandTimeout)
}

func TestEmulatedStaleReplyDiscarded(t *testing.T) {
	t.Parallel()

	device, emu := connectEmulated(t, ld2410.WithCommandTimeout(time.Second))
	ctx := context.Background()

	// The device answers the next command with a leftover reply first; the
	// correlator must discard it and wait for the matching one.
	emu.StaleNextReply(ld2410.CmdParametersRead)

	err := device.Configure(ctx, func(s *ld2410.ConfigSession) error {
		_, err := s.GetFirmwareVersion(ctx)
		return err
	})
	require.NoError(t, err)
}

func TestEmulatedDisconnect(t *testing.T) {
	t.Parallel()

	device, emu := connectEmulated(t, ld2410.WithCommandTimeout(5*time.Second))

	emu.DropNextReplies(1)
	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = emu.Close()
	}()

	_, err := device.SendRequest(context.Background(), ld2410.CmdConfigEnable, []byte{0x01, 0x00})
	assert.ErrorIs(t, err, ld2410.ErrConnectionClosed)

	assert.False(t, device.Connected())
	assert.ErrorIs(t, device.Connect(), ld2410.ErrNotConnected)
}

func TestEmulatedFactoryResetRestoresDefaults(t *testing.T) {
	t.Parallel()

	device, _ := connectEmulated(t)
	ctx := context.Background()

	err := device.Configure(ctx, func(s *ld2410.ConfigSession) error {
		err := s.SetParameters(ctx, ld2410.Parameters{
			MotionMaxDistanceGate:     2,
			StandstillMaxDistanceGate: 2,
			NoOneIdleDuration:         1,
		})
		if err != nil {
			return err
		}
		if err := s.FactoryReset(ctx); err != nil {
			return err
		}

		status, err := s.GetParameters(ctx)
		if err != nil {
			return err
		}
		assert.Equal(t, uint8(8), status.MotionMaxDistanceGate)
		assert.Equal(t, uint8(8), status.StandstillMaxDistanceGate)
		return nil
	})
	require.NoError(t, err)
}
