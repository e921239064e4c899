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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlk-sensors/go-ld2410/internal/frame"
)

func TestReportFeedLast(t *testing.T) {
	t.Parallel()

	feed := newReportFeed()

	_, ok := feed.last()
	assert.False(t, ok)

	feed.record(Report{Basic: ReportBasic{DetectionDistance: 100}})
	report, ok := feed.last()
	require.True(t, ok)
	assert.Equal(t, uint16(100), report.Basic.DetectionDistance)

	// A newer report replaces the old one; there is no history.
	feed.record(Report{Basic: ReportBasic{DetectionDistance: 200}})
	report, ok = feed.last()
	require.True(t, ok)
	assert.Equal(t, uint16(200), report.Basic.DetectionDistance)
}

func TestReportFeedWakesAllWaiters(t *testing.T) {
	t.Parallel()

	feed := newReportFeed()

	const waiters = 5
	results := make(chan Report, waiters)
	var ready sync.WaitGroup
	for range waiters {
		ready.Add(1)
		go func() {
			ready.Done()
			r, err := feed.next(context.Background())
			if err == nil {
				results <- r
			}
		}()
	}
	ready.Wait()
	// Give the goroutines a moment to block on the change channel.
	time.Sleep(10 * time.Millisecond)

	feed.record(Report{Basic: ReportBasic{DetectionDistance: 42}})

	for range waiters {
		select {
		case r := <-results:
			assert.Equal(t, uint16(42), r.Basic.DetectionDistance)
		case <-time.After(2 * time.Second):
			t.Fatal("waiter was not woken")
		}
	}
}

func TestReportFeedNextContextCanceled(t *testing.T) {
	t.Parallel()

	feed := newReportFeed()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := feed.next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetLastReportReturnsCopy(t *testing.T) {
	t.Parallel()

	feed := newReportFeed()
	eng := &ReportEngineering{MotionGateEnergy: [GateCount]uint8{1, 2, 3}}
	feed.record(Report{Engineering: eng})

	first, ok := feed.last()
	require.True(t, ok)
	first.Engineering.MotionGateEnergy[0] = 99

	second, ok := feed.last()
	require.True(t, ok)
	assert.Equal(t, uint8(1), second.Engineering.MotionGateEnergy[0])
}

func TestReportsIterator(t *testing.T) {
	t.Parallel()

	device, mock := scriptedDevice(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Keep feeding reports with a growing distance until the consumer has
	// seen enough; the feed only keeps the latest value, so the consumer
	// may legitimately skip some.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for i := uint16(1); ; i++ {
			body := basicReportBody()
			body[9] = byte(i)
			body[10] = byte(i >> 8)
			mock.Feed(frame.Encode(frame.TypeReport, body))
			select {
			case <-stop:
				return
			case <-time.After(5 * time.Millisecond):
			}
		}
	}()

	var distances []uint16
	for report := range device.Reports(ctx) {
		distances = append(distances, report.Basic.DetectionDistance)
		if len(distances) == 3 {
			break
		}
	}

	require.Len(t, distances, 3)
	assert.Less(t, distances[0], distances[1])
	assert.Less(t, distances[1], distances[2])
}
