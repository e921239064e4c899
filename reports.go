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
	"iter"
	"sync"
)

// reportFeed is the most-recent-value broadcast for incoming reports. The
// frame pump is its only writer; there is no history, a slow reader only
// ever observes the latest report.
type reportFeed struct {
	changed chan struct{}
	latest  Report
	mu      sync.Mutex
	valid   bool
}

func newReportFeed() *reportFeed {
	return &reportFeed{changed: make(chan struct{})}
}

// record overwrites the latest report and wakes every current waiter. The
// overwrite and the wake-up are atomic with respect to last and next.
func (f *reportFeed) record(r Report) {
	f.mu.Lock()
	f.latest = r
	f.valid = true
	close(f.changed)
	f.changed = make(chan struct{})
	f.mu.Unlock()
}

// last returns a copy of the latest report, if any was received yet.
func (f *reportFeed) last() (Report, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.valid {
		return Report{}, false
	}
	return f.latest.clone(), true
}

// next blocks until a report recorded after the call began, then returns a
// copy of it.
func (f *reportFeed) next(ctx context.Context) (Report, error) {
	f.mu.Lock()
	ch := f.changed
	f.mu.Unlock()

	select {
	case <-ctx.Done():
		return Report{}, ctx.Err()
	case <-ch:
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest.clone(), nil
}

// GetLastReport returns the most recent report received from the device.
// It never blocks. The second return value is false until the first report
// arrives. Note that the report can be outdated after a long configuration
// session, since the device emits no reports in configuration mode.
func (d *Device) GetLastReport() (Report, bool) {
	return d.reports.last()
}

// WaitNextReport blocks until the next report arrives and returns it.
// Multiple concurrent callers all receive the same report, each as an
// independent copy.
//
// The device emits no reports while a configuration session is open, so a
// context deadline expiring during configuration is not a connectivity
// fault.
func (d *Device) WaitNextReport(ctx context.Context) (Report, error) {
	return d.reports.next(ctx)
}

// Reports returns an iterator delivering reports as they arrive. Iteration
// stops when ctx is canceled. Intermediate reports are skipped if the
// consumer is slower than the device's report rate.
func (d *Device) Reports(ctx context.Context) iter.Seq[Report] {
	return func(yield func(Report) bool) {
		for {
			r, err := d.reports.next(ctx)
			if err != nil {
				return
			}
			if !yield(r) {
				return
			}
		}
	}
}
