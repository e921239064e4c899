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
	"encoding/binary"
	"fmt"
)

// GateCount is the number of distance gates reported by the sensor.
const GateCount = 9

// TargetStatus is the detection flag set of the tracked target.
type TargetStatus uint8

// Target status flags
const (
	TargetMotion     TargetStatus = 1 << 0
	TargetStandstill TargetStatus = 1 << 1
)

// Motion reports whether a moving target is detected.
func (s TargetStatus) Motion() bool { return s&TargetMotion != 0 }

// Standstill reports whether a stationary target is detected.
func (s TargetStatus) Standstill() bool { return s&TargetStandstill != 0 }

// OutPinLevel is the level of the module's OUT pin.
type OutPinLevel uint8

// OUT pin levels
const (
	OutPinLow  OutPinLevel = 0
	OutPinHigh OutPinLevel = 1
)

// ReportBasic is the part of a report that is always present.
type ReportBasic struct {
	// TargetStatus holds the detection flags of the target, if any.
	TargetStatus TargetStatus
	// MotionEnergy is the moving target's energy in percent.
	MotionEnergy uint8
	// StandstillEnergy is the stationary target's energy in percent.
	StandstillEnergy uint8
	// MotionDistance is the moving target's distance in centimeters.
	MotionDistance uint16
	// StandstillDistance is the stationary target's distance in centimeters.
	StandstillDistance uint16
	// DetectionDistance is the overall detection distance in centimeters.
	DetectionDistance uint16
}

// ReportEngineering is the per-gate detail present only while engineering
// mode is enabled.
type ReportEngineering struct {
	MotionMaxDistanceGate     uint8
	StandstillMaxDistanceGate uint8
	// Per-gate energies in percent.
	MotionGateEnergy     [GateCount]uint8
	StandstillGateEnergy [GateCount]uint8
	// PhotosensitiveValue is the raw photo sensor value (0-255).
	PhotosensitiveValue uint8
	OutPinStatus        OutPinLevel
}

// Report is one status report received from the device.
type Report struct {
	// Engineering is nil unless engineering mode was enabled.
	Engineering *ReportEngineering
	Basic       ReportBasic
}

// clone returns an independent copy, so readers never share mutable state
// with the feed's latest-value slot.
func (r Report) clone() Report {
	if r.Engineering != nil {
		eng := *r.Engineering
		r.Engineering = &eng
	}
	return r
}

// Report body markers
const (
	reportTypeEngineering = 0x01
	reportTypeBasic       = 0x02
	reportHead            = 0xAA
	reportTail            = 0x55
	reportCalibration     = 0x00

	reportBasicSize       = 13 // type, head, basic record, tail, calibration
	reportEngineeringSize = reportBasicSize + 22
)

// parseReport decodes a report-class frame body.
func parseReport(body []byte) (Report, error) {
	if len(body) < reportBasicSize {
		return Report{}, fmt.Errorf("report too short (%d bytes): %w", len(body), ErrUnexpectedReply)
	}
	typ := body[0]
	if body[1] != reportHead {
		return Report{}, fmt.Errorf("report head marker 0x%02X: %w", body[1], ErrUnexpectedReply)
	}

	var r Report
	r.Basic = ReportBasic{
		TargetStatus:       TargetStatus(body[2]),
		MotionDistance:     binary.LittleEndian.Uint16(body[3:]),
		MotionEnergy:       body[5],
		StandstillDistance: binary.LittleEndian.Uint16(body[6:]),
		StandstillEnergy:   body[8],
		DetectionDistance:  binary.LittleEndian.Uint16(body[9:]),
	}

	end := reportBasicSize
	switch typ {
	case reportTypeBasic:
	case reportTypeEngineering:
		if len(body) < reportEngineeringSize {
			return Report{}, fmt.Errorf("engineering report too short (%d bytes): %w", len(body), ErrUnexpectedReply)
		}
		eng := &ReportEngineering{
			MotionMaxDistanceGate:     body[11],
			StandstillMaxDistanceGate: body[12],
			PhotosensitiveValue:       body[31],
			OutPinStatus:              OutPinLevel(body[32]),
		}
		copy(eng.MotionGateEnergy[:], body[13:22])
		copy(eng.StandstillGateEnergy[:], body[22:31])
		r.Engineering = eng
		end = reportEngineeringSize
	default:
		return Report{}, fmt.Errorf("report type 0x%02X: %w", typ, ErrUnexpectedReply)
	}

	if body[end-2] != reportTail || body[end-1] != reportCalibration {
		return Report{}, fmt.Errorf("report trailer % X: %w", body[end-2:end], ErrUnexpectedReply)
	}
	return r, nil
}
