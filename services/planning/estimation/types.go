// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package estimation calibrates effort estimates against recorded history.
//
// # Description
//
// The calibrator keeps (estimated, actual) effort pairs bucketed by
// complexity band. Once a band has enough closed records, the ratio of mean
// actual to mean estimated effort becomes a correction factor applied to
// future estimates in that band. History lives in process memory; the Store
// adapter provides the persistence hand-off.
//
// # Thread Safety
//
// Calibrator serializes writers against readers with one RWMutex. Package
// functions are pure.
package estimation

import "time"

// Band buckets a 1-10 complexity score for calibration.
type Band string

const (
	BandLow    Band = "low"    // complexity 1-3
	BandMedium Band = "medium" // complexity 4-6
	BandHigh   Band = "high"   // complexity 7-10
)

// minRecordsForCalibration gates the correction factor: fewer closed
// records than this yields no factor rather than a misleading one.
const minRecordsForCalibration = 3

// fibPoints maps complexity 1-10 onto a Fibonacci-style point scale.
var fibPoints = [11]int{0, 1, 2, 3, 5, 5, 8, 8, 13, 13, 13}

// ComplexityToPoints maps a 1-10 complexity score to story points.
// The mapping is monotonically non-decreasing; out-of-range input clamps.
func ComplexityToPoints(complexity int) int {
	if complexity < 1 {
		complexity = 1
	}
	if complexity > 10 {
		complexity = 10
	}
	return fibPoints[complexity]
}

// BandFor returns the complexity band for a 1-10 complexity score.
func BandFor(complexity int) Band {
	switch {
	case complexity <= 3:
		return BandLow
	case complexity <= 6:
		return BandMedium
	default:
		return BandHigh
	}
}

// Range is an uncertainty interval around a point estimate.
type Range struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// RangeFor returns the uncertainty range for an estimate. The band widens
// with complexity, since harder work carries more estimation error, and
// Low never drops below one point.
func RangeFor(points, complexity int) Range {
	var lowFrac, highFrac float64
	switch BandFor(complexity) {
	case BandLow:
		lowFrac, highFrac = 0.8, 1.2
	case BandMedium:
		lowFrac, highFrac = 0.7, 1.4
	default:
		lowFrac, highFrac = 0.5, 1.75
	}

	low := int(float64(points)*lowFrac + 0.5)
	if low < 1 {
		low = 1
	}
	high := int(float64(points)*highFrac + 0.5)
	if high < low {
		high = low
	}
	return Range{Low: low, High: high}
}

// Record is one estimation history entry. A record is open until actual
// points are filled in; only closed records feed calibration.
type Record struct {
	// RecordID is a non-semantic unique identifier, assigned at creation.
	RecordID string `json:"record_id"`

	// TaskID links the record to a work item.
	TaskID string `json:"task_id"`

	// EstimatedPoints is the original estimate.
	EstimatedPoints int `json:"estimated_points"`

	// ActualPoints is the measured effort; nil while the record is open.
	ActualPoints *int `json:"actual_points,omitempty"`

	// ComplexityBand buckets the record for calibration.
	ComplexityBand Band `json:"complexity_band"`

	// EstimatedAt is when the estimate was recorded.
	EstimatedAt time.Time `json:"estimated_at"`

	// CompletedAt is when the actual was recorded; nil while open.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Closed reports whether actual effort has been recorded.
func (r Record) Closed() bool {
	return r.ActualPoints != nil
}

// Estimate is a calibrated effort estimate.
type Estimate struct {
	// Points is the (possibly calibrated) point estimate.
	Points int `json:"points"`

	// Range is the uncertainty interval around Points.
	Range Range `json:"range"`

	// Confidence is 0-100 and rises with historical sample count.
	Confidence int `json:"confidence"`

	// Calibrated is true when a historical correction factor was applied.
	Calibrated bool `json:"calibrated"`

	// CalibrationFactor is the applied correction, nil when uncalibrated.
	CalibrationFactor *float64 `json:"calibration_factor,omitempty"`

	// Reasoning explains how the estimate was produced.
	Reasoning string `json:"reasoning"`
}

// BandStats summarizes estimation accuracy within one band.
type BandStats struct {
	// AvgError is mean(|actual - estimated| / estimated) over closed records.
	AvgError float64 `json:"avg_error"`

	// SampleCount is the number of closed records in the band.
	SampleCount int `json:"sample_count"`
}

// AccuracyStats summarizes estimation accuracy across all bands.
type AccuracyStats struct {
	Bands        map[Band]BandStats `json:"bands"`
	TotalRecords int                `json:"total_records"`
	TotalClosed  int                `json:"total_closed"`
}
