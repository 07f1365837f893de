// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package estimation

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Calibrator owns the in-process estimation history.
//
// # Thread Safety
//
// Safe for concurrent use. One RWMutex serializes RecordEstimate,
// RecordActual, and Import against the read paths (Estimate,
// CalibrationFactor, AccuracyStats, Export).
type Calibrator struct {
	mu      sync.RWMutex
	records []Record
	now     func() time.Time
}

// NewCalibrator creates an empty calibrator.
func NewCalibrator() *Calibrator {
	return &Calibrator{now: time.Now}
}

// EstimateParams are the inputs to RecordEstimate.
type EstimateParams struct {
	// TaskID is the work item the estimate is for.
	TaskID string

	// EstimatedPoints is the estimate being logged.
	EstimatedPoints int

	// Complexity is the 1-10 complexity score, used for banding.
	Complexity int
}

// RecordEstimate appends an open history record and returns it.
func (c *Calibrator) RecordEstimate(params EstimateParams) Record {
	rec := Record{
		RecordID:        uuid.NewString(),
		TaskID:          params.TaskID,
		EstimatedPoints: params.EstimatedPoints,
		ComplexityBand:  BandFor(params.Complexity),
		EstimatedAt:     c.now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
	return rec
}

// RecordActual closes the most recent open record for the task.
//
// Returns false when the task has no open record: recording an actual for
// an unknown or already-closed task is a soft failure, not an error.
func (c *Calibrator) RecordActual(taskID string, actualPoints int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.records) - 1; i >= 0; i-- {
		rec := &c.records[i]
		if rec.TaskID != taskID || rec.Closed() {
			continue
		}
		completed := c.now()
		rec.ActualPoints = &actualPoints
		rec.CompletedAt = &completed
		return true
	}
	return false
}

// CalibrationFactor returns mean(actual)/mean(estimated) over the band's
// closed records, or nil when the band has fewer than three of them.
func (c *Calibrator) CalibrationFactor(band Band) *float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calibrationFactorLocked(band)
}

func (c *Calibrator) calibrationFactorLocked(band Band) *float64 {
	var estSum, actSum float64
	count := 0
	for _, rec := range c.records {
		if rec.ComplexityBand != band || !rec.Closed() || rec.EstimatedPoints <= 0 {
			continue
		}
		estSum += float64(rec.EstimatedPoints)
		actSum += float64(*rec.ActualPoints)
		count++
	}
	if count < minRecordsForCalibration || estSum == 0 {
		return nil
	}
	factor := actSum / estSum
	return &factor
}

// TaskParams are the inputs to Estimate.
type TaskParams struct {
	// Complexity is the 1-10 complexity score.
	Complexity int
}

// Estimate produces a point estimate for the given complexity, applying the
// band's calibration factor when history supports one.
//
// Confidence starts at 50 and rises with the band's closed sample count
// (up to +40) plus a bonus when calibration applies, capped at 95: history
// never makes an estimate certain.
func (c *Calibrator) Estimate(params TaskParams) Estimate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	base := ComplexityToPoints(params.Complexity)
	band := BandFor(params.Complexity)

	samples := 0
	for _, rec := range c.records {
		if rec.ComplexityBand == band && rec.Closed() {
			samples++
		}
	}

	points := base
	factor := c.calibrationFactorLocked(band)
	calibrated := factor != nil
	reasoning := fmt.Sprintf("complexity %d maps to %d points (%s band)", params.Complexity, base, band)
	if calibrated {
		points = int(math.Round(float64(base) * *factor))
		if points < 1 {
			points = 1
		}
		reasoning += fmt.Sprintf("; adjusted by calibration factor %.2f from %d completed estimates", *factor, samples)
	} else {
		reasoning += fmt.Sprintf("; uncalibrated (%d of %d completed estimates needed)", samples, minRecordsForCalibration)
	}

	confidence := 50 + 4*samples
	if confidence > 90 {
		confidence = 90
	}
	if calibrated {
		confidence += 5
	}

	return Estimate{
		Points:            points,
		Range:             RangeFor(points, params.Complexity),
		Confidence:        confidence,
		Calibrated:        calibrated,
		CalibrationFactor: factor,
		Reasoning:         reasoning,
	}
}

// AccuracyStats reports per-band estimation error over closed records.
func (c *Calibrator) AccuracyStats() AccuracyStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := AccuracyStats{
		Bands:        make(map[Band]BandStats, 3),
		TotalRecords: len(c.records),
	}

	errSums := make(map[Band]float64, 3)
	counts := make(map[Band]int, 3)
	for _, rec := range c.records {
		if !rec.Closed() || rec.EstimatedPoints <= 0 {
			continue
		}
		stats.TotalClosed++
		diff := math.Abs(float64(*rec.ActualPoints - rec.EstimatedPoints))
		errSums[rec.ComplexityBand] += diff / float64(rec.EstimatedPoints)
		counts[rec.ComplexityBand]++
	}

	for band, count := range counts {
		stats.Bands[band] = BandStats{
			AvgError:    errSums[band] / float64(count),
			SampleCount: count,
		}
	}
	return stats
}

// Export returns a copy of the full history for external persistence.
func (c *Calibrator) Export() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Import replaces the in-memory history wholesale. Calibration factors are
// derived from the records on demand, so nothing else needs recomputing.
func (c *Calibrator) Import(records []Record) {
	replacement := make([]Record, len(records))
	copy(replacement, records)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = replacement
}
