// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package planning

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Prometheus Metrics for Planning Tools
// =============================================================================

var (
	// requestsTotal counts engine calls by tool.
	// Labels: tool (analyze_dependencies, prioritize_backlog, ...), status (ok, error)
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planning",
		Name:      "requests_total",
		Help:      "Total planning engine requests by tool",
	}, []string{"tool", "status"})

	// requestDuration measures per-tool call latency.
	// Labels: tool
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "planning",
		Name:      "request_duration_seconds",
		Help:      "Planning engine request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	}, []string{"tool"})

	// confidenceScores tracks the distribution of result confidence.
	// Labels: tool
	confidenceScores = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "planning",
		Name:      "confidence_score",
		Help:      "Distribution of result confidence scores (0-100)",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	}, []string{"tool"})
)

// observeRequest records one engine call. Duration is measured here so
// every facade method reports the same way.
func observeRequest(tool string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	requestsTotal.WithLabelValues(tool, status).Inc()
	requestDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}

func observeConfidence(tool string, score int) {
	confidenceScores.WithLabelValues(tool).Observe(float64(score))
}
