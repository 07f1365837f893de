// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package suggest composes sprint suggestions from the backlog.
//
// # Description
//
// The composer chains the capacity analyzer, the backlog prioritizer, and
// the risk assessor: capacity bounds the sprint, priority orders the
// candidates, and a greedy walk admits each item together with its
// unselected dependency closure while the cumulative points stay within
// the recommended load. The walk is deterministic for identical inputs.
package suggest

import (
	"github.com/AleutianAI/AleutianPlan/services/planning/capacity"
	"github.com/AleutianAI/AleutianPlan/services/planning/confidence"
	"github.com/AleutianAI/AleutianPlan/services/planning/graph"
	"github.com/AleutianAI/AleutianPlan/services/planning/risk"
)

// Params are the sprint suggestion inputs.
type Params struct {
	// Items is the candidate backlog.
	Items []graph.WorkItem `json:"items"`

	// Capacity configures the capacity analysis bounding the sprint.
	Capacity capacity.Params `json:"capacity"`

	// BusinessGoals bias prioritization toward goal-aligned work.
	// Optional.
	BusinessGoals []string `json:"business_goals,omitempty"`

	// RiskTolerance tunes the prioritizer's size-vs-risk curve. Nil means
	// the default.
	RiskTolerance *float64 `json:"risk_tolerance,omitempty"`
}

// SelectedItem is one item admitted into the suggested sprint.
type SelectedItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Points int    `json:"points"`

	// Score is the priority score the item entered the walk with.
	Score int `json:"score"`

	// IncludeReason states why the item made the sprint.
	IncludeReason string `json:"include_reason"`
}

// ExcludedItem is one candidate that did not make the sprint.
type ExcludedItem struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Result is a complete sprint suggestion.
type Result struct {
	// Items is the suggested sprint content, in admission order.
	Items []SelectedItem `json:"items"`

	// TotalPoints is the committed size of the suggestion.
	TotalPoints int `json:"total_points"`

	// Excluded lists candidates left out, with reasons.
	Excluded []ExcludedItem `json:"excluded"`

	// Capacity is the analysis the suggestion was bounded by.
	Capacity capacity.SprintCapacity `json:"capacity"`

	// CapacityUtilization is TotalPoints over the recommended load,
	// zero when no load could be computed.
	CapacityUtilization float64 `json:"capacity_utilization"`

	// Risks assesses the selected set.
	Risks *risk.Result `json:"risks"`

	// Reasoning summarizes the composition.
	Reasoning string `json:"reasoning"`

	Confidence confidence.SectionConfidence `json:"confidence"`
}
