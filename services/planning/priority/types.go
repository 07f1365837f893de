// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package priority ranks backlog items by a weighted multi-factor score.
//
// # Description
//
// Four factors in [0,1] (business value, dependency position, risk, and
// effort fit) combine under caller-tunable weights into a 0-100 score.
// Items in dependency cycles degrade to a neutral dependency factor
// instead of failing. When no AI self-assessment signal is available the
// ranking is fully deterministic and the result says so.
//
// # Thread Safety
//
// The prioritizer is stateless and safe for concurrent use.
package priority

import (
	"github.com/AleutianAI/AleutianPlan/services/planning/confidence"
	"github.com/AleutianAI/AleutianPlan/services/planning/graph"
)

// DefaultRiskTolerance is the neutral setting of the size-vs-risk curve.
const DefaultRiskTolerance = 0.5

// DefaultCapacityPoints sizes the effort-fit curve when the caller gives
// no sprint capacity.
const DefaultCapacityPoints = 20

// Weights control the relative contribution of each ranking factor. They
// are used exactly as supplied; no renormalization is applied.
type Weights struct {
	BusinessValue float64 `json:"business_value"`
	Dependencies  float64 `json:"dependencies"`
	Risk          float64 `json:"risk"`
	Effort        float64 `json:"effort"`
}

// DefaultWeights returns the standard factor weighting.
func DefaultWeights() Weights {
	return Weights{
		BusinessValue: 0.40,
		Dependencies:  0.25,
		Risk:          0.20,
		Effort:        0.15,
	}
}

// Params are the prioritization inputs.
type Params struct {
	// Items is the backlog to rank.
	Items []graph.WorkItem `json:"items"`

	// BusinessGoals are keyword-matched against item text to boost
	// goal-aligned work. Optional.
	BusinessGoals []string `json:"business_goals,omitempty"`

	// RiskTolerance tunes the size-vs-risk curve in [0,1]; higher
	// tolerance penalizes large items less. Nil means 0.5.
	RiskTolerance *float64 `json:"risk_tolerance,omitempty"`

	// CapacityPoints sizes the effort-fit curve. Zero means the default.
	CapacityPoints int `json:"capacity_points,omitempty"`

	// Weights overrides the factor weighting. Nil means defaults.
	Weights *Weights `json:"weights,omitempty"`
}

// FactorScores are the per-item factor values behind a score.
type FactorScores struct {
	BusinessValue float64 `json:"business_value"`
	Dependencies  float64 `json:"dependencies"`
	Risk          float64 `json:"risk"`
	Effort        float64 `json:"effort"`
}

// RankedItem is one backlog item with its computed rank.
type RankedItem struct {
	// ID references the work item.
	ID string `json:"id"`

	// Score is the weighted rank in [0,100].
	Score int `json:"score"`

	// Priority is the tier assigned from Score.
	Priority graph.Priority `json:"priority"`

	// Factors are the raw factor values.
	Factors FactorScores `json:"factors"`

	// Reasoning cites the dominant factor(s) behind the score.
	Reasoning string `json:"reasoning"`
}

// Reasoning explains a full prioritization run.
type Reasoning struct {
	// Weightings echoes the weights actually used.
	Weightings Weights `json:"weightings"`

	// Summary describes the method, including whether an AI signal
	// contributed.
	Summary string `json:"summary"`
}

// Result is the prioritization output.
type Result struct {
	// PrioritizedItems is sorted by descending score, stable on input
	// order for ties.
	PrioritizedItems []RankedItem `json:"prioritized_items"`

	// Reasoning explains the run.
	Reasoning Reasoning `json:"reasoning"`

	// Confidence scores the run following the confidence contract.
	Confidence confidence.SectionConfidence `json:"confidence"`
}
