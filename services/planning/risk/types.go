// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package risk detects sprint composition risks and pairs each with a
// mitigation.
//
// # Description
//
// A rule-based detector: each rule fires independently and contributes to
// an additive 0-100 risk score. Rules cover capacity overcommitment, thin
// buffers, oversized items, hub-like dependency concentration, and unclear
// scope. Every detected risk carries at least one mitigation whose RiskID
// resolves within the same result.
//
// # Thread Safety
//
// The assessor is stateless and safe for concurrent use.
package risk

import "github.com/AleutianAI/AleutianPlan/services/planning/confidence"

// Category classifies a risk.
type Category string

const (
	CategoryScope      Category = "scope"
	CategoryDependency Category = "dependency"
	CategoryCapacity   Category = "capacity"
	CategoryTechnical  Category = "technical"
	CategoryExternal   Category = "external"
)

// Level grades probability and impact.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// weight maps a level onto the additive risk score.
func (l Level) weight() float64 {
	switch l {
	case LevelHigh:
		return 1.0
	case LevelMedium:
		return 0.6
	default:
		return 0.3
	}
}

// Strategy is a mitigation approach.
type Strategy string

const (
	StrategyAvoid    Strategy = "avoid"
	StrategyMitigate Strategy = "mitigate"
	StrategyTransfer Strategy = "transfer"
	StrategyAccept   Strategy = "accept"
)

// Risk is one detected sprint risk.
type Risk struct {
	// ID is a deterministic slug unique within the result.
	ID string `json:"id"`

	Category    Category `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Probability Level    `json:"probability"`
	Impact      Level    `json:"impact"`

	// RelatedItems lists the offending item IDs, when item-specific.
	RelatedItems []string `json:"related_items,omitempty"`
}

// Mitigation is a recommended response to a risk.
type Mitigation struct {
	// RiskID references the risk this mitigates; it always resolves to a
	// risk in the same result.
	RiskID string `json:"risk_id"`

	Strategy Strategy `json:"strategy"`
	Action   string   `json:"action"`
	Effort   Level    `json:"effort"`

	// Effectiveness is the expected risk reduction in [0,1].
	Effectiveness float64 `json:"effectiveness"`
}

// Result is the sprint risk assessment.
type Result struct {
	Risks       []Risk       `json:"risks"`
	Mitigations []Mitigation `json:"mitigations"`

	// OverallRisk grades the sprint as a whole.
	OverallRisk Level `json:"overall_risk"`

	// RiskScore is the additive 0-100 score behind OverallRisk.
	RiskScore int `json:"risk_score"`

	Confidence confidence.SectionConfidence `json:"confidence"`
}
