// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package risk

import (
	"fmt"
	"math"

	"github.com/AleutianAI/AleutianPlan/services/planning/capacity"
	"github.com/AleutianAI/AleutianPlan/services/planning/confidence"
	"github.com/AleutianAI/AleutianPlan/services/planning/graph"
)

const (
	// defaultItemPoints sizes unestimated items for capacity math.
	defaultItemPoints = 3

	// oversizedItemPoints flags single items too large for one sprint.
	oversizedItemPoints = 13

	// hubDependentThreshold is the minimum direct dependent count before
	// an item is treated as a dependency hub.
	hubDependentThreshold = 3

	// unclearDescriptionChars is the description length below which an
	// item counts as under-specified.
	unclearDescriptionChars = 30

	// unclearScopeShare is the fraction of under-specified items that
	// triggers the scope risk.
	unclearScopeShare = 0.4

	// riskScoreScale converts one probability*impact product into score
	// points. Two high/high risks saturate the scale.
	riskScoreScale = 40.0

	highRiskScore   = 60
	mediumRiskScore = 30
)

// Params are the inputs for a sprint risk assessment.
type Params struct {
	// Items is the proposed sprint content.
	Items []graph.WorkItem `json:"items"`

	// Capacity is the sprint capacity the items are judged against. Nil
	// skips the capacity rules.
	Capacity *capacity.SprintCapacity `json:"capacity,omitempty"`
}

// Assessor runs the rule table over a proposed sprint.
type Assessor struct{}

// NewAssessor creates a sprint risk assessor.
func NewAssessor() *Assessor {
	return &Assessor{}
}

// Assess evaluates every rule against the proposed sprint and returns the
// detected risks, one mitigation per risk, and an aggregate score.
//
// # Description
//
// Rules fire independently. The aggregate score is the sum of each risk's
// probability weight times impact weight, scaled to 0-100 and clamped. An
// empty sprint yields no risks and an overall low grade.
//
// # Inputs
//
//   - params: sprint items and the capacity they were planned against.
//
// # Outputs
//
//   - *Result: risks, resolvable mitigations, score, and confidence.
func (a *Assessor) Assess(params Params) *Result {
	res := &Result{
		Risks:       []Risk{},
		Mitigations: []Mitigation{},
	}

	committed := committedPoints(params.Items)

	a.checkOvercommitment(res, committed, params.Capacity)
	a.checkLowBuffer(res, committed, params.Capacity)
	a.checkOversizedItems(res, params.Items)
	a.checkDependencyConcentration(res, params.Items)
	a.checkUnclearScope(res, params.Items)

	res.RiskScore = scoreRisks(res.Risks)
	res.OverallRisk = overallLevel(res.RiskScore)
	res.Confidence = a.scoreConfidence(params, res)
	return res
}

func committedPoints(items []graph.WorkItem) int {
	total := 0
	for _, it := range items {
		if it.Points > 0 {
			total += it.Points
		} else {
			total += defaultItemPoints
		}
	}
	return total
}

// checkOvercommitment fires when the committed points exceed the
// recommended load. Probability scales with the overage.
func (a *Assessor) checkOvercommitment(res *Result, committed int, sc *capacity.SprintCapacity) {
	if sc == nil || sc.RecommendedLoad <= 0 || committed <= sc.RecommendedLoad {
		return
	}

	overage := float64(committed)/float64(sc.RecommendedLoad) - 1.0
	probability := LevelMedium
	if overage >= 0.25 {
		probability = LevelHigh
	}

	r := Risk{
		ID:          "overcommitment",
		Category:    CategoryCapacity,
		Title:       "Sprint overcommitment",
		Description: fmt.Sprintf("Committed %d points against a recommended load of %d (%.0f%% over).", committed, sc.RecommendedLoad, overage*100),
		Probability: probability,
		Impact:      LevelHigh,
	}
	res.Risks = append(res.Risks, r)
	res.Mitigations = append(res.Mitigations, Mitigation{
		RiskID:        r.ID,
		Strategy:      StrategyMitigate,
		Action:        fmt.Sprintf("Defer %d points of lower-priority work to the next sprint.", committed-sc.RecommendedLoad),
		Effort:        LevelLow,
		Effectiveness: 0.8,
	})
}

// checkLowBuffer fires when the sprint fits inside the recommended load
// but leaves almost no slack. At or past full utilization the
// overcommitment rule owns the finding instead.
func (a *Assessor) checkLowBuffer(res *Result, committed int, sc *capacity.SprintCapacity) {
	if sc == nil || sc.RecommendedLoad <= 0 {
		return
	}
	utilization := float64(committed) / float64(sc.RecommendedLoad)
	if utilization <= 0.9 || utilization >= 1.0 {
		return
	}

	r := Risk{
		ID:          "low-buffer",
		Category:    CategoryCapacity,
		Title:       "Thin capacity buffer",
		Description: fmt.Sprintf("Sprint is at %.0f%% of the recommended load, leaving little room for unplanned work.", utilization*100),
		Probability: LevelMedium,
		Impact:      LevelMedium,
	}
	res.Risks = append(res.Risks, r)
	res.Mitigations = append(res.Mitigations, Mitigation{
		RiskID:        r.ID,
		Strategy:      StrategyAccept,
		Action:        "Agree up front which item is dropped first if interrupts land.",
		Effort:        LevelLow,
		Effectiveness: 0.5,
	})
}

// checkOversizedItems fires when any single item is at or above the
// oversized threshold.
func (a *Assessor) checkOversizedItems(res *Result, items []graph.WorkItem) {
	var oversized []string
	for _, it := range items {
		if it.Points >= oversizedItemPoints {
			oversized = append(oversized, it.ID)
		}
	}
	if len(oversized) == 0 {
		return
	}

	r := Risk{
		ID:           "high-complexity",
		Category:     CategoryTechnical,
		Title:        "Oversized items",
		Description:  fmt.Sprintf("%d item(s) at %d+ points; estimates at this size are unreliable.", len(oversized), oversizedItemPoints),
		Probability:  LevelMedium,
		Impact:       LevelHigh,
		RelatedItems: oversized,
	}
	res.Risks = append(res.Risks, r)
	res.Mitigations = append(res.Mitigations, Mitigation{
		RiskID:        r.ID,
		Strategy:      StrategyMitigate,
		Action:        "Split each oversized item into independently deliverable slices before the sprint starts.",
		Effort:        LevelMedium,
		Effectiveness: 0.7,
	})
}

// checkDependencyConcentration fires when one item is a hub: at least
// hubDependentThreshold direct dependents covering at least half of the
// remaining items.
func (a *Assessor) checkDependencyConcentration(res *Result, items []graph.WorkItem) {
	if len(items) < 2 {
		return
	}

	inSprint := make(map[string]bool, len(items))
	for _, it := range items {
		inSprint[it.ID] = true
	}

	dependents := make(map[string]int, len(items))
	for _, it := range items {
		seen := make(map[string]bool, len(it.Dependencies))
		for _, dep := range it.Dependencies {
			if !inSprint[dep] || seen[dep] {
				continue
			}
			seen[dep] = true
			dependents[dep]++
		}
	}

	var hubs []string
	half := float64(len(items)-1) / 2.0
	for _, it := range items {
		n := dependents[it.ID]
		if n >= hubDependentThreshold && float64(n) >= half {
			hubs = append(hubs, it.ID)
		}
	}
	if len(hubs) == 0 {
		return
	}

	r := Risk{
		ID:           "dependency-concentration",
		Category:     CategoryDependency,
		Title:        "Dependency concentration",
		Description:  fmt.Sprintf("%d item(s) block at least half of the sprint; a slip there cascades.", len(hubs)),
		Probability:  LevelMedium,
		Impact:       LevelHigh,
		RelatedItems: hubs,
	}
	res.Risks = append(res.Risks, r)
	res.Mitigations = append(res.Mitigations, Mitigation{
		RiskID:        r.ID,
		Strategy:      StrategyMitigate,
		Action:        "Start the blocking items first and track them daily until delivered.",
		Effort:        LevelLow,
		Effectiveness: 0.6,
	})
}

// checkUnclearScope fires when too many items carry descriptions too
// short to estimate against.
func (a *Assessor) checkUnclearScope(res *Result, items []graph.WorkItem) {
	if len(items) == 0 {
		return
	}

	var unclear []string
	for _, it := range items {
		if len(it.Description) < unclearDescriptionChars {
			unclear = append(unclear, it.ID)
		}
	}
	if float64(len(unclear))/float64(len(items)) <= unclearScopeShare {
		return
	}

	r := Risk{
		ID:           "unclear-scope",
		Category:     CategoryScope,
		Title:        "Unclear scope",
		Description:  fmt.Sprintf("%d of %d items lack a usable description; estimates and plans built on them are guesses.", len(unclear), len(items)),
		Probability:  LevelMedium,
		Impact:       LevelMedium,
		RelatedItems: unclear,
	}
	res.Risks = append(res.Risks, r)
	res.Mitigations = append(res.Mitigations, Mitigation{
		RiskID:        r.ID,
		Strategy:      StrategyAvoid,
		Action:        "Hold a refinement session and rewrite each flagged item with acceptance criteria.",
		Effort:        LevelMedium,
		Effectiveness: 0.8,
	})
}

func scoreRisks(risks []Risk) int {
	var sum float64
	for _, r := range risks {
		sum += r.Probability.weight() * r.Impact.weight() * riskScoreScale
	}
	score := int(math.Round(sum))
	if score > 100 {
		score = 100
	}
	return score
}

func overallLevel(score int) Level {
	switch {
	case score >= highRiskScore:
		return LevelHigh
	case score >= mediumRiskScore:
		return LevelMedium
	default:
		return LevelLow
	}
}

func (a *Assessor) scoreConfidence(params Params, res *Result) confidence.SectionConfidence {
	described := 0
	sized := 0
	for _, it := range params.Items {
		if len(it.Description) >= unclearDescriptionChars {
			described++
		}
		if it.Points > 0 {
			sized++
		}
	}

	completeness := 0.5
	if n := len(params.Items); n > 0 {
		completeness = 0.3 + 0.35*float64(described)/float64(n) + 0.15*float64(sized)/float64(n)
	}
	if params.Capacity != nil {
		completeness += 0.2
	}
	if completeness > 1 {
		completeness = 1
	}

	pattern := 0.8
	if len(res.Risks) >= 3 {
		pattern = 0.6
	}

	scorer := confidence.NewScorer(confidence.Config{})
	return scorer.CalculateSectionConfidence(confidence.SectionParams{
		SectionID: "risk",
		Factors: confidence.Factors{
			InputCompleteness: completeness,
			PatternMatch:      pattern,
			AISelfAssessment:  0.5,
		},
		Reasoning: fmt.Sprintf("algorithmic rule-based assessment over %d item(s), %d rule(s) fired", len(params.Items), len(res.Risks)),
	})
}
