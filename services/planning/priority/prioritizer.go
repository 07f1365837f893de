// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package priority

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/AleutianAI/AleutianPlan/services/planning/ai"
	"github.com/AleutianAI/AleutianPlan/services/planning/confidence"
	"github.com/AleutianAI/AleutianPlan/services/planning/graph"
	"github.com/AleutianAI/AleutianPlan/services/planning/keywords"
)

// defaultItemPoints stands in for unestimated items in size-based factors.
const defaultItemPoints = 3

// Prioritizer ranks backlog items.
type Prioritizer struct {
	scorer   *confidence.Scorer
	assessor ai.SelfAssessor
}

// NewPrioritizer creates a prioritizer. The assessor is optional; pass nil
// for the pure-heuristic path.
func NewPrioritizer(assessor ai.SelfAssessor) *Prioritizer {
	return &Prioritizer{
		scorer:   confidence.NewScorer(confidence.Config{}),
		assessor: assessor,
	}
}

// Prioritize ranks the backlog.
//
// # Description
//
// Builds the dependency graph over the backlog, computes the four ranking
// factors per item, and sorts by weighted score, descending, with ties
// kept in input order. Circular dependencies never fail the run: cycle
// members score a neutral dependency factor. An empty backlog yields an
// empty ranking with full confidence, since there is no input to question.
//
// # Inputs
//
//   - ctx: Context for the optional AI self-assessment calls.
//   - params: Backlog plus tuning knobs.
//
// # Outputs
//
//   - Result: Complete ranking; never an error for degenerate input.
func (p *Prioritizer) Prioritize(ctx context.Context, params Params) Result {
	weights := DefaultWeights()
	if params.Weights != nil {
		weights = *params.Weights
	}

	if len(params.Items) == 0 {
		return Result{
			PrioritizedItems: []RankedItem{},
			Reasoning: Reasoning{
				Weightings: weights,
				Summary:    "empty backlog; nothing to rank (algorithmic path)",
			},
			Confidence: p.scorer.CalculateSectionConfidence(confidence.SectionParams{
				SectionID: "backlog-priority",
				Factors:   confidence.Factors{InputCompleteness: 1, AISelfAssessment: 1, PatternMatch: 1},
				Reasoning: "empty backlog scores full confidence; no input to question",
			}),
		}
	}

	tolerance := DefaultRiskTolerance
	if params.RiskTolerance != nil {
		tolerance = math.Min(1, math.Max(0, *params.RiskTolerance))
	}
	capacityPts := params.CapacityPoints
	if capacityPts <= 0 {
		capacityPts = DefaultCapacityPoints
	}

	g := graph.New()
	g.AddTasks(params.Items)
	inCycle := cycleMembers(g)
	unresolved := predecessorCounts(g)

	goalKeywords := extractGoalKeywords(params.BusinessGoals)

	aiUsed := false
	ranked := make([]RankedItem, 0, len(params.Items))
	for _, item := range params.Items {
		factors, usedAI := p.scoreItem(ctx, item, scoringInput{
			goalKeywords: goalKeywords,
			goals:        params.BusinessGoals,
			tolerance:    tolerance,
			capacityPts:  capacityPts,
			unresolved:   unresolved[item.ID],
			inCycle:      inCycle[item.ID],
		})
		aiUsed = aiUsed || usedAI

		raw := weights.BusinessValue*factors.BusinessValue +
			weights.Dependencies*factors.Dependencies +
			weights.Risk*factors.Risk +
			weights.Effort*factors.Effort
		score := clampScore(int(math.Round(100 * raw)))

		ranked = append(ranked, RankedItem{
			ID:        item.ID,
			Score:     score,
			Priority:  tierToPriority(score),
			Factors:   factors,
			Reasoning: dominantFactors(weights, factors),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	summary := fmt.Sprintf("ranked %d items by weighted factors", len(ranked))
	if aiUsed {
		summary += "; AI self-assessment blended into business value"
	} else {
		summary += "; deterministic algorithmic fallback, no AI signal available"
	}

	return Result{
		PrioritizedItems: ranked,
		Reasoning:        Reasoning{Weightings: weights, Summary: summary},
		Confidence:       p.runConfidence(params, aiUsed, len(inCycle)),
	}
}

type scoringInput struct {
	goalKeywords map[string]struct{}
	goals        []string
	tolerance    float64
	capacityPts  int
	unresolved   int
	inCycle      bool
}

// scoreItem computes the four ranking factors for one item.
func (p *Prioritizer) scoreItem(ctx context.Context, item graph.WorkItem, in scoringInput) (FactorScores, bool) {
	points := item.Points
	if points <= 0 {
		points = defaultItemPoints
	}

	business, usedAI := p.businessValue(ctx, item, in.goalKeywords, in.goals)

	deps := 0.5 // neutral for cycle members
	if !in.inCycle {
		deps = 1.0 / float64(1+in.unresolved)
	}

	// Larger items read as riskier; tolerance flattens the curve.
	sizeNorm := math.Min(1, float64(points)/13.0)
	risk := clamp01(1 - sizeNorm*(1.5-in.tolerance))

	effort := clamp01(1 - float64(points)/float64(in.capacityPts))

	return FactorScores{
		BusinessValue: business,
		Dependencies:  deps,
		Risk:          risk,
		Effort:        effort,
	}, usedAI
}

// businessValue derives the value factor from the priority tier, goal
// keyword matches, and the optional AI signal.
func (p *Prioritizer) businessValue(ctx context.Context, item graph.WorkItem, goalKeywords map[string]struct{}, goals []string) (float64, bool) {
	base := 0.5
	switch item.Priority {
	case graph.PriorityCritical:
		base = 1.0
	case graph.PriorityHigh:
		base = 0.8
	case graph.PriorityMedium:
		base = 0.5
	case graph.PriorityLow:
		base = 0.3
	}

	if len(goalKeywords) > 0 {
		matches := 0
		for _, kw := range keywords.Extract(item.Title + " " + item.Description) {
			if _, ok := goalKeywords[kw]; ok {
				matches++
			}
		}
		base += 0.1 * math.Min(2, float64(matches))
	}
	base = clamp01(base)

	signal := ai.Signal(ctx, p.assessor, ai.AssessmentInput{
		Kind:  "backlog-item",
		Title: item.Title,
		Body:  item.Description,
		Goals: goals,
	})
	if signal == nil {
		return base, false
	}
	return clamp01((base + *signal) / 2), true
}

// runConfidence scores the whole prioritization run.
func (p *Prioritizer) runConfidence(params Params, aiUsed bool, cycleCount int) confidence.SectionConfidence {
	described := 0
	estimated := 0
	for _, item := range params.Items {
		if len(item.Description) >= 30 {
			described++
		}
		if item.Points > 0 {
			estimated++
		}
	}
	n := float64(len(params.Items))
	completeness := 0.5*float64(described)/n + 0.5*float64(estimated)/n

	selfAssessment := 0.5
	mode := "deterministic algorithmic fallback"
	if aiUsed {
		selfAssessment = 0.7
		mode = "heuristics blended with AI self-assessment"
	}

	pattern := 1.0
	if cycleCount > 0 {
		pattern = 0.6 // cyclic backlogs rank less cleanly
	}

	return p.scorer.CalculateSectionConfidence(confidence.SectionParams{
		SectionID: "backlog-priority",
		Factors: confidence.Factors{
			InputCompleteness: completeness,
			AISelfAssessment:  selfAssessment,
			PatternMatch:      pattern,
		},
		Reasoning: fmt.Sprintf("ranking produced by %s over %d items", mode, len(params.Items)),
	})
}

// cycleMembers returns the set of node IDs sitting on any cycle.
func cycleMembers(g *graph.TaskGraph) map[string]bool {
	members := make(map[string]bool)
	for _, cycle := range g.DetectCycles() {
		for _, id := range cycle {
			members[id] = true
		}
	}
	return members
}

// predecessorCounts counts each item's in-backlog predecessors.
func predecessorCounts(g *graph.TaskGraph) map[string]int {
	counts := make(map[string]int, g.Len())
	present := make(map[string]bool, g.Len())
	for _, item := range g.Items() {
		present[item.ID] = true
	}
	for _, e := range g.Edges() {
		if present[e.From] && present[e.To] {
			counts[e.To]++
		}
	}
	return counts
}

// extractGoalKeywords flattens business goals into a keyword set.
func extractGoalKeywords(goals []string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, goal := range goals {
		for _, kw := range keywords.Extract(goal) {
			set[kw] = struct{}{}
		}
	}
	return set
}

// dominantFactors names the factor(s) contributing the most weight.
func dominantFactors(w Weights, f FactorScores) string {
	type contrib struct {
		name  string
		value float64
	}
	contribs := []contrib{
		{"business value", w.BusinessValue * f.BusinessValue},
		{"dependency position", w.Dependencies * f.Dependencies},
		{"risk profile", w.Risk * f.Risk},
		{"effort fit", w.Effort * f.Effort},
	}
	sort.SliceStable(contribs, func(i, j int) bool { return contribs[i].value > contribs[j].value })

	names := []string{contribs[0].name}
	if contribs[1].value > 0 && contribs[0].value-contribs[1].value < 0.05 {
		names = append(names, contribs[1].name)
	}
	return "driven by " + strings.Join(names, " and ")
}

func tierToPriority(score int) graph.Priority {
	switch {
	case score >= 70:
		return graph.PriorityHigh
	case score >= 50:
		return graph.PriorityMedium
	default:
		return graph.PriorityLow
	}
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
