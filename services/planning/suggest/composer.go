// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package suggest

import (
	"context"
	"fmt"

	"github.com/AleutianAI/AleutianPlan/services/planning/ai"
	"github.com/AleutianAI/AleutianPlan/services/planning/capacity"
	"github.com/AleutianAI/AleutianPlan/services/planning/confidence"
	"github.com/AleutianAI/AleutianPlan/services/planning/graph"
	"github.com/AleutianAI/AleutianPlan/services/planning/priority"
	"github.com/AleutianAI/AleutianPlan/services/planning/risk"
)

// defaultItemPoints sizes unestimated items during the greedy walk.
const defaultItemPoints = 3

// Composer assembles sprint suggestions.
type Composer struct {
	analyzer    *capacity.Analyzer
	prioritizer *priority.Prioritizer
	risks       *risk.Assessor
	scorer      *confidence.Scorer
	assessor    ai.SelfAssessor
}

// NewComposer creates a composer. The assessor is optional; pass nil for
// the pure-heuristic path.
func NewComposer(assessor ai.SelfAssessor) *Composer {
	return &Composer{
		analyzer:    capacity.NewAnalyzer(),
		prioritizer: priority.NewPrioritizer(assessor),
		risks:       risk.NewAssessor(),
		scorer:      confidence.NewScorer(confidence.Config{}),
		assessor:    assessor,
	}
}

// Suggest proposes a sprint from the candidate backlog.
//
// # Description
//
// Runs capacity analysis, ranks the backlog, then walks the ranking
// greedily. Each candidate is admitted together with any of its not yet
// selected dependencies (transitively, within the candidate set) when the
// cumulative points stay at or under the recommended load. An item whose
// bundle does not fit is skipped, never force-fit, even when it is the
// only candidate. The selected set is then risk-assessed against the same
// capacity.
//
// # Inputs
//
//   - ctx: Context for optional AI self-assessment calls during ranking.
//   - params: Candidate backlog plus capacity configuration.
//
// # Outputs
//
//   - *Result: Selected items in admission order, exclusions with
//     reasons, the bounding capacity, and a risk assessment.
func (c *Composer) Suggest(ctx context.Context, params Params) *Result {
	sc := c.analyzer.Analyze(params.Capacity)

	ranked := c.prioritizer.Prioritize(ctx, priority.Params{
		Items:          params.Items,
		BusinessGoals:  params.BusinessGoals,
		RiskTolerance:  params.RiskTolerance,
		CapacityPoints: sc.RecommendedLoad,
	})

	byID := make(map[string]graph.WorkItem, len(params.Items))
	for _, it := range params.Items {
		byID[it.ID] = it
	}

	selected := []SelectedItem{}
	selectedSet := make(map[string]bool, len(params.Items))
	excluded := []ExcludedItem{}
	total := 0

	for _, r := range ranked.PrioritizedItems {
		if selectedSet[r.ID] {
			continue
		}

		bundle := dependencyBundle(r.ID, byID, selectedSet)
		bundlePoints := 0
		for _, id := range bundle {
			bundlePoints += itemPoints(byID[id])
		}

		if total+bundlePoints > sc.RecommendedLoad {
			excluded = append(excluded, ExcludedItem{
				ID:     r.ID,
				Reason: fmt.Sprintf("%d point(s) including dependencies would exceed the recommended load of %d", bundlePoints, sc.RecommendedLoad),
			})
			continue
		}

		// Dependencies enter first so admission order is executable.
		for _, id := range bundle {
			it := byID[id]
			reason := fmt.Sprintf("priority score %d", r.Score)
			if id != r.ID {
				reason = fmt.Sprintf("required dependency of %s", r.ID)
			}
			selected = append(selected, SelectedItem{
				ID:            id,
				Title:         it.Title,
				Points:        itemPoints(it),
				Score:         r.Score,
				IncludeReason: reason,
			})
			selectedSet[id] = true
		}
		total += bundlePoints
	}

	selectedItems := make([]graph.WorkItem, 0, len(selected))
	for _, s := range selected {
		selectedItems = append(selectedItems, byID[s.ID])
	}
	risks := c.risks.Assess(risk.Params{Items: selectedItems, Capacity: &sc})

	utilization := 0.0
	if sc.RecommendedLoad > 0 {
		utilization = float64(total) / float64(sc.RecommendedLoad)
	}

	res := &Result{
		Items:               selected,
		TotalPoints:         total,
		Excluded:            excluded,
		Capacity:            sc,
		CapacityUtilization: utilization,
		Risks:               risks,
		Reasoning:           c.reasoning(params, sc, len(selected), total),
	}
	res.Confidence = c.scoreConfidence(params, ranked, risks)
	return res
}

// AISuggestion composes a sprint and has the configured assessor review
// the composed plan as a whole, folding the review into the reasoning
// text. Returns nil when no assessor is configured; callers fall back to
// Suggest.
func (c *Composer) AISuggestion(ctx context.Context, params Params) *Result {
	if c.assessor == nil {
		return nil
	}

	res := c.Suggest(ctx, params)
	signal := ai.Signal(ctx, c.assessor, ai.AssessmentInput{
		Kind:  "sprint-plan",
		Title: fmt.Sprintf("sprint of %d item(s), %d point(s)", len(res.Items), res.TotalPoints),
		Body:  res.Reasoning,
		Goals: params.BusinessGoals,
	})
	if signal != nil {
		res.Reasoning = fmt.Sprintf("%s; plan-level AI review scored %.2f", res.Reasoning, *signal)
	}
	return res
}

// dependencyBundle returns the candidate plus its unselected transitive
// dependencies, dependencies first. Dependencies outside the candidate
// set are ignored; cycles terminate through the visited set.
func dependencyBundle(id string, byID map[string]graph.WorkItem, selectedSet map[string]bool) []string {
	var bundle []string
	visited := make(map[string]bool)

	var visit func(cur string)
	visit = func(cur string) {
		if visited[cur] || selectedSet[cur] {
			return
		}
		visited[cur] = true
		for _, dep := range byID[cur].Dependencies {
			if _, ok := byID[dep]; ok {
				visit(dep)
			}
		}
		bundle = append(bundle, cur)
	}
	visit(id)
	return bundle
}

func itemPoints(it graph.WorkItem) int {
	if it.Points > 0 {
		return it.Points
	}
	return defaultItemPoints
}

func (c *Composer) reasoning(params Params, sc capacity.SprintCapacity, count, total int) string {
	mode := "deterministic algorithmic fallback, no AI signal available"
	if c.assessor != nil {
		mode = "AI-assisted ranking with algorithmic selection"
	}
	return fmt.Sprintf("selected %d of %d candidate(s) totaling %d point(s) against a recommended load of %d (%s)",
		count, len(params.Items), total, sc.RecommendedLoad, mode)
}

func (c *Composer) scoreConfidence(params Params, ranked priority.Result, risks *risk.Result) confidence.SectionConfidence {
	completeness := 0.5
	if n := len(params.Items); n > 0 {
		sized := 0
		for _, it := range params.Items {
			if it.Points > 0 {
				sized++
			}
		}
		completeness = 0.4 + 0.4*float64(sized)/float64(n)
	}
	if len(params.Capacity.HistoricalSprints) >= 3 {
		completeness += 0.2
	}
	if completeness > 1 {
		completeness = 1
	}

	pattern := 0.8
	if risks.OverallRisk == risk.LevelHigh {
		pattern = 0.6
	}

	selfAssessment := 0.5
	if c.assessor != nil {
		selfAssessment = float64(ranked.Confidence.Score) / 100.0
	}

	return c.scorer.CalculateSectionConfidence(confidence.SectionParams{
		SectionID: "sprint-suggestion",
		Factors: confidence.Factors{
			InputCompleteness: completeness,
			PatternMatch:      pattern,
			AISelfAssessment:  selfAssessment,
		},
		Reasoning: fmt.Sprintf("greedy capacity-bounded selection over %d candidate(s); risk grade %s", len(params.Items), risks.OverallRisk),
	})
}
