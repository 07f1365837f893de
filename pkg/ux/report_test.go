// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"strings"
	"testing"

	"github.com/AleutianAI/AleutianPlan/services/planning"
	"github.com/AleutianAI/AleutianPlan/services/planning/capacity"
	"github.com/AleutianAI/AleutianPlan/services/planning/confidence"
	"github.com/AleutianAI/AleutianPlan/services/planning/estimation"
	"github.com/AleutianAI/AleutianPlan/services/planning/graph"
	"github.com/AleutianAI/AleutianPlan/services/planning/priority"
	"github.com/AleutianAI/AleutianPlan/services/planning/risk"
	"github.com/AleutianAI/AleutianPlan/services/planning/roadmap"
	"github.com/AleutianAI/AleutianPlan/services/planning/suggest"
)

func TestRenderDependencyAnalysis(t *testing.T) {
	out := RenderDependencyAnalysis(planning.DependencyAnalysis{
		Analysis: graph.AnalysisResult{
			ExecutionOrder: []string{"t1", "t2"},
			CriticalPath:   []string{"t1", "t2"},
			ParallelGroups: [][]string{{"t1"}, {"t2"}},
			Cycles:         [][]string{{"a", "b"}},
		},
		ImplicitDependencies: []graph.Edge{
			{From: "docs", To: "deploy", Confidence: 0.9, Reason: "deployment follows documentation", Implicit: true},
		},
	})

	for _, want := range []string{"t1 → t2", "circular", "a → b", "docs", "deploy", "90%"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPriorities(t *testing.T) {
	out := RenderPriorities(priority.Result{
		PrioritizedItems: []priority.RankedItem{
			{ID: "auth", Score: 88, Priority: graph.PriorityCritical, Reasoning: "driven by business value"},
			{ID: "docs", Score: 45, Priority: graph.PriorityLow, Reasoning: "driven by effort fit"},
		},
		Confidence: confidence.SectionConfidence{Score: 72, Tier: confidence.TierHigh},
	})

	for _, want := range []string{"auth", "88", "docs", "45", "72"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCapacity(t *testing.T) {
	out := RenderCapacity(capacity.SprintCapacity{
		TotalPoints:     20,
		RecommendedLoad: 16,
		Velocity:        20,
		Buffer:          capacity.Buffer{Percentage: 0.2, Reasoning: "standard 20% buffer"},
		TeamAvailability: capacity.TeamAvailability{
			Members: []capacity.MemberAvailability{
				{ID: "m1", Name: "Jess", Availability: 0.8, Contribution: 0.8},
			},
		},
	})

	for _, want := range []string{"16", "20", "Jess", "standard 20% buffer"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEstimate(t *testing.T) {
	factor := 2.0
	out := RenderEstimate(estimation.Estimate{
		Points:            10,
		Range:             estimation.Range{Low: 7, High: 14},
		Confidence:        75,
		Calibrated:        true,
		CalibrationFactor: &factor,
		Reasoning:         "calibration factor 2.00 applied",
	})

	for _, want := range []string{"10", "7-14", "75", "2.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRisks(t *testing.T) {
	out := RenderRisks(risk.Result{
		Risks: []risk.Risk{
			{ID: "overcommitment", Category: risk.CategoryCapacity, Title: "Sprint overcommitment",
				Description: "30 points against 20", Probability: risk.LevelHigh, Impact: risk.LevelHigh},
		},
		Mitigations: []risk.Mitigation{
			{RiskID: "overcommitment", Strategy: risk.StrategyMitigate, Action: "Defer 10 points", Effort: risk.LevelLow},
		},
		OverallRisk: risk.LevelHigh,
		RiskScore:   70,
	})

	for _, want := range []string{"HIGH", "70", "Sprint overcommitment", "Defer 10 points"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRisks_Empty(t *testing.T) {
	out := RenderRisks(risk.Result{OverallRisk: risk.LevelLow})
	if !strings.Contains(out, "no risks detected") {
		t.Errorf("empty assessment should say so:\n%s", out)
	}
}

func TestRenderSuggestion(t *testing.T) {
	out := RenderSuggestion(suggest.Result{
		Items: []suggest.SelectedItem{
			{ID: "auth", Title: "Auth", Points: 5, Score: 88, IncludeReason: "priority score 88"},
		},
		Excluded: []suggest.ExcludedItem{
			{ID: "epic", Reason: "50 point(s) including dependencies would exceed the recommended load of 16"},
		},
		TotalPoints: 5,
		Capacity:    capacity.SprintCapacity{RecommendedLoad: 16},
		Risks:       &risk.Result{OverallRisk: risk.LevelLow},
		Reasoning:   "selected 1 of 2 candidate(s)",
	})

	for _, want := range []string{"auth", "epic", "5 point(s) of 16", "selected 1 of 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRoadmap(t *testing.T) {
	out := RenderRoadmap(roadmap.Roadmap{
		Phases: []roadmap.Phase{
			{Number: 1, Wave: 1, Points: 5, Items: []roadmap.PhaseItem{{ID: "t1", Title: "Base", Points: 5}}},
			{Number: 2, Wave: 2, Points: 5, Items: []roadmap.PhaseItem{{ID: "t2", Title: "Next", Points: 5}}},
		},
		EstimatedSprints: 2,
		EstimatedDays:    28,
		CriticalPath:     []string{"t1", "t2"},
	})

	for _, want := range []string{"Phase 1", "Phase 2", "28 day(s)", "t1 → t2"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
