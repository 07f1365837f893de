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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianPlan/services/planning/ai"
	"github.com/AleutianAI/AleutianPlan/services/planning/capacity"
	"github.com/AleutianAI/AleutianPlan/services/planning/graph"
)

// fixedCapacity yields total 20 and recommended load 16 with the default
// buffer.
var fixedCapacity = capacity.Params{Velocity: "20", SprintDurationDays: 14}

func TestSuggest_GreedyFill(t *testing.T) {
	res := NewComposer(nil).Suggest(context.Background(), Params{
		Items: []graph.WorkItem{
			{ID: "a", Title: "A", Points: 5, Priority: graph.PriorityCritical},
			{ID: "b", Title: "B", Points: 5, Priority: graph.PriorityHigh},
			{ID: "c", Title: "C", Points: 5, Priority: graph.PriorityMedium},
			{ID: "d", Title: "D", Points: 5, Priority: graph.PriorityLow},
		},
		Capacity: fixedCapacity,
	})

	require.Len(t, res.Items, 3)
	assert.Equal(t, "a", res.Items[0].ID)
	assert.Equal(t, "b", res.Items[1].ID)
	assert.Equal(t, "c", res.Items[2].ID)
	assert.Equal(t, 15, res.TotalPoints)
	assert.Equal(t, 16, res.Capacity.RecommendedLoad)

	require.Len(t, res.Excluded, 1)
	assert.Equal(t, "d", res.Excluded[0].ID)
	assert.Contains(t, res.Excluded[0].Reason, "recommended load")
}

func TestSuggest_DependencyClosure(t *testing.T) {
	res := NewComposer(nil).Suggest(context.Background(), Params{
		Items: []graph.WorkItem{
			{ID: "top", Title: "Top", Points: 3, Priority: graph.PriorityCritical, Dependencies: []string{"base"}},
			{ID: "base", Title: "Base", Points: 3, Priority: graph.PriorityLow},
		},
		Capacity: fixedCapacity,
	})

	// The dependency enters ahead of the item that pulled it in.
	require.Len(t, res.Items, 2)
	assert.Equal(t, "base", res.Items[0].ID)
	assert.Equal(t, "top", res.Items[1].ID)
	assert.Equal(t, "required dependency of top", res.Items[0].IncludeReason)
	assert.Contains(t, res.Items[1].IncludeReason, "priority score")
	assert.Equal(t, 6, res.TotalPoints)
	assert.Empty(t, res.Excluded)
}

func TestSuggest_OversizedNeverForceFit(t *testing.T) {
	res := NewComposer(nil).Suggest(context.Background(), Params{
		Items: []graph.WorkItem{
			{ID: "epic", Title: "Epic", Points: 50, Priority: graph.PriorityCritical},
		},
		Capacity: fixedCapacity,
	})

	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.TotalPoints)
	require.Len(t, res.Excluded, 1)
	assert.Equal(t, "epic", res.Excluded[0].ID)
}

func TestSuggest_BundleTooLargeSkipsButWalkContinues(t *testing.T) {
	// The top-ranked item drags a heavy dependency; the walk skips the
	// bundle and still admits smaller candidates after it.
	res := NewComposer(nil).Suggest(context.Background(), Params{
		Items: []graph.WorkItem{
			{ID: "want", Title: "Want", Points: 5, Priority: graph.PriorityCritical, Dependencies: []string{"heavy"}},
			{ID: "heavy", Title: "Heavy", Points: 13, Priority: graph.PriorityLow},
			{ID: "small", Title: "Small", Points: 2, Priority: graph.PriorityMedium},
		},
		Capacity: fixedCapacity,
	})

	ids := make([]string, 0, len(res.Items))
	for _, it := range res.Items {
		ids = append(ids, it.ID)
	}
	assert.NotContains(t, ids, "want")
	assert.Contains(t, ids, "small")
}

func TestSuggest_EmptyBacklog(t *testing.T) {
	res := NewComposer(nil).Suggest(context.Background(), Params{Capacity: fixedCapacity})

	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.TotalPoints)
	require.NotNil(t, res.Risks)
	assert.Empty(t, res.Risks.Risks)
}

func TestSuggest_RisksCoverSelection(t *testing.T) {
	res := NewComposer(nil).Suggest(context.Background(), Params{
		Items: []graph.WorkItem{
			{ID: "epic", Title: "Epic", Points: 13, Priority: graph.PriorityHigh},
			{ID: "small", Title: "Small", Points: 2, Priority: graph.PriorityLow,
				Description: strings.Repeat("well specified behavior ", 3)},
		},
		Capacity: fixedCapacity,
	})

	require.NotNil(t, res.Risks)
	found := false
	for _, r := range res.Risks.Risks {
		if r.ID == "high-complexity" {
			found = true
			assert.Contains(t, r.RelatedItems, "epic")
		}
	}
	assert.True(t, found, "oversized selected item should surface as a risk")
}

func TestSuggest_FallbackWordingWithoutAI(t *testing.T) {
	res := NewComposer(nil).Suggest(context.Background(), Params{
		Items:    []graph.WorkItem{{ID: "a", Title: "A", Points: 3}},
		Capacity: fixedCapacity,
	})

	assert.Contains(t, res.Reasoning, "fallback")
	assert.Contains(t, res.Reasoning, "recommended load")
}

func TestSuggest_CapacityUtilization(t *testing.T) {
	res := NewComposer(nil).Suggest(context.Background(), Params{
		Items: []graph.WorkItem{
			{ID: "a", Title: "A", Points: 5, Priority: graph.PriorityCritical},
			{ID: "b", Title: "B", Points: 5, Priority: graph.PriorityHigh},
			{ID: "c", Title: "C", Points: 5, Priority: graph.PriorityMedium},
		},
		Capacity: fixedCapacity,
	})

	// 15 selected points against a recommended load of 16.
	assert.InDelta(t, 15.0/16.0, res.CapacityUtilization, 1e-9)

	empty := NewComposer(nil).Suggest(context.Background(), Params{Capacity: fixedCapacity})
	assert.Zero(t, empty.CapacityUtilization)
}

type planAssessor struct{ score float64 }

func (p planAssessor) SelfAssessment(context.Context, ai.AssessmentInput) (*float64, error) {
	return &p.score, nil
}

func TestAISuggestion_NilWithoutAssessor(t *testing.T) {
	res := NewComposer(nil).AISuggestion(context.Background(), Params{
		Items:    []graph.WorkItem{{ID: "a", Title: "A", Points: 3}},
		Capacity: fixedCapacity,
	})

	assert.Nil(t, res)
}

func TestAISuggestion_ReviewFoldedIntoReasoning(t *testing.T) {
	res := NewComposer(planAssessor{score: 0.9}).AISuggestion(context.Background(), Params{
		Items:    []graph.WorkItem{{ID: "a", Title: "A", Points: 3}},
		Capacity: fixedCapacity,
	})

	require.NotNil(t, res)
	require.Len(t, res.Items, 1)
	assert.Contains(t, res.Reasoning, "AI review scored 0.90")
}

func TestSuggest_Deterministic(t *testing.T) {
	params := Params{
		Items: []graph.WorkItem{
			{ID: "a", Title: "A", Points: 5, Priority: graph.PriorityCritical},
			{ID: "b", Title: "B", Points: 5, Priority: graph.PriorityHigh},
			{ID: "c", Title: "C", Points: 8, Priority: graph.PriorityMedium},
		},
		Capacity: fixedCapacity,
	}

	first := NewComposer(nil).Suggest(context.Background(), params)
	second := NewComposer(nil).Suggest(context.Background(), params)
	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, first.Excluded, second.Excluded)
	assert.Equal(t, first.TotalPoints, second.TotalPoints)
}
