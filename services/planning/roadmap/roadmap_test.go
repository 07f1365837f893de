// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package roadmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianPlan/services/planning/capacity"
	"github.com/AleutianAI/AleutianPlan/services/planning/graph"
)

// fixedCapacity yields a recommended load of 16 points per phase.
var fixedCapacity = capacity.Params{Velocity: "20", SprintDurationDays: 14}

func TestGenerate_EmptyInput(t *testing.T) {
	rm := NewGenerator().Generate(Params{Capacity: fixedCapacity})

	require.NotNil(t, rm)
	assert.Empty(t, rm.Phases)
	assert.Equal(t, 0, rm.EstimatedSprints)
	assert.Equal(t, 0, rm.EstimatedDays)
}

func TestGenerate_WavesBecomePhases(t *testing.T) {
	rm := NewGenerator().Generate(Params{
		Items: []graph.WorkItem{
			{ID: "t1", Title: "Foundation", Points: 5},
			{ID: "t2", Title: "Build", Points: 5, Dependencies: []string{"t1"}},
			{ID: "t3", Title: "Ship", Points: 5, Dependencies: []string{"t2"}},
		},
		Capacity: fixedCapacity,
	})

	require.Len(t, rm.Phases, 3)
	assert.Equal(t, "t1", rm.Phases[0].Items[0].ID)
	assert.Equal(t, "t2", rm.Phases[1].Items[0].ID)
	assert.Equal(t, "t3", rm.Phases[2].Items[0].ID)
	assert.Equal(t, []string{"t1", "t2", "t3"}, rm.CriticalPath)
	assert.Equal(t, 3, rm.EstimatedSprints)
	assert.Equal(t, 42, rm.EstimatedDays)
}

func TestGenerate_WaveSplitsWhenOverLoad(t *testing.T) {
	// One wave of four 5-point items against a 16-point load splits into
	// two phases from the same wave.
	rm := NewGenerator().Generate(Params{
		Items: []graph.WorkItem{
			{ID: "a", Title: "A", Points: 5},
			{ID: "b", Title: "B", Points: 5},
			{ID: "c", Title: "C", Points: 5},
			{ID: "d", Title: "D", Points: 5},
		},
		Capacity: fixedCapacity,
	})

	require.Len(t, rm.Phases, 2)
	assert.Equal(t, 15, rm.Phases[0].Points)
	assert.Equal(t, 5, rm.Phases[1].Points)
	assert.Equal(t, 1, rm.Phases[0].Wave)
	assert.Equal(t, 1, rm.Phases[1].Wave)
	assert.Equal(t, 1, rm.Phases[0].Number)
	assert.Equal(t, 2, rm.Phases[1].Number)
}

func TestGenerate_OversizedItemGetsOwnPhase(t *testing.T) {
	rm := NewGenerator().Generate(Params{
		Items: []graph.WorkItem{
			{ID: "small", Title: "Small", Points: 2},
			{ID: "epic", Title: "Epic", Points: 50},
		},
		Capacity: fixedCapacity,
	})

	require.Len(t, rm.Phases, 2)
	assert.Equal(t, []PhaseItem{{ID: "small", Title: "Small", Points: 2}}, rm.Phases[0].Items)
	assert.Equal(t, 50, rm.Phases[1].Points)
}

func TestGenerate_PhasesNeverMixWaves(t *testing.T) {
	// Wave 1 has spare room, but the wave-2 item still starts a new
	// phase because it depends on wave 1.
	rm := NewGenerator().Generate(Params{
		Items: []graph.WorkItem{
			{ID: "base", Title: "Base", Points: 2},
			{ID: "next", Title: "Next", Points: 2, Dependencies: []string{"base"}},
		},
		Capacity: fixedCapacity,
	})

	require.Len(t, rm.Phases, 2)
	assert.Equal(t, 1, rm.Phases[0].Wave)
	assert.Equal(t, 2, rm.Phases[1].Wave)
}

func TestGenerate_ImplicitDetectionChangesOrder(t *testing.T) {
	// With implicit detection on, a deployment item sinks below the
	// documentation work it implicitly depends on.
	items := []graph.WorkItem{
		{ID: "deploy", Title: "Deploy release to production", Description: "release deployment rollout"},
		{ID: "docs", Title: "Write documentation guide", Description: "documentation readme guide"},
	}

	plain := NewGenerator().Generate(Params{Items: items, Capacity: fixedCapacity})
	inferred := NewGenerator().Generate(Params{Items: items, Capacity: fixedCapacity, DetectImplicit: true})

	assert.Len(t, plain.Phases, 1)
	require.Len(t, inferred.Phases, 2)
	assert.Equal(t, "docs", inferred.Phases[0].Items[0].ID)
	assert.Equal(t, "deploy", inferred.Phases[1].Items[0].ID)
}

func TestGenerate_DefaultSprintDuration(t *testing.T) {
	rm := NewGenerator().Generate(Params{
		Items:    []graph.WorkItem{{ID: "a", Title: "A", Points: 3}},
		Capacity: capacity.Params{Velocity: "20"},
	})

	assert.Equal(t, 1, rm.EstimatedSprints)
	assert.Equal(t, defaultSprintDays, rm.EstimatedDays)
}
