// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainGraph() *TaskGraph {
	g := New()
	g.AddTasks([]WorkItem{
		{ID: "t1", Title: "first"},
		{ID: "t2", Title: "second", Dependencies: []string{"t1"}},
		{ID: "t3", Title: "third", Dependencies: []string{"t2"}},
	})
	return g
}

func TestAddTask(t *testing.T) {
	g := New()
	g.AddTask(WorkItem{ID: "a", Title: "A"})
	g.AddTask(WorkItem{ID: "b", Title: "B", Dependencies: []string{"a"}})

	assert.Equal(t, 2, g.Len())

	edges := g.Edges()
	require.Len(t, edges, 1)
	assert.Equal(t, "a", edges[0].From)
	assert.Equal(t, "b", edges[0].To)
	assert.Equal(t, 1.0, edges[0].Confidence)
	assert.False(t, edges[0].Implicit)
}

func TestAddTask_ReplaceKeepsPosition(t *testing.T) {
	g := New()
	g.AddTask(WorkItem{ID: "a", Title: "old"})
	g.AddTask(WorkItem{ID: "b"})
	g.AddTask(WorkItem{ID: "a", Title: "new"})

	assert.Equal(t, 2, g.Len())
	item, ok := g.Item("a")
	require.True(t, ok)
	assert.Equal(t, "new", item.Title)
	assert.Equal(t, []string{"a", "b"}, g.ExecutionOrder())
}

func TestDetectImplicitDependencies(t *testing.T) {
	g := New()
	g.AddTasks([]WorkItem{
		{ID: "db", Title: "Design database schema", Description: "postgres schema and migration plan"},
		{ID: "api", Title: "Build REST API", Description: "endpoint routes for the backend"},
	})

	detected := g.DetectImplicitDependencies(0.6)
	require.Len(t, detected, 1)
	assert.Equal(t, "db", detected[0].From)
	assert.Equal(t, "api", detected[0].To)
	assert.True(t, detected[0].Implicit)
	assert.GreaterOrEqual(t, detected[0].Confidence, 0.6)

	// Recorded for later retrieval, and not re-detected.
	assert.Len(t, g.ImplicitDependencies(), 1)
	assert.Empty(t, g.DetectImplicitDependencies(0.6))
}

func TestDetectImplicitDependencies_ThresholdFilters(t *testing.T) {
	g := New()
	g.AddTasks([]WorkItem{
		{ID: "db", Title: "schema work"},
		{ID: "api", Title: "api work"},
	})

	// Single weak keyword on each side keeps confidence below 0.9.
	assert.Empty(t, g.DetectImplicitDependencies(0.95))
}

func TestDetectImplicitDependencies_SkipsDeclaredEdges(t *testing.T) {
	g := New()
	g.AddTasks([]WorkItem{
		{ID: "db", Title: "Design database schema migration"},
		{ID: "api", Title: "Build REST API endpoint", Dependencies: []string{"db"}},
	})

	assert.Empty(t, g.DetectImplicitDependencies(0.5))
}

func TestExportForVisualization(t *testing.T) {
	g := New()
	g.AddTasks([]WorkItem{
		{ID: "a", Title: "A", Points: 5},
		{ID: "b", Points: 3, Dependencies: []string{"a", "ghost"}},
	})

	viz := g.ExportForVisualization()
	require.Len(t, viz.Nodes, 2)
	assert.Equal(t, "A", viz.Nodes[0].Label)
	assert.Equal(t, 5, viz.Nodes[0].Points)
	// Untitled items fall back to the ID as label.
	assert.Equal(t, "b", viz.Nodes[1].Label)

	// The dangling "ghost" edge is omitted from the projection.
	require.Len(t, viz.Edges, 1)
	assert.Equal(t, VisualEdge{From: "a", To: "b"}, viz.Edges[0])
}

func TestDanglingDependenciesIgnoredByTraversal(t *testing.T) {
	g := New()
	g.AddTask(WorkItem{ID: "a", Dependencies: []string{"missing"}})

	assert.Equal(t, []string{"a"}, g.ExecutionOrder())
	assert.Equal(t, []string{"a"}, g.Orphans())
	assert.Empty(t, g.DetectCycles())
}
