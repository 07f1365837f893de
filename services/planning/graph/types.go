// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package graph provides the work item dependency graph.
//
// # Description
//
// The graph is built from explicit, author-declared dependencies plus
// implicit dependencies inferred from keyword patterns. It offers cycle
// detection, topological execution order, critical path extraction, and
// parallel wave grouping. Cycles are detected and reported, never rejected:
// real backlogs contain messy data and every query degrades gracefully
// instead of failing.
//
// # Thread Safety
//
// A TaskGraph is not safe for concurrent mutation. Build it fully, then
// query it from any number of goroutines.
package graph

// Priority is a work item priority tier.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// WorkItem is a unit of plannable work. It is an immutable input to the
// engine: analysis results reference item IDs and never mutate items.
type WorkItem struct {
	// ID uniquely identifies the item.
	ID string `json:"id"`

	// Title is the short summary.
	Title string `json:"title"`

	// Description is the long-form body, used for keyword extraction.
	Description string `json:"description,omitempty"`

	// Points is the estimated effort size. Zero means not estimated.
	Points int `json:"points,omitempty"`

	// Priority is the caller-assigned tier. Empty means unset.
	Priority Priority `json:"priority,omitempty"`

	// Labels are free-form tags.
	Labels []string `json:"labels,omitempty"`

	// Dependencies are the declared upstream item IDs, in declaration order.
	Dependencies []string `json:"dependencies,omitempty"`
}

// EdgeType classifies a dependency edge.
type EdgeType string

// EdgeDependsOn is the only edge type: From must complete before To starts.
const EdgeDependsOn EdgeType = "depends_on"

// Edge is a directed dependency edge: To depends on From.
type Edge struct {
	// From is the upstream (prerequisite) item ID.
	From string `json:"from"`

	// To is the downstream (dependent) item ID.
	To string `json:"to"`

	// Type is always EdgeDependsOn.
	Type EdgeType `json:"type"`

	// Confidence is 1.0 for declared edges and the inference confidence
	// for implicit edges.
	Confidence float64 `json:"confidence"`

	// Reason explains where the edge came from.
	Reason string `json:"reason"`

	// Implicit is true for inferred (not author-declared) edges.
	Implicit bool `json:"is_implicit"`
}

// AnalysisResult bundles every graph query into one report.
type AnalysisResult struct {
	// ExecutionOrder is a topological ordering of item IDs. Best-effort
	// when the graph has cycles.
	ExecutionOrder []string `json:"execution_order"`

	// CriticalPath is the longest dependency chain by edge count.
	CriticalPath []string `json:"critical_path"`

	// ParallelGroups partitions items into ordered waves; everything in a
	// wave can be worked concurrently.
	ParallelGroups [][]string `json:"parallel_groups"`

	// Cycles lists every elementary dependency cycle. Empty for a DAG.
	Cycles [][]string `json:"cycles"`

	// OrphanTasks have no dependencies within the graph.
	OrphanTasks []string `json:"orphan_tasks"`

	// LeafTasks block nothing within the graph.
	LeafTasks []string `json:"leaf_tasks"`
}

// VisualNode is a node projection for external rendering.
type VisualNode struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Points int    `json:"points,omitempty"`
}

// VisualEdge is an edge projection for external rendering.
type VisualEdge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Implicit bool   `json:"is_implicit"`
}

// Visualization is a plain node/edge list for external rendering tools.
// It is a pure projection of the graph and carries no behavior.
type Visualization struct {
	Nodes []VisualNode `json:"nodes"`
	Edges []VisualEdge `json:"edges"`
}
