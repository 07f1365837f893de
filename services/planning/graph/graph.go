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
	"fmt"

	"github.com/AleutianAI/AleutianPlan/services/planning/keywords"
)

// DefaultImplicitThreshold is the minimum confidence for an inferred edge.
const DefaultImplicitThreshold = 0.7

// TaskGraph is a mutable dependency graph over work items.
//
// Nodes are added via AddTask/AddTasks; declared dependencies become
// explicit edges at insertion. Edges referencing IDs never added are kept in
// the edge list but ignored by traversal queries. The graph never rejects a
// cycle at insertion time; cycle presence is a query, not a constraint.
type TaskGraph struct {
	items    map[string]WorkItem
	order    []string // insertion order, drives deterministic tie-breaks
	edges    []Edge
	implicit []Edge

	// kwCache holds per-item extracted keywords (title + description),
	// computed once so implicit detection stays O(n²) not O(n²·len(text)).
	kwCache map[string][]string
}

// New creates an empty task graph.
func New() *TaskGraph {
	return &TaskGraph{
		items:   make(map[string]WorkItem),
		kwCache: make(map[string][]string),
	}
}

// AddTask inserts a work item and its declared dependency edges.
//
// Re-adding an existing ID replaces the stored item but keeps its original
// insertion position. Declared edges get confidence 1.0 and Implicit=false.
func (g *TaskGraph) AddTask(item WorkItem) {
	if _, exists := g.items[item.ID]; !exists {
		g.order = append(g.order, item.ID)
	}
	g.items[item.ID] = item
	g.kwCache[item.ID] = keywords.Extract(item.Title + " " + item.Description)

	for _, dep := range item.Dependencies {
		g.edges = append(g.edges, Edge{
			From:       dep,
			To:         item.ID,
			Type:       EdgeDependsOn,
			Confidence: 1.0,
			Reason:     "declared dependency",
		})
	}
}

// AddTasks inserts items in order.
func (g *TaskGraph) AddTasks(items []WorkItem) {
	for _, item := range items {
		g.AddTask(item)
	}
}

// Len returns the number of items in the graph.
func (g *TaskGraph) Len() int {
	return len(g.items)
}

// Items returns the items in insertion order.
func (g *TaskGraph) Items() []WorkItem {
	out := make([]WorkItem, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.items[id])
	}
	return out
}

// Item returns the item with the given ID.
func (g *TaskGraph) Item(id string) (WorkItem, bool) {
	item, ok := g.items[id]
	return item, ok
}

// Edges returns all edges, declared and implicit, in insertion order.
func (g *TaskGraph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// DetectImplicitDependencies infers dependency edges from keyword patterns.
//
// # Description
//
// Runs the pairwise keyword dependency check over all node pairs using the
// cached per-item keyword sets and adds an implicit edge wherever the
// inferred confidence meets the threshold. Edges that already exist in
// either form are not duplicated. Detected edges are recorded and also
// retrievable later via ImplicitDependencies.
//
// # Inputs
//
//   - threshold: Minimum confidence in [0,1]. Values <= 0 fall back to
//     DefaultImplicitThreshold.
//
// # Outputs
//
//   - []Edge: The newly detected edges, in deterministic pair order.
func (g *TaskGraph) DetectImplicitDependencies(threshold float64) []Edge {
	if threshold <= 0 {
		threshold = DefaultImplicitThreshold
	}

	existing := make(map[[2]string]struct{}, len(g.edges))
	for _, e := range g.edges {
		existing[[2]string{e.From, e.To}] = struct{}{}
	}

	var detected []Edge
	for _, from := range g.order {
		for _, to := range g.order {
			if from == to {
				continue
			}
			if _, dup := existing[[2]string{from, to}]; dup {
				continue
			}
			sig := keywords.CheckKeywordDependency(g.kwCache[from], g.kwCache[to])
			if !sig.Likely || sig.Confidence < threshold {
				continue
			}
			edge := Edge{
				From:       from,
				To:         to,
				Type:       EdgeDependsOn,
				Confidence: sig.Confidence,
				Reason:     sig.Reason,
				Implicit:   true,
			}
			existing[[2]string{from, to}] = struct{}{}
			detected = append(detected, edge)
		}
	}

	g.edges = append(g.edges, detected...)
	g.implicit = append(g.implicit, detected...)
	return detected
}

// ImplicitDependencies returns every implicit edge detected so far.
func (g *TaskGraph) ImplicitDependencies() []Edge {
	out := make([]Edge, len(g.implicit))
	copy(out, g.implicit)
	return out
}

// ExportForVisualization returns a plain node/edge projection for external
// rendering. Edges with endpoints outside the graph are omitted.
func (g *TaskGraph) ExportForVisualization() Visualization {
	viz := Visualization{
		Nodes: make([]VisualNode, 0, len(g.order)),
		Edges: make([]VisualEdge, 0, len(g.edges)),
	}
	for _, id := range g.order {
		item := g.items[id]
		label := item.Title
		if label == "" {
			label = item.ID
		}
		viz.Nodes = append(viz.Nodes, VisualNode{ID: id, Label: label, Points: item.Points})
	}
	for _, e := range g.edges {
		if !g.has(e.From) || !g.has(e.To) {
			continue
		}
		viz.Edges = append(viz.Edges, VisualEdge{From: e.From, To: e.To, Implicit: e.Implicit})
	}
	return viz
}

// has reports whether the ID is a node in the graph.
func (g *TaskGraph) has(id string) bool {
	_, ok := g.items[id]
	return ok
}

// adjacency builds successor and predecessor lists over edges whose
// endpoints both exist, de-duplicated, with neighbors in insertion order.
func (g *TaskGraph) adjacency() (succ, pred map[string][]string) {
	succ = make(map[string][]string, len(g.items))
	pred = make(map[string][]string, len(g.items))
	seen := make(map[[2]string]struct{}, len(g.edges))

	index := make(map[string]int, len(g.order))
	for i, id := range g.order {
		index[id] = i
	}

	for _, e := range g.edges {
		if !g.has(e.From) || !g.has(e.To) {
			continue
		}
		key := [2]string{e.From, e.To}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		succ[e.From] = append(succ[e.From], e.To)
		pred[e.To] = append(pred[e.To], e.From)
	}

	byInsertion := func(ids []string) {
		for i := 1; i < len(ids); i++ {
			for j := i; j > 0 && index[ids[j]] < index[ids[j-1]]; j-- {
				ids[j], ids[j-1] = ids[j-1], ids[j]
			}
		}
	}
	for _, ids := range succ {
		byInsertion(ids)
	}
	for _, ids := range pred {
		byInsertion(ids)
	}
	return succ, pred
}

// String implements fmt.Stringer for debugging output.
func (g *TaskGraph) String() string {
	return fmt.Sprintf("TaskGraph{items:%d edges:%d implicit:%d}", len(g.items), len(g.edges), len(g.implicit))
}
