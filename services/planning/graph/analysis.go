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

// DetectCycles returns every elementary dependency cycle in the graph.
//
// # Description
//
// Cycle presence is reported, never fatal. Each cycle is returned once,
// rooted at its earliest-inserted node, as an ordered ID list without the
// closing repeat. The result is empty (nil) for a DAG.
//
// Enumeration walks simple paths from each start node restricted to nodes
// inserted at or after it, so a cycle is only discovered from its minimal
// root and never reported twice.
func (g *TaskGraph) DetectCycles() [][]string {
	succ, _ := g.adjacency()

	index := make(map[string]int, len(g.order))
	for i, id := range g.order {
		index[id] = i
	}

	var cycles [][]string
	for _, start := range g.order {
		startIdx := index[start]
		path := []string{start}
		onPath := map[string]bool{start: true}

		var dfs func(node string)
		dfs = func(node string) {
			for _, next := range succ[node] {
				if index[next] < startIdx {
					continue
				}
				if next == start {
					cycle := make([]string, len(path))
					copy(cycle, path)
					cycles = append(cycles, cycle)
					continue
				}
				if onPath[next] {
					continue
				}
				onPath[next] = true
				path = append(path, next)
				dfs(next)
				path = path[:len(path)-1]
				onPath[next] = false
			}
		}
		dfs(start)
	}
	return cycles
}

// ExecutionOrder returns a topological ordering of the graph.
//
// # Description
//
// Kahn's algorithm with ties broken by insertion order, so the result is
// stable across runs. On a cyclic graph the order is best-effort: the
// acyclic prefix comes first in valid topological order, then the nodes
// trapped in cycles follow in insertion order. The call never fails.
func (g *TaskGraph) ExecutionOrder() []string {
	order, _ := g.kahn()
	return order
}

// kahn runs Kahn's algorithm and returns the order plus the set of nodes
// that were actually sorted (excluded nodes sit on a cycle).
func (g *TaskGraph) kahn() ([]string, map[string]bool) {
	succ, pred := g.adjacency()

	inDegree := make(map[string]int, len(g.items))
	for _, id := range g.order {
		inDegree[id] = len(pred[id])
	}

	sorted := make(map[string]bool, len(g.items))
	order := make([]string, 0, len(g.items))

	for len(order) < len(g.items) {
		// Pick the earliest-inserted ready node.
		next := ""
		for _, id := range g.order {
			if !sorted[id] && inDegree[id] == 0 {
				next = id
				break
			}
		}
		if next == "" {
			break // remaining nodes all sit on cycles
		}
		sorted[next] = true
		order = append(order, next)
		for _, s := range succ[next] {
			inDegree[s]--
		}
	}

	// Best-effort residue for cyclic graphs.
	for _, id := range g.order {
		if !sorted[id] {
			order = append(order, id)
		}
	}
	return order, sorted
}

// ParallelGroups partitions the nodes into ordered execution waves.
//
// Wave 0 holds every orphan node; wave k holds the nodes whose dependencies
// are fully contained in waves 0..k-1. Nodes trapped in a cycle cannot be
// scheduled by that rule and are appended as one final wave in insertion
// order, mirroring the best-effort ExecutionOrder policy.
func (g *TaskGraph) ParallelGroups() [][]string {
	succ, pred := g.adjacency()

	inDegree := make(map[string]int, len(g.items))
	for _, id := range g.order {
		inDegree[id] = len(pred[id])
	}

	placed := make(map[string]bool, len(g.items))
	var waves [][]string
	remaining := len(g.items)

	for remaining > 0 {
		var wave []string
		for _, id := range g.order {
			if !placed[id] && inDegree[id] == 0 {
				wave = append(wave, id)
			}
		}
		if len(wave) == 0 {
			// Cycle residue becomes the final wave.
			var rest []string
			for _, id := range g.order {
				if !placed[id] {
					rest = append(rest, id)
				}
			}
			waves = append(waves, rest)
			break
		}
		for _, id := range wave {
			placed[id] = true
			remaining--
			for _, s := range succ[id] {
				inDegree[s]--
			}
		}
		waves = append(waves, wave)
	}
	return waves
}

// CriticalPath returns the longest dependency chain by edge count.
//
// # Description
//
// Dynamic programming over the topological order. Ties are broken
// deterministically by lexicographically smaller node ID. Nodes trapped in
// cycles are excluded from the computation, so the call is safe on any
// graph; empty and disconnected graphs yield the trivial answer.
func (g *TaskGraph) CriticalPath() []string {
	order, sorted := g.kahn()
	_, pred := g.adjacency()

	// length is the chain length ending at each node, via the best
	// predecessor recorded alongside it.
	length := make(map[string]int, len(g.items))
	via := make(map[string]string, len(g.items))

	for _, id := range order {
		if !sorted[id] {
			continue
		}
		best := 0
		bestPred := ""
		for _, p := range pred[id] {
			if !sorted[p] {
				continue
			}
			if length[p] > best || (length[p] == best && bestPred != "" && p < bestPred) {
				best = length[p]
				bestPred = p
			}
		}
		length[id] = best + 1
		via[id] = bestPred
	}

	end := ""
	for _, id := range order {
		if !sorted[id] {
			continue
		}
		if end == "" || length[id] > length[end] || (length[id] == length[end] && id < end) {
			end = id
		}
	}
	if end == "" {
		return nil
	}

	var path []string
	for cur := end; cur != ""; cur = via[cur] {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Orphans returns the IDs with no incoming edges, in insertion order.
func (g *TaskGraph) Orphans() []string {
	_, pred := g.adjacency()
	var out []string
	for _, id := range g.order {
		if len(pred[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Leaves returns the IDs with no outgoing edges, in insertion order.
func (g *TaskGraph) Leaves() []string {
	succ, _ := g.adjacency()
	var out []string
	for _, id := range g.order {
		if len(succ[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Analyze runs every graph query and bundles the results.
func (g *TaskGraph) Analyze() AnalysisResult {
	return AnalysisResult{
		ExecutionOrder: g.ExecutionOrder(),
		CriticalPath:   g.CriticalPath(),
		ParallelGroups: g.ParallelGroups(),
		Cycles:         g.DetectCycles(),
		OrphanTasks:    g.Orphans(),
		LeafTasks:      g.Leaves(),
	}
}
