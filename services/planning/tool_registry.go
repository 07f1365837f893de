// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package planning

// ToolParam represents a parameter in a tool definition.
type ToolParam struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Default     string   `json:"default,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// ToolDefinition represents a planning tool available to an agent.
type ToolDefinition struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Parameters  []ToolParam `json:"parameters"`
	Returns     string      `json:"returns"`
	Performance string      `json:"performance"`
}

// ToolRegistry provides tool definitions for agent discovery.
//
// Thread Safety:
//
//	ToolRegistry is immutable after initialization and safe for concurrent use.
type ToolRegistry struct {
	tools []ToolDefinition
}

// NewToolRegistry creates a registry with all available tools.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: allToolDefinitions(),
	}
}

// GetTools returns all available tool definitions.
func (r *ToolRegistry) GetTools() []ToolDefinition {
	return r.tools
}

// GetToolsByCategory returns tools filtered by category.
func (r *ToolRegistry) GetToolsByCategory(category string) []ToolDefinition {
	var result []ToolDefinition
	for _, t := range r.tools {
		if t.Category == category {
			result = append(result, t)
		}
	}
	return result
}

// GetTool returns the definition with the given name.
func (r *ToolRegistry) GetTool(name string) (ToolDefinition, bool) {
	for _, t := range r.tools {
		if t.Name == name {
			return t, true
		}
	}
	return ToolDefinition{}, false
}

// allToolDefinitions returns all planning tool definitions.
func allToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		// ==================== ANALYSIS TOOLS ====================
		{
			Name:        ToolAnalyzeDependencies,
			Description: "Build the dependency graph over work items: execution order, parallel waves, circular dependencies, critical path, and optionally keyword-inferred implicit dependencies. Cyclic input degrades, never fails.",
			Category:    "analysis",
			Parameters: []ToolParam{
				{Name: "items", Type: "array", Description: "Work items with ids, titles, descriptions, and declared dependencies", Required: true},
				{Name: "detect_implicit", Type: "boolean", Description: "Infer implicit dependencies from keyword patterns", Required: false, Default: "false"},
			},
			Returns:     "Execution order, parallel waves, cycles, critical path, orphans, leaves, and a visualization export",
			Performance: "<50ms for 500 items",
		},
		{
			Name:        ToolPrioritizeBacklog,
			Description: "Rank backlog items by weighted business value, dependency position, risk, and effort fit. Optionally blends an AI self-assessment into the business value factor.",
			Category:    "analysis",
			Parameters: []ToolParam{
				{Name: "items", Type: "array", Description: "Backlog items to rank", Required: true},
				{Name: "business_goals", Type: "array", Description: "Goal statements keyword-matched against item text", Required: false},
				{Name: "risk_tolerance", Type: "number", Description: "Size-vs-risk tuning in [0,1]", Required: false, Default: "0.5"},
				{Name: "capacity_points", Type: "integer", Description: "Sprint capacity for the effort-fit curve", Required: false, Default: "20"},
			},
			Returns:     "Items sorted by descending score with per-item factor breakdowns and reasoning",
			Performance: "<100ms without AI signal",
		},
		{
			Name:        ToolEstimateTask,
			Description: "Convert a 1-10 complexity score into Fibonacci story points with an uncertainty range, applying the historical calibration factor when at least 3 closed records exist.",
			Category:    "analysis",
			Parameters: []ToolParam{
				{Name: "complexity", Type: "integer", Description: "Complexity score from 1 (trivial) to 10 (extreme)", Required: true},
			},
			Returns:     "Point estimate, range, confidence, and calibration reasoning",
			Performance: "<10ms",
		},
		// ==================== SPRINT TOOLS ====================
		{
			Name:        ToolAnalyzeCapacity,
			Description: "Compute sprint capacity from velocity (explicit or derived from history), team availability with a sub-linear low-availability discount, and a safety buffer.",
			Category:    "sprint",
			Parameters: []ToolParam{
				{Name: "velocity", Type: "string", Description: "Numeric velocity or 'auto' to derive from history", Required: true},
				{Name: "sprint_duration_days", Type: "integer", Description: "Sprint length in days", Required: false, Default: "14"},
				{Name: "team_members", Type: "array", Description: "Members with availability fractions", Required: false},
				{Name: "historical_sprints", Type: "array", Description: "Completed sprint outcomes for auto velocity", Required: false},
				{Name: "buffer_percentage", Type: "number", Description: "Capacity withheld for the unexpected", Required: false, Default: "0.20"},
			},
			Returns:     "Total points, recommended load, availability breakdown, and buffer reasoning",
			Performance: "<10ms",
		},
		{
			Name:        ToolAssessSprintRisks,
			Description: "Run the risk rule table over a proposed sprint: overcommitment, thin buffer, oversized items, dependency concentration, unclear scope. Every risk pairs with a mitigation.",
			Category:    "sprint",
			Parameters: []ToolParam{
				{Name: "items", Type: "array", Description: "Proposed sprint content", Required: true},
				{Name: "capacity", Type: "object", Description: "Sprint capacity the items are judged against", Required: false},
			},
			Returns:     "Risks with probability and impact, mitigations, and a 0-100 aggregate score",
			Performance: "<10ms",
		},
		{
			Name:        ToolSuggestSprint,
			Description: "Compose a sprint: analyze capacity, rank the backlog, then greedily admit items with their dependency closures while staying within the recommended load. Oversized items are excluded, never force-fit.",
			Category:    "sprint",
			Parameters: []ToolParam{
				{Name: "items", Type: "array", Description: "Candidate backlog", Required: true},
				{Name: "capacity", Type: "object", Description: "Capacity configuration", Required: true},
				{Name: "business_goals", Type: "array", Description: "Goal statements biasing prioritization", Required: false},
				{Name: "risk_tolerance", Type: "number", Description: "Size-vs-risk tuning in [0,1]", Required: false, Default: "0.5"},
			},
			Returns:     "Selected items with inclusion reasons, exclusions, capacity, and a risk assessment",
			Performance: "<150ms without AI signal",
		},
		// ==================== PLANNING TOOLS ====================
		{
			Name:        ToolGenerateRoadmap,
			Description: "Slice the dependency waves into sprint-sized phases bounded by the recommended load, with a timeline estimate. Phases never mix waves, so each phase depends only on earlier ones.",
			Category:    "planning",
			Parameters: []ToolParam{
				{Name: "items", Type: "array", Description: "Work items to plan", Required: true},
				{Name: "capacity", Type: "object", Description: "Capacity configuration bounding each phase", Required: true},
				{Name: "detect_implicit", Type: "boolean", Description: "Infer implicit dependencies before wave computation", Required: false, Default: "false"},
			},
			Returns:     "Ordered phases with item placements, sprint count, and estimated days",
			Performance: "<50ms for 500 items",
		},
	}
}
