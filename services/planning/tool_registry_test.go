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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolRegistry_AllToolsDefined(t *testing.T) {
	reg := NewToolRegistry()
	tools := reg.GetTools()

	names := make(map[string]bool, len(tools))
	for _, tool := range tools {
		assert.NotEmpty(t, tool.Name)
		assert.NotEmpty(t, tool.Description)
		assert.NotEmpty(t, tool.Category)
		assert.NotEmpty(t, tool.Returns)
		assert.False(t, names[tool.Name], "duplicate tool %q", tool.Name)
		names[tool.Name] = true
	}

	for _, want := range []string{
		ToolAnalyzeDependencies,
		ToolPrioritizeBacklog,
		ToolAnalyzeCapacity,
		ToolAssessSprintRisks,
		ToolSuggestSprint,
		ToolEstimateTask,
		ToolGenerateRoadmap,
	} {
		assert.True(t, names[want], "missing tool %q", want)
	}
}

func TestToolRegistry_GetToolsByCategory(t *testing.T) {
	reg := NewToolRegistry()

	sprint := reg.GetToolsByCategory("sprint")
	require.NotEmpty(t, sprint)
	for _, tool := range sprint {
		assert.Equal(t, "sprint", tool.Category)
	}

	assert.Empty(t, reg.GetToolsByCategory("nonexistent"))
}

func TestToolRegistry_GetTool(t *testing.T) {
	reg := NewToolRegistry()

	tool, ok := reg.GetTool(ToolSuggestSprint)
	require.True(t, ok)
	assert.Equal(t, ToolSuggestSprint, tool.Name)

	_, ok = reg.GetTool("unknown")
	assert.False(t, ok)
}

func TestToolRegistry_RequiredParamsFirst(t *testing.T) {
	reg := NewToolRegistry()
	for _, tool := range reg.GetTools() {
		seenOptional := false
		for _, p := range tool.Parameters {
			if !p.Required {
				seenOptional = true
			}
			if p.Required {
				assert.False(t, seenOptional, "tool %q lists required param %q after optional params", tool.Name, p.Name)
			}
		}
	}
}
