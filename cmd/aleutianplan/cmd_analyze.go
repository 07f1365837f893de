// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianPlan/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var analyzeDetectImplicit bool

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var analyzeCmd = &cobra.Command{
	Use:   "analyze <backlog.json>",
	Short: "Analyze work item dependencies",
	Long: `Build the dependency graph over a backlog: execution order, parallel
waves, circular dependencies, and the critical path.

Circular dependencies are reported, never fatal: ordering degrades to
best-effort and the cycle members land in a final wave together.

Examples:
  aleutianplan analyze backlog.json
  aleutianplan analyze backlog.json --detect-implicit
  aleutianplan analyze backlog.json --json | jq .analysis.cycles`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyzeCommand,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeDetectImplicit, "detect-implicit", false,
		"Infer implicit dependencies from keyword patterns")

	rootCmd.AddCommand(analyzeCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runAnalyzeCommand(cmd *cobra.Command, args []string) error {
	items, err := loadBacklog(args[0])
	if err != nil {
		return err
	}

	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	res := sess.svc.AnalyzeDependencies(items, analyzeDetectImplicit)
	return emit(res, ux.RenderDependencyAnalysis(res))
}
