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
	"github.com/AleutianAI/AleutianPlan/services/planning/capacity"
	"github.com/AleutianAI/AleutianPlan/services/planning/priority"
	"github.com/AleutianAI/AleutianPlan/services/planning/suggest"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	suggestVelocity  string
	suggestDuration  int
	suggestBuffer    float64
	suggestTeamFile  string
	suggestGoals     []string
	suggestTolerance float64
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var suggestCmd = &cobra.Command{
	Use:   "suggest <backlog.json>",
	Short: "Compose a sprint from the backlog",
	Long: `Compose a sprint: rank the backlog, fill the recommended load greedily,
and assess the risks of what was selected.

Items are admitted in priority order. When an item depends on other
backlog items, the whole dependency bundle must fit or the item is
skipped and the walk continues with the next candidate.

Examples:
  aleutianplan suggest backlog.json --velocity 24
  aleutianplan suggest backlog.json --velocity auto --team team.json --goals "reduce churn"`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggestCommand,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestVelocity, "velocity", capacity.AutoVelocity,
		"Points per sprint, or 'auto' to derive from history")
	suggestCmd.Flags().IntVar(&suggestDuration, "duration", 14,
		"Sprint length in days")
	suggestCmd.Flags().Float64Var(&suggestBuffer, "buffer", capacity.DefaultBufferPercentage,
		"Fraction of capacity withheld for the unexpected")
	suggestCmd.Flags().StringVar(&suggestTeamFile, "team", "",
		"JSON file with team members and historical sprints")
	suggestCmd.Flags().StringArrayVar(&suggestGoals, "goals", nil,
		"Business goals; matching items score higher (repeatable)")
	suggestCmd.Flags().Float64Var(&suggestTolerance, "risk-tolerance", priority.DefaultRiskTolerance,
		"Appetite for risky items, 0 (averse) to 1 (seeking)")

	rootCmd.AddCommand(suggestCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runSuggestCommand(cmd *cobra.Command, args []string) error {
	items, err := loadBacklog(args[0])
	if err != nil {
		return err
	}

	buffer := suggestBuffer
	capParams := capacity.Params{
		Velocity:           suggestVelocity,
		SprintDurationDays: suggestDuration,
		BufferPercentage:   &buffer,
	}
	if err := loadTeam(suggestTeamFile, &capParams); err != nil {
		return err
	}

	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	tolerance := suggestTolerance
	res := sess.svc.SuggestSprint(cmd.Context(), suggest.Params{
		Items:         items,
		Capacity:      capParams,
		BusinessGoals: suggestGoals,
		RiskTolerance: &tolerance,
	})
	return emit(res, ux.RenderSuggestion(*res))
}
