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
	"github.com/AleutianAI/AleutianPlan/services/planning/priority"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	prioritizeGoals         []string
	prioritizeRiskTolerance float64
	prioritizeCapacity      int
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var prioritizeCmd = &cobra.Command{
	Use:   "prioritize <backlog.json>",
	Short: "Rank backlog items by weighted factors",
	Long: `Rank a backlog by weighted business value, dependency position, risk,
and effort fit. Ties keep input order, so runs are reproducible.

Business goals are keyword-matched against item titles and descriptions;
aligned items get a business value boost. With --ai, an OpenAI
self-assessment is blended into the business value factor.

Examples:
  aleutianplan prioritize backlog.json
  aleutianplan prioritize backlog.json --goals "reduce churn" --goals "ship checkout"
  aleutianplan prioritize backlog.json --risk-tolerance 0.8 --capacity 30`,
	Args: cobra.ExactArgs(1),
	RunE: runPrioritizeCommand,
}

func init() {
	prioritizeCmd.Flags().StringArrayVar(&prioritizeGoals, "goals", nil,
		"Business goal statements (repeatable)")
	prioritizeCmd.Flags().Float64Var(&prioritizeRiskTolerance, "risk-tolerance", priority.DefaultRiskTolerance,
		"Size-vs-risk tuning in [0,1]; higher tolerates large items")
	prioritizeCmd.Flags().IntVar(&prioritizeCapacity, "capacity", 0,
		"Sprint capacity in points for the effort-fit curve")

	rootCmd.AddCommand(prioritizeCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runPrioritizeCommand(cmd *cobra.Command, args []string) error {
	items, err := loadBacklog(args[0])
	if err != nil {
		return err
	}

	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	tolerance := prioritizeRiskTolerance
	res := sess.svc.PrioritizeBacklog(cmd.Context(), priority.Params{
		Items:          items,
		BusinessGoals:  prioritizeGoals,
		RiskTolerance:  &tolerance,
		CapacityPoints: prioritizeCapacity,
	})
	return emit(res, ux.RenderPriorities(res))
}
