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
	"github.com/AleutianAI/AleutianPlan/services/planning/risk"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	risksVelocity string
	risksDuration int
	risksBuffer   float64
	risksTeamFile string
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var risksCmd = &cobra.Command{
	Use:   "risks <sprint.json>",
	Short: "Assess the risks of a planned sprint",
	Long: `Assess a planned sprint against its capacity.

Rule-based checks cover overcommitment, thin buffers, oversized items,
dependency hub items, and items with too little description to
estimate honestly. Each detected risk comes with a suggested
mitigation.

Examples:
  aleutianplan risks sprint.json --velocity 24
  aleutianplan risks sprint.json --velocity auto --team team.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRisksCommand,
}

func init() {
	risksCmd.Flags().StringVar(&risksVelocity, "velocity", capacity.AutoVelocity,
		"Points per sprint, or 'auto' to derive from history")
	risksCmd.Flags().IntVar(&risksDuration, "duration", 14,
		"Sprint length in days")
	risksCmd.Flags().Float64Var(&risksBuffer, "buffer", capacity.DefaultBufferPercentage,
		"Fraction of capacity withheld for the unexpected")
	risksCmd.Flags().StringVar(&risksTeamFile, "team", "",
		"JSON file with team members and historical sprints")

	rootCmd.AddCommand(risksCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runRisksCommand(cmd *cobra.Command, args []string) error {
	items, err := loadBacklog(args[0])
	if err != nil {
		return err
	}

	buffer := risksBuffer
	capParams := capacity.Params{
		Velocity:           risksVelocity,
		SprintDurationDays: risksDuration,
		BufferPercentage:   &buffer,
	}
	if err := loadTeam(risksTeamFile, &capParams); err != nil {
		return err
	}

	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	sc := sess.svc.AnalyzeCapacity(capParams)
	res := sess.svc.AssessSprintRisks(risk.Params{Items: items, Capacity: &sc})
	return emit(res, ux.RenderRisks(*res))
}
