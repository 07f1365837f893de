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
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	capacityVelocity string
	capacityDuration int
	capacityBuffer   float64
	capacityTeamFile string
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Compute sprint capacity",
	Long: `Compute sprint capacity from velocity, team availability, and a safety
buffer.

Velocity "auto" derives from historical sprints (outliers trimmed,
recent sprints weighted heavier); without history it falls back to the
default. Team members below 30% availability contribute sub-linearly,
since a barely-present person spends their time on context switching.

The team file carries members and history:

  {
    "team_members": [{"name": "Jess", "availability": 0.8}],
    "historical_sprints": [{"completed_points": 21, "planned_points": 24}]
  }

Examples:
  aleutianplan capacity --velocity 24
  aleutianplan capacity --velocity auto --team team.json
  aleutianplan capacity --velocity 24 --buffer 0.3 --duration 10`,
	Args: cobra.NoArgs,
	RunE: runCapacityCommand,
}

func init() {
	capacityCmd.Flags().StringVar(&capacityVelocity, "velocity", capacity.AutoVelocity,
		"Points per sprint, or 'auto' to derive from history")
	capacityCmd.Flags().IntVar(&capacityDuration, "duration", 14,
		"Sprint length in days")
	capacityCmd.Flags().Float64Var(&capacityBuffer, "buffer", capacity.DefaultBufferPercentage,
		"Fraction of capacity withheld for the unexpected")
	capacityCmd.Flags().StringVar(&capacityTeamFile, "team", "",
		"JSON file with team members and historical sprints")

	rootCmd.AddCommand(capacityCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runCapacityCommand(cmd *cobra.Command, args []string) error {
	buffer := capacityBuffer
	params := capacity.Params{
		Velocity:           capacityVelocity,
		SprintDurationDays: capacityDuration,
		BufferPercentage:   &buffer,
	}
	if err := loadTeam(capacityTeamFile, &params); err != nil {
		return err
	}

	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	sc := sess.svc.AnalyzeCapacity(params)
	return emit(sc, ux.RenderCapacity(sc))
}
