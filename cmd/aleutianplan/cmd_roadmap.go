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
	"github.com/AleutianAI/AleutianPlan/services/planning/roadmap"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	roadmapVelocity       string
	roadmapDuration       int
	roadmapBuffer         float64
	roadmapTeamFile       string
	roadmapDetectImplicit bool
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

var roadmapCmd = &cobra.Command{
	Use:   "roadmap <backlog.json>",
	Short: "Generate a phased delivery roadmap",
	Long: `Generate a phased roadmap from the full backlog.

The dependency graph is sliced into parallel waves, and each wave is
packed into phases no larger than the recommended sprint load. Phases
never mix waves, so everything in a phase can start as soon as the
previous phase lands.

Examples:
  aleutianplan roadmap backlog.json --velocity 24
  aleutianplan roadmap backlog.json --velocity auto --team team.json --detect-implicit`,
	Args: cobra.ExactArgs(1),
	RunE: runRoadmapCommand,
}

func init() {
	roadmapCmd.Flags().StringVar(&roadmapVelocity, "velocity", capacity.AutoVelocity,
		"Points per sprint, or 'auto' to derive from history")
	roadmapCmd.Flags().IntVar(&roadmapDuration, "duration", 14,
		"Sprint length in days")
	roadmapCmd.Flags().Float64Var(&roadmapBuffer, "buffer", capacity.DefaultBufferPercentage,
		"Fraction of capacity withheld for the unexpected")
	roadmapCmd.Flags().StringVar(&roadmapTeamFile, "team", "",
		"JSON file with team members and historical sprints")
	roadmapCmd.Flags().BoolVar(&roadmapDetectImplicit, "detect-implicit", false,
		"Infer undeclared dependencies from item text")

	rootCmd.AddCommand(roadmapCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runRoadmapCommand(cmd *cobra.Command, args []string) error {
	items, err := loadBacklog(args[0])
	if err != nil {
		return err
	}

	buffer := roadmapBuffer
	capParams := capacity.Params{
		Velocity:           roadmapVelocity,
		SprintDurationDays: roadmapDuration,
		BufferPercentage:   &buffer,
	}
	if err := loadTeam(roadmapTeamFile, &capParams); err != nil {
		return err
	}

	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	rm := sess.svc.GenerateRoadmap(roadmap.Params{
		Items:          items,
		Capacity:       capParams,
		DetectImplicit: roadmapDetectImplicit,
	})
	return emit(rm, ux.RenderRoadmap(*rm))
}
