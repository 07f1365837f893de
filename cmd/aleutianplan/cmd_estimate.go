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
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianPlan/pkg/ux"
	"github.com/AleutianAI/AleutianPlan/services/planning/estimation"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	estimateComplexity int
	recordTaskID       string
	recordPoints       int
	recordComplexity   int
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate story points from complexity",
	Long: `Estimate story points for a task from its 1-10 complexity score.

Raw estimates map complexity onto the Fibonacci point scale. Once
enough closed records exist for the complexity band, the estimate is
multiplied by the band's historical over- or under-estimation factor.

Records persist across runs when --data-dir is set:

  aleutianplan estimate --complexity 6 --data-dir ~/.aleutianplan
  aleutianplan estimate record --task-id T-12 --points 5 --complexity 6
  aleutianplan estimate actual T-12 8
  aleutianplan estimate stats`,
	Args: cobra.NoArgs,
	RunE: runEstimateCommand,
}

var estimateRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record an estimate for later calibration",
	Args:  cobra.NoArgs,
	RunE:  runEstimateRecordCommand,
}

var estimateActualCmd = &cobra.Command{
	Use:   "actual <task-id> <points>",
	Short: "Close a recorded estimate with the actual points",
	Args:  cobra.ExactArgs(2),
	RunE:  runEstimateActualCommand,
}

var estimateStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show estimation accuracy by complexity band",
	Args:  cobra.NoArgs,
	RunE:  runEstimateStatsCommand,
}

func init() {
	estimateCmd.Flags().IntVar(&estimateComplexity, "complexity", 5,
		"Task complexity from 1 (trivial) to 10 (hardest)")

	estimateRecordCmd.Flags().StringVar(&recordTaskID, "task-id", "",
		"Identifier of the task being estimated")
	estimateRecordCmd.Flags().IntVar(&recordPoints, "points", 0,
		"Estimated story points")
	estimateRecordCmd.Flags().IntVar(&recordComplexity, "complexity", 5,
		"Task complexity from 1 to 10")
	_ = estimateRecordCmd.MarkFlagRequired("task-id")
	_ = estimateRecordCmd.MarkFlagRequired("points")

	estimateCmd.AddCommand(estimateRecordCmd)
	estimateCmd.AddCommand(estimateActualCmd)
	estimateCmd.AddCommand(estimateStatsCmd)
	rootCmd.AddCommand(estimateCmd)
}

// =============================================================================
// COMMAND IMPLEMENTATIONS
// =============================================================================

func runEstimateCommand(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	est := sess.svc.EstimateTask(estimation.TaskParams{Complexity: estimateComplexity})
	return emit(est, ux.RenderEstimate(est))
}

func runEstimateRecordCommand(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	rec := sess.svc.RecordEstimate(estimation.EstimateParams{
		TaskID:          recordTaskID,
		EstimatedPoints: recordPoints,
		Complexity:      recordComplexity,
	})
	return emit(rec, ux.Styles.Success.Render(
		fmt.Sprintf("Recorded %d point(s) for %s (band %s)", rec.EstimatedPoints, rec.TaskID, rec.ComplexityBand)))
}

func runEstimateActualCommand(cmd *cobra.Command, args []string) error {
	actual, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("actual points must be an integer, got %q", args[1])
	}

	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	if !sess.svc.RecordActual(args[0], actual) {
		return fmt.Errorf("no open estimate found for task %q", args[0])
	}
	return emit(map[string]any{"task_id": args[0], "actual_points": actual},
		ux.Styles.Success.Render(fmt.Sprintf("Closed %s at %d point(s)", args[0], actual)))
}

func runEstimateStatsCommand(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	stats := sess.svc.CalibrationStats()
	return emit(stats, ux.RenderAccuracyStats(stats))
}
