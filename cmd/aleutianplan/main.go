// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// aleutianplan is the CLI for the planning analytics engine: dependency
// analysis, backlog prioritization, capacity planning, estimation,
// sprint suggestion, and roadmap generation over JSON work item files.
package main

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianPlan/pkg/logging"
	"github.com/AleutianAI/AleutianPlan/pkg/ux"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

var (
	flagJSON        bool
	flagPlain       bool
	flagVerbose     bool
	flagDataDir     string
	flagAI          bool
	flagMetricsAddr string
)

var logger = logging.Default()

// =============================================================================
// ROOT COMMAND
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "aleutianplan",
	Short: "Deterministic planning analytics for backlogs and sprints",
	Long: `AleutianPlan analyzes work item backlogs: dependency graphs, priorities,
sprint capacity, story point estimation, risk assessment, sprint suggestions,
and phased roadmaps.

All analysis is deterministic. An optional AI signal (--ai) blends a
self-assessment into scoring but never changes what the algorithms decide
without it.

Work items are supplied as JSON files:

  {
    "items": [
      {"id": "auth", "title": "Build auth API", "points": 5,
       "priority": "critical", "dependencies": ["db"]},
      {"id": "db", "title": "Design database schema", "points": 3}
    ]
  }

Examples:
  aleutianplan analyze backlog.json
  aleutianplan prioritize backlog.json --goals "reduce churn"
  aleutianplan capacity --velocity auto --team team.json
  aleutianplan estimate --complexity 6 --data-dir ~/.aleutianplan
  aleutianplan suggest backlog.json --velocity 20
  aleutianplan roadmap backlog.json --velocity 20 --detect-implicit`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		ux.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false,
		"Machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&flagPlain, "plain", false,
		"Disable styled output")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false,
		"Debug-level logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "",
		"Directory for estimation calibration history")
	rootCmd.PersistentFlags().BoolVar(&flagAI, "ai", false,
		"Blend an OpenAI self-assessment into scoring (needs OPENAI_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "",
		"Serve Prometheus metrics on this address while the command runs")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		ux.SetPlain(flagPlain || flagJSON)

		level := logging.LevelWarn
		if flagVerbose {
			level = logging.LevelDebug
		}
		logger = logging.New(logging.Config{
			Level:   level,
			Service: "cli",
		})

		if flagMetricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			go func() {
				if err := http.ListenAndServe(flagMetricsAddr, mux); err != nil {
					logger.Warn("metrics server stopped", "error", err)
				}
			}()
		}
	}
}
