// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package planning is the facade over the planning analytics engine.
//
// # Description
//
// Service wires the analysis components (dependency graph, prioritizer,
// capacity analyzer, estimator, risk assessor, sprint composer, roadmap
// generator) behind one entry point, instruments every call with
// prometheus metrics, and logs through the shared logging package. All
// analysis is deterministic; the optional AI assessor only blends an
// advisory signal into scoring.
//
// # Thread Safety
//
// Service is safe for concurrent use. The calibrator guards its own
// history; every other component is stateless.
package planning

import (
	"context"
	"time"

	"github.com/AleutianAI/AleutianPlan/pkg/logging"
	"github.com/AleutianAI/AleutianPlan/services/planning/ai"
	"github.com/AleutianAI/AleutianPlan/services/planning/capacity"
	"github.com/AleutianAI/AleutianPlan/services/planning/estimation"
	"github.com/AleutianAI/AleutianPlan/services/planning/graph"
	"github.com/AleutianAI/AleutianPlan/services/planning/priority"
	"github.com/AleutianAI/AleutianPlan/services/planning/risk"
	"github.com/AleutianAI/AleutianPlan/services/planning/roadmap"
	"github.com/AleutianAI/AleutianPlan/services/planning/suggest"
)

// Tool names, used for metrics labels and registry lookups.
const (
	ToolAnalyzeDependencies = "analyze_dependencies"
	ToolPrioritizeBacklog   = "prioritize_backlog"
	ToolAnalyzeCapacity     = "analyze_capacity"
	ToolAssessSprintRisks   = "assess_sprint_risks"
	ToolSuggestSprint       = "suggest_sprint"
	ToolEstimateTask        = "estimate_task"
	ToolGenerateRoadmap     = "generate_roadmap"
)

// Service is the planning engine facade.
type Service struct {
	logger   *logging.Logger
	assessor ai.SelfAssessor

	analyzer    *capacity.Analyzer
	prioritizer *priority.Prioritizer
	risks       *risk.Assessor
	composer    *suggest.Composer
	generator   *roadmap.Generator
	calibrator  *estimation.Calibrator
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to logging.Default().
func WithLogger(l *logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithAssessor enables the AI self-assessment signal. Nil keeps the
// pure-heuristic path.
func WithAssessor(a ai.SelfAssessor) Option {
	return func(s *Service) { s.assessor = a }
}

// WithCalibrator replaces the estimation calibrator, typically one
// rehydrated from an estimation.Store.
func WithCalibrator(c *estimation.Calibrator) Option {
	return func(s *Service) { s.calibrator = c }
}

// NewService creates the facade with all components wired.
func NewService(opts ...Option) *Service {
	s := &Service{
		logger:     logging.Default(),
		calibrator: estimation.NewCalibrator(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.analyzer = capacity.NewAnalyzer()
	s.prioritizer = priority.NewPrioritizer(s.assessor)
	s.risks = risk.NewAssessor()
	s.composer = suggest.NewComposer(s.assessor)
	s.generator = roadmap.NewGenerator()
	return s
}

// Calibrator exposes the estimation history, for persistence hand-off.
func (s *Service) Calibrator() *estimation.Calibrator {
	return s.calibrator
}

// DependencyAnalysis is the AnalyzeDependencies result.
type DependencyAnalysis struct {
	Analysis graph.AnalysisResult `json:"analysis"`

	// ImplicitDependencies are keyword-inferred edges, present only when
	// detection was requested.
	ImplicitDependencies []graph.Edge `json:"implicit_dependencies,omitempty"`

	Visualization graph.Visualization `json:"visualization"`
}

// AnalyzeDependencies builds the dependency graph over the items and
// returns ordering, waves, cycles, and critical path. Cyclic input
// degrades to best-effort ordering, never an error.
func (s *Service) AnalyzeDependencies(items []graph.WorkItem, detectImplicit bool) DependencyAnalysis {
	start := time.Now()
	defer observeRequest(ToolAnalyzeDependencies, start, nil)

	g := graph.New()
	g.AddTasks(items)
	var implicit []graph.Edge
	if detectImplicit {
		implicit = g.DetectImplicitDependencies(graph.DefaultImplicitThreshold)
	}

	res := DependencyAnalysis{
		Analysis:             g.Analyze(),
		ImplicitDependencies: implicit,
		Visualization:        g.ExportForVisualization(),
	}
	s.logger.Info("analyzed dependencies",
		"items", len(items),
		"cycles", len(res.Analysis.Cycles),
		"implicit_edges", len(implicit))
	return res
}

// PrioritizeBacklog ranks the backlog by the weighted factor model.
func (s *Service) PrioritizeBacklog(ctx context.Context, params priority.Params) priority.Result {
	start := time.Now()
	defer observeRequest(ToolPrioritizeBacklog, start, nil)

	res := s.prioritizer.Prioritize(ctx, params)
	observeConfidence(ToolPrioritizeBacklog, res.Confidence.Score)
	s.logger.Info("prioritized backlog", "items", len(params.Items), "confidence", res.Confidence.Score)
	return res
}

// AnalyzeCapacity computes sprint capacity from velocity, team
// availability, and history.
func (s *Service) AnalyzeCapacity(params capacity.Params) capacity.SprintCapacity {
	start := time.Now()
	defer observeRequest(ToolAnalyzeCapacity, start, nil)

	res := s.analyzer.Analyze(params)
	observeConfidence(ToolAnalyzeCapacity, res.Confidence.Score)
	s.logger.Info("analyzed capacity",
		"velocity", res.Velocity,
		"recommended_load", res.RecommendedLoad)
	return res
}

// AssessSprintRisks runs the risk rule table over a proposed sprint.
func (s *Service) AssessSprintRisks(params risk.Params) *risk.Result {
	start := time.Now()
	defer observeRequest(ToolAssessSprintRisks, start, nil)

	res := s.risks.Assess(params)
	observeConfidence(ToolAssessSprintRisks, res.Confidence.Score)
	s.logger.Info("assessed sprint risks",
		"items", len(params.Items),
		"risks", len(res.Risks),
		"overall", string(res.OverallRisk))
	return res
}

// SuggestSprint composes a capacity-bounded sprint from the backlog.
func (s *Service) SuggestSprint(ctx context.Context, params suggest.Params) *suggest.Result {
	start := time.Now()
	defer observeRequest(ToolSuggestSprint, start, nil)

	res := s.composer.Suggest(ctx, params)
	observeConfidence(ToolSuggestSprint, res.Confidence.Score)
	s.logger.Info("suggested sprint",
		"candidates", len(params.Items),
		"selected", len(res.Items),
		"points", res.TotalPoints)
	return res
}

// EstimateTask produces a calibrated point estimate for a complexity
// score.
func (s *Service) EstimateTask(params estimation.TaskParams) estimation.Estimate {
	start := time.Now()
	defer observeRequest(ToolEstimateTask, start, nil)

	est := s.calibrator.Estimate(params)
	observeConfidence(ToolEstimateTask, est.Confidence)
	s.logger.Info("estimated task",
		"complexity", params.Complexity,
		"points", est.Points,
		"calibrated", est.Calibrated)
	return est
}

// RecordEstimate logs an estimate into the calibration history.
func (s *Service) RecordEstimate(params estimation.EstimateParams) estimation.Record {
	return s.calibrator.RecordEstimate(params)
}

// RecordActual closes the most recent open estimate for the task.
// Returns false when no open estimate exists.
func (s *Service) RecordActual(taskID string, actualPoints int) bool {
	return s.calibrator.RecordActual(taskID, actualPoints)
}

// CalibrationStats reports historical estimation accuracy.
func (s *Service) CalibrationStats() estimation.AccuracyStats {
	return s.calibrator.AccuracyStats()
}

// GenerateRoadmap slices the dependency waves into sprint-sized phases.
func (s *Service) GenerateRoadmap(params roadmap.Params) *roadmap.Roadmap {
	start := time.Now()
	defer observeRequest(ToolGenerateRoadmap, start, nil)

	rm := s.generator.Generate(params)
	observeConfidence(ToolGenerateRoadmap, rm.Confidence.Score)
	s.logger.Info("generated roadmap",
		"items", len(params.Items),
		"phases", rm.EstimatedSprints)
	return rm
}
