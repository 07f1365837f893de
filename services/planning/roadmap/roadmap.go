// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package roadmap turns a backlog into a phased delivery plan.
//
// # Description
//
// The generator orders work by dependency waves, then slices each wave
// into sprint-sized phases bounded by the recommended capacity load.
// Phases never mix waves, so every phase only depends on earlier phases.
// The timeline estimate is phases times sprint duration.
package roadmap

import (
	"fmt"

	"github.com/AleutianAI/AleutianPlan/services/planning/capacity"
	"github.com/AleutianAI/AleutianPlan/services/planning/confidence"
	"github.com/AleutianAI/AleutianPlan/services/planning/graph"
)

const (
	// defaultItemPoints sizes unestimated items when packing phases.
	defaultItemPoints = 3

	// defaultSprintDays is assumed when the caller gives no duration.
	defaultSprintDays = 14
)

// Params are the roadmap inputs.
type Params struct {
	// Items is the work to plan.
	Items []graph.WorkItem `json:"items"`

	// Capacity configures the capacity analysis bounding each phase.
	Capacity capacity.Params `json:"capacity"`

	// DetectImplicit enables keyword-based implicit dependency detection
	// before wave computation.
	DetectImplicit bool `json:"detect_implicit,omitempty"`
}

// PhaseItem is one item placed in a phase.
type PhaseItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Points int    `json:"points"`
}

// Phase is one sprint-sized slice of the plan.
type Phase struct {
	// Number is 1-based phase order.
	Number int `json:"number"`

	// Wave is the dependency wave the phase was cut from.
	Wave int `json:"wave"`

	Items  []PhaseItem `json:"items"`
	Points int         `json:"points"`
}

// Roadmap is the phased delivery plan.
type Roadmap struct {
	Phases []Phase `json:"phases"`

	// EstimatedSprints is the phase count.
	EstimatedSprints int `json:"estimated_sprints"`

	// EstimatedDays is sprints times sprint duration.
	EstimatedDays int `json:"estimated_days"`

	// CriticalPath is the longest dependency chain, start to finish.
	CriticalPath []string `json:"critical_path"`

	// Capacity is the analysis that bounded the phases.
	Capacity capacity.SprintCapacity `json:"capacity"`

	Reasoning  string                       `json:"reasoning"`
	Confidence confidence.SectionConfidence `json:"confidence"`
}

// Generator builds roadmaps.
type Generator struct {
	analyzer *capacity.Analyzer
	scorer   *confidence.Scorer
}

// NewGenerator creates a roadmap generator.
func NewGenerator() *Generator {
	return &Generator{
		analyzer: capacity.NewAnalyzer(),
		scorer:   confidence.NewScorer(confidence.Config{}),
	}
}

// Generate plans the given work into dependency-ordered, capacity-bounded
// phases.
//
// # Inputs
//
//   - params: Work items plus capacity configuration.
//
// # Outputs
//
//   - *Roadmap: Phases in execution order with a timeline estimate. An
//     empty input yields an empty plan, never an error.
func (g *Generator) Generate(params Params) *Roadmap {
	sc := g.analyzer.Analyze(params.Capacity)

	tg := graph.New()
	tg.AddTasks(params.Items)
	if params.DetectImplicit {
		tg.DetectImplicitDependencies(graph.DefaultImplicitThreshold)
	}

	byID := make(map[string]graph.WorkItem, len(params.Items))
	for _, it := range params.Items {
		byID[it.ID] = it
	}

	phases := packPhases(tg.ParallelGroups(), byID, sc.RecommendedLoad)

	days := params.Capacity.SprintDurationDays
	if days <= 0 {
		days = defaultSprintDays
	}

	rm := &Roadmap{
		Phases:           phases,
		EstimatedSprints: len(phases),
		EstimatedDays:    len(phases) * days,
		CriticalPath:     tg.CriticalPath(),
		Capacity:         sc,
		Reasoning: fmt.Sprintf("packed %d item(s) into %d phase(s) of at most %d point(s) each; dependency waves bound phase boundaries",
			len(params.Items), len(phases), sc.RecommendedLoad),
	}
	rm.Confidence = g.scoreConfidence(params, rm)
	return rm
}

// packPhases slices each wave into phases no larger than the load. An
// item larger than the load still gets a phase of its own; items are
// never split.
func packPhases(waves [][]string, byID map[string]graph.WorkItem, load int) []Phase {
	var phases []Phase
	for waveIdx, wave := range waves {
		cur := Phase{Wave: waveIdx + 1}
		for _, id := range wave {
			it := byID[id]
			pts := it.Points
			if pts <= 0 {
				pts = defaultItemPoints
			}

			if len(cur.Items) > 0 && load > 0 && cur.Points+pts > load {
				phases = append(phases, cur)
				cur = Phase{Wave: waveIdx + 1}
			}
			cur.Items = append(cur.Items, PhaseItem{ID: id, Title: it.Title, Points: pts})
			cur.Points += pts
		}
		if len(cur.Items) > 0 {
			phases = append(phases, cur)
		}
	}

	for i := range phases {
		phases[i].Number = i + 1
	}
	return phases
}

func (g *Generator) scoreConfidence(params Params, rm *Roadmap) confidence.SectionConfidence {
	completeness := 0.5
	if n := len(params.Items); n > 0 {
		sized := 0
		for _, it := range params.Items {
			if it.Points > 0 {
				sized++
			}
		}
		completeness = 0.4 + 0.4*float64(sized)/float64(n)
	}
	if len(params.Capacity.HistoricalSprints) >= 3 {
		completeness += 0.2
	}
	if completeness > 1 {
		completeness = 1
	}

	return g.scorer.CalculateSectionConfidence(confidence.SectionParams{
		SectionID: "roadmap",
		Factors: confidence.Factors{
			InputCompleteness: completeness,
			PatternMatch:      0.8,
			AISelfAssessment:  0.5,
		},
		Reasoning: fmt.Sprintf("algorithmic wave packing into %d phase(s)", rm.EstimatedSprints),
	})
}
