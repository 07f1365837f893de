// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package confidence

import (
	"fmt"
	"math"
)

// maxClarifyingQuestions caps the question list per section.
const maxClarifyingQuestions = 5

// lowFactorThreshold marks a factor as weak enough to prompt about.
const lowFactorThreshold = 0.5

// CalculateInputCompleteness derives a [0,1] completeness factor from the
// source material behind a section.
//
// Longer descriptions and context saturate their contribution; example,
// constraint, and requirement counts contribute proportionally up to a cap.
func CalculateInputCompleteness(data InputData) float64 {
	score := 0.0
	score += 0.30 * saturate(float64(len(data.Description)), 200)
	score += 0.20 * saturate(float64(len(data.Examples)), 3)
	score += 0.15 * saturate(float64(len(data.Constraints)), 2)
	score += 0.15 * saturate(float64(len(data.Context)), 100)
	score += 0.20 * saturate(float64(len(data.Requirements)), 3)
	return clamp01(score)
}

// saturate maps value linearly onto [0,1], reaching 1 at full.
func saturate(value, full float64) float64 {
	if value >= full {
		return 1
	}
	if value <= 0 {
		return 0
	}
	return value / full
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// CalculateWeightedScore computes round(100 * sum(w_i * f_i)) clamped to
// [0,100]. Pass nil weights for the defaults.
func CalculateWeightedScore(factors Factors, weights *Weights) int {
	w := DefaultWeights()
	if weights != nil {
		w = *weights
	}
	raw := w.InputCompleteness*factors.InputCompleteness +
		w.AISelfAssessment*factors.AISelfAssessment +
		w.PatternMatch*factors.PatternMatch
	score := int(math.Round(100 * raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// TierFor buckets a score using the given thresholds.
func TierFor(score int, cfg Config) Tier {
	switch {
	case score >= cfg.WarningThreshold:
		return TierHigh
	case score >= cfg.ErrorThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// GenerateClarifyingQuestions suggests questions that would raise a weak
// section's confidence.
//
// # Description
//
// Questions are ordered by leverage: missing input first, then deviation
// from standard patterns, then any areas the AI flagged as uncertain. At
// most five questions are returned; when every factor is strong the list is
// empty or near-empty.
func GenerateClarifyingQuestions(sectionName string, factors Factors, aiUncertainAreas []string) []string {
	var questions []string

	if factors.InputCompleteness < lowFactorThreshold {
		questions = append(questions,
			fmt.Sprintf("Can you provide more detail about %s?", sectionName),
			fmt.Sprintf("Are there examples or constraints that should shape %s?", sectionName),
		)
	}
	if factors.PatternMatch < lowFactorThreshold {
		questions = append(questions,
			fmt.Sprintf("Does %s intentionally deviate from the standard pattern?", sectionName))
	}
	for _, area := range aiUncertainAreas {
		questions = append(questions, fmt.Sprintf("Can you clarify: %s?", area))
	}

	if len(questions) > maxClarifyingQuestions {
		questions = questions[:maxClarifyingQuestions]
	}
	return questions
}

// Scorer produces section confidence reports with a fixed configuration.
type Scorer struct {
	cfg     Config
	weights Weights
}

// NewScorer creates a scorer. A zero-value config is replaced by defaults.
func NewScorer(cfg Config) *Scorer {
	if cfg.WarningThreshold == 0 && cfg.ErrorThreshold == 0 {
		cfg = DefaultConfig()
	}
	return &Scorer{cfg: cfg, weights: DefaultWeights()}
}

// WithWeights overrides the factor weights and returns the scorer.
func (s *Scorer) WithWeights(w Weights) *Scorer {
	s.weights = w
	return s
}

// SectionParams are the inputs to CalculateSectionConfidence.
type SectionParams struct {
	// SectionID identifies the section being scored.
	SectionID string

	// Factors are the scoring inputs.
	Factors Factors

	// AIUncertainAreas are uncertainty notes from an AI signal, folded into
	// the clarifying questions. Optional.
	AIUncertainAreas []string

	// Reasoning overrides the generated reasoning text. Optional.
	Reasoning string
}

// CalculateSectionConfidence scores one section.
func (s *Scorer) CalculateSectionConfidence(params SectionParams) SectionConfidence {
	score := CalculateWeightedScore(params.Factors, &s.weights)
	tier := TierFor(score, s.cfg)

	reasoning := params.Reasoning
	if reasoning == "" {
		reasoning = fmt.Sprintf("weighted factor score %d/100 (completeness %.2f, self-assessment %.2f, pattern match %.2f)",
			score, params.Factors.InputCompleteness, params.Factors.AISelfAssessment, params.Factors.PatternMatch)
	}

	return SectionConfidence{
		SectionID:           params.SectionID,
		Score:               score,
		Tier:                tier,
		Factors:             params.Factors,
		NeedsReview:         score < s.cfg.WarningThreshold,
		ClarifyingQuestions: GenerateClarifyingQuestions(params.SectionID, params.Factors, params.AIUncertainAreas),
		Reasoning:           reasoning,
	}
}

// Aggregate summarizes confidence across sections. The overall score is the
// mean of section scores; an empty input aggregates to zero.
func (s *Scorer) Aggregate(sections []SectionConfidence) AggregateResult {
	if len(sections) == 0 {
		return AggregateResult{OverallTier: TierLow, LowConfidenceSections: []string{}}
	}

	sum := 0
	needReview := 0
	low := []string{}
	for _, sec := range sections {
		sum += sec.Score
		if sec.NeedsReview {
			needReview++
		}
		if sec.Tier == TierLow {
			low = append(low, sec.SectionID)
		}
	}

	overall := int(math.Round(float64(sum) / float64(len(sections))))
	return AggregateResult{
		OverallScore:          overall,
		OverallTier:           TierFor(overall, s.cfg),
		LowConfidenceSections: low,
		SectionsNeedingReview: needReview,
	}
}
