// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package confidence scores how reliable a generated planning artifact is.
//
// # Description
//
// Every analysis component attaches a confidence score to its output so
// downstream consumers can decide whether human review is warranted. Scores
// are 0-100 integers bucketed into coarse tiers (high/medium/low) by
// configurable thresholds. Scoring is a weighted sum over three factors:
// input completeness, an optional AI self-assessment, and pattern match
// strength.
//
// # Thread Safety
//
// All functions are pure; Scorer is immutable after construction. Safe for
// concurrent use.
package confidence

// Tier is a coarse confidence bucket.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Factors are the scoring inputs, each in [0,1].
type Factors struct {
	// InputCompleteness measures how much source material was available.
	InputCompleteness float64 `json:"input_completeness"`

	// AISelfAssessment is the model's own reliability estimate when an AI
	// signal was available, or a heuristic stand-in otherwise.
	AISelfAssessment float64 `json:"ai_self_assessment"`

	// PatternMatch measures how closely the input follows known patterns.
	PatternMatch float64 `json:"pattern_match"`
}

// Weights control the relative contribution of each factor. They are used
// as given; no renormalization is applied.
type Weights struct {
	InputCompleteness float64 `json:"input_completeness"`
	AISelfAssessment  float64 `json:"ai_self_assessment"`
	PatternMatch      float64 `json:"pattern_match"`
}

// DefaultWeights returns the standard factor weighting.
func DefaultWeights() Weights {
	return Weights{
		InputCompleteness: 0.4,
		AISelfAssessment:  0.3,
		PatternMatch:      0.3,
	}
}

// Config holds the tier thresholds.
type Config struct {
	// WarningThreshold is the minimum score for TierHigh; scores below it
	// are flagged for review.
	WarningThreshold int `json:"warning_threshold"`

	// ErrorThreshold is the minimum score for TierMedium.
	ErrorThreshold int `json:"error_threshold"`
}

// DefaultConfig returns the standard thresholds (high >= 70, medium >= 50).
func DefaultConfig() Config {
	return Config{
		WarningThreshold: 70,
		ErrorThreshold:   50,
	}
}

// InputData describes the source material behind a generated section, used
// to derive the input completeness factor.
type InputData struct {
	Description  string   `json:"description,omitempty"`
	Examples     []string `json:"examples,omitempty"`
	Constraints  []string `json:"constraints,omitempty"`
	Context      string   `json:"context,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

// SectionConfidence is the scored reliability of one generated section.
type SectionConfidence struct {
	// SectionID identifies the scored section.
	SectionID string `json:"section_id"`

	// Score is the weighted confidence in [0,100].
	Score int `json:"score"`

	// Tier is the coarse bucket for Score.
	Tier Tier `json:"tier"`

	// Factors are the inputs that produced Score.
	Factors Factors `json:"factors"`

	// NeedsReview is set when Score falls below the warning threshold.
	NeedsReview bool `json:"needs_review"`

	// ClarifyingQuestions suggest what to ask to raise confidence. At most
	// five are emitted.
	ClarifyingQuestions []string `json:"clarifying_questions,omitempty"`

	// Reasoning explains the score in prose.
	Reasoning string `json:"reasoning,omitempty"`
}

// AggregateResult summarizes confidence across many sections.
type AggregateResult struct {
	// OverallScore is the mean section score, 0 for empty input.
	OverallScore int `json:"overall_score"`

	// OverallTier buckets OverallScore.
	OverallTier Tier `json:"overall_tier"`

	// LowConfidenceSections lists the section IDs in TierLow.
	LowConfidenceSections []string `json:"low_confidence_sections"`

	// SectionsNeedingReview counts sections with NeedsReview set.
	SectionsNeedingReview int `json:"sections_needing_review"`
}
