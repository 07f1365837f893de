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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateInputCompleteness(t *testing.T) {
	t.Run("empty input is zero", func(t *testing.T) {
		assert.Zero(t, CalculateInputCompleteness(InputData{}))
	})

	t.Run("rich input saturates at one", func(t *testing.T) {
		data := InputData{
			Description:  strings.Repeat("detail ", 40),
			Examples:     []string{"a", "b", "c", "d"},
			Constraints:  []string{"x", "y"},
			Context:      strings.Repeat("context ", 20),
			Requirements: []string{"r1", "r2", "r3"},
		}
		assert.Equal(t, 1.0, CalculateInputCompleteness(data))
	})

	t.Run("longer description scores higher", func(t *testing.T) {
		short := CalculateInputCompleteness(InputData{Description: "fix bug"})
		long := CalculateInputCompleteness(InputData{Description: strings.Repeat("thorough ", 30)})
		assert.Greater(t, long, short)
	})

	t.Run("always within bounds", func(t *testing.T) {
		inputs := []InputData{
			{},
			{Description: strings.Repeat("x", 10000)},
			{Examples: make([]string, 100), Requirements: make([]string, 100)},
		}
		for _, in := range inputs {
			got := CalculateInputCompleteness(in)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		}
	})
}

func TestCalculateWeightedScore(t *testing.T) {
	t.Run("default weights", func(t *testing.T) {
		score := CalculateWeightedScore(Factors{
			InputCompleteness: 1.0,
			AISelfAssessment:  1.0,
			PatternMatch:      1.0,
		}, nil)
		assert.Equal(t, 100, score)
	})

	t.Run("uniform factors round through", func(t *testing.T) {
		score := CalculateWeightedScore(Factors{
			InputCompleteness: 0.7,
			AISelfAssessment:  0.7,
			PatternMatch:      0.7,
		}, nil)
		assert.Equal(t, 70, score)
	})

	t.Run("custom weights used verbatim", func(t *testing.T) {
		w := Weights{InputCompleteness: 1.0}
		score := CalculateWeightedScore(Factors{InputCompleteness: 0.5, AISelfAssessment: 1.0}, &w)
		assert.Equal(t, 50, score)
	})

	t.Run("bounds hold over factor grid", func(t *testing.T) {
		for _, a := range []float64{0, 0.25, 0.5, 0.75, 1} {
			for _, b := range []float64{0, 0.5, 1} {
				for _, c := range []float64{0, 0.5, 1} {
					s := CalculateWeightedScore(Factors{a, b, c}, nil)
					assert.GreaterOrEqual(t, s, 0)
					assert.LessOrEqual(t, s, 100)
				}
			}
		}
	})
}

func TestTierFor(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, TierHigh, TierFor(70, cfg))
	assert.Equal(t, TierMedium, TierFor(69, cfg))
	assert.Equal(t, TierMedium, TierFor(50, cfg))
	assert.Equal(t, TierLow, TierFor(49, cfg))
	assert.Equal(t, TierHigh, TierFor(100, cfg))
	assert.Equal(t, TierLow, TierFor(0, cfg))
}

func TestGenerateClarifyingQuestions(t *testing.T) {
	t.Run("strong factors yield no questions", func(t *testing.T) {
		qs := GenerateClarifyingQuestions("overview", Factors{0.9, 0.9, 0.9}, nil)
		assert.LessOrEqual(t, len(qs), 2)
	})

	t.Run("low completeness prompts for input", func(t *testing.T) {
		qs := GenerateClarifyingQuestions("overview", Factors{InputCompleteness: 0.2, PatternMatch: 0.9}, nil)
		require.NotEmpty(t, qs)
		assert.Contains(t, qs[0], "overview")
	})

	t.Run("low pattern match prompts about deviation", func(t *testing.T) {
		qs := GenerateClarifyingQuestions("schema", Factors{InputCompleteness: 0.9, PatternMatch: 0.1}, nil)
		require.Len(t, qs, 1)
		assert.Contains(t, qs[0], "standard pattern")
	})

	t.Run("ai uncertain areas folded in", func(t *testing.T) {
		qs := GenerateClarifyingQuestions("api", Factors{0.9, 0.9, 0.9}, []string{"auth model"})
		require.Len(t, qs, 1)
		assert.Contains(t, qs[0], "auth model")
	})

	t.Run("capped at five", func(t *testing.T) {
		areas := []string{"a", "b", "c", "d", "e", "f"}
		qs := GenerateClarifyingQuestions("x", Factors{}, areas)
		assert.Len(t, qs, maxClarifyingQuestions)
	})
}

func TestScorer_CalculateSectionConfidence(t *testing.T) {
	scorer := NewScorer(Config{})

	t.Run("high confidence section", func(t *testing.T) {
		sc := scorer.CalculateSectionConfidence(SectionParams{
			SectionID: "sec-1",
			Factors:   Factors{0.9, 0.8, 0.9},
		})
		assert.Equal(t, "sec-1", sc.SectionID)
		assert.Equal(t, TierHigh, sc.Tier)
		assert.False(t, sc.NeedsReview)
		assert.NotEmpty(t, sc.Reasoning)
	})

	t.Run("needs review below warning threshold", func(t *testing.T) {
		sc := scorer.CalculateSectionConfidence(SectionParams{
			SectionID: "sec-2",
			Factors:   Factors{0.3, 0.4, 0.3},
		})
		assert.True(t, sc.NeedsReview)
		assert.NotEmpty(t, sc.ClarifyingQuestions)
	})

	t.Run("custom thresholds respected", func(t *testing.T) {
		strict := NewScorer(Config{WarningThreshold: 90, ErrorThreshold: 60})
		sc := strict.CalculateSectionConfidence(SectionParams{
			SectionID: "sec-3",
			Factors:   Factors{0.8, 0.8, 0.8},
		})
		assert.Equal(t, TierMedium, sc.Tier)
		assert.True(t, sc.NeedsReview)
	})
}

func TestScorer_Aggregate(t *testing.T) {
	scorer := NewScorer(Config{})

	t.Run("empty input", func(t *testing.T) {
		agg := scorer.Aggregate(nil)
		assert.Zero(t, agg.OverallScore)
		assert.Equal(t, TierLow, agg.OverallTier)
		assert.Empty(t, agg.LowConfidenceSections)
		assert.Zero(t, agg.SectionsNeedingReview)
	})

	t.Run("mean of scores with low sections listed", func(t *testing.T) {
		sections := []SectionConfidence{
			{SectionID: "a", Score: 90, Tier: TierHigh},
			{SectionID: "b", Score: 40, Tier: TierLow, NeedsReview: true},
			{SectionID: "c", Score: 60, Tier: TierMedium, NeedsReview: true},
		}
		agg := scorer.Aggregate(sections)
		assert.Equal(t, 63, agg.OverallScore)
		assert.Equal(t, TierMedium, agg.OverallTier)
		assert.Equal(t, []string{"b"}, agg.LowConfidenceSections)
		assert.Equal(t, 2, agg.SectionsNeedingReview)
	})
}
