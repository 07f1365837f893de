// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package capacity

import (
	"fmt"
	"math"
	"strconv"

	"github.com/AleutianAI/AleutianPlan/services/planning/confidence"
)

// Analyzer computes sprint capacity.
type Analyzer struct {
	scorer *confidence.Scorer
}

// NewAnalyzer creates an analyzer with default confidence thresholds.
func NewAnalyzer() *Analyzer {
	return &Analyzer{scorer: confidence.NewScorer(confidence.Config{})}
}

// Analyze computes usable capacity for a sprint.
//
// # Description
//
// Resolves velocity (given or derived from history), scales it by team
// availability with a sub-linear discount for members below 30%
// availability, withholds the buffer, and attaches a confidence score.
// Degenerate inputs (no team, no history) resolve to defined defaults
// rather than failing.
func (a *Analyzer) Analyze(params Params) SprintCapacity {
	velocity, derived := a.resolveVelocity(params)
	team := analyzeTeam(params.TeamMembers)

	totalPoints := int(math.Round(velocity * team.EffectiveFactor))
	if totalPoints < 0 {
		totalPoints = 0
	}

	buffer := DefaultBufferPercentage
	if params.BufferPercentage != nil {
		buffer = *params.BufferPercentage
		if buffer < 0 {
			buffer = 0
		}
		if buffer > 1 {
			buffer = 1
		}
	}

	recommended := int(math.Round(float64(totalPoints) * (1 - buffer)))

	result := SprintCapacity{
		TotalPoints:      totalPoints,
		RecommendedLoad:  recommended,
		Velocity:         velocity,
		VelocityDerived:  derived,
		TeamAvailability: team,
		Buffer: Buffer{
			Percentage: buffer,
			Reasoning:  bufferReasoning(buffer),
		},
	}
	result.Confidence = a.scoreConfidence(params, team)
	return result
}

// resolveVelocity parses the velocity parameter, deriving from history for
// "auto" (or empty) input.
func (a *Analyzer) resolveVelocity(params Params) (velocity float64, derived bool) {
	if params.Velocity != "" && params.Velocity != AutoVelocity {
		v, err := strconv.ParseFloat(params.Velocity, 64)
		if err == nil && v >= 0 {
			return v, false
		}
		// Unparseable velocity degrades to auto derivation.
	}
	return deriveVelocity(params.HistoricalSprints), true
}

// deriveVelocity computes a recency-weighted average of completed points,
// after discarding statistical outliers.
//
// Outliers are values deviating more than 50% from the min/max-trimmed
// mean; a single bad sprint (production incident, mass vacation) should
// not drag the whole forecast. The most recent sprint carries the highest
// weight.
func deriveVelocity(history []HistoricalSprint) float64 {
	if len(history) == 0 {
		return DefaultVelocity
	}

	values := make([]float64, 0, len(history))
	for _, h := range history {
		if h.CompletedPoints > 0 {
			values = append(values, h.CompletedPoints)
		}
	}
	if len(values) == 0 {
		return DefaultVelocity
	}

	kept := filterOutliers(values)

	var weightedSum, weightTotal float64
	for i, v := range kept {
		w := float64(i + 1) // history is oldest-first; later entries weigh more
		weightedSum += v * w
		weightTotal += w
	}
	return weightedSum / weightTotal
}

// filterOutliers drops values deviating more than 50% from the trimmed
// mean. With fewer than four samples there is too little signal to call
// anything an outlier.
func filterOutliers(values []float64) []float64 {
	if len(values) < 4 {
		return values
	}

	minIdx, maxIdx := 0, 0
	for i, v := range values {
		if v < values[minIdx] {
			minIdx = i
		}
		if v > values[maxIdx] {
			maxIdx = i
		}
	}

	var trimmedSum float64
	trimmedCount := 0
	for i, v := range values {
		if i == minIdx || i == maxIdx {
			continue
		}
		trimmedSum += v
		trimmedCount++
	}
	trimmedMean := trimmedSum / float64(trimmedCount)

	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if math.Abs(v-trimmedMean) <= 0.5*trimmedMean {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return values
	}
	return kept
}

// analyzeTeam computes per-member contributions and the aggregate factors.
//
// Members at or above the low availability threshold contribute linearly.
// Below it the contribution is quadratic (a²/0.3): very fractional people
// lose proportionally more to context switching, so crediting them
// linearly would overstate capacity.
func analyzeTeam(members []TeamMember) TeamAvailability {
	if len(members) == 0 {
		return TeamAvailability{Average: 1.0, EffectiveFactor: 1.0}
	}

	team := TeamAvailability{Members: make([]MemberAvailability, 0, len(members))}
	var availSum, contribSum float64
	for _, m := range members {
		avail := math.Min(1, math.Max(0, m.Availability))
		contribution := avail
		if avail < lowAvailabilityThreshold {
			contribution = avail * avail / lowAvailabilityThreshold
		}
		availSum += avail
		contribSum += contribution
		team.Members = append(team.Members, MemberAvailability{
			ID:           m.ID,
			Name:         m.Name,
			Availability: avail,
			Contribution: contribution,
		})
	}
	team.Average = availSum / float64(len(members))
	team.EffectiveFactor = contribSum / float64(len(members))
	return team
}

// bufferReasoning generates the human-readable buffer explanation.
func bufferReasoning(buffer float64) string {
	pct := int(math.Round(buffer * 100))
	reasoning := fmt.Sprintf("withholding %d%% of raw capacity for estimation error and interruptions", pct)
	switch {
	case buffer < 0.15:
		reasoning += fmt.Sprintf("; warning: a %d%% buffer leaves little slack and raises delivery risk", pct)
	case buffer > 0.30:
		reasoning += fmt.Sprintf("; note: a %d%% buffer is conservative and may leave capacity unused", pct)
	}
	return reasoning
}

// scoreConfidence derives the result confidence from input quality.
func (a *Analyzer) scoreConfidence(params Params, team TeamAvailability) confidence.SectionConfidence {
	completeness := 0.4
	if len(params.HistoricalSprints) >= 3 {
		completeness += 0.4
	} else {
		completeness += 0.1 * float64(len(params.HistoricalSprints))
	}
	if len(params.TeamMembers) > 0 {
		completeness += 0.2
	}

	wellStaffed := 0
	for _, m := range team.Members {
		if m.Availability >= 0.5 {
			wellStaffed++
		}
	}
	pattern := 0.5 * team.Average
	if len(team.Members) > 0 {
		pattern += 0.5 * float64(wellStaffed) / float64(len(team.Members))
	} else {
		pattern += 0.3
	}

	return a.scorer.CalculateSectionConfidence(confidence.SectionParams{
		SectionID: "sprint-capacity",
		Factors: confidence.Factors{
			InputCompleteness: math.Min(1, completeness),
			AISelfAssessment:  0.5, // heuristic stand-in, no AI signal in capacity math
			PatternMatch:      math.Min(1, pattern),
		},
		Reasoning: fmt.Sprintf("algorithmic capacity estimate from %d historical sprints and %d team members",
			len(params.HistoricalSprints), len(params.TeamMembers)),
	})
}

// RecommendedBuffer suggests a buffer percentage from historical delivery
// variance.
//
// With fewer than two usable data points the default applies. Otherwise
// the coefficient of variation of completed/planned ratios decides:
// volatile teams get a bigger cushion, stable teams keep the default.
func RecommendedBuffer(history []HistoricalSprint) float64 {
	var ratios []float64
	for _, h := range history {
		if h.PlannedPoints > 0 {
			ratios = append(ratios, h.CompletedPoints/h.PlannedPoints)
		}
	}
	if len(ratios) < 2 {
		return DefaultBufferPercentage
	}

	var sum float64
	for _, r := range ratios {
		sum += r
	}
	mean := sum / float64(len(ratios))
	if mean == 0 {
		return DefaultBufferPercentage
	}

	var variance float64
	for _, r := range ratios {
		variance += (r - mean) * (r - mean)
	}
	stddev := math.Sqrt(variance / float64(len(ratios)))
	cv := stddev / mean

	switch {
	case cv > 0.25:
		return 0.30
	case cv > 0.15:
		return 0.25
	default:
		return DefaultBufferPercentage
	}
}
