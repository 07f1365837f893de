// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package capacity computes usable sprint capacity from team velocity and
// availability.
//
// # Description
//
// Velocity is either supplied or derived from historical sprint data with
// outlier filtering and recency weighting. Raw capacity is scaled by team
// availability, then a safety buffer is withheld to absorb estimation error
// and interruptions. Every result carries a confidence score following the
// confidence package contract.
//
// # Thread Safety
//
// The analyzer is stateless; all functions are safe for concurrent use.
package capacity

import "github.com/AleutianAI/AleutianPlan/services/planning/confidence"

// AutoVelocity requests velocity derivation from historical sprints.
const AutoVelocity = "auto"

// DefaultVelocity is used when velocity is "auto" and no history exists.
const DefaultVelocity = 20.0

// DefaultBufferPercentage is the standard capacity buffer.
const DefaultBufferPercentage = 0.20

// lowAvailabilityThreshold is where the sub-linear contribution discount
// starts: below it a fractional person adds coordination overhead that
// eats into their nominal share.
const lowAvailabilityThreshold = 0.3

// TeamMember describes one person's sprint availability.
type TeamMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Availability is the fraction of the sprint the member is available,
	// in [0,1]. Out-of-range values are clamped.
	Availability float64 `json:"availability"`
}

// HistoricalSprint is one completed sprint's outcome.
type HistoricalSprint struct {
	CompletedPoints float64 `json:"completed_points"`
	PlannedPoints   float64 `json:"planned_points,omitempty"`
}

// Params are the capacity analysis inputs.
type Params struct {
	// Velocity is a numeric value (as a string) or AutoVelocity.
	Velocity string `json:"velocity"`

	// SprintDurationDays is informational context for the reasoning text.
	SprintDurationDays int `json:"sprint_duration_days"`

	// TeamMembers scale raw velocity by availability. An empty team means
	// full availability is assumed.
	TeamMembers []TeamMember `json:"team_members,omitempty"`

	// HistoricalSprints feed auto velocity and the confidence score.
	HistoricalSprints []HistoricalSprint `json:"historical_sprints,omitempty"`

	// BufferPercentage overrides the default 0.20 buffer. Zero means
	// default; negative values are invalid and clamp to zero buffer.
	BufferPercentage *float64 `json:"buffer_percentage,omitempty"`
}

// MemberAvailability is the per-member slice of the availability report.
type MemberAvailability struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Availability float64 `json:"availability"`

	// Contribution is the member's effective share after the low
	// availability discount.
	Contribution float64 `json:"contribution"`
}

// TeamAvailability aggregates member availability.
type TeamAvailability struct {
	Members []MemberAvailability `json:"members"`

	// Average is the mean raw availability across members.
	Average float64 `json:"average"`

	// EffectiveFactor is the mean discounted contribution, applied to
	// velocity.
	EffectiveFactor float64 `json:"effective_factor"`
}

// Buffer describes the withheld safety margin.
type Buffer struct {
	Percentage float64 `json:"percentage"`
	Reasoning  string  `json:"reasoning"`
}

// SprintCapacity is the analysis result.
type SprintCapacity struct {
	// TotalPoints is availability-scaled velocity.
	TotalPoints int `json:"total_points"`

	// RecommendedLoad is TotalPoints with the buffer withheld.
	RecommendedLoad int `json:"recommended_load"`

	// Velocity is the velocity figure actually used.
	Velocity float64 `json:"velocity"`

	// VelocityDerived is true when velocity came from history ("auto").
	VelocityDerived bool `json:"velocity_derived"`

	TeamAvailability TeamAvailability             `json:"team_availability"`
	Buffer           Buffer                       `json:"buffer"`
	Confidence       confidence.SectionConfidence `json:"confidence"`
}
