// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ai defines the optional self-assessment seam for the planning
// engine.
//
// # Description
//
// Planning components accept a SelfAssessor as an explicit, optional
// dependency. When one is configured its signal blends into the relevant
// scoring factor; when it is absent (nil) every component produces a
// complete result from its deterministic heuristics alone and says so in
// its reasoning text. There is no hidden global: the "AI absent" path is
// exercised by construction.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use.
package ai

import "context"

// AssessmentInput describes the artifact an assessor is asked to judge.
type AssessmentInput struct {
	// Kind names the artifact type (e.g. "backlog-item", "sprint-plan").
	Kind string

	// Title is the short artifact summary.
	Title string

	// Body is the artifact text.
	Body string

	// Goals are sprint or product goals giving the assessor context.
	Goals []string
}

// SelfAssessor supplies an optional model-generated reliability signal.
type SelfAssessor interface {
	// SelfAssessment returns a score in [0,1], or nil when the assessor
	// has no opinion. A non-nil error means the backend failed; callers
	// treat that the same as no signal.
	SelfAssessment(ctx context.Context, input AssessmentInput) (*float64, error)
}

// Signal extracts an assessment, collapsing "no assessor", "no opinion",
// and "backend error" into the single nil-signal case callers care about.
func Signal(ctx context.Context, assessor SelfAssessor, input AssessmentInput) *float64 {
	if assessor == nil {
		return nil
	}
	score, err := assessor.SelfAssessment(ctx, input)
	if err != nil || score == nil {
		return nil
	}
	if *score < 0 || *score > 1 {
		return nil
	}
	return score
}
