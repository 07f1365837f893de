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
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/AleutianPlan/pkg/validation"
	"github.com/AleutianAI/AleutianPlan/services/planning/capacity"
	"github.com/AleutianAI/AleutianPlan/services/planning/graph"
)

// validate is the shared validator instance. Validators are expensive to
// construct and safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// =============================================================================
// INPUT SCHEMA
// =============================================================================

// workItemInput is the JSON shape of one work item.
type workItemInput struct {
	ID           string   `json:"id" validate:"required"`
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Points       int      `json:"points" validate:"gte=0"`
	Priority     string   `json:"priority" validate:"omitempty,oneof=critical high medium low"`
	Labels       []string `json:"labels"`
	Dependencies []string `json:"dependencies"`
}

// backlogInput is the JSON shape of a backlog file.
type backlogInput struct {
	Items []workItemInput `json:"items" validate:"required,min=1,dive"`
}

// teamMemberInput is the JSON shape of one team member.
type teamMemberInput struct {
	ID           string  `json:"id"`
	Name         string  `json:"name" validate:"required"`
	Availability float64 `json:"availability" validate:"gte=0,lte=1"`
}

// historicalSprintInput is the JSON shape of one completed sprint.
type historicalSprintInput struct {
	CompletedPoints float64 `json:"completed_points" validate:"gte=0"`
	PlannedPoints   float64 `json:"planned_points" validate:"gte=0"`
}

// teamInput is the JSON shape of a team/history file for capacity.
type teamInput struct {
	TeamMembers       []teamMemberInput       `json:"team_members" validate:"dive"`
	HistoricalSprints []historicalSprintInput `json:"historical_sprints" validate:"dive"`
}

// =============================================================================
// LOADING
// =============================================================================

// loadInto reads a JSON file into out and validates it.
func loadInto(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("invalid input in %s: %w", path, err)
	}
	return nil
}

// loadBacklog reads and validates a backlog file.
func loadBacklog(path string) ([]graph.WorkItem, error) {
	var in backlogInput
	if err := loadInto(path, &in); err != nil {
		return nil, err
	}

	items := make([]graph.WorkItem, 0, len(in.Items))
	for _, it := range in.Items {
		if err := validation.ValidateItemID(it.ID); err != nil {
			return nil, fmt.Errorf("invalid input in %s: %w", path, err)
		}
		if err := validation.ValidateItemIDs(it.Dependencies); err != nil {
			return nil, fmt.Errorf("invalid input in %s: %w", path, err)
		}
		items = append(items, graph.WorkItem{
			ID:           it.ID,
			Title:        it.Title,
			Description:  it.Description,
			Points:       it.Points,
			Priority:     graph.Priority(it.Priority),
			Labels:       it.Labels,
			Dependencies: it.Dependencies,
		})
	}
	return items, nil
}

// loadTeam reads an optional team/history file into capacity params.
func loadTeam(path string, params *capacity.Params) error {
	if path == "" {
		return nil
	}
	var in teamInput
	if err := loadInto(path, &in); err != nil {
		return err
	}

	for _, m := range in.TeamMembers {
		params.TeamMembers = append(params.TeamMembers, capacity.TeamMember{
			ID:           m.ID,
			Name:         m.Name,
			Availability: m.Availability,
		})
	}
	for _, h := range in.HistoricalSprints {
		params.HistoricalSprints = append(params.HistoricalSprints, capacity.HistoricalSprint{
			CompletedPoints: h.CompletedPoints,
			PlannedPoints:   h.PlannedPoints,
		})
	}
	return nil
}
