// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ai

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// assessmentSystemPrompt keeps the model's answer machine-parseable.
const assessmentSystemPrompt = "You assess software planning artifacts. " +
	"Reply with a single number between 0 and 1 indicating how confident " +
	"you are that the artifact is well-scoped and correctly prioritized. " +
	"No other text."

// OpenAIAssessor implements SelfAssessor against the OpenAI chat API.
//
// The planning engine works fully without it: construct one only when a
// caller explicitly asks for AI-enhanced scoring.
type OpenAIAssessor struct {
	client *openai.Client
	model  string
}

// NewOpenAIAssessor builds an assessor from the environment
// (OPENAI_API_KEY, optional OPENAI_MODEL).
func NewOpenAIAssessor() (*OpenAIAssessor, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIAssessor{client: openai.NewClient(apiKey), model: model}, nil
}

// SelfAssessment implements SelfAssessor.
func (a *OpenAIAssessor) SelfAssessment(ctx context.Context, input AssessmentInput) (*float64, error) {
	prompt := fmt.Sprintf("Artifact kind: %s\nTitle: %s\n\n%s", input.Kind, input.Title, input.Body)
	if len(input.Goals) > 0 {
		prompt += "\n\nGoals:\n- " + strings.Join(input.Goals, "\n- ")
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assessmentSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("self-assessment call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("self-assessment returned no choices")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil || score < 0 || score > 1 {
		// An unparseable answer is "no opinion", not a failure.
		return nil, nil
	}
	return &score, nil
}

var _ SelfAssessor = (*OpenAIAssessor)(nil)
