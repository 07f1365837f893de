// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "lowercases and strips punctuation",
			text: "Build the API! (REST endpoints)",
			want: []string{"api", "rest", "endpoints"},
		},
		{
			name: "drops stop words and short tokens",
			text: "the db is for all of us",
			want: []string{},
		},
		{
			name: "deduplicates preserving first-seen order",
			text: "database schema database migration schema",
			want: []string{"database", "schema", "migration"},
		},
		{
			name: "keeps alphanumeric tokens",
			text: "upgrade postgres14 cluster",
			want: []string{"upgrade", "postgres14", "cluster"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestExtract_NeverNil(t *testing.T) {
	assert.NotNil(t, Extract(""))
	assert.NotNil(t, Extract("a an of"))
}
