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
	"fmt"
	"strings"
)

// Pattern describes a planning domain category, the keywords that signal it,
// and the categories work in this category typically depends on.
type Pattern struct {
	// Category is the pattern identifier (e.g. "database").
	Category string

	// Keywords are the signals for this category.
	Keywords []string

	// DependsOn lists upstream categories this category typically follows.
	DependsOn []string
}

// DependencySignal is the result of checking whether one keyword set
// plausibly depends on another.
type DependencySignal struct {
	// Likely indicates a dependency relationship was inferred.
	Likely bool

	// Confidence is the strength of the inference in [0,1].
	Confidence float64

	// Reason is a human-readable explanation of the inference.
	Reason string
}

// patternTable is the ordered domain pattern table. Order matters: the first
// matching entry wins, so more specific categories come before broader ones.
var patternTable = []Pattern{
	{
		Category:  "infrastructure",
		Keywords:  []string{"infrastructure", "environment", "provision", "terraform", "docker", "kubernetes", "cluster", "pipeline", "setup"},
		DependsOn: nil,
	},
	{
		Category:  "database",
		Keywords:  []string{"database", "schema", "migration", "sql", "postgres", "storage", "table", "query"},
		DependsOn: []string{"infrastructure"},
	},
	{
		Category:  "api",
		Keywords:  []string{"api", "endpoint", "route", "rest", "graphql", "grpc", "backend", "service"},
		DependsOn: []string{"database"},
	},
	{
		Category:  "frontend",
		Keywords:  []string{"frontend", "component", "page", "screen", "form", "button", "css", "react", "render"},
		DependsOn: []string{"api"},
	},
	{
		Category:  "implementation",
		Keywords:  []string{"implement", "build", "create", "develop", "feature", "add", "code"},
		DependsOn: nil,
	},
	{
		Category:  "testing",
		Keywords:  []string{"test", "testing", "coverage", "unit", "integration", "verify", "regression"},
		DependsOn: []string{"implementation"},
	},
	{
		Category:  "documentation",
		Keywords:  []string{"document", "documentation", "readme", "guide", "docs", "manual", "changelog"},
		DependsOn: []string{"testing"},
	},
	{
		Category:  "deployment",
		Keywords:  []string{"deployment", "deploy", "release", "launch", "rollout", "publish", "ship"},
		DependsOn: []string{"documentation"},
	},
}

// Patterns returns the ordered domain pattern table.
//
// The returned slice is a copy; callers may inspect or extend it without
// affecting matching behavior.
func Patterns() []Pattern {
	out := make([]Pattern, len(patternTable))
	copy(out, patternTable)
	return out
}

// FindMatchingPattern returns the first pattern with at least one keyword in
// common with the given keyword set, and true on a match.
func FindMatchingPattern(kws []string) (Pattern, bool) {
	set := make(map[string]struct{}, len(kws))
	for _, k := range kws {
		set[k] = struct{}{}
	}
	for _, p := range patternTable {
		for _, pk := range p.Keywords {
			if _, ok := set[pk]; ok {
				return p, true
			}
		}
	}
	return Pattern{}, false
}

// CheckKeywordDependency determines whether work B plausibly depends on
// work A from their keyword sets alone.
//
// # Description
//
// Both keyword sets are matched against the pattern table. A dependency is
// inferred when A's category appears in B's pattern's DependsOn list.
// Confidence starts at 0.5 and rises with the number of matched keywords on
// each side (stronger signal on either side, stronger inference), capped at
// 0.9 so an inferred edge never outweighs a declared one.
//
// # Inputs
//
//   - aKeywords: Keywords of the candidate upstream item.
//   - bKeywords: Keywords of the candidate downstream item.
//
// # Outputs
//
//   - DependencySignal: Likely=false with zero confidence when either side
//     has no pattern match or the categories are unrelated.
func CheckKeywordDependency(aKeywords, bKeywords []string) DependencySignal {
	aPattern, aOK := FindMatchingPattern(aKeywords)
	bPattern, bOK := FindMatchingPattern(bKeywords)
	if !aOK || !bOK {
		return DependencySignal{Reason: "no domain pattern matched"}
	}

	upstream := false
	for _, dep := range bPattern.DependsOn {
		if dep == aPattern.Category {
			upstream = true
			break
		}
	}
	if !upstream {
		return DependencySignal{
			Reason: fmt.Sprintf("%s work does not typically follow %s work", bPattern.Category, aPattern.Category),
		}
	}

	confidence := 0.5 + 0.2*matchStrength(aKeywords, aPattern) + 0.2*matchStrength(bKeywords, bPattern)
	return DependencySignal{
		Likely:     true,
		Confidence: confidence,
		Reason: fmt.Sprintf("%s work typically depends on %s work (matched %q)",
			bPattern.Category, aPattern.Category, strings.Join(bPattern.DependsOn, ",")),
	}
}

// matchStrength returns the fraction of signal a keyword set carries for a
// pattern: 0.5 for one matched keyword, 1.0 for two or more.
func matchStrength(kws []string, p Pattern) float64 {
	set := make(map[string]struct{}, len(p.Keywords))
	for _, k := range p.Keywords {
		set[k] = struct{}{}
	}
	matches := 0
	for _, k := range kws {
		if _, ok := set[k]; ok {
			matches++
		}
	}
	if matches >= 2 {
		return 1.0
	}
	return float64(matches) / 2
}
