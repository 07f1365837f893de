// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package keywords provides keyword extraction and domain pattern matching
// for implicit dependency detection.
//
// # Description
//
// Free text (work item titles and descriptions) is normalized into keyword
// sets, which are then matched against an ordered table of planning domain
// patterns (infrastructure, database, api, ...). Pattern categories declare
// their upstream categories, which is how "item B probably depends on item A"
// is inferred without any declared link.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use. The stop-word set is
// built once at package init from an embedded word list.
package keywords

import (
	_ "embed"
	"strings"
	"unicode"
)

//go:embed stopwords.txt
var stopWordsData string

// minTokenLen is the shortest token kept after normalization.
const minTokenLen = 3

var stopWords = loadStopWords()

// loadStopWords parses the embedded stop-word list into a lookup set.
// Blank lines and lines starting with # are skipped.
func loadStopWords() map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range strings.Split(stopWordsData, "\n") {
		word := strings.TrimSpace(strings.ToLower(line))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}

// Extract normalizes free text into an ordered keyword set.
//
// # Description
//
// Lower-cases the input, splits on any non-letter/non-digit rune, removes
// stop words and tokens shorter than three characters, and de-duplicates
// while preserving first-seen order. The returned slice is never nil.
//
// # Inputs
//
//   - text: Arbitrary free text. Empty input yields an empty slice.
//
// # Outputs
//
//   - []string: Ordered, de-duplicated keywords.
func Extract(text string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	keywords := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if len(tok) < minTokenLen {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		keywords = append(keywords, tok)
	}
	return keywords
}
