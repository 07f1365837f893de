// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for security-critical operations.
//
// This package contains validators for user-provided inputs that end up in
// storage keys, file paths, or rendered output. Using these validators
// prevents key collisions, path traversal, and terminal escape injection.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// itemIDPattern matches valid work item identifiers.
// Allows: letters, digits, dots (v2.1), underscores, hyphens (PROJ-42)
// Max length: 64 characters (covers common issue tracker schemes)
var itemIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._\-]{0,63}$`)

// ValidateItemID validates a work item identifier before it is used as a
// storage key or embedded in rendered output.
//
// Valid identifiers:
//   - 1-64 characters
//   - Letters A-Z a-z
//   - Digits 0-9
//   - Dots (.), underscores (_), hyphens (-) after the first character
//
// Returns an error if the identifier is invalid.
//
// Example:
//
//	if err := validation.ValidateItemID(id); err != nil {
//	    return nil, fmt.Errorf("invalid item id: %w", err)
//	}
//	// Safe to use as a storage key
func ValidateItemID(id string) error {
	if id == "" {
		return fmt.Errorf("item id cannot be empty")
	}

	if !itemIDPattern.MatchString(id) {
		return fmt.Errorf("invalid item id: %q (must be 1-64 alphanumeric chars, dots, underscores, or hyphens)", id)
	}

	return nil
}

// ValidateItemIDs validates multiple work item identifiers.
// Returns an error listing all invalid identifiers if any fail validation.
func ValidateItemIDs(ids []string) error {
	var invalid []string
	for _, id := range ids {
		if err := ValidateItemID(id); err != nil {
			invalid = append(invalid, id)
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid item ids: %v", invalid)
	}
	return nil
}

// SanitizeItemID normalizes and validates a work item identifier.
// Returns the trimmed identifier if valid, or an error if invalid.
//
// Use this when accepting identifiers from interactive input:
//
//	safeID, err := validation.SanitizeItemID(userInput)
//	if err != nil {
//	    return err
//	}
func SanitizeItemID(id string) (string, error) {
	normalized := strings.TrimSpace(id)
	if err := ValidateItemID(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
