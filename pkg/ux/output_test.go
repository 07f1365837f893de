// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// Helper to capture stdout
func captureStdout(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// Helper to capture stderr
func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// =============================================================================
// Icon.Render Tests
// =============================================================================

func TestIcon_Render_NonEmpty(t *testing.T) {
	icons := []Icon{IconSuccess, IconWarning, IconError, IconPending, IconArrow, IconBullet}
	for _, icon := range icons {
		if icon.Render() == "" {
			t.Errorf("expected non-empty render for icon %q", string(icon))
		}
	}
}

// =============================================================================
// Plain Mode Tests
// =============================================================================

func TestSetPlain(t *testing.T) {
	SetPlain(true)
	defer SetPlain(false)

	if !Plain() {
		t.Fatal("Plain() should be true after SetPlain(true)")
	}

	out := captureStdout(func() { Success("sprint composed") })
	if out != "OK: sprint composed\n" {
		t.Errorf("plain Success output = %q", out)
	}

	errOut := captureStderr(func() { Warning("thin buffer") })
	if errOut != "WARN: thin buffer\n" {
		t.Errorf("plain Warning output = %q", errOut)
	}

	if got := captureStdout(func() { Title("ignored") }); got != "" {
		t.Errorf("plain Title should print nothing, got %q", got)
	}
}

func TestStyledOutputContainsText(t *testing.T) {
	SetPlain(false)

	out := captureStdout(func() { Success("done") })
	if !strings.Contains(out, "done") {
		t.Errorf("styled Success output missing text: %q", out)
	}

	out = captureStdout(func() { Info("loading backlog") })
	if !strings.Contains(out, "loading backlog") {
		t.Errorf("styled Info output missing text: %q", out)
	}
}

func TestBox_PlainFallback(t *testing.T) {
	SetPlain(true)
	defer SetPlain(false)

	out := captureStdout(func() { Box("Capacity", "20 points") })
	if out != "Capacity: 20 points\n" {
		t.Errorf("plain Box output = %q", out)
	}
}

// =============================================================================
// ProgressBar Tests
// =============================================================================

func TestProgressBar(t *testing.T) {
	SetPlain(true)
	if got := ProgressBar(3, 10, 20); got != "3/10" {
		t.Errorf("plain ProgressBar = %q, want 3/10", got)
	}
	SetPlain(false)

	styled := ProgressBar(5, 10, 10)
	if !strings.Contains(styled, "50%") {
		t.Errorf("styled ProgressBar missing percentage: %q", styled)
	}

	if got := ProgressBar(1, 0, 10); got != "1/0" {
		t.Errorf("zero-total ProgressBar = %q, want 1/0", got)
	}
}
