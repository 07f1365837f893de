// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// Level Tests
// =============================================================================

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
		{Level(-1), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

// =============================================================================
// File Logging Tests
// =============================================================================

func logFile(t *testing.T, dir, service string) string {
	t.Helper()
	return filepath.Join(dir, service+"_"+time.Now().Format("2006-01-02")+".log")
}

func TestNew_FileLogging(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelInfo,
		LogDir:  dir,
		Service: "test",
		Quiet:   true,
	})
	logger.Info("capacity analyzed", "velocity", 20.0)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(logFile(t, dir, "test"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("log file is not JSON: %v", err)
	}
	if entry["msg"] != "capacity analyzed" {
		t.Errorf("msg = %v, want %q", entry["msg"], "capacity analyzed")
	}
	if entry["service"] != "test" {
		t.Errorf("service = %v, want %q", entry["service"], "test")
	}
	if entry["velocity"] != 20.0 {
		t.Errorf("velocity = %v, want 20", entry["velocity"])
	}
}

func TestNew_LevelFilter(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelWarn,
		LogDir:  dir,
		Service: "filter",
		Quiet:   true,
	})
	logger.Debug("dropped-debug")
	logger.Info("dropped-info")
	logger.Warn("kept-warn")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(logFile(t, dir, "filter"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "dropped-debug") || strings.Contains(content, "dropped-info") {
		t.Errorf("filtered levels leaked into log file:\n%s", content)
	}
	if !strings.Contains(content, "kept-warn") {
		t.Errorf("warn message missing from log file:\n%s", content)
	}
}

func TestNew_UnwritableDirSkipsFile(t *testing.T) {
	logger := New(Config{
		LogDir:  string([]byte{0}),
		Service: "broken",
		Quiet:   true,
	})
	// Never panics even though no destination opened.
	logger.Info("still fine")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}

// =============================================================================
// Logger Behavior Tests
// =============================================================================

func TestLogger_With(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelInfo,
		LogDir:  dir,
		Service: "child",
		Quiet:   true,
	})
	child := logger.With("sprint", "2026-09")
	child.Info("suggested")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(logFile(t, dir, "child"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "2026-09") {
		t.Errorf("child attribute missing from log file:\n%s", data)
	}
}

func TestLogger_CloseIsIdempotent(t *testing.T) {
	logger := New(Config{LogDir: t.TempDir(), Quiet: true})
	if err := logger.Close(); err != nil {
		t.Fatalf("first Close() error: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
}

func TestDefault_DoesNotPanic(t *testing.T) {
	logger := Default()
	logger.Info("hello")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}

// =============================================================================
// Helper Tests
// =============================================================================

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/.aleutianplan/logs", filepath.Join(home, ".aleutianplan/logs")},
		{"~", home},
		{"/var/log", "/var/log"},
		{"~user/logs", "~user/logs"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
