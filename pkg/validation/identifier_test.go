package validation

import (
	"testing"
)

func TestValidateItemID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		// Valid identifiers
		{"simple", "auth", false},
		{"single char", "a", false},
		{"tracker style", "PROJ-42", false},
		{"with digits", "task2", false},
		{"dotted version", "api.v2", false},
		{"underscored", "setup_db", false},
		{"max length", "a1234567890123456789012345678901234567890123456789012345678901234"[:64], false},

		// Invalid identifiers
		{"empty", "", true},
		{"leading hyphen", "-task", true},
		{"leading dot", ".hidden", true},
		{"whitespace", "task 1", true},
		{"path traversal", "../etc/passwd", true},
		{"slash", "a/b", true},
		{"too long", "a1234567890123456789012345678901234567890123456789012345678901234x", true},
		{"escape sequence", "task\x1b[31m", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItemID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateItemID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateItemIDs(t *testing.T) {
	if err := ValidateItemIDs([]string{"a", "PROJ-1", "api.v2"}); err != nil {
		t.Errorf("unexpected error for valid ids: %v", err)
	}

	err := ValidateItemIDs([]string{"ok", "../bad", "also ok"})
	if err == nil {
		t.Fatal("expected error for invalid ids")
	}
}

func TestSanitizeItemID(t *testing.T) {
	got, err := SanitizeItemID("  PROJ-7  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "PROJ-7" {
		t.Errorf("SanitizeItemID trimmed = %q, want %q", got, "PROJ-7")
	}

	if _, err := SanitizeItemID("   "); err == nil {
		t.Error("expected error for blank input")
	}
}
