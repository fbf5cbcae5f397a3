package controllers

import (
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"valid", "Correct-Horse-Battery-9", ""},
		{"too short", "Short1!aB", "at least 16 characters"},
		{"no uppercase", "lowercase-only-1234!", "uppercase"},
		{"no lowercase", "UPPERCASE-ONLY-1234!", "lowercase"},
		{"no digit", "No-Digits-Here-Okay!", "digit"},
		{"no special", "NoSpecialChars12345x", "special"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validatePassword(tt.password)
			if tt.wantMsg == "" {
				if msg != "" {
					t.Fatalf("validatePassword(%q) = %q, want ok", tt.password, msg)
				}
				return
			}
			if !strings.Contains(msg, tt.wantMsg) {
				t.Fatalf("validatePassword(%q) = %q, want message containing %q", tt.password, msg, tt.wantMsg)
			}
		})
	}
}
