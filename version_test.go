// version_test.go - Tests for dotted version parsing and comparison
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import "testing"

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Version
	}{
		{"simple", "1.2.0", Version{1, 2, 0}},
		{"single component", "3", Version{3}},
		{"empty defaults", "", Version{1, 0, 0}},
		{"whitespace defaults", "   ", Version{1, 0, 0}},
		{"non-numeric becomes zero", "1.x.2", Version{1, 0, 2}},
		{"negative becomes zero", "1.-2.3", Version{1, 0, 3}},
		{"long tuple", "1.2.3.4.5", Version{1, 2, 3, 4, 5}},
		{"spaces around components", "1. 2 .3", Version{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseVersion(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("ParseVersion(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("ParseVersion(%q)[%d] = %d, expected %d", tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"equal", "1.2.0", "1.2.0", 0},
		{"less", "1.0.0", "1.2.0", -1},
		{"greater", "2.0.0", "1.9.9", 1},
		{"missing trailing counts as zero", "1.2", "1.2.0", 0},
		{"shorter but greater", "2", "1.9.9", 1},
		{"longer decides", "1.2.0.1", "1.2.0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseVersion(tt.a).Compare(ParseVersion(tt.b))
			if got != tt.expected {
				t.Errorf("Compare(%q, %q) = %d, expected %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	if got := ParseVersion("1.2.0").String(); got != "1.2.0" {
		t.Errorf("String() = %q, expected 1.2.0", got)
	}
	if got := (Version{}).String(); got != "1.0.0" {
		t.Errorf("empty Version String() = %q, expected 1.0.0", got)
	}
}

func TestDocumentVersion(t *testing.T) {
	tests := []struct {
		name     string
		bag      map[string]any
		expected string
	}{
		{"string version", map[string]any{"version": "1.2.0"}, "1.2.0"},
		{"missing version", map[string]any{"port": 8080}, "1.0.0"},
		{"json number version", map[string]any{"version": 1.2}, "1.2"},
		{"int version", map[string]any{"version": 2}, "2"},
		{"unusable version", map[string]any{"version": []any{1}}, "1.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DocumentVersion(tt.bag).String()
			if got != tt.expected {
				t.Errorf("DocumentVersion(%v) = %q, expected %q", tt.bag, got, tt.expected)
			}
		})
	}
}
