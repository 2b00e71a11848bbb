// parsers_test.go - Tests for format detection and document parsing
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import "testing"

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected ConfigFormat
	}{
		{"config.json", FormatJSON},
		{"config.yaml", FormatYAML},
		{"config.yml", FormatYAML},
		{"CONFIG.JSON", FormatJSON},
		{"Config.Yml", FormatYAML},
		{"/etc/app/config.yaml", FormatYAML},
		{"config.toml", FormatUnknown},
		{"config", FormatUnknown},
		{"json", FormatUnknown},
		{"", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetectFormat(tt.path); got != tt.expected {
				t.Errorf("DetectFormat(%q) = %v, expected %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestParseDocument_JSON(t *testing.T) {
	bag, err := ParseDocument([]byte(`{"version":"1.2.0","port":8080}`), FormatJSON)
	if err != nil {
		t.Fatalf("failed to parse valid JSON: %v", err)
	}
	if bag["version"] != "1.2.0" {
		t.Errorf("expected version=1.2.0, got %v", bag["version"])
	}
	if bag["port"] != float64(8080) {
		t.Errorf("expected port=8080 (float64), got %v (%T)", bag["port"], bag["port"])
	}
}

func TestParseDocument_JSONStructureErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"array root", `[1, 2, 3]`},
		{"scalar root", `"just a string"`},
		{"invalid syntax", `{"broken":`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.data), FormatJSON)
			if err == nil {
				t.Fatal("expected a structure error, got nil")
			}
			if !IsStructureError(err) {
				t.Errorf("expected structure error code, got %s", GetErrorCode(err))
			}
		})
	}
}

func TestParseDocument_YAML(t *testing.T) {
	data := []byte("version: 1.2.0\nserver:\n  port: 8080\n")
	bag, err := ParseDocument(data, FormatYAML)
	if err != nil {
		t.Fatalf("failed to parse valid YAML: %v", err)
	}
	if bag["version"] != "1.2.0" {
		t.Errorf("expected version=1.2.0, got %v", bag["version"])
	}
	server, ok := bag["server"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested mapping, got %T", bag["server"])
	}
	if server["port"] != 8080 {
		t.Errorf("expected port=8080 (int), got %v (%T)", server["port"], server["port"])
	}
}

func TestParseDocument_YAMLStructureErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"sequence root", "- a\n- b\n"},
		{"empty document", ""},
		{"invalid syntax", "key: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.data), FormatYAML)
			if err == nil {
				t.Fatal("expected a structure error, got nil")
			}
			if !IsStructureError(err) {
				t.Errorf("expected structure error code, got %s", GetErrorCode(err))
			}
		})
	}
}

func TestParseDocument_UnsupportedFormat(t *testing.T) {
	_, err := ParseDocument([]byte("whatever"), FormatUnknown)
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if GetErrorCode(err) != ErrCodeUnsupportedFormat {
		t.Errorf("expected %s, got %s", ErrCodeUnsupportedFormat, GetErrorCode(err))
	}
}

// fixedParser resolves every document to a constant bag; used to verify
// custom parser registration takes precedence for its formats.
type fixedParser struct{}

func (fixedParser) Parse([]byte) (map[string]any, error) {
	return map[string]any{"source": "custom"}, nil
}
func (fixedParser) Supports(format ConfigFormat) bool { return format == FormatUnknown }
func (fixedParser) Name() string                      { return "fixed" }

func TestRegisterParser(t *testing.T) {
	RegisterParser(fixedParser{})

	// The custom parser claims FormatUnknown, which the built-ins reject.
	bag, err := ParseDocument([]byte("anything"), FormatUnknown)
	if err != nil {
		t.Fatalf("custom parser should have handled the document: %v", err)
	}
	if bag["source"] != "custom" {
		t.Errorf("expected custom parser output, got %v", bag)
	}

	// Formats the custom parser declines still hit the built-ins.
	if _, err := ParseDocument([]byte(`{"a":1}`), FormatJSON); err != nil {
		t.Errorf("built-in JSON parsing broken after registration: %v", err)
	}
}
