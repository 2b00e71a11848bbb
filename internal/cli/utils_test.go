// Tests for CLI helpers
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"testing"

	yacla "github.com/ririf4/Yacla"
)

func TestGetValue(t *testing.T) {
	bag := map[string]any{
		"version": "1.0.0",
		"server": map[string]any{
			"port": 8080,
			"tls":  map[string]any{"enabled": true},
		},
	}

	tests := []struct {
		key      string
		expected any
		found    bool
	}{
		{"version", "1.0.0", true},
		{"server.port", 8080, true},
		{"server.tls.enabled", true, true},
		{"server.missing", nil, false},
		{"server.port.deeper", nil, false},
		{"absent", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, found := getValue(bag, tt.key)
			if found != tt.found {
				t.Fatalf("getValue(%q) found = %t, expected %t", tt.key, found, tt.found)
			}
			if found && got != tt.expected {
				t.Errorf("getValue(%q) = %v, expected %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestDetectFormatFlag(t *testing.T) {
	m := NewManager()

	if got := m.detectFormat("config.txt", "json"); got != yacla.FormatJSON {
		t.Errorf("explicit json flag ignored, got %v", got)
	}
	if got := m.detectFormat("config.txt", "yml"); got != yacla.FormatYAML {
		t.Errorf("explicit yml flag ignored, got %v", got)
	}
	if got := m.detectFormat("config.yaml", "auto"); got != yacla.FormatYAML {
		t.Errorf("auto detection broken, got %v", got)
	}
	if got := m.detectFormat("config.txt", "auto"); got != yacla.FormatUnknown {
		t.Errorf("unknown extension should stay unknown, got %v", got)
	}
}
