// Utility functions for the Yacla CLI
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"os"
	"strings"

	"github.com/agilira/go-errors"

	yacla "github.com/ririf4/Yacla"
)

// loadDocument reads and parses a configuration file, honoring an explicit
// format flag and falling back to extension-based detection.
func (m *Manager) loadDocument(filePath, explicitFormat string) (map[string]any, error) {
	format := m.detectFormat(filePath, explicitFormat)
	if format == yacla.FormatUnknown {
		return nil, errors.New(yacla.ErrCodeUnsupportedFormat,
			"cannot determine config format").WithContext("file", filePath)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 - file path comes from the command line
	if err != nil {
		return nil, errors.Wrap(err, yacla.ErrCodeIOError, "failed to read file").
			WithContext("file", filePath)
	}

	return yacla.ParseDocument(data, format)
}

// detectFormat resolves the format from an explicit flag or file extension.
func (m *Manager) detectFormat(filePath, explicitFormat string) yacla.ConfigFormat {
	switch strings.ToLower(explicitFormat) {
	case "json":
		return yacla.FormatJSON
	case "yaml", "yml":
		return yacla.FormatYAML
	}
	return yacla.DetectFormat(filePath)
}

// getValue looks up a dotted key ("server.port") in a nested document bag.
func getValue(bag map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	var current any = bag
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
