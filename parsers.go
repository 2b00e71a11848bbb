// parsers.go: Configuration document parsers for Yacla
//
// This file converts raw file bytes into the flat key/value bag consumed by
// the field resolver. Two formats are supported:
// - JSON (.json) - parsed with tidwall/gjson
// - YAML (.yml, .yaml) - parsed with go.yaml.in/yaml/v3
//
// Both parsers enforce the single structural invariant of the pipeline:
// the document root must be a mapping. Anything else is a structure error
// that aborts loading.
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	"sync"

	"github.com/agilira/go-errors"
	"github.com/tidwall/gjson"
	"go.yaml.in/yaml/v3"
)

// ConfigFormat represents supported configuration file formats for
// auto-detection.
type ConfigFormat int

const (
	FormatJSON ConfigFormat = iota
	FormatYAML
	FormatUnknown
)

// String returns the string representation of the config format.
func (cf ConfigFormat) String() string {
	switch cf {
	case FormatJSON:
		return "JSON"
	case FormatYAML:
		return "YAML"
	default:
		return "Unknown"
	}
}

// ConfigParser defines the interface for pluggable document parsers.
//
// Custom parsers are tried before the built-in ones, so applications with
// unusual needs (multi-document YAML, schema-checked JSON) can register a
// replacement without forking the pipeline:
//
//	yacla.RegisterParser(&MyStrictJSONParser{})
type ConfigParser interface {
	// Parse parses document bytes into a flat bag. The root must be a
	// mapping; parsers return a structure error otherwise.
	Parse(data []byte) (map[string]any, error)

	// Supports returns true if this parser can handle the given format.
	Supports(format ConfigFormat) bool

	// Name returns a human-readable name for this parser (for debugging).
	Name() string
}

var (
	customParsers []ConfigParser
	parserMutex   sync.RWMutex
)

// RegisterParser registers a custom parser tried before the built-ins.
func RegisterParser(parser ConfigParser) {
	parserMutex.Lock()
	defer parserMutex.Unlock()
	customParsers = append(customParsers, parser)
}

// DetectFormat detects the configuration format from the file extension.
// Case-insensitive; unknown extensions return FormatUnknown.
func DetectFormat(filePath string) ConfigFormat {
	length := len(filePath)

	// Check last 5 chars for .json / .yaml
	if length >= 5 && filePath[length-5] == '.' {
		b1, b2, b3, b4 := filePath[length-4]|32, filePath[length-3]|32, filePath[length-2]|32, filePath[length-1]|32
		switch uint32(b1)<<24 | uint32(b2)<<16 | uint32(b3)<<8 | uint32(b4) {
		case 0x6a736f6e: // "json"
			return FormatJSON
		case 0x79616d6c: // "yaml"
			return FormatYAML
		}
	}

	// Check last 4 chars for .yml
	if length >= 4 && filePath[length-4] == '.' {
		b1, b2, b3 := filePath[length-3]|32, filePath[length-2]|32, filePath[length-1]|32
		if uint32(b1)<<16|uint32(b2)<<8|uint32(b3) == 0x796d6c { // "yml"
			return FormatYAML
		}
	}

	return FormatUnknown
}

// ParseDocument parses document bytes into a flat bag based on format.
// Custom parsers are tried first, then the built-in ones.
func ParseDocument(data []byte, format ConfigFormat) (map[string]any, error) {
	// Fast path: no custom parsers registered.
	if len(customParsers) == 0 {
		return parseBuiltin(data, format)
	}

	parserMutex.RLock()
	for _, parser := range customParsers {
		if parser.Supports(format) {
			bag, err := parser.Parse(data)
			parserMutex.RUnlock()
			return bag, err
		}
	}
	parserMutex.RUnlock()

	return parseBuiltin(data, format)
}

func parseBuiltin(data []byte, format ConfigFormat) (map[string]any, error) {
	switch format {
	case FormatJSON:
		return parseJSONBag(data)
	case FormatYAML:
		return parseYAMLBag(data)
	default:
		return nil, errors.New(ErrCodeUnsupportedFormat, "unsupported format: "+format.String())
	}
}

// parseJSONBag parses a JSON document into a flat bag using gjson.
func parseJSONBag(data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New(ErrCodeStructure, "invalid JSON document")
	}

	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, errors.New(ErrCodeStructure, "JSON document root must be an object")
	}

	bag, ok := result.Value().(map[string]any)
	if !ok || bag == nil {
		return nil, errors.New(ErrCodeStructure, "JSON document root must be an object")
	}

	return bag, nil
}

// parseYAMLBag parses a YAML document into a flat bag.
func parseYAMLBag(data []byte) (map[string]any, error) {
	var bag map[string]any
	if err := yaml.Unmarshal(data, &bag); err != nil {
		return nil, errors.Wrap(err, ErrCodeStructure, "YAML document root must be a mapping")
	}

	// Empty input unmarshals to a nil map; treat a missing document the
	// same as a structurally broken one.
	if bag == nil {
		return nil, errors.New(ErrCodeStructure, "YAML document is empty")
	}

	return bag, nil
}

// parseYAMLTree parses a YAML document into its comment-preserving node
// tree. Returns the root mapping node (the document wrapper is unwrapped).
func parseYAMLTree(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, ErrCodeStructure, "failed to parse YAML document")
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New(ErrCodeStructure, "YAML document is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New(ErrCodeStructure, "YAML document root must be a mapping")
	}

	return root, nil
}

// emitYAMLTree serializes a mapping node back to document bytes.
func emitYAMLTree(root *yaml.Node) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeIOError, "failed to serialize YAML document")
	}
	return out, nil
}
