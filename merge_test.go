// merge_test.go - Tests for the default-based document merge
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	"strings"
	"testing"
)

func TestMergeBags_UserValuesWin(t *testing.T) {
	def := map[string]any{
		"version": "1.2.0",
		"port":    8080,
		"host":    "localhost",
	}
	cur := map[string]any{
		"version": "1.0.0",
		"port":    9090,
	}

	merged := MergeBags(def, cur)

	if merged["version"] != "1.2.0" {
		t.Errorf("version should keep the default's value, got %v", merged["version"])
	}
	if merged["port"] != 9090 {
		t.Errorf("user-customized port should win, got %v", merged["port"])
	}
	if merged["host"] != "localhost" {
		t.Errorf("key absent from user file should keep the default, got %v", merged["host"])
	}
}

func TestMergeBags_NestedMappings(t *testing.T) {
	def := map[string]any{
		"version": "2.0.0",
		"server": map[string]any{
			"port":    8080,
			"timeout": "30s",
		},
	}
	cur := map[string]any{
		"server": map[string]any{
			"port": 9090,
			// user-added key inside a nested mapping
			"extra": true,
		},
	}

	merged := MergeBags(def, cur)
	server := merged["server"].(map[string]any)

	if server["port"] != 9090 {
		t.Errorf("nested override lost: got %v", server["port"])
	}
	if server["timeout"] != "30s" {
		t.Errorf("nested default lost: got %v", server["timeout"])
	}
	if server["extra"] != true {
		t.Errorf("user-added nested key lost: got %v", server["extra"])
	}
}

func TestMergeBags_TypeMismatchOverride(t *testing.T) {
	// Default ships a mapping, user flattened it to a scalar: the user's
	// value replaces the subtree wholesale.
	def := map[string]any{
		"logging": map[string]any{"level": "info", "format": "json"},
	}
	cur := map[string]any{
		"logging": "off",
	}

	merged := MergeBags(def, cur)
	if merged["logging"] != "off" {
		t.Errorf("type mismatch should override wholesale, got %v", merged["logging"])
	}

	// And the other direction: scalar default, mapping user value.
	def = map[string]any{"debug": false}
	cur = map[string]any{"debug": map[string]any{"enabled": true}}
	merged = MergeBags(def, cur)
	if m, ok := merged["debug"].(map[string]any); !ok || m["enabled"] != true {
		t.Errorf("user mapping should replace scalar default, got %v", merged["debug"])
	}
}

func TestMergeBags_UserAddedTopLevelKey(t *testing.T) {
	def := map[string]any{"version": "1.1.0"}
	cur := map[string]any{"custom": "kept"}

	merged := MergeBags(def, cur)
	if merged["custom"] != "kept" {
		t.Errorf("user-added key should survive the merge, got %v", merged["custom"])
	}
}

func TestMergeBags_InputsNotModified(t *testing.T) {
	def := map[string]any{
		"version": "2.0.0",
		"nested":  map[string]any{"a": 1},
	}
	cur := map[string]any{
		"nested": map[string]any{"a": 2},
	}

	_ = MergeBags(def, cur)

	if def["nested"].(map[string]any)["a"] != 1 {
		t.Error("merge modified the default input")
	}
	if cur["nested"].(map[string]any)["a"] != 2 {
		t.Error("merge modified the current input")
	}
}

func TestMergeBags_NonRootVersionKeyMerges(t *testing.T) {
	// Only the top-level version key is reserved; a nested "version" key
	// is ordinary data and the user's value wins.
	def := map[string]any{
		"version": "2.0.0",
		"api":     map[string]any{"version": "v1"},
	}
	cur := map[string]any{
		"version": "1.0.0",
		"api":     map[string]any{"version": "v2"},
	}

	merged := MergeBags(def, cur)
	if merged["version"] != "2.0.0" {
		t.Errorf("root version should keep the default, got %v", merged["version"])
	}
	if merged["api"].(map[string]any)["version"] != "v2" {
		t.Errorf("nested version key should merge normally, got %v", merged["api"])
	}
}

func TestMergeYAML_CommentsSurvive(t *testing.T) {
	defYAML := []byte(`version: 1.2.0
port: 8080
host: localhost
`)
	curYAML := []byte(`# my tuned setup
version: 1.0.0
port: 9090 # changed for staging
`)

	defTree, err := parseYAMLTree(defYAML)
	if err != nil {
		t.Fatalf("failed to parse default tree: %v", err)
	}
	curTree, err := parseYAMLTree(curYAML)
	if err != nil {
		t.Fatalf("failed to parse current tree: %v", err)
	}

	out, err := emitYAMLTree(mergeMappingNodes(defTree, curTree))
	if err != nil {
		t.Fatalf("failed to emit merged tree: %v", err)
	}

	text := string(out)
	if !strings.Contains(text, "version: 1.2.0") {
		t.Errorf("merged YAML should carry the default's version:\n%s", text)
	}
	if !strings.Contains(text, "port: 9090") {
		t.Errorf("merged YAML should keep the user's port:\n%s", text)
	}
	if !strings.Contains(text, "changed for staging") {
		t.Errorf("user's inline comment should survive the merge:\n%s", text)
	}
	if !strings.Contains(text, "my tuned setup") {
		t.Errorf("user's leading comment should survive the merge:\n%s", text)
	}
	if !strings.Contains(text, "host: localhost") {
		t.Errorf("default-only key should appear in the merged YAML:\n%s", text)
	}
}

func TestMergeJSONBytes(t *testing.T) {
	defBytes := []byte(`{
  "version": "1.2.0",
  "port": 8080,
  "apiKey": null
}`)
	defBag, err := parseJSONBag(defBytes)
	if err != nil {
		t.Fatalf("failed to parse default: %v", err)
	}

	curBytes := []byte(`{"version":"1.0.0","port":9090}`)
	curBag, err := parseJSONBag(curBytes)
	if err != nil {
		t.Fatalf("failed to parse current: %v", err)
	}

	out, err := mergeJSONBytes(defBytes, defBag, curBag)
	if err != nil {
		t.Fatalf("JSON merge failed: %v", err)
	}

	merged, err := parseJSONBag(out)
	if err != nil {
		t.Fatalf("merged output is not valid JSON: %v\n%s", err, out)
	}

	if merged["version"] != "1.2.0" {
		t.Errorf("version should keep the default's value, got %v", merged["version"])
	}
	if merged["port"] != float64(9090) {
		t.Errorf("user port should win, got %v", merged["port"])
	}
	if v, present := merged["apiKey"]; !present || v != nil {
		t.Errorf("default's null apiKey should survive, got %v (present=%t)", v, present)
	}
}

func TestMergeJSONBytes_SpecialKeys(t *testing.T) {
	defBytes := []byte(`{"version":"2.0.0","a.b":"default"}`)
	defBag, _ := parseJSONBag(defBytes)
	curBag := map[string]any{"a.b": "custom"}

	out, err := mergeJSONBytes(defBytes, defBag, curBag)
	if err != nil {
		t.Fatalf("JSON merge failed: %v", err)
	}

	merged, err := parseJSONBag(out)
	if err != nil {
		t.Fatalf("merged output is not valid JSON: %v\n%s", err, out)
	}
	if merged["a.b"] != "custom" {
		t.Errorf("dotted key should be treated literally, got %v", merged)
	}
}
