// Tests for CLI command routing
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestRun_Version(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "config.json", `{"version":"1.2.0","port":8080}`)

	if err := NewManager().Run([]string{"version", path}); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
}

func TestRun_Validate(t *testing.T) {
	dir := t.TempDir()

	good := writeTempFile(t, dir, "good.yaml", "version: 1.0.0\nport: 8080\n")
	if err := NewManager().Run([]string{"validate", good}); err != nil {
		t.Fatalf("validate rejected a valid document: %v", err)
	}

	bad := writeTempFile(t, dir, "bad.json", `[1,2,3]`)
	if err := NewManager().Run([]string{"validate", bad}); err == nil {
		t.Fatal("validate accepted a non-mapping root")
	}
}

func TestRun_Get(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "config.yaml", "version: 1.0.0\nserver:\n  port: 8080\n")

	if err := NewManager().Run([]string{"get", path, "server.port"}); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if err := NewManager().Run([]string{"get", path, "server.missing"}); err == nil {
		t.Fatal("get of a missing key should fail")
	}
}

func TestRun_Update(t *testing.T) {
	dir := t.TempDir()
	defPath := writeTempFile(t, dir, "default.json", `{"version":"1.1.0","port":8080}`)
	targetPath := writeTempFile(t, dir, "config.json", `{"version":"1.0.0","port":9090}`)

	if err := NewManager().Run([]string{"update", defPath, targetPath}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	data, _ := os.ReadFile(targetPath)
	text := string(data)
	if !strings.Contains(text, "1.1.0") {
		t.Errorf("target not reconciled:\n%s", text)
	}
	if !strings.Contains(text, "9090") {
		t.Errorf("user value lost in update:\n%s", text)
	}
}

func TestRun_Init(t *testing.T) {
	dir := t.TempDir()
	defPath := writeTempFile(t, dir, "default.yaml", "version: 1.0.0\nport: 8080\n")
	targetPath := filepath.Join(dir, "config.yaml")

	if err := NewManager().Run([]string{"init", defPath, targetPath}); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(targetPath); err != nil {
		t.Fatalf("init did not create the target: %v", err)
	}

	// Re-running init leaves the existing file alone.
	if err := NewManager().Run([]string{"init", defPath, targetPath}); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
}
