// Command-line interface for Yacla configuration management.
//
// This package implements the yacla CLI using the Orpheus framework,
// providing git-style subcommands for document inspection and the
// default-driven update pipeline.
//
// Architecture:
// - Manager: CLI orchestration and command routing
// - Handlers: individual command implementations
// - Utils: shared helpers for format detection and value lookup
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"github.com/agilira/orpheus/pkg/orpheus"

	yacla "github.com/ririf4/Yacla"
)

// Manager provides CLI operations for Yacla configuration management.
type Manager struct {
	app    *orpheus.App
	logger yacla.Logger
	store  *yacla.Store // optional snapshot trail
}

// NewManager creates a CLI manager with all commands registered.
func NewManager() *Manager {
	app := orpheus.New("yacla").
		SetDescription("Schema-driven configuration loading with default-based updates").
		SetVersion("1.0.0")

	manager := &Manager{
		app:    app,
		logger: yacla.NewStdLogger(),
	}

	manager.setupDocumentCommands()
	manager.setupUpdateCommands()

	return manager
}

// WithStore enables snapshot recording for CLI update operations.
func (m *Manager) WithStore(store *yacla.Store) *Manager {
	m.store = store
	return m
}

// Run executes the CLI application with the provided arguments.
func (m *Manager) Run(args []string) error {
	return m.app.Run(args)
}

// setupDocumentCommands registers commands that inspect a single document.
func (m *Manager) setupDocumentCommands() {
	// get <file> <key> [--format=auto]
	getCmd := orpheus.NewCommand("get", "Get a configuration value by dotted key")
	getCmd.SetHandler(m.handleGet)
	getCmd.AddFlag("format", "f", "auto", "File format (auto|json|yaml)")
	m.app.AddCommand(getCmd)

	// validate <file> [--format=auto]
	validateCmd := orpheus.NewCommand("validate", "Validate configuration file structure")
	validateCmd.SetHandler(m.handleValidate)
	validateCmd.AddFlag("format", "f", "auto", "File format (auto|json|yaml)")
	m.app.AddCommand(validateCmd)

	// version <file> [--format=auto]
	versionCmd := orpheus.NewCommand("version", "Print the document version")
	versionCmd.SetHandler(m.handleVersion)
	versionCmd.AddFlag("format", "f", "auto", "File format (auto|json|yaml)")
	m.app.AddCommand(versionCmd)
}

// setupUpdateCommands registers the default-driven update pipeline commands.
func (m *Manager) setupUpdateCommands() {
	// update <default> <target> [--bootstrap]
	updateCmd := orpheus.NewCommand("update", "Reconcile a configuration file against its bundled default")
	updateCmd.SetHandler(m.handleUpdate)
	updateCmd.AddBoolFlag("bootstrap", "b", false, "Copy the default verbatim when the target is missing")
	m.app.AddCommand(updateCmd)

	// init <default> <target>
	initCmd := orpheus.NewCommand("init", "Create a configuration file from its bundled default")
	initCmd.SetHandler(m.handleInit)
	m.app.AddCommand(initCmd)
}
