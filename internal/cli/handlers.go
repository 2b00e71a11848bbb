// Command handlers for the Yacla CLI
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"

	"github.com/agilira/go-errors"
	"github.com/agilira/orpheus/pkg/orpheus"

	yacla "github.com/ririf4/Yacla"
)

// handleGet retrieves a configuration value using dot notation.
func (m *Manager) handleGet(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	key := ctx.GetArg(1)
	if filePath == "" || key == "" {
		return errors.New(yacla.ErrCodeInvalidConfig, "usage: yacla get <file> <key>")
	}

	bag, err := m.loadDocument(filePath, ctx.GetFlagString("format"))
	if err != nil {
		return err
	}

	value, found := getValue(bag, key)
	if !found {
		return errors.New(yacla.ErrCodeInvalidConfig, fmt.Sprintf("key '%s' not found", key))
	}

	fmt.Printf("%v\n", value)
	return nil
}

// handleValidate parses the document and reports its structure.
func (m *Manager) handleValidate(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	if filePath == "" {
		return errors.New(yacla.ErrCodeInvalidConfig, "usage: yacla validate <file>")
	}

	bag, err := m.loadDocument(filePath, ctx.GetFlagString("format"))
	if err != nil {
		if yacla.IsStructureError(err) {
			return errors.Wrap(err, yacla.ErrCodeStructure, "document structure is invalid")
		}
		return err
	}

	fmt.Printf("%s: valid (%d top-level keys, version %s)\n",
		filePath, len(bag), yacla.DocumentVersion(bag))
	return nil
}

// handleVersion prints the document version, applying the 1.0.0 fallback
// for documents that carry no version key.
func (m *Manager) handleVersion(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	if filePath == "" {
		return errors.New(yacla.ErrCodeInvalidConfig, "usage: yacla version <file>")
	}

	bag, err := m.loadDocument(filePath, ctx.GetFlagString("format"))
	if err != nil {
		return err
	}

	fmt.Println(yacla.DocumentVersion(bag))
	return nil
}

// handleUpdate reconciles a target file against its bundled default.
func (m *Manager) handleUpdate(ctx *orpheus.Context) error {
	resourcePath := ctx.GetArg(0)
	targetFile := ctx.GetArg(1)
	if resourcePath == "" || targetFile == "" {
		return errors.New(yacla.ErrCodeInvalidConfig, "usage: yacla update <default> <target>")
	}

	updater := yacla.NewUpdater(nil, m.logger)
	if m.store != nil {
		updater = updater.WithStore(m.store)
	}

	if ctx.GetFlagBool("bootstrap") {
		created, err := updater.Bootstrap(resourcePath, targetFile)
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("Created %s from %s\n", targetFile, resourcePath)
			return nil
		}
	}

	updated, err := updater.Reconcile(resourcePath, targetFile)
	if err != nil {
		return err
	}

	if updated {
		fmt.Printf("Updated %s\n", targetFile)
	} else {
		fmt.Printf("%s is up to date\n", targetFile)
	}
	return nil
}

// handleInit creates a target file from its bundled default. An existing
// target is left untouched and reported.
func (m *Manager) handleInit(ctx *orpheus.Context) error {
	resourcePath := ctx.GetArg(0)
	targetFile := ctx.GetArg(1)
	if resourcePath == "" || targetFile == "" {
		return errors.New(yacla.ErrCodeInvalidConfig, "usage: yacla init <default> <target>")
	}

	updater := yacla.NewUpdater(nil, m.logger)
	created, err := updater.Bootstrap(resourcePath, targetFile)
	if err != nil {
		return err
	}

	if created {
		fmt.Printf("Created %s from %s\n", targetFile, resourcePath)
	} else {
		fmt.Printf("%s already exists, not modified\n", targetFile)
	}
	return nil
}
