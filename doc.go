// Package yacla provides schema-driven configuration loading for Go
// applications: it reads YAML or JSON configuration files, maps them onto
// strongly-typed structs through an explicit per-field schema, and reconciles
// an on-disk file against a newer bundled default while preserving user edits.
//
// # Architecture Overview
//
// Yacla consists of five integrated subsystems:
//  1. **Document Parsers**: YAML (comment-preserving tree) and JSON flat-bag
//     parsing with automatic format detection
//  2. **Version-Aware Merger**: recursive default/current reconciliation that
//     keeps user values and YAML comments while adding newly shipped keys
//  3. **Field Resolver**: typed schema rules (required, soft-required, range,
//     defaults, custom loaders and validators) applied with defined precedence
//  4. **Loader Facade**: bootstrap-copy, parse, resolve, reload and update in
//     one lifecycle object with atomic last-good semantics
//  5. **Snapshot Store**: optional SQLite-backed write-behind persistence of
//     resolved configuration snapshots with TTL-cached reads
//
// # Quick Start
//
// Declare a schema once, then load:
//
//	type ServerConfig struct {
//		Host   string
//		Port   int
//		APIKey string
//	}
//
//	schema := yacla.NewSchema[ServerConfig]()
//	schema.String("host", func(c *ServerConfig) *string { return &c.Host }).
//		Default("localhost")
//	schema.Int("port", func(c *ServerConfig) *int { return &c.Port }).
//		Default("8080").Range(1, 65535)
//	schema.String("apiKey", func(c *ServerConfig) *string { return &c.APIKey }).
//		Required()
//
//	loader, err := yacla.NewLoader(schema, yacla.Options{
//		File:     "config.yml",
//		Resource: "defaults/config.yml",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	cfg := loader.Get()
//
// If config.yml does not exist it is bootstrapped from the bundled default.
// A later release can ship a default with a higher `version` key; calling
// loader.Update() rewrites the user's file with the new keys while keeping
// every value (and YAML comment) the user customized.
//
// # Failure Model
//
// Hard failures (missing resource, non-mapping root, missing required field,
// range violation, validator rejection) abort the whole load and never
// produce a partial object. Soft conditions (soft-required miss, default
// parse failure, custom loader failure, unregistered default kind) are
// reported through the optional Logger and resolution continues with the
// field left at its zero value. A failed Reload keeps the previously loaded
// object visible to callers.
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0
package yacla
