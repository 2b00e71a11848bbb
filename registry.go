// registry.go: Default-value parser registry for Yacla schemas
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	"strconv"
	"sync"
	"time"
)

// Kind identifies the target type of a schema field for default parsing
// and fast assignment switching.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindInt64
	KindFloat64
	KindBool
	KindDuration
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindDuration:
		return "duration"
	default:
		return "unknown"
	}
}

// DefaultParser converts a raw textual default into a typed value.
type DefaultParser func(raw string) (any, error)

// DefaultRegistry maps a field kind to the parser used for its declared
// default text. Each registry is an explicit instance with caller-controlled
// lifecycle, so tests and embedded schemas can use isolated registries
// instead of sharing process-wide state.
type DefaultRegistry struct {
	mu      sync.RWMutex
	parsers map[Kind]DefaultParser
}

// NewDefaultRegistry creates a registry pre-seeded with parsers for every
// built-in kind.
func NewDefaultRegistry() *DefaultRegistry {
	r := &DefaultRegistry{parsers: make(map[Kind]DefaultParser, 8)}
	r.Register(KindString, func(raw string) (any, error) { return raw, nil })
	r.Register(KindInt, func(raw string) (any, error) { return strconv.Atoi(raw) })
	r.Register(KindInt64, func(raw string) (any, error) { return strconv.ParseInt(raw, 10, 64) })
	r.Register(KindFloat64, func(raw string) (any, error) { return strconv.ParseFloat(raw, 64) })
	r.Register(KindBool, func(raw string) (any, error) { return strconv.ParseBool(raw) })
	r.Register(KindDuration, func(raw string) (any, error) { return time.ParseDuration(raw) })
	return r
}

// Register installs or replaces the parser for a kind.
func (r *DefaultRegistry) Register(kind Kind, parser DefaultParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[kind] = parser
}

// Lookup returns the parser for a kind, or false when none is registered.
func (r *DefaultRegistry) Lookup(kind Kind) (DefaultParser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	parser, ok := r.parsers[kind]
	return parser, ok
}
