// schema.go: Typed field-rule schema declaration for Yacla
//
// A Schema is declared once per target type and reused on every load: rule
// construction is the only place that touches field plumbing, so the resolve
// hot path is a plain loop over pre-built rules with zero reflection. This
// replaces the annotation-scanning pattern of the original Java loader with
// explicit, compiler-checked registration.
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import "time"

// FieldLoader transforms a raw parsed value into the value assigned to the
// field. Useful when the document carries generic structures (strings,
// lists) that must become enums, wrappers, or derived values. A loader
// failure is soft: it is reported and the field falls back to missing.
type FieldLoader func(raw any) (any, error)

// FieldValidator checks a resolved value against the owning config object.
// Cross-field rules see every field declared before this one already
// assigned. A returned error fails the whole resolution.
type FieldValidator[T any] func(value any, config *T) error

// NullHandler runs when a field resolves to missing or blank, before the
// required check. It can mutate the config for fallback side effects.
type NullHandler[T any] func(config *T)

// FieldRule carries the per-field contract: lookup key, requiredness,
// numeric range, default text, and optional loader/validator/null hooks.
// Rules are built through the Schema's fluent API and are immutable once
// loading starts.
type FieldRule[T any] struct {
	name  string
	alias string
	kind  Kind

	required bool
	soft     bool

	hasRange bool
	min, max int64

	hasDefault bool
	defaultRaw string

	loader    FieldLoader
	validator FieldValidator[T]
	ifNull    NullHandler[T]

	assign func(*T, any) error
}

// Alias sets an alternate document key tried before the declared name.
func (r *FieldRule[T]) Alias(key string) *FieldRule[T] {
	r.alias = key
	return r
}

// Required marks the field hard-required: resolving a document without it
// fails the whole load.
func (r *FieldRule[T]) Required() *FieldRule[T] {
	r.required = true
	r.soft = false
	return r
}

// SoftRequired marks the field soft-required: a miss is reported through
// the logger but resolution continues with the zero value.
func (r *FieldRule[T]) SoftRequired() *FieldRule[T] {
	r.required = true
	r.soft = true
	return r
}

// Range declares an inclusive numeric range. Range checks are always hard;
// the candidate is widened to int64 (floats truncate) before comparing.
func (r *FieldRule[T]) Range(min, max int64) *FieldRule[T] {
	r.hasRange = true
	r.min = min
	r.max = max
	return r
}

// Default declares the raw default text, parsed through the schema's
// DefaultRegistry when the document has no usable value.
func (r *FieldRule[T]) Default(raw string) *FieldRule[T] {
	r.hasDefault = true
	r.defaultRaw = raw
	return r
}

// Loader attaches a custom raw-to-value transformer.
func (r *FieldRule[T]) Loader(loader FieldLoader) *FieldRule[T] {
	r.loader = loader
	return r
}

// Validate attaches a custom validator invoked after the range check.
func (r *FieldRule[T]) Validate(validator FieldValidator[T]) *FieldRule[T] {
	r.validator = validator
	return r
}

// IfNull attaches a handler invoked when the field is missing or blank,
// even for required fields, before the required check reports.
func (r *FieldRule[T]) IfNull(handler NullHandler[T]) *FieldRule[T] {
	r.ifNull = handler
	return r
}

// Schema is the declared per-field contract set for a target type T.
// Build it once at startup, then call Resolve per load.
type Schema[T any] struct {
	rules    []*FieldRule[T]
	registry *DefaultRegistry
	logger   Logger
}

// NewSchema creates an empty schema with a fresh default registry.
func NewSchema[T any]() *Schema[T] {
	return &Schema[T]{
		rules:    make([]*FieldRule[T], 0, 16),
		registry: NewDefaultRegistry(),
		logger:   nopLogger{},
	}
}

// WithRegistry replaces the default-value parser registry.
func (s *Schema[T]) WithRegistry(registry *DefaultRegistry) *Schema[T] {
	if registry != nil {
		s.registry = registry
	}
	return s
}

// WithLogger sets the sink for soft resolution warnings.
func (s *Schema[T]) WithLogger(logger Logger) *Schema[T] {
	s.logger = ensureLogger(logger)
	return s
}

// Rules returns the number of declared field rules.
func (s *Schema[T]) Rules() int { return len(s.rules) }

func (s *Schema[T]) addRule(name string, kind Kind, assign func(*T, any) error) *FieldRule[T] {
	rule := &FieldRule[T]{name: name, kind: kind, assign: assign}
	s.rules = append(s.rules, rule)
	return rule
}

// String declares a string field. field returns the destination within a
// fresh instance of T.
func (s *Schema[T]) String(name string, field func(*T) *string) *FieldRule[T] {
	return s.addRule(name, KindString, func(cfg *T, value any) error {
		*field(cfg) = toString(value)
		return nil
	})
}

// Int declares an int field.
func (s *Schema[T]) Int(name string, field func(*T) *int) *FieldRule[T] {
	return s.addRule(name, KindInt, func(cfg *T, value any) error {
		v, err := toInt(value)
		if err != nil {
			return err
		}
		*field(cfg) = v
		return nil
	})
}

// Int64 declares an int64 field.
func (s *Schema[T]) Int64(name string, field func(*T) *int64) *FieldRule[T] {
	return s.addRule(name, KindInt64, func(cfg *T, value any) error {
		v, err := toInt64(value)
		if err != nil {
			return err
		}
		*field(cfg) = v
		return nil
	})
}

// Float64 declares a float64 field.
func (s *Schema[T]) Float64(name string, field func(*T) *float64) *FieldRule[T] {
	return s.addRule(name, KindFloat64, func(cfg *T, value any) error {
		v, err := toFloat64(value)
		if err != nil {
			return err
		}
		*field(cfg) = v
		return nil
	})
}

// Bool declares a bool field.
func (s *Schema[T]) Bool(name string, field func(*T) *bool) *FieldRule[T] {
	return s.addRule(name, KindBool, func(cfg *T, value any) error {
		v, err := toBool(value)
		if err != nil {
			return err
		}
		*field(cfg) = v
		return nil
	})
}

// Duration declares a time.Duration field. Document values may be duration
// strings ("30s") or integer nanoseconds.
func (s *Schema[T]) Duration(name string, field func(*T) *time.Duration) *FieldRule[T] {
	return s.addRule(name, KindDuration, func(cfg *T, value any) error {
		v, err := toDuration(value)
		if err != nil {
			return err
		}
		*field(cfg) = v
		return nil
	})
}

// Any declares a field that keeps whatever the loader or document produced,
// assigned through a caller-supplied setter. This is the escape hatch for
// list- or struct-valued fields paired with a custom Loader.
func (s *Schema[T]) Any(name string, set func(*T, any) error) *FieldRule[T] {
	return s.addRule(name, KindString, set)
}
