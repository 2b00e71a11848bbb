// resolver.go: Field resolution engine for Yacla schemas
//
// Resolve turns a flat document bag into a fully constructed target object,
// applying the per-field pipeline in a fixed order: lookup, custom loader,
// default injection, required check, range check, custom validator, assign.
// The ordering matters - default injection only runs for values the lookup
// and loader left missing, and the required check judges the state after
// defaults had their chance.
//
// Failure policy: required-field misses, range violations and validator
// rejections abort the whole resolution; no partial object ever escapes.
// Loader failures, default parse failures and unregistered default kinds
// degrade the field to missing and are reported through the logger only -
// unless that missing value then trips a hard-required check.
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	"fmt"
	"strings"

	"github.com/agilira/go-errors"
)

// Resolve constructs a fresh T from the flat bag. On any hard failure the
// returned object is nil and the error identifies the offending field.
func (s *Schema[T]) Resolve(bag map[string]any) (*T, error) {
	if bag == nil {
		return nil, errors.New(ErrCodeStructure, "document bag is nil")
	}

	cfg := new(T)
	for _, rule := range s.rules {
		if err := s.resolveField(cfg, rule, bag); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// resolveField runs the full per-field pipeline for one rule.
func (s *Schema[T]) resolveField(cfg *T, rule *FieldRule[T], bag map[string]any) error {
	// Step 1: lookup by alias, then declared name, case-insensitively.
	raw, present := s.lookupRaw(bag, rule)
	blank := present && isBlank(raw)

	var value any
	have := present && !blank
	if have {
		value = raw
	}

	// Step 2: custom loader. A loader failure is soft; the field falls
	// back to missing and may still be rescued by a default.
	if have && rule.loader != nil {
		loaded, err := rule.loader(raw)
		if err != nil {
			s.logger.Warnf("custom loader failed for field %q: %v", rule.name, err)
			have = false
			value = nil
		} else {
			value = loaded
		}
	}

	// Step 3: default injection through the registry.
	if !have && rule.hasDefault {
		parser, ok := s.registry.Lookup(rule.kind)
		if !ok {
			s.logger.Warnf("no default parser registered for kind %s (field %q)", rule.kind, rule.name)
		} else {
			parsed, err := parser(rule.defaultRaw)
			if err != nil {
				s.logger.Warnf("default %q for field %q failed to parse: %v", rule.defaultRaw, rule.name, err)
			} else {
				value = parsed
				have = true
			}
		}
	}

	// Step 4: required check on whatever is left.
	if !have {
		if rule.ifNull != nil {
			rule.ifNull(cfg)
		}
		if rule.required {
			if !rule.soft {
				return errors.New(ErrCodeRequiredField, "required field is missing or blank").
					WithContext("field", rule.name)
			}
			s.logger.Warnf("soft-required field %q is missing or blank", rule.name)
		}
		// Field stays at its zero value.
		return nil
	}

	// Step 5: strict range check on the widened integer magnitude.
	if rule.hasRange {
		if n, numeric := widenToInt64(value); numeric && (n < rule.min || n > rule.max) {
			return errors.New(ErrCodeRangeViolation,
				fmt.Sprintf("value %d outside range [%d,%d]", n, rule.min, rule.max)).
				WithContext("field", rule.name).
				WithContext("min", rule.min).
				WithContext("max", rule.max).
				WithContext("value", n)
		}
	}

	// Step 6: custom validator sees the value and the object under
	// construction (fields declared earlier are already assigned).
	if rule.validator != nil {
		if err := rule.validator(value, cfg); err != nil {
			return errors.Wrap(err, ErrCodeValidationFailed, "field validation failed").
				WithContext("field", rule.name)
		}
	}

	// Step 7: assignment into the fresh object.
	if err := rule.assign(cfg, value); err != nil {
		return errors.Wrap(err, ErrCodeInvalidConfig, "cannot assign value to field").
			WithContext("field", rule.name)
	}
	return nil
}

// lookupRaw finds the raw value for a rule: alias key first, then the
// declared name. Exact match is the fast path; the fold scan only runs on
// a miss.
func (s *Schema[T]) lookupRaw(bag map[string]any, rule *FieldRule[T]) (any, bool) {
	if rule.alias != "" {
		if v, ok := lookupFold(bag, rule.alias); ok {
			return v, true
		}
	}
	return lookupFold(bag, rule.name)
}

// lookupFold retrieves a bag value by key, case-insensitively.
func lookupFold(bag map[string]any, key string) (any, bool) {
	if v, ok := bag[key]; ok {
		return v, true
	}
	for k, v := range bag {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// isBlank reports whether a present value is an empty or whitespace-only
// string. Non-string values are never blank; explicit nulls are.
func isBlank(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
