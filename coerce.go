// coerce.go: Type coercion helpers for resolved field values
//
// Parsed documents deliver loosely-typed values (YAML ints, JSON float64s,
// strings from defaults and loaders). These helpers narrow them to the
// schema's declared field types with minimal allocations.
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	"fmt"
	"strconv"
	"time"

	"github.com/agilira/go-errors"
)

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		return strconv.Atoi(v)
	default:
		return 0, errors.New(ErrCodeInvalidConfig, fmt.Sprintf("cannot convert %T to int", value))
	}
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, errors.New(ErrCodeInvalidConfig, fmt.Sprintf("cannot convert %T to int64", value))
	}
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case float64:
		return v != 0, nil
	default:
		return false, errors.New(ErrCodeInvalidConfig, fmt.Sprintf("cannot convert %T to bool", value))
	}
}

func toFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, errors.New(ErrCodeInvalidConfig, fmt.Sprintf("cannot convert %T to float64", value))
	}
}

func toDuration(value any) (time.Duration, error) {
	switch v := value.(type) {
	case time.Duration:
		return v, nil
	case string:
		return time.ParseDuration(v)
	case int64:
		return time.Duration(v), nil
	case int:
		return time.Duration(v), nil
	default:
		return 0, errors.New(ErrCodeInvalidConfig, fmt.Sprintf("cannot convert %T to time.Duration", value))
	}
}

// widenToInt64 widens a numeric value to a signed 64-bit magnitude for range
// checking. Floating values are truncated toward zero, not rounded; the
// behavior is load-bearing for compatibility. Non-numeric values report
// ok=false and are exempt from range checks.
func widenToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float32:
		return int64(v), true
	case float64:
		return int64(v), true
	case time.Duration:
		return int64(v), true
	default:
		return 0, false
	}
}
