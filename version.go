// version.go: Dotted-numeric version comparison for update gating
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	"strconv"
	"strings"
)

// VersionKey is the reserved top-level document key used for update
// comparisons. Its value in a merged document always comes from the
// bundled default, never from the user's file.
const VersionKey = "version"

// defaultVersionString is assumed when a document carries no version key.
const defaultVersionString = "1.0.0"

// Version is a dotted numeric tuple such as 1.2.0. Comparison is
// component-wise left to right; missing trailing components count as zero
// and non-numeric components parse as zero, so any finite pair of versions
// is totally ordered.
type Version []int

// ParseVersion parses a dotted version string. It never fails: empty input
// yields the 1.0.0 default and non-numeric components become zero.
func ParseVersion(s string) Version {
	s = strings.TrimSpace(s)
	if s == "" {
		s = defaultVersionString
	}

	parts := strings.Split(s, ".")
	v := make(Version, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			n = 0
		}
		v[i] = n
	}
	return v
}

// Compare returns -1, 0 or 1 as v is ordered before, equal to, or after o.
func (v Version) Compare(o Version) int {
	size := len(v)
	if len(o) > size {
		size = len(o)
	}

	for i := 0; i < size; i++ {
		var a, b int
		if i < len(v) {
			a = v[i]
		}
		if i < len(o) {
			b = o[i]
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
	}
	return 0
}

// String renders the version back to dotted form.
func (v Version) String() string {
	if len(v) == 0 {
		return defaultVersionString
	}

	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// DocumentVersion extracts the version of a parsed document bag.
// A missing or unrecognized version key falls back to 1.0.0.
func DocumentVersion(bag map[string]any) Version {
	return documentVersion(bag)
}

func documentVersion(bag map[string]any) Version {
	raw, ok := bag[VersionKey]
	if !ok {
		return ParseVersion(defaultVersionString)
	}

	switch v := raw.(type) {
	case string:
		return ParseVersion(v)
	case float64:
		// JSON numbers arrive as float64; 1.2 means "1.2".
		return ParseVersion(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		return ParseVersion(strconv.Itoa(v))
	default:
		return ParseVersion(defaultVersionString)
	}
}
