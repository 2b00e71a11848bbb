// merge.go: Version-aware structural document merge for Yacla
//
// The merge always starts from the bundled default document as the base:
// every key the default ships is present in the result, keys the user
// customized keep the user's value, and keys the user added survive. Nested
// mappings present on both sides merge field by field; a type mismatch
// (scalar vs mapping) is not an error - the user's value replaces the
// default wholesale. The reserved `version` key is the single exception:
// the merged document always carries the default's version, which is what
// bumps the file forward after an update.
//
// Two variants exist for the two supported formats:
// - MergeBags operates on flat bags (JSON path).
// - mergeMappingNodes operates on yaml.Node trees and additionally
//   transplants the user's comments onto merged nodes, so regenerated YAML
//   keeps inline and leading comments on keys the user touched.
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	"strings"

	"github.com/tidwall/sjson"
	"go.yaml.in/yaml/v3"
)

// MergeBags merges a current (user) bag over a default bag and returns a new
// bag. Neither input is modified. Key comparison is case-sensitive exact
// match; the version key keeps the default's value.
func MergeBags(def, cur map[string]any) map[string]any {
	merged := cloneBag(def)
	mergeBagInto(merged, cur, true)
	return merged
}

// mergeBagInto merges cur into base in place. root guards the version key:
// only the top-level version is reserved.
func mergeBagInto(base, cur map[string]any, root bool) {
	for key, curVal := range cur {
		if root && key == VersionKey {
			continue
		}

		baseVal, exists := base[key]
		if exists {
			baseMap, baseIsMap := baseVal.(map[string]any)
			curMap, curIsMap := curVal.(map[string]any)
			if baseIsMap && curIsMap {
				mergeBagInto(baseMap, curMap, false)
				continue
			}
		}

		// Absent from base, or a non-mapping pair: current wins wholesale.
		base[key] = cloneValue(curVal)
	}
}

// cloneBag deep-copies a bag so merges never alias the parsed inputs.
func cloneBag(src map[string]any) map[string]any {
	if src == nil {
		return make(map[string]any)
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return cloneBag(v)
	case []any:
		cloned := make([]any, len(v))
		for i, item := range v {
			cloned[i] = cloneValue(item)
		}
		return cloned
	default:
		return val
	}
}

// mergeMappingNodes merges the current YAML mapping into a clone of the
// default mapping and returns the merged node. Comment metadata attached to
// the user's nodes is propagated onto the merged result.
func mergeMappingNodes(def, cur *yaml.Node) *yaml.Node {
	base := cloneNode(def)
	mergeNodeInto(base, cur, true)
	return base
}

func mergeNodeInto(base, cur *yaml.Node, root bool) {
	for i := 0; i+1 < len(cur.Content); i += 2 {
		curKey := cur.Content[i]
		curVal := cur.Content[i+1]

		idx := findMappingKey(base, curKey.Value)
		if idx < 0 {
			// User-added key: carried into the merged document as-is,
			// comments included.
			base.Content = append(base.Content, cloneNode(curKey), cloneNode(curVal))
			continue
		}

		baseKey := base.Content[idx]
		baseVal := base.Content[idx+1]
		transplantComments(baseKey, curKey)

		if root && curKey.Value == VersionKey {
			// Version always keeps the default's value; only the user's
			// comments travel.
			transplantComments(baseVal, curVal)
			continue
		}

		if baseVal.Kind == yaml.MappingNode && curVal.Kind == yaml.MappingNode {
			transplantComments(baseVal, curVal)
			mergeNodeInto(baseVal, curVal, false)
			continue
		}

		// Scalar/sequence or type mismatch: the user's node replaces the
		// default's, bringing its own comments.
		base.Content[idx+1] = cloneNode(curVal)
	}
}

// findMappingKey returns the Content index of the key node matching name,
// or -1. Exact case-sensitive comparison, matching the merge policy.
func findMappingKey(mapping *yaml.Node, name string) int {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == name {
			return i
		}
	}
	return -1
}

// transplantComments copies non-empty comment metadata from src onto dst.
// Default-side comments survive only where the user left theirs blank.
func transplantComments(dst, src *yaml.Node) {
	if src.HeadComment != "" {
		dst.HeadComment = src.HeadComment
	}
	if src.LineComment != "" {
		dst.LineComment = src.LineComment
	}
	if src.FootComment != "" {
		dst.FootComment = src.FootComment
	}
}

// cloneNode deep-copies a YAML node including comments and style.
func cloneNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	clone := *n
	if len(n.Content) > 0 {
		clone.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			clone.Content[i] = cloneNode(child)
		}
	}
	return &clone
}

// mergeJSONBytes produces the merged JSON document text. The default
// document's bytes are the base, so its formatting and key order carry
// through; every current-side override is written into it with sjson. The
// version key is never overridden, which leaves the default's value in place.
func mergeJSONBytes(defBytes []byte, def, cur map[string]any) ([]byte, error) {
	out := defBytes

	var apply func(prefix string, defSide, curSide map[string]any) error
	apply = func(prefix string, defSide, curSide map[string]any) error {
		for key, curVal := range curSide {
			if prefix == "" && key == VersionKey {
				continue
			}

			path := escapeJSONPathKey(key)
			if prefix != "" {
				path = prefix + "." + path
			}

			if defSide != nil {
				if defVal, exists := defSide[key]; exists {
					defMap, defIsMap := defVal.(map[string]any)
					curMap, curIsMap := curVal.(map[string]any)
					if defIsMap && curIsMap {
						if err := apply(path, defMap, curMap); err != nil {
							return err
						}
						continue
					}
				}
			}

			var err error
			out, err = sjson.SetBytes(out, path, curVal)
			if err != nil {
				return err
			}
		}
		return nil
	}

	if err := apply("", def, cur); err != nil {
		return nil, err
	}
	return out, nil
}

// escapeJSONPathKey escapes a raw object key for use in a gjson/sjson path.
func escapeJSONPathKey(key string) string {
	if !strings.ContainsAny(key, `.\*?|#@`) {
		return key
	}
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '\\', '*', '?', '|', '#', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
