// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package fieldkey

import (
	"strings"
	"unicode"
)

// Key returns the canonical form of a field name: lowercase with
// underscores, hyphens, dots and whitespace removed.
func Key(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r == '_', r == '-', r == '.', unicode.IsSpace(r):
			continue
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Map converts a decoded JSON object to canonical key form.
//
// Nested objects and arrays of objects are converted recursively. When two
// keys fold to the same canonical key, the one that sorts last in the input
// spelling wins so the result does not depend on map iteration order.
//
// Parameters:
//   - in: Decoded JSON object
//
// Returns:
//   - map[string]any: New map with canonical keys, in is left untouched
func Map(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	origin := make(map[string]string, len(in))
	for k, v := range in {
		key := Key(k)
		if prev, ok := origin[key]; ok && prev > k {
			continue
		}
		origin[key] = k
		out[key] = Value(v)
	}
	return out
}

// Value canonicalizes the keys of every object reachable from v.
func Value(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Map(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Value(e)
		}
		return out
	default:
		return v
	}
}

// Lookup returns the first present value among the canonical aliases.
func Lookup(m map[string]any, aliases ...string) (any, bool) {
	for _, a := range aliases {
		if v, ok := m[a]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}
