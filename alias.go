package balance

import (
	"reflect"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Aliases is an ordered list of the key names a field may be published
// under. Earlier names win.
type Aliases []string

// Resolve looks for the first usable value of a field in a decoded JSON tree.
// accept converts a raw JSON value into T and reports false when the value
// is not usable.
//
// Keys are tried in priority order on the container itself. When a key holds
// an array its scalar elements are tried in turn. If nothing matches, nested
// objects and arrays are searched breadth first, each container being
// visited at most once.
func Resolve[T any](container any, keys Aliases, accept func(any) (T, bool)) (T, bool) {
	var zero T
	visited := make(map[uintptr]struct{})
	queue := []any{container}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if !visit(visited, node) {
			continue
		}
		switch n := node.(type) {
		case map[string]any:
			if v, ok := resolveKeys(n, keys, accept); ok {
				return v, true
			}
			for _, k := range sortedKeys(n) {
				switch child := n[k].(type) {
				case map[string]any, []any:
					queue = append(queue, child)
				}
			}
		case []any:
			for _, elem := range n {
				switch child := elem.(type) {
				case map[string]any, []any:
					queue = append(queue, child)
				}
			}
		}
	}
	return zero, false
}

// resolveKeys tries keys on a single object, without descending.
func resolveKeys[T any](obj map[string]any, keys Aliases, accept func(any) (T, bool)) (T, bool) {
	for _, k := range keys {
		v, exists := obj[k]
		if !exists || v == nil {
			continue
		}
		if got, ok := accept(v); ok {
			return got, true
		}
		if arr, isArray := v.([]any); isArray {
			for _, elem := range arr {
				switch elem.(type) {
				case map[string]any, []any, nil:
					continue
				}
				if got, ok := accept(elem); ok {
					return got, true
				}
			}
		}
	}
	var zero T
	return zero, false
}

// visit records node in visited and reports whether it was new. Scalars are
// always new.
func visit(visited map[uintptr]struct{}, node any) bool {
	var ptr uintptr
	switch n := node.(type) {
	case map[string]any:
		ptr = reflect.ValueOf(n).Pointer()
	case []any:
		if len(n) == 0 {
			return true
		}
		ptr = reflect.ValueOf(n).Pointer()
	default:
		return true
	}
	if _, seen := visited[ptr]; seen {
		return false
	}
	visited[ptr] = struct{}{}
	return true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// String accepts non blank strings, trimmed.
func String(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Text accepts non blank strings and numbers, the latter in their JSON text
// form. Identifiers are sometimes published as numbers.
func Text(v any) (string, bool) {
	if s, ok := String(v); ok {
		return s, true
	}
	switch v.(type) {
	case bool, map[string]any, []any, nil:
		return "", false
	}
	if d, ok := scalarDecimal(v); ok {
		return d.String(), true
	}
	return "", false
}

// ResolveString resolves a non blank string field.
func ResolveString(container any, keys Aliases) (string, bool) {
	return Resolve(container, keys, String)
}

// ResolveText resolves a field that may be a string or a number.
func ResolveText(container any, keys Aliases) (string, bool) {
	return Resolve(container, keys, Text)
}

// ResolveDecimal resolves a numeric field, see Coerce.
func ResolveDecimal(container any, keys Aliases) (decimal.Decimal, bool) {
	return Resolve(container, keys, Coerce)
}
