package balance

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// WrapperKeys are the keys under which providers commonly wrap their list of
// records.
var WrapperKeys = Aliases{"accounts", "cards", "balances", "items", "data", "list", "result", "results", "wallets", "jars"}

// Cascade decodes a provider payload whose schema is not fixed. It tries, in
// order:
//
//  1. the provider's strict typed shape,
//  2. a top-level object wrapping an array under one of the wrapper keys,
//  3. a breadth first search of the generic JSON tree for arrays of objects,
//  4. an empty body.
//
// The first attempt that yields a non-empty list wins. In attempts 2 and 3
// every object is validated on its own, invalid ones are skipped.
type Cascade[N any] struct {
	Provider Provider
	// Strict decodes the provider's documented shape. Optional.
	Strict func(data []byte) ([]N, bool)
	// Element validates and converts one generic JSON object.
	Element func(obj map[string]any) (N, bool)
	// Wrappers overrides WrapperKeys when not nil.
	Wrappers Aliases
}

// Decode runs the cascade on data.
//
// When no attempt succeeds, an explicitly empty collection is an empty list,
// even next to a status message. Otherwise an error message published at the
// top of the payload is returned as a GenericMessage error, and any other
// payload is DecodingFailed.
func (c Cascade[N]) Decode(data []byte) ([]N, error) {
	attempts := []func([]byte) ([]N, bool){
		c.strict,
		c.wrapped,
		c.search,
		emptyBody[N],
	}
	for _, attempt := range attempts {
		if got, ok := attempt(data); ok {
			return got, nil
		}
	}

	v, err := ParseJSON(data)
	if err != nil {
		return nil, DecodingError(c.Provider, "invalid json: %v", err)
	}
	if c.emptyCollection(v) {
		return []N{}, nil
	}
	if msg, ok := messageIn(v); ok {
		return nil, MessageError(c.Provider, msg)
	}
	return nil, DecodingError(c.Provider, "no record found in %s", describe(v))
}

func (c Cascade[N]) wrappers() Aliases {
	if c.Wrappers != nil {
		return c.Wrappers
	}
	return WrapperKeys
}

func (c Cascade[N]) strict(data []byte) ([]N, bool) {
	if c.Strict == nil {
		return nil, false
	}
	got, ok := c.Strict(data)
	return got, ok && len(got) > 0
}

// wrapped decodes {"<wrapper>": [...]} element by element.
func (c Cascade[N]) wrapped(data []byte) ([]N, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, false
	}
	for _, key := range c.wrappers() {
		raw, exists := obj[key]
		if !exists {
			continue
		}
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			continue
		}
		var got []N
		for _, elem := range elems {
			v, err := ParseJSON(elem)
			if err != nil {
				continue
			}
			if n, ok := c.element(v); ok {
				got = append(got, n)
			}
		}
		if len(got) > 0 {
			return got, true
		}
	}
	return nil, false
}

// search walks the generic JSON tree level by level. On each level, every
// array of objects held by a wrapper key (or the root itself when it is an
// array) is gathered before validation, so the first level with a valid
// object wins as a whole.
func (c Cascade[N]) search(data []byte) ([]N, bool) {
	root, err := ParseJSON(data)
	if err != nil {
		return nil, false
	}
	visited := make(map[uintptr]struct{})
	level := []any{root}
	for depth := 0; len(level) > 0; depth++ {
		var candidates []any
		var next []any
		for _, node := range level {
			if !visit(visited, node) {
				continue
			}
			switch n := node.(type) {
			case map[string]any:
				for _, key := range c.wrappers() {
					if arr, ok := n[key].([]any); ok {
						candidates = append(candidates, arr...)
					}
				}
				for _, k := range sortedKeys(n) {
					switch child := n[k].(type) {
					case map[string]any, []any:
						next = append(next, child)
					}
				}
			case []any:
				if depth == 0 {
					candidates = append(candidates, n...)
				}
				for _, elem := range n {
					switch child := elem.(type) {
					case map[string]any, []any:
						next = append(next, child)
					}
				}
			}
		}
		var got []N
		for _, cand := range candidates {
			if n, ok := c.element(cand); ok {
				got = append(got, n)
			}
		}
		if len(got) > 0 {
			return got, true
		}
		level = next
	}
	return nil, false
}

func (c Cascade[N]) element(v any) (N, bool) {
	obj, ok := v.(map[string]any)
	if !ok || c.Element == nil {
		var zero N
		return zero, false
	}
	return c.Element(obj)
}

// emptyCollection reports whether v explicitly holds no record: an empty
// array, or an object whose wrapper keys only hold empty arrays.
func (c Cascade[N]) emptyCollection(v any) bool {
	switch n := v.(type) {
	case []any:
		return len(n) == 0
	case map[string]any:
		found := false
		for _, key := range c.wrappers() {
			arr, ok := n[key].([]any)
			if !ok {
				continue
			}
			if len(arr) > 0 {
				return false
			}
			found = true
		}
		return found
	}
	return false
}

func emptyBody[N any](data []byte) ([]N, bool) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []N{}, true
	}
	return nil, false
}

// ParseJSON decodes data into a generic value, keeping numbers as
// json.Number so that no precision is lost.
func ParseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after the top-level value")
	}
	return v, nil
}

// StrictList decodes data either as an array of T, or as an object holding
// that array under key. Decoding is exact: any type mismatch fails.
func StrictList[T any](data []byte, key string) ([]T, bool) {
	var list []T
	if err := decodeNumbers(data, &list); err == nil {
		return list, true
	}
	var obj map[string]json.RawMessage
	if err := decodeNumbers(data, &obj); err != nil {
		return nil, false
	}
	raw, exists := obj[key]
	if !exists {
		return nil, false
	}
	if err := decodeNumbers(raw, &list); err != nil {
		return nil, false
	}
	return list, true
}

func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// describe summarizes the top of a JSON value for diagnostics.
func describe(v any) string {
	switch n := v.(type) {
	case map[string]any:
		return fmt.Sprintf("object with keys [%s]", strings.Join(sortedKeys(n), ", "))
	case []any:
		return fmt.Sprintf("array of %d elements", len(n))
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T value", v)
	}
}
