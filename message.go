package balance

import (
	"github.com/PaesslerAG/jsonpath"
)

// messagePaths locate an upstream error message in a response body, in
// priority order.
var messagePaths = []string{
	"$.message",
	"$.error",
	"$.error.message",
	"$.errorDescription",
}

// Message returns the error message an upstream service put at the top of
// its JSON response, if any.
func Message(data []byte) (string, bool) {
	v, err := ParseJSON(data)
	if err != nil {
		return "", false
	}
	return messageIn(v)
}

func messageIn(v any) (string, bool) {
	if _, isObject := v.(map[string]any); !isObject {
		return "", false
	}
	for _, path := range messagePaths {
		jval, err := jsonpath.Get(path, v)
		if err != nil {
			continue
		}
		if s, ok := String(jval); ok {
			return s, true
		}
	}
	return "", false
}

// Lookup evaluates a jsonpath expression against a decoded JSON value and
// returns the first match. jsonpath returns either a single value or a list
// of matches, the first one is kept.
func Lookup(path string, v any) (any, bool) {
	jval, err := jsonpath.Get(path, v)
	if err != nil {
		return nil, false
	}
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return nil, false
		}
		jval = jlist[0]
	}
	return jval, jval != nil
}
