package balance

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestResolveString(t *testing.T) {
	tests := []struct {
		name      string
		container any
		keys      Aliases
		want      string
		wantOk    bool
	}{
		{
			name:      "first alias wins",
			container: map[string]any{"name": "second", "title": "first"},
			keys:      Aliases{"title", "name"},
			want:      "first",
			wantOk:    true,
		},
		{
			name:      "null is skipped",
			container: map[string]any{"title": nil, "name": "named"},
			keys:      Aliases{"title", "name"},
			want:      "named",
			wantOk:    true,
		},
		{
			name:      "blank is skipped",
			container: map[string]any{"title": "  ", "name": "named"},
			keys:      Aliases{"title", "name"},
			want:      "named",
			wantOk:    true,
		},
		{
			name:      "wrong type is skipped",
			container: map[string]any{"title": json.Number("12"), "name": "named"},
			keys:      Aliases{"title", "name"},
			want:      "named",
			wantOk:    true,
		},
		{
			name:      "value is trimmed",
			container: map[string]any{"name": "  Black card "},
			keys:      Aliases{"name"},
			want:      "Black card",
			wantOk:    true,
		},
		{
			name:      "own keys before nested ones",
			container: map[string]any{"child": map[string]any{"title": "nested"}, "name": "top"},
			keys:      Aliases{"title", "name"},
			want:      "top",
			wantOk:    true,
		},
		{
			name:      "nested object",
			container: map[string]any{"meta": map[string]any{"info": map[string]any{"name": "deep"}}},
			keys:      Aliases{"name"},
			want:      "deep",
			wantOk:    true,
		},
		{
			name: "breadth first",
			container: map[string]any{
				"a": map[string]any{"b": map[string]any{"name": "deep"}},
				"z": map[string]any{"name": "shallow"},
			},
			keys:   Aliases{"name"},
			want:   "shallow",
			wantOk: true,
		},
		{
			name:      "inside array of objects",
			container: map[string]any{"cards": []any{map[string]any{"name": "card"}}},
			keys:      Aliases{"name"},
			want:      "card",
			wantOk:    true,
		},
		{
			name:      "array of scalars",
			container: map[string]any{"maskedPan": []any{"", "537541******1234"}},
			keys:      Aliases{"maskedPan"},
			want:      "537541******1234",
			wantOk:    true,
		},
		{
			name:      "not found",
			container: map[string]any{"other": "x"},
			keys:      Aliases{"name"},
			wantOk:    false,
		},
		{
			name:      "scalar container",
			container: "name",
			keys:      Aliases{"name"},
			wantOk:    false,
		},
		{
			name:      "nil container",
			container: nil,
			keys:      Aliases{"name"},
			wantOk:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveString(tt.container, tt.keys)
			if ok != tt.wantOk {
				t.Fatalf("ResolveString() ok = %v, want %v", ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("ResolveString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolve_Cycle(t *testing.T) {
	self := map[string]any{"other": "x"}
	self["self"] = self
	if got, ok := ResolveString(self, Aliases{"name"}); ok {
		t.Errorf("ResolveString() on a cycle = %q, want not found", got)
	}

	root := map[string]any{}
	child := map[string]any{"name": "child", "parent": root}
	root["child"] = child
	if got, ok := ResolveString(root, Aliases{"name"}); !ok || got != "child" {
		t.Errorf("ResolveString() = %q, %v, want %q", got, ok, "child")
	}
}

func TestResolveText(t *testing.T) {
	tests := []struct {
		name      string
		container map[string]any
		want      string
		wantOk    bool
	}{
		{name: "string", container: map[string]any{"id": "abc"}, want: "abc", wantOk: true},
		{name: "number", container: map[string]any{"id": json.Number("42")}, want: "42", wantOk: true},
		{name: "bool", container: map[string]any{"id": true}, wantOk: false},
		{name: "object", container: map[string]any{"id": map[string]any{}}, wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveText(tt.container, Aliases{"id"})
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("ResolveText() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestResolveDecimal(t *testing.T) {
	container := map[string]any{
		"balance": "n/a",
		"rest":    "100,50",
		"amount":  json.Number("1"),
	}
	got, ok := ResolveDecimal(container, Aliases{"balance", "rest", "amount"})
	if !ok {
		t.Fatal("ResolveDecimal() found nothing")
	}
	if want := decimal.RequireFromString("100.50"); !got.Equal(want) {
		t.Errorf("ResolveDecimal() = %v, want %v", got, want)
	}
}
