package value

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"bytes", []byte("raw"), "raw"},
		{"json number", json.Number("42"), "42"},
		{"whole float", float64(7), "7"},
		{"fractional float", 1.5, "1.5"},
		{"int", 13, "13"},
		{"bool", true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input); got != tt.want {
				t.Fatalf("Text(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextSlice(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"nil", nil, nil},
		{"single string", "a", []string{"a"}},
		{"empty string dropped", "", nil},
		{"string slice", []string{"a", "", "b"}, []string{"a", "b"}},
		{"any slice", []any{"a", 2, nil}, []string{"a", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextSlice(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("TextSlice(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInt(t *testing.T) {
	if got := Int("123"); got != 123 {
		t.Fatalf("Int(\"123\") = %d, want 123", got)
	}
	if got := Int(" 7 "); got != 7 {
		t.Fatalf("Int(\" 7 \") = %d, want 7", got)
	}
	if got := Int(nil); got != 0 {
		t.Fatalf("Int(nil) = %d, want 0", got)
	}
}

func TestBool(t *testing.T) {
	for _, truthy := range []any{true, 1, "true", "1", "yes", "ON"} {
		if !Bool(truthy) {
			t.Fatalf("Bool(%v) = false, want true", truthy)
		}
	}
	for _, falsy := range []any{nil, false, 0, "", "no", "off"} {
		if Bool(falsy) {
			t.Fatalf("Bool(%v) = true, want false", falsy)
		}
	}
}
