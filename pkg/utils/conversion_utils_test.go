package utils

import (
	"encoding/json"
	"testing"
)

func TestToFloatCoercion(t *testing.T) {
	cases := []struct {
		in   interface{}
		want float64
	}{
		{"30", 30},
		{" 12.5 ", 12.5},
		{"not-a-number", 0},
		{nil, 0},
		{42.0, 42},
		{7, 7},
		{json.Number("3.25"), 3.25},
	}
	for _, tc := range cases {
		if got := ToFloat(tc.in); got != tc.want {
			t.Errorf("ToFloat(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestToInt64Truncates(t *testing.T) {
	if got := ToInt64("3.9"); got != 3 {
		t.Fatalf("ToInt64(\"3.9\") = %d, want 3", got)
	}
	if got := ToInt64(nil); got != 0 {
		t.Fatalf("ToInt64(nil) = %d, want 0", got)
	}
}

func TestToString(t *testing.T) {
	if got := ToString("  AS01  "); got != "AS01" {
		t.Fatalf("ToString trims: got %q", got)
	}
	if got := ToString(30.0); got != "30" {
		t.Fatalf("ToString(30.0) = %q, want \"30\"", got)
	}
	if got := ToString(nil); got != "" {
		t.Fatalf("ToString(nil) = %q, want empty", got)
	}
}
