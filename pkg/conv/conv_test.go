package conv

import (
	"reflect"
	"testing"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		in     any
		want   float64
		wantOK bool
	}{
		{3.14, 3.14, true},
		{float32(1.5), 1.5, true},
		{7, 7.0, true},
		{int64(8), 8.0, true},
		{int32(9), 9.0, true},
		{true, 1.0, true},
		{false, 0.0, true},
		{"3.14", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := ToFloat64(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ToFloat64(%v) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSliceAnyToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"strings", []any{"a", "b"}, []string{"a", "b"}},
		{"mixed with numbers", []any{"a", 3, 4.0}, []string{"a", "3", "4"}},
		{"unconvertible skipped", []any{"a", struct{}{}}, []string{"a"}},
		{"not a slice", "a", nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SliceAnyToString(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SliceAnyToString(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfigGet(t *testing.T) {
	m := map[string]any{"path": "data/relievers.csv", "refresh": false, "n": 3}

	if got := ConfigGet(m, "path", ""); got != "data/relievers.csv" {
		t.Errorf("ConfigGet(path) = %q", got)
	}
	if got := ConfigGet(m, "refresh", true); got != false {
		t.Errorf("ConfigGet(refresh) = %v", got)
	}
	if got := ConfigGet(m, "missing", "fallback"); got != "fallback" {
		t.Errorf("ConfigGet(missing) = %q", got)
	}
	// wrong type falls back to the default
	if got := ConfigGet(m, "n", "default"); got != "default" {
		t.Errorf("ConfigGet(type mismatch) = %q", got)
	}
	if got := ConfigGet(nil, "path", "d"); got != "d" {
		t.Errorf("ConfigGet(nil map) = %q", got)
	}
}

func TestConfigGetFloat64(t *testing.T) {
	m := map[string]any{"float": 2.5, "int": 3, "str": "x"}

	if got := ConfigGetFloat64(m, "float", 0); got != 2.5 {
		t.Errorf("ConfigGetFloat64(float) = %v", got)
	}
	// yaml decodes whole numbers as int
	if got := ConfigGetFloat64(m, "int", 0); got != 3.0 {
		t.Errorf("ConfigGetFloat64(int) = %v", got)
	}
	if got := ConfigGetFloat64(m, "str", 1.5); got != 1.5 {
		t.Errorf("ConfigGetFloat64(str) = %v", got)
	}
	if got := ConfigGetFloat64(m, "missing", 5.0); got != 5.0 {
		t.Errorf("ConfigGetFloat64(missing) = %v", got)
	}
}
