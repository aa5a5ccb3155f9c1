package core

import (
	"errors"
	"testing"
	"time"
)

func TestField_StringValue(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{"string", String("k", "hello"), "hello"},
		{"int", Int("k", 42), "42"},
		{"int64", Int64("k", -7), "-7"},
		{"float", Float64("k", 3.14), "3.14"},
		{"bool true", Bool("k", true), "true"},
		{"bool false", Bool("k", false), "false"},
		{"time", Time("k", ts), ts.Format(time.RFC3339)},
		{"duration", Duration("k", 1500*time.Millisecond), "1.5s"},
		{"error", Err(errors.New("bad")), "bad"},
		{"any", Any("k", []int{1, 2}), "[1 2]"},
	}

	for _, tt := range tests {
		if got := tt.field.StringValue(); got != tt.want {
			t.Errorf("%s: StringValue() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestField_Constructors(t *testing.T) {
	if f := Int("count", 3); f.Type != IntType || f.Int64 != 3 || f.Key != "count" {
		t.Errorf("Int() = %+v", f)
	}
	if f := Bool("ok", true); f.Int64 != 1 {
		t.Errorf("Bool(true).Int64 = %d, want 1", f.Int64)
	}
	if f := Err(nil); f.Key != "error" || f.Str != "" {
		t.Errorf("Err(nil) = %+v", f)
	}
	if f := Err(errors.New("boom")); f.Str != "boom" {
		t.Errorf("Err().Str = %q", f.Str)
	}
}
