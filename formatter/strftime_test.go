package formatter

import (
	"testing"
	"time"
)

func TestStrftimeLayout(t *testing.T) {
	tests := []struct {
		datefmt string
		want    string
	}{
		{"%Y-%m-%d %H:%M:%S", "2006-01-02 15:04:05"},
		{"%d/%b/%Y", "02/Jan/2006"},
		{"%I:%M %p", "03:04 PM"},
		{"%a %A %b %B", "Mon Monday Jan January"},
		{"%y%j", "06002"},
		{"%H:%M:%S %z %Z", "15:04:05 -0700 MST"},
		{"100%%", "100%"},
		{"", ""},
	}

	for _, tt := range tests {
		got, err := StrftimeLayout(tt.datefmt)
		if err != nil {
			t.Errorf("StrftimeLayout(%q) error = %v", tt.datefmt, err)
			continue
		}
		if got != tt.want {
			t.Errorf("StrftimeLayout(%q) = %q, want %q", tt.datefmt, got, tt.want)
		}
	}
}

func TestStrftimeLayout_RoundTrip(t *testing.T) {
	layout, err := StrftimeLayout("%Y-%m-%d %H:%M:%S")
	if err != nil {
		t.Fatalf("StrftimeLayout() error = %v", err)
	}

	ts := time.Date(2026, 2, 18, 13, 5, 9, 0, time.UTC)
	if got := ts.Format(layout); got != "2026-02-18 13:05:09" {
		t.Errorf("Format(%q) = %q", layout, got)
	}
}

func TestStrftimeLayout_Errors(t *testing.T) {
	for _, datefmt := range []string{"%Q", "%f", "abc%", "%Y %V"} {
		if _, err := StrftimeLayout(datefmt); err == nil {
			t.Errorf("StrftimeLayout(%q) expected error", datefmt)
		}
	}
}
