package core

import (
	"testing"
	"time"
)

func TestEntryPool_Reuse(t *testing.T) {
	e := GetEntry()
	e.Level = ErrorLevel
	e.Logger = "pool.test"
	e.Message = "boom"
	e.Fields = append(e.Fields, Field{Key: "k", Type: StringType, Str: "v"})
	PutEntry(e)

	e2 := GetEntry()
	if e2.Message != "" {
		t.Errorf("pooled entry kept message %q", e2.Message)
	}
	if e2.Logger != "" {
		t.Errorf("pooled entry kept logger name %q", e2.Logger)
	}
	if len(e2.Fields) != 0 {
		t.Errorf("pooled entry kept %d fields", len(e2.Fields))
	}
	if e2.Caller.Defined {
		t.Error("pooled entry kept caller info")
	}
	PutEntry(e2)
}

func TestPutEntry_Nil(t *testing.T) {
	// Must not panic
	PutEntry(nil)
}

func TestGetEntry_TimeSet(t *testing.T) {
	before := time.Now()
	e := GetEntry()
	if e.Time.Before(before.Add(-time.Second)) {
		t.Errorf("GetEntry time not refreshed: %v", e.Time)
	}
	PutEntry(e)
}

func TestGetCaller(t *testing.T) {
	c := GetCaller(1)
	if !c.Defined {
		t.Fatal("expected caller to be defined")
	}
	if c.ShortFile != "entry_test.go" {
		t.Errorf("ShortFile = %q, want entry_test.go", c.ShortFile)
	}
	if c.Line <= 0 {
		t.Errorf("Line = %d, want > 0", c.Line)
	}
}

func TestGetCaller_TooDeep(t *testing.T) {
	c := GetCaller(1000)
	if c.Defined {
		t.Error("expected undefined caller for absurd skip")
	}
}
