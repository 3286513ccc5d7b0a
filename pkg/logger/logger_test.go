package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestWithFieldFlowsThroughContext(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf, Level: zerolog.InfoLevel})

	ctx := logg.WithPropertyID(context.Background(), "prop-1")
	logg.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["property_id"] != "prop-1" {
		t.Fatalf("expected property_id field, got %v", entry)
	}
	if entry["service"] != "test" {
		t.Fatalf("expected service field, got %v", entry)
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if ParseLevel("bogus") != zerolog.InfoLevel {
		t.Fatal("expected info fallback for unknown level")
	}
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatal("expected debug level")
	}
}

func TestErrorIncludesStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	logg.Error(context.Background(), "boom", nil)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["stack"] == nil || entry["stack"] == "" {
		t.Fatal("expected stack trace on error log")
	}
}
