package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"
)

func TestInfoWritesFields(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "info")
	t.Cleanup(func() { Configure(os.Stdout, "info") })

	Info("resume.created", map[string]any{"resume_id": "r1", "error": errors.New("boom")})

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["message"] != "resume.created" || line["level"] != "info" {
		t.Fatalf("unexpected line: %v", line)
	}
	if line["resume_id"] != "r1" || line["error"] != "boom" {
		t.Fatalf("unexpected fields: %v", line)
	}
	if _, ok := line["ts"]; !ok {
		t.Fatalf("missing ts field: %v", line)
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "warn")
	t.Cleanup(func() { Configure(os.Stdout, "info") })

	Debug("noisy", nil)
	Info("also noisy", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	Warn("kept", nil)
	if buf.Len() == 0 {
		t.Fatalf("expected warn line")
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "chatty")
	t.Cleanup(func() { Configure(os.Stdout, "info") })

	Debug("hidden", nil)
	Info("shown", nil)
	if bytes.Count(buf.Bytes(), []byte("\n")) != 1 {
		t.Fatalf("expected exactly one line, got %q", buf.String())
	}
}
