package observability

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLogger_ServiceAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "prod", "portal", "warn")
	l.Info().Msg("dropped")
	l.Warn().Int64("service_id", 42).Msg("kept")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if line["service"] != "portal" || line["message"] != "kept" || line["service_id"] != float64(42) {
		t.Fatalf("unexpected line: %v", line)
	}
}

func TestNewLogger_BadLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "prod", "seed", "loud")
	l.Debug().Msg("hidden")
	l.Info().Msg("shown")
	if bytes.Contains(buf.Bytes(), []byte("hidden")) || !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
