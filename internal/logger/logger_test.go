package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	SetJSONWriter(&buf)
	defer SetConsoleWriter(&bytes.Buffer{}, true)
	if err := SetLevel("debug"); err != nil {
		t.Fatal(err)
	}

	l := Component("mapgen")
	l.Info().Int("width", 80).Msg("generated")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	want := map[string]interface{}{
		"level":     "info",
		"component": "mapgen",
		"message":   "generated",
		"width":     float64(80),
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing timestamp")
	}
}

func TestSetLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	SetJSONWriter(&buf)
	defer SetConsoleWriter(&bytes.Buffer{}, true)

	if err := SetLevel("WARN"); err != nil {
		t.Fatal(err)
	}
	Log().Info().Msg("hidden")
	Log().Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output %q", out)
	}
	if err := SetLevel("debug"); err != nil {
		t.Fatal(err)
	}
}

func TestSetLevelRejectsUnknown(t *testing.T) {
	if err := SetLevel("loud"); err == nil {
		t.Error("expected error")
	}
}

func TestSetupRejectsUnknownFormat(t *testing.T) {
	if err := Setup("xml", ""); err == nil {
		t.Error("expected error")
	}
}

func TestConsoleShortLevels(t *testing.T) {
	var buf bytes.Buffer
	SetConsoleWriter(&buf, true)
	defer SetConsoleWriter(&bytes.Buffer{}, true)
	if err := SetLevel("debug"); err != nil {
		t.Fatal(err)
	}

	Log().Warn().Msg("careful")
	if out := buf.String(); !strings.Contains(out, "WRN") || !strings.Contains(out, "careful") {
		t.Errorf("unexpected console line %q", out)
	}
}

func TestFormatLevel(t *testing.T) {
	f := formatLevel(true)
	tests := map[interface{}]string{
		"trace": "TRC",
		"debug": "DBG",
		"info":  "INF",
		"error": "ERR",
		"bogus": "???",
		nil:     "???",
	}
	for in, want := range tests {
		if got := f(in); got != want {
			t.Errorf("formatLevel(%v) = %q, want %q", in, got, want)
		}
	}
}
