package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("got level %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("got format %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("got output %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("timestamp must default on")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Level: "debug", Format: "json"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	cfg = Config{Level: "verbose", Format: "json"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad level")
	}
	cfg = Config{Level: "info", Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad format")
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: "debug", Format: "json"})
	zl := l.GetLogger().Output(&buf)
	zl.Info().Msg("request started")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["message"] != "request started" {
		t.Errorf("got message %v", entry["message"])
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{logger: New(&Config{Format: "json"}).GetLogger().Output(&buf)}
	l.WithComponent("httpop").Info("hello")

	if !strings.Contains(buf.String(), `"component":"httpop"`) {
		t.Errorf("component field missing from %q", buf.String())
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{logger: New(&Config{Format: "json"}).GetLogger().Output(&buf)}
	l.WithError(errTest).Error("request failed")

	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("error field missing from %q", buf.String())
	}
}

var errTest = errString("boom")

type errString string

func (e errString) Error() string { return string(e) }

func TestGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	custom := NewDefault()
	SetGlobalLogger(custom)
	if GetGlobalLogger() != custom {
		t.Error("global logger not installed")
	}
}
