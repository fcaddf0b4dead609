package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/jwebster45206/graphquest/internal/config"
)

func TestSetup_TextInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogLevel = slog.LevelDebug

	log := Setup(cfg, &buf)
	WithMode(log, "single").Debug("Moved", "node", 2)

	out := buf.String()
	if !strings.Contains(out, "msg=Moved") || !strings.Contains(out, "mode=single") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestSetup_JSONInProduction(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Environment = "production"

	log := Setup(cfg, &buf)
	WithError(log, errors.New("boom")).Info("Load failed")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "Load failed" || rec["error"] != "boom" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestSetup_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogLevel = slog.LevelWarn

	log := Setup(cfg, &buf)
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
}
