package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, false)
	if log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level: got %v, want info", log.GetLevel())
	}

	log.Debug("hidden")
	log.WithField("seams", 3).Info("resize complete")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if entry["msg"] != "resize complete" || entry["seams"] != float64(3) {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNewWithOutput_Debug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, true)
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level: got %v, want debug", log.GetLevel())
	}
	if !strings.Contains(buf.String(), "Debug logging enabled") {
		t.Errorf("missing startup line: %q", buf.String())
	}
}
