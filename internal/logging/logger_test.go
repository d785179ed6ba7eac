package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_FileSinkReceivesPlainLines(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "run.log")
	l, err := New(ColorNever, false, logFile)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	l.Info("hello %s", "world")
	l.Warn("careful")
	l.Debug("hidden when not verbose")
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(raw)
	if !strings.Contains(content, "[INFO] hello world") {
		t.Fatalf("missing info line in %q", content)
	}
	if !strings.Contains(content, "[WARN] careful") {
		t.Fatalf("missing warn line in %q", content)
	}
	if strings.Contains(content, "hidden") {
		t.Fatalf("debug line leaked into non-verbose log: %q", content)
	}
	if strings.Contains(content, "\033[") {
		t.Fatalf("ANSI codes leaked into file sink: %q", content)
	}
}

func TestLogger_VerboseEnablesDebug(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "run.log")
	l, err := New(ColorNever, true, logFile)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	l.Debug("visible")
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(raw), "[DEBUG] visible") {
		t.Fatalf("expected debug line, got %q", string(raw))
	}
}
