package log

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestSimpleFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("debug", &buf)

	logger.WithFields(map[string]interface{}{
		"samples":  11,
		"selector": "@e[tag=a b]",
	}).Infof("script %s generated", "abc")

	line := buf.String()
	pattern := regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}\.\d{6} \[INF\] script abc generated samples=11 selector="@e\[tag=a b\]"\n$`)
	if !pattern.MatchString(line) {
		t.Errorf("Unexpected log line: %q", line)
	}
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("warn", &buf)

	logger.Debugf("hidden")
	logger.Infof("hidden")
	logger.Warnf("shown")
	logger.WithField("segment", 2).Errorf("failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug/info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WAR] shown") {
		t.Errorf("Expected warning line, got %q", out)
	}
	if !strings.Contains(out, "[ERR] failed segment=2") {
		t.Errorf("Expected error line with field, got %q", out)
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("chatty", &buf)
	logger.Debugf("hidden")
	logger.Infof("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("Expected info level, got %q", buf.String())
	}
}

func TestNewLogrusLoggerCreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := NewLogrusLogger("info", dir)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	logger.Infof("hello file")

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "[INF] hello file") {
		t.Errorf("Expected log file to contain the message, got %q", string(data))
	}
}

func TestNop(t *testing.T) {
	logger := Nop().WithField("k", "v").WithFields(map[string]interface{}{"a": 1})
	logger.Infof("nothing %d", 1)
}
