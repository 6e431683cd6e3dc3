package logger

import (
	"bytes"
	"strings"
	"testing"
)

func newBufferLogger(level Level) (*bytes.Buffer, Logger) {
	var buf bytes.Buffer
	l := NewWithConfig(Config{
		Level:   level,
		Writer:  &buf,
		NoColor: true,
	})
	return &buf, l
}

func TestLevelFiltering(t *testing.T) {
	buf, l := newBufferLogger(WarnLevel)
	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("output %q contains suppressed levels", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("output %q missing enabled levels", out)
	}
}

func TestWithPrefix(t *testing.T) {
	buf, l := newBufferLogger(InfoLevel)
	l.WithPrefix("sim").Info("tick")
	if !strings.Contains(buf.String(), "[sim]") {
		t.Errorf("output %q missing prefix", buf.String())
	}
}

func TestWithFields(t *testing.T) {
	buf, l := newBufferLogger(InfoLevel)
	l.WithField("t", 1.5).Info("step")
	if !strings.Contains(buf.String(), "t=1.5") {
		t.Errorf("output %q missing field", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"fatal", FatalLevel},
		{"nonsense", InfoLevel},
	}
	for _, test := range tests {
		if got := ParseLevel(test.input); got != test.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", test.input, got, test.want)
		}
	}
}
