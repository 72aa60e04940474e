package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "[WARN] shown 2") {
		t.Errorf("output = %q", out)
	}
	if l.Enabled(LevelDebug) || !l.Enabled(LevelError) {
		t.Error("Enabled mismatch")
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelDebug)
	root.SetOutput(&buf)

	child := root.With("audio").With("engine")
	child.Debug("tick")
	if !strings.Contains(buf.String(), "[DEBUG] audio.engine: tick") {
		t.Errorf("output = %q", buf.String())
	}

	root.SetLevel(LevelError)
	buf.Reset()
	child.Info("muted")
	if buf.Len() != 0 {
		t.Error("child should share the parent's level")
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo)
	l.SetOutput(&buf)

	w := l.With("http").Writer(LevelInfo)
	n, err := w.Write([]byte("GET / 200\nPOST /x 201\n"))
	if err != nil || n != 22 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[1], "http: POST /x 201") {
		t.Errorf("lines = %q", lines)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	if l.Enabled(LevelError) {
		t.Error("Discard should disable every level")
	}
}
