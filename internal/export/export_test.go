package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-orrery/internal/designer"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
)

func testSnapshot() state.Snapshot {
	return state.Snapshot{
		Elapsed:  2500 * time.Millisecond,
		BPM:      128,
		ModeName: "impulse",
		Objects: []state.Placement{
			{ID: "core", Name: "Core", Shape: scene.ShapePoint, Color: "#ffffff", Opacity: 1},
			{ID: "p", Name: "Planet", Shape: scene.ShapeCircle, ParentID: "core", Color: "#ff0000",
				Opacity: 0.5, State: orbit.State{X: 30, Y: 40, Rotation: 90},
				Outline: []orbit.Point{{X: 30, Y: 40}, {X: 29, Y: 41}}},
		},
		Groups: []state.Placement{
			{ID: "g", Name: "Belt", Group: true, State: orbit.State{X: 5}},
		},
		Suggestions: []designer.Design{{ID: "d1", Name: "Nova 1", Accent: "#00ff00", BPM: 128}},
		Revision:    4,
	}
}

func TestExportFrame(t *testing.T) {
	at := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	export := ExportFrame(testSnapshot(), 120, at)

	if export.Timestamp != at || export.Frame != 120 {
		t.Errorf("header = %v frame %d", export.Timestamp, export.Frame)
	}
	if export.Elapsed != 2.5 || export.BPM != 128 || export.Mode != "impulse" {
		t.Errorf("audio fields = %+v", export)
	}
	if len(export.Bodies) != 2 || len(export.Groups) != 1 {
		t.Fatalf("bodies = %d groups = %d", len(export.Bodies), len(export.Groups))
	}
	p := export.Bodies[1]
	if p.X != 30 || p.Y != 40 || p.Rotation != 90 || p.ParentID != "core" || len(p.Trail) != 2 {
		t.Errorf("planet = %+v", p)
	}
	if len(export.Designs) != 1 || export.Designs[0].Accent != "#00ff00" {
		t.Errorf("designs = %+v", export.Designs)
	}
}

func TestFrameExport_WriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportFrame(testSnapshot(), 1, time.Now()).WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if _, ok := parsed["bodies"]; !ok {
		t.Error("JSON should carry bodies")
	}
	if !strings.Contains(buf.String(), "  ") {
		t.Error("JSON should be indented")
	}
}

func TestWriteDesigns(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDesigns(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty designs = %q", buf.String())
	}
}

func TestGenerateSummaryRows(t *testing.T) {
	rows := GenerateSummaryRows(testSnapshot())
	if len(rows) != 2 {
		t.Fatalf("Rows count = %d, want 2", len(rows))
	}
	row := rows[1]
	if row.Name != "Planet" || row.Parent != "Core" {
		t.Errorf("row = %+v", row)
	}
	if row.Radius != 50 {
		t.Errorf("Radius = %v, want 50", row.Radius)
	}
	if rows[0].Parent != "" || rows[0].Radius != 0 {
		t.Errorf("root row = %+v", rows[0])
	}
}

func TestGenerateSummaryRows_Empty(t *testing.T) {
	if rows := GenerateSummaryRows(state.Snapshot{}); rows != nil {
		t.Errorf("Expected nil for empty frame, got %v", rows)
	}
}

func TestWriteSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	timestamp := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	WriteSummaryTable(&buf, testSnapshot(), timestamp)

	output := buf.String()
	for _, want := range []string{"Orrery @", "2026-01-15", "128 BPM", "impulse", "Planet", "50%", "Total: 2 objects, 1 groups"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q:\n%s", want, output)
		}
	}

	buf.Reset()
	WriteSummaryTable(&buf, state.Snapshot{}, timestamp)
	if !strings.Contains(buf.String(), "No objects") {
		t.Error("empty frame should say so")
	}
}

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"a long object name", 8, "a long.."},
		{"abcdef", 3, "abc"},
		{"Созвездие", 6, "Созв.."},
	}
	for _, tt := range tests {
		if got := truncateStr(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
