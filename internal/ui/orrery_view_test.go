package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/store"
)

func testSnapshot(objs ...state.Placement) state.Snapshot {
	return state.Snapshot{
		Objects:  objs,
		Settings: store.DefaultSettings(),
	}
}

func glyphAt(grid [][]cell, x, y int) rune {
	if !inside(grid, x, y) {
		return 0
	}
	return grid[y][x].r
}

func TestStepZoom(t *testing.T) {
	tests := []struct {
		cur  float64
		dir  int
		want float64
	}{
		{1, 1, 1.5},
		{1, -1, 0.75},
		{0.25, -1, 0.25},
		{5, 1, 5},
		{1.2, 1, 1.5}, // off-level values snap from the level below
	}
	for _, tt := range tests {
		if got := stepZoom(tt.cur, tt.dir); got != tt.want {
			t.Errorf("stepZoom(%v, %d) = %v, want %v", tt.cur, tt.dir, got, tt.want)
		}
	}
}

func TestCanvasPlacesBodies(t *testing.T) {
	m := NewOrreryModel().SetSize(80, 40)
	m = m.UpdateData(testSnapshot(
		state.Placement{ID: "core", Name: "Core", Shape: scene.ShapePoint, Color: "#ffffff", Opacity: 1, Pinned: true},
		state.Placement{ID: "s", Shape: scene.ShapeStar, Color: "#ff0000", Opacity: 1, State: orbit.State{X: 225}},
		state.Placement{ID: "ghost", Shape: scene.ShapeCircle, Color: "#00ff00", Opacity: 0, State: orbit.State{Y: 100}},
	))
	grid := m.buildCanvas()

	// 80 columns span 900 world units, so the center is (40, 20) and
	// x=225 lands 20 columns right.
	if g := glyphAt(grid, 40, 20); g != '◇' {
		t.Errorf("core glyph = %q", g)
	}
	if g := glyphAt(grid, 60, 20); g != '★' {
		t.Errorf("star glyph = %q", g)
	}
	if !strings.Contains(string(runesOf(grid[20])), "Core") {
		t.Error("pinned core should be labelled")
	}
	for _, row := range grid {
		for _, c := range row {
			if c.r == '•' {
				t.Fatal("transparent object should not be drawn")
			}
		}
	}
}

func TestCanvasSelectionAndRings(t *testing.T) {
	m := NewOrreryModel().SetSize(80, 40)
	snap := testSnapshot(state.Placement{ID: "p", Name: "Planet", Shape: scene.ShapeCircle, Color: "#ffffff", Opacity: 1, Selected: true})
	snap.Selected = "p"
	snap.Rings = []scene.Ring{{Key: "g", GroupID: "g", Radius: 225, Count: 5}}
	m = m.UpdateData(snap)
	grid := m.buildCanvas()

	if g := glyphAt(grid, 40, 20); g != '●' {
		t.Errorf("selected glyph = %q", g)
	}
	if !grid[20][40].bold {
		t.Error("selection should be bold")
	}
	// Guide circle of radius 20 cells passes through (60, 20).
	if g := glyphAt(grid, 60, 20); g != '·' {
		t.Errorf("ring guide glyph = %q", g)
	}
	if !strings.Contains(string(runesOf(grid[20])), "◄ Planet") {
		t.Error("selection should be labelled")
	}
}

func TestCanvasTrail(t *testing.T) {
	m := NewOrreryModel().SetSize(80, 40)
	m = m.UpdateData(testSnapshot(state.Placement{
		ID: "c", Shape: scene.ShapeCircle, Color: "#ffffff", Opacity: 1,
		State:   orbit.State{X: 225},
		Outline: []orbit.Point{{X: 225, Y: 0}, {X: 225, Y: 90}},
	}))
	grid := m.buildCanvas()
	// 90 world units down is 4 rows at half vertical scale.
	for y := 21; y <= 24; y++ {
		if g := glyphAt(grid, 60, y); g != '·' {
			t.Errorf("trail row %d glyph = %q", y, g)
		}
	}
}

func TestLineGlyph(t *testing.T) {
	tests := []struct {
		deg  float64
		want rune
	}{
		{0, '─'},
		{45, '╲'},
		{90, '│'},
		{135, '╱'},
		{180, '─'},
		{-45, '╱'},
	}
	for _, tt := range tests {
		if got := lineGlyph(tt.deg * 3.141592653589793 / 180); got != tt.want {
			t.Errorf("lineGlyph(%v°) = %q, want %q", tt.deg, got, tt.want)
		}
	}
}

func TestOrreryPan(t *testing.T) {
	m := NewOrreryModel().SetSize(80, 40)
	m = m.UpdateData(testSnapshot())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if x, _ := m.Pan(); x != 50 {
		t.Errorf("pan after left = %v", x)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if x, y := m.Pan(); x != 0 || y != 0 {
		t.Errorf("pan after center = %v, %v", x, y)
	}
}

func TestOrreryTooSmall(t *testing.T) {
	m := NewOrreryModel().SetSize(10, 3)
	if !strings.Contains(m.View(), "too small") {
		t.Error("expected size warning")
	}
}

func runesOf(row []cell) []rune {
	out := make([]rune, len(row))
	for i, c := range row {
		out[i] = c.r
	}
	return out
}
