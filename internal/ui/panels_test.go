package ui

import (
	"strings"
	"testing"

	"github.com/litescript/ls-orrery/internal/audio"
	"github.com/litescript/ls-orrery/internal/designer"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
)

func TestLevelBar(t *testing.T) {
	tests := []struct {
		level float64
		bar   string
		color string
	}{
		{0, "░░░░", colorLevelNone},
		{60, "█░░░", colorLevelLow},
		{120, "██░░", colorLevelMedium},
		{255, "████", colorLevelHigh},
		{300, "████", colorLevelHigh},
	}
	for _, tt := range tests {
		if got := levelBar(tt.level); got != tt.bar {
			t.Errorf("levelBar(%v) = %q, want %q", tt.level, got, tt.bar)
		}
		if got := levelColor(tt.level); got != tt.color {
			t.Errorf("levelColor(%v) = %q, want %q", tt.level, got, tt.color)
		}
	}
}

func TestRenderHUD(t *testing.T) {
	snap := testSnapshot(state.Placement{ID: "p", Name: "Vega", Shape: scene.ShapeStar})
	snap.Selected = "p"
	snap.Rings = []scene.Ring{{Radius: 100, Count: 5}, {Radius: 150, Count: 3}}
	snap.ActiveRing = 1
	snap.BPM = 128
	snap.ModeName = "chaos"
	snap.Playing = true
	snap.Frame = audio.Frame{Low: 200, Mid: 40, Beat: true, Hue: 212, Color: "#3366cc"}

	hud := RenderHUD(snap)
	for _, want := range []string{"Vega", "star", "ring 2/2 r=150 ×3", "128 BPM", "chaos", "212°", "low", "history"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD missing %q:\n%s", want, hud)
		}
	}

	snap.Selected = ""
	if !strings.Contains(RenderHUD(snap), "nothing selected") {
		t.Error("HUD should prompt for a selection")
	}
}

func TestRenderDesignerPanel(t *testing.T) {
	if !strings.Contains(RenderDesignerPanel(nil), "no designs yet") {
		t.Error("empty panel should say so")
	}
	panel := RenderDesignerPanel([]designer.Design{
		{ID: "a", Name: "Nova 42", Accent: "#ff0000", BPM: 120, Satellites: designer.SatelliteStyle{Shape: scene.ShapeLine}},
		{ID: "b", Name: "Pulse 7", Accent: "#00ff00", BPM: 90},
	})
	if !strings.Contains(panel, "1") || !strings.Contains(panel, "Nova 42") || !strings.Contains(panel, "120 BPM  line") {
		t.Errorf("panel = %s", panel)
	}
	if strings.Index(panel, "Nova 42") > strings.Index(panel, "Pulse 7") {
		t.Error("designs should keep their order")
	}
}
