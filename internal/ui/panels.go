package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/audio"
	"github.com/litescript/ls-orrery/internal/designer"
	"github.com/litescript/ls-orrery/internal/state"
)

// Meter colors
const (
	colorLevelHigh   = "#7CFC00" // Lawn green - strong band
	colorLevelMedium = "#FFD700" // Gold
	colorLevelLow    = "#FF6347" // Tomato
	colorLevelNone   = "#444444" // Dark gray - silent
	colorBeat        = "#FF4500"
)

// RenderHUD renders the status block under the canvas.
// Format:
//
//	◆ Core  point  (0, 0)  ring 2/3 r=150 ×5
//	♪ 128 BPM  sync on  hue smooth 212°  low ███░  mid █░░░  ●
//	history 12  [z]undo  [y]redo  zoom 1x  objects 16
func RenderHUD(snap state.Snapshot) string {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	var lines []string

	// Selection line
	if sel, ok := findPlacement(snap, snap.Selected); ok {
		kind := string(sel.Shape)
		if sel.Group {
			kind = "group"
		}
		line := headerStyle.Render("◆ "+sel.Name) + "  " +
			dimStyle.Render(kind) + "  " +
			valueStyle.Render(fmt.Sprintf("(%.0f, %.0f)", sel.State.X, sel.State.Y))
		if n := len(snap.Rings); n > 0 {
			r := snap.Rings[snap.ActiveRing]
			line += "  " + dimStyle.Render("ring ") +
				valueStyle.Render(fmt.Sprintf("%d/%d r=%.0f ×%d", snap.ActiveRing+1, n, r.Radius, r.Count))
		}
		lines = append(lines, line)
	} else {
		lines = append(lines, dimStyle.Render("nothing selected · tab to pick an object"))
	}

	// Audio line
	sync := "off"
	if snap.TempoSync {
		sync = "on"
	}
	play := "■"
	if snap.Playing {
		play = "♪"
	}
	hueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(hueColor(snap.Frame)))
	audioLine := valueStyle.Render(fmt.Sprintf("%s %d BPM", play, snap.BPM)) + "  " +
		dimStyle.Render("sync ") + valueStyle.Render(sync) + "  " +
		dimStyle.Render("hue ") + valueStyle.Render(snap.ModeName+" ") +
		hueStyle.Render(fmt.Sprintf("%.0f°", snap.Frame.Hue))
	if snap.Playing {
		audioLine += "  " + RenderLevelBar("low", snap.Frame.Low) +
			"  " + RenderLevelBar("mid", snap.Frame.Mid)
		if snap.Frame.Beat {
			audioLine += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color(colorBeat)).Render("●")
		}
	}
	lines = append(lines, audioLine)

	// History line
	undo, redo := dimStyle, dimStyle
	if snap.CanUndo {
		undo = valueStyle
	}
	if snap.CanRedo {
		redo = valueStyle
	}
	lines = append(lines,
		dimStyle.Render(fmt.Sprintf("history %d  ", snap.HistoryLen))+
			undo.Render("[z]undo")+"  "+redo.Render("[y]redo")+"  "+
			dimStyle.Render(fmt.Sprintf("zoom %.2gx  objects %d", snap.Settings.Zoom, len(snap.Objects))))

	return strings.Join(lines, "\n")
}

// RenderDesignerPanel lists the retained suggestions, newest first, each
// with its accent swatch and tempo.
func RenderDesignerPanel(designs []designer.Design) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	lines := []string{titleStyle.Render("Designer") + dimStyle.Render("  [g] new  [1-9] apply  [d] close")}
	if len(designs) == 0 {
		return lines[0] + "\n" + dimStyle.Render("  no designs yet")
	}
	for i, d := range designs {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(d.Accent)).Render("██")
		lines = append(lines, fmt.Sprintf("  %d %s %-22s %s",
			i+1, swatch, d.Name, dimStyle.Render(fmt.Sprintf("%d BPM  %s", d.BPM, d.Satellites.Shape))))
	}
	return strings.Join(lines, "\n")
}

// RenderLevelBar renders a band level (0-255) as a 4-character meter.
// Format: low ██░░
func RenderLevelBar(name string, level float64) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(levelColor(level)))
	return labelStyle.Render(name+" ") + barStyle.Render(levelBar(level))
}

// levelBar converts a band level to a 4-character bar representation.
func levelBar(level float64) string {
	n := int(level / 256 * 5)
	if n > 4 {
		n = 4
	}
	if n < 0 {
		n = 0
	}
	return strings.Repeat("█", n) + strings.Repeat("░", 4-n)
}

// levelColor returns the color for a band level.
func levelColor(level float64) string {
	switch {
	case level >= 160:
		return colorLevelHigh
	case level >= 100:
		return colorLevelMedium
	case level > 0:
		return colorLevelLow
	default:
		return colorLevelNone
	}
}

func hueColor(f audio.Frame) string {
	if f.Color != "" {
		return f.Color
	}
	return "#ffffff"
}
