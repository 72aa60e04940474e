// Package export renders resolved frames for headless output.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-orrery/internal/designer"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
)

// FrameExport is the JSON-serializable representation of one frame.
type FrameExport struct {
	Timestamp time.Time      `json:"timestamp"`
	Frame     int            `json:"frame"`
	Elapsed   float64        `json:"elapsed_seconds"`
	BPM       int            `json:"bpm"`
	Mode      string         `json:"mode"`
	Hue       float64        `json:"hue"`
	Playing   bool           `json:"playing"`
	Selected  string         `json:"selected,omitempty"`
	Bodies    []BodyExport   `json:"bodies"`
	Groups    []BodyExport   `json:"groups,omitempty"`
	Revision  uint64         `json:"revision"`
	Designs   []DesignExport `json:"designs,omitempty"`
}

// BodyExport is a JSON-friendly placement with world coordinates.
type BodyExport struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Type     string        `json:"type,omitempty"`
	ParentID string        `json:"parent_id,omitempty"`
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Rotation float64       `json:"rotation_deg"`
	Color    string        `json:"color"`
	Opacity  float64       `json:"opacity"`
	Trail    []orbit.Point `json:"trail,omitempty"`
}

// DesignExport is a JSON-friendly design summary.
type DesignExport struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Accent   string  `json:"accent"`
	BPM      int     `json:"bpm"`
	SatShape string  `json:"satellite_type"`
	SatSpeed float64 `json:"satellite_speed"`
}

// ExportFrame converts a snapshot to an exportable format.
func ExportFrame(snap state.Snapshot, frame int, at time.Time) *FrameExport {
	export := &FrameExport{
		Timestamp: at,
		Frame:     frame,
		Elapsed:   snap.Elapsed.Seconds(),
		BPM:       snap.BPM,
		Mode:      snap.ModeName,
		Hue:       snap.Frame.Hue,
		Playing:   snap.Playing,
		Selected:  snap.Selected,
		Bodies:    make([]BodyExport, 0, len(snap.Objects)),
		Revision:  snap.Revision,
	}

	for _, p := range snap.Objects {
		export.Bodies = append(export.Bodies, bodyOf(p))
	}
	for _, p := range snap.Groups {
		export.Groups = append(export.Groups, bodyOf(p))
	}
	export.Designs = ExportDesigns(snap.Suggestions)
	return export
}

func bodyOf(p state.Placement) BodyExport {
	return BodyExport{
		ID:       p.ID,
		Name:     p.Name,
		Type:     string(p.Shape),
		ParentID: p.ParentID,
		X:        p.State.X,
		Y:        p.State.Y,
		Rotation: p.State.Rotation,
		Color:    p.Color,
		Opacity:  p.Opacity,
		Trail:    p.Outline,
	}
}

// ExportDesigns converts designs to their summary form.
func ExportDesigns(designs []designer.Design) []DesignExport {
	if len(designs) == 0 {
		return nil
	}
	out := make([]DesignExport, 0, len(designs))
	for _, d := range designs {
		out = append(out, DesignExport{
			ID:       d.ID,
			Name:     d.Name,
			Accent:   d.Accent,
			BPM:      d.BPM,
			SatShape: string(d.Satellites.Shape),
			SatSpeed: d.Satellites.OrbitSpeed,
		})
	}
	return out
}

// WriteJSON writes the frame as JSON to the given writer.
func (f *FrameExport) WriteJSON(w io.Writer) error {
	return writeJSON(w, f)
}

// WriteDesigns writes full designs as a JSON array.
func WriteDesigns(w io.Writer, designs []designer.Design) error {
	if designs == nil {
		designs = []designer.Design{}
	}
	return writeJSON(w, designs)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	Name    string
	Type    string
	Parent  string
	X, Y    float64
	Radius  float64 // distance from the parent
	Opacity float64
	Color   string
}

// GenerateSummaryRows creates summary rows for every object in the frame.
func GenerateSummaryRows(snap state.Snapshot) []SummaryRow {
	if len(snap.Objects) == 0 {
		return nil
	}

	pos := make(map[string]orbit.State, len(snap.Objects)+len(snap.Groups))
	names := make(map[string]string, len(snap.Objects)+len(snap.Groups))
	for _, p := range snap.Groups {
		pos[p.ID] = p.State
		names[p.ID] = p.Name
	}
	for _, p := range snap.Objects {
		pos[p.ID] = p.State
		names[p.ID] = p.Name
	}

	var rows []SummaryRow
	for _, p := range snap.Objects {
		parent := pos[p.ParentID]
		dx, dy := p.State.X-parent.X, p.State.Y-parent.Y
		rows = append(rows, SummaryRow{
			Name:    p.Name,
			Type:    string(p.Shape),
			Parent:  names[p.ParentID],
			X:       p.State.X,
			Y:       p.State.Y,
			Radius:  math.Hypot(dx, dy),
			Opacity: p.Opacity,
			Color:   p.Color,
		})
	}
	return rows
}

// WriteSummaryTable writes a text table to the given writer.
func WriteSummaryTable(w io.Writer, snap state.Snapshot, timestamp time.Time) {
	rows := GenerateSummaryRows(snap)

	fmt.Fprintf(w, "Orrery @ %s  t+%.1fs  %d BPM  %s  hue %.0f°\n",
		timestamp.Format(time.RFC3339), snap.Elapsed.Seconds(), snap.BPM, snap.ModeName, snap.Frame.Hue)
	fmt.Fprintln(w, strings.Repeat("─", 84))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No objects")
		return
	}

	// Header
	fmt.Fprintf(w, "%-16s %-13s %-12s %9s %9s %8s %7s %-9s\n",
		"Name", "Type", "Parent", "X", "Y", "Radius", "Opacity", "Color")
	fmt.Fprintln(w, strings.Repeat("─", 84))

	// Rows
	for _, r := range rows {
		parent := r.Parent
		if parent == "" {
			parent = "-"
		}
		fmt.Fprintf(w, "%-16s %-13s %-12s %9.1f %9.1f %8.1f %6.0f%% %-9s\n",
			truncateStr(r.Name, 16),
			r.Type,
			truncateStr(parent, 12),
			r.X,
			r.Y,
			r.Radius,
			r.Opacity*100,
			r.Color,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d objects, %d groups\n", len(rows), len(snap.Groups))
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
