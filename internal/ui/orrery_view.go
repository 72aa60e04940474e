package ui

import (
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/palette"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
)

// worldSpan is the world width that fits the canvas at zoom 1.
const worldSpan = 900.0

// Objects fainter than this are not drawn at all.
const minVisibleOpacity = 0.05

// Discrete zoom levels for clean stepping
var zoomLevels = []float64{0.25, 0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 5.0}

// stepZoom returns the zoom level dir steps away from cur.
func stepZoom(cur float64, dir int) float64 {
	idx := 0
	for i, z := range zoomLevels {
		if z <= cur+1e-9 {
			idx = i
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(zoomLevels) {
		idx = len(zoomLevels) - 1
	}
	return zoomLevels[idx]
}

// cell is one canvas character with its color.
type cell struct {
	r     rune
	color string
	bold  bool
}

// OrreryModel renders the resolved scene onto a character canvas.
type OrreryModel struct {
	width    int
	height   int
	snapshot state.Snapshot

	panX, panY float64 // world units
	showLabels bool
}

// NewOrreryModel creates a new canvas model.
func NewOrreryModel() OrreryModel {
	return OrreryModel{showLabels: true}
}

// SetSize updates the viewport size.
func (m OrreryModel) SetSize(width, height int) OrreryModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with a new frame.
func (m OrreryModel) UpdateData(snap state.Snapshot) OrreryModel {
	m.snapshot = snap
	return m
}

// Update handles panning and label keys.
func (m OrreryModel) Update(msg tea.Msg) (OrreryModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		step := 50 / m.zoom()
		switch msg.String() {
		case "up":
			m.panY += step
		case "down":
			m.panY -= step
		case "left":
			m.panX += step
		case "right":
			m.panX -= step
		case "c":
			m.panX, m.panY = 0, 0
		case "l":
			m.showLabels = !m.showLabels
		}
	}
	return m, nil
}

func (m OrreryModel) zoom() float64 {
	if z := m.snapshot.Settings.Zoom; z > 0 {
		return z
	}
	return 1
}

// View renders the canvas.
func (m OrreryModel) View() string {
	if m.width < 20 || m.height < 5 {
		return "Terminal too small for the orrery"
	}
	return renderCells(m.buildCanvas())
}

// projector maps world coordinates to canvas cells. Terminal cells are
// about twice as tall as wide, so y is halved.
type projector struct {
	cx, cy     float64
	scale      float64
	panX, panY float64
}

func (p projector) cell(pt orbit.Point) (int, int) {
	x := p.cx + (pt.X+p.panX)*p.scale
	y := p.cy + (pt.Y+p.panY)*p.scale*0.5
	return int(math.Round(x)), int(math.Round(y))
}

func (m OrreryModel) projector() projector {
	span := math.Min(float64(m.width), float64(m.height)*2)
	return projector{
		cx:    float64(m.width) / 2,
		cy:    float64(m.height) / 2,
		scale: span / worldSpan * m.zoom(),
		panX:  m.panX,
		panY:  m.panY,
	}
}

// buildCanvas draws ring guides, trails, bodies and labels, in that order.
func (m OrreryModel) buildCanvas() [][]cell {
	grid := make([][]cell, m.height)
	for y := range grid {
		grid[y] = make([]cell, m.width)
		for x := range grid[y] {
			grid[y][x].r = ' '
		}
	}

	proj := m.projector()
	bg := m.snapshot.Settings.BackgroundColor
	if bg == "" {
		bg = "#000000"
	}

	m.drawRingGuides(grid, proj)

	for _, p := range m.snapshot.Objects {
		if p.Opacity < minVisibleOpacity || len(p.Outline) == 0 {
			continue
		}
		color := palette.Fade(p.Color, bg, p.Opacity*0.5)
		m.drawTrail(grid, proj, p.Outline, color)
	}

	type label struct {
		x, y int
		text string
		sel  bool
	}
	var labels []label

	for _, p := range m.snapshot.Objects {
		if p.Opacity < minVisibleOpacity {
			continue
		}
		color := palette.Fade(p.Color, bg, p.Opacity)
		pt := orbit.Point{X: p.State.X, Y: p.State.Y}
		x, y := proj.cell(pt)

		switch p.Shape {
		case scene.ShapeLine:
			drawLine(grid, proj, pt, p.State.Rad(), p.Size/2, color)
		case scene.ShapeOutlineCircle:
			drawCircle(grid, float64(x), float64(y), p.Size/2*proj.scale, '○', color)
		}
		set(grid, x, y, cell{r: shapeGlyph(p.Shape, p.Selected), color: color, bold: p.Selected})

		if p.Selected || (m.showLabels && p.Pinned) {
			labels = append(labels, label{x: x + 2, y: y, text: p.Name, sel: p.Selected})
		}
	}

	for _, l := range labels {
		text := l.text
		if l.sel {
			text = "◄ " + text
		}
		for i, r := range []rune(text) {
			x := l.x + i
			if x < 0 || x >= m.width || l.y < 0 || l.y >= m.height {
				break
			}
			if c := grid[l.y][x]; c.r == ' ' || c.r == '·' {
				grid[l.y][x] = cell{r: r, color: "#c0c0c0", bold: l.sel}
			}
		}
	}
	return grid
}

// drawRingGuides outlines the selection's rings, highlighting the active one.
func (m OrreryModel) drawRingGuides(grid [][]cell, proj projector) {
	if m.snapshot.Selected == "" || len(m.snapshot.Rings) == 0 {
		return
	}
	center, _ := findPlacement(m.snapshot, m.snapshot.Selected)
	x, y := proj.cell(orbit.Point{X: center.State.X, Y: center.State.Y})
	for i, r := range m.snapshot.Rings {
		color := "#303030"
		if i == m.snapshot.ActiveRing {
			color = "#505a78"
		}
		drawCircle(grid, float64(x), float64(y), r.Radius*proj.scale, '·', color)
	}
}

func (m OrreryModel) drawTrail(grid [][]cell, proj projector, outline []orbit.Point, color string) {
	for i := 1; i < len(outline); i++ {
		a, b := outline[i-1], outline[i]
		ax, ay := proj.cell(a)
		bx, by := proj.cell(b)
		steps := max(abs(bx-ax), abs(by-ay), 1)
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(steps)
			x := int(math.Round(float64(ax) + t*float64(bx-ax)))
			y := int(math.Round(float64(ay) + t*float64(by-ay)))
			if inside(grid, x, y) && grid[y][x].r == ' ' {
				grid[y][x] = cell{r: '·', color: color}
			}
		}
	}
}

// drawLine draws a segment of half-length half centered on pt.
func drawLine(grid [][]cell, proj projector, pt orbit.Point, rad, half float64, color string) {
	glyph := lineGlyph(rad)
	dx, dy := math.Cos(rad)*half, math.Sin(rad)*half
	ax, ay := proj.cell(orbit.Point{X: pt.X - dx, Y: pt.Y - dy})
	bx, by := proj.cell(orbit.Point{X: pt.X + dx, Y: pt.Y + dy})
	steps := max(abs(bx-ax), abs(by-ay), 1)
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		x := int(math.Round(float64(ax) + t*float64(bx-ax)))
		y := int(math.Round(float64(ay) + t*float64(by-ay)))
		set(grid, x, y, cell{r: glyph, color: color})
	}
}

// lineGlyph picks the box-drawing character closest to the angle.
func lineGlyph(rad float64) rune {
	deg := math.Mod(rad*180/math.Pi, 180)
	if deg < 0 {
		deg += 180
	}
	switch {
	case deg < 22.5 || deg >= 157.5:
		return '─'
	case deg < 67.5:
		return '╲' // y grows downward
	case deg < 112.5:
		return '│'
	default:
		return '╱'
	}
}

func drawCircle(grid [][]cell, cx, cy, r float64, glyph rune, color string) {
	if r < 1 {
		return
	}

	// Draw circle using parametric equations
	steps := int(2 * math.Pi * r)
	if steps < 8 {
		steps = 8
	}
	if steps > 360 {
		steps = 360
	}

	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := int(math.Round(cx + r*math.Cos(theta)))
		y := int(math.Round(cy + r*math.Sin(theta)*0.5)) // Aspect ratio correction
		if inside(grid, x, y) && grid[y][x].r == ' ' {
			grid[y][x] = cell{r: glyph, color: color}
		}
	}
}

func shapeGlyph(s scene.Shape, selected bool) rune {
	switch s {
	case scene.ShapePoint:
		if selected {
			return '◆'
		}
		return '◇'
	case scene.ShapeSphere:
		return '◉'
	case scene.ShapeImage:
		return '▣'
	case scene.ShapeStar:
		return '★'
	case scene.ShapeOutlineStar:
		return '☆'
	case scene.ShapeOutlineCircle:
		return '○'
	case scene.ShapeLine:
		return '┼'
	default:
		if selected {
			return '●'
		}
		return '•'
	}
}

// findPlacement looks id up among objects, then groups.
func findPlacement(snap state.Snapshot, id string) (state.Placement, bool) {
	for _, p := range snap.Objects {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range snap.Groups {
		if p.ID == id {
			return p, true
		}
	}
	return state.Placement{}, false
}

func set(grid [][]cell, x, y int, c cell) {
	if inside(grid, x, y) {
		grid[y][x] = c
	}
}

func inside(grid [][]cell, x, y int) bool {
	return y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y])
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// renderCells converts the canvas to a string, sharing one style per color.
func renderCells(grid [][]cell) string {
	var b strings.Builder
	styles := make(map[string]lipgloss.Style)

	for y, row := range grid {
		for _, c := range row {
			if c.r == ' ' {
				b.WriteRune(' ')
				continue
			}
			key := c.color
			if c.bold {
				key += "!"
			}
			style, ok := styles[key]
			if !ok {
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(c.color)).Bold(c.bold)
				styles[key] = style
			}
			b.WriteString(style.Render(string(c.r)))
		}
		if y < len(grid)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// Pan returns the current pan offset in world units.
func (m OrreryModel) Pan() (x, y float64) {
	return m.panX, m.panY
}
