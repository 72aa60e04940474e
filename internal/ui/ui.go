// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/version"
)

// Player is the playback side of an audio track.
type Player interface {
	Play() error
	Pause()
	Done() bool
}

// Options configures the root model.
type Options struct {
	FPS       int    // frame rate of the motion loop
	Player    Player // nil disables playback
	TrackName string
}

// Msg types for Bubble Tea
type (
	// TickMsg advances motion by one frame.
	TickMsg time.Time

	// AudioTickMsg runs one analysis step for the audio loop that started
	// generation Gen. Ticks from a stopped generation are dropped.
	AudioTickMsg struct {
		Gen  uint64
		Time time.Time
	}

	// StatusMsg replaces the footer status line.
	StatusMsg string

	// ErrorMsg signals a background failure, such as a failed autosave.
	ErrorMsg struct {
		Error error
	}
)

// audioEvery is the analysis cadence while playing.
const audioEvery = 16 * time.Millisecond

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state     *state.Manager
	player    Player
	trackName string
	now       func() time.Time

	// UI state
	width        int
	height       int
	ready        bool
	statusMsg    string
	animTick     int
	frameEvery   time.Duration
	showHUD      bool
	showDesigner bool
	audioGen     uint64

	orrery   OrreryModel
	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager, opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	m := Model{
		state:      stateMgr,
		player:     opts.Player,
		trackName:  opts.TrackName,
		now:        time.Now,
		frameEvery: time.Second / time.Duration(fps),
		showHUD:    true,
		orrery:     NewOrreryModel(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.frameEvery)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.stopPlayback()
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(msg))
		m.refresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()

	case TickMsg:
		cmds = append(cmds, tickCmd(m.frameEvery))
		m.state.Tick(time.Time(msg))
		m.animTick++
		m.refresh()

	case AudioTickMsg:
		if !m.state.AudioRunning(msg.Gen) {
			break
		}
		if m.player != nil && m.player.Done() {
			m.state.StopAudio()
			m.statusMsg = "track finished"
			m.refresh()
			break
		}
		m.state.AudioStep(msg.Time)
		cmds = append(cmds, audioTickCmd(msg.Gen))

	case StatusMsg:
		m.statusMsg = string(msg)

	case ErrorMsg:
		m.statusMsg = "ERROR: " + msg.Error.Error()
	}

	return m, tea.Batch(cmds...)
}

// handleKey applies one editing or playback key.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "tab":
		m.state.SelectNext(1)
	case "shift+tab":
		m.state.SelectNext(-1)
	case "esc":
		_ = m.state.Select("")
	case "[":
		m.state.CycleRing(-1)
	case "]":
		m.state.CycleRing(1)

	case "g":
		d, err := m.state.GenerateDesign()
		if m.report(err) {
			m.statusMsg = fmt.Sprintf("applied %s", d.Name)
		}
	case "d":
		m.showDesigner = !m.showDesigner
		if m.showDesigner {
			_, err := m.state.EnsureSuggestion()
			m.report(err)
		}
		m.layout()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if !m.showDesigner {
			break
		}
		idx := int(key[0] - '1')
		designs := m.state.Suggestions()
		if idx < len(designs) && m.report(m.state.ApplyDesign(designs[idx].ID)) {
			m.statusMsg = fmt.Sprintf("applied %s", designs[idx].Name)
		}

	case "z":
		if !m.state.Undo() {
			m.statusMsg = "nothing to undo"
		}
	case "y":
		if !m.state.Redo() {
			m.statusMsg = "nothing to redo"
		}

	case " ", "space":
		return m.togglePlayback()
	case "b":
		if m.state.ToggleTempoSync() {
			m.statusMsg = "tempo sync on"
		} else {
			m.statusMsg = "tempo sync off"
		}
	case "m":
		m.statusMsg = "hue mode " + m.state.CycleMode().String()

	case "a":
		id := m.state.AddObject(scene.ShapeCircle)
		_ = m.state.Select(id)
	case "s":
		m.cycleShape()
	case "r":
		_, err := m.state.AddRing(scene.DefaultRingTemplate(m.state.Settings().AccentColor))
		m.report(err)
	case "{", "}":
		m.resizeRing(key == "}")
	case "w":
		m.report(m.state.UpdateRing(toggleWave))
	case "x":
		sel := m.state.Selected()
		if sel == "" {
			m.report(state.ErrNoSelection)
			break
		}
		removed, err := m.state.Delete(sel)
		if m.report(err) {
			m.statusMsg = fmt.Sprintf("deleted %d", len(removed))
		}

	case "+", "=":
		m.setZoom(1)
	case "-":
		m.setZoom(-1)
	case "h":
		m.showHUD = !m.showHUD
		m.layout()

	default:
		var cmd tea.Cmd
		m.orrery, cmd = m.orrery.Update(msg)
		return cmd
	}
	return nil
}

// report shows err in the status line. Returns true when err is nil.
func (m *Model) report(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, state.ErrNoSelection) {
		m.statusMsg = "select an object first (tab)"
	} else {
		m.statusMsg = err.Error()
	}
	return false
}

func (m *Model) togglePlayback() tea.Cmd {
	if m.player == nil {
		m.statusMsg = "no track loaded (start with -audio)"
		return nil
	}
	if m.state.Playing() {
		m.stopPlayback()
		m.statusMsg = "paused"
		return nil
	}
	if err := m.player.Play(); err != nil {
		m.statusMsg = "ERROR: " + err.Error()
		return nil
	}
	m.audioGen = m.state.StartAudio()
	m.statusMsg = "playing " + m.trackName
	return audioTickCmd(m.audioGen)
}

func (m *Model) stopPlayback() {
	if m.player != nil && m.state.Playing() {
		m.player.Pause()
	}
	m.state.StopAudio()
}

// cycleShape advances the selected object to the next shape.
func (m *Model) cycleShape() {
	sel := m.state.Selected()
	if sel == "" {
		m.report(state.ErrNoSelection)
		return
	}
	err := m.state.Update(sel, func(o *scene.Object) {
		for i, s := range scene.Shapes {
			if s == o.Shape {
				o.Shape = scene.Shapes[(i+1)%len(scene.Shapes)]
				return
			}
		}
		o.Shape = scene.ShapeCircle
	}, true)
	m.report(err)
}

func (m *Model) resizeRing(grow bool) {
	rings := m.state.Rings()
	if len(rings) == 0 {
		m.statusMsg = "no ring to resize (r adds one)"
		return
	}
	n := rings[m.state.ActiveRing()].Count
	if grow {
		n++
	} else {
		n--
	}
	if n < 1 {
		n = 1
	}
	m.report(m.state.SetRingCount(n, scene.DefaultRingTemplate(m.state.Settings().AccentColor)))
}

// toggleWave switches the ring between circular and wavy orbits.
func toggleWave(s *scene.Scene, parent string, r scene.Ring) {
	var w *scene.Wave
	if r.Sample.Wave == nil {
		w = &scene.Wave{Amp: 20, Freq: 4}
	}
	s.UpdateRing(parent, r, func(o *scene.Object) {
		if w == nil {
			o.Wave = nil
			return
		}
		c := *w
		o.Wave = &c
	})
}

func (m *Model) setZoom(dir int) {
	s := m.state.Settings()
	s.Zoom = stepZoom(s.Zoom, dir)
	m.state.SetSettings(s)
}

// refresh pulls a fresh snapshot and pushes it to the canvas.
func (m *Model) refresh() {
	m.snapshot = m.state.Snapshot(m.now())
	m.orrery = m.orrery.UpdateData(m.snapshot)
}

// layout sizes the canvas to what the header, HUD and panels leave over.
func (m *Model) layout() {
	reserved := 2 + 2 // title + footer
	if m.showHUD {
		reserved += 4
	}
	if m.showDesigner {
		reserved += 2 + min(len(m.state.Suggestions()), 7)
	}
	h := m.height - reserved
	if h < 5 {
		h = 5
	}
	m.orrery = m.orrery.SetSize(m.width, h)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	parts := []string{m.renderTitle(), m.orrery.View()}
	if m.showHUD {
		parts = append(parts, RenderHUD(m.snapshot))
	}
	if m.showDesigner {
		parts = append(parts, RenderDesignerPanel(m.snapshot.Suggestions))
	}
	parts = append(parts, m.renderFooter())
	return strings.Join(parts, "\n")
}

func (m Model) renderTitle() string {
	title := []rune("  ls-orrery")
	var b strings.Builder
	for col, r := range title {
		color := gradientColor(col, 0, len(title), 1)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(string(r)))
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  v%s", version.Version)))
	if m.trackName != "" {
		b.WriteString(muted.Render("  · " + m.trackName))
	}
	return b.String()
}

// gradientColor returns a hex color for a position in the title gradient.
// Blue -> purple -> magenta -> pink
func gradientColor(col, row, width, height int) string {
	// Normalize positions to 0-1
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Blue (#3B82F6) -> Purple (#8B5CF6) -> Magenta (#D946EF) -> Pink (#EC4899)
	var r, g, b float64

	if xRatio < 0.33 {
		// Blue to Purple
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		// Purple to Magenta
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		// Magenta to Pink
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	// Vertical fade: brighter at top, darker toward bottom
	brightness := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*brightness), clampByte(g*brightness), clampByte(b*brightness))
}

func clampByte(v float64) int {
	switch {
	case v > 255:
		return 255
	case v < 0:
		return 0
	}
	return int(v)
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	var status string
	switch {
	case strings.HasPrefix(m.statusMsg, "ERROR"):
		status = errorStyle.Render(m.statusMsg)
	case m.statusMsg != "":
		status = accentStyle.Render(m.statusMsg)
	case m.snapshot.Playing:
		// Animated spinner frames
		spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		status = accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)]) + " " + m.renderShimmerText("listening")
	default:
		status = dimStyle.Render(fmt.Sprintf("t+%s", m.snapshot.Elapsed.Round(time.Second)))
	}

	help := dimStyle.Render("tab: select | [ ]: ring | g/d: designer | a/r/x: add/ring/delete | space: play | b: sync | m: hue | z/y: undo | h: hud | q: quit")
	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help
	return footer
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return ""
	}

	// Shimmer sweeps smoothly across
	pos := m.animTick % (textLen + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		hexColor := fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor))
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}

// Snapshot returns the frame the view last rendered.
func (m Model) Snapshot() state.Snapshot {
	return m.snapshot
}

func tickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func audioTickCmd(gen uint64) tea.Cmd {
	return tea.Tick(audioEvery, func(t time.Time) tea.Msg {
		return AudioTickMsg{Gen: gen, Time: t}
	})
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
