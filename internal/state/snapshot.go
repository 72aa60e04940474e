package state

import (
	"time"

	"github.com/litescript/ls-orrery/internal/audio"
	"github.com/litescript/ls-orrery/internal/designer"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/store"
)

// Placement is one entity as it should be drawn this frame.
type Placement struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Group    bool          `json:"group,omitempty"`
	ParentID string        `json:"parentId,omitempty"`
	Shape    scene.Shape   `json:"type,omitempty"`
	Color    string        `json:"color"`
	Size     float64       `json:"size"`
	Glow     float64       `json:"glow"`
	Opacity  float64       `json:"opacity"` // base opacity times visibility
	Pinned   bool          `json:"pinned,omitempty"`
	Selected bool          `json:"selected,omitempty"`
	State    orbit.State   `json:"state"`
	Trail    orbit.Trail   `json:"-"`
	Outline  []orbit.Point `json:"trail,omitempty"` // trail in absolute coordinates
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Elapsed     time.Duration     `json:"elapsed"`
	Objects     []Placement       `json:"objects"`
	Groups      []Placement       `json:"groups"`
	Selected    string            `json:"selected,omitempty"`
	Rings       []scene.Ring      `json:"-"`
	ActiveRing  int               `json:"activeRing"`
	Playing     bool              `json:"playing"`
	TempoSync   bool              `json:"tempoSync"`
	Mode        audio.Mode        `json:"-"`
	ModeName    string            `json:"mode"`
	BPM         int               `json:"bpm"`
	Frame       audio.Frame       `json:"audio"`
	Suggestions []designer.Design `json:"suggestions,omitempty"`
	HistoryLen  int               `json:"historyLen"`
	CanUndo     bool              `json:"canUndo"`
	CanRedo     bool              `json:"canRedo"`
	Settings    store.Settings    `json:"settings"`
	Revision    uint64            `json:"revision"`
}

// Snapshot resolves every entity at now and returns a consistent copy of
// the current state.
func (m *Manager) Snapshot(now time.Time) Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	elapsed := m.Elapsed(now)
	objs := m.scene.Objects()
	groups := m.scene.Groups()

	snap := Snapshot{
		Elapsed:     elapsed,
		Objects:     make([]Placement, 0, len(objs)),
		Groups:      make([]Placement, 0, len(groups)),
		Selected:    m.selected,
		Rings:       m.scene.Rings(m.selected),
		Playing:     m.engine.Active(),
		TempoSync:   m.engine.TempoSync(),
		Mode:        m.engine.Analyzer().Mode(),
		BPM:         m.engine.Analyzer().BPM(),
		Frame:       m.lastFrame,
		Suggestions: append([]designer.Design(nil), m.suggestions...),
		HistoryLen:  m.history.Len(),
		CanUndo:     m.history.CanUndo(),
		CanRedo:     m.history.CanRedo(),
		Settings:    m.settings,
		Revision:    m.revision,
	}
	snap.ModeName = snap.Mode.String()
	snap.ActiveRing = m.clampRing(len(snap.Rings))

	for _, o := range objs {
		p := Placement{
			ID:       o.ID,
			Name:     o.Name,
			ParentID: o.ParentID,
			Shape:    o.Shape,
			Color:    o.Color,
			Size:     o.Size,
			Glow:     o.Glow,
			Opacity:  o.Opacity * o.Visibility.Opacity(elapsed),
			Pinned:   o.Pinned,
			Selected: o.ID == m.selected,
			State:    orbit.Resolve(m.scene, o.ID),
		}
		var parent orbit.State
		if o.ParentID != "" {
			parent = orbit.Resolve(m.scene, o.ParentID)
		}
		p.Trail = orbit.TrailFor(o, parent)
		p.Outline = p.Trail.World()
		snap.Objects = append(snap.Objects, p)
	}
	for _, g := range groups {
		snap.Groups = append(snap.Groups, Placement{
			ID:       g.ID,
			Name:     g.Name,
			Group:    true,
			ParentID: g.ParentID,
			Color:    g.Color,
			Opacity:  g.Visibility.Opacity(elapsed),
			Selected: g.ID == m.selected,
			State:    orbit.Resolve(m.scene, g.ID),
		})
	}
	return snap
}
