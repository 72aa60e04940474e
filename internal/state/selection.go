package state

import (
	"fmt"

	"github.com/litescript/ls-orrery/internal/scene"
)

// Selected returns the selected entity id, or "".
func (m *Manager) Selected() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selected
}

// Select selects id. An empty id clears the selection.
func (m *Manager) Select(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id != "" && !m.scene.Has(id) {
		return fmt.Errorf("select %s: %w", id, ErrUnknownEntity)
	}
	if id != m.selected {
		m.activeRing = 0
	}
	m.selected = id
	return nil
}

// SelectNext moves the selection delta steps through the object list,
// wrapping at both ends. Returns the new selection.
func (m *Manager) SelectNext(delta int) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	objs := m.scene.Objects()
	if len(objs) == 0 {
		m.selected = ""
		return ""
	}
	idx := -1
	for i, o := range objs {
		if o.ID == m.selected {
			idx = i
			break
		}
	}
	if idx < 0 && delta < 0 {
		idx = 0
	}
	n := len(objs)
	idx = ((idx+delta)%n + n) % n
	if objs[idx].ID != m.selected {
		m.activeRing = 0
	}
	m.selected = objs[idx].ID
	return m.selected
}

// Rings lists the satellite rings of the selection.
func (m *Manager) Rings() []scene.Ring {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scene.Rings(m.selected)
}

// ActiveRing returns the index of the ring edits apply to, clamped to the
// rings currently available.
func (m *Manager) ActiveRing() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.clampRing(len(m.scene.Rings(m.selected)))
}

// SetActiveRing selects ring i, clamped to the available range.
func (m *Manager) SetActiveRing(i int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeRing = i
	m.activeRing = m.clampRing(len(m.scene.Rings(m.selected)))
	return m.activeRing
}

// CycleRing moves the active ring by delta, wrapping.
func (m *Manager) CycleRing(delta int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.scene.Rings(m.selected))
	if n == 0 {
		m.activeRing = 0
		return 0
	}
	m.activeRing = ((m.clampRing(n)+delta)%n + n) % n
	return m.activeRing
}

func (m *Manager) clampRing(n int) int {
	switch {
	case n == 0 || m.activeRing < 0:
		return 0
	case m.activeRing >= n:
		return n - 1
	}
	return m.activeRing
}

// activeRingLocked returns the active ring of the selection, if any.
func (m *Manager) activeRingLocked() (*scene.Ring, bool) {
	rings := m.scene.Rings(m.selected)
	if len(rings) == 0 {
		return nil, false
	}
	r := rings[m.clampRing(len(rings))]
	return &r, true
}

// dropStaleSelection clears a selection that no longer exists.
func (m *Manager) dropStaleSelection() {
	if m.selected != "" && !m.scene.Has(m.selected) {
		m.selected = ""
		m.activeRing = 0
	}
}
