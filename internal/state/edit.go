package state

import (
	"fmt"

	"github.com/litescript/ls-orrery/internal/scene"
)

// AddObject appends a new object of shape with the per-shape defaults.
// The object orbits the origin; the selection is left unchanged.
func (m *Manager) AddObject(shape scene.Shape) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, _ := m.scene.Len()
	o := scene.NewObject(shape, n, m.rng)
	id := m.scene.AddObject(o)
	m.commit()
	return id
}

// Update edits the object or group id. commit records the edit for undo;
// continuous edits such as drags pass false until the final change.
func (m *Manager) Update(id string, fn func(*scene.Object), commit bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.scene.UpdateObject(id, fn) {
		return fmt.Errorf("update %s: %w", id, ErrUnknownEntity)
	}
	if commit {
		m.commit()
	}
	return nil
}

// UpdateGroup edits the group id.
func (m *Manager) UpdateGroup(id string, fn func(*scene.Group), commit bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.scene.UpdateGroup(id, fn) {
		return fmt.Errorf("update group %s: %w", id, ErrUnknownEntity)
	}
	if commit {
		m.commit()
	}
	return nil
}

// Commit records the current scene as an undoable edit.
func (m *Manager) Commit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commit()
}

// Delete removes id and all of its descendants as one edit. The selection
// is cleared if it was removed.
func (m *Manager) Delete(id string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := m.scene.Delete(id)
	if removed == nil {
		return nil, fmt.Errorf("delete %s: %w", id, ErrUnknownEntity)
	}
	m.dropStaleSelection()
	m.commit()
	return removed, nil
}

// AddRing adds a ring of satellites around the selection and makes it active.
func (m *Manager) AddRing(tmpl scene.RingTemplate) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected == "" {
		return "", ErrNoSelection
	}
	gid := m.scene.AddRing(m.selected, tmpl)
	if gid == "" {
		return "", fmt.Errorf("add ring: %w", ErrUnknownEntity)
	}
	for i, r := range m.scene.Rings(m.selected) {
		if r.GroupID == gid {
			m.activeRing = i
		}
	}
	m.commit()
	return gid, nil
}

// SetRingCount resizes the active ring to n evenly spaced members.
func (m *Manager) SetRingCount(n int, tmpl scene.RingTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ring, ok := m.activeRingLocked()
	if !ok {
		if m.selected == "" {
			return ErrNoSelection
		}
		return nil
	}
	m.scene.SetRingCount(m.selected, *ring, n, tmpl)
	m.commit()
	return nil
}

// SetRingShape changes the shape of every member of the active ring.
func (m *Manager) SetRingShape(shape scene.Shape, image string) error {
	return m.UpdateRing(func(s *scene.Scene, parent string, r scene.Ring) {
		s.SetRingShape(parent, r, shape, image)
	})
}

// UpdateRing runs fn against the active ring of the selection as one edit.
// Without rings it is a no-op.
func (m *Manager) UpdateRing(fn func(s *scene.Scene, parent string, r scene.Ring)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected == "" {
		return ErrNoSelection
	}
	ring, ok := m.activeRingLocked()
	if !ok {
		return nil
	}
	fn(m.scene, m.selected, *ring)
	m.commit()
	return nil
}

// Undo restores the previous snapshot.
func (m *Manager) Undo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.history.Undo()
	if !ok {
		return false
	}
	m.restore(s)
	return true
}

// Redo reapplies the next snapshot.
func (m *Manager) Redo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.history.Redo()
	if !ok {
		return false
	}
	m.restore(s)
	return true
}

func (m *Manager) restore(s *scene.Scene) {
	m.scene = s
	m.dropStaleSelection()
	m.revision++
}

// CanUndo reports whether Undo would succeed.
func (m *Manager) CanUndo() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.history.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (m *Manager) CanRedo() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.history.CanRedo()
}
