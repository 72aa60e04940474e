package state

import (
	"fmt"

	"github.com/litescript/ls-orrery/internal/designer"
)

// GenerateDesign generates a design for the current tempo, applies it to
// the selection and its active ring, and keeps it as the newest suggestion.
func (m *Manager) GenerateDesign() (designer.Design, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generateLocked()
}

func (m *Manager) generateLocked() (designer.Design, error) {
	if m.selected == "" {
		return designer.Design{}, ErrNoSelection
	}
	d := m.generator.Generate(m.engine.Analyzer().BPM(), m.engine.Active())
	m.applyLocked(d)

	m.suggestions = append([]designer.Design{d}, m.suggestions...)
	if len(m.suggestions) > m.maxSuggest {
		m.suggestions = m.suggestions[:m.maxSuggest]
	}
	return d, nil
}

// EnsureSuggestion generates a first design when there are none yet, as
// happens when the designer is opened. Reports whether one was generated.
func (m *Manager) EnsureSuggestion() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.suggestions) > 0 {
		return false, nil
	}
	if _, err := m.generateLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// ApplyDesign re-applies a retained suggestion.
func (m *Manager) ApplyDesign(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected == "" {
		return ErrNoSelection
	}
	for _, d := range m.suggestions {
		if d.ID == id {
			m.applyLocked(d)
			return nil
		}
	}
	return fmt.Errorf("design %s: %w", id, ErrUnknownDesign)
}

func (m *Manager) applyLocked(d designer.Design) {
	ring, _ := m.activeRingLocked()
	if designer.Apply(m.scene, m.selected, ring, d) {
		m.commit()
	}
}

// Suggestions returns the retained designs, newest first.
func (m *Manager) Suggestions() []designer.Design {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]designer.Design, len(m.suggestions))
	copy(out, m.suggestions)
	return out
}

// PreviewDesigns generates n designs without applying or retaining them.
func (m *Manager) PreviewDesigns(n int) []designer.Design {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]designer.Design, 0, n)
	for range n {
		out = append(out, m.generator.Generate(m.engine.Analyzer().BPM(), m.engine.Active()))
	}
	return out
}
