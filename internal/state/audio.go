package state

import (
	"time"

	"github.com/litescript/ls-orrery/internal/audio"
)

// AttachAudio connects a spectrum source. nil detaches.
func (m *Manager) AttachAudio(src audio.Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.engine.Attach(src)
}

// StartAudio marks playback as running and returns the generation the
// caller's frame loop must carry.
func (m *Manager) StartAudio() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Start()
}

// StopAudio halts analysis. Loops of earlier generations stop rescheduling.
func (m *Manager) StopAudio() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.engine.Stop()
}

// AudioRunning reports whether a loop of generation gen should continue.
func (m *Manager) AudioRunning(gen uint64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.engine.Running(gen)
}

// Playing reports whether audio analysis is active.
func (m *Manager) Playing() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.engine.Active()
}

// AudioStep runs one analysis frame at now.
func (m *Manager) AudioStep(now time.Time) (audio.Frame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.engine.Step(m.Elapsed(now), m.scene, m.selected)
	if ok {
		m.lastFrame = f
	}
	return f, ok
}

// SetTempoSync enables or disables tempo sync, restarting tempo tracking.
func (m *Manager) SetTempoSync(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.engine.SetTempoSync(on)
}

// ToggleTempoSync flips tempo sync and returns the new value.
func (m *Manager) ToggleTempoSync() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	on := !m.engine.TempoSync()
	m.engine.SetTempoSync(on)
	return on
}

// Mode returns the reactive hue mode.
func (m *Manager) Mode() audio.Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.engine.Analyzer().Mode()
}

// SetMode sets the reactive hue mode.
func (m *Manager) SetMode(mode audio.Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.engine.Analyzer().SetMode(mode)
}

// CycleMode advances to the next reactive mode.
func (m *Manager) CycleMode() audio.Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.engine.Analyzer()
	a.SetMode(a.Mode().Next())
	return a.Mode()
}

// BPM returns the detected tempo.
func (m *Manager) BPM() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.engine.Analyzer().BPM()
}
