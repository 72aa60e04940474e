// Package state provides thread-safe state management for the application.
package state

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/litescript/ls-orrery/internal/audio"
	"github.com/litescript/ls-orrery/internal/designer"
	"github.com/litescript/ls-orrery/internal/history"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/store"
)

var (
	// ErrNoSelection is returned by edits that need a selected entity.
	ErrNoSelection = errors.New("no entity selected")
	// ErrUnknownEntity is returned for ids not present in the scene.
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrUnknownDesign is returned when a suggestion id is not retained.
	ErrUnknownDesign = errors.New("unknown design")
)

// Config holds configuration for the state manager.
type Config struct {
	MaxHistory     int
	MaxSuggestions int
	Language       designer.Language
	ReactiveMode   audio.Mode
	TempoSync      bool
	Audio          audio.Config
	Seed           int64 // 0 seeds from the clock
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistory:     history.DefaultDepth,
		MaxSuggestions: 7,
		Language:       designer.English,
		ReactiveMode:   audio.ModeSmooth,
		Audio:          audio.DefaultConfig(),
	}
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	scene    *scene.Scene
	history  *history.Stack
	settings store.Settings

	selected   string
	activeRing int

	rng         *rand.Rand
	generator   *designer.Generator
	suggestions []designer.Design
	maxSuggest  int

	engine    *audio.Engine
	lastFrame audio.Frame

	clock    orbit.Clock
	start    time.Time
	revision uint64
}

// NewManager creates a manager seeded from doc. An empty document gets the
// default pinned core.
func NewManager(cfg Config, doc store.Document) *Manager {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	maxSuggest := cfg.MaxSuggestions
	if maxSuggest <= 0 {
		maxSuggest = 7
	}
	lang := cfg.Language
	if lang == "" {
		lang = designer.ParseLanguage(doc.Settings.Language)
	}

	analyzer := audio.NewAnalyzer(cfg.Audio, rand.New(rand.NewSource(seed+1)))
	analyzer.SetMode(cfg.ReactiveMode)
	engine := audio.NewEngine(analyzer)
	if cfg.TempoSync {
		engine.SetTempoSync(true)
	}

	s, _ := scene.Seed(doc.Objects, doc.Groups, lang.CoreName())
	m := &Manager{
		scene:      s,
		history:    history.New(cfg.MaxHistory),
		settings:   doc.Settings,
		rng:        rng,
		generator:  designer.NewGenerator(rng, lang),
		maxSuggest: maxSuggest,
		engine:     engine,
		start:      time.Now(),
	}
	m.history.Push(m.scene)
	return m
}

// commit records the current scene as one undoable edit.
func (m *Manager) commit() {
	m.history.Push(m.scene)
	m.revision++
}

// Revision increases with every committed edit, undo and redo.
func (m *Manager) Revision() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.revision
}

// Tick advances the motion integrator to now and returns the elapsed seconds.
func (m *Manager) Tick(now time.Time) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	dt := m.clock.Tick(now)
	orbit.Step(m.scene, dt)
	return dt
}

// Resolve returns the absolute placement of id.
func (m *Manager) Resolve(id string) orbit.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return orbit.Resolve(m.scene, id)
}

// Object returns a copy of the object id.
func (m *Manager) Object(id string) (scene.Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scene.Object(id)
}

// Scene returns a deep copy of the live scene.
func (m *Manager) Scene() *scene.Scene {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scene.Clone()
}

// Document exports the scene and settings for persistence.
func (m *Manager) Document() store.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return store.Document{
		Objects:  m.scene.Objects(),
		Groups:   m.scene.Groups(),
		Settings: m.settings,
	}
}

// Load replaces the scene and settings with doc and restarts history.
func (m *Manager) Load(doc store.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scene, _ = scene.Seed(doc.Objects, doc.Groups, m.generator.Language().CoreName())
	m.settings = doc.Settings
	m.selected = ""
	m.activeRing = 0
	m.history.Reset()
	m.history.Push(m.scene)
	m.revision++
}

// Settings returns the persisted settings.
func (m *Manager) Settings() store.Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// SetSettings replaces the persisted settings.
func (m *Manager) SetSettings(s store.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	m.generator.SetLanguage(designer.ParseLanguage(s.Language))
	m.revision++
}

// Elapsed returns the time since the manager was created. Blink phases and
// audio timing are measured against it.
func (m *Manager) Elapsed(now time.Time) time.Duration {
	return now.Sub(m.start)
}
