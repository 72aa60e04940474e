package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/litescript/ls-orrery/internal/scene"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "orrery.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleDoc() Document {
	core := scene.DefaultCore("Core")
	sat := scene.Object{
		ID:         "sat",
		Name:       "S-1",
		ParentID:   core.ID,
		Visibility: scene.BlinkAt(128),
		Wave:       &scene.Wave{Amp: 12, Freq: 4, Phase: 90},
	}
	return Document{
		Objects:  []scene.Object{core, sat},
		Groups:   []scene.Group{{ID: "g", Name: "ring", ChildIDs: []string{"sat"}}},
		Settings: DefaultSettings(),
	}
}

func TestKV(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing: err = %v, want ErrNotFound", err)
	}
	if err := s.Put(ctx, "k", []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "k", []byte("two")); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "two" {
		t.Errorf("Get = %q, %v", got, err)
	}
}

func TestAutosaveRoundTrip(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	if _, err := s.LoadAutosave(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty autosave: err = %v", err)
	}

	doc := sampleDoc()
	if err := s.SaveAutosave(ctx, doc); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadAutosave(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Objects) != 2 || len(got.Groups) != 1 {
		t.Fatalf("loaded %d objects, %d groups", len(got.Objects), len(got.Groups))
	}
	sat := got.Objects[1]
	if !sat.Visibility.Blink || sat.Visibility.Value != 128 || sat.Wave == nil || sat.Wave.Freq != 4 {
		t.Errorf("satellite did not survive: %+v", sat)
	}
	if got.Settings != doc.Settings {
		t.Errorf("settings = %+v", got.Settings)
	}
}

func TestPresets(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()

	a, err := s.SavePreset(ctx, "first", sampleDoc())
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.SavePreset(ctx, "second", Document{Settings: DefaultSettings()})
	if err != nil {
		t.Fatal(err)
	}

	list, err := s.Presets(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != b.ID {
		t.Fatalf("Presets = %+v", list)
	}

	got, err := s.Preset(ctx, a.ID)
	if err != nil || got.Name != "first" || len(got.Document.Objects) != 2 {
		t.Errorf("Preset = %+v, %v", got, err)
	}
	if !got.CreatedAt.Equal(a.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, a.CreatedAt)
	}

	if err := s.DeletePreset(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Preset(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted preset: err = %v", err)
	}
	if err := s.DeletePreset(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v", err)
	}
}

func TestDocumentLegacyKeys(t *testing.T) {
	data := `{"o":[{"id":"a","name":"A"}],"g":[{"id":"g"}],"s":{"zoom":2,"language":"en"}}`
	var doc Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Objects) != 1 || doc.Objects[0].ID != "a" || len(doc.Groups) != 1 {
		t.Errorf("entities = %+v / %+v", doc.Objects, doc.Groups)
	}
	if doc.Settings.Zoom != 2 || doc.Settings.Language != "en" {
		t.Errorf("settings = %+v", doc.Settings)
	}
	if doc.Settings.AccentColor != "#3b82f6" {
		t.Error("settings missing from the document should keep defaults")
	}
}

func TestDocumentEmpty(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(`{}`), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Objects) != 0 || doc.Settings != DefaultSettings() {
		t.Errorf("empty document = %+v", doc)
	}
}
