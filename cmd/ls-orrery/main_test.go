package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/store"
)

func TestClampFPS(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, minFPS},
		{9, minFPS},
		{60, 60},
		{500, maxFPS},
	}
	for _, tt := range tests {
		if got := clampFPS(tt.in); got != tt.want {
			t.Errorf("clampFPS(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

type fakeFeeder struct {
	advanced time.Duration
	limit    time.Duration
}

func (f *fakeFeeder) Advance(d time.Duration) bool {
	f.advanced += d
	return f.advanced < f.limit
}

func (f *fakeFeeder) Done() bool { return f.advanced >= f.limit }

type loudSource struct{}

func (loudSource) Spectrum() []byte {
	b := make([]byte, 128)
	for i := range b {
		b[i] = 200
	}
	return b
}

func newManager(t *testing.T) *state.Manager {
	t.Helper()
	cfg := state.DefaultConfig()
	cfg.Seed = 11
	return state.NewManager(cfg, store.Document{Settings: store.DefaultSettings()})
}

func TestSimulateMotion(t *testing.T) {
	mgr := newManager(t)
	if err := mgr.Select(mgr.Document().Objects[0].ID); err != nil {
		t.Fatal(err)
	}
	id := mgr.AddObject(scene.ShapeCircle)
	if err := mgr.Update(id, func(o *scene.Object) { o.OrbitSpeed = 1 }, false); err != nil {
		t.Fatal(err)
	}
	before, _ := mgr.Object(id)

	start := time.Unix(1_700_000_000, 0)
	snap, at := simulate(mgr, nil, 31, 30, start)
	if want := start.Add(30 * (time.Second / 30)); !at.Equal(want) {
		t.Errorf("final timestamp = %v, want %v", at, want)
	}
	after, _ := mgr.Object(id)
	// One second at orbit speed 1.
	if d := after.CurrentAngle - before.CurrentAngle; d < 0.299 || d > 0.301 {
		t.Errorf("angle advanced %v, want 0.3", d)
	}
	if len(snap.Objects) != 2 || snap.Playing {
		t.Errorf("snapshot = %d objects, playing %v", len(snap.Objects), snap.Playing)
	}
}

func TestSimulateFeedsAudio(t *testing.T) {
	mgr := newManager(t)
	mgr.AttachAudio(loudSource{})
	feed := &fakeFeeder{limit: 500 * time.Millisecond}

	snap, _ := simulate(mgr, feed, 60, 60, time.Unix(1_700_000_000, 0))
	if !feed.Done() || feed.advanced > 520*time.Millisecond {
		t.Errorf("advanced %v, want the whole track and no more", feed.advanced)
	}
	if snap.Frame.Low == 0 {
		t.Error("frame should carry the analysed spectrum")
	}
	if mgr.Playing() {
		t.Error("simulation should stop audio when done")
	}
}

func TestRunAutosave(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "orrery.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	mgr := newManager(t)
	ctx, cancel := context.WithTimeout(context.Background(), autosaveEvery+time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		runAutosave(ctx, mgr, st, logging.Discard(), func(err error) { t.Errorf("autosave: %v", err) })
	}()
	time.Sleep(100 * time.Millisecond)
	mgr.AddObject(scene.ShapeStar)
	<-done

	doc, err := st.LoadAutosave(context.Background())
	if err != nil {
		t.Fatalf("LoadAutosave: %v", err)
	}
	if len(doc.Objects) != 2 {
		t.Errorf("saved objects = %d, want 2", len(doc.Objects))
	}
}

func TestSaveNowWithoutStore(t *testing.T) {
	if err := saveNow(newManager(t), nil); err != nil {
		t.Errorf("saveNow(nil store) = %v", err)
	}
}
