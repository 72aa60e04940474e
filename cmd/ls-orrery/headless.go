package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/litescript/ls-orrery/internal/audio"
	"github.com/litescript/ls-orrery/internal/export"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/server"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/store"
)

// feeder pumps decoded audio without a speaker.
type feeder interface {
	Advance(d time.Duration) bool
	Done() bool
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(ctx context.Context, stateMgr *state.Manager, st *store.Store, track *audio.Track, fps int, logger *logging.Logger) error {
	var feed feeder
	if track != nil {
		feed = track
	}

	if designCount > 0 {
		if err := export.WriteDesigns(os.Stdout, stateMgr.PreviewDesigns(designCount)); err != nil {
			return fmt.Errorf("write designs: %w", err)
		}
	}

	if frameCount > 0 {
		start := time.Now()
		snap, at := simulate(stateMgr, feed, frameCount, fps, start)
		logger.Debug("Simulated %d frames in %v", frameCount, time.Since(start).Round(time.Millisecond))
		if err := writeFrame(snap, at); err != nil {
			return err
		}
	}

	if serveAddr != "" {
		return serve(ctx, stateMgr, st, feed, fps, logger)
	}
	return nil
}

// simulate advances n frames of 1/fps seconds from start, feeding audio
// when available. Returns the final frame and its timestamp.
func simulate(stateMgr *state.Manager, feed feeder, n, fps int, start time.Time) (state.Snapshot, time.Time) {
	frame := time.Second / time.Duration(fps)
	if feed != nil {
		stateMgr.StartAudio()
		defer stateMgr.StopAudio()
	}

	now := start
	for i := 0; i < n; i++ {
		now = start.Add(time.Duration(i) * frame)
		if feed != nil && !feed.Done() {
			feed.Advance(frame)
			stateMgr.AudioStep(now)
		}
		stateMgr.Tick(now)
	}
	return stateMgr.Snapshot(now), now
}

// writeFrame exports the frame as JSON when -snapshot-path is set, and as a
// summary table otherwise.
func writeFrame(snap state.Snapshot, at time.Time) error {
	if snapshotPath == "" {
		export.WriteSummaryTable(os.Stdout, snap, at)
		return nil
	}

	exp := export.ExportFrame(snap, frameCount, at)
	if snapshotPath == "-" {
		if err := exp.WriteJSON(os.Stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}
	f, err := os.Create(snapshotPath)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := exp.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}

// serve runs the HTTP API with the motion loop and autosave in the
// background until ctx is cancelled.
func serve(ctx context.Context, stateMgr *state.Manager, st *store.Store, feed feeder, fps int, logger *logging.Logger) error {
	var presets server.Presets
	if st != nil {
		presets = st
	}
	srv := server.New(stateMgr, presets, logger.With("http"))

	go runFrameLoop(ctx, stateMgr, feed, fps, logger)
	go runAutosave(ctx, stateMgr, st, logger, nil)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Shutdown: %v", err)
		}
	}()

	err := srv.Listen(serveAddr)
	if saveErr := saveNow(stateMgr, st); saveErr != nil {
		logger.Error("Final save failed: %v", saveErr)
	}
	return err
}

// runFrameLoop ticks motion at fps and, with a feeder, analyses audio in
// real time until the track ends.
func runFrameLoop(ctx context.Context, stateMgr *state.Manager, feed feeder, fps int, logger *logging.Logger) {
	frame := time.Second / time.Duration(fps)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	var gen uint64
	if feed != nil {
		gen = stateMgr.StartAudio()
	}

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Frame loop shutting down")
			return
		case now := <-ticker.C:
			if feed != nil && stateMgr.AudioRunning(gen) {
				if feed.Done() {
					stateMgr.StopAudio()
					logger.Info("Track finished")
				} else {
					feed.Advance(frame)
					stateMgr.AudioStep(now)
				}
			}
			stateMgr.Tick(now)
		}
	}
}
