package main

import (
	"context"
	"time"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/store"
)

// runAutosave writes the document whenever the manager's revision moved
// since the last save. Failures are logged and passed to onError.
func runAutosave(ctx context.Context, stateMgr *state.Manager, st *store.Store, logger *logging.Logger, onError func(error)) {
	if st == nil {
		return
	}
	log := logger.With("autosave")
	saved := stateMgr.Revision()

	ticker := time.NewTicker(autosaveEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("Autosave loop shutting down")
			return
		case <-ticker.C:
			rev := stateMgr.Revision()
			if rev == saved {
				continue
			}
			if err := st.SaveAutosave(ctx, stateMgr.Document()); err != nil {
				log.Error("Save failed: %v", err)
				if onError != nil {
					onError(err)
				}
				continue
			}
			log.Debug("Saved revision %d", rev)
			saved = rev
		}
	}
}

// saveNow writes the document once, outside any loop.
func saveNow(stateMgr *state.Manager, st *store.Store) error {
	if st == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return st.SaveAutosave(ctx, stateMgr.Document())
}
