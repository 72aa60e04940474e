// Command ls-orrery is an audio-reactive orbital visualizer for the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ncruces/zenity"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/audio"
	"github.com/litescript/ls-orrery/internal/designer"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/store"
	"github.com/litescript/ls-orrery/internal/ui"
	"github.com/litescript/ls-orrery/internal/version"
)

// CLI flags for headless mode
var (
	frameCount   int
	designCount  int
	snapshotPath string
	serveAddr    string
)

const (
	defaultFPS      = 60
	minFPS          = 10
	maxFPS          = 120
	autosaveEvery   = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

func main() {
	// Parse flags
	fps := flag.Int("fps", defaultFPS, "Frames per second of the motion loop (10-120)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write logs to file (TUI mode discards logs otherwise)")
	dbPath := flag.String("db", defaultDBPath(), "SQLite state database (empty disables persistence)")
	audioPath := flag.String("audio", "", "Audio file to analyse (wav, mp3, flac)")
	pick := flag.Bool("pick", false, "Choose the audio file with a file dialog")
	lang := flag.String("lang", "", "Design name language (en, ru); defaults to the saved setting")
	mode := flag.String("mode", "smooth", "Reactive hue mode (smooth, impulse, chaos)")
	tempoSync := flag.Bool("sync", false, "Start with tempo sync enabled")
	seed := flag.Int64("seed", 0, "Random seed (0 seeds from the clock)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.IntVar(&frameCount, "frames", 0, "Simulate N frames headlessly and print the final frame")
	flag.IntVar(&designCount, "designs", 0, "Print N generated designs as JSON and exit")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Write the final frame as JSON to file (use - for stdout)")
	flag.StringVar(&serveAddr, "serve", "", "Serve the HTTP API on addr (e.g. :8080)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ls-orrery v%s\n", version.Version)
		return
	}

	*fps = clampFPS(*fps)
	headless := frameCount > 0 || designCount > 0 || serveAddr != ""

	// Set up logging
	logger := logging.New(logging.ParseLevel(*logLevel))
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else if !headless {
		logger.SetOutput(io.Discard)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Persistence
	var st *store.Store
	doc := store.Document{Settings: store.DefaultSettings()}
	if *dbPath != "" {
		var err error
		st, err = store.Open(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		saved, err := st.LoadAutosave(ctx)
		switch {
		case err == nil:
			doc = saved
			logger.Debug("Loaded autosave: %d objects, %d groups", len(doc.Objects), len(doc.Groups))
		case errors.Is(err, store.ErrNotFound):
			logger.Debug("No autosave, starting fresh")
		default:
			logger.Warn("Ignoring unreadable autosave: %v", err)
		}
	}

	// Initialize components
	reactive, err := audio.ParseMode(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	stateCfg := state.DefaultConfig()
	stateCfg.Language = ""
	if *lang != "" {
		stateCfg.Language = designer.ParseLanguage(*lang)
	}
	stateCfg.ReactiveMode = reactive
	stateCfg.TempoSync = *tempoSync
	stateCfg.Seed = *seed
	stateMgr := state.NewManager(stateCfg, doc)

	// Audio
	if *pick {
		path, err := pickAudioFile()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error choosing file: %v\n", err)
			os.Exit(1)
		}
		*audioPath = path
	}
	var track *audio.Track
	if *audioPath != "" {
		track, err = audio.Open(*audioPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer track.Close()
		stateMgr.AttachAudio(audio.NewAnalyser(audio.DefaultSpectrumConfig(), track.Tap()))
		logger.Info("Loaded %s (%s, %d Hz)", filepath.Base(*audioPath),
			track.Duration().Round(time.Second), track.Format().SampleRate)
	}

	// Headless mode: no TUI
	if headless {
		if err := runHeadless(ctx, stateMgr, st, track, *fps, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal; use -frames, -designs or -serve")
		os.Exit(1)
	}

	// Create TUI model
	opts := ui.Options{FPS: *fps}
	if track != nil {
		opts.Player = track
		opts.TrackName = filepath.Base(track.Path)
	}
	model := ui.New(stateMgr, opts)

	// Create Bubble Tea program
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Autosave in background
	go runAutosave(ctx, stateMgr, st, logger, func(err error) {
		p.Send(ui.ErrorMsg{Error: err})
	})

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	if err := saveNow(stateMgr, st); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving state: %v\n", err)
	}
}

// clampFPS keeps the frame rate in the supported range.
func clampFPS(fps int) int {
	if fps < minFPS {
		return minFPS
	}
	if fps > maxFPS {
		return maxFPS
	}
	return fps
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ls-orrery", "orrery.db")
}

func pickAudioFile() (string, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return path, err
}
