package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// ErrUnsupportedFormat is returned for files that are not wav, mp3 or flac.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// TapSize is the number of recent samples a Track keeps for analysis.
const TapSize = 8192

var (
	speakerMu   sync.Mutex
	speakerRate beep.SampleRate
)

// initSpeaker initializes the output device for rate, reinitializing when
// the rate changes and clearing anything already queued otherwise.
func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	bufferSize := rate.N(time.Second / 20)
	switch {
	case speakerRate == 0:
		if err := speaker.Init(rate, bufferSize); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
	case speakerRate != rate:
		speaker.Clear()
		if err := speaker.Init(rate, bufferSize); err != nil {
			return fmt.Errorf("reinit speaker: %w", err)
		}
	default:
		speaker.Clear()
	}
	speakerRate = rate
	return nil
}

// Track is a decoded audio file routed through a Tap. It either plays on
// the speaker or is pumped manually with Advance for offline analysis.
type Track struct {
	Path string

	mu       sync.Mutex
	streamer beep.StreamSeekCloser
	format   beep.Format
	tap      *Tap
	ctrl     *beep.Ctrl
	playing  bool        // handed to the speaker
	done     atomic.Bool // set from the speaker callback without t.mu
	scratch  [][2]float64
}

// Open decodes path based on its extension.
func Open(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", filepath.Ext(path), ErrUnsupportedFormat)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	tap := NewTap(streamer, TapSize)
	return &Track{
		Path:     path,
		streamer: streamer,
		format:   format,
		tap:      tap,
		ctrl:     &beep.Ctrl{Streamer: tap, Paused: true},
	}, nil
}

// Tap returns the recorder for the analyser.
func (t *Track) Tap() *Tap { return t.tap }

// Format returns the decoded stream format.
func (t *Track) Format() beep.Format { return t.format }

// Duration returns the total length of the track.
func (t *Track) Duration() time.Duration {
	return t.format.SampleRate.D(t.streamer.Len())
}

// Position returns the playback position.
func (t *Track) Position() time.Duration {
	t.lock()
	defer t.unlock()
	return t.format.SampleRate.D(t.streamer.Position())
}

// Play starts or resumes playback on the speaker.
func (t *Track) Play() error {
	t.mu.Lock()
	started := t.playing
	t.mu.Unlock()

	if !started {
		if err := initSpeaker(t.format.SampleRate); err != nil {
			return err
		}
		t.mu.Lock()
		t.playing = true
		t.mu.Unlock()
		speaker.Play(beep.Seq(t.ctrl, beep.Callback(func() {
			t.done.Store(true)
		})))
	}
	t.setPaused(false)
	return nil
}

// Pause pauses playback. Resume with Play.
func (t *Track) Pause() {
	t.setPaused(true)
}

func (t *Track) setPaused(p bool) {
	t.lock()
	t.ctrl.Paused = p
	t.unlock()
}

// Paused reports whether the track is paused.
func (t *Track) Paused() bool {
	t.lock()
	defer t.unlock()
	return t.ctrl.Paused
}

// Done reports whether the stream has been exhausted.
func (t *Track) Done() bool {
	return t.done.Load()
}

// Advance pulls d worth of samples through the tap without a speaker.
// Reports false once the stream is exhausted.
func (t *Track) Advance(d time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done.Load() {
		return false
	}
	n := t.format.SampleRate.N(d)
	if n <= 0 {
		return true
	}
	if cap(t.scratch) < n {
		t.scratch = make([][2]float64, n)
	}
	buf := t.scratch[:n]
	for len(buf) > 0 {
		got, ok := t.tap.Stream(buf)
		if !ok {
			t.done.Store(true)
			return false
		}
		buf = buf[got:]
	}
	return true
}

// Close stops playback and releases the file. The decoder owns the file
// and closes it.
func (t *Track) Close() error {
	t.mu.Lock()
	playing := t.playing
	t.mu.Unlock()
	if playing {
		speaker.Lock()
		t.ctrl.Streamer = nil
		speaker.Unlock()
	}
	return t.streamer.Close()
}

// lock takes the speaker lock when the track is on the speaker, so control
// changes do not race the audio callback.
func (t *Track) lock() {
	t.mu.Lock()
	if t.playing {
		speaker.Lock()
	}
}

func (t *Track) unlock() {
	if t.playing {
		speaker.Unlock()
	}
	t.mu.Unlock()
}
