package audio

import (
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Sampler provides recent mono samples, oldest first.
type Sampler interface {
	Mono(n int) []float64
}

// Analyser computes byte magnitude spectra the way a browser AnalyserNode
// does: Blackman window, FFT, temporal smoothing, then dB scaled onto 0-255.
type Analyser struct {
	cfg SpectrumConfig
	src Sampler

	mu       sync.Mutex
	fft      *fourier.FFT
	window   []float64
	frame    []float64
	coeff    []complex128
	smoothed []float64
	out      []byte
}

// NewAnalyser creates an analyser reading from src. src may be nil when
// only Process is used.
func NewAnalyser(cfg SpectrumConfig, src Sampler) *Analyser {
	if cfg.FFTSize < 32 {
		cfg.FFTSize = DefaultSpectrumConfig().FFTSize
	}
	n := cfg.FFTSize
	return &Analyser{
		cfg:      cfg,
		src:      src,
		fft:      fourier.NewFFT(n),
		window:   blackman(n),
		frame:    make([]float64, n),
		smoothed: make([]float64, n/2),
		out:      make([]byte, n/2),
	}
}

// Bins returns the number of frequency bins produced.
func (a *Analyser) Bins() int {
	return a.cfg.FFTSize / 2
}

// Spectrum implements Source using the latest samples from the sampler.
func (a *Analyser) Spectrum() []byte {
	if a.src == nil {
		return make([]byte, a.Bins())
	}
	return a.Process(a.src.Mono(a.cfg.FFTSize))
}

// Process analyzes samples, zero-padded or truncated to the FFT size, and
// returns a fresh byte spectrum. Smoothing state carries across calls.
func (a *Analyser) Process(samples []float64) []byte {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := a.cfg.FFTSize
	for i := range a.frame {
		v := 0.0
		if i < len(samples) {
			v = samples[i]
		}
		a.frame[i] = v * a.window[i]
	}
	a.coeff = a.fft.Coefficients(a.coeff, a.frame)

	tau := a.cfg.Smoothing
	span := a.cfg.MaxDecibels - a.cfg.MinDecibels
	for k := range a.smoothed {
		mag := cmplx.Abs(a.coeff[k]) / float64(n)
		a.smoothed[k] = tau*a.smoothed[k] + (1-tau)*mag

		if a.smoothed[k] <= 0 || span <= 0 {
			a.out[k] = 0
			continue
		}
		db := 20 * math.Log10(a.smoothed[k])
		scaled := 255 / span * (db - a.cfg.MinDecibels)
		a.out[k] = byte(math.Max(0, math.Min(255, scaled)))
	}

	res := make([]byte, len(a.out))
	copy(res, a.out)
	return res
}

// Reset clears the smoothing history.
func (a *Analyser) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.smoothed)
}

func blackman(n int) []float64 {
	const alpha = 0.16
	a0, a1, a2 := (1-alpha)/2, 0.5, alpha/2
	w := make([]float64, n)
	for i := range w {
		x := 2 * math.Pi * float64(i) / float64(n)
		w[i] = a0 - a1*math.Cos(x) + a2*math.Cos(2*x)
	}
	return w
}
