// Package audio provides notification chimes for generation events.
package audio

import (
	gomath "math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the sample rate for chime synthesis.
const DefaultSampleRate = beep.SampleRate(44100)

// Manager plays short synthesized chimes when a generation finishes.
// All tones are generated in-process; no audio assets are shipped.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	mixer       *beep.Mixer

	volume float64 // 0..1
	muted  bool
}

// New creates an audio manager. Call Init before playing.
func New() *Manager {
	return &Manager{
		volume: 0.8,
		mixer:  &beep.Mixer{},
	}
}

// Init opens the speaker and starts the mixer. Safe to call more than
// once.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	m.sampleRate = DefaultSampleRate
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return err
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close stops playback. A no-op before Init.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.initialized = false
}

// IsInitialized reports whether the speaker is ready.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the chime volume, clamped to 0..1.
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = min(1, max(0, vol))
}

// Volume returns the chime volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// SetMuted silences or restores the chimes.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// Muted reports whether chimes are silenced.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// ToggleMute flips the mute state and returns the new value.
func (m *Manager) ToggleMute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = !m.muted
	return m.muted
}

// PlayComplete plays the rising two-note chime for a finished
// generation.
func (m *Manager) PlayComplete() {
	m.play(
		note{freq: 880.00, dur: 130 * time.Millisecond},  // A5
		note{freq: 1318.51, dur: 180 * time.Millisecond}, // E6
	)
}

// PlayError plays the falling two-note chime for a failed generation.
func (m *Manager) PlayError() {
	m.play(
		note{freq: 440.00, dur: 160 * time.Millisecond}, // A4
		note{freq: 329.63, dur: 220 * time.Millisecond}, // E4
	)
}

type note struct {
	freq float64
	dur  time.Duration
}

func (m *Manager) play(notes ...note) {
	m.mu.RLock()
	ready := m.initialized && !m.muted && m.volume > 0
	vol := m.volume
	sr := m.sampleRate
	m.mu.RUnlock()

	if !ready {
		return
	}

	seq := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		seq[i] = newTone(sr, n.freq, n.dur)
	}

	m.mixer.Add(&effects.Volume{
		Streamer: beep.Seq(seq...),
		Base:     2,
		Volume:   toGain(vol),
	})
}

// toGain maps a 0..1 volume onto the logarithmic scale effects.Volume
// expects. Zero maps far enough down to be inaudible.
func toGain(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * gomath.Log10(vol)
}

// tone is a sine wave with a short attack ramp and an exponential
// decay envelope.
type tone struct {
	sr     beep.SampleRate
	freq   float64
	pos    int
	length int
}

func newTone(sr beep.SampleRate, freq float64, dur time.Duration) *tone {
	return &tone{sr: sr, freq: freq, length: sr.N(dur)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.length {
		return 0, false
	}

	for i := range samples {
		if t.pos >= t.length {
			return i, true
		}

		phase := 2 * gomath.Pi * t.freq * float64(t.pos) / float64(t.sr)
		progress := float64(t.pos) / float64(t.length)
		envelope := gomath.Exp(-5 * progress)

		// Attack ramp over the first 5ms avoids onset clicks
		if attack := float64(t.pos) / (float64(t.sr) * 0.005); attack < 1 {
			envelope *= attack
		}

		v := gomath.Sin(phase) * envelope * 0.35
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error {
	return nil
}
