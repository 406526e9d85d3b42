package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/mkrall/crowdctl/config"
	"github.com/mkrall/crowdctl/telemetry"
)

const sampleRate = beep.SampleRate(48000)

// Manager owns the speaker and dispatches arena events to synthesized
// sounds. A failed speaker init degrades to silence rather than erroring
// the game out.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewManager creates an uninitialized manager.
func NewManager() *Manager {
	return &Manager{
		mixer:  &beep.Mixer{},
		volume: config.Cfg().Audio.Volume,
	}
}

// Initialize opens the speaker. Disabled config or init failure leaves the
// manager silent; all Play calls become no-ops.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized || !config.Cfg().Audio.Enabled {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		slog.Warn("audio unavailable, continuing silent", "error", err)
		return err
	}

	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// SetVolume changes the master volume for subsequently played sounds.
func (m *Manager) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.volume = v
}

// Volume returns the current master volume.
func (m *Manager) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Cleanup silences the mixer.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.mixer.Clear()
	m.initialized = false
}

// HandleEvents plays the sounds for one frame's worth of arena events.
func (m *Manager) HandleEvents(events []telemetry.Event) {
	for _, ev := range events {
		switch ev.Type {
		case telemetry.EventCollision:
			// Soft grazes stay silent to keep the mix readable.
			if ev.Impact > 0.15 {
				m.PlayCollision(float64(ev.Impact))
			}
		case telemetry.EventElimination:
			m.PlayElimination()
		case telemetry.EventPickup:
			m.PlayPickup()
		case telemetry.EventCountdownTick:
			m.PlayCountdown(ev.Value)
		case telemetry.EventRoundWon:
			m.PlayVictory()
		}
	}
}

// PlayCollision plays an impact thud scaled by magnitude in [0,1].
func (m *Manager) PlayCollision(impact float64) {
	m.play(func(vol float64) beep.Streamer { return collisionSound(sampleRate, impact, vol) })
}

// PlayElimination plays the falling-off sound.
func (m *Manager) PlayElimination() {
	m.play(func(vol float64) beep.Streamer { return eliminationSound(sampleRate, vol) })
}

// PlayPickup plays the power-up chirp.
func (m *Manager) PlayPickup() {
	m.play(func(vol float64) beep.Streamer { return pickupSound(sampleRate, vol) })
}

// PlayCountdown plays a countdown tick.
func (m *Manager) PlayCountdown(value int) {
	m.play(func(vol float64) beep.Streamer { return countdownSound(sampleRate, value, vol) })
}

// PlayVictory plays the round-won fanfare.
func (m *Manager) PlayVictory() {
	m.play(func(vol float64) beep.Streamer { return victorySound(sampleRate, vol) })
}

func (m *Manager) play(build func(vol float64) beep.Streamer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.mixer.Add(build(m.volume))
}
