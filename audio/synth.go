// Package audio synthesizes procedural sound effects for arena events.
// All sounds are generated oscillators; there are no sample assets.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw audio wave with a linear frequency sweep from
// startFreq to endFreq over its duration. Equal start and end is a steady
// tone.
type oscillator struct {
	startFreq float64
	endFreq   float64
	phase     float64
	duration  int
	position  int
	wave      WaveType
	rate      beep.SampleRate
}

// NewOscillator creates a swept-frequency wave generator.
func NewOscillator(startFreq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		startFreq: startFreq,
		endFreq:   endFreq,
		duration:  rate.N(duration),
		wave:      wave,
		rate:      rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.startFreq + (o.endFreq-o.startFreq)*progress
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release volume shaping to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps a streamer in attack/release shaping.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		var vol float64 = 1.0

		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a streamer safely; math.Log2(0) is -Inf, so zero volume
// becomes silence instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// collisionSound is a low thud whose pitch and length scale with impact.
func collisionSound(rate beep.SampleRate, impact float64, master float64) beep.Streamer {
	dur := time.Duration(60+80*impact) * time.Millisecond
	freq := 70 + 90*impact

	osc := NewOscillator(freq, freq*0.6, dur, WaveSine, rate)
	shaped := NewEnvelope(osc, dur, 5*time.Millisecond, dur/2, rate)
	return newVolume(shaped, (0.3+0.5*impact)*master)
}

// eliminationSound is a falling saw layered with a noise burst.
func eliminationSound(rate beep.SampleRate, master float64) beep.Streamer {
	const dur = 400 * time.Millisecond

	fall := NewOscillator(600, 80, dur, WaveSaw, rate)
	fallShaped := NewEnvelope(fall, dur, 5*time.Millisecond, 250*time.Millisecond, rate)

	noise := NewOscillator(0, 0, dur/2, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, dur/2, 2*time.Millisecond, 150*time.Millisecond, rate)

	mixed := beep.Mix(
		newVolume(fallShaped, 0.7),
		newVolume(noiseShaped, 0.3),
	)
	return newVolume(mixed, 0.8*master)
}

// pickupSound is a short rising chirp.
func pickupSound(rate beep.SampleRate, master float64) beep.Streamer {
	const dur = 150 * time.Millisecond

	osc := NewOscillator(660, 1320, dur, WaveSine, rate)
	shaped := NewEnvelope(osc, dur, 5*time.Millisecond, 80*time.Millisecond, rate)
	return newVolume(shaped, 0.5*master)
}

// countdownSound is a clave tick; the final tick before the round starts
// lands an octave higher.
func countdownSound(rate beep.SampleRate, value int, master float64) beep.Streamer {
	const dur = 120 * time.Millisecond

	freq := 440.0
	if value <= 1 {
		freq = 880.0
	}
	osc := NewOscillator(freq, freq, dur, WaveSquare, rate)
	shaped := NewEnvelope(osc, dur, 2*time.Millisecond, 80*time.Millisecond, rate)
	return newVolume(shaped, 0.4*master)
}

// victorySound is a three-note ascending fanfare.
func victorySound(rate beep.SampleRate, master float64) beep.Streamer {
	note := func(freq float64, dur time.Duration) beep.Streamer {
		osc := NewOscillator(freq, freq, dur, WaveSquare, rate)
		return NewEnvelope(osc, dur, 5*time.Millisecond, dur/3, rate)
	}

	sequence := beep.Seq(
		note(523.25, 140*time.Millisecond), // C5
		note(659.25, 140*time.Millisecond), // E5
		note(783.99, 280*time.Millisecond), // G5
	)
	return newVolume(sequence, 0.6*master)
}
