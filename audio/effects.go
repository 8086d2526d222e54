package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
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

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// fadeOut ramps the last release samples of a finite stream down to silence
type fadeOut struct {
	streamer beep.Streamer
	position int
	total    int
	release  int
}

// NewFadeOut shapes a stream of the given duration with a linear release tail
func NewFadeOut(s beep.Streamer, duration, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fadeOut{
		streamer: s,
		total:    rate.N(duration),
		release:  rate.N(release),
	}
}

func (f *fadeOut) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	releaseStart := f.total - f.release

	for i := 0; i < n; i++ {
		if f.position >= releaseStart && f.release > 0 {
			vol := float64(f.total-f.position) / float64(f.release)
			if vol < 0 {
				vol = 0
			}
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		f.position++
	}
	return n, ok
}

func (f *fadeOut) Err() error { return f.streamer.Err() }

// newVolume scales a stream linearly, math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is one note of a cue
type tone struct {
	freq     float64
	duration time.Duration
	wave     WaveType
}

// cueTones lists the notes played in sequence for each cue
var cueTones = map[Cue][]tone{
	CueStart:    {{523.25, 90 * time.Millisecond, WaveSquare}, {783.99, 140 * time.Millisecond, WaveSquare}},
	CueJump:     {{330, 80 * time.Millisecond, WaveSaw}},
	CueLand:     {{660, 60 * time.Millisecond, WaveSine}},
	CueVisit:    {{880, 70 * time.Millisecond, WaveSine}, {1318.51, 110 * time.Millisecond, WaveSine}},
	CueFile:     {{1046.5, 50 * time.Millisecond, WaveSquare}},
	CueScan:     {{0, 250 * time.Millisecond, WaveNoise}},
	CueDying:    {{220, 180 * time.Millisecond, WaveSaw}, {110, 320 * time.Millisecond, WaveSaw}},
	CueGameOver: {{196, 400 * time.Millisecond, WaveSine}},
}

// NewCueStream builds the streamer for cue, nil for an unknown cue
func NewCueStream(cue Cue, volume float64, fade time.Duration, rate beep.SampleRate) beep.Streamer {
	tones, ok := cueTones[cue]
	if !ok {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		osc := NewOscillator(t.freq, t.duration, t.wave, rate)
		parts = append(parts, NewFadeOut(osc, t.duration, fade, rate))
	}
	return newVolume(beep.Seq(parts...), volume)
}

// CueDuration returns the total playing time of cue
func CueDuration(cue Cue) time.Duration {
	var d time.Duration
	for _, t := range cueTones[cue] {
		d += t.duration
	}
	return d
}
