package audio

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/winhop/engine"
	"github.com/lixenwraith/winhop/parameter"
)

// Sink receives finished cue streams
type Sink interface {
	Play(s beep.Streamer)
	Close()
}

// SpeakerSink mixes cues into the system speaker
// Safe for concurrent use; calls before Init or after Close are dropped
type SpeakerSink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeakerSink creates an uninitialized speaker sink
func NewSpeakerSink() *SpeakerSink {
	return &SpeakerSink{mixer: &beep.Mixer{}}
}

// Init opens the speaker, a second call is a no-op
func (s *SpeakerSink) Init(rate beep.SampleRate, buffer time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

func (s *SpeakerSink) Play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences everything queued, beep has no speaker shutdown
func (s *SpeakerSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// CuePlayer is a managed entity that voices phase changes and gameplay cues
// Game code calls Play from the game loop; the sink does the mixing
type CuePlayer struct {
	sink   Sink
	rate   beep.SampleRate
	volume float64
	fade   time.Duration
	muted  atomic.Bool

	life       *engine.Managed
	statPlayed *atomic.Int64
}

// NewCuePlayer registers a cue player, a nil sink or disabled audio starts muted
func NewCuePlayer(gc *engine.GameContext, sink Sink) *CuePlayer {
	p := &CuePlayer{
		sink:       sink,
		rate:       beep.SampleRate(parameter.AudioSampleRate),
		volume:     gc.Config.Audio.Volume,
		fade:       parameter.AudioFadeOut,
		statPlayed: gc.Status.Ints.Get(parameter.StatCuesPlayed),
	}
	p.muted.Store(sink == nil || !gc.Config.Audio.Enabled)
	p.life = engine.NewManaged(gc.Store, p)
	return p
}

func (p *CuePlayer) String() string { return "audio.CuePlayer" }

// Start delivers the catch-up transition
func (p *CuePlayer) Start() error {
	return p.life.Start()
}

// Destroy unregisters and closes the sink
func (p *CuePlayer) Destroy() {
	p.life.Destroy()
	if p.sink != nil {
		p.sink.Close()
	}
}

func (p *CuePlayer) OnPhaseChange(previous, next engine.Phase) error {
	switch next {
	case engine.PhaseInGame:
		p.Play(CueStart)
	case engine.PhaseDying:
		p.Play(CueDying)
	case engine.PhaseGameOverUI:
		p.Play(CueGameOver)
	}
	return nil
}

// Play synthesizes cue and hands it to the sink
func (p *CuePlayer) Play(cue Cue) {
	if p.muted.Load() {
		return
	}
	st := NewCueStream(cue, p.volume, p.fade, p.rate)
	if st == nil {
		log.Printf("[audio] no stream for cue %s", cue)
		return
	}
	p.sink.Play(st)
	p.statPlayed.Add(1)
}

// ToggleMute flips muting and returns the new state, a nil sink stays muted
func (p *CuePlayer) ToggleMute() bool {
	if p.sink == nil {
		return true
	}
	muted := !p.muted.Load()
	p.muted.Store(muted)
	return muted
}

// Muted reports whether cues are dropped
func (p *CuePlayer) Muted() bool {
	return p.muted.Load()
}
