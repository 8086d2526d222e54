package parameter

import "time"

// Audio Cues
const (
	AudioSampleRate   = 44100
	AudioBufferLength = 100 * time.Millisecond

	// AudioCueVolume is the base gain applied to cue oscillators
	AudioCueVolume = 0.25

	// AudioFadeOut is the tail over which each cue fades to silence
	AudioFadeOut = 40 * time.Millisecond
)
