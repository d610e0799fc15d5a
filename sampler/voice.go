package sampler

// Voice is one independently advancing playback of the installed sample.
// Voices exist only while audible: created at note-on, swept from the pool
// once finished. The read position always advances forward; reversed
// playback is realized upstream by installing a physically reversed buffer.
type Voice struct {
	note     int
	velocity float32
	ratio    float64 // read-position advance per output sample
	pos      float64 // fractional frame offset from the range start
	env      *envelope
	active   bool
}

func newVoice(note int, velocity float64, sampleRate int, params *EnvelopeParams) *Voice {
	v := &Voice{
		note:     note,
		velocity: float32(clampf(velocity, 0, 1)),
		ratio:    pitchRatioForNote(note),
		env:      newEnvelope(params, sampleRate),
		active:   true,
	}
	v.env.reset()
	return v
}

// release triggers the envelope release stage. A no-op on voices already
// releasing.
func (v *Voice) release() {
	if v.env.releasing() {
		return
	}
	v.env.release()
}

func (v *Voice) releasing() bool {
	return v.env.releasing()
}

// VoiceInfo is a read-only snapshot of a voice, exposed for UI overlays
// such as playhead markers. It carries no references back into the engine.
type VoiceInfo struct {
	Note      int
	Velocity  float64
	Position  float64 // fractional frame offset from the range start
	Releasing bool
}
