package sampler

import (
	"math"
	"sync"
)

// DefaultMaxVoices bounds the voice pool when no explicit capacity is given.
const DefaultMaxVoices = 128

// Engine is the real-time polyphonic sample-playback engine.
//
// Two callers interact with it: a control thread (note triggering, parameter
// changes, buffer installation) and the host's audio callback invoking Render
// once per block. A single mutex guards all mutable state and is held for the
// full duration of every call, so each render pass sees one consistent
// snapshot of buffer, range and voices. The flip side is that control work
// done under the lock delays the next block; keep it cheap. In particular the
// heavy recomputation behind a buffer replacement must happen before calling
// SetSample — only the pointer swap runs under the lock.
type Engine struct {
	mu sync.Mutex

	sampleRate int
	maxVoices  int

	buf *SampleBuffer
	rng PlaybackRange

	voices []*Voice

	env         EnvelopeParams
	adsrEnabled bool
	cutItself   bool
	pan         float64
	width       float64
}

// NewEngine creates an engine rendering at the given sample rate.
// maxVoices <= 0 selects DefaultMaxVoices.
func NewEngine(sampleRate, maxVoices int) *Engine {
	if maxVoices <= 0 {
		maxVoices = DefaultMaxVoices
	}
	return &Engine{
		sampleRate:  sampleRate,
		maxVoices:   maxVoices,
		voices:      make([]*Voice, 0, maxVoices),
		env:         DefaultEnvelopeParams(),
		adsrEnabled: true,
		pan:         0.5,
		width:       1.0,
	}
}

// SetSample installs a new playable buffer and resets the playback range to
// cover it fully. The buffer must be complete and self-consistent before the
// call; the engine never applies edits itself. Active voices are kept: any
// voice whose position falls outside the new range finishes on the next
// render pass instead of faulting.
func (e *Engine) SetSample(buf *SampleBuffer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.buf = buf
	if buf != nil {
		e.rng = PlaybackRange{Start: 0, End: buf.Frames}
	} else {
		e.rng = PlaybackRange{}
	}
}

// SetPlaybackRange restricts playback to [start, end) frames. Reversed or
// out-of-bounds input is normalized rather than rejected.
func (e *Engine) SetPlaybackRange(start, end int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	frames := 0
	if e.buf != nil {
		frames = e.buf.Frames
	}
	e.rng = PlaybackRange{Start: start, End: end}.normalized(frames)
}

// PlaybackRange returns the current (normalized) playback range.
func (e *Engine) PlaybackRange() PlaybackRange {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng
}

// NoteOn starts a new voice for the given MIDI note at velocity in [0, 1].
// With no buffer installed it is a silent no-op. In cut-itself mode all
// existing voices are removed first; otherwise, at capacity, the
// oldest-inserted voice is stolen.
func (e *Engine) NoteOn(note int, velocity float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.buf == nil || e.buf.Frames == 0 {
		return
	}

	if e.cutItself {
		for i := range e.voices {
			e.voices[i] = nil
		}
		e.voices = e.voices[:0]
	} else if len(e.voices) >= e.maxVoices {
		copy(e.voices, e.voices[1:])
		e.voices[len(e.voices)-1] = nil
		e.voices = e.voices[:len(e.voices)-1]
	}

	e.voices = append(e.voices, newVoice(note, velocity, e.sampleRate, &e.env))
}

// NoteOff releases every voice playing the given note. Voices already
// releasing are unaffected; release is advisory and the voice is removed
// only once its envelope has decayed or it reaches the range end.
func (e *Engine) NoteOff(note int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, v := range e.voices {
		if v.note == note {
			v.release()
		}
	}
}

// AllNotesOff releases every active voice. Like NoteOff this is advisory:
// voices play out their release tails rather than being cut.
func (e *Engine) AllNotesOff() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, v := range e.voices {
		v.release()
	}
}

// SetADSREnabled toggles envelope shaping. When disabled, voices play
// one-shot: constant gain 1.0, note-off ignored, finishing only at the
// range end.
func (e *Engine) SetADSREnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.adsrEnabled = enabled
}

// SetEnvelope updates the shared envelope tuple. The change applies to
// voices already in flight, not just future ones.
func (e *Engine) SetEnvelope(attack, decay, sustain, release float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.env = EnvelopeParams{Attack: attack, Decay: decay, Sustain: sustain, Release: release}
	e.env.clamp()
}

// SetCutItselfMode toggles between exclusive (monophonic retrigger) and
// polyphonic voice allocation.
func (e *Engine) SetCutItselfMode(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cutItself = enabled
}

// SetPan sets the stereo pan position, 0 = hard left, 1 = hard right.
func (e *Engine) SetPan(pan float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pan = clampf(pan, 0, 1)
}

// SetStereoWidth sets the mid/side width factor, 0 = mono, 2 = doubled side.
func (e *Engine) SetStereoWidth(width float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.width = clampf(width, 0, 2)
}

// IsAnyVoicePlaying reports whether any voice is active. Intended for UI
// overlays; never used to drive audio logic.
func (e *Engine) IsAnyVoicePlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.voices) > 0
}

// ForEachVoice calls visitor with a read-only snapshot of every active
// voice. The lock is held across the iteration, so visitors must be cheap
// and must not call back into the engine.
func (e *Engine) ForEachVoice(visitor func(VoiceInfo)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, v := range e.voices {
		visitor(VoiceInfo{
			Note:      v.note,
			Velocity:  float64(v.velocity),
			Position:  v.pos,
			Releasing: v.releasing(),
		})
	}
}

// Render advances every active voice by numSamples frames and mixes the
// result additively into out[channel][offset:offset+numSamples]. One output
// channel receives the mid signal only; two receive the full mid/side pan
// rendering. Finished voices are swept once at the end of the block, never
// mid-iteration. The render path performs no allocation.
func (e *Engine) Render(out [][]float32, offset, numSamples int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(out) == 0 || numSamples <= 0 {
		return
	}
	for _, ch := range out {
		if n := len(ch) - offset; n < numSamples {
			numSamples = n
		}
	}
	if numSamples <= 0 {
		return
	}

	buf := e.buf
	if buf == nil || buf.Frames == 0 {
		// A swap to no playable material invalidates every position;
		// finish the voices so the sweep below retires them.
		for _, v := range e.voices {
			v.active = false
		}
		e.sweep()
		return
	}

	rng := e.rng.normalized(buf.Frames)
	start := float64(rng.Start)
	limit := float64(rng.Len() - interpMargin)

	chL, chR := 0, 0
	if buf.Channels() > 1 {
		chR = 1
	}
	mono := len(out) == 1
	leftGain := float32(math.Cos(e.pan * math.Pi / 2))
	rightGain := float32(math.Sin(e.pan * math.Pi / 2))
	width := float32(e.width)

	for _, v := range e.voices {
		if !v.active {
			continue
		}
		for i := 0; i < numSamples; i++ {
			// Covers both natural range-end arrival and a buffer swap
			// that left the position beyond the new range.
			if v.pos >= limit {
				v.active = false
				break
			}

			gain := float32(1.0)
			if e.adsrEnabled {
				gain = v.env.tick()
				if v.env.releasing() && gain < silenceEpsilon {
					v.active = false
					break
				}
			}

			p := start + v.pos
			l := buf.readCubic(chL, p) * v.velocity * gain
			r := buf.readCubic(chR, p) * v.velocity * gain

			mid := 0.5 * (l + r)
			if mono {
				out[0][offset+i] += mid
			} else {
				side := 0.5 * (l - r) * width
				out[0][offset+i] += leftGain * (mid + side)
				out[1][offset+i] += rightGain * (mid - side)
			}

			v.pos += v.ratio
		}
	}

	e.sweep()
}

// sweep retires finished voices, compacting in place and keeping
// insertion order. Caller holds the lock.
func (e *Engine) sweep() {
	active := e.voices[:0]
	for _, v := range e.voices {
		if v.active {
			active = append(active, v)
		}
	}
	for i := len(active); i < len(e.voices); i++ {
		e.voices[i] = nil
	}
	e.voices = active
}
