package sampler

import (
	"github.com/cwbudde/algo-approx"

	"github.com/cwbudde/algo-sampler/dsp"
)

type envelopeStage int

const (
	stageAttack envelopeStage = iota
	stageDecay
	stageSustain
	stageRelease
)

// silenceEpsilon is the level below which a releasing envelope counts as
// silent; the owning voice is finished once it is crossed.
const silenceEpsilon = 0.001

// envelope shapes one voice's amplitude. It reads the shared EnvelopeParams
// on every tick, so parameter changes take effect immediately on running
// voices. Attack and decay ramp linearly; release decays exponentially from
// whatever level was current when the release was triggered.
type envelope struct {
	params     *EnvelopeParams
	sampleRate float64
	stage      envelopeStage
	level      float32
}

func newEnvelope(params *EnvelopeParams, sampleRate int) *envelope {
	return &envelope{
		params:     params,
		sampleRate: float64(sampleRate),
	}
}

// reset restarts the envelope from silence into the attack stage.
func (e *envelope) reset() {
	e.stage = stageAttack
	e.level = 0
}

// release moves the envelope into its release stage. Calling it again while
// already releasing has no effect.
func (e *envelope) release() {
	e.stage = stageRelease
}

func (e *envelope) releasing() bool {
	return e.stage == stageRelease
}

// tick advances the envelope by one sample and returns the new level.
func (e *envelope) tick() float32 {
	p := e.params
	switch e.stage {
	case stageAttack:
		e.level += float32(1.0 / frames(p.Attack, e.sampleRate))
		if e.level >= 1 {
			e.level = 1
			e.stage = stageDecay
		}
	case stageDecay:
		sustain := float32(p.Sustain)
		e.level -= (1 - sustain) / float32(frames(p.Decay, e.sampleRate))
		if e.level <= sustain {
			e.level = sustain
			e.stage = stageSustain
		}
	case stageSustain:
		e.level = float32(p.Sustain)
	case stageRelease:
		if p.Release <= 0 {
			e.level = 0
			break
		}
		// One-pole exponential decay with time constant Release.
		e.level *= approx.FastExp(float32(-1.0 / (p.Release * e.sampleRate)))
		e.level = dsp.FlushDenormals(e.level)
	}
	return e.level
}

// frames converts a duration in seconds to a frame count, with a one-frame
// floor so zero-length stages complete on the next tick instead of dividing
// by zero.
func frames(seconds, sampleRate float64) float64 {
	n := seconds * sampleRate
	if n < 1 {
		return 1
	}
	return n
}
