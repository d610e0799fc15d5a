package sampler

// EnvelopeParams is the shared attack/decay/sustain/release tuple. All times
// are in seconds, Sustain is a level in [0, 1]. One tuple is owned by the
// engine and referenced by every voice, so updating it reshapes envelopes of
// voices already in flight, not just future ones.
type EnvelopeParams struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// DefaultEnvelopeParams returns a short percussive default envelope.
func DefaultEnvelopeParams() EnvelopeParams {
	return EnvelopeParams{
		Attack:  0.002,
		Decay:   0.05,
		Sustain: 0.8,
		Release: 0.12,
	}
}

func (p *EnvelopeParams) clamp() {
	if p.Attack < 0 {
		p.Attack = 0
	}
	if p.Decay < 0 {
		p.Decay = 0
	}
	if p.Sustain < 0 {
		p.Sustain = 0
	}
	if p.Sustain > 1 {
		p.Sustain = 1
	}
	if p.Release < 0 {
		p.Release = 0
	}
}
