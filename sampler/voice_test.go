package sampler

import (
	"math"
	"testing"
)

func TestPitchRatioAtRootNote(t *testing.T) {
	r := pitchRatioForNote(rootNote)
	if math.Abs(r-1.0) > 1e-3 {
		t.Fatalf("expected ratio ~1.0 at root note, got %f", r)
	}
}

func TestPitchRatioOctaves(t *testing.T) {
	cases := []struct {
		note int
		want float64
	}{
		{rootNote + 12, 2.0},
		{rootNote - 12, 0.5},
		{rootNote + 24, 4.0},
		{rootNote + 7, math.Pow(2, 7.0/12.0)},
	}
	for _, c := range cases {
		r := pitchRatioForNote(c.note)
		if math.Abs(r-c.want)/c.want > 0.01 {
			t.Fatalf("note %d: got ratio %f, want ~%f", c.note, r, c.want)
		}
	}
}

func TestPitchRatioClamped(t *testing.T) {
	if r := pitchRatioForNote(-100000); r != minPitchRatio {
		t.Fatalf("expected low clamp %g, got %g", minPitchRatio, r)
	}
	if r := pitchRatioForNote(100000); r != maxPitchRatio {
		t.Fatalf("expected high clamp %g, got %g", maxPitchRatio, r)
	}
}

func TestVoiceVelocityClamped(t *testing.T) {
	params := DefaultEnvelopeParams()
	if v := newVoice(60, 1.7, 48000, &params); v.velocity != 1 {
		t.Fatalf("expected velocity clamp to 1, got %f", v.velocity)
	}
	if v := newVoice(60, -0.5, 48000, &params); v.velocity != 0 {
		t.Fatalf("expected velocity clamp to 0, got %f", v.velocity)
	}
}

func TestVoiceReleaseIsIdempotent(t *testing.T) {
	params := DefaultEnvelopeParams()
	v := newVoice(60, 1, 48000, &params)
	for i := 0; i < 100; i++ {
		v.env.tick()
	}
	v.release()
	levelAfterFirst := v.env.tick()
	v.release()
	if !v.releasing() {
		t.Fatalf("expected voice to stay releasing")
	}
	// A second release must not restart the stage from a higher level.
	if got := v.env.tick(); got > levelAfterFirst {
		t.Fatalf("second release raised level: %f > %f", got, levelAfterFirst)
	}
}
