package sampler

import "github.com/cwbudde/algo-approx"

// rootNote is the MIDI note that plays the sample at its native rate
// (pitch ratio 1.0).
const rootNote = 60

// Pitch ratios are clamped to a wide but finite range so a malformed note
// number can never drive the read position advance to infinity.
const (
	minPitchRatio = 1.0 / 256.0
	maxPitchRatio = 256.0
)

// pitchRatioForNote converts a MIDI note number to the per-output-sample
// read-position advance: 2^(semitones/12) relative to rootNote.
func pitchRatioForNote(note int) float64 {
	semitones := float32(note-rootNote) / 12.0
	ratio := float64(pow2Approx(semitones))
	if ratio < minPitchRatio {
		return minPitchRatio
	}
	if ratio > maxPitchRatio {
		return maxPitchRatio
	}
	return ratio
}

func pow2Approx(x float32) float32 {
	const ln2 = 0.69314718055994530942
	return approx.FastExp(x * ln2)
}

func clampf(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
