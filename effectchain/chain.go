// Package effectchain recomputes the playable buffer from an original
// recording plus a set of toggled, non-destructive edits. It is the
// non-real-time side of the buffer-handoff contract: every recompute derives
// a complete buffer from scratch and hands it to the engine in a single
// SetSample call, so the engine never applies edits itself.
package effectchain

import (
	"math"

	dspbuffer "github.com/cwbudde/algo-dsp/dsp/buffer"

	"github.com/cwbudde/algo-sampler/sampler"
	"github.com/cwbudde/algo-sampler/sndfile"
)

// Trim restricts the derived buffer to a fraction interval of the original.
type Trim struct {
	Enabled bool
	Start   float64 // fraction in [0, 1]
	End     float64 // fraction in [0, 1], > Start
}

// Normalize scales the derived buffer so its absolute peak hits TargetPeak.
// Silent material is left untouched.
type Normalize struct {
	Enabled    bool
	TargetPeak float64
}

// Gain applies a linear boost factor, clamped to [0, 16].
type Gain struct {
	Enabled bool
	Factor  float64
}

// Chain owns an immutable original clip and the toggle state of the edits
// derived from it. Edits apply in a fixed order: trim, normalize, reverse,
// gain. Recompute never mutates the original, so toggling an effect off and
// recomputing restores the unedited material.
type Chain struct {
	source *sndfile.Clip

	Trim      Trim
	Normalize Normalize
	Reverse   bool
	Gain      Gain
}

// New creates a chain over the given original clip with every effect off.
func New(source *sndfile.Clip) *Chain {
	return &Chain{
		source:    source,
		Trim:      Trim{Start: 0, End: 1},
		Normalize: Normalize{TargetPeak: 1.0},
		Gain:      Gain{Factor: 2.0},
	}
}

// Source returns the original, unedited clip.
func (c *Chain) Source() *sndfile.Clip {
	return c.source
}

// Recompute derives a fresh playable buffer reflecting the current toggle
// state. The result shares no memory with the original clip.
func (c *Chain) Recompute() *sampler.SampleBuffer {
	frames := c.source.Frames()
	channels := c.source.Channels()

	start, end := 0, frames
	if c.Trim.Enabled {
		start, end = c.trimIndices(frames)
	}
	n := end - start

	work := make([]*dspbuffer.Buffer, channels)
	for ch := 0; ch < channels; ch++ {
		b := dspbuffer.New(n)
		s := b.Samples()
		for i := 0; i < n; i++ {
			s[i] = float64(c.source.Data[ch][start+i])
		}
		work[ch] = b
	}

	if c.Normalize.Enabled {
		normalize(work, c.Normalize.TargetPeak)
	}
	if c.Reverse {
		for _, b := range work {
			reverse(b.Samples())
		}
	}
	if c.Gain.Enabled {
		factor := clamp(c.Gain.Factor, 0, 16)
		for _, b := range work {
			scale(b.Samples(), factor)
		}
	}

	data := make([][]float32, channels)
	for ch, b := range work {
		s := b.Samples()
		data[ch] = make([]float32, len(s))
		for i, v := range s {
			data[ch][i] = float32(v)
		}
	}
	return sampler.NewSampleBuffer(data, c.source.SampleRate)
}

// Apply recomputes the buffer and installs it. The recompute runs before the
// engine lock is touched; only the swap happens inside SetSample.
func (c *Chain) Apply(e *sampler.Engine) {
	buf := c.Recompute()
	e.SetSample(buf)
}

func (c *Chain) trimIndices(frames int) (int, int) {
	start := clamp(c.Trim.Start, 0, 1)
	end := clamp(c.Trim.End, 0, 1)
	if end < start {
		start, end = end, start
	}
	s := int(start * float64(frames))
	e := int(end * float64(frames))
	if e <= s && frames > 0 {
		// Degenerate trims collapse to a single frame rather than an
		// empty buffer, matching the range normalization downstream.
		e = s + 1
		if e > frames {
			e = frames
			s = e - 1
		}
	}
	return s, e
}

func normalize(work []*dspbuffer.Buffer, targetPeak float64) {
	if targetPeak <= 0 {
		targetPeak = 1.0
	}
	peak := 0.0
	for _, b := range work {
		for _, v := range b.Samples() {
			if a := math.Abs(v); a > peak {
				peak = a
			}
		}
	}
	if peak == 0 {
		return
	}
	factor := targetPeak / peak
	for _, b := range work {
		scale(b.Samples(), factor)
	}
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func scale(s []float64, factor float64) {
	for i := range s {
		s[i] *= factor
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
