// Package sndfile loads audio files into memory as float32 clips and
// converts them between sample rates. Supported formats: WAV, AIFF, MP3 and
// Ogg Vorbis.
package sndfile

import (
	"fmt"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
)

// Clip is an in-memory recording: channel-planar float32 samples in [-1, 1]
// plus the rate they were captured at. Clips are treated as immutable by the
// rest of the system; edits derive new buffers instead of mutating a clip.
type Clip struct {
	Data       [][]float32
	SampleRate int
}

// FromInterleaved builds a clip from interleaved samples. Trailing samples
// that do not fill a whole frame are dropped.
func FromInterleaved(samples []float32, channels, sampleRate int) (*Clip, error) {
	if channels < 1 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}
	frames := len(samples) / channels
	data := make([][]float32, channels)
	for c := 0; c < channels; c++ {
		data[c] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			data[c][i] = samples[i*channels+c]
		}
	}
	return &Clip{Data: data, SampleRate: sampleRate}, nil
}

// Channels returns the channel count.
func (c *Clip) Channels() int {
	return len(c.Data)
}

// Frames returns the per-channel sample count.
func (c *Clip) Frames() int {
	if len(c.Data) == 0 {
		return 0
	}
	return len(c.Data[0])
}

// Interleaved returns the clip's samples in interleaved order.
func (c *Clip) Interleaved() []float32 {
	channels := c.Channels()
	frames := c.Frames()
	out := make([]float32, frames*channels)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			out[i*channels+ch] = c.Data[ch][i]
		}
	}
	return out
}

// Resampled returns a copy of the clip converted to targetRate. A clip
// already at the target rate is returned unchanged.
func (c *Clip) Resampled(targetRate int) (*Clip, error) {
	if targetRate <= 0 {
		return nil, fmt.Errorf("invalid target rate %d", targetRate)
	}
	if c.SampleRate == targetRate {
		return c, nil
	}

	data := make([][]float32, c.Channels())
	for ch := range c.Data {
		r, err := dspresample.NewForRates(
			float64(c.SampleRate),
			float64(targetRate),
			dspresample.WithQuality(dspresample.QualityBest),
		)
		if err != nil {
			return nil, err
		}
		in := make([]float64, len(c.Data[ch]))
		for i, v := range c.Data[ch] {
			in[i] = float64(v)
		}
		out := r.Process(in)
		data[ch] = make([]float32, len(out))
		for i, v := range out {
			data[ch][i] = float32(v)
		}
	}
	return &Clip{Data: data, SampleRate: targetRate}, nil
}
