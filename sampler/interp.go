package sampler

import "github.com/cwbudde/algo-sampler/dsp"

// interpMargin is the cubic look-ahead width in frames. A voice stops before
// its read position would pull interpolation points past the end of the
// playback range.
const interpMargin = 3

// readCubic returns the interpolated sample value for channel ch at the
// fractional frame position pos. Reads use the four frames at
// floor(pos)-1 .. floor(pos)+2, clamped at the buffer edges. Positions
// outside [0, Frames-1] yield silence rather than faulting; the same goes
// for an unknown channel.
func (b *SampleBuffer) readCubic(ch int, pos float64) float32 {
	if b == nil || ch < 0 || ch >= len(b.Data) {
		return 0
	}
	last := b.Frames - 1
	if last < 0 || pos < 0 || pos > float64(last) {
		return 0
	}

	i := int(pos)
	frac := float32(pos - float64(i))
	s := b.Data[ch]

	i0 := i - 1
	if i0 < 0 {
		i0 = 0
	}
	i2 := i + 1
	if i2 > last {
		i2 = last
	}
	i3 := i + 2
	if i3 > last {
		i3 = last
	}

	return dsp.Cubic4(s[i0], s[i], s[i2], s[i3], frac)
}
