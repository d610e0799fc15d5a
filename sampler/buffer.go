package sampler

// SampleBuffer holds the playable audio as channel-planar float32 data
// (Data[channel][frame]). A buffer is never mutated in place once installed;
// the editing layer recomputes a complete replacement and swaps it in through
// Engine.SetSample.
type SampleBuffer struct {
	Data       [][]float32
	Frames     int
	SampleRate int
}

// NewSampleBuffer wraps channel-planar data without copying. Channels of
// unequal length are truncated to the shortest.
func NewSampleBuffer(data [][]float32, sampleRate int) *SampleBuffer {
	frames := 0
	if len(data) > 0 {
		frames = len(data[0])
		for _, ch := range data[1:] {
			if len(ch) < frames {
				frames = len(ch)
			}
		}
	}
	return &SampleBuffer{
		Data:       data,
		Frames:     frames,
		SampleRate: sampleRate,
	}
}

// Channels returns the channel count.
func (b *SampleBuffer) Channels() int {
	if b == nil {
		return 0
	}
	return len(b.Data)
}

// PlaybackRange restricts playback to the frame interval [Start, End).
type PlaybackRange struct {
	Start int
	End   int
}

// normalized orders and clamps the range against a buffer of the given
// length. Invalid input never faults; it is coerced into 0 <= Start <=
// End <= frames.
func (r PlaybackRange) normalized(frames int) PlaybackRange {
	if r.End < r.Start {
		r.Start, r.End = r.End, r.Start
	}
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End > frames {
		r.End = frames
	}
	if r.Start > r.End {
		r.Start = r.End
	}
	return r
}

// Len returns the number of frames covered by the range.
func (r PlaybackRange) Len() int {
	return r.End - r.Start
}
