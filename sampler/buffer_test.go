package sampler

import "testing"

func TestNewSampleBufferTruncatesToShortestChannel(t *testing.T) {
	b := NewSampleBuffer([][]float32{
		make([]float32, 100),
		make([]float32, 80),
	}, 44100)
	if b.Frames != 80 {
		t.Fatalf("expected frame count 80, got %d", b.Frames)
	}
	if b.Channels() != 2 {
		t.Fatalf("expected 2 channels, got %d", b.Channels())
	}
}

func TestNewSampleBufferEmpty(t *testing.T) {
	b := NewSampleBuffer(nil, 44100)
	if b.Frames != 0 || b.Channels() != 0 {
		t.Fatalf("expected empty buffer, got frames=%d channels=%d", b.Frames, b.Channels())
	}
}

func TestPlaybackRangeNormalized(t *testing.T) {
	cases := []struct {
		in     PlaybackRange
		frames int
		want   PlaybackRange
	}{
		{PlaybackRange{0, 100}, 100, PlaybackRange{0, 100}},
		{PlaybackRange{80, 20}, 100, PlaybackRange{20, 80}},
		{PlaybackRange{-5, 200}, 100, PlaybackRange{0, 100}},
		{PlaybackRange{150, 300}, 100, PlaybackRange{100, 100}},
		{PlaybackRange{0, 0}, 100, PlaybackRange{0, 0}},
	}
	for _, c := range cases {
		if got := c.in.normalized(c.frames); got != c.want {
			t.Fatalf("normalize(%v, %d): got %v want %v", c.in, c.frames, got, c.want)
		}
	}
}
