package sndfile

import (
	"math"
	"testing"
)

func TestFromInterleavedRoundTrip(t *testing.T) {
	in := []float32{1, -1, 2, -2, 3, -3}
	c, err := FromInterleaved(in, 2, 44100)
	if err != nil {
		t.Fatalf("FromInterleaved: %v", err)
	}
	if c.Frames() != 3 || c.Channels() != 2 {
		t.Fatalf("unexpected dimensions: frames=%d channels=%d", c.Frames(), c.Channels())
	}
	if c.Data[0][1] != 2 || c.Data[1][2] != -3 {
		t.Fatalf("deinterleave mismatch: %v", c.Data)
	}

	out := c.Interleaved()
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("interleave round trip mismatch at %d: got %f want %f", i, out[i], in[i])
		}
	}
}

func TestFromInterleavedDropsPartialFrame(t *testing.T) {
	c, err := FromInterleaved([]float32{1, 2, 3, 4, 5}, 2, 44100)
	if err != nil {
		t.Fatalf("FromInterleaved: %v", err)
	}
	if c.Frames() != 2 {
		t.Fatalf("expected partial frame dropped, got %d frames", c.Frames())
	}
}

func TestFromInterleavedRejectsBadChannelCount(t *testing.T) {
	if _, err := FromInterleaved(nil, 0, 44100); err == nil {
		t.Fatalf("expected error for zero channels")
	}
}

func TestResampledSameRateIsIdentity(t *testing.T) {
	c := &Clip{Data: [][]float32{{1, 2, 3}}, SampleRate: 44100}
	r, err := c.Resampled(44100)
	if err != nil {
		t.Fatalf("Resampled: %v", err)
	}
	if r != c {
		t.Fatalf("expected identity for matching rate")
	}
}

func TestResampledChangesFrameCount(t *testing.T) {
	// One second of a 100 Hz sine at 44.1 kHz resampled to 22.05 kHz.
	const srcRate = 44100
	const dstRate = 22050
	data := make([]float32, srcRate)
	for i := range data {
		data[i] = float32(math.Sin(2 * math.Pi * 100 * float64(i) / srcRate))
	}
	c := &Clip{Data: [][]float32{data}, SampleRate: srcRate}

	r, err := c.Resampled(dstRate)
	if err != nil {
		t.Fatalf("Resampled: %v", err)
	}
	if r.SampleRate != dstRate {
		t.Fatalf("expected rate %d, got %d", dstRate, r.SampleRate)
	}
	got := float64(r.Frames())
	want := float64(dstRate)
	if math.Abs(got-want)/want > 0.01 {
		t.Fatalf("expected ~%d frames after resample, got %d", dstRate, r.Frames())
	}
}

func TestResampledRejectsBadRate(t *testing.T) {
	c := &Clip{Data: [][]float32{{1}}, SampleRate: 44100}
	if _, err := c.Resampled(0); err == nil {
		t.Fatalf("expected error for zero target rate")
	}
}
