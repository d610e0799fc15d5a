package effectchain

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-sampler/sampler"
	"github.com/cwbudde/algo-sampler/sndfile"
)

func rampClip(frames int) *sndfile.Clip {
	data := make([]float32, frames)
	for i := range data {
		data[i] = float32(i) / float32(frames)
	}
	return &sndfile.Clip{Data: [][]float32{data}, SampleRate: 44100}
}

func TestRecomputeWithoutEffectsCopiesSource(t *testing.T) {
	clip := rampClip(1000)
	c := New(clip)

	buf := c.Recompute()
	if buf.Frames != 1000 || buf.Channels() != 1 {
		t.Fatalf("expected untouched dimensions, got frames=%d channels=%d", buf.Frames, buf.Channels())
	}
	for i := range buf.Data[0] {
		if buf.Data[0][i] != clip.Data[0][i] {
			t.Fatalf("frame %d: expected copy of source, got %f want %f", i, buf.Data[0][i], clip.Data[0][i])
		}
	}

	// The derived buffer must not alias the original.
	buf.Data[0][0] = 42
	if clip.Data[0][0] == 42 {
		t.Fatalf("recompute aliased the source clip")
	}
}

func TestTrimRestrictsFrames(t *testing.T) {
	c := New(rampClip(1000))
	c.Trim = Trim{Enabled: true, Start: 0.25, End: 0.75}

	buf := c.Recompute()
	if buf.Frames != 500 {
		t.Fatalf("expected 500 trimmed frames, got %d", buf.Frames)
	}
	if got, want := buf.Data[0][0], float32(250)/1000; got != want {
		t.Fatalf("trim start sample: got %f want %f", got, want)
	}
}

func TestDegenerateTrimKeepsOneFrame(t *testing.T) {
	c := New(rampClip(1000))
	c.Trim = Trim{Enabled: true, Start: 0.5, End: 0.5}

	buf := c.Recompute()
	if buf.Frames != 1 {
		t.Fatalf("expected a single frame from a zero-width trim, got %d", buf.Frames)
	}
	if got, want := buf.Data[0][0], float32(500)/1000; got != want {
		t.Fatalf("degenerate trim sample: got %f want %f", got, want)
	}

	c.Trim = Trim{Enabled: true, Start: 1, End: 1}
	buf = c.Recompute()
	if buf.Frames != 1 {
		t.Fatalf("expected a single frame from an end-pinned trim, got %d", buf.Frames)
	}
}

func TestNormalizeHitsTargetPeak(t *testing.T) {
	clip := &sndfile.Clip{
		Data:       [][]float32{{0.1, -0.5, 0.25}},
		SampleRate: 44100,
	}
	c := New(clip)
	c.Normalize.Enabled = true

	buf := c.Recompute()
	peak := float32(0)
	for _, v := range buf.Data[0] {
		if a := float32(math.Abs(float64(v))); a > peak {
			peak = a
		}
	}
	if math.Abs(float64(peak)-1.0) > 1e-6 {
		t.Fatalf("expected peak 1.0 after normalize, got %f", peak)
	}
}

func TestNormalizeSilenceIsNoOp(t *testing.T) {
	clip := &sndfile.Clip{
		Data:       [][]float32{make([]float32, 100)},
		SampleRate: 44100,
	}
	c := New(clip)
	c.Normalize.Enabled = true

	buf := c.Recompute()
	for i, v := range buf.Data[0] {
		if v != 0 {
			t.Fatalf("frame %d: expected silence to stay silent, got %f", i, v)
		}
	}
}

func TestReverseFlipsOrder(t *testing.T) {
	clip := &sndfile.Clip{
		Data:       [][]float32{{1, 2, 3, 4}},
		SampleRate: 44100,
	}
	c := New(clip)
	c.Reverse = true

	buf := c.Recompute()
	want := []float32{4, 3, 2, 1}
	for i, v := range buf.Data[0] {
		if v != want[i] {
			t.Fatalf("frame %d: got %f want %f", i, v, want[i])
		}
	}
}

func TestGainScalesAndClamps(t *testing.T) {
	clip := &sndfile.Clip{
		Data:       [][]float32{{0.25}},
		SampleRate: 44100,
	}
	c := New(clip)
	c.Gain = Gain{Enabled: true, Factor: 2}
	if got := c.Recompute().Data[0][0]; got != 0.5 {
		t.Fatalf("expected gain x2 = 0.5, got %f", got)
	}

	c.Gain.Factor = 100 // clamped to 16
	if got := c.Recompute().Data[0][0]; got != 4.0 {
		t.Fatalf("expected clamped gain x16 = 4.0, got %f", got)
	}
}

func TestEffectOrderTrimThenReverse(t *testing.T) {
	// Reversing applies to the trimmed window, not the full recording.
	clip := &sndfile.Clip{
		Data:       [][]float32{{0, 1, 2, 3, 4, 5, 6, 7}},
		SampleRate: 44100,
	}
	c := New(clip)
	c.Trim = Trim{Enabled: true, Start: 0.25, End: 0.75}
	c.Reverse = true

	buf := c.Recompute()
	want := []float32{5, 4, 3, 2}
	if buf.Frames != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), buf.Frames)
	}
	for i, v := range buf.Data[0] {
		if v != want[i] {
			t.Fatalf("frame %d: got %f want %f", i, v, want[i])
		}
	}
}

func TestTogglingOffRestoresOriginal(t *testing.T) {
	c := New(rampClip(100))
	c.Reverse = true
	c.Gain = Gain{Enabled: true, Factor: 3}
	_ = c.Recompute()

	c.Reverse = false
	c.Gain.Enabled = false
	buf := c.Recompute()
	for i, v := range buf.Data[0] {
		if v != c.Source().Data[0][i] {
			t.Fatalf("frame %d: expected original restored, got %f", i, v)
		}
	}
}

func TestApplyInstallsRecomputedBuffer(t *testing.T) {
	e := sampler.NewEngine(44100, 8)
	c := New(rampClip(2000))
	c.Trim = Trim{Enabled: true, Start: 0, End: 0.5}
	c.Apply(e)

	if r := e.PlaybackRange(); r.Start != 0 || r.End != 1000 {
		t.Fatalf("expected installed range [0,1000), got [%d,%d)", r.Start, r.End)
	}
	e.NoteOn(60, 1)
	if !e.IsAnyVoicePlaying() {
		t.Fatalf("expected note-on to succeed after Apply")
	}
}
