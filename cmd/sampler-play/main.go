package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-sampler/effectchain"
	"github.com/cwbudde/algo-sampler/sampler"
	"github.com/cwbudde/algo-sampler/sndfile"
)

// engineReader bridges the engine's block renderer onto oto's pull-model
// io.Reader: each Read renders one block and interleaves it as float32 LE
// stereo frames.
type engineReader struct {
	engine *sampler.Engine
	left   []float32
	right  []float32
}

func newEngineReader(engine *sampler.Engine) *engineReader {
	return &engineReader{
		engine: engine,
		left:   make([]float32, 4096),
		right:  make([]float32, 4096),
	}
}

func (r *engineReader) Read(p []byte) (int, error) {
	frames := len(p) / 8 // 2 channels x 4 bytes
	if frames == 0 {
		return 0, nil
	}
	if len(r.left) < frames {
		r.left = make([]float32, frames)
		r.right = make([]float32, frames)
	}
	left := r.left[:frames]
	right := r.right[:frames]
	for i := range left {
		left[i] = 0
		right[i] = 0
	}

	r.engine.Render([][]float32{left, right}, 0, frames)

	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint32(p[i*8:], math.Float32bits(left[i]))
		binary.LittleEndian.PutUint32(p[i*8+4:], math.Float32bits(right[i]))
	}
	return frames * 8, nil
}

func main() {
	samplePath := flag.String("sample", "", "Input audio file (wav/aiff/mp3/ogg)")
	note := flag.Int("note", 60, "MIDI note number")
	velocity := flag.Int("velocity", 100, "MIDI velocity (0-127)")
	duration := flag.Float64("duration", 1.0, "Seconds to hold the note before release")
	sampleRate := flag.Int("sample-rate", 48000, "Playback sample rate in Hz")
	oneShot := flag.Bool("one-shot", false, "Disable ADSR: play to range end at constant gain")
	reverseFlag := flag.Bool("reverse", false, "Enable reversed playback")
	flag.Parse()

	if *samplePath == "" {
		fmt.Fprintln(os.Stderr, "Error: -sample is required")
		os.Exit(1)
	}

	clip, err := sndfile.Load(*samplePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading sample %q: %v\n", *samplePath, err)
		os.Exit(1)
	}
	clip, err = clip.Resampled(*sampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resampling to %d Hz: %v\n", *sampleRate, err)
		os.Exit(1)
	}

	engine := sampler.NewEngine(*sampleRate, sampler.DefaultMaxVoices)
	engine.SetADSREnabled(!*oneShot)

	chain := effectchain.New(clip)
	chain.Reverse = *reverseFlag
	chain.Apply(engine)

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   *sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio output: %v\n", err)
		os.Exit(1)
	}
	<-ready

	player := ctx.NewPlayer(newEngineReader(engine))
	player.Play()
	defer player.Close()

	fmt.Printf("Playing note %d from %s\n", *note, *samplePath)
	engine.NoteOn(*note, float64(*velocity)/127.0)

	time.Sleep(time.Duration(*duration * float64(time.Second)))
	engine.NoteOff(*note)

	// Let the release tail drain before tearing the stream down.
	for engine.IsAnyVoicePlaying() {
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)
}
