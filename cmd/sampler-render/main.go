package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-sampler/effectchain"
	"github.com/cwbudde/algo-sampler/internal/wavio"
	"github.com/cwbudde/algo-sampler/project"
	"github.com/cwbudde/algo-sampler/sampler"
	"github.com/cwbudde/algo-sampler/sndfile"
)

func main() {
	samplePath := flag.String("sample", "", "Input audio file (wav/aiff/mp3/ogg)")
	projectPath := flag.String("project", "", "Project JSON file (optional)")
	note := flag.Int("note", 60, "MIDI note number (60 plays the sample at native pitch)")
	velocity := flag.Int("velocity", 100, "MIDI velocity (0-127)")
	duration := flag.Float64("duration", 1.0, "Seconds to hold the note before release")
	maxDuration := flag.Float64("max-duration", 30.0, "Hard stop after this many seconds")
	sampleRate := flag.Int("sample-rate", 48000, "Render sample rate in Hz")
	blockSize := flag.Int("block", 512, "Render block size in frames")
	trim := flag.Bool("trim", false, "Enable trim")
	trimStart := flag.Float64("trim-start", 0.0, "Trim start fraction (0-1)")
	trimEnd := flag.Float64("trim-end", 1.0, "Trim end fraction (0-1)")
	normalize := flag.Bool("normalize", false, "Enable peak normalization")
	reverseFlag := flag.Bool("reverse", false, "Enable reversed playback")
	gain := flag.Float64("gain", 0, "Gain boost factor (0 disables)")
	oneShot := flag.Bool("one-shot", false, "Disable ADSR: play to range end at constant gain")
	output := flag.String("output", "output.wav", "Output WAV file path")
	flag.Parse()

	var proj *project.File
	if *projectPath != "" {
		var err error
		proj, err = project.Load(*projectPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading project %q: %v\n", *projectPath, err)
			os.Exit(1)
		}
		if *samplePath == "" {
			*samplePath = proj.SamplePath
		}
	}
	if *samplePath == "" {
		fmt.Fprintln(os.Stderr, "Error: no input sample (use -sample or a project with sample_path)")
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

	chain := effectchain.New(clip)
	chain.Trim = effectchain.Trim{Enabled: *trim, Start: *trimStart, End: *trimEnd}
	chain.Normalize.Enabled = *normalize
	chain.Reverse = *reverseFlag
	if *gain > 0 {
		chain.Gain = effectchain.Gain{Enabled: true, Factor: *gain}
	}

	engine := sampler.NewEngine(*sampleRate, sampler.DefaultMaxVoices)
	engine.SetADSREnabled(!*oneShot)
	if proj != nil {
		project.Apply(proj, chain, engine)
	} else {
		chain.Apply(engine)
	}

	fmt.Printf("Rendering note %d, velocity %d at %d Hz -> %s\n", *note, *velocity, *sampleRate, *output)

	engine.NoteOn(*note, float64(*velocity)/127.0)

	block := *blockSize
	if block < 1 {
		block = 512
	}
	releaseAtFrame := int(*duration * float64(*sampleRate))
	maxFrames := int(*maxDuration * float64(*sampleRate))
	if maxFrames < block {
		maxFrames = block
	}

	out := [][]float32{
		make([]float32, maxFrames),
		make([]float32, maxFrames),
	}

	rendered := 0
	released := false
	for rendered < maxFrames && engine.IsAnyVoicePlaying() {
		n := block
		if rendered+n > maxFrames {
			n = maxFrames - rendered
		}
		if !released && rendered >= releaseAtFrame {
			engine.NoteOff(*note)
			released = true
		}
		engine.Render(out, rendered, n)
		rendered += n
	}

	if err := wavio.Write(*output, [][]float32{out[0][:rendered], out[1][:rendered]}, *sampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d frames to %s\n", rendered, *output)
}
