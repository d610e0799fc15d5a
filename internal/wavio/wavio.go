package wavio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// Read decodes a WAV file into channel-planar float32 samples normalized to
// [-1, 1], returning the data and its sample rate.
func Read(path string) ([][]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid wav buffer: %s", path)
	}

	// FullPCMBuffer already yields samples in [-1, 1]; no rescaling here.
	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	out := make([][]float32, ch)
	for c := 0; c < ch; c++ {
		out[c] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < ch; c++ {
			out[c][i] = float32(buf.Data[i*ch+c])
		}
	}
	return out, buf.Format.SampleRate, nil
}

// Write encodes channel-planar float32 samples as a 16-bit PCM WAV file,
// creating parent directories as needed.
func Write(path string, data [][]float32, sampleRate int) error {
	channels := len(data)
	if channels == 0 {
		return fmt.Errorf("no channels to write")
	}
	frames := len(data[0])
	for _, ch := range data[1:] {
		if len(ch) != frames {
			return fmt.Errorf("channel length mismatch")
		}
	}

	interleaved := make([]float32, frames*channels)
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			interleaved[i*channels+c] = data[c][i]
		}
	}
	return WriteInterleaved(path, interleaved, channels, sampleRate)
}

// WriteInterleaved encodes interleaved float32 samples as a 16-bit PCM WAV
// file.
func WriteInterleaved(path string, samples []float32, channels, sampleRate int) error {
	if channels < 1 {
		return fmt.Errorf("invalid channel count %d", channels)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	defer enc.Close()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: channels,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}
