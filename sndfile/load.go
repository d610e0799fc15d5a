package sndfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"

	"github.com/cwbudde/algo-sampler/internal/wavio"
)

// Load reads an audio file into a Clip, dispatching on the file extension.
func Load(path string) (*Clip, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return loadWAV(path)
	case ".aiff", ".aif":
		return loadAIFF(path)
	case ".mp3":
		return loadMP3(path)
	case ".ogg", ".oga":
		return loadOGG(path)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", path)
	}
}

func loadWAV(path string) (*Clip, error) {
	data, rate, err := wavio.Read(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return &Clip{Data: data, SampleRate: rate}, nil
}

func loadAIFF(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := aiff.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid aiff file: %s", path)
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, fmt.Errorf("unsupported aiff layout: %s", path)
	}

	var scale float32
	switch dec.BitDepth {
	case 8:
		scale = 1.0 / 128.0
	case 16:
		scale = 1.0 / 32768.0
	case 24:
		scale = 1.0 / 8388608.0
	case 32:
		scale = 1.0 / 2147483648.0
	default:
		return nil, fmt.Errorf("unsupported aiff bit depth %d: %s", dec.BitDepth, path)
	}

	intBuf := &goaudio.IntBuffer{
		Data:   make([]int, 4096),
		Format: format,
	}
	var samples []float32
	for {
		n, err := dec.PCMBuffer(intBuf)
		if n == 0 {
			break
		}
		for _, v := range intBuf.Data[:n] {
			samples = append(samples, float32(v)*scale)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	}
	return FromInterleaved(samples, format.NumChannels, format.SampleRate)
}

func loadMP3(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	// go-mp3 emits 16-bit little-endian stereo PCM.
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	samples := make([]float32, len(raw)/2)
	for i := range samples {
		v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float32(v) / 32768.0
	}
	return FromInterleaved(samples, 2, dec.SampleRate())
}

func loadOGG(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	var samples []float32
	buf := make([]float32, 4096*dec.Channels())
	for {
		// Read returns a value count, always a multiple of the channel count.
		n, err := dec.Read(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		if n == 0 {
			break
		}
	}
	return FromInterleaved(samples, dec.Channels(), dec.SampleRate())
}
