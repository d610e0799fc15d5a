// Package project persists sampler sessions as JSON: the sample path, the
// effect-chain toggle state, and the engine's playback controls. Fields are
// pointers so a file only overrides what it mentions.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-sampler/effectchain"
	"github.com/cwbudde/algo-sampler/sampler"
)

// File is the JSON schema for a sampler project.
type File struct {
	SamplePath string `json:"sample_path"`

	TrimEnabled *bool    `json:"trim_enabled"`
	TrimStart   *float64 `json:"trim_start"`
	TrimEnd     *float64 `json:"trim_end"`

	NormalizeEnabled    *bool    `json:"normalize_enabled"`
	NormalizeTargetPeak *float64 `json:"normalize_target_peak"`

	ReverseEnabled *bool `json:"reverse_enabled"`

	GainEnabled *bool    `json:"gain_enabled"`
	GainFactor  *float64 `json:"gain_factor"`

	Attack  *float64 `json:"attack"`
	Decay   *float64 `json:"decay"`
	Sustain *float64 `json:"sustain"`
	Release *float64 `json:"release"`

	ADSREnabled *bool    `json:"adsr_enabled"`
	CutItself   *bool    `json:"cut_itself"`
	Pan         *float64 `json:"pan"`
	StereoWidth *float64 `json:"stereo_width"`

	// Playback range as fractions of the recomputed buffer.
	RangeStart *float64 `json:"range_start"`
	RangeEnd   *float64 `json:"range_end"`
}

// Load reads and validates a project JSON file. A relative sample path is
// resolved against the project file's directory.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	f.SamplePath = strings.TrimSpace(f.SamplePath)
	if f.SamplePath != "" && !filepath.IsAbs(f.SamplePath) {
		f.SamplePath = filepath.Clean(filepath.Join(filepath.Dir(path), f.SamplePath))
	}
	return &f, nil
}

// Save writes the project as indented JSON, creating parent directories as
// needed.
func Save(path string, f *File) error {
	if f == nil {
		return fmt.Errorf("nil project file")
	}
	if err := f.validate(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

func (f *File) validate() error {
	checkFraction := func(name string, v *float64) error {
		if v != nil && (*v < 0 || *v > 1) {
			return fmt.Errorf("%s must be in [0,1], got %g", name, *v)
		}
		return nil
	}
	for name, v := range map[string]*float64{
		"trim_start":  f.TrimStart,
		"trim_end":    f.TrimEnd,
		"sustain":     f.Sustain,
		"pan":         f.Pan,
		"range_start": f.RangeStart,
		"range_end":   f.RangeEnd,
	} {
		if err := checkFraction(name, v); err != nil {
			return err
		}
	}
	for name, v := range map[string]*float64{
		"attack":  f.Attack,
		"decay":   f.Decay,
		"release": f.Release,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must be >= 0, got %g", name, *v)
		}
	}
	if f.NormalizeTargetPeak != nil && *f.NormalizeTargetPeak <= 0 {
		return fmt.Errorf("normalize_target_peak must be > 0, got %g", *f.NormalizeTargetPeak)
	}
	if f.GainFactor != nil && (*f.GainFactor < 0 || *f.GainFactor > 16) {
		return fmt.Errorf("gain_factor must be in [0,16], got %g", *f.GainFactor)
	}
	if f.StereoWidth != nil && (*f.StereoWidth < 0 || *f.StereoWidth > 2) {
		return fmt.Errorf("stereo_width must be in [0,2], got %g", *f.StereoWidth)
	}
	return nil
}

// Apply pushes the file's settings onto a chain and an engine, recomputes
// the buffer and installs it. Either destination may be nil to apply only
// the other half.
func Apply(f *File, chain *effectchain.Chain, engine *sampler.Engine) {
	if f == nil {
		return
	}

	if chain != nil {
		if f.TrimEnabled != nil {
			chain.Trim.Enabled = *f.TrimEnabled
		}
		if f.TrimStart != nil {
			chain.Trim.Start = *f.TrimStart
		}
		if f.TrimEnd != nil {
			chain.Trim.End = *f.TrimEnd
		}
		if f.NormalizeEnabled != nil {
			chain.Normalize.Enabled = *f.NormalizeEnabled
		}
		if f.NormalizeTargetPeak != nil {
			chain.Normalize.TargetPeak = *f.NormalizeTargetPeak
		}
		if f.ReverseEnabled != nil {
			chain.Reverse = *f.ReverseEnabled
		}
		if f.GainEnabled != nil {
			chain.Gain.Enabled = *f.GainEnabled
		}
		if f.GainFactor != nil {
			chain.Gain.Factor = *f.GainFactor
		}
	}

	if engine == nil {
		return
	}

	if f.Attack != nil || f.Decay != nil || f.Sustain != nil || f.Release != nil {
		env := sampler.DefaultEnvelopeParams()
		if f.Attack != nil {
			env.Attack = *f.Attack
		}
		if f.Decay != nil {
			env.Decay = *f.Decay
		}
		if f.Sustain != nil {
			env.Sustain = *f.Sustain
		}
		if f.Release != nil {
			env.Release = *f.Release
		}
		engine.SetEnvelope(env.Attack, env.Decay, env.Sustain, env.Release)
	}
	if f.ADSREnabled != nil {
		engine.SetADSREnabled(*f.ADSREnabled)
	}
	if f.CutItself != nil {
		engine.SetCutItselfMode(*f.CutItself)
	}
	if f.Pan != nil {
		engine.SetPan(*f.Pan)
	}
	if f.StereoWidth != nil {
		engine.SetStereoWidth(*f.StereoWidth)
	}

	if chain != nil {
		buf := chain.Recompute()
		engine.SetSample(buf)
		if f.RangeStart != nil || f.RangeEnd != nil {
			start, end := 0.0, 1.0
			if f.RangeStart != nil {
				start = *f.RangeStart
			}
			if f.RangeEnd != nil {
				end = *f.RangeEnd
			}
			engine.SetPlaybackRange(
				int(start*float64(buf.Frames)),
				int(end*float64(buf.Frames)),
			)
		}
	}
}
