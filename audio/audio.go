// Package audio loads, saves and converts the sound files the analysis
// pipeline runs on. Decoded clips are mono float64 slices in [-1, 1].
package audio

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/wavescope/dsp/core"
)

// Info describes a decoded file.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int
	Duration   time.Duration
}

// Layout names the channel layout.
func (i Info) Layout() string {
	switch i.Channels {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return fmt.Sprintf("%d channels", i.Channels)
	}
}

// Clip is a decoded mono signal. Multi-channel sources keep channel 0.
type Clip struct {
	Samples []float64
	Info    Info
	Path    string
}

// Load decodes a PCM WAV file.
func Load(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav %s: %w", path, err)
	}
	defer f.Close()

	clip, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("decode wav %s: %w", path, err)
	}

	clip.Path = path

	return clip, nil
}

// LoadReader decodes a PCM WAV stream, for sources that never touch the
// filesystem such as uploads.
func LoadReader(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a riff/wave file")
	}

	// The analysis pipeline understands plain PCM only, like the encoder
	// side. 65534 is WAVE_FORMAT_EXTENSIBLE wrapping PCM.
	if dec.WavAudioFormat != 1 && dec.WavAudioFormat != 65534 {
		return nil, fmt.Errorf("unsupported wav encoding %d: only pcm is supported", dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read pcm data: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("empty data chunk")
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate")
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}

	scale := normScale(bitDepth)

	// 8-bit wav stores unsigned samples centered on 128.
	offset := 0.0
	if bitDepth == 8 {
		offset = 128
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := range samples {
		samples[i] = (float64(buf.Data[i*channels]) - offset) / scale
	}

	info := Info{
		SampleRate: buf.Format.SampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
		Frames:     frames,
	}
	info.Duration = time.Duration(float64(frames) / float64(info.SampleRate) * float64(time.Second))

	return &Clip{Samples: samples, Info: info}, nil
}

// Save writes samples as a mono 16-bit PCM WAV file, clamping to [-1, 1].
func Save(path string, samples []float64, sampleRate int) error {
	if len(samples) == 0 {
		return fmt.Errorf("save wav %s: no samples", path)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("save wav %s: sample rate must be > 0: %d", path, sampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav %s: %w", path, err)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		buf.Data[i] = int(math.Round(core.Clamp(s, -1, 1) * 32767))
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("write wav %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalize wav %s: %w", path, err)
	}

	return f.Close()
}

// normScale returns the divisor mapping signed PCM of the given bit depth
// onto [-1, 1].
func normScale(bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return 128
	case 24:
		return 8388608
	case 32:
		return 2147483648
	default:
		return 32768
	}
}
