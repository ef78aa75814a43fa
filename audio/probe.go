package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
)

// Meta holds tag metadata. Untagged files leave every field empty.
type Meta struct {
	Title    string
	Artist   string
	Album    string
	Year     int
	FileType string
}

// Probe reads tag metadata without decoding any audio data. Files without
// recognizable tags yield an empty Meta, not an error; plain PCM recordings
// rarely carry any.
func Probe(path string) (*Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return &Meta{}, nil
	}

	return &Meta{
		Title:    m.Title(),
		Artist:   m.Artist(),
		Album:    m.Album(),
		Year:     m.Year(),
		FileType: string(m.FileType()),
	}, nil
}

// Stat reads a WAV file's format info from its headers without decoding
// the sample data, cheap enough for directory listings.
func Stat(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("stat wav %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Info{}, fmt.Errorf("stat wav %s: not a riff/wave file", path)
	}
	if err := dec.FwdToPCM(); err != nil {
		return Info{}, fmt.Errorf("stat wav %s: %w", path, err)
	}

	info := Info{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}
	if info.SampleRate <= 0 {
		return Info{}, fmt.Errorf("stat wav %s: invalid sample rate", path)
	}

	bytesPerFrame := info.Channels * info.BitDepth / 8
	if bytesPerFrame <= 0 {
		return Info{}, fmt.Errorf("stat wav %s: invalid frame layout", path)
	}

	info.Frames = int(dec.PCMLen()) / bytesPerFrame
	info.Duration = time.Duration(float64(info.Frames) / float64(info.SampleRate) * float64(time.Second))

	return info, nil
}
