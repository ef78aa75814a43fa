package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVFile writes samples as a mono 16-bit PCM WAV file under t.TempDir and
// returns its path.
func WAVFile(t *testing.T, name string, sampleRate int, samples []float64) string {
	t.Helper()

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(math.Round(s * 32767))
	}

	return writeWAVFixture(t, name, sampleRate, 1, data)
}

// StereoWAVFile writes an interleaved stereo 16-bit PCM WAV file under
// t.TempDir and returns its path. left and right must have equal length.
func StereoWAVFile(t *testing.T, name string, sampleRate int, left, right []float64) string {
	t.Helper()

	if len(left) != len(right) {
		t.Fatalf("channel length mismatch: %d vs %d", len(left), len(right))
	}

	data := make([]int, 0, 2*len(left))
	for i := range left {
		data = append(data,
			int(math.Round(left[i]*32767)),
			int(math.Round(right[i]*32767)))
	}

	return writeWAVFixture(t, name, sampleRate, 2, data)
}

func writeWAVFixture(t *testing.T, name string, sampleRate, channels int, data []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}

	return path
}
