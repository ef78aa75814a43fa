package audio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/wavescope/internal/testutil"
)

func TestConvertWAVPreservesChannels(t *testing.T) {
	left := testutil.DeterministicSine(440, 8000, 0.5, 800)
	right := testutil.DeterministicSine(880, 8000, 0.25, 800)
	src := testutil.StereoWAVFile(t, "in.wav", 8000, left, right)
	dst := filepath.Join(t.TempDir(), "out.wav")

	if err := Convert(src, dst); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	clip, err := Load(dst)
	if err != nil {
		t.Fatalf("Load converted: %v", err)
	}

	if clip.Info.Channels != 2 {
		t.Errorf("channels mismatch: got %d want 2", clip.Info.Channels)
	}
	if clip.Info.SampleRate != 8000 {
		t.Errorf("sample rate mismatch: got %d want 8000", clip.Info.SampleRate)
	}
	if clip.Info.Frames != 800 {
		t.Errorf("frames mismatch: got %d want 800", clip.Info.Frames)
	}

	// Two quantization passes, so allow twice the usual error.
	testutil.RequireSliceNearlyEqual(t, clip.Samples, left, 2e-4)
}

func TestConvertMonoWAV(t *testing.T) {
	samples := testutil.DeterministicSine(1000, 16000, 0.4, 1600)
	src := testutil.WAVFile(t, "mono.wav", 16000, samples)
	dst := filepath.Join(t.TempDir(), "mono-out.wav")

	if err := Convert(src, dst); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	clip, err := Load(dst)
	if err != nil {
		t.Fatalf("Load converted: %v", err)
	}

	if clip.Info.Channels != 1 {
		t.Errorf("channels mismatch: got %d want 1", clip.Info.Channels)
	}

	testutil.RequireSliceNearlyEqual(t, clip.Samples, samples, 2e-4)
}

func TestConvertUnsupportedType(t *testing.T) {
	src := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(src, []byte("not audio at all"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	err := Convert(src, filepath.Join(t.TempDir(), "out.wav"))
	if err == nil {
		t.Fatal("expected error for non-audio input")
	}
	if !strings.Contains(err.Error(), "unsupported content type") {
		t.Errorf("error should name the content type: %v", err)
	}
}

func TestConvertMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Convert(filepath.Join(dir, "missing.wav"), filepath.Join(dir, "out.wav"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestSniff(t *testing.T) {
	path := testutil.WAVFile(t, "probe.wav", 8000, testutil.DC(0.1, 16))
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	mime, err := Sniff(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if !mime.Is("audio/wav") {
		t.Errorf("mime mismatch: got %s want audio/wav", mime.String())
	}

	text, err := Sniff(strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("Sniff text: %v", err)
	}
	if text.Is("audio/wav") {
		t.Errorf("text sniffed as wav: %s", text.String())
	}
}
