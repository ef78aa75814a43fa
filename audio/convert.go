package audio

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/faiface/beep"
	beepflac "github.com/faiface/beep/flac"
	beepmp3 "github.com/faiface/beep/mp3"
	beepvorbis "github.com/faiface/beep/vorbis"
	beepwav "github.com/faiface/beep/wav"
	"github.com/gabriel-vasile/mimetype"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/wavescope/dsp/core"
)

const convertChunkFrames = 8192

// Sniff detects the MIME type of r's leading bytes. It consumes up to the
// detection limit from r, so seekable sources should rewind afterwards.
func Sniff(r io.Reader) (*mimetype.MIME, error) {
	mime, err := mimetype.DetectReader(r)
	if err != nil {
		return nil, fmt.Errorf("sniff content type: %w", err)
	}

	return mime, nil
}

// Convert decodes src and writes it to dst as 16-bit PCM WAV. The source
// format (WAV, MP3, FLAC or Ogg Vorbis) is chosen by content sniffing, not
// by file extension. Stereo stays stereo; anything wider keeps the first
// two channels.
func Convert(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()

	mime, err := Sniff(f)
	if err != nil {
		return fmt.Errorf("convert %s: %w", src, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("convert %s: rewind: %w", src, err)
	}

	stream, format, err := decodeStream(f, mime)
	if err != nil {
		return fmt.Errorf("convert %s: %w", src, err)
	}
	defer stream.Close()

	frames, err := drainStream(stream)
	if err != nil {
		return fmt.Errorf("convert %s: %w", src, err)
	}
	if len(frames) == 0 {
		return fmt.Errorf("convert %s: no audio frames decoded", src)
	}

	channels := format.NumChannels
	if channels < 1 {
		channels = 1
	}
	if channels > 2 {
		channels = 2
	}

	if err := writeWAV(dst, frames, channels, int(format.SampleRate)); err != nil {
		return fmt.Errorf("convert %s: %w", src, err)
	}

	return nil
}

func decodeStream(f *os.File, mime *mimetype.MIME) (beep.StreamSeekCloser, beep.Format, error) {
	switch {
	case mime.Is("audio/wav"):
		return beepwav.Decode(f)
	case mime.Is("audio/mpeg"):
		return beepmp3.Decode(f)
	case mime.Is("audio/flac"):
		return beepflac.Decode(f)
	case mime.Is("audio/ogg"), mime.Is("application/ogg"):
		return beepvorbis.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported content type %s", mime.String())
	}
}

func drainStream(stream beep.StreamSeekCloser) ([][2]float64, error) {
	var frames [][2]float64

	chunk := make([][2]float64, convertChunkFrames)
	for {
		n, ok := stream.Stream(chunk)
		if n > 0 {
			frames = append(frames, chunk[:n]...)
		}

		if !ok {
			if err := stream.Err(); err != nil && err != io.EOF {
				return nil, fmt.Errorf("decode stream: %w", err)
			}

			return frames, nil
		}
	}
}

func writeWAV(dst string, frames [][2]float64, channels, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0: %d", sampleRate)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	enc := wav.NewEncoder(out, sampleRate, 16, channels, 1)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, 0, len(frames)*channels),
		SourceBitDepth: 16,
	}
	for _, fr := range frames {
		for ch := 0; ch < channels; ch++ {
			buf.Data = append(buf.Data, int(math.Round(core.Clamp(fr[ch], -1, 1)*32767)))
		}
	}

	if err := enc.Write(buf); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := enc.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalize %s: %w", dst, err)
	}

	return out.Close()
}
