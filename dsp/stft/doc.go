// Package stft computes short-time Fourier transforms for spectrogram
// rendering and time-frequency analysis.
//
// The signal is split into overlapping windowed segments, each segment is
// zero-padded to a power-of-two FFT size, and the one-sided power spectrum
// of every segment is collected into a frame-by-bin matrix. Power values
// use density scaling (power per Hz), so levels stay comparable across
// segment sizes and sample rates.
//
// # Usage
//
// With a zero Config the segment size adapts to the signal length (an
// eighth of the signal, capped at 1024 samples), consecutive segments
// overlap by half, and a periodic Hann window is applied:
//
//	res, err := stft.Compute(samples, stft.Config{SampleRate: 44100})
//	// res.Power[frame][bin], res.Times[frame], res.Frequencies[bin]
//
// All parameters can be pinned explicitly:
//
//	res, err := stft.Compute(samples, stft.Config{
//	    SampleRate:  48000,
//	    SegmentSize: 512,
//	    HopSize:     256,
//	    Window:      window.TypeBlackman,
//	})
//
// A trailing partial segment is dropped rather than padded, so every frame
// covers a full segment of real samples.
package stft
