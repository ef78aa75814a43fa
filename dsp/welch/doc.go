// Package welch estimates power spectral densities with Welch's method.
//
// The signal is split into overlapping windowed segments, each segment's
// one-sided periodogram is computed, and the periodograms are averaged.
// Averaging trades frequency resolution for variance reduction, which makes
// the estimate far more stable than a single full-length periodogram.
//
// # Usage
//
// With a zero Config the segment size adapts to the signal length (a
// quarter of the signal, capped at 1024 samples):
//
//	est, err := welch.PSD(samples, welch.Config{SampleRate: 44100})
//	// est.Power[bin] in power per Hz, est.Frequencies[bin] in Hz
//
// Power values use density scaling, so integrating Power over Frequencies
// approximates the total signal power.
package welch
