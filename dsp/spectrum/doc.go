// Package spectrum provides FFT-adjacent spectrum-domain utilities.
//
// The package intentionally does not implement FFT itself. It operates on
// complex spectrum bins produced by an external FFT backend and provides
// helpers for magnitude, power, phase, decibel conversion, and smoothing.
package spectrum
