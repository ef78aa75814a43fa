// Package butter designs Butterworth filters as biquad cascades and
// applies them to sample buffers.
//
// Designs are built section by section: each second-order section is an
// RBJ biquad with the Butterworth pole quality factor for its position in
// the cascade, and odd orders append a first-order section. The cascade
// hits -3 dB at the cutoff for any order. Bandpass combines a highpass at
// the low edge with a lowpass at the high edge.
//
// # Usage
//
// Design once, filter many:
//
//	sections, err := butter.Lowpass(1000, 4, 48000)
//	filtered := butter.ZeroPhase(samples, sections)
//
// Or design and apply in one call with defaults:
//
//	filtered, err := butter.Apply(samples, 48000, butter.KindBandpass, 300, 3000, 0)
//
// [ZeroPhase] filters forward and backward, trading doubled rolloff for
// zero phase distortion. That is the right choice for analysis pipelines
// where waveform alignment matters more than causality. [Filter] is the
// single-pass causal variant.
//
// Out-of-range cutoffs are reported with [ErrCutoffOutOfRange] and leave
// the input unchanged, so analysis can continue on the raw signal.
package butter
