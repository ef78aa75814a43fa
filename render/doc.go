// Package render draws analysis charts as PNG images.
//
// Six chart kinds cover the classic audio views: waveform, spectrogram,
// frequency spectrum, power spectral density, phase response, and
// amplitude histogram. Every renderer takes a [Style] for dimensions,
// palette and font sizes, and returns a [Chart] that encodes to PNG.
//
// # Usage
//
// Render a single view:
//
//	c, err := render.Waveform(clip, render.Style{Title: "Waveform - take.wav"})
//	if err != nil {
//	    return err
//	}
//	err = c.SavePNG("take_waveform.png")
//
// Or emit the full figure set next to a report:
//
//	paths, err := render.All(rep, clip, "figures")
//
// A zero Style renders at 1000x600 on the default dark palette.
package render
