package analysis

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// DefaultSpeed is the speed of sound in air at 20 degrees Celsius, in m/s.
// It is the fallback for unknown media and the reference the report uses
// for wavelengths.
const DefaultSpeed = 343.0

// ErrUnknownMedium reports a medium SpeedOfSound has no model for.
var ErrUnknownMedium = errors.New("unknown medium")

// Media lists the media SpeedOfSound knows, in the order the speed command
// prints them.
func Media() []string {
	return []string{"air", "water", "steel", "aluminum", "glass"}
}

// SpeedOfSound returns the speed of sound in m/s for the given medium.
// The temperature in degrees Celsius only affects air and water; the
// solids use constant propagation speeds. Unknown media return
// [DefaultSpeed] together with an error wrapping [ErrUnknownMedium].
func SpeedOfSound(medium string, temperature float64) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(medium)) {
	case "air":
		return 331.3 * math.Sqrt(1+temperature/273.15), nil
	case "water":
		return 1403 + 4.7*temperature, nil
	case "steel":
		return 5960, nil
	case "aluminum", "aluminium":
		return 6420, nil
	case "glass":
		return 5640, nil
	}

	return DefaultSpeed, fmt.Errorf("%w: %q", ErrUnknownMedium, medium)
}

// WavelengthTable returns the wavelength in meters for each frequency at
// the given propagation speed, lambda = c/f. Non-positive frequencies
// yield a zero wavelength.
func WavelengthTable(freqs []float64, speed float64) []float64 {
	out := make([]float64, len(freqs))

	for i, f := range freqs {
		if f > 0 {
			out[i] = speed / f
		}
	}

	return out
}
