package signal

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/cwbudde/wavescope/dsp/core"
)

// DefaultAmplitude is the generator amplitude used when none is given.
const DefaultAmplitude = 0.8

// Shape identifies a synthetic waveform.
type Shape int

const (
	ShapeSine Shape = iota
	ShapeSquare
	ShapeSawtooth
	ShapeTriangle
	ShapeWhiteNoise
)

var shapeNames = map[Shape]string{
	ShapeSine:       "sine",
	ShapeSquare:     "square",
	ShapeSawtooth:   "sawtooth",
	ShapeTriangle:   "triangle",
	ShapeWhiteNoise: "noise",
}

// String returns the canonical lowercase name of the waveform shape.
func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}

	return fmt.Sprintf("shape(%d)", int(s))
}

// ParseShape resolves a waveform name as used in configuration and CLI flags.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sine", "sin":
		return ShapeSine, nil
	case "square", "sq":
		return ShapeSquare, nil
	case "sawtooth", "saw":
		return ShapeSawtooth, nil
	case "triangle", "tri":
		return ShapeTriangle, nil
	case "noise", "whitenoise", "white":
		return ShapeWhiteNoise, nil
	}

	return ShapeSine, fmt.Errorf("unknown waveform shape: %q", name)
}

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SetSeed updates the noise seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Seed returns the current noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SamplesFor returns the sample count covering the given duration in seconds.
func (g *Generator) SamplesFor(seconds float64) int {
	if seconds <= 0 {
		return 0
	}

	return int(g.cfg.SampleRate * seconds)
}

// Generate produces the named waveform. Noise ignores freqHz; unknown
// shapes fall back to sine.
func (g *Generator) Generate(shape Shape, freqHz, amplitude float64, samples int) ([]float64, error) {
	switch shape {
	case ShapeSquare:
		return g.Square(freqHz, amplitude, samples)
	case ShapeSawtooth:
		return g.Sawtooth(freqHz, amplitude, samples)
	case ShapeTriangle:
		return g.Triangle(freqHz, amplitude, samples)
	case ShapeWhiteNoise:
		return g.WhiteNoise(amplitude, samples)
	default:
		return g.Sine(freqHz, amplitude, samples)
	}
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.checkArgs("sine", samples); err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Square generates a 50% duty cycle square wave starting in the
// positive half-period.
func (g *Generator) Square(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.checkArgs("square", samples); err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	for i := range out {
		if phaseFraction(freqHz, g.cfg.SampleRate, i) < 0.5 {
			out[i] = amplitude
		} else {
			out[i] = -amplitude
		}
	}
	return out, nil
}

// Sawtooth generates a rising sawtooth from -amplitude to +amplitude
// over each period.
func (g *Generator) Sawtooth(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.checkArgs("sawtooth", samples); err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	for i := range out {
		p := phaseFraction(freqHz, g.cfg.SampleRate, i)
		out[i] = amplitude * (2*p - 1)
	}
	return out, nil
}

// Triangle generates a triangle wave rising from -amplitude to
// +amplitude over the first half-period, then falling back.
func (g *Generator) Triangle(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.checkArgs("triangle", samples); err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	for i := range out {
		p := phaseFraction(freqHz, g.cfg.SampleRate, i)
		if p <= 0.5 {
			out[i] = amplitude * (4*p - 1)
		} else {
			out[i] = amplitude * (3 - 4*p)
		}
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

func (g *Generator) checkArgs(op string, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%s samples must be > 0: %d", op, samples)
	}
	if g.cfg.SampleRate <= 0 {
		return fmt.Errorf("%s sample rate must be > 0: %f", op, g.cfg.SampleRate)
	}
	return nil
}

// phaseFraction returns the waveform phase in [0, 1) at sample i.
func phaseFraction(freqHz, sampleRate float64, i int) float64 {
	p := math.Mod(freqHz*float64(i)/sampleRate, 1)
	if p < 0 {
		p++
	}
	return p
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
