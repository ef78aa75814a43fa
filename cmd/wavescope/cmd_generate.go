package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/wavescope/audio"
	"github.com/cwbudde/wavescope/dsp/core"
	"github.com/cwbudde/wavescope/dsp/signal"
)

var (
	generateShape      string
	generateFreq       float64
	generateDuration   float64
	generateSampleRate int
	generateAmplitude  float64
	generateSeed       int64
)

var generateCmd = &cobra.Command{
	Use:   "generate FILE",
	Short: "Write a synthetic test signal as WAV",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateShape, "shape", "sine", "Waveform: sine, square, sawtooth, triangle or noise")
	generateCmd.Flags().Float64Var(&generateFreq, "freq", 440, "Frequency in Hz (ignored for noise)")
	generateCmd.Flags().Float64Var(&generateDuration, "duration", 1, "Length in seconds")
	generateCmd.Flags().IntVar(&generateSampleRate, "sample-rate", 44100, "Sample rate in Hz")
	generateCmd.Flags().Float64Var(&generateAmplitude, "amplitude", signal.DefaultAmplitude, "Peak amplitude in [0, 1]")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 1, "Noise seed")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	shape, err := signal.ParseShape(generateShape)
	if err != nil {
		return err
	}

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(float64(generateSampleRate))},
		signal.WithSeed(generateSeed),
	)

	samples, err := gen.Generate(shape, generateFreq, generateAmplitude, gen.SamplesFor(generateDuration))
	if err != nil {
		return err
	}

	if err := audio.Save(args[0], samples, generateSampleRate); err != nil {
		return err
	}

	fmt.Printf("Wrote %s: %s, %d samples at %d Hz\n", args[0], shape, len(samples), generateSampleRate)

	return nil
}
