package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/wavescope/analysis"
	"github.com/cwbudde/wavescope/audio"
	"github.com/cwbudde/wavescope/config"
	"github.com/cwbudde/wavescope/dsp/window"
	"github.com/cwbudde/wavescope/render"
)

var (
	analyzeFFTSize int
	analyzeWindow  string
	analyzeFilter  string
	analyzeOrder   int
	analyzePlots   bool
	analyzeCSV     string
	analyzeOut     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Analyze a WAV file and print the report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeFFTSize, "fft-size", 0, "FFT size for harmonic analysis (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeWindow, "window", "", "Analysis window: rectangular, hann, hamming, blackman or flattop")
	analyzeCmd.Flags().StringVar(&analyzeFilter, "filter", "", "Butterworth prefilter: lowpass:F, highpass:F or bandpass:LO-HI")
	analyzeCmd.Flags().IntVar(&analyzeOrder, "order", 0, "Filter order (default 5)")
	analyzeCmd.Flags().BoolVar(&analyzePlots, "plots", false, "Render the full figure set")
	analyzeCmd.Flags().StringVar(&analyzeCSV, "csv", "", "Write the report as CSV to this file")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "Figure output directory (default from config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	opts, err := analysisOptions(analyzeFFTSize, analyzeWindow, analyzeFilter, analyzeOrder)
	if err != nil {
		return err
	}

	clip, err := audio.Load(args[0])
	if err != nil {
		return err
	}

	rep, err := analysis.Analyze(clip, opts)
	if err != nil {
		return err
	}

	if err := rep.Text(os.Stdout); err != nil {
		return err
	}

	if analyzeCSV != "" {
		if err := writeCSV(rep, analyzeCSV); err != nil {
			return err
		}
		fmt.Println("Wrote", analyzeCSV)
	}

	if analyzePlots {
		dir := analyzeOut
		if dir == "" {
			dir = config.Get().Paths.FiguresDir
		}

		paths, err := render.All(rep, clip, dir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println("Wrote", p)
		}
	}

	return nil
}

// analysisOptions merges CLI flags over the configured analysis defaults.
// Empty flags leave the configured value in place.
func analysisOptions(fftSize int, windowName, filterSpec string, order int) (analysis.Options, error) {
	cfg := config.Get().Analysis

	opts := analysis.Options{FFTSize: cfg.FFTSize, MaxPeaks: cfg.HarmonicPeaks}
	if typ, err := cfg.WindowType(); err == nil {
		opts.Window = typ
	}

	if fftSize > 0 {
		opts.FFTSize = fftSize
	}
	if windowName != "" {
		typ, err := window.ParseType(windowName)
		if err != nil {
			return opts, err
		}
		opts.Window = typ
	}
	if filterSpec != "" {
		spec, err := analysis.ParseFilter(filterSpec)
		if err != nil {
			return opts, err
		}
		if order > 0 {
			spec.Order = order
		}
		opts.Filter = spec
	}

	return opts, nil
}

func writeCSV(rep *analysis.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	if err := rep.CSV(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
