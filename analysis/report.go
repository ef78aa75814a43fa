package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/cwbudde/wavescope/measure/harmonics"
)

// Text writes an aligned plain-text summary of the report.
func (r *Report) Text(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "FILE INFORMATION\n")
	if r.Path != "" {
		fmt.Fprintf(tw, "  File:\t%s\n", r.Path)
	}
	fmt.Fprintf(tw, "  Sample Rate:\t%s Hz\n", humanize.Comma(int64(r.Info.SampleRate)))
	fmt.Fprintf(tw, "  Duration:\t%.2f s\n", r.Info.Duration.Seconds())
	fmt.Fprintf(tw, "  Channels:\t%d (%s)\n", r.Info.Channels, r.Info.Layout())
	fmt.Fprintf(tw, "  Bit Depth:\t%d bit\n", r.Info.BitDepth)
	fmt.Fprintf(tw, "  Total Samples:\t%s\n", humanize.Comma(int64(r.Info.Frames)))
	fmt.Fprintf(tw, "\n")

	lv := r.Levels
	fmt.Fprintf(tw, "AUDIO LEVELS\n")
	fmt.Fprintf(tw, "  Average dB:\t%.2f\n", lv.AvgPower_dB)
	fmt.Fprintf(tw, "  RMS dB:\t%.2f\n", lv.RMS_dB)
	fmt.Fprintf(tw, "  Max dB:\t%.2f\n", lv.Peak_dB)
	fmt.Fprintf(tw, "  Min dB:\t%.2f\n", lv.Min_dB)
	fmt.Fprintf(tw, "  Dynamic Range:\t%.2f dB\n", lv.DynamicRange_dB)
	fmt.Fprintf(tw, "  Crest Factor:\t%.2f dB\n", lv.CrestFactor_dB)
	fmt.Fprintf(tw, "\n")

	fmt.Fprintf(tw, "AMPLITUDE STATISTICS\n")
	fmt.Fprintf(tw, "  Max Amplitude:\t%.6f\n", lv.Max)
	fmt.Fprintf(tw, "  Min Amplitude:\t%.6f\n", lv.Min)
	fmt.Fprintf(tw, "  Mean Amplitude:\t%.6f\n", lv.Mean)
	fmt.Fprintf(tw, "  Std Deviation:\t%.6f\n", lv.StdDev)
	fmt.Fprintf(tw, "  Zero Crossings:\t%s\n", humanize.Comma(int64(lv.ZeroCrossings)))
	fmt.Fprintf(tw, "\n")

	sp := r.Spectral
	fmt.Fprintf(tw, "SPECTRAL SHAPE\n")
	fmt.Fprintf(tw, "  Peak Frequency:\t%.2f Hz\n", sp.PeakFrequency)
	fmt.Fprintf(tw, "  Centroid:\t%.2f Hz\n", sp.Centroid)
	fmt.Fprintf(tw, "  Spread:\t%.2f Hz\n", sp.Spread)
	fmt.Fprintf(tw, "  Flatness:\t%.4f\n", sp.Flatness)
	fmt.Fprintf(tw, "  Rolloff (85%%):\t%.2f Hz\n", sp.Rolloff)
	fmt.Fprintf(tw, "\n")

	h := r.Harmonics
	hasPeaks := h != nil && len(h.Peaks) > 0

	fmt.Fprintf(tw, "HARMONICS\n")
	if !hasPeaks {
		fmt.Fprintf(tw, "  No spectral peaks detected.\n")
	} else {
		fmt.Fprintf(tw, "  Fundamental:\t%.2f Hz\n", h.Fundamental)
		if h.THD > 0 {
			fmt.Fprintf(tw, "  THD:\t%.2f%% (%.2f dB)\n", h.THD*100, h.THD_dB)
		} else {
			fmt.Fprintf(tw, "  THD:\t0.00%%\n")
		}
		fmt.Fprintf(tw, "\n")
	}

	// Flush so the peak table aligns independently of the label columns.
	if err := tw.Flush(); err != nil {
		return err
	}

	if hasPeaks {
		lambdas := WavelengthTable(peakFrequencies(h), DefaultSpeed)

		fmt.Fprintf(tw, "  #\tFrequency [Hz]\tLevel [dB]\tWavelength [m]\n")
		for i, p := range h.Peaks {
			fmt.Fprintf(tw, "  %d\t%.2f\t%.2f\t%.3f\n", i+1, p.Frequency, p.RelativeLevel_dB, lambdas[i])
		}
		fmt.Fprintf(tw, "\n  Wavelength reference: %.0f m/s (air).\n", DefaultSpeed)
	}

	fmt.Fprintf(tw, "\nAnalyzed in %v\n", r.Elapsed.Round(time.Microsecond))

	return tw.Flush()
}

// CSV writes the sectioned comma-separated export: a single-cell banner
// per section, a two-column header, the value rows, and a blank row
// between sections.
func (r *Report) CSV(w io.Writer) error {
	records := [][]string{
		{"=== FILE INFORMATION ==="},
		{"Property", "Value"},
		{"Sample Rate (Hz)", strconv.Itoa(r.Info.SampleRate)},
		{"Duration (s)", fmt.Sprintf("%.4f", r.Info.Duration.Seconds())},
		{"Channels", strconv.Itoa(r.Info.Channels)},
		{"Channel Type", r.Info.Layout()},
		{"Total Samples", strconv.Itoa(r.Info.Frames)},
		{},
		{"=== AUDIO LEVELS ==="},
		{"Metric", "Value"},
		{"Average dB", fmt.Sprintf("%.2f", r.Levels.AvgPower_dB)},
		{"RMS dB", fmt.Sprintf("%.2f", r.Levels.RMS_dB)},
		{"Max dB", fmt.Sprintf("%.2f", r.Levels.Peak_dB)},
		{"Min dB", fmt.Sprintf("%.2f", r.Levels.Min_dB)},
		{"Dynamic Range (dB)", fmt.Sprintf("%.2f", r.Levels.DynamicRange_dB)},
		{},
		{"=== AMPLITUDE STATISTICS ==="},
		{"Metric", "Value"},
		{"Max Amplitude", fmt.Sprintf("%.6f", r.Levels.Max)},
		{"Min Amplitude", fmt.Sprintf("%.6f", r.Levels.Min)},
		{"Mean Amplitude", fmt.Sprintf("%.6f", r.Levels.Mean)},
		{"Std Deviation", fmt.Sprintf("%.6f", r.Levels.StdDev)},
	}

	if h := r.Harmonics; h != nil && len(h.Peaks) > 0 {
		records = append(records,
			[]string{},
			[]string{"=== HARMONICS ==="},
			[]string{"Metric", "Value"},
			[]string{"Fundamental (Hz)", fmt.Sprintf("%.2f", h.Fundamental)},
			[]string{"THD (%)", fmt.Sprintf("%.2f", h.THD*100)},
		)
		if h.THD > 0 {
			records = append(records, []string{"THD (dB)", fmt.Sprintf("%.2f", h.THD_dB)})
		}
		for i, p := range h.Peaks {
			records = append(records, []string{
				fmt.Sprintf("Peak %d", i+1),
				fmt.Sprintf("%.2f Hz (%.2f dB)", p.Frequency, p.RelativeLevel_dB),
			})
		}
	}

	return csv.NewWriter(w).WriteAll(records)
}

func peakFrequencies(h *harmonics.Result) []float64 {
	freqs := make([]float64, len(h.Peaks))
	for i, p := range h.Peaks {
		freqs[i] = p.Frequency
	}

	return freqs
}
