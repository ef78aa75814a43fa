package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/wavescope/dsp/window"
)

var windowsSize int

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "Print gain properties of the analysis windows",
	Long: `Prints coherent gain, noise power gain and equivalent noise bandwidth
for every window the analysis pipeline offers. Useful when deciding
which window to pass to analyze --window.`,
	RunE: runWindows,
}

func init() {
	windowsCmd.Flags().IntVar(&windowsSize, "size", 1024, "Window length in samples")
}

func runWindows(cmd *cobra.Command, args []string) error {
	if windowsSize <= 0 {
		return fmt.Errorf("window size must be > 0: %d", windowsSize)
	}

	types := []window.Type{
		window.TypeRectangular,
		window.TypeHann,
		window.TypeHamming,
		window.TypeBlackman,
		window.TypeFlatTop,
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Window\tSize\tCoherent Gain\tNoise Power Gain\tENBW [bins]")
	fmt.Fprintln(tw, "------\t----\t-------------\t----------------\t-----------")

	for _, typ := range types {
		coeffs := window.Generate(typ, windowsSize)
		enbw, err := window.EquivalentNoiseBandwidth(coeffs)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.6f\t%.4f\n",
			typ, windowsSize,
			window.CoherentGain(coeffs),
			window.NoisePowerGain(coeffs),
			enbw)
	}

	return tw.Flush()
}
