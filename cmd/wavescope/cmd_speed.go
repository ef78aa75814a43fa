package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/wavescope/analysis"
)

var (
	speedMedium string
	speedTemp   float64
)

var speedCmd = &cobra.Command{
	Use:   "speed",
	Short: "Print the speed of sound and reference wavelengths",
	RunE:  runSpeed,
}

func init() {
	speedCmd.Flags().StringVar(&speedMedium, "medium", "air", "Medium: "+strings.Join(analysis.Media(), ", "))
	speedCmd.Flags().Float64Var(&speedTemp, "temp", 20, "Temperature in degrees Celsius (air and water only)")
}

func runSpeed(cmd *cobra.Command, args []string) error {
	c, err := analysis.SpeedOfSound(speedMedium, speedTemp)
	if err != nil {
		return err
	}

	fmt.Printf("Speed of sound in %s at %g C: %.1f m/s\n\n", strings.ToLower(speedMedium), speedTemp, c)

	freqs := []float64{100, 1000, 10000}
	lambdas := analysis.WavelengthTable(freqs, c)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Frequency\tWavelength")
	for i, f := range freqs {
		fmt.Fprintf(tw, "%s\t%.3f m\n", formatFreq(f), lambdas[i])
	}

	return tw.Flush()
}

func formatFreq(f float64) string {
	if f >= 1000 {
		return fmt.Sprintf("%g kHz", f/1000)
	}

	return fmt.Sprintf("%g Hz", f)
}
