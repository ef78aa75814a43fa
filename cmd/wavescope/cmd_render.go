package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/wavescope/audio"
	"github.com/cwbudde/wavescope/config"
	"github.com/cwbudde/wavescope/render"
)

var (
	renderKindName string
	renderOut      string
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render charts for a WAV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderKindName, "kind", "all", "Chart kind: waveform, spectrogram, spectrum, psd, phase, histogram or all")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "Output directory (default from config)")
}

func runRender(cmd *cobra.Command, args []string) error {
	clip, err := audio.Load(args[0])
	if err != nil {
		return err
	}

	dir := renderOut
	if dir == "" {
		dir = config.Get().Paths.FiguresDir
	}

	if strings.EqualFold(renderKindName, "all") {
		paths, err := render.All(nil, clip, dir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println("Wrote", p)
		}
		return nil
	}

	kind, err := render.ParseKind(renderKindName)
	if err != nil {
		return err
	}

	name := filepath.Base(args[0])
	st := render.DefaultStyle()
	st.Title = kind.Title() + " - " + name

	chart, err := render.Render(kind, clip, st)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	out := filepath.Join(dir, fmt.Sprintf("%s_%s.png", base, kind))
	if err := chart.SavePNG(out); err != nil {
		return err
	}

	fmt.Println("Wrote", out)

	return nil
}
