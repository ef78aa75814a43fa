package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cwbudde/wavescope/audio"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE...",
	Short: "Print format info and tags without analyzing",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	for i, path := range args {
		if i > 0 {
			fmt.Println()
		}
		if err := printInfo(os.Stdout, path); err != nil {
			return err
		}
	}

	return nil
}

func printInfo(w io.Writer, path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, filepath.Base(path))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Size:\t%s\n", humanize.IBytes(uint64(fi.Size())))

	// Non-WAV files still get size and tags, just no format block.
	if info, err := audio.Stat(path); err == nil {
		fmt.Fprintf(tw, "  Duration:\t%s\n", info.Duration.Round(10*time.Millisecond))
		fmt.Fprintf(tw, "  Format:\t%d Hz, %s, %d-bit\n", info.SampleRate, info.Layout(), info.BitDepth)
		fmt.Fprintf(tw, "  Frames:\t%d\n", info.Frames)
	}

	if meta, err := audio.Probe(path); err == nil {
		if meta.Title != "" {
			fmt.Fprintf(tw, "  Title:\t%s\n", meta.Title)
		}
		if meta.Artist != "" {
			fmt.Fprintf(tw, "  Artist:\t%s\n", meta.Artist)
		}
		if meta.Album != "" {
			fmt.Fprintf(tw, "  Album:\t%s\n", meta.Album)
		}
		if meta.Year != 0 {
			fmt.Fprintf(tw, "  Year:\t%d\n", meta.Year)
		}
	}

	return tw.Flush()
}
