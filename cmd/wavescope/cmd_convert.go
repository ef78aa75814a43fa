package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/wavescope/audio"
)

var convertCmd = &cobra.Command{
	Use:   "convert SRC DST",
	Short: "Convert MP3, FLAC or Ogg Vorbis audio to 16-bit PCM WAV",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := audio.Convert(args[0], args[1]); err != nil {
		return err
	}

	info, err := audio.Stat(args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s: %d Hz, %s, %s\n",
		args[1], info.SampleRate, info.Layout(), info.Duration.Round(10*time.Millisecond))

	return nil
}
