// This tool prints the format of the passed wav file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/pcmwav"
	_ "github.com/cwbudde/pcmwav/internal/logging" // configures the global logger
	"github.com/rs/zerolog/log"
)

const missingPathMessage = "You must pass the path of the file to inspect"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal().Err(err).Strs("args", os.Args[1:]).Msg("failed to read header")
}

var errMissingPath = errors.New("missing path argument")

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errMissingPath
	}

	for _, path := range args {
		err := printInfo(path, out)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	return nil
}

func printInfo(path string, out io.Writer) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	desc, err := pcmwav.ReadHeader(file)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "File: %s\n", path)
	fmt.Fprintf(out, "Channels: %d\n", desc.NumChans)
	fmt.Fprintf(out, "SampleRate: %d\n", desc.SampleRate)
	fmt.Fprintf(out, "BitsPerSample: %d\n", desc.BitsPerSample())
	fmt.Fprintf(out, "BlockAlign: %d\n", desc.BlockAlign())
	fmt.Fprintf(out, "ByteRate: %d\n", desc.ByteRate())
	fmt.Fprintf(out, "PayloadBytes: %d\n", desc.AudioPayloadSize)
	fmt.Fprintf(out, "Frames: %d\n", desc.NumFrames())
	fmt.Fprintf(out, "Duration: %s\n", desc.Duration())

	if err := desc.Validate(); err != nil {
		fmt.Fprintf(out, "Warning: %v\n", err)
	}

	return nil
}
