// This tool converts a wav file into an identical aiff file and stores
// it in the same folder as the source.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/cwbudde/pcmwav"
	"github.com/cwbudde/pcmwav/internal/logging"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/rs/zerolog/log"
)

var errMissingPath = errors.New("you must set the -path flag")

func main() {
	outPath, err := run(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("conversion failed")
	}

	log.Info().Str("output", outPath).Msg("wav file converted")
}

func run(args []string) (string, error) {
	flagSet := flag.NewFlagSet("wavtoaiff", flag.ContinueOnError)

	path := flagSet.String("path", "", "The path to the wav file to convert to aiff")
	logLevel := flagSet.String("log-level", logging.DefaultLevel, "log level")

	err := flagSet.Parse(args)
	if err != nil {
		return "", err
	}

	if *path == "" {
		return "", errMissingPath
	}

	err = logging.SetGlobalLevel(*logLevel)
	if err != nil {
		return "", err
	}

	sourcePath, err := expandHome(*path)
	if err != nil {
		return "", err
	}

	outPath := sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + ".aif"

	return outPath, convert(sourcePath, outPath)
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get the user home directory: %w", err)
	}

	return strings.Replace(path, "~", usr.HomeDir, 1), nil
}

func convert(sourcePath, outPath string) error {
	file, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := pcmwav.NewDecoder(file)

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("invalid WAV file: %w", err)
	}

	desc := decoder.Descriptor()
	log.Debug().Str("format", desc.String()).Str("source", sourcePath).Msg("decoded")

	toAIFFSamples(buf)

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	encoder := aiff.NewEncoder(outFile, int(desc.SampleRate), int(desc.BitsPerSample()), int(desc.NumChans))

	err = encoder.Write(buf)
	if err != nil {
		return err
	}

	return encoder.Close()
}

// toAIFFSamples shifts unsigned 8-bit wav samples to the signed range aiff
// stores.
func toAIFFSamples(buf *audio.IntBuffer) {
	if buf.SourceBitDepth != 8 {
		return
	}

	for i, v := range buf.Data {
		buf.Data[i] = v - 128
	}
}
