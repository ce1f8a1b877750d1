package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/cwbudde/pcmwav"
	"github.com/cwbudde/pcmwav/internal/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to generate sine")
	}
}

func run(args []string) error {
	conf, err := loadConfig(".env")
	if err != nil {
		return err
	}

	flagSet := flag.NewFlagSet("gen-sine", flag.ContinueOnError)

	flagSet.StringVar(&conf.Output, "output", conf.Output, "filename to write to")
	flagSet.Float64Var(&conf.Frequency, "frequency", conf.Frequency, "frequency in hertz to generate")
	flagSet.Float64Var(&conf.Length, "length", conf.Length, "length in seconds of output file")
	rate := flagSet.Uint("rate", uint(conf.SampleRate), "sample rate in hertz")
	channels := flagSet.Uint("channels", uint(conf.Channels), "number of channels, all carry the same tone")
	flagSet.StringVar(&conf.LogLevel, "log-level", conf.LogLevel, "log level")

	err = flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *rate > math.MaxUint32 || *channels > math.MaxUint16 {
		return fmt.Errorf("rate %d or channel count %d out of range", *rate, *channels)
	}

	conf.SampleRate = uint32(*rate)
	conf.Channels = uint16(*channels)
	conf.LogLevel = strings.ToLower(conf.LogLevel)

	err = conf.Validate()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	err = logging.SetGlobalLevel(conf.LogLevel)
	if err != nil {
		return err
	}

	return generate(conf)
}

func generate(conf *config) error {
	dur := time.Duration(conf.Length * float64(time.Second))
	numFrames := pcmwav.FramesForDuration(dur, conf.SampleRate)
	numChans := int(conf.Channels)

	log.Info().
		Float64("frequency", conf.Frequency).
		Dur("length", dur).
		Uint32("sample_rate", conf.SampleRate).
		Uint16("channels", conf.Channels).
		Msg("generating sine")

	samples := make([]int16, numFrames*numChans)
	step := conf.Frequency * 2 * math.Pi / float64(conf.SampleRate)

	for i := 0; i < numFrames; i++ {
		v := pcmwav.QuantizeInt16(math.Sin(float64(i) * step))
		for c := 0; c < numChans; c++ {
			samples[i*numChans+c] = v
		}
	}

	desc := pcmwav.DescriptorFor(conf.Channels, conf.SampleRate, samples)

	err := desc.Validate()
	if err != nil {
		return err
	}

	file, err := os.Create(conf.Output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", conf.Output, err)
	}
	defer file.Close()

	n, err := pcmwav.WriteContainer(file, desc, samples)
	if err != nil {
		return err
	}

	log.Debug().
		Str("output", conf.Output).
		Int64("bytes", n).
		Str("format", desc.String()).
		Msg("container written")

	return file.Close()
}
