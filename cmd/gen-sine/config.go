package main

import (
	"errors"
	"fmt"
	"io/fs"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "GENSINE"

// config holds the generator settings. Environment variables prefixed with
// GENSINE_ provide the defaults, flags override them.
type config struct {
	Output     string  `default:"output.wav"`
	Frequency  float64 `default:"440"`
	Length     float64 `default:"5"`
	SampleRate uint32  `split_words:"true" default:"48000"`
	Channels   uint16  `default:"1"`
	LogLevel   string  `split_words:"true" default:"info"`
}

// loadConfig reads envFile into the environment, if it exists, and
// processes the GENSINE_ variables.
func loadConfig(envFile string) (*config, error) {
	err := godotenv.Load(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	conf := &config{}

	err = envconfig.Process(envPrefix, conf)
	if err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Output, validation.Required),
		// the tone has to sit below the nyquist frequency
		validation.Field(&c.Frequency,
			validation.Min(0.0).Exclusive(),
			validation.Max(float64(c.SampleRate)/2).Exclusive(),
		),
		validation.Field(&c.Length, validation.Min(0.0)),
		validation.Field(&c.SampleRate, validation.Required),
		validation.Field(&c.Channels, validation.Required),
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "error")),
	)
}
