// Package logging configures the zerolog global logger used by the command
// line tools.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// DefaultLevel is the level the tools log at unless told otherwise.
const DefaultLevel = "info"

//nolint:gochecknoinits
func init() {
	Configure(os.Stderr, os.Getenv("LOG_FORMAT"))
}

// Configure points the global logger at out. The console writer is used
// unless format is "json".
func Configure(out io.Writer, format string) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.ToLower(format) != "json" {
		out = zerolog.ConsoleWriter{
			Out:     out,
			NoColor: true,
		}
	}

	// caller line, stack on .Err() and timestamps
	log.Logger = zerolog.New(out).
		With().
		Caller().
		Stack().
		Timestamp().
		Logger()
}

// SetGlobalLevel should only be called once, and before goroutines are spawned
func SetGlobalLevel(logLevelStr string) error {
	logLevel, err := zerolog.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(logLevel)

	return nil
}
