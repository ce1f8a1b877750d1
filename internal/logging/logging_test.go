package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetGlobalLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"debug", zerolog.DebugLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"loud", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := SetGlobalLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SetGlobalLevel(%q) expected an error", tt.in)
				}

				return
			}

			if err != nil {
				t.Fatalf("SetGlobalLevel(%q)=%v", tt.in, err)
			}

			if got := zerolog.GlobalLevel(); got != tt.want {
				t.Fatalf("global level=%v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigureJSON(t *testing.T) {
	defer Configure(&bytes.Buffer{}, "")

	var buf bytes.Buffer

	Configure(&buf, "JSON")
	log.Info().Str("file", "out.wav").Msg("written")

	var entry map[string]any

	err := json.Unmarshal(buf.Bytes(), &entry)
	if err != nil {
		t.Fatalf("expected a json log line, got %q: %v", buf.String(), err)
	}

	if entry["file"] != "out.wav" || entry["message"] != "written" || entry["level"] != "info" {
		t.Fatalf("unexpected log entry %v", entry)
	}
}

func TestConfigureConsoleRespectsLevel(t *testing.T) {
	defer Configure(&bytes.Buffer{}, "")

	var buf bytes.Buffer

	Configure(&buf, "")
	log.Debug().Msg("hidden")

	if buf.Len() != 0 {
		t.Fatalf("debug entry logged at info level: %q", buf.String())
	}

	log.Info().Msg("shown")

	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Fatalf("expected console output to contain the message, got %q", buf.String())
	}
}
