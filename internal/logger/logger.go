// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Formats accepted by Init
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// Config controls level and output format
type Config struct {
	Level      string `json:"level"`
	Format     string `json:"format"`
	TimeFormat string `json:"time_format"`
}

// Init builds the logger from config and installs it as the global logger.
// Unknown levels fall back to info. Output goes to w (stderr when nil) so
// that stdout stays free for command output.
func Init(cfg Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if w == nil {
		w = os.Stderr
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	zerolog.TimeFieldFormat = timeFormat

	output := w
	if cfg.Format == FormatPretty {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
