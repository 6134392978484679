// Package logger configures the global zerolog logger once at startup.
// Everything else logs through github.com/rs/zerolog/log.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup sets the global log level and output format. dev mode gets a
// human-readable console writer, everything else structured JSON.
func Setup(level, mode string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zl := zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
	if mode == "dev" {
		zl = zl.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})
	}
	log.Logger = zl
}
