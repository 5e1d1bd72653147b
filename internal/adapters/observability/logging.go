package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger tagged with the service name.
// APP_ENV=dev (or development) uses a human-friendly console writer.
// An unknown level falls back to info.
func NewLogger(env, service, level string) zerolog.Logger {
	return newLogger(os.Stdout, env, service, level)
}

func newLogger(out io.Writer, env, service, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if env == "dev" || env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", service).Logger()
}
