// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"frontdesk/config"
	"frontdesk/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLevel = zerolog.InfoLevel

// InitLogger installs a human readable console logger. Configure refines it once config is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(console(os.Stderr)).With().Timestamp().Logger()
}

// Configure applies the configured level and switches to JSON lines in production.
func Configure(cfg *config.Config) {
	if cfg.Server.Env == constant.ServerEnvProduction {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	level := ParseLevel(cfg.Server.LogLevel)
	zerolog.SetGlobalLevel(level)

	log.Debug().Str("env", cfg.Server.Env).Stringer("level", level).Msg("Logger configured")
}

// ParseLevel falls back to info for empty or unknown values.
func ParseLevel(raw string) zerolog.Level {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultLevel
	}

	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return defaultLevel
	}

	return level
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func console(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
}
