// pkg/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/andresuchdata/drfc-manager/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	// Log is the global logger instance
	Log zerolog.Logger
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	Log = New(os.Stderr, config.LogConfig{Level: "info", Format: FormatConsole})
}

// New builds a logger writing to w. An unknown level falls back to info and
// any format other than json gets the console writer.
func New(w io.Writer, cfg config.LogConfig) zerolog.Logger {
	out := w
	if !strings.EqualFold(cfg.Format, FormatJSON) {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "2006-01-02 15:04:05",
			NoColor:    cfg.NoColor,
		}
	}

	level, _ := parseLevel(cfg.Level)
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

// Configure replaces the global logger with one built from cfg.
func Configure(cfg config.LogConfig) {
	level, ok := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)
	Log = New(os.Stderr, cfg)
	if !ok {
		Log.Warn().Str("level", cfg.Level).Msg("invalid log level, defaulting to info")
	}
}

// Component returns a child of the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return Log.With().Str("component", name).Logger()
}

func parseLevel(s string) (zerolog.Level, bool) {
	if s == "" {
		return zerolog.InfoLevel, false
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.InfoLevel, false
	}
	return level, true
}
