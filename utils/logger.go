package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogConfig selects the level and output style of a Logger.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Pretty bool   // human readable console output instead of JSON lines
	Out    io.Writer
}

// Logger provides leveled, printf-style logging throughout the application.
// Records are emitted through zerolog so they carry a timestamp, level and
// the component that produced them.
type Logger struct {
	z zerolog.Logger
}

// NewLogger creates a Logger writing to stdout (or cfg.Out).
func NewLogger(cfg LogConfig) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Out != nil {
		out = cfg.Out
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	z := zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()

	return &Logger{z: z}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{z: zerolog.Nop()}
}

// Named returns a child logger tagged with the given component.
func (l *Logger) Named(component string) *Logger {
	return &Logger{z: l.z.With().Str("component", component).Logger()}
}

// Zerolog exposes the underlying logger for callers that want structured fields.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.z
}

func (l *Logger) Info(format string, args ...any) {
	l.z.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.z.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.z.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.z.Debug().Msgf(format, args...)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
