// Package logging provides structured logging for jokeraudit using zerolog.
//
// Console output is used when stderr is a terminal, JSON otherwise. The
// package-level logger is configured once by the CLI and carried through
// context by the library packages:
//
//	ctx = logging.WithDocument(ctx, "JOKERS.md")
//	logging.FromContext(ctx).Debug().Int("rows", n).Msg("Parsed document")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger zerolog.Logger

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

func init() {
	defaultLogger = createDefaultLogger()
}

func createDefaultLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr
	if stderrIsTerminal() && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	level := envLevel()
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the default global logger and zerolog's global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a logger writing to w at the global level.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.GlobalLevel()).With().Timestamp().Logger()
}

// NewConsole creates a human-readable logger on stderr.
func NewConsole() zerolog.Logger {
	return New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	})
}

// NewJSON creates a JSON logger on w, or stderr when w is nil.
func NewJSON(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return New(w)
}

// Debug starts a new debug level event on the default logger.
func Debug() *zerolog.Event { return defaultLogger.Debug() }

// Info starts a new info level event on the default logger.
func Info() *zerolog.Event { return defaultLogger.Info() }

// Warn starts a new warn level event on the default logger.
func Warn() *zerolog.Event { return defaultLogger.Warn() }

// Error starts a new error level event on the default logger.
func Error() *zerolog.Event { return defaultLogger.Error() }

// Err starts an error event carrying err on the default logger.
func Err(err error) *zerolog.Event { return defaultLogger.Err(err) }

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// envLevel reads LOG_LEVEL, falling back to DEBUG and then info.
func envLevel() zerolog.Level {
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		return parseLevel(s)
	}
	if os.Getenv("DEBUG") != "" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
