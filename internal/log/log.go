// Package log holds the zerolog loggers shared by the cointoss CLI and the
// derive package. Everything is written to stderr; stdout carries only
// phrases and addresses. Mnemonics, seeds and passphrases are never logged.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// defaultLevel keeps a normal run quiet apart from insecure-entropy warnings.
const defaultLevel = zerolog.WarnLevel

// Logger is the root logger; CLI and Derive are derived from it.
var Logger zerolog.Logger

var (
	CLI    zerolog.Logger
	Derive zerolog.Logger
)

func init() {
	Init("", false)
}

// Init rebuilds every logger from the --log-level and --log-json flags.
func Init(level string, jsonOutput bool) {
	if jsonOutput {
		Logger = NewJSONLogger(os.Stderr, level)
	} else {
		Logger = NewConsoleLogger(os.Stderr, level)
	}
	deriveComponents()
}

// SetOutput redirects every logger to w. Tests use it to capture output.
func SetOutput(w io.Writer) {
	Logger = Logger.Output(w)
	deriveComponents()
}

// NewConsoleLogger returns a human readable logger writing to w.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	return newLogger(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}, level)
}

// NewJSONLogger returns a logger writing one JSON object per line to w.
func NewJSONLogger(w io.Writer, level string) zerolog.Logger {
	return newLogger(w, level)
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

// parseLevel maps a --log-level value to a zerolog level. "off" silences
// logging; empty or unrecognised values fall back to warn.
func parseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "off" {
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return defaultLevel
	}
	return l
}

func deriveComponents() {
	CLI = Logger.With().Str("component", "cli").Logger()
	Derive = Logger.With().Str("component", "derive").Logger()
}
