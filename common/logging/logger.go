package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Level zerolog.Level

const InfoLevel = Level(zerolog.InfoLevel)

func (l Level) toZerolog() zerolog.Level {
	return zerolog.Level(l)
}

type Format int

const (
	// FormatAuto picks the console writer at debug and trace levels and JSON otherwise.
	FormatAuto Format = iota
	FormatConsole
	FormatJSON
)

// Output is where logs go. Stdout is reserved for recovered passwords.
var Output io.Writer = os.Stderr

func Setup(level Level, format Format) {
	zerolog.SetGlobalLevel(level.toZerolog())
	if format == FormatAuto {
		format = FormatJSON
		if level.toZerolog() <= zerolog.DebugLevel {
			format = FormatConsole
		}
	}
	var writer io.Writer
	switch format {
	case FormatConsole:
		writer = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = Output
			w.TimeFormat = time.RFC3339
		})
	default:
		writer = Output
	}
	log.Logger = zerolog.
		New(writer).
		With().
		Timestamp().
		Caller().
		Logger()
}

func ParseLevel(lvl string) Level {
	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(lvl))
	if err != nil || parsedLevel == zerolog.NoLevel {
		return InfoLevel
	}
	return Level(parsedLevel)
}

func ParseFormat(format string) Format {
	switch strings.ToLower(format) {
	case "console":
		return FormatConsole
	case "json":
		return FormatJSON
	default:
		return FormatAuto
	}
}
