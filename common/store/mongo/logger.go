package mongo

import (
	"fmt"

	"github.com/rs/zerolog"
)

// logger adapts zerolog to the driver's options.LogSink.
type logger struct {
	log zerolog.Logger
}

func (l *logger) Info(level int, message string, keysAndValues ...any) {
	// The driver uses 1 for info and 2 for debug.
	switch level {
	case 1:
		l.log.Info().Fields(fields(keysAndValues)).Msg(message)
	case 2:
		l.log.Debug().Fields(fields(keysAndValues)).Msg(message)
	}
}

func (l *logger) Error(err error, message string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(fields(keysAndValues)).Msg(message)
}

func fields(keysAndValues []any) map[string]any {
	out := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		var value any
		if i+1 < len(keysAndValues) {
			value = keysAndValues[i+1]
		}
		out[key] = value
	}
	return out
}
