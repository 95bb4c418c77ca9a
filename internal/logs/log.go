package logs

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	SOURCE_LOG_FIELD_NAME = "src"
	DEFAULT_LOG_LEVEL     = zerolog.InfoLevel
)

func init() {
	zerolog.DurationFieldInteger = false
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.MessageFieldName = "msg"
	zerolog.LevelFieldName = "lvl"
	zerolog.TimestampFieldName = "tm"
}

// ChildLoggerForSource returns a copy of logger with the 'src' field set.
func ChildLoggerForSource(logger zerolog.Logger, src string) zerolog.Logger {
	return logger.With().Str(SOURCE_LOG_FIELD_NAME, src).Logger()
}

// ParseLevel parses a level name (debug, info, warn ...), the empty string is parsed as DEFAULT_LOG_LEVEL.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return DEFAULT_LOG_LEVEL, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// NewConsoleLogger returns a human-friendly logger writing to w.
func NewConsoleLogger(w io.Writer, level zerolog.Level, colorize bool) zerolog.Logger {
	writer := zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = w
		cw.TimeFormat = time.TimeOnly
		cw.NoColor = !colorize
	})
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
