package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var once sync.Once
var Log zerolog.Logger

func configureLogger() {
	customTimeFormat := "2006-01-02T15:04:05.000Z07:00"
	zerolog.TimeFieldFormat = customTimeFormat

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: customTimeFormat,
	}

	Log = zerolog.New(output).With().Timestamp().Logger()
}

// GetLoggerConfigured returns the process logger, setting the global level on
// first use. Later calls keep the level chosen by the first one.
func GetLoggerConfigured(level zerolog.Level) *zerolog.Logger {
	once.Do(func() {
		configureLogger()
		zerolog.SetGlobalLevel(level)
	})
	return &Log
}

// GetLogger returns the process logger, configuring it on first use with the
// global level left as it is.
func GetLogger() *zerolog.Logger {
	once.Do(func() {
		configureLogger()
	})
	return &Log
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
