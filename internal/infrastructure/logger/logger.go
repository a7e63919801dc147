package logger

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	globalLogger zerolog.Logger
	once         sync.Once
	mu           sync.RWMutex
)

// GetLogger returns the process logger. Before New is called it is an info-level console logger.
func GetLogger() zerolog.Logger {
	once.Do(func() {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		mu.Lock()
		globalLogger = zerolog.New(consoleWriter).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// New constructs a zerolog logger based on level and format configuration
// and installs it as the process logger.
func New(level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, err
	}

	var writer zerolog.Logger
	switch strings.ToLower(format) {
	case "json":
		writer = zerolog.New(os.Stdout).With().Timestamp().Logger()
	case "console":
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		writer = zerolog.New(consoleWriter).With().Timestamp().Logger()
	default:
		return zerolog.Logger{}, errors.New("unsupported log format")
	}

	// make sure the lazy default does not overwrite us later
	GetLogger()

	zerolog.SetGlobalLevel(lvl)
	mu.Lock()
	globalLogger = writer.Level(lvl)
	mu.Unlock()

	return writer.Level(lvl), nil
}
