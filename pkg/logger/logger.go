// Package logger builds the application's zerolog loggers.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Config controls where log lines go. Console output is always on; FilePath
// adds an append-only copy.
type Config struct {
	FilePath string
	Level    zerolog.Level
	Pretty   bool
}

// New builds the logger and returns a close function for the log file, if
// one was opened.
func New(cfg Config) (zerolog.Logger, func() error, error) {
	var writers []io.Writer
	if cfg.Pretty {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		writers = append(writers, os.Stderr)
	}

	closeFile := func() error { return nil }
	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
		closeFile = f.Close
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()

	return log, closeFile, nil
}
