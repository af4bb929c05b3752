package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// setupLogger builds the logger from the logfile selector. An empty
// selector disables logging, "-" logs to stdout, "_" to stderr, and
// anything else is treated as a file path opened for append. The
// returned closer is a no-op except for the file case.
func setupLogger(logfile, loglevel string) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(loglevel)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("parse loglevel: %w", err)
	}

	switch logfile {
	case "":
		return zerolog.Nop(), nopCloser{}, nil
	case "-":
		return consoleLogger(os.Stdout, level), nopCloser{}, nil
	case "_":
		return consoleLogger(os.Stderr, level), nopCloser{}, nil
	}

	f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open logfile: %w", err)
	}
	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, f, nil
}

func consoleLogger(out *os.File, level zerolog.Level) zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
