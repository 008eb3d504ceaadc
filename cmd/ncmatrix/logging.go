package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

var logLevel = new(slog.LevelVar)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogging installs the default logger: info and above to w, or with
// debug set, everything to the file at path.
func setupLogging(w io.Writer, debug bool, path string) (io.Closer, error) {
	if debug {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, errors.Wrapf(err, "open log file %s", path)
		}
		logLevel.Set(slog.LevelDebug)
		slog.SetDefault(slog.New(tint.NewHandler(f, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.DateTime,
			NoColor:    true,
		})))
		return f, nil
	}

	logLevel.Set(slog.LevelInfo)
	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	})))
	return nopCloser{}, nil
}

// quietForScreen raises stderr logging to warn while a full-screen host
// owns the terminal. Debug file logging is left alone.
func quietForScreen() {
	if logLevel.Level() < slog.LevelWarn && !debug {
		logLevel.Set(slog.LevelWarn)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
