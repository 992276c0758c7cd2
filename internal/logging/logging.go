// Package logging configures the process-wide slog logger of the resgen
// command.
package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Options configures the console handler.
type Options struct {
	Level   slog.Level
	NoColor bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q; use debug, info, warn or error", s)
	}
	return l, nil
}

// NewHandler returns a tint handler writing to opts.Output. Color is turned
// off when requested or when the output is not a terminal.
func NewHandler(opts Options) slog.Handler {
	w := opts.Output
	if w == nil {
		w = os.Stderr
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      opts.Level,
		TimeFormat: time.TimeOnly,
		NoColor:    opts.NoColor || !terminal(w),
	})
}

// Setup installs the handler as the default logger and redirects the
// standard log package to it.
func Setup(opts Options) *slog.Logger {
	logger := slog.New(NewHandler(opts))
	slog.SetDefault(logger)

	// Route deep dependencies using the log package through slog.
	lw := &slogWriter{}
	log.SetFlags(0)
	log.SetOutput(lw)
	return logger
}

func terminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

type slogWriter struct{}

func (w *slogWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimRight(string(p), "\n")
	level := slog.LevelDebug
	for _, l := range []slog.Level{slog.LevelError, slog.LevelWarn, slog.LevelInfo} {
		if rest, ok := strings.CutPrefix(msg, l.String()); ok && (rest == "" || rest[0] == ':' || rest[0] == ' ') {
			level, msg = l, strings.TrimLeft(rest, ": ")
			break
		}
	}
	slog.Log(context.Background(), level, msg)
	return len(p), nil
}
