// Package logging owns the process-wide zerolog logger.
// Logs go to stderr so stdout stays free for outcome JSON.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the root logger
type Options struct {
	Level  string
	Format string // console or json
	Writer io.Writer
}

var root atomic.Pointer[zerolog.Logger]

// Init builds the root logger. Later calls replace it, which lets the CLI
// re-initialize once flags and config are known.
func Init(opt Options) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stderr
	if opt.Writer != nil {
		w = opt.Writer
	}
	if strings.ToLower(opt.Format) != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	l := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp().Logger()
	root.Store(&l)
}

// Get returns the root logger, initializing an info-level console logger
// on first use
func Get() *zerolog.Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(Options{Level: "info"})
	return root.Load()
}

// Named returns a child logger with a component field
func Named(component string) *zerolog.Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
