package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	// Level is a zerolog level name. It is ignored when Verbosity is set.
	Level string
	// Verbosity counts -v flags: 1 info, 2 debug, 3+ trace.
	Verbosity int
	// Pretty forces console output. When false, console output is still used
	// if Out is a terminal.
	Pretty bool
	// Out defaults to stderr.
	Out io.Writer
}

// Setup configures the global logger and returns it.
func Setup(opts Options) zerolog.Logger {
	zerolog.SetGlobalLevel(level(opts))

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	if opts.Pretty || isTerminal(out) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	if opts.Verbosity >= 2 {
		logger = logger.With().Caller().Logger()
	}

	log.Logger = logger
	return logger
}

// GetLogger returns the global logger tagged with a component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func level(opts Options) zerolog.Level {
	switch {
	case opts.Verbosity == 1:
		return zerolog.InfoLevel
	case opts.Verbosity == 2:
		return zerolog.DebugLevel
	case opts.Verbosity >= 3:
		return zerolog.TraceLevel
	}

	if opts.Level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
