package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Settings struct {
	Level      string
	Format     string // console|json
	File       string
	WithCaller bool
	// Discard drops output when no File is set (the TUI owns the terminal).
	Discard bool
}

// InitLogger configures the global zerolog logger.
func InitLogger(s Settings) error {
	logger, err := NewLogger(s, os.Stderr)
	if err != nil {
		return err
	}
	log.Logger = logger
	zerolog.SetGlobalLevel(logger.GetLevel())
	return nil
}

// NewLogger builds a logger writing to fallback unless s names a file.
func NewLogger(s Settings, fallback io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if s.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(s.Level))
		if err != nil {
			return zerolog.Nop(), errors.Wrapf(err, "invalid log level %q", s.Level)
		}
		level = l
	}

	var w io.Writer
	switch {
	case s.File != "":
		w = &lumberjack.Logger{
			Filename:   s.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
	case s.Discard:
		w = io.Discard
	default:
		w = fallback
	}

	switch strings.ToLower(s.Format) {
	case "", "console", "text":
		cw := zerolog.NewConsoleWriter()
		cw.Out = w
		cw.NoColor = s.File != ""
		w = cw
	case "json":
	default:
		return zerolog.Nop(), errors.Errorf("unknown log format %q", s.Format)
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if s.WithCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), nil
}
