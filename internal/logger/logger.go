package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds the root logger.
//   - level: trace, debug, info, warn, error, fatal or panic; unknown values fall back to info
//   - format: "pretty" for a colored console, anything else for JSON lines
//
// Debug and trace levels also record the caller. The returned logger is
// installed as zerolog's context default.
func Setup(level, format string) zerolog.Logger {
	var writer io.Writer = os.Stdout
	if format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.DurationFieldUnit = time.Millisecond

	ctx := zerolog.New(writer).With().Timestamp().Str("service", "orbit-backend")
	if lvl <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	log := ctx.Logger()

	if err != nil {
		log.Warn().Str("log_level", level).Msg("Unknown log level, using info")
	}

	// zerolog.Ctx on a context without a logger lands here.
	zerolog.DefaultContextLogger = &log

	return log
}

// Nop returns a disabled logger for tests and one-shot commands.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
