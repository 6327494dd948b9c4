package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Debug bool

	// JSON switches from the human console format to one JSON object per line.
	JSON bool
	Out  io.Writer
}

// NewContextWithLogger installs the process logger and returns a context
// carrying it. The returned func flushes buffered lines and must run before exit.
func NewContextWithLogger(ctx context.Context, opts Options) (context.Context, func()) {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return ""
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	// non-blocking: slow terminals drop lines instead of stalling a turn
	wr := diode.NewWriter(out, 1000, 5*time.Millisecond, func(missed int) {
		fmt.Fprintf(os.Stderr, "logger dropped %d messages\n", missed)
	})

	logger := zerolog.New(format(wr, opts.JSON)).
		With().
		Timestamp().
		CallerWithSkipFrameCount(2).
		Logger()

	log.Logger = logger
	return logger.WithContext(ctx), func() { _ = wr.Close() }
}

func format(w io.Writer, json bool) io.Writer {
	if json {
		return w
	}
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.TimestampFieldName,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		},
	}
}

func FromCtx(ctx context.Context) *zerolog.Logger {
	return log.Ctx(ctx)
}

// WithSession returns a context whose logger tags every line with the session id.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return with(ctx, "session", sessionID)
}

func WithComponent(ctx context.Context, name string) context.Context {
	return with(ctx, "component", name)
}

func with(ctx context.Context, key, value string) context.Context {
	logger := FromCtx(ctx).With().Str(key, value).Logger()
	return logger.WithContext(ctx)
}
