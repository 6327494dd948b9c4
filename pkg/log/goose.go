package log

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// GooseLogger routes migration output through zerolog. Fatalf does not exit;
// goose reports the failure as an error from Up as well.
type GooseLogger struct {
	logger *zerolog.Logger
}

func NewGooseLogger(ctx context.Context) *GooseLogger {
	return &GooseLogger{logger: FromCtx(WithComponent(ctx, "migrations"))}
}

func (g *GooseLogger) Fatalf(format string, v ...any) {
	g.logger.Error().Msg(line(format, v))
}

func (g *GooseLogger) Printf(format string, v ...any) {
	g.logger.Debug().Msg(line(format, v))
}

func line(format string, v []any) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}
