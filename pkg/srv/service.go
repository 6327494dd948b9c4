package srv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/pitchcoach/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Named services are logged by name instead of by type.
type Named interface {
	Name() string
}

func Name(s Service) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}

// Run starts every service and blocks until ctx is done or one of them fails
// to start. Services are then shut down in reverse order, each sharing the
// same shutdown deadline. A service whose Start returns nil keeps the group
// running.
func Run(ctx context.Context, services []Service, shutdownTimeout time.Duration) error {
	logger := log.FromCtx(ctx)

	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	for _, service := range services {
		go func() {
			if err := service.Start(runCtx); err != nil {
				cancel(fmt.Errorf("%s failed to start: %w", Name(service), err))
			}
		}()
		logger.Debug().Str("service", Name(service)).Msg("starting service")
	}

	<-runCtx.Done()

	startErr := context.Cause(runCtx)
	if ctx.Err() != nil {
		startErr = nil
	} else {
		logger.Error().Err(startErr).Msg("stopping services")
	}

	shutdownCtx, done := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer done()

	errs := []error{startErr}
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Str("service", Name(services[i])).Msg("failed to shut down")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
