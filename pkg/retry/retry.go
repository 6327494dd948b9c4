package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/sandevgo/pitchcoach/pkg/log"
)

type Operation = func() error

type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxRetries:    3,
		BackoffFactor: 2,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		Jitter:        100 * time.Millisecond,
	}
}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying. Do returns the wrapped error.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

type delayedError struct {
	err   error
	delay time.Duration
}

func (d *delayedError) Error() string { return d.err.Error() }
func (d *delayedError) Unwrap() error { return d.err }

// After asks for the next attempt to wait at least d, e.g. a server's
// Retry-After. The wait is still capped by MaxDelay.
func After(err error, d time.Duration) error {
	if err == nil {
		return nil
	}
	return &delayedError{err: err, delay: d}
}

type Retrier struct {
	config *Config
}

func NewRetrier(config *Config) *Retrier {
	return &Retrier{config: config}
}

func NewDefaultRetrier() *Retrier {
	return NewRetrier(NewDefaultConfig())
}

// Do runs op until it succeeds, returns a Permanent error, runs out of
// retries or ctx ends. The last error is returned unwrapped.
func (r *Retrier) Do(ctx context.Context, op Operation) error {
	logger := log.FromCtx(ctx)
	backoff := r.config.InitialDelay

	for attempt := 0; ; attempt++ {
		err := op()
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}

		wait := backoff
		var delayed *delayedError
		if errors.As(err, &delayed) {
			err = delayed.err
			wait = max(wait, delayed.delay)
		}
		if attempt == r.config.MaxRetries {
			return err
		}
		wait = r.withJitter(min(wait, r.config.MaxDelay))

		logger.Debug().Err(err).Int("attempt", attempt+1).Dur("wait", wait).Msg("retrying")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff = min(time.Duration(float64(backoff)*r.config.BackoffFactor), r.config.MaxDelay)
	}
}

func (r *Retrier) withJitter(d time.Duration) time.Duration {
	if r.config.Jitter <= 0 {
		return d
	}
	return d + rand.N(r.config.Jitter)
}
