// Package retrier implements exponential backoff with jitter for outbound calls.
package retrier

import (
	"context"
	"math/rand"
	"time"
)

const (
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxInterval     = 15 * time.Second
	defaultMultiplier      = 2.0
	defaultMaxRetries      = 3
	defaultJitter          = 0.1
)

// Config tunes a Retrier. Zero fields get defaults.
type Config struct {
	// InitialInterval delay before the first retry.
	InitialInterval time.Duration
	// MaxInterval cap on the backoff interval.
	MaxInterval time.Duration
	// Multiplier backoff growth factor per attempt.
	Multiplier float64
	// MaxRetries number of retries after the initial attempt.
	MaxRetries int
	// Jitter randomization factor (0.0 to 1.0) applied to each interval.
	Jitter float64
}

// Retrier retries a function with exponentially growing, jittered pauses.
type Retrier struct {
	cfg Config
}

// New creates a Retrier, filling unset Config fields with defaults.
func New(cfg Config) *Retrier {
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = defaultInitialInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = defaultMaxInterval
	}
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = defaultMultiplier
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.Jitter < 0 || cfg.Jitter > 1 {
		cfg.Jitter = defaultJitter
	}
	return &Retrier{cfg: cfg}
}

// Do executes fn, retrying on error until MaxRetries is exhausted or ctx is
// cancelled. The last error is returned.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	interval := r.cfg.InitialInterval

	var err error
	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			jitter := (rand.Float64()*2 - 1) * r.cfg.Jitter * float64(interval)
			pause := time.Duration(float64(interval) + jitter)
			if pause < 0 {
				pause = 0
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pause):
			}

			interval = time.Duration(float64(interval) * r.cfg.Multiplier)
			if interval > r.cfg.MaxInterval {
				interval = r.cfg.MaxInterval
			}
		}

		if err = fn(ctx); err == nil {
			return nil
		}
	}

	return err
}

// DoWithData executes fn with retries and returns its value.
func DoWithData[T any](r *Retrier, ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := r.Do(ctx, func(ctx context.Context) error {
		var e error
		result, e = fn(ctx)
		return e
	})
	return result, err
}
