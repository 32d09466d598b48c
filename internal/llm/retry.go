package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// RetryProvider retries transient failures with jittered exponential
// backoff. Rate limits, outages and one malformed reply are retried;
// rejections, truncated replies and context errors are not.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	logger *zap.Logger
	sleep  func(context.Context, time.Duration) error
}

// WithRetry wraps p. logger may be nil.
func WithRetry(p Provider, cfg RetryConfig, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, config: cfg, logger: logger.Named("llm"), sleep: sleepCtx}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	malformed := 0
	var err error
	for attempt := 1; ; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		var inv *ErrInvalidResponse
		if errors.As(err, &inv) {
			malformed++
		}
		if attempt >= r.config.MaxAttempts || !retryable(err, malformed) {
			return nil, err
		}

		wait := r.backoff(attempt, err)
		r.logger.Info("llm retry",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.String("purpose", PurposeFrom(ctx)),
			zap.Error(err))
		if serr := r.sleep(ctx, wait); serr != nil {
			return nil, serr
		}
	}
}

// retryable reports whether another attempt could succeed. malformed is
// the number of invalid replies seen so far; only the first is retried.
func retryable(err error, malformed int) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var (
		inv  *ErrInvalidResponse
		rl   *ErrRateLimit
		down *ErrProviderUnavailable
	)
	switch {
	case errors.As(err, &inv):
		return !inv.Truncated && malformed <= 1
	case errors.As(err, &rl), errors.As(err, &down):
		return true
	default:
		return false
	}
}

// backoff returns the wait before the attempt after the given one. A
// server-provided Retry-After wins over the schedule.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait)
	for range attempt - 1 {
		wait *= r.config.Multiplier
	}
	if ceiling := float64(r.config.MaxWait); ceiling > 0 && wait > ceiling {
		wait = ceiling
	}
	// ±20% jitter
	wait *= 0.8 + 0.4*rand.Float64()
	return time.Duration(wait)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
