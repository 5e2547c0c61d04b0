package logtail

import (
	"context"
	"time"

	"github.com/buildkite/jenkins-tail/api"
	"github.com/buildkite/jenkins-tail/logger"
	"github.com/buildkite/roko"
)

type RetryConfig struct {
	// Retries is how many times a failed request is sent again. Zero
	// disables retrying.
	Retries int

	// Interval is the wait between attempts.
	Interval time.Duration
}

// RetryingFetcher retries requests that failed in a way that might not
// happen again, such as a refused connection or a 503. A failed request
// writes nothing and doesn't move the offset, so the retry asks for the same
// bytes.
type RetryingFetcher struct {
	fetcher Fetcher
	logger  logger.Logger
	conf    RetryConfig
}

func NewRetryingFetcher(l logger.Logger, f Fetcher, conf RetryConfig) *RetryingFetcher {
	return &RetryingFetcher{
		fetcher: f,
		logger:  l,
		conf:    conf,
	}
}

func (f *RetryingFetcher) ProgressiveText(ctx context.Context, offset uint64) (*api.ProgressiveText, error) {
	if f.conf.Retries <= 0 {
		return f.fetcher.ProgressiveText(ctx, offset)
	}

	r := roko.NewRetrier(
		roko.WithMaxAttempts(f.conf.Retries+1),
		roko.WithStrategy(roko.Constant(f.conf.Interval)),
	)

	return roko.DoFunc(ctx, r, func(r *roko.Retrier) (*api.ProgressiveText, error) {
		pt, err := f.fetcher.ProgressiveText(ctx, offset)
		if err == nil {
			return pt, nil
		}

		if !api.IsRetryable(err) || ctx.Err() != nil {
			r.Break()
			return nil, err
		}

		f.logger.Warn("%s (%s)", err, r)
		return nil, err
	})
}
