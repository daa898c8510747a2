package store

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	retryBaseDelay  = 50 * time.Millisecond
	retryMaxRetries = 2
)

// withRetry runs fn and repeats it while the classifier reports the error as
// [Retryable]. Other errors are returned on the first attempt.
func (db *DB) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(retryMaxRetries, retry.NewExponential(retryBaseDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
			if db.logger != nil {
				db.logger.Debug().Err(err).Msg("retrying database operation")
			}
			return retry.RetryableError(err)
		}
		return err
	})
}
