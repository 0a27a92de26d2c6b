package acquire

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tabmark"
)

// SnapshotFunc acquires one target.
type SnapshotFunc func(ctx context.Context, target string) (*tabmark.RawDocument, error)

// DefaultRetryDelays returns the backoff delays between attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// SnapshotWithRetry calls snapshot until it succeeds, waiting delays[i]
// before attempt i+2. Errors that cannot succeed on a second try
// (invalid input, no target, unparseable markup) are returned immediately.
// Retries are logged at debug level when logger is non-nil.
func SnapshotWithRetry(ctx context.Context, target string, snapshot SnapshotFunc, logger *slog.Logger, delays []time.Duration) (*tabmark.RawDocument, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		doc, err := snapshot(ctx, target)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || permanent(err) {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if logger != nil {
			logger.Debug("retry", "url", target, "attempt", attempt+2, "err", err)
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

func permanent(err error) bool {
	switch tabmark.ErrorCode(err) {
	case tabmark.EINVALID, tabmark.ENOTFOUND, tabmark.ENOTARGET, tabmark.EPARSE:
		return true
	}
	return false
}
