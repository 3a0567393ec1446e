package export

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/dgo/v210/protos/api"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// retryBackoff is the wait after a failed attempt: 100ms, 200ms, 400ms...
var retryBackoff = func(attempt int) time.Duration {
	return time.Duration(50*(1<<attempt)) * time.Millisecond
}

// isRetryable reports whether err carries a gRPC code that indicates a
// transient issue.
func isRetryable(err error) bool {
	errStatus, ok := status.FromError(err)
	if !ok {
		return false
	}
	switch errStatus.Code() {
	case codes.DeadlineExceeded, codes.Unavailable, codes.ResourceExhausted:
		return true
	default:
		return false
	}
}

// doWithRetries runs req in a fresh transaction per attempt, retrying
// transient errors with exponential backoff.
func (e *DgraphExporter) doWithRetries(ctx context.Context, req *api.Request, maxRetries int) (*api.Response, error) {
	var attempt int
	var lastErr error

	for attempt = 1; attempt <= maxRetries; attempt++ {
		attemptStart := time.Now()

		// Create a shorter timeout for each attempt to allow for retries
		attemptCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		resp, err := e.newTxn().Do(attemptCtx, req)
		cancel()

		if err == nil {
			if e.debug && attempt > 1 {
				e.logger.Printf("DEBUG: Upsert succeeded on attempt %d after %v",
					attempt, time.Since(attemptStart))
			}
			return resp, nil
		}

		lastErr = err
		if !isRetryable(err) {
			if e.debug {
				e.logger.Printf("DEBUG: Upsert failed with non-retryable error on attempt %d: %v",
					attempt, err)
			}
			break
		}

		if e.debug {
			e.logger.Printf("DEBUG: Upsert failed on attempt %d with retryable error: %v. Retrying...",
				attempt, err)
		}

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("upsert cancelled after %d attempts: %w", attempt, ctx.Err())
			case <-time.After(retryBackoff(attempt)):
			}
		}
	}

	if attempt > maxRetries {
		attempt = maxRetries
	}
	return nil, fmt.Errorf("upsert failed after %d attempts: %w", attempt, lastErr)
}
