package session

import (
	"context"
	"fmt"
	"time"
)

// defaultBackoff doubles from 100ms: 100ms, 200ms, 400ms...
func defaultBackoff(attempt int) time.Duration {
	return time.Duration(50*(1<<attempt)) * time.Millisecond
}

// withRetries runs fn until it succeeds, fails with a non-transient error,
// or maxRetries attempts have been made.
func (s *Session) withRetries(ctx context.Context, op Op, fn func(ctx context.Context) error) error {
	var attempt int
	var lastErr error

	for attempt = 1; attempt <= s.maxRetries; attempt++ {
		attemptStart := time.Now()
		err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				s.logger.Printf("DEBUG: %s succeeded on attempt %d after %v", op, attempt, time.Since(attemptStart))
			}
			return nil
		}

		lastErr = err
		if !isTransient(err) {
			s.logger.Printf("DEBUG: %s failed with non-retryable error on attempt %d: %v", op, attempt, err)
			break
		}
		s.logger.Printf("DEBUG: %s failed on attempt %d with retryable error: %v. Retrying...", op, attempt, err)

		if attempt < s.maxRetries {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s interrupted after %d attempts: %w", op, attempt, lastErr)
			case <-time.After(s.backoff(attempt)):
			}
		}
	}

	if attempt > s.maxRetries {
		attempt = s.maxRetries
	}
	return fmt.Errorf("%s failed after %d attempts: %w", op, attempt, lastErr)
}
