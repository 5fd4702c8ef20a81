package queryengine

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrWaitTimeout is returned when an execution does not reach a terminal
// state within the configured maximum wait.
var ErrWaitTimeout = errors.New("timed out waiting for query execution")

var errNotTerminal = errors.New("execution not yet terminal")

// WaitForCompletion polls an execution at a fixed interval until it reaches
// a terminal state, the maximum wait elapses, or the context is cancelled.
// FAILED and CANCELLED surface as *ExecutionError; only SUCCEEDED returns nil.
func WaitForCompletion(ctx context.Context, eng Engine, executionID string, interval, maxWait time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = interval
	b.Multiplier = 1 // fixed interval, this is a wait, not a retry-after-failure
	b.RandomizationFactor = 0
	b.MaxInterval = interval
	b.MaxElapsedTime = maxWait

	op := func() error {
		status, err := eng.QueryStatus(ctx, executionID)
		if err != nil {
			return backoff.Permanent(err)
		}
		switch status.State {
		case StateSucceeded:
			return nil
		case StateFailed, StateCancelled:
			return backoff.Permanent(&ExecutionError{
				ExecutionID: executionID,
				State:       status.State,
				Reason:      status.FailureReason,
			})
		default:
			return errNotTerminal
		}
	}

	err := backoff.Retry(op, backoff.WithContext(b, ctx))
	if errors.Is(err, errNotTerminal) {
		return ErrWaitTimeout
	}
	return err
}

// RunToCompletion submits a query, waits for it to finish, and fetches the
// results.
func RunToCompletion(ctx context.Context, eng Engine, q Query, interval, maxWait time.Duration) (*Result, error) {
	id, err := eng.SubmitQuery(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := WaitForCompletion(ctx, eng, id, interval, maxWait); err != nil {
		return nil, err
	}
	return eng.QueryResults(ctx, id)
}
