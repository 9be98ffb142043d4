// Package service implements the ticket lifecycle engine: validation and
// application of status/assignment transitions, notification dispatch, and
// the query semantics behind ticket lists. The engine holds no durable state;
// every operation is a short sequence of gateway calls followed by at most
// one notification, issued sequentially.
package service

import (
	"context"
	"time"
)

const defaultCallTimeout = 10 * time.Second

// callCtx bounds a single downstream call. Operations are not cancellable
// mid-flight by callers beyond this per-call budget; a write, once issued,
// runs to completion or failure on the gateway side.
func callCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
