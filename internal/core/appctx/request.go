package appctx

import (
	"context"
	"time"

	"tallerpro/internal/core/id"
)

// RequestContext carries the explicit ambient state of a request:
// the active workshop location, the acting user, and the clock.
// Aggregators and the work-order state machine receive it as an argument
// instead of reading hidden globals; Now is injected for testability.
type RequestContext struct {
	LocationID id.ID
	UserID     string
	Now        time.Time
}

type requestContextKey struct{}

// WithRequest adds RequestContext to context.
func WithRequest(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// GetRequest returns RequestContext from context, or a default built from
// the user context and the wall clock.
func GetRequest(ctx context.Context) RequestContext {
	if v, ok := ctx.Value(requestContextKey{}).(RequestContext); ok {
		return v
	}
	return RequestContext{
		UserID: GetUserID(ctx),
		Now:    time.Now().UTC(),
	}
}

// Clock returns the request time, falling back to the wall clock.
func (rc RequestContext) Clock() time.Time {
	if rc.Now.IsZero() {
		return time.Now().UTC()
	}
	return rc.Now
}

// Clock returns the request time from context.
func Clock(ctx context.Context) time.Time {
	return GetRequest(ctx).Clock()
}
