package middleware

import "context"

// SetRequestIDForTest injects a request id into the context without running
// the HTTP middleware.
func SetRequestIDForTest(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, id)
}
