package testutil

import (
	"context"
	"net/http"

	"consentflow/pkg/requestcontext"
)

// WithRequestID adds a request ID to the request context.
// This simulates what the request ID middleware would do.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithCredentials adds forwarded end-user credentials to the request context.
// This simulates what the credential forwarding middleware would do.
func WithCredentials(req *http.Request, cookie, authorization string) *http.Request {
	ctx := requestcontext.WithCredentials(req.Context(), requestcontext.ForwardedCredentials{
		Cookie:        cookie,
		Authorization: authorization,
	})
	return req.WithContext(ctx)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), key, value))
}
