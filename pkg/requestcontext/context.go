// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware and handlers set these values; services and gateways read them
// without importing net/http.
//
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//	creds := requestcontext.Credentials(ctx)
package requestcontext

import (
	"context"
	"time"
)

type (
	clientIPKey    struct{}
	userAgentKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
	credentialsKey struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyClientIP    = clientIPKey{}
	ContextKeyUserAgent   = userAgentKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
	ContextKeyCredentials = credentialsKey{}
)

// -----------------------------------------------------------------------------
// Client metadata (IP, User-Agent)
// -----------------------------------------------------------------------------

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

// UserAgent retrieves the User-Agent from the context.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(ContextKeyUserAgent).(string); ok {
		return ua
	}
	return ""
}

// WithClientMetadata injects client IP and User-Agent into a context.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyClientIP, clientIP)
	ctx = context.WithValue(ctx, ContextKeyUserAgent, userAgent)
	return ctx
}

// -----------------------------------------------------------------------------
// Forwarded end-user credentials
// -----------------------------------------------------------------------------

// ForwardedCredentials are the end user's credentials as received by the
// consent page. Gateways replay them so the authorization service can tell
// which user is consenting.
type ForwardedCredentials struct {
	Cookie        string
	Authorization string
}

// Credentials retrieves the forwarded credentials; zero value if unset.
func Credentials(ctx context.Context) ForwardedCredentials {
	if c, ok := ctx.Value(ContextKeyCredentials).(ForwardedCredentials); ok {
		return c
	}
	return ForwardedCredentials{}
}

// WithCredentials injects forwarded credentials into a context.
func WithCredentials(ctx context.Context, creds ForwardedCredentials) context.Context {
	return context.WithValue(ctx, ContextKeyCredentials, creds)
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (background settlement, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}

// Detach returns a context that keeps the request-scoped values of parent but
// is never cancelled with it. Used for work that must outlive the request that
// started it.
func Detach(parent context.Context) context.Context {
	return context.WithoutCancel(parent)
}
