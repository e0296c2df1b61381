package handler

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"

	dErrors "consentflow/pkg/domain-errors"
)

// BindingCookieName names the cookie that ties view tokens to a browser.
const BindingCookieName = "consentflow_binding"

type bindingKey struct{}

// BindBrowser makes sure the browser carries a binding cookie and exposes its
// value to handlers. View tokens are issued for that value, and actions only
// accept a token whose binding matches the cookie sent with the request. The
// cookie is SameSite=Lax, so a cross-site form post arrives without it.
func BindBrowser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		value := ""
		if c, err := r.Cookie(BindingCookieName); err == nil {
			value = c.Value
		}
		if value == "" {
			value = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     BindingCookieName,
				Value:    value,
				Path:     "/",
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), bindingKey{}, value)))
	})
}

func browserBinding(ctx context.Context) string {
	v, _ := ctx.Value(bindingKey{}).(string)
	return v
}

// checkBinding rejects a token issued to a different browser.
func checkBinding(ctx context.Context, tokenBinding string) error {
	current := browserBinding(ctx)
	if tokenBinding == "" || current == "" ||
		subtle.ConstantTimeCompare([]byte(tokenBinding), []byte(current)) != 1 {
		return dErrors.New(dErrors.CodeForbidden, "consent view belongs to another browser session")
	}
	return nil
}
