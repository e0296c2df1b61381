// Package callback is the stand-in client redirect target used in
// development. It receives the authorization code and logs it.
package callback

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"consentflow/pkg/requestcontext"
)

const successMessage = "Auth successful! Check your console."

// Handler serves GET /callback.
type Handler struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/callback", h.handleCallback)
}

func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.logger.InfoContext(r.Context(), "authorization callback received",
		"code", q.Get("code"),
		"state", q.Get("state"),
		"error", q.Get("error"),
		"request_id", requestcontext.RequestID(r.Context()),
	)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(successMessage))
}
