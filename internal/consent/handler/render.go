package handler

import (
	"bytes"
	"net/http"

	"consentflow/internal/consent/models"
	"consentflow/internal/platform/middleware"
	dErrors "consentflow/pkg/domain-errors"
)

// page is the data every template receives.
type page struct {
	Title      string
	RefreshURL string
	Token      string
	Message    string
	Client     *models.ClientInfo
	Submitting bool
}

// renderView writes the page for the view's current state.
func (h *Handler) renderView(w http.ResponseWriter, r *http.Request, v *models.View) {
	switch v.Status {
	case models.StatusError:
		h.writePage(w, r, http.StatusOK, "error.html", page{Title: "Error", Message: v.Message})
		return
	case models.StatusRedirecting:
		http.Redirect(w, r, v.RedirectURL, http.StatusSeeOther)
		return
	}

	token, err := h.tokens.IssueViewToken(v.ID, browserBinding(r.Context()), v.ExpiresAt)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	switch v.Status {
	case models.StatusLoading:
		h.writePage(w, r, http.StatusOK, "loading.html", page{
			Title:      "Loading",
			RefreshURL: "/authorize/views/" + token,
			Token:      token,
		})
	case models.StatusReady, models.StatusSubmitting:
		h.writePage(w, r, http.StatusOK, "consent.html", page{
			Title:      "Authorize " + v.Client.Name,
			Token:      token,
			Client:     v.Client,
			Submitting: v.Status == models.StatusSubmitting,
		})
	default:
		h.writeError(w, r, dErrors.New(dErrors.CodeInternal, "unknown view status "+string(v.Status)))
	}
}

// writeError renders a handler-level fault as an error page with the status
// matching its domain error code. Internal errors never expose their message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	code := dErrors.CodeInternal
	message := "An unexpected error occurred. Please try again later."
	if de, ok := dErrors.As(err); ok {
		code = de.Code
		if dErrors.HTTPStatus(code) < http.StatusInternalServerError {
			message = de.Message
		}
	}
	status := dErrors.HTTPStatus(code)

	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "consent request failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, "consent request rejected",
			"request_id", middleware.GetRequestID(ctx),
			"code", string(code),
			"error", err.Error(),
		)
	}
	h.writePage(w, r, status, "error.html", page{Title: "Error", Message: message})
}

// renderPage executes a template into memory so a template failure never
// leaves a half-written page behind.
func renderPage(name string, data page) ([]byte, error) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, status int, name string, data page) {
	body, err := renderPage(name, data)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page",
			"template", name,
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
