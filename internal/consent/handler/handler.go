// Package handler serves the server-rendered consent pages.
package handler

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"consentflow/internal/consent/models"
	"consentflow/internal/consent/service"
	jwttoken "consentflow/internal/jwt_token"
	"consentflow/internal/platform/middleware"
	dErrors "consentflow/pkg/domain-errors"
	"consentflow/pkg/requestcontext"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const defaultRenderWait = 2 * time.Second

// Controller drives consent views.
type Controller interface {
	Mount(ctx context.Context, params url.Values) (*models.View, <-chan struct{}, error)
	View(ctx context.Context, id string) (*models.View, error)
	Approve(ctx context.Context, id string, nav service.Navigator) (*models.View, error)
	Cancel(ctx context.Context, id string, nav service.Navigator) error
}

// ViewTokens signs and verifies the view handles embedded in pages.
type ViewTokens interface {
	IssueViewToken(viewID, binding string, expiresAt time.Time) (string, error)
	ValidateViewToken(token string) (*jwttoken.ViewClaims, error)
}

// Handler renders consent views and dispatches the user's actions.
type Handler struct {
	controller Controller
	tokens     ViewTokens
	logger     *slog.Logger
	renderWait time.Duration
}

// New creates a consent Handler. renderWait bounds how long a page load waits
// for the client lookup before rendering the loading page instead.
func New(controller Controller, tokens ViewTokens, logger *slog.Logger, renderWait time.Duration) *Handler {
	if renderWait <= 0 {
		renderWait = defaultRenderWait
	}
	return &Handler{
		controller: controller,
		tokens:     tokens,
		logger:     logger,
		renderWait: renderWait,
	}
}

// Register registers the consent routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.SecurityHeaders)
		r.Use(ForwardCredentials)
		r.Use(BindBrowser)
		r.Get("/", h.handleHome)
		r.Get("/authorize", h.handleAuthorize)
		r.Get("/authorize/views/{token}", h.handleShowView)
		r.Post("/authorize/approve", h.handleApprove)
		r.Post("/authorize/cancel", h.handleCancel)
	})
}

// ForwardCredentials captures the end user's Cookie and Authorization headers
// so gateway calls made on the user's behalf can replay them.
func ForwardCredentials(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithCredentials(r.Context(), requestcontext.ForwardedCredentials{
			Cookie:        r.Header.Get("Cookie"),
			Authorization: r.Header.Get("Authorization"),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, http.StatusOK, "home.html", page{Title: "Consent"})
}

// handleAuthorize mounts a view for the inbound authorization request and
// renders it once it settles, or the loading page if it has not settled
// within renderWait.
func (h *Handler) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	v, settled, err := h.controller.Mount(ctx, r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	timer := time.NewTimer(h.renderWait)
	defer timer.Stop()
	select {
	case <-settled:
	case <-timer.C:
	case <-ctx.Done():
		return
	}

	current, err := h.controller.View(ctx, v.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.renderView(w, r, current)
}

func (h *Handler) handleShowView(w http.ResponseWriter, r *http.Request) {
	viewID, err := h.viewID(r, chi.URLParam(r, "token"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	v, err := h.controller.View(r.Context(), viewID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.renderView(w, r, v)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid form"))
		return
	}
	viewID, err := h.viewID(r, r.PostForm.Get("view"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	nav := newHTTPNavigator(w, r, 1)
	v, err := h.controller.Approve(ctx, viewID, nav)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if nav.navigated {
		return
	}
	h.renderView(w, r, v)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid form"))
		return
	}
	viewID, err := h.viewID(r, r.PostForm.Get("view"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	nav := newHTTPNavigator(w, r, parseHistoryLength(r.PostForm.Get("history_length")))
	if err := h.controller.Cancel(r.Context(), viewID, nav); err != nil {
		h.writeError(w, r, err)
		return
	}
}

// viewID resolves a view token sent by this browser to the view it names.
func (h *Handler) viewID(r *http.Request, token string) (string, error) {
	if token == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "missing view token")
	}
	claims, err := h.tokens.ValidateViewToken(token)
	if err != nil {
		return "", err
	}
	if err := checkBinding(r.Context(), claims.Binding); err != nil {
		return "", err
	}
	return claims.ViewID(), nil
}
