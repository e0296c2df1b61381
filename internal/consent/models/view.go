package models

import (
	"fmt"
	"slices"
	"time"

	dErrors "consentflow/pkg/domain-errors"
)

// ViewStatus tags which member of the consent view state is active.
type ViewStatus string

const (
	StatusLoading     ViewStatus = "loading"
	StatusError       ViewStatus = "error"
	StatusReady       ViewStatus = "ready"
	StatusSubmitting  ViewStatus = "submitting"
	StatusRedirecting ViewStatus = "redirecting"
)

// View is one consent view instance and its current state.
//
// The payload fields are meaningful only for the status that owns them:
//   - Error: Message
//   - Ready, Submitting: Client and Request
//   - Redirecting: RedirectURL
//
// Request is also retained while Loading so the lookup can run. Error and
// Redirecting are terminal; transition methods reject any other move.
type View struct {
	ID          string                `json:"id"`
	Status      ViewStatus            `json:"status"`
	Message     string                `json:"message,omitempty"`
	Request     *AuthorizationRequest `json:"request,omitempty"`
	Client      *ClientInfo           `json:"client,omitempty"`
	RedirectURL string                `json:"redirect_url,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	ExpiresAt   time.Time             `json:"expires_at"`
}

// NewLoadingView starts a view for a validated request.
func NewLoadingView(id string, req *AuthorizationRequest, now time.Time, ttl time.Duration) *View {
	return &View{
		ID:        id,
		Status:    StatusLoading,
		Request:   req,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// NewErrorView creates a view that failed before it could load.
func NewErrorView(id, message string, now time.Time, ttl time.Duration) *View {
	return &View{
		ID:        id,
		Status:    StatusError,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Ready moves a loading view to Ready with the fetched client info.
func (v *View) Ready(client *ClientInfo) error {
	if err := v.expect(StatusLoading); err != nil {
		return err
	}
	if client == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "ready view requires client info")
	}
	v.Status = StatusReady
	v.Client = client
	return nil
}

// Submit marks approval as in flight.
func (v *View) Submit() error {
	if err := v.expect(StatusReady); err != nil {
		return err
	}
	v.Status = StatusSubmitting
	return nil
}

// Redirect records the final navigation target.
func (v *View) Redirect(url string) error {
	if err := v.expect(StatusSubmitting); err != nil {
		return err
	}
	v.Status = StatusRedirecting
	v.RedirectURL = url
	v.Client = nil
	return nil
}

// Fail moves a loading or submitting view to the terminal Error state.
func (v *View) Fail(message string) error {
	if err := v.expect(StatusLoading, StatusSubmitting); err != nil {
		return err
	}
	v.Status = StatusError
	v.Message = message
	v.Client = nil
	return nil
}

// CanApprove reports whether the approve action is available.
func (v *View) CanApprove() bool {
	return v.Status == StatusReady
}

// CanCancel reports whether the cancel action is available.
func (v *View) CanCancel() bool {
	return v.Status == StatusLoading || v.Status == StatusReady
}

// IsTerminal reports whether the view can no longer change.
func (v *View) IsTerminal() bool {
	return v.Status == StatusError || v.Status == StatusRedirecting
}

// Expired reports whether the view outlived its TTL.
func (v *View) Expired(now time.Time) bool {
	return !v.ExpiresAt.IsZero() && !now.Before(v.ExpiresAt)
}

// Clone returns a deep copy so stores never share state with callers.
func (v *View) Clone() *View {
	if v == nil {
		return nil
	}
	c := *v
	if v.Request != nil {
		req := *v.Request
		c.Request = &req
	}
	if v.Client != nil {
		client := *v.Client
		client.ScopeDescriptions = slices.Clone(v.Client.ScopeDescriptions)
		c.Client = &client
	}
	return &c
}

func (v *View) expect(allowed ...ViewStatus) error {
	if slices.Contains(allowed, v.Status) {
		return nil
	}
	return dErrors.New(dErrors.CodeInvalidState, fmt.Sprintf("view is %s", v.Status))
}
