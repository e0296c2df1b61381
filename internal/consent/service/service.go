// Package service drives the consent view state machine.
//
// A view is mounted from the inbound query string, loads the requesting
// client's metadata in the background and then waits for the user to approve
// or cancel. Every transition is applied through the ViewStore as a
// compare-and-swap, so a result that arrives after the view was torn down, or
// a second approval racing the first, is discarded instead of applied.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"consentflow/internal/consent/models"
	"consentflow/internal/platform/device"
	"consentflow/internal/platform/metrics"
	dErrors "consentflow/pkg/domain-errors"
	audit "consentflow/pkg/platform/audit"
	platformstrings "consentflow/pkg/platform/strings"
	"consentflow/pkg/platform/sentinel"
	"consentflow/pkg/requestcontext"
)

const defaultViewTTL = 15 * time.Minute

// Controller owns the consent view lifecycle.
type Controller struct {
	clients        ClientInfoGateway
	authorizer     AuthorizationGateway
	store          ViewStore
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	logger         *slog.Logger
	viewTTL        time.Duration
	allowedHosts   map[string]struct{}
	newID          func() string

	loads sync.WaitGroup
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(c *Controller) {
		c.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithViewTTL sets how long a view stays actionable after it is mounted.
func WithViewTTL(ttl time.Duration) Option {
	return func(c *Controller) {
		if ttl > 0 {
			c.viewTTL = ttl
		}
	}
}

// WithRedirectHosts restricts redirect_uri to the given hosts. An empty list
// allows any host.
func WithRedirectHosts(hosts []string) Option {
	return func(c *Controller) {
		for _, h := range platformstrings.DedupeAndTrimLower(hosts) {
			if c.allowedHosts == nil {
				c.allowedHosts = make(map[string]struct{})
			}
			c.allowedHosts[h] = struct{}{}
		}
	}
}

// WithIDGenerator overrides how view IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

func New(clients ClientInfoGateway, authorizer AuthorizationGateway, store ViewStore, opts ...Option) (*Controller, error) {
	if clients == nil {
		return nil, fmt.Errorf("client info gateway is required")
	}
	if authorizer == nil {
		return nil, fmt.Errorf("authorization gateway is required")
	}
	if store == nil {
		return nil, fmt.Errorf("view store is required")
	}

	c := &Controller{
		clients:    clients,
		authorizer: authorizer,
		store:      store,
		viewTTL:    defaultViewTTL,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c, nil
}

// Mount creates a view for the inbound query parameters. An invalid request
// produces a view already in the Error state. A valid one starts in Loading
// while the client lookup runs in the background; the returned channel is
// closed once the view has settled to Ready or Error.
func (c *Controller) Mount(ctx context.Context, params url.Values) (*models.View, <-chan struct{}, error) {
	now := requestcontext.Now(ctx)
	id := c.newID()
	done := make(chan struct{})

	req, err := models.ParseAuthorizationRequest(params)
	if err == nil {
		err = c.checkRedirectHost(req)
	}
	if err != nil {
		v := models.NewErrorView(id, models.ErrorMessage(err), now, c.viewTTL)
		if err := c.store.Create(ctx, v); err != nil {
			return nil, nil, c.storeError(err, "failed to create consent view")
		}
		close(done)
		c.metrics.IncViewMounted(string(v.Status))
		c.logger.InfoContext(ctx, "authorization request rejected",
			"view_id", id,
			"reason", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		c.emit(ctx, audit.EventRequestRejected, v, params.Get("client_id"), params.Get("scope"), "", err.Error())
		return v, done, nil
	}

	v := models.NewLoadingView(id, req, now, c.viewTTL)
	if err := c.store.Create(ctx, v); err != nil {
		return nil, nil, c.storeError(err, "failed to create consent view")
	}
	c.metrics.IncViewMounted(string(v.Status))

	c.loads.Add(1)
	go func() {
		defer c.loads.Done()
		defer close(done)
		c.load(requestcontext.Detach(ctx), id, req)
	}()
	return v, done, nil
}

// load runs the client lookup once and settles the view. The lookup outlives
// the request that mounted the view, so it runs on a detached context.
func (c *Controller) load(ctx context.Context, id string, req *models.AuthorizationRequest) {
	info, lookupErr := c.clients.ClientInfo(ctx, req)
	ctx = requestcontext.WithTime(ctx, time.Now())

	settled, err := c.store.Update(ctx, id, func(v *models.View) error {
		if lookupErr != nil {
			return v.Fail(models.ErrorMessage(lookupErr))
		}
		return v.Ready(info)
	})
	if err != nil {
		c.metrics.IncViewSettled("discarded")
		c.logger.InfoContext(ctx, "client lookup result discarded",
			"view_id", id,
			"reason", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return
	}
	c.metrics.IncViewSettled(string(settled.Status))

	if lookupErr != nil {
		c.logger.WarnContext(ctx, "client lookup failed",
			"view_id", id,
			"client_id", req.ClientID,
			"error", lookupErr.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		c.emit(ctx, audit.EventConsentFailed, settled, req.ClientID, req.Scope, "", lookupErr.Error())
		return
	}
	c.emit(ctx, audit.EventConsentViewed, settled, req.ClientID, req.Scope, "", "")
}

// View returns the current state of a view.
func (c *Controller) View(ctx context.Context, id string) (*models.View, error) {
	v, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, c.storeError(err, "failed to load consent view")
	}
	return v, nil
}

// Approve submits the user's approval. Only a Ready view can be approved, and
// only once. On success the view ends in Redirecting and nav has been sent to
// the client's redirect URI; on a gateway failure the view ends in Error and
// nav is untouched. If ctx is cancelled before the gateway answers, the answer
// is discarded, the view is torn down and nothing navigates.
func (c *Controller) Approve(ctx context.Context, id string, nav Navigator) (*models.View, error) {
	submitting, err := c.store.Update(ctx, id, func(v *models.View) error {
		return v.Submit()
	})
	if err != nil {
		c.metrics.IncDecision("approve", "rejected")
		return nil, c.storeError(err, "approve is not available for this consent view")
	}
	req := submitting.Request

	result, authErr := c.authorizer.Authorize(ctx, req)
	if ctxErr := ctx.Err(); ctxErr != nil {
		c.metrics.IncDecision("approve", "abandoned")
		if err := c.store.Delete(requestcontext.Detach(ctx), id); err != nil {
			c.logger.WarnContext(ctx, "failed to tear down abandoned consent view", "view_id", id, "error", err.Error())
		}
		return nil, dErrors.Wrap(ctxErr, dErrors.CodeTimeout, "approval abandoned before the authorization service answered")
	}
	if authErr != nil {
		return c.fail(ctx, id, req, authErr)
	}

	target, err := ComposeRedirect(req.RedirectURI, result.Code, req.State)
	if err != nil {
		return c.fail(ctx, id, req, err)
	}

	redirecting, err := c.store.Update(ctx, id, func(v *models.View) error {
		return v.Redirect(target)
	})
	if err != nil {
		c.metrics.IncDecision("approve", "discarded")
		return nil, c.storeError(err, "consent view ended before the redirect")
	}

	nav.Redirect(target)
	c.metrics.IncDecision("approve", "redirected")
	c.logger.InfoContext(ctx, "consent approved",
		"view_id", id,
		"client_id", req.ClientID,
		"request_id", requestcontext.RequestID(ctx),
	)
	c.emit(ctx, audit.EventConsentApproved, redirecting, req.ClientID, req.Scope, "approved", "")
	return redirecting, nil
}

// Cancel leaves the consent view through the cancel navigation policy and
// tears the view down. The view state itself is not changed.
func (c *Controller) Cancel(ctx context.Context, id string, nav Navigator) error {
	v, err := c.store.Get(ctx, id)
	if err != nil {
		c.metrics.IncDecision("cancel", "rejected")
		return c.storeError(err, "failed to load consent view")
	}
	if !v.CanCancel() {
		c.metrics.IncDecision("cancel", "rejected")
		return dErrors.New(dErrors.CodeInvalidState, "cancel is not available for this consent view")
	}

	CancelNavigation(nav)

	if err := c.store.Delete(ctx, id); err != nil {
		c.logger.WarnContext(ctx, "failed to tear down cancelled consent view", "view_id", id, "error", err.Error())
	}
	c.metrics.IncDecision("cancel", "navigated")

	var clientID, scope string
	if v.Request != nil {
		clientID, scope = v.Request.ClientID, v.Request.Scope
	}
	c.emit(ctx, audit.EventConsentCancelled, v, clientID, scope, "cancelled", "")
	return nil
}

// Wait blocks until background client lookups have settled or ctx is done.
func (c *Controller) Wait(ctx context.Context) error {
	finished := make(chan struct{})
	go func() {
		c.loads.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) fail(ctx context.Context, id string, req *models.AuthorizationRequest, cause error) (*models.View, error) {
	failed, err := c.store.Update(ctx, id, func(v *models.View) error {
		return v.Fail(models.ErrorMessage(cause))
	})
	if err != nil {
		c.metrics.IncDecision("approve", "discarded")
		return nil, c.storeError(err, "consent view ended before the failure was recorded")
	}
	c.metrics.IncDecision("approve", "failed")
	c.logger.WarnContext(ctx, "authorization failed",
		"view_id", id,
		"client_id", req.ClientID,
		"error", cause.Error(),
		"request_id", requestcontext.RequestID(ctx),
	)
	c.emit(ctx, audit.EventConsentFailed, failed, req.ClientID, req.Scope, "", cause.Error())
	return failed, nil
}

func (c *Controller) checkRedirectHost(req *models.AuthorizationRequest) error {
	if len(c.allowedHosts) == 0 {
		return nil
	}
	if _, ok := c.allowedHosts[req.RedirectHost()]; ok {
		return nil
	}
	return &models.ValidationError{
		Field:  "redirect_uri",
		Value:  req.RedirectURI,
		Reason: models.ReasonInvalid,
		Detail: "host is not allowed",
	}
}

// storeError translates store failures into domain errors. Transition
// rejections from the view are already domain errors and pass through.
func (c *Controller) storeError(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound), errors.Is(err, sentinel.ErrExpired):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "consent view not found or expired")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "consent view was changed concurrently")
	case dErrors.HasCode(err, dErrors.CodeInvalidState):
		return dErrors.Wrap(err, dErrors.CodeInvalidState, msg)
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

func (c *Controller) emit(ctx context.Context, action audit.AuditEvent, v *models.View, clientID, scope, decision, reason string) {
	if c.auditPublisher == nil {
		return
	}
	event := audit.Event{
		Timestamp: requestcontext.Now(ctx),
		ViewID:    v.ID,
		ClientID:  clientID,
		Action:    string(action),
		Scope:     scope,
		Decision:  decision,
		Reason:    reason,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		Device:    device.ParseUserAgent(requestcontext.UserAgent(ctx)),
	}
	if err := c.auditPublisher.Emit(ctx, event); err != nil {
		c.logger.WarnContext(ctx, "failed to emit audit event",
			"action", string(action),
			"view_id", v.ID,
			"error", err.Error(),
		)
	}
}
