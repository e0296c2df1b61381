package service

import (
	"context"

	"consentflow/internal/consent/models"
	audit "consentflow/pkg/platform/audit"
)

// ClientInfoGateway looks up the requesting client's display metadata.
type ClientInfoGateway interface {
	ClientInfo(ctx context.Context, req *models.AuthorizationRequest) (*models.ClientInfo, error)
}

// AuthorizationGateway exchanges the user's approval for an authorization code.
type AuthorizationGateway interface {
	Authorize(ctx context.Context, req *models.AuthorizationRequest) (*models.AuthorizationResult, error)
}

// ViewStore holds view instances between requests. Update must apply fn
// atomically against the stored view; Get and Update report missing or expired
// views as sentinel.ErrNotFound.
type ViewStore interface {
	Create(ctx context.Context, v *models.View) error
	Get(ctx context.Context, id string) (*models.View, error)
	Update(ctx context.Context, id string, fn func(*models.View) error) (*models.View, error)
	Delete(ctx context.Context, id string) error
}

// AuditPublisher records consent decisions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
