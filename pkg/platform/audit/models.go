package audit

import (
	"time"
)

// EventCategory classifies audit events by their primary purpose so stores and
// sinks can apply different retention.
type EventCategory string

const (
	// CategoryCompliance covers user decisions with legal significance
	// (consent approved or cancelled).
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to abuse monitoring
	// (rejected redirect targets, malformed requests).
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity that can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted by the consent flow to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	ViewID    string
	ClientID  string
	Action    string
	Scope     string
	Decision  string
	Reason    string
	RequestID string
	ClientIP  string
	// Device is a display label derived from the User-Agent ("Chrome on macOS").
	Device string
}

type AuditEvent string

const (
	EventConsentViewed    AuditEvent = "consent_viewed"
	EventConsentApproved  AuditEvent = "consent_approved"
	EventConsentCancelled AuditEvent = "consent_cancelled"
	EventConsentFailed    AuditEvent = "consent_failed"
	EventRequestRejected  AuditEvent = "authorization_request_rejected"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventConsentApproved:  CategoryCompliance,
	EventConsentCancelled: CategoryCompliance,
	EventRequestRejected:  CategorySecurity,
	EventConsentFailed:    CategoryOperations,
	EventConsentViewed:    CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
