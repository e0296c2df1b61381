package models

import (
	"errors"
	"fmt"
)

// ValidationReason distinguishes a missing parameter from a present but
// unacceptable one.
type ValidationReason string

const (
	ReasonMissing ValidationReason = "missing"
	ReasonInvalid ValidationReason = "invalid"
)

// ValidationError names the first inbound parameter that failed validation.
type ValidationError struct {
	Field  string
	Value  string
	Reason ValidationReason
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Reason == ReasonMissing {
		return fmt.Sprintf("Missing required parameter: %s", e.Field)
	}
	msg := fmt.Sprintf("Invalid %s: %q", e.Field, e.Value)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// GatewayOp identifies which outbound call failed.
type GatewayOp string

const (
	OpClientInfo GatewayOp = "client_info"
	OpAuthorize  GatewayOp = "authorize"
)

// GatewayErrorKind records why a gateway call failed. The controller treats
// every kind the same; the kind only feeds logs and metrics.
type GatewayErrorKind string

const (
	KindStatus      GatewayErrorKind = "status"
	KindDecode      GatewayErrorKind = "decode"
	KindTransport   GatewayErrorKind = "transport"
	KindUnavailable GatewayErrorKind = "unavailable"
)

// GatewayError is returned by both gateway calls.
type GatewayError struct {
	Op         GatewayOp
	Kind       GatewayErrorKind
	StatusCode int
	// Message is the server-provided explanation, when the body carried one.
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("%s gateway [%s]", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// UserMessage is the text shown on the error view.
func (e *GatewayError) UserMessage() string {
	switch e.Op {
	case OpClientInfo:
		return "Failed to load application information. Please try again later."
	case OpAuthorize:
		if e.Message != "" {
			return "Authorization failed: " + e.Message
		}
		return "Authorization failed. Please try again."
	default:
		return "Request failed. Please try again later."
	}
}

// ErrorMessage converts any error reaching the controller boundary into the
// human-readable text of the terminal Error state.
func ErrorMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge.UserMessage()
	}
	return "An unexpected error occurred. Please try again later."
}
