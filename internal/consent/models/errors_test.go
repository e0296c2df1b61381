package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "missing parameter",
			err:  &ValidationError{Field: "client_id", Reason: ReasonMissing},
			want: "Missing required parameter: client_id",
		},
		{
			name: "invalid parameter",
			err:  &ValidationError{Field: "response_type", Value: "token", Reason: ReasonInvalid},
			want: `Invalid response_type: "token"`,
		},
		{
			name: "client info failure hides details",
			err:  &GatewayError{Op: OpClientInfo, Kind: KindStatus, StatusCode: 500, Message: "db down"},
			want: "Failed to load application information. Please try again later.",
		},
		{
			name: "authorize failure shows server message",
			err:  fmt.Errorf("approve: %w", &GatewayError{Op: OpAuthorize, Kind: KindStatus, StatusCode: 400, Message: "scope not allowed"}),
			want: "Authorization failed: scope not allowed",
		},
		{
			name: "authorize transport failure",
			err:  &GatewayError{Op: OpAuthorize, Kind: KindTransport, Err: errors.New("dial tcp: refused")},
			want: "Authorization failed. Please try again.",
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: "An unexpected error occurred. Please try again later.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

func TestGatewayError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &GatewayError{Op: OpClientInfo, Kind: KindDecode, StatusCode: 200, Err: cause}
	assert.Equal(t, "client_info gateway [decode] status 200: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)
}
