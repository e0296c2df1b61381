package models

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() url.Values {
	return url.Values{
		"client_id":             {"8f9a0002-ae0f-4412-ac4c-902f1e88e5ff"},
		"scope":                 {"conversion"},
		"state":                 {"-G2EoDooYcrJ5p8EF1AM677T8BvnSMxQMU4HtUjoQ4Y"},
		"redirect_uri":          {"https://zapier.com/dashboard/auth/oauth/return/App222291CLIAPI/"},
		"response_type":         {"code"},
		"code_challenge":        {"BSupaW6JDyiPDgU4HM8wkLj94DELW0BvsxPAoO2d5XA"},
		"code_challenge_method": {"S256"},
	}
}

func TestParseAuthorizationRequest_Valid(t *testing.T) {
	req, err := ParseAuthorizationRequest(validParams())
	require.NoError(t, err)
	assert.Equal(t, "8f9a0002-ae0f-4412-ac4c-902f1e88e5ff", req.ClientID)
	assert.Equal(t, "conversion", req.Scope)
	assert.Equal(t, "-G2EoDooYcrJ5p8EF1AM677T8BvnSMxQMU4HtUjoQ4Y", req.State)
	assert.Equal(t, "code", req.ResponseType)
	assert.Equal(t, "S256", req.CodeChallengeMethod)
	assert.Equal(t, "zapier.com", req.RedirectHost())
}

func TestParseAuthorizationRequest_RequiredParams(t *testing.T) {
	for _, name := range requiredParams {
		t.Run(name+" missing", func(t *testing.T) {
			params := validParams()
			params.Del(name)

			_, err := ParseAuthorizationRequest(params)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, name, ve.Field)
			assert.Equal(t, ReasonMissing, ve.Reason)
			assert.Contains(t, ve.Error(), name)
		})

		t.Run(name+" empty", func(t *testing.T) {
			params := validParams()
			params.Set(name, "")

			_, err := ParseAuthorizationRequest(params)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, name, ve.Field)
			assert.Equal(t, ReasonMissing, ve.Reason)
		})
	}
}

func TestParseAuthorizationRequest_ReportsFirstMissingInOrder(t *testing.T) {
	params := validParams()
	params.Del("code_challenge")
	params.Del("scope")
	params.Del("redirect_uri")

	_, err := ParseAuthorizationRequest(params)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "scope", ve.Field)
}

func TestParseAuthorizationRequest_StateIsOptional(t *testing.T) {
	params := validParams()
	params.Del("state")

	req, err := ParseAuthorizationRequest(params)
	require.NoError(t, err)
	assert.Empty(t, req.State)
}

func TestParseAuthorizationRequest_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{name: "token response type", field: "response_type", value: "token"},
		{name: "uppercase response type", field: "response_type", value: "CODE"},
		{name: "plain challenge method", field: "code_challenge_method", value: "plain"},
		{name: "lowercase challenge method", field: "code_challenge_method", value: "s256"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			params.Set(tt.field, tt.value)

			_, err := ParseAuthorizationRequest(params)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, ReasonInvalid, ve.Reason)
			assert.Contains(t, ve.Error(), "Invalid "+tt.field)
			assert.Contains(t, ve.Error(), tt.value)
		})
	}
}

func TestParseAuthorizationRequest_LiteralChecksFollowPresence(t *testing.T) {
	params := validParams()
	params.Set("response_type", "token")
	params.Del("code_challenge")

	_, err := ParseAuthorizationRequest(params)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "code_challenge", ve.Field)
	assert.Equal(t, ReasonMissing, ve.Reason)
}

func TestParseAuthorizationRequest_RedirectURIShape(t *testing.T) {
	for _, raw := range []string{
		"javascript:alert(1)",
		"/relative/path",
		"https://",
		"https://app.example.com/cb#frag",
		"://bad",
	} {
		t.Run(raw, func(t *testing.T) {
			params := validParams()
			params.Set("redirect_uri", raw)

			_, err := ParseAuthorizationRequest(params)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "redirect_uri", ve.Field)
			assert.Equal(t, ReasonInvalid, ve.Reason)
		})
	}

	params := validParams()
	params.Set("redirect_uri", "http://localhost:3000/callback?app=1")
	_, err := ParseAuthorizationRequest(params)
	assert.NoError(t, err)
}

func TestAuthorizationRequest_Scopes(t *testing.T) {
	req := &AuthorizationRequest{Scope: "read  write conversion"}
	assert.Equal(t, []string{"read", "write", "conversion"}, req.Scopes())
}
