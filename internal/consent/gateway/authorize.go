package gateway

import (
	"context"
	"net/http"
	"net/url"

	"consentflow/internal/consent/models"
)

type authorizeResponse struct {
	Code string `json:"code"`
}

// Authorize exchanges the user's approval for an authorization code. The
// request parameters travel in the query string; the body is empty.
func (c *Client) Authorize(ctx context.Context, req *models.AuthorizationRequest) (*models.AuthorizationResult, error) {
	query := url.Values{}
	query.Set("client_id", req.ClientID)
	query.Set("redirect_uri", req.RedirectURI)
	query.Set("response_type", req.ResponseType)
	query.Set("scope", req.Scope)
	query.Set("code_challenge", req.CodeChallenge)
	query.Set("code_challenge_method", req.CodeChallengeMethod)

	var resp authorizeResponse
	if err := c.do(ctx, models.OpAuthorize, http.MethodPost, authorizePath, query, &resp); err != nil {
		return nil, err
	}
	if resp.Code == "" {
		return nil, decodeError(models.OpAuthorize, "response has no code")
	}
	return &models.AuthorizationResult{Code: resp.Code}, nil
}
