package gateway

import (
	"context"
	"net/http"
	"net/url"

	"consentflow/internal/consent/models"
)

type scopesResponse struct {
	Data *scopesData `json:"data"`
}

type scopesData struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	DisplayDescription  *string  `json:"display_description"`
	PreviouslyConsented *bool    `json:"previously_consented"`
	ScopeDescription    []string `json:"scope_description"`
}

// ClientInfo looks up the display metadata of the requesting client.
// It is called once per page load and never retried.
func (c *Client) ClientInfo(ctx context.Context, req *models.AuthorizationRequest) (*models.ClientInfo, error) {
	query := url.Values{}
	query.Set("client_id", req.ClientID)
	query.Set("scope", req.Scope)

	var resp scopesResponse
	if err := c.do(ctx, models.OpClientInfo, http.MethodGet, scopesPath, query, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, decodeError(models.OpClientInfo, "response has no data object")
	}
	return toClientInfo(resp.Data), nil
}

func toClientInfo(d *scopesData) *models.ClientInfo {
	info := &models.ClientInfo{
		Name:                d.Name,
		Description:         d.Description,
		DisplayDescription:  d.Description,
		PreviouslyConsented: d.PreviouslyConsented != nil && *d.PreviouslyConsented,
		ScopeDescriptions:   []string{},
	}
	if d.DisplayDescription != nil && *d.DisplayDescription != "" {
		info.DisplayDescription = *d.DisplayDescription
	}
	if d.ScopeDescription != nil {
		info.ScopeDescriptions = d.ScopeDescription
	}
	return info
}
