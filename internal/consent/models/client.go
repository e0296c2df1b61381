package models

// ClientInfo is the requesting application's display metadata.
type ClientInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// DisplayDescription is the description shown on the consent view; it
	// already holds Description when the service sent no display text.
	DisplayDescription  string   `json:"display_description"`
	PreviouslyConsented bool     `json:"previously_consented"`
	ScopeDescriptions   []string `json:"scope_descriptions"`
}

// AuthorizationResult carries the code issued for an approved request.
type AuthorizationResult struct {
	Code string
}
