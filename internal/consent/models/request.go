package models

import (
	"net/url"
	"strings"
)

const (
	ResponseTypeCode = "code"
	ChallengeS256    = "S256"
)

// AuthorizationRequest is the validated set of parameters a requesting
// application sent to start the consent flow. Build it with
// ParseAuthorizationRequest; it is not modified afterwards.
type AuthorizationRequest struct {
	ClientID            string `json:"client_id"`
	Scope               string `json:"scope"`
	State               string `json:"state"`
	RedirectURI         string `json:"redirect_uri"`
	ResponseType        string `json:"response_type"`
	CodeChallenge       string `json:"code_challenge"`
	CodeChallengeMethod string `json:"code_challenge_method"`
}

// requiredParams is the order in which presence is checked; the first
// missing field is the one reported.
var requiredParams = []string{
	"client_id",
	"scope",
	"redirect_uri",
	"response_type",
	"code_challenge",
	"code_challenge_method",
}

// ParseAuthorizationRequest validates inbound query parameters.
//
// Presence is checked first in requiredParams order, then the literal values of
// response_type and code_challenge_method, then the shape of redirect_uri.
// state is optional and passed through unchanged.
func ParseAuthorizationRequest(params url.Values) (*AuthorizationRequest, error) {
	for _, name := range requiredParams {
		if params.Get(name) == "" {
			return nil, &ValidationError{Field: name, Reason: ReasonMissing}
		}
	}

	req := &AuthorizationRequest{
		ClientID:            params.Get("client_id"),
		Scope:               params.Get("scope"),
		State:               params.Get("state"),
		RedirectURI:         params.Get("redirect_uri"),
		ResponseType:        params.Get("response_type"),
		CodeChallenge:       params.Get("code_challenge"),
		CodeChallengeMethod: params.Get("code_challenge_method"),
	}

	if req.ResponseType != ResponseTypeCode {
		return nil, &ValidationError{Field: "response_type", Value: req.ResponseType, Reason: ReasonInvalid}
	}
	if req.CodeChallengeMethod != ChallengeS256 {
		return nil, &ValidationError{Field: "code_challenge_method", Value: req.CodeChallengeMethod, Reason: ReasonInvalid}
	}
	if detail := checkRedirectURI(req.RedirectURI); detail != "" {
		return nil, &ValidationError{Field: "redirect_uri", Value: req.RedirectURI, Reason: ReasonInvalid, Detail: detail}
	}
	return req, nil
}

// RedirectHost returns the lowercased host of the redirect URI.
func (r *AuthorizationRequest) RedirectHost() string {
	u, err := url.Parse(r.RedirectURI)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// Scopes splits the space-delimited scope parameter.
func (r *AuthorizationRequest) Scopes() []string {
	return strings.Fields(r.Scope)
}

func checkRedirectURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "not a valid URL"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "scheme must be http or https"
	}
	if u.Host == "" {
		return "host is required"
	}
	if u.Fragment != "" {
		return "fragment is not allowed"
	}
	return ""
}
