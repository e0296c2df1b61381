package service

import (
	"fmt"
	"net/url"
)

// ComposeRedirect appends code and state to redirectURI as query parameters.
// The existing query string is kept byte for byte, including any parameter
// that happens to share a name.
func ComposeRedirect(redirectURI, code, state string) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", fmt.Errorf("parse redirect uri: %w", err)
	}
	appended := url.Values{}
	appended.Set("code", code)
	appended.Set("state", state)

	if u.RawQuery == "" {
		u.RawQuery = appended.Encode()
	} else {
		u.RawQuery += "&" + appended.Encode()
	}
	return u.String(), nil
}
