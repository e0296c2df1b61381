// Package jwttoken signs the handle that identifies a consent view in forms
// and view URLs. A handle is an HS256 JWT whose subject is the view ID, so an
// action can only target a view this service rendered. The token also carries
// the browser binding it was issued to, so a handle lifted from one browser
// cannot drive the view from another.
package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "consentflow/pkg/domain-errors"
)

// ViewClaims are the claims carried by a view token.
type ViewClaims struct {
	Binding string `json:"bnd,omitempty"`
	jwt.RegisteredClaims
}

// ViewID returns the view the token refers to.
func (c *ViewClaims) ViewID() string {
	return c.Subject
}

// JWTService issues and verifies view tokens.
type JWTService struct {
	signingKey []byte
	issuer     string
	now        func() time.Time
}

func NewJWTService(signingKey string, issuer string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		now:        time.Now,
	}
}

// IssueViewToken signs a token for viewID, bound to the browser binding
// value, that stops verifying at expiresAt.
func (s *JWTService) IssueViewToken(viewID, binding string, expiresAt time.Time) (string, error) {
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, ViewClaims{
		Binding: binding,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   viewID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(s.now()),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign view token")
	}
	return signedToken, nil
}

// ValidateViewToken verifies tokenString and returns its claims. An expired
// token reports CodeNotFound, like an expired view; anything else that fails
// verification reports CodeBadRequest.
func (s *JWTService) ValidateViewToken(tokenString string) (*ViewClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &ViewClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeNotFound, "consent view has expired")
		}
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid view token")
	}

	claims, ok := parsed.Claims.(*ViewClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid view token")
	}
	return claims, nil
}
