package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token fields shown to the user. The backend puts the
// account email in "sub".
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// decodeClaims reads the claims of a bearer token without verifying its
// signature. The result is for display only.
func decodeClaims(credential string) (subject string, expiresAt time.Time, err error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return "", time.Time{}, err
	}

	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return claims.Subject, expiresAt, nil
}
