package models

import "time"

// Session is the client's record of authentication state.
//
// A non-empty Role always comes with a non-empty Credential; the zero value
// is the anonymous session. Subject and ExpiresAt are decoded from the
// credential for display only and are never used to authorize anything.
type Session struct {
	Role       Role
	Credential string

	Subject   string
	ExpiresAt time.Time
}

// Active reports whether the session carries both a role and a credential.
func (s Session) Active() bool {
	return s.Role != "" && s.Credential != ""
}

// Credentials is the backend's answer to a successful login.
type Credentials struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        Role   `json:"role"`
}
