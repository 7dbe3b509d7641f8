package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/projectdesk/internal/client/client"
	"github.com/dmitrijs2005/projectdesk/internal/client/forms"
	"github.com/dmitrijs2005/projectdesk/internal/client/models"
	"github.com/dmitrijs2005/projectdesk/internal/logging"
)

// SessionStore is the part of the session holder the auth service drives.
type SessionStore interface {
	SessionTeardown
	Establish(ctx context.Context, credential string, role models.Role) (models.Session, error)
	Current() models.Session
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the backend and establish the session.
//   - Register: create an account; does not log in.
//   - Logout: clear the session and the dashboard.
//   - Ping: check backend liveness.
//   - Weather: fetch the ambient weather summary.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (models.Session, error)
	Register(ctx context.Context, email string, password []byte, role string) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Weather(ctx context.Context) (*models.Weather, error)
}

type authService struct {
	client    client.Client
	sessions  SessionStore
	dashboard *Dashboard
	logger    logging.Logger
}

// NewAuthService constructs an AuthService bound to the API client and the
// session holder.
func NewAuthService(c client.Client, sessions SessionStore, dashboard *Dashboard, logger logging.Logger) AuthService {
	return &authService{client: c, sessions: sessions, dashboard: dashboard, logger: logger}
}

// Login exchanges credentials for a bearer token and persists the session.
// The role reported by the backend must be one the client knows.
func (a *authService) Login(ctx context.Context, email string, password []byte) (models.Session, error) {
	if err := forms.Validate(forms.Login{Email: email, Password: string(password)}); err != nil {
		return models.Session{}, err
	}

	creds, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return models.Session{}, fmt.Errorf("login error: %w", err)
	}

	role, err := models.ParseRole(string(creds.Role))
	if err != nil {
		return models.Session{}, fmt.Errorf("login error: %w", err)
	}

	a.dashboard.Reset()
	return a.sessions.Establish(ctx, creds.AccessToken, role)
}

// Register creates a new account with the given role.
func (a *authService) Register(ctx context.Context, email string, password []byte, role string) error {
	if err := forms.Validate(forms.Registration{Email: email, Password: string(password), Role: role}); err != nil {
		return err
	}
	return a.client.Register(ctx, email, string(password), models.Role(role))
}

// Logout drops the session and any dashboard state.
func (a *authService) Logout(ctx context.Context) error {
	a.dashboard.Reset()
	return a.sessions.Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Weather(ctx context.Context) (*models.Weather, error) {
	return a.client.Weather(ctx)
}
