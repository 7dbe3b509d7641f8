package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/projectdesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, password and role and creates an account.
// It does not log in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	role, err := getSimpleText(a.reader, "Role (student/teacher)", a.out)
	if err != nil {
		return err
	}

	if err := a.authService.Register(ctx, email, password, role); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registration successful. You can now log in.")
	return nil
}

// Login prompts for credentials, establishes the session and loads the
// dashboard for the returned role.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.logger.Info(ctx, "login successful", "role", s.Role)
	fmt.Fprintf(a.out, "Logged in as %s.\n", s.Role)

	return a.Refresh(ctx)
}

// Logout clears the persisted session and the dashboard.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints what is known locally about the session. The values come from
// the token itself and are not verified.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.sessions.Current()
	if !s.Active() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	fmt.Fprintf(a.out, "Role:       %s\n", s.Role)
	if s.Subject != "" {
		fmt.Fprintf(a.out, "Email:      %s\n", s.Subject)
	}
	fmt.Fprintf(a.out, "Credential: %s\n", common.MaskToken(s.Credential))
	if !s.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "Expires:    %s\n", s.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}

// Weather prints the ambient weather summary.
func (a *App) Weather(ctx context.Context) error {
	w, err := a.authService.Weather(ctx)
	if err != nil {
		return err
	}
	renderWeather(a.out, w)
	return nil
}
