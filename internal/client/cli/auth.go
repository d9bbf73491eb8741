package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskadmin/internal/client/models"
	"github.com/dmitrijs2005/taskadmin/internal/client/session"
	"github.com/dustin/go-humanize"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and signs in. A rejected login is printed
// and the previous session, if any, stays in place.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username or email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	resp, err := a.auth.Login(ctx, models.LoginCredentials{Username: username, Password: password})
	if err != nil {
		if a.remoteFailure(err) {
			return nil
		}
		return err
	}

	p, err := a.session.Profile(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		lp := resp.Profile()
		p = &lp
	}
	a.profile = p
	a.active = listNone
	a.users.Page, a.tasks.Page = 0, 0

	fmt.Fprintf(a.out, "Logged in as %s\n", a.displayName())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.profile = nil
	a.active = listNone
	a.users.Rows, a.tasks.Tasks = nil, nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI refreshes the identity from the backend and prints it. When the
// backend is unreachable the cached profile is shown instead.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.users.RefreshCurrentUser(ctx); err != nil {
		if !a.remoteFailure(err) {
			return err
		}
		fmt.Fprintln(a.out, "Showing cached profile.")
	}

	p, err := a.session.Profile(ctx)
	if err != nil {
		return err
	}
	if p != nil {
		a.profile = p
	}
	renderProfile(a.out, *a.profile)

	exp, err := a.session.TokenExpiry(ctx)
	switch {
	case errors.Is(err, session.ErrNoExpiry):
		fmt.Fprintln(a.out, "Token expiry: unknown")
	case err != nil:
		a.logger.Debug(ctx, "token expiry unavailable", "error", err)
	default:
		fmt.Fprintf(a.out, "Token expires: %s (%s)\n", humanize.Time(exp), exp.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
