package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hirehub/internal/apierr"
	"github.com/dmitrijs2005/hirehub/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and exchanges them for a bearer token.
//
// On success the token is written to the store and the prompt picks up the
// login name. On failure the form stays usable: the classified error is
// rendered and nothing is stored. An unconfirmed account (403) gets its
// own copy instead of the generic credentials message.
func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.api.Login(ctx, login, password)
	if err != nil {
		switch {
		case errors.Is(err, apierr.ErrForbidden):
			// Server copy ("Account not confirmed") passes through.
			a.printOutcome(err)
			fmt.Fprintln(a.out, "Use the link from your registration email, or register again.")
		case errors.Is(err, apierr.ErrUnauthorized):
			a.printOutcome(err)
		case errors.Is(err, apierr.ErrTimeout):
			fmt.Fprintln(a.out, "The server is taking too long. Try again in a moment.")
		default:
			a.printOutcome(err)
		}
		a.log.Warn(ctx, "login failed", "error", err.Error())
		return err
	}

	if res.Token == "" {
		err := errors.New("unexpected server response: no token issued")
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	a.store.Set(ctx, res.Token)
	a.store.SetLogin(ctx, login)
	a.userName = login
	a.log.Info(ctx, "logged in", "login", login)
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

// Logout invalidates the session server-side (best effort) and always
// clears the local token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server-side logout failed", "error", err.Error())
	}
	a.store.Clear(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI is the header widget: it shows who is signed in, failing soft.
// Unlike the guard it neither clears the token nor redirects; a visitor
// who is not signed in just sees that.
func (a *App) WhoAmI(ctx context.Context) error {
	id, err := a.session.ResolveIdentity(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", id.Login, id.Role)
	return nil
}
