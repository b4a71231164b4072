package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hirehub/internal/client/flow"
	"github.com/dmitrijs2005/hirehub/internal/client/session"
	"github.com/dmitrijs2005/hirehub/internal/common"
)

// ConfirmRegistration redeems the link from the registration email. On
// success the user is pointed at login after a short pause, mirroring the
// confirmation page of the web portal.
func (a *App) ConfirmRegistration(ctx context.Context) error {
	link, err := getSimpleText(a.reader, "Paste the confirmation link from your email", a.out)
	if err != nil {
		return err
	}

	fl := flow.New(flow.RegisterConfirm, a.api, a.store, a.log)
	if err := fl.Run(ctx, flow.Request{Token: flow.TokenFromLink(link)}); err != nil {
		a.printOutcome(err)
		fmt.Fprintln(a.out, "You can register again to receive a fresh link.")
		return err
	}

	fmt.Fprintln(a.out, "Your email is confirmed!")
	a.redirectToLogin(ctx)
	return nil
}

// ForgotPassword asks the backend to mail a password reset link.
func (a *App) ForgotPassword(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter your account email", a.out)
	if err != nil {
		return err
	}

	fl := flow.New(flow.PasswordResetRequest, a.api, a.store, a.log)
	if err := fl.Run(ctx, flow.Request{Login: login}); err != nil {
		a.printOutcome(err)
		return err
	}

	fmt.Fprintln(a.out, "Reset instructions sent. Check your mailbox, then run 'reset'.")
	return nil
}

// ResetPassword redeems a reset link together with the new password. The
// token store stays untouched on success: the user logs in afresh.
func (a *App) ResetPassword(ctx context.Context) error {
	link, err := getSimpleText(a.reader, "Paste the reset link from your email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	repeat, err := getPassword(a.out, "Repeat new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)

	fl := flow.New(flow.PasswordResetConfirm, a.api, a.store, a.log)
	err = fl.Run(ctx, flow.Request{
		Token:          flow.TokenFromLink(link),
		Password:       string(password),
		RepeatPassword: string(repeat),
	})
	if err != nil {
		a.printOutcome(err)
		if errors.Is(err, flow.ErrMissingToken) {
			fmt.Fprintln(a.out, "Run 'forgot' to request a new reset link.")
		}
		return err
	}

	fmt.Fprintln(a.out, "Password changed. Log in with your new password.")
	return nil
}

// ConfirmEmailChange redeems the link mailed to a new address after
// 'changelogin'. The server may rotate the session token; the flow stores
// the replacement before we return to the profile view.
func (a *App) ConfirmEmailChange(ctx context.Context) error {
	link, err := getSimpleText(a.reader, "Paste the confirmation link from your new mailbox", a.out)
	if err != nil {
		return err
	}

	fl := flow.New(flow.EmailChangeConfirm, a.api, a.store, a.log)
	if err := fl.Run(ctx, flow.Request{Token: flow.TokenFromLink(link)}); err != nil {
		a.printOutcome(err)
		return err
	}

	fmt.Fprintln(a.out, "Your login has been changed.")
	return a.Profile(ctx)
}

// redirectToLogin lingers on the success message before pointing at
// login, like the web portal's five second auto-redirect.
func (a *App) redirectToLogin(ctx context.Context) {
	if a.redirectDelay > 0 {
		fmt.Fprintf(a.out, "Taking you to login in %s...\n", a.redirectDelay)
		select {
		case <-time.After(a.redirectDelay):
		case <-ctx.Done():
			return
		}
	}
	fmt.Fprintln(a.out, "Run 'login' to sign in.")
}

// guardView adapts a plain render func to the guard's signature.
func guardView(render func(id session.Identity)) func(context.Context, session.Identity) error {
	return func(_ context.Context, id session.Identity) error {
		render(id)
		return nil
	}
}
