package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dmitrijs2005/hirehub/internal/apierr"
	"github.com/dmitrijs2005/hirehub/internal/common"
)

// Register prompts for an email and password (entered twice) and creates
// a new account. The account stays unusable until the emailed link is
// confirmed; see ConfirmRegistration.
func (a *App) Register(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	repeat, err := getPassword(a.out, "Repeat password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)

	// Checked locally so a typo never reaches the network.
	if !bytes.Equal(password, repeat) {
		outcome := apierr.Validation("some fields are invalid",
			map[string]string{"repeatPassword": "does not match"})
		a.printOutcome(outcome)
		return outcome
	}

	if err := a.api.Register(ctx, login, password); err != nil {
		a.printOutcome(err)
		a.log.Warn(ctx, "registration failed", "error", err.Error())
		return err
	}

	a.log.Info(ctx, "registered", "login", login)
	fmt.Fprintln(a.out, "Account created. Check your mailbox for a confirmation link, then run 'confirm'.")
	return nil
}
