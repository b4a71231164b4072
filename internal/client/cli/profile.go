package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hirehub/internal/client/api"
	"github.com/dmitrijs2005/hirehub/internal/client/session"
	"github.com/dmitrijs2005/hirehub/internal/common"
)

// Profile renders the guarded profile view: identity plus the menu the
// resolved role unlocks.
func (a *App) Profile(ctx context.Context) error {
	return a.guard.Protect(ctx, guardView(func(id session.Identity) {
		fmt.Fprintf(a.out, "Login: %s\n", id.Login)
		fmt.Fprintf(a.out, "Role:  %s\n", id.Role)
		fmt.Fprintf(a.out, "ID:    %d\n", id.UserID)
		a.renderMenu(session.CapabilitiesFor(id))
	}))
}

// renderMenu prints the sidebar variant for the capability set. Every
// sidebar case is spelled out so a new variant cannot silently render
// nothing.
func (a *App) renderMenu(caps session.Capabilities) {
	switch caps.Sidebar {
	case session.SidebarAdmin:
		fmt.Fprintln(a.out, "Menu: companies | vacancies | candidates | reviews | moderation")
	case session.SidebarEmployee:
		fmt.Fprintln(a.out, "Menu: my-company | my-vacancies | candidates")
	case session.SidebarUser:
		fmt.Fprintln(a.out, "Menu: vacancies | companies | my-resume")
	case session.SidebarNone:
		fmt.Fprintln(a.out, "Menu: (none)")
	}
	if caps.CanCreateVacancy {
		fmt.Fprintln(a.out, "      create-vacancy")
	}
	if caps.CanModerate {
		fmt.Fprintln(a.out, "      delete-company | delete-review")
	}
	if caps.CanApply {
		fmt.Fprintln(a.out, "      apply | publish-resume")
	}
}

// ChangeLogin starts the email-change flow: the backend mails a
// confirmation link to the new address; nothing changes until it is
// redeemed via 'confirm-email'.
func (a *App) ChangeLogin(ctx context.Context) error {
	return a.guard.Protect(ctx, func(ctx context.Context, id session.Identity) error {
		newLogin, err := getSimpleText(a.reader, "Enter the new email", a.out)
		if err != nil {
			return err
		}

		if err := a.api.ChangeLogin(ctx, id.Login, newLogin); err != nil {
			a.printOutcome(err)
			return err
		}

		a.log.Info(ctx, "login change requested", "login_old", id.Login)
		fmt.Fprintln(a.out, "Check the new mailbox for a confirmation link, then run 'confirm-email'.")
		return nil
	})
}

// UpdateProfile submits a full profile update. Administrators always keep
// their role; everyone else resubmits the role they already have. A
// rotated token in the response replaces the stored one.
func (a *App) UpdateProfile(ctx context.Context) error {
	return a.guard.Protect(ctx, func(ctx context.Context, id session.Identity) error {
		password, err := getPassword(a.out, "New password")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)

		roleID := id.Role.ID()
		if id.Role == session.RoleAdministrator {
			roleID = session.RoleAdministrator.ID()
		}

		token, err := a.api.UpdateProfile(ctx, api.ProfileUpdate{
			Login:    id.Login,
			Password: string(password),
			RoleID:   roleID,
		})
		if err != nil {
			a.printOutcome(err)
			return err
		}

		if token != "" {
			a.store.Set(ctx, token)
			a.log.Info(ctx, "session token replaced after profile update")
		}
		fmt.Fprintln(a.out, "Profile updated.")
		return nil
	})
}
