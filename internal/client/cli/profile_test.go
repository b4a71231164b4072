package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/hirehub/internal/client/api"
)

func TestProfile_RequiresSession(t *testing.T) {
	f := &fakeAPI{}
	a, _ := newTestApp(t, f)

	err := a.Profile(context.Background())
	if !errors.Is(err, ErrRedirectToLogin) {
		t.Fatalf("want ErrRedirectToLogin, got %v", err)
	}
	if f.profileCalls != 0 {
		t.Fatalf("no session, no network call; got %d", f.profileCalls)
	}
}

func TestProfile_RendersRoleMenu(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantMenu string
		wantLine string
	}{
		{"administrator", "Администратор", "moderation", "delete-company"},
		{"employee", "Сотрудник", "my-vacancies", "create-vacancy"},
		{"regular user", "Пользователь", "my-resume", "apply"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeAPI{profile: &api.Profile{Login: "u@example.org", Role: tt.role, UserID: 5}}
			a, out := newTestApp(t, f)
			ctx := context.Background()
			a.store.Set(ctx, "tok-1")

			if err := a.Profile(ctx); err != nil {
				t.Fatalf("Profile err: %v", err)
			}
			if !strings.Contains(out.String(), "u@example.org") {
				t.Fatalf("login missing: %q", out.String())
			}
			if !strings.Contains(out.String(), tt.wantMenu) {
				t.Fatalf("menu entry %q missing: %q", tt.wantMenu, out.String())
			}
			if !strings.Contains(out.String(), tt.wantLine) {
				t.Fatalf("capability %q missing: %q", tt.wantLine, out.String())
			}
		})
	}
}

func TestChangeLogin(t *testing.T) {
	f := &fakeAPI{profile: &api.Profile{Login: "old@example.org", Role: "Пользователь", UserID: 5}}
	a, out := newTestApp(t, f)
	ctx := context.Background()
	a.store.Set(ctx, "tok-1")

	restore := stubInputs(t, []string{"new@example.org"}, nil)
	defer restore()

	if err := a.ChangeLogin(ctx); err != nil {
		t.Fatalf("ChangeLogin err: %v", err)
	}
	if f.changeLoginOld != "old@example.org" || f.changeLoginNew != "new@example.org" {
		t.Fatalf("logins not passed through: %q -> %q", f.changeLoginOld, f.changeLoginNew)
	}
	if !strings.Contains(out.String(), "confirm-email") {
		t.Fatalf("next-step hint missing: %q", out.String())
	}
}

func TestUpdateProfile_KeepsRoleAndRotatesToken(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		roleID     int
		wantRoleID int
	}{
		{"administrator keeps admin role", "Администратор", 1, 1},
		{"employee keeps employee role", "Сотрудник", 3, 3},
		{"regular user keeps user role", "Пользователь", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeAPI{
				profile:     &api.Profile{Login: "u@example.org", Role: tt.role, UserID: 5, RoleID: tt.roleID},
				updateToken: "rotated-tok",
			}
			a, _ := newTestApp(t, f)
			ctx := context.Background()
			a.store.Set(ctx, "old-tok")

			restore := stubInputs(t, nil, [][]byte{[]byte("NewSecret1")})
			defer restore()

			if err := a.UpdateProfile(ctx); err != nil {
				t.Fatalf("UpdateProfile err: %v", err)
			}
			if f.updateGot.RoleID != tt.wantRoleID {
				t.Fatalf("role id mismatch: got %d, want %d", f.updateGot.RoleID, tt.wantRoleID)
			}
			if f.updateGot.Login != "u@example.org" {
				t.Fatalf("login mismatch: %q", f.updateGot.Login)
			}
			if f.updateGot.Password != "NewSecret1" {
				t.Fatalf("password mismatch: %q", f.updateGot.Password)
			}
			if tok, _ := a.store.Get(); tok != "rotated-tok" {
				t.Fatalf("replacement token not stored: %q", tok)
			}
		})
	}
}

func TestUpdateProfile_NoTokenInResponse_StoreUntouched(t *testing.T) {
	f := &fakeAPI{profile: &api.Profile{Login: "u@example.org", Role: "Пользователь", UserID: 5, RoleID: 2}}
	a, _ := newTestApp(t, f)
	ctx := context.Background()
	a.store.Set(ctx, "tok-1")

	restore := stubInputs(t, nil, [][]byte{[]byte("NewSecret1")})
	defer restore()

	if err := a.UpdateProfile(ctx); err != nil {
		t.Fatalf("UpdateProfile err: %v", err)
	}
	if tok, _ := a.store.Get(); tok != "tok-1" {
		t.Fatalf("token must stay put without a rotation: %q", tok)
	}
}
