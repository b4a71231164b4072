// Package api defines the client used to talk to the hirehub backend.
// The Client interface is what the rest of the application depends on;
// HTTPClient is the production implementation.
package api

import (
	"context"
)

// LoginResult is the response of a successful login call.
type LoginResult struct {
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"token"`
}

// Profile is the authenticated identity as reported by the backend.
// Role is the raw role name ("Администратор", "Сотрудник", "Пользователь");
// parsing into an enum happens in the session package.
type Profile struct {
	Login  string `json:"login"`
	Role   string `json:"role"`
	UserID int64  `json:"userId"`
	RoleID int    `json:"role_id"`
}

// ProfileUpdate is the payload of a full profile update. A successful
// update may rotate the session token.
type ProfileUpdate struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	RoleID   int    `json:"role_id"`
}

// Client is the backend API surface the application uses.
//
// All methods honor context cancellation. Failed calls return an
// *apierr.Outcome; match kinds with errors.Is against apierr sentinels.
// Passwords are passed as byte slices so callers can wipe them after use.
type Client interface {
	Close() error

	// Login exchanges credentials for a bearer token. The token is
	// returned, not stored; the caller owns the token store.
	Login(ctx context.Context, login string, password []byte) (*LoginResult, error)

	// Register creates a new, unconfirmed account.
	Register(ctx context.Context, login string, password []byte) error

	// ConfirmRegistration redeems a registration confirmation token.
	ConfirmRegistration(ctx context.Context, token string) error

	// RequestPasswordReset asks the backend to mail a reset link.
	RequestPasswordReset(ctx context.Context, login string) error

	// ConfirmPasswordReset redeems a reset token with the new password.
	ConfirmPasswordReset(ctx context.Context, token string, password, repeatPassword []byte) error

	// ConfirmEmailChange redeems an email-change token. The backend may
	// issue a replacement bearer token; empty string means none.
	ConfirmEmailChange(ctx context.Context, token string) (string, error)

	// Profile fetches the identity behind the current bearer token.
	Profile(ctx context.Context) (*Profile, error)

	// ChangeLogin starts the email-change verification flow.
	ChangeLogin(ctx context.Context, oldLogin, newLogin string) error

	// UpdateProfile submits a full profile update. Like
	// ConfirmEmailChange, a non-empty return value is a fresh token.
	UpdateProfile(ctx context.Context, upd ProfileUpdate) (string, error)

	// Logout invalidates the session server-side.
	Logout(ctx context.Context) error
}
