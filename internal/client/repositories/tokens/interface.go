// Package tokens persists the local session across client restarts.
package tokens

import "context"

// Session is the locally persisted session state: the bearer token plus
// the login it was issued for. Login is display state for the prompt; the
// authoritative identity always comes from the backend.
type Session struct {
	Token string
	Login string
}

// Repository stores at most one session.
type Repository interface {
	// Load returns the stored session; zero value when none is stored.
	Load(ctx context.Context) (Session, error)
	// Save persists both fields atomically.
	Save(ctx context.Context, sess Session) error
	Delete(ctx context.Context) error
}
