package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hirehub/internal/apierr"
	"github.com/dmitrijs2005/hirehub/internal/client/api"
	"github.com/dmitrijs2005/hirehub/internal/logging"
)

// ErrNoToken reports a resolution attempt with an empty token store. It
// matches apierr.ErrUnauthorized so the UI treats "no token" and "rejected
// token" the same way; only the log record differs.
var ErrNoToken = fmt.Errorf("no session token: %w", apierr.ErrUnauthorized)

// ErrTokenChanged reports that the token was replaced while a resolution
// was in flight. The resolved identity would belong to the old token and
// is discarded.
var ErrTokenChanged = fmt.Errorf("token changed during resolution: %w", apierr.ErrUnauthorized)

// Identity is who the backend says the current token belongs to.
// It is derived, never stored: every consumer re-resolves on entry so a
// role change made elsewhere in the session is picked up.
type Identity struct {
	Role   Role
	Login  string
	UserID int64
}

// Client resolves the authenticated identity behind the stored token.
//
// It never mutates the token store: deciding to clear and redirect on an
// Unauthorized outcome is the guard's job, which lets non-guarded
// consumers (the header login display) fail soft instead.
type Client struct {
	api   api.Client
	store *Store
	log   logging.Logger
}

func NewClient(apiClient api.Client, store *Store, log logging.Logger) *Client {
	return &Client{api: apiClient, store: store, log: log.With("component", "session")}
}

// ResolveIdentity fetches the profile behind the current token. With no
// token present it fails immediately with ErrNoToken and no network call.
// No retry is attempted; the caller decides between redirecting and
// rendering the error.
func (c *Client) ResolveIdentity(ctx context.Context) (Identity, error) {
	token, ok := c.store.Get()
	if !ok {
		// Logged at debug: expected for anonymous visitors.
		c.log.Debug(ctx, "identity resolution skipped, no token")
		return Identity{}, ErrNoToken
	}

	profile, err := c.api.Profile(ctx)
	if err != nil {
		if errors.Is(err, apierr.ErrUnauthorized) {
			// Logged at warn: the server rejected a token we held.
			c.log.Warn(ctx, "session token rejected by server")
		}
		return Identity{}, err
	}

	// A login or profile-update flow may have swapped the token while the
	// request was in flight. The identity belongs to the old token then.
	if current, ok := c.store.Get(); !ok || current != token {
		c.log.Debug(ctx, "discarding identity resolved against replaced token")
		return Identity{}, ErrTokenChanged
	}

	id := Identity{
		Role:   ParseRole(profile.Role),
		Login:  profile.Login,
		UserID: profile.UserID,
	}
	c.log.Debug(ctx, "identity resolved", "login", id.Login, "role", id.Role.String())
	return id, nil
}
