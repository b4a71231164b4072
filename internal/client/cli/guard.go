package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/hirehub/internal/apierr"
	"github.com/dmitrijs2005/hirehub/internal/client/session"
	"github.com/dmitrijs2005/hirehub/internal/logging"
)

// ErrRedirectToLogin is returned by Guard.Protect when the visitor has to
// authenticate before seeing the protected view.
var ErrRedirectToLogin = errors.New("please log in first")

// sessionResolver is the slice of the session client the guard needs.
type sessionResolver interface {
	ResolveIdentity(ctx context.Context) (session.Identity, error)
}

// Guard wraps protected views. Protect resolves the identity before the
// view runs; the view never observes a transient unauthenticated state.
//
// Resolution repeats on every Protect call. That costs a round trip per
// protected view but guarantees a role or token change made elsewhere in
// the session is always picked up.
type Guard struct {
	resolver sessionResolver
	store    *session.Store
	out      io.Writer
	log      logging.Logger
}

func NewGuard(resolver sessionResolver, store *session.Store, out io.Writer, log logging.Logger) *Guard {
	return &Guard{resolver: resolver, store: store, out: out, log: log.With("component", "guard")}
}

// Protect runs view with the resolved identity, or returns
// ErrRedirectToLogin without calling it.
//
// With no token in the store the redirect happens immediately, with no
// network call. When the server rejects the token the guard clears the
// store before redirecting: a stale token invalidates everything else, so
// keeping it would only produce more rejections. Other resolution
// failures (the server being unreachable) redirect but keep the token.
func (g *Guard) Protect(ctx context.Context, view func(ctx context.Context, id session.Identity) error) error {
	if _, ok := g.store.Get(); !ok {
		g.log.Debug(ctx, "no token, redirecting")
		return ErrRedirectToLogin
	}

	fmt.Fprintln(g.out, "Checking session...")

	id, err := g.resolver.ResolveIdentity(ctx)
	if err != nil {
		if errors.Is(err, apierr.ErrUnauthorized) {
			g.log.Warn(ctx, "session rejected, clearing token")
			g.store.Clear(ctx)
		} else {
			g.log.Warn(ctx, "identity resolution failed", "error", err.Error())
		}
		return ErrRedirectToLogin
	}

	return view(ctx, id)
}
