// Package session owns the client side of authentication state: the token
// store, identity resolution against the backend, and the mapping from a
// resolved role to the capabilities the UI offers.
package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/hirehub/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/hirehub/internal/logging"
)

// Store holds the current bearer token for the whole client process and
// mirrors it into a repository so a restart keeps the session.
//
// Writers race: two flows finishing at the same time both call Set and the
// last write wins. That is accepted; the client is a single-session UI,
// not a multi-writer protocol. The mutex only protects memory, it does not
// serialize whole login attempts.
type Store struct {
	mu    sync.Mutex
	token string
	login string
	repo  tokens.Repository
	subs  []func(token string)
	log   logging.Logger
}

// NewStore builds a Store. repo may be nil for a purely in-memory store
// (used in tests).
func NewStore(repo tokens.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log.With("component", "tokenstore")}
}

// Restore loads a previously persisted session into memory. Call once at
// startup, before anything reads the store.
func (s *Store) Restore(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	sess, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.token = sess.Token
	s.login = sess.Login
	s.mu.Unlock()
	if sess.Token != "" {
		s.log.Debug(ctx, "session restored", "login", sess.Login)
	}
	return nil
}

// Get returns the current token and whether one is set.
func (s *Store) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// LoginName returns the login the current session was created with, or ""
// when signed out. Display state only; never used for authorization.
func (s *Store) LoginName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.login
}

// Set replaces the current token and notifies subscribers. Persistence
// failures are logged, not returned: the in-memory token is authoritative
// for the running session.
func (s *Store) Set(ctx context.Context, token string) {
	s.mu.Lock()
	s.token = token
	login := s.login
	subs := append([]func(string){}, s.subs...)
	s.mu.Unlock()

	s.persist(ctx, tokens.Session{Token: token, Login: login})
	for _, fn := range subs {
		fn(token)
	}
}

// SetLogin records the login the session belongs to. Subscribers are not
// notified; they watch the token, not the display name.
func (s *Store) SetLogin(ctx context.Context, login string) {
	s.mu.Lock()
	s.login = login
	token := s.token
	s.mu.Unlock()

	s.persist(ctx, tokens.Session{Token: token, Login: login})
}

func (s *Store) persist(ctx context.Context, sess tokens.Session) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		s.log.Warn(ctx, "failed to persist session", "error", err.Error())
	}
}

// Clear drops the token. Required on logout and whenever any endpoint
// answers Unauthorized: a rejected token invalidates every other piece of
// client state.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.login = ""
	subs := append([]func(string){}, s.subs...)
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Delete(ctx); err != nil {
			s.log.Warn(ctx, "failed to delete persisted session", "error", err.Error())
		}
	}
	for _, fn := range subs {
		fn("")
	}
}

// Subscribe registers fn to run after every Set or Clear, with the new
// token ("" on Clear). Subscriptions cannot be removed; they live as long
// as the store.
func (s *Store) Subscribe(fn func(token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
