package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/hirehub/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/hirehub/internal/logging"
)

// fakeRepo implements tokens.Repository in memory.
type fakeRepo struct {
	mu      sync.Mutex
	sess    tokens.Session
	saveErr error
	loadErr error
}

func (f *fakeRepo) Load(context.Context) (tokens.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sess, f.loadErr
}

func (f *fakeRepo) Save(_ context.Context, sess tokens.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.sess = sess
	return nil
}

func (f *fakeRepo) Delete(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sess = tokens.Session{}
	return nil
}

func TestStore_EmptyByDefault(t *testing.T) {
	s := NewStore(nil, logging.NewDiscard())
	token, ok := s.Get()
	assert.False(t, ok)
	assert.Equal(t, "", token)
}

func TestStore_SetGetClear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, logging.NewDiscard())

	s.Set(ctx, "abc")
	token, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "abc", token)

	s.Clear(ctx)
	_, ok = s.Get()
	assert.False(t, ok)
}

func TestStore_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, logging.NewDiscard())

	s.Set(ctx, "first")
	s.Set(ctx, "second")

	token, _ := s.Get()
	assert.Equal(t, "second", token)
}

func TestStore_PersistsThroughRepo(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}

	s := NewStore(repo, logging.NewDiscard())
	s.Set(ctx, "abc")
	s.SetLogin(ctx, "alice@example.org")
	assert.Equal(t, tokens.Session{Token: "abc", Login: "alice@example.org"}, repo.sess)

	// A new store over the same repo sees the session after Restore.
	s2 := NewStore(repo, logging.NewDiscard())
	require.NoError(t, s2.Restore(ctx))
	token, ok := s2.Get()
	require.True(t, ok)
	assert.Equal(t, "abc", token)
	assert.Equal(t, "alice@example.org", s2.LoginName())

	s2.Clear(ctx)
	assert.Equal(t, tokens.Session{}, repo.sess)
	assert.Equal(t, "", s2.LoginName())
}

func TestStore_RestoreError(t *testing.T) {
	repo := &fakeRepo{loadErr: errors.New("disk gone")}
	s := NewStore(repo, logging.NewDiscard())
	assert.Error(t, s.Restore(context.Background()))
}

func TestStore_SetSurvivesPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{saveErr: errors.New("disk gone")}

	s := NewStore(repo, logging.NewDiscard())
	s.Set(ctx, "abc")

	// Memory is authoritative for the running session.
	token, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "abc", token)
}

func TestStore_SubscribersNotified(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, logging.NewDiscard())

	var seen []string
	s.Subscribe(func(token string) { seen = append(seen, token) })

	s.Set(ctx, "abc")
	s.SetLogin(ctx, "alice@example.org") // display state, no notification
	s.Clear(ctx)

	assert.Equal(t, []string{"abc", ""}, seen)
}
