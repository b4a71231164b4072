// Package cli implements the interactive hirehub client: a REPL whose
// commands map onto the portal's auth pages. Protected views go through
// the Guard; the stand-alone verification pages run flow state machines.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/dmitrijs2005/hirehub/internal/apierr"
	"github.com/dmitrijs2005/hirehub/internal/client/api"
	"github.com/dmitrijs2005/hirehub/internal/client/config"
	"github.com/dmitrijs2005/hirehub/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/hirehub/internal/client/session"
	"github.com/dmitrijs2005/hirehub/internal/client/storage"
	"github.com/dmitrijs2005/hirehub/internal/logging"

	_ "modernc.org/sqlite"
)

// loginRedirectDelay is how long a confirmed registration lingers on the
// success message before pointing the user at login.
const loginRedirectDelay = 5 * time.Second

type App struct {
	config  *config.Config
	log     logging.Logger
	api     api.Client
	store   *session.Store
	session sessionResolver
	guard   *Guard
	db      *sql.DB

	reader *bufio.Reader
	out    io.Writer

	// userName is display state for the prompt, set on login. The real
	// identity is re-resolved by the guard on every protected view.
	userName string

	redirectDelay time.Duration
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, cfg.TokenDBPath)
	if err != nil {
		return nil, fmt.Errorf("init local database: %w", err)
	}

	store := session.NewStore(tokens.NewSQLiteRepository(db), log)
	if err := store.Restore(ctx); err != nil {
		log.Warn(ctx, "could not restore session", "error", err.Error())
	}

	apiClient := api.NewHTTPClient(cfg.APIBaseURL, &http.Client{}, store, log, cfg.LoginTimeout)
	sess := session.NewClient(apiClient, store, log)

	a := &App{
		config:        cfg,
		log:           log,
		api:           apiClient,
		store:         store,
		session:       sess,
		guard:         NewGuard(sess, store, os.Stdout, log),
		db:            db,
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
		redirectDelay: loginRedirectDelay,
	}

	// A restored session brings the prompt name back with it.
	a.userName = store.LoginName()

	// Keep the prompt honest: when anything clears the token (logout,
	// a rejected session), the displayed name goes with it.
	store.Subscribe(func(token string) {
		if token == "" {
			a.userName = ""
		}
	})

	return a, nil
}

func (a *App) Close() error {
	if err := a.api.Close(); err != nil {
		return err
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	_, ok := a.store.Get()
	return ok
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to hirehub (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner, a.out)
}

// printOutcome renders a failed call: the classified message first, then
// field-level errors (sorted for stable output) attached to their inputs.
func (a *App) printOutcome(err error) {
	var outcome *apierr.Outcome
	if !errors.As(err, &outcome) {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	fmt.Fprintln(a.out, outcome.Message)

	fields := make([]string, 0, len(outcome.Fields))
	for field := range outcome.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(a.out, "  %s: %s\n", field, outcome.Fields[field])
	}
}
