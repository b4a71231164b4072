// Package flow implements the token-in-URL verification flows: confirming
// a registration, requesting and confirming a password reset, and
// confirming an email change. All four share one state machine so the
// error taxonomy and terminal-state discipline stay uniform.
package flow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator"

	"github.com/dmitrijs2005/hirehub/internal/apierr"
	"github.com/dmitrijs2005/hirehub/internal/client/api"
	"github.com/dmitrijs2005/hirehub/internal/client/session"
	"github.com/dmitrijs2005/hirehub/internal/logging"
)

// Kind selects which verification endpoint a flow drives.
type Kind int

const (
	RegisterConfirm Kind = iota
	PasswordResetRequest
	PasswordResetConfirm
	EmailChangeConfirm
)

func (k Kind) String() string {
	switch k {
	case RegisterConfirm:
		return "register-confirm"
	case PasswordResetRequest:
		return "password-reset-request"
	case PasswordResetConfirm:
		return "password-reset-confirm"
	case EmailChangeConfirm:
		return "email-change-confirm"
	default:
		return "unknown"
	}
}

// State is the lifecycle of one flow instance. Once a terminal state
// (Succeeded/Failed) is reached the instance never goes back to Pending;
// retrying means constructing a fresh flow.
type State int

const (
	StateIdle State = iota
	StatePending
	StateSucceeded
	StateFailed
)

// ErrMissingToken is the terminal failure of a flow started without a
// token. Deliberately distinct copy from a server-rejected token.
var ErrMissingToken = errors.New("invalid confirmation link")

// ErrConsumed is returned by Run on a flow instance that already ran.
var ErrConsumed = errors.New("verification already in progress or finished")

// Request carries the inputs of one flow run. Token comes from the pasted
// confirmation link; the other fields from form input, depending on Kind.
type Request struct {
	Token          string
	Login          string
	Password       string
	RepeatPassword string
}

type resetConfirmPayload struct {
	Password       string `validate:"required,min=8,strongpw"`
	RepeatPassword string `validate:"required,eqfield=Password"`
}

type resetRequestPayload struct {
	Login string `validate:"required,email"`
}

// Flow is a single-use verification state machine. A mounted verification
// view owns exactly one Flow; Run issues at most one network request and
// leaves the instance in a terminal state.
type Flow struct {
	kind     Kind
	api      api.Client
	store    *session.Store
	validate *validator.Validate
	log      logging.Logger

	// SettleDelay postpones the email-change request slightly so a token
	// written by a just-finished login has landed in the store first.
	// Tests set it to zero.
	SettleDelay time.Duration

	mu      sync.Mutex
	state   State
	failure error
}

const defaultSettleDelay = 500 * time.Millisecond

// New builds a flow of the given kind. store is only written by
// EmailChangeConfirm and may be nil for the other kinds.
func New(kind Kind, apiClient api.Client, store *session.Store, log logging.Logger) *Flow {
	f := &Flow{
		kind:     kind,
		api:      apiClient,
		store:    store,
		validate: newValidator(),
		log:      log.With("component", "flow", "kind", kind.String()),
		state:    StateIdle,
	}
	if kind == EmailChangeConfirm {
		f.SettleDelay = defaultSettleDelay
	}
	return f
}

func newValidator() *validator.Validate {
	v := validator.New()
	// strongpw: at least one uppercase letter and one digit.
	_ = v.RegisterValidation("strongpw", func(fl validator.FieldLevel) bool {
		var upper, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case r >= 'A' && r <= 'Z' || r >= 'А' && r <= 'Я':
				upper = true
			case r >= '0' && r <= '9':
				digit = true
			}
		}
		return upper && digit
	})
	return v
}

// State returns the current lifecycle state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Failure returns the terminal failure reason, or nil.
func (f *Flow) Failure() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failure
}

// Run drives the flow to a terminal state and returns nil on Succeeded or
// the failure reason otherwise. A second call on the same instance fails
// with ErrConsumed without side effects, which is what disables a submit
// control while a request is in flight.
func (f *Flow) Run(ctx context.Context, req Request) error {
	if err := f.begin(); err != nil {
		return err
	}

	// Token must be present before any network call; its absence is a
	// terminal failure of its own. Reset requests carry no token.
	if f.kind != PasswordResetRequest && req.Token == "" {
		f.log.Warn(ctx, "flow started without token")
		return f.fail(ErrMissingToken)
	}

	if err := f.checkPayload(req); err != nil {
		return f.fail(err)
	}

	var err error
	switch f.kind {
	case RegisterConfirm:
		err = f.api.ConfirmRegistration(ctx, req.Token)

	case PasswordResetRequest:
		err = f.api.RequestPasswordReset(ctx, req.Login)

	case PasswordResetConfirm:
		err = f.api.ConfirmPasswordReset(ctx, req.Token, []byte(req.Password), []byte(req.RepeatPassword))

	case EmailChangeConfirm:
		if err = f.settle(ctx); err == nil {
			var token string
			token, err = f.api.ConfirmEmailChange(ctx, req.Token)
			if err == nil && token != "" {
				// The server rotated the session token together with
				// the login; replace ours before navigating anywhere.
				f.store.Set(ctx, token)
				f.log.Info(ctx, "session token replaced after email change")
			}
		}
	}

	if err != nil {
		f.log.Warn(ctx, "verification failed", "error", err.Error())
		return f.fail(err)
	}

	f.finish(StateSucceeded, nil)
	f.log.Info(ctx, "verification succeeded")
	return nil
}

func (f *Flow) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateIdle {
		return ErrConsumed
	}
	f.state = StatePending
	return nil
}

func (f *Flow) fail(reason error) error {
	f.finish(StateFailed, reason)
	return reason
}

func (f *Flow) finish(state State, failure error) {
	f.mu.Lock()
	f.state = state
	f.failure = failure
	f.mu.Unlock()
}

func (f *Flow) settle(ctx context.Context) error {
	if f.SettleDelay <= 0 {
		return nil
	}
	select {
	case <-time.After(f.SettleDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// checkPayload validates form input client-side so obviously bad payloads
// never reach the network. Violations come back as a ValidationFailed
// outcome with a per-field message map, same shape as a server 422.
func (f *Flow) checkPayload(req Request) error {
	var err error
	switch f.kind {
	case PasswordResetConfirm:
		err = f.validate.Struct(resetConfirmPayload{
			Password:       req.Password,
			RepeatPassword: req.RepeatPassword,
		})
	case PasswordResetRequest:
		err = f.validate.Struct(resetRequestPayload{Login: req.Login})
	default:
		return nil
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe.Field())] = fieldMessage(fe.Tag())
	}
	return apierr.Validation("some fields are invalid", fields)
}

func fieldName(structField string) string {
	switch structField {
	case "Password":
		return "password"
	case "RepeatPassword":
		return "repeatPassword"
	case "Login":
		return "login"
	default:
		return structField
	}
}

func fieldMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return "must be at least 8 characters"
	case "strongpw":
		return "must contain an uppercase letter and a digit"
	case "eqfield":
		return "does not match"
	case "email":
		return "must be a valid email"
	default:
		return "is invalid"
	}
}
