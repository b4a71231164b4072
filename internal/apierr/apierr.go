// Package apierr classifies failures of calls to the hirehub backend into a
// fixed taxonomy. Every component that talks to the API reports failures
// through Translate so user-facing copy and retry policy stay consistent.
// Callers match outcomes with errors.Is against the sentinel values below.
package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Sentinel errors, one per outcome kind.
var (
	ErrNetworkUnreachable = errors.New("network unreachable")
	ErrTimeout            = errors.New("request timed out")
	ErrValidationFailed   = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrRateLimited        = errors.New("rate limited")
	ErrServerError        = errors.New("server error")
	ErrUnknown            = errors.New("unknown error")
)

// Kind identifies the class of a failed API call.
type Kind int

const (
	Unknown Kind = iota
	NetworkUnreachable
	Timeout
	ValidationFailed
	Unauthorized
	Forbidden
	NotFound
	Conflict
	RateLimited
	ServerError
)

func (k Kind) String() string {
	return sentinel(k).Error()
}

func sentinel(k Kind) error {
	switch k {
	case NetworkUnreachable:
		return ErrNetworkUnreachable
	case Timeout:
		return ErrTimeout
	case ValidationFailed:
		return ErrValidationFailed
	case Unauthorized:
		return ErrUnauthorized
	case Forbidden:
		return ErrForbidden
	case NotFound:
		return ErrNotFound
	case Conflict:
		return ErrConflict
	case RateLimited:
		return ErrRateLimited
	case ServerError:
		return ErrServerError
	default:
		return ErrUnknown
	}
}

// Outcome is a classified API failure. Message is suitable for direct
// display; when the server supplied one it is passed through verbatim.
// Fields is non-nil only for ValidationFailed outcomes where the server
// attached a field→message map, so forms can mark the offending input.
type Outcome struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (o *Outcome) Error() string {
	return o.Message
}

// Unwrap makes errors.Is(outcome, apierr.ErrUnauthorized) and friends work.
func (o *Outcome) Unwrap() error {
	return sentinel(o.Kind)
}

// FieldError returns the server-reported message for a form field, if any.
func (o *Outcome) FieldError(field string) (string, bool) {
	msg, ok := o.Fields[field]
	return msg, ok
}

// errorBody is the JSON shape the backend uses for failed responses. The
// auth endpoints put the copy under "error", the rest under "message".
// All fields are optional; absent values fall back to default copy.
type errorBody struct {
	Message string              `json:"message"`
	Err     string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

func (b errorBody) copy() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Err
}

// Translate maps an HTTP response (or the transport error that prevented
// one) to an Outcome. Exactly one of status/transportErr is meaningful:
// when transportErr is non-nil, no response was received and status is
// ignored. The mapping is deterministic:
//
//	timeout / ctx deadline      → Timeout
//	any other transport error   → NetworkUnreachable
//	400                         → ValidationFailed
//	401                         → Unauthorized
//	403                         → Forbidden
//	404                         → NotFound
//	409                         → Conflict
//	422 (+ errors field map)    → ValidationFailed with Fields
//	429                         → RateLimited
//	500–599                     → ServerError
//	anything else               → Unknown
func Translate(status int, body []byte, transportErr error) *Outcome {
	if transportErr != nil {
		if isTimeout(transportErr) {
			return &Outcome{Kind: Timeout, Message: "the server took too long to respond"}
		}
		return &Outcome{Kind: NetworkUnreachable, Message: "could not reach the server"}
	}

	parsed := parseBody(body)

	o := &Outcome{}
	switch {
	case status == http.StatusBadRequest:
		o.Kind = ValidationFailed
		o.Message = "the request was rejected"
	case status == http.StatusUnauthorized:
		o.Kind = Unauthorized
		o.Message = "invalid credentials or session expired"
	case status == http.StatusForbidden:
		o.Kind = Forbidden
		o.Message = "access denied"
	case status == http.StatusNotFound:
		o.Kind = NotFound
		o.Message = "not found"
	case status == http.StatusConflict:
		o.Kind = Conflict
		o.Message = "already exists"
	case status == http.StatusUnprocessableEntity:
		o.Kind = ValidationFailed
		o.Message = "some fields are invalid"
		o.Fields = flattenFields(parsed.Errors)
	case status == http.StatusTooManyRequests:
		o.Kind = RateLimited
		o.Message = "too many attempts, try again later"
	case status >= 500 && status <= 599:
		o.Kind = ServerError
		o.Message = "server error, try again later"
	default:
		o.Kind = Unknown
		o.Message = fmt.Sprintf("unexpected response (status %d)", status)
	}

	// Server copy wins over the defaults above.
	if msg := parsed.copy(); msg != "" {
		o.Message = msg
	}
	return o
}

// Validation builds a ValidationFailed outcome for checks that fail before
// any request is made (e.g. mismatched password confirmation). It exists so
// local validation renders through the same path as server-side 422s.
func Validation(message string, fields map[string]string) *Outcome {
	return &Outcome{Kind: ValidationFailed, Message: message, Fields: fields}
}

func parseBody(body []byte) errorBody {
	var eb errorBody
	if len(body) == 0 {
		return eb
	}
	// Non-JSON bodies are ignored, defaults apply.
	_ = json.Unmarshal(body, &eb)
	return eb
}

// flattenFields keeps the first message per field; that is what gets
// attached next to the input.
func flattenFields(errs map[string][]string) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]string, len(errs))
	for field, msgs := range errs {
		if len(msgs) > 0 {
			out[field] = msgs[0]
		}
	}
	return out
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
