package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/hirehub/internal/apierr"
	"github.com/dmitrijs2005/hirehub/internal/logging"
)

// maxErrorBody bounds how much of an error response is read for translation.
const maxErrorBody = 64 << 10

// TokenSource provides the current bearer token for authenticated calls.
// The session token store satisfies this interface.
type TokenSource interface {
	Get() (string, bool)
}

// HTTPClient is the REST implementation of Client.
//
// Every request carries an X-Request-Id for correlation with backend logs.
// Authenticated requests attach "Authorization: Bearer <token>" from the
// TokenSource at call time, so a token rotated mid-session is picked up
// without reconstructing the client.
type HTTPClient struct {
	baseURL      string
	http         *http.Client
	tokens       TokenSource
	log          logging.Logger
	loginTimeout time.Duration
}

// NewHTTPClient builds an HTTPClient for the given base URL, e.g.
// "http://localhost/api". loginTimeout bounds only the login call; other
// calls rely on the transport timeout of httpClient.
func NewHTTPClient(baseURL string, httpClient *http.Client, tokens TokenSource, log logging.Logger, loginTimeout time.Duration) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         httpClient,
		tokens:       tokens,
		log:          log.With("component", "api"),
		loginTimeout: loginTimeout,
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, login string, password []byte) (*LoginResult, error) {
	// Login gets a dedicated timeout to bound perceived latency.
	ctx, cancel := context.WithTimeout(ctx, c.loginTimeout)
	defer cancel()

	body := map[string]string{"login": login, "password": string(password)}
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, false, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, login string, password []byte) error {
	body := map[string]string{"login": login, "password": string(password)}
	return c.do(ctx, http.MethodPost, "/auth/register", nil, body, false, nil)
}

func (c *HTTPClient) ConfirmRegistration(ctx context.Context, token string) error {
	q := url.Values{"token": {token}}
	return c.do(ctx, http.MethodGet, "/auth/confirm", q, nil, false, nil)
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, login string) error {
	body := map[string]string{"login": login}
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, body, false, nil)
}

func (c *HTTPClient) ConfirmPasswordReset(ctx context.Context, token string, password, repeatPassword []byte) error {
	q := url.Values{"token": {token}}
	body := map[string]string{
		"password":       string(password),
		"repeatPassword": string(repeatPassword),
	}
	return c.do(ctx, http.MethodPost, "/auth/confirm-reset-password", q, body, false, nil)
}

func (c *HTTPClient) ConfirmEmailChange(ctx context.Context, token string) (string, error) {
	q := url.Values{"token": {token}}
	var res struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/confirm-email-change", q, nil, false, &res); err != nil {
		return "", err
	}
	return res.Token, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, true, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) ChangeLogin(ctx context.Context, oldLogin, newLogin string) error {
	body := map[string]string{"login_old": oldLogin, "login": newLogin}
	return c.do(ctx, http.MethodPut, "/auth/profile/change-login", nil, body, true, nil)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd ProfileUpdate) (string, error) {
	var res struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPut, "/auth/profile", nil, upd, true, &res); err != nil {
		return "", err
	}
	return res.Token, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, struct{}{}, true, nil)
}

// do performs one request/response cycle: marshal the body, attach
// headers, classify any failure through apierr.Translate, and decode a
// 2xx response into out (when out is non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, auth bool, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		if token, ok := c.tokens.Get(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		outcome := apierr.Translate(0, nil, err)
		c.log.Warn(ctx, "request failed",
			"method", method, "path", path, "request_id", requestID, "kind", outcome.Kind.String())
		return outcome
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apierr.Translate(0, nil, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome := apierr.Translate(resp.StatusCode, data, nil)
		c.log.Warn(ctx, "request rejected",
			"method", method, "path", path, "request_id", requestID,
			"status", resp.StatusCode, "kind", outcome.Kind.String())
		return outcome
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
