package flow

import (
	"net/url"
	"strings"
)

// TokenFromLink extracts the one-time token from a pasted confirmation
// link. A bare token (no scheme, no path, no query) is accepted as-is, so
// users can paste just the token from the mail. Returns "" when nothing
// usable is found.
func TokenFromLink(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if token := u.Query().Get("token"); token != "" {
		return token
	}

	// Not a link at all: treat the whole input as the token.
	if u.Scheme == "" && u.Host == "" && u.RawQuery == "" && !strings.ContainsAny(raw, "/?&= ") {
		return raw
	}
	return ""
}
