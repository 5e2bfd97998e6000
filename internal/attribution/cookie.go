package attribution

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// CookieName is the fixed key of the attribution cookie.
const CookieName = "mpro_utm"

// CookieTTL is how long captured attribution survives in the browser.
// A fresh query string containing UTM parameters always overwrites the
// stored set (most-recent explicit touch wins).
const CookieTTL = 30 * 24 * time.Hour

// EncodeCookieValue serializes params as URL-encoded JSON, the format
// stored in the attribution cookie.
func EncodeCookieValue(p Params) (string, error) {
	const op = "attribution.EncodeCookieValue"
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return url.QueryEscape(string(data)), nil
}

// DecodeCookieValue parses a cookie value produced by EncodeCookieValue.
func DecodeCookieValue(value string) (Params, error) {
	const op = "attribution.DecodeCookieValue"
	raw, err := url.QueryUnescape(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var p Params
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// NewCookie builds the attribution cookie for the captured params:
// path "/", 30-day expiry, SameSite=Lax.
func NewCookie(p Params) (*http.Cookie, error) {
	value, err := EncodeCookieValue(p)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(CookieTTL),
		MaxAge:   int(CookieTTL / time.Second),
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// FromRequest returns the attribution set active for a request: freshly
// parsed query parameters win, else the previously stored cookie value,
// else an empty set. A broken cookie is treated as absent.
func FromRequest(r *http.Request) Params {
	if p := ParseQuery(r.URL.Query()); !p.Empty() {
		return p
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Params{}
	}
	p, err := DecodeCookieValue(cookie.Value)
	if err != nil {
		return Params{}
	}
	return p
}
