package attribution

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieValueRoundTrip(t *testing.T) {
	params := Params{"utm_source": "ig", "utm_campaign": "promo1"}

	value, err := EncodeCookieValue(params)
	require.NoError(t, err)

	decoded, err := DecodeCookieValue(value)
	require.NoError(t, err)
	assert.Equal(t, params, decoded)
}

func TestDecodeCookieValue_Garbage(t *testing.T) {
	_, err := DecodeCookieValue("%7Bnot-json")
	assert.Error(t, err)
}

func TestNewCookie(t *testing.T) {
	cookie, err := NewCookie(Params{"utm_source": "ig"})
	require.NoError(t, err)

	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int(CookieTTL/time.Second), cookie.MaxAge)
	assert.WithinDuration(t, time.Now().Add(CookieTTL), cookie.Expires, time.Minute)

	decoded, err := DecodeCookieValue(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, Params{"utm_source": "ig"}, decoded)
}

func TestFromRequest(t *testing.T) {
	storedValue, err := EncodeCookieValue(Params{"utm_source": "fb"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		target string
		cookie *http.Cookie
		want   Params
	}{
		{
			name:   "fresh query wins over cookie",
			target: "/?utm_source=ig&utm_campaign=promo1",
			cookie: &http.Cookie{Name: CookieName, Value: storedValue},
			want:   Params{"utm_source": "ig", "utm_campaign": "promo1"},
		},
		{
			name:   "falls back to stored cookie",
			target: "/landing",
			cookie: &http.Cookie{Name: CookieName, Value: storedValue},
			want:   Params{"utm_source": "fb"},
		},
		{
			name:   "nothing captured, nothing stored",
			target: "/landing",
			want:   Params{},
		},
		{
			name:   "broken cookie treated as absent",
			target: "/landing",
			cookie: &http.Cookie{Name: CookieName, Value: "%%%"},
			want:   Params{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			assert.Equal(t, tt.want, FromRequest(req))
		})
	}
}
