package attribution

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostAllowed(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"hotmart.com", true},
		{"pay.hotmart.com", true},
		{"PAY.HOTMART.COM", true},
		{"pay.kiwify.com.br", true},
		{"kiwify.com.br", true},
		{"eduzz.com", true},
		{"sun.eduzz.com", true},
		{"digitalmanager.guru", true},
		{"example.com", false},
		{"nothotmart.com", false},
		{"hotmart.com.evil.io", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, HostAllowed(tt.host))
		})
	}
}

func TestRewrite(t *testing.T) {
	params := Params{"utm_source": "ig", "utm_campaign": "promo1"}

	tests := []struct {
		name        string
		rawURL      string
		params      Params
		wantChanged bool
		wantQuery   map[string]string
	}{
		{
			name:        "appends utm params and src/sck to checkout link",
			rawURL:      "https://pay.kiwify.com.br/checkout",
			params:      params,
			wantChanged: true,
			wantQuery: map[string]string{
				"utm_source":   "ig",
				"utm_campaign": "promo1",
				"src":          "ig",
				"sck":          "promo1",
			},
		},
		{
			name:        "existing parameter is not overwritten",
			rawURL:      "https://pay.hotmart.com/ABC123?utm_source=email&off=xyz",
			params:      params,
			wantChanged: true,
			wantQuery: map[string]string{
				"utm_source":   "email",
				"utm_campaign": "promo1",
				"off":          "xyz",
				"src":          "ig",
				"sck":          "promo1",
			},
		},
		{
			name:        "existing src is preserved",
			rawURL:      "https://eduzz.com/checkout?src=manual",
			params:      params,
			wantChanged: true,
			wantQuery: map[string]string{
				"src":          "manual",
				"utm_source":   "ig",
				"utm_campaign": "promo1",
				"sck":          "promo1",
			},
		},
		{
			name:        "empty params leave url untouched",
			rawURL:      "https://pay.kiwify.com.br/checkout",
			params:      Params{},
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Rewrite(tt.rawURL, tt.params)
			assert.Equal(t, tt.wantChanged, changed)
			if !tt.wantChanged {
				assert.Equal(t, tt.rawURL, got)
				return
			}
			u, err := url.Parse(got)
			require.NoError(t, err)
			query := u.Query()
			for key, want := range tt.wantQuery {
				assert.Equal(t, want, query.Get(key), "query key %s", key)
			}
		})
	}
}

func TestRewrite_OutsideAllowListIsUntouched(t *testing.T) {
	raw := "https://example.com/?utm_source=old"
	got, changed := Rewrite(raw, Params{"utm_source": "ig", "utm_campaign": "promo1"})
	assert.False(t, changed)
	assert.Equal(t, raw, got)
}

func TestRewrite_MalformedURLSkippedSilently(t *testing.T) {
	raw := "https://pay.kiwify.com.br/%zz?utm"
	got, changed := Rewrite(raw, Params{"utm_source": "ig"})
	assert.False(t, changed)
	assert.Equal(t, raw, got)
}

func TestRewrite_PreservesExistingQueryBytes(t *testing.T) {
	raw := "https://pay.kiwify.com.br/checkout?off=xyz&b=2"
	got, changed := Rewrite(raw, Params{"utm_source": "ig"})
	require.True(t, changed)
	assert.Contains(t, got, "off=xyz&b=2")
	assert.Contains(t, got, "utm_source=ig")
	assert.Contains(t, got, "src=ig")
}
