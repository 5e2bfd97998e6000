package attribution

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		want     Params
	}{
		{
			name:     "captures recognized keys",
			rawQuery: "utm_source=ig&utm_campaign=promo1",
			want:     Params{"utm_source": "ig", "utm_campaign": "promo1"},
		},
		{
			name:     "decodes percent encoding",
			rawQuery: "utm_source=insta%20stories&utm_term=ver%C3%A3o",
			want:     Params{"utm_source": "insta stories", "utm_term": "verão"},
		},
		{
			name:     "ignores unrecognized keys",
			rawQuery: "utm_source=ig&gclid=abc&fbclid=def",
			want:     Params{"utm_source": "ig"},
		},
		{
			name:     "skips empty values",
			rawQuery: "utm_source=&utm_medium=cpc",
			want:     Params{"utm_medium": "cpc"},
		},
		{
			name:     "no utm parameters means no capture",
			rawQuery: "page=2&sort=asc",
			want:     Params{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.rawQuery)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ParseQuery(values))
		})
	}
}

func TestParamsEmpty(t *testing.T) {
	assert.True(t, Params{}.Empty())
	assert.False(t, Params{"utm_source": "ig"}.Empty())
}
