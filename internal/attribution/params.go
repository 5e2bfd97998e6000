// Package attribution implements first-touch UTM attribution: capturing
// UTM parameters from a query string, persisting them in a cookie and
// rewriting outbound checkout links so attribution survives the handoff
// to an external sales platform. The served tracking script is rendered
// from the same constants, so client and server always agree.
package attribution

import "net/url"

// Keys is the fixed set of recognized UTM parameter names.
var Keys = []string{
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"utm_content",
	"utm_term",
}

// Params maps UTM keys to their captured values. Only recognized keys
// with non-empty values are ever stored.
type Params map[string]string

// ParseQuery extracts the recognized UTM keys from query values.
// Percent-decoding is done by url.Values itself. An empty result means
// "no capture".
func ParseQuery(values url.Values) Params {
	p := Params{}
	for _, key := range Keys {
		if v := values.Get(key); v != "" {
			p[key] = v
		}
	}
	return p
}

// ParseRawQuery extracts UTM keys from a raw query string such as
// "utm_source=ig&utm_campaign=promo1". Malformed input yields whatever
// url.ParseQuery could salvage; it never fails the caller.
func ParseRawQuery(rawQuery string) Params {
	values, _ := url.ParseQuery(rawQuery)
	return ParseQuery(values)
}

// Empty reports whether no UTM values were captured.
func (p Params) Empty() bool {
	return len(p) == 0
}
