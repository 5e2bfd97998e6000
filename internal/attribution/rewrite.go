package attribution

import (
	"net/url"
	"strings"
)

// CheckoutDomains is the fixed allow-list of checkout-platform hosts
// eligible for link rewriting. A link matches when its hostname equals
// a listed domain or is a subdomain of one.
var CheckoutDomains = []string{
	"hotmart.com",
	"pay.kiwify.com.br",
	"kiwify.com.br",
	"eduzz.com",
	"digitalmanager.guru",
}

// HostAllowed reports whether a hostname matches the checkout allow-list,
// exactly or as a subdomain. Matching is case-insensitive.
func HostAllowed(host string) bool {
	host = strings.ToLower(host)
	for _, domain := range CheckoutDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// Rewrite appends the captured attribution to a checkout link. Each
// non-empty UTM key becomes a query parameter unless a parameter with
// the same name already exists; additionally src is filled from
// utm_source and sck from utm_campaign when those are absent. Existing
// query parameters are preserved byte-for-byte; new pairs are appended.
//
// The second return value is false when the URL was left untouched:
// empty params, a malformed URL or a host outside the allow-list.
func Rewrite(rawURL string, p Params) (string, bool) {
	if p.Empty() {
		return rawURL, false
	}
	u, err := url.Parse(rawURL)
	if err != nil || !HostAllowed(u.Hostname()) {
		return rawURL, false
	}

	existing, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return rawURL, false
	}

	var pairs []string
	add := func(key, value string) {
		if value == "" || existing.Has(key) {
			return
		}
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
		existing.Set(key, value)
	}
	for _, key := range Keys {
		add(key, p[key])
	}
	add("src", p["utm_source"])
	add("sck", p["utm_campaign"])

	if len(pairs) == 0 {
		return rawURL, false
	}
	appended := strings.Join(pairs, "&")
	if u.RawQuery == "" {
		u.RawQuery = appended
	} else {
		u.RawQuery += "&" + appended
	}
	return u.String(), true
}
