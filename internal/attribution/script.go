package attribution

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"text/template"
	"time"
)

//go:embed tracking.js.tmpl
var scriptTemplate string

// Script renders the client tracking snippet from the package constants,
// so the cookie name, UTM keys and checkout allow-list used by the
// browser are always the ones this package matches against.
func Script() ([]byte, error) {
	const op = "attribution.Script"

	tmpl, err := template.New("tracking.js").Parse(scriptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := scriptData()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

type scriptValues struct {
	CookieName    string
	MaxAgeSeconds string
	Keys          string
	Domains       string
}

// scriptData JSON-encodes every template value, which keeps the rendered
// snippet valid JavaScript literals.
func scriptData() (scriptValues, error) {
	name, err := json.Marshal(CookieName)
	if err != nil {
		return scriptValues{}, err
	}
	keys, err := json.Marshal(Keys)
	if err != nil {
		return scriptValues{}, err
	}
	domains, err := json.Marshal(CheckoutDomains)
	if err != nil {
		return scriptValues{}, err
	}
	return scriptValues{
		CookieName:    string(name),
		MaxAgeSeconds: fmt.Sprintf("%d", int(CookieTTL/time.Second)),
		Keys:          string(keys),
		Domains:       string(domains),
	}, nil
}
