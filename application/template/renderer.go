// Package template expands variable references in bridge config files
// before they are parsed.
package template

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"
)

// Renderer expands {{.vars.NAME}} references in a YAML config document.
// Besides the variables, documents may use two helpers:
//
//	{{default "/var/cache/wallet" .vars.CACHE}}  fallback for an empty value
//	{{quote .vars.WASM}}                        YAML double-quoted scalar
type Renderer struct {
	missingKey string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStrict controls unknown variables. Strict renderers (the default)
// reject a document that references a variable absent from vars; lenient
// ones expand it to an empty string.
func WithStrict(strict bool) Option {
	return func(r *Renderer) {
		if strict {
			r.missingKey = "missingkey=error"
		} else {
			r.missingKey = "missingkey=zero"
		}
	}
}

// New returns a strict Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{missingKey: "missingkey=error"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var helpers = template.FuncMap{
	"default": func(fallback, value string) string {
		if value == "" {
			return fallback
		}
		return value
	},
	"quote": strconv.Quote,
}

// Render returns raw with its variable references expanded.
// Documents without references are returned unchanged.
func (r *Renderer) Render(raw []byte, vars map[string]string) ([]byte, error) {
	if !bytes.Contains(raw, []byte("{{")) {
		return raw, nil
	}
	if vars == nil {
		vars = map[string]string{}
	}

	doc, err := template.New("bridge config").
		Option(r.missingKey).
		Funcs(helpers).
		Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("config template: %w", err)
	}

	var out bytes.Buffer
	if err := doc.Execute(&out, map[string]map[string]string{"vars": vars}); err != nil {
		return nil, fmt.Errorf("config variable: %w", err)
	}
	return out.Bytes(), nil
}
