// Package tmpl renders hook command templates.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// shellQuote wraps s in single quotes so the shell treats it as one word.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// orDefault returns value, or def when value is empty.
func orDefault(def, value string) string {
	if value == "" {
		return def
	}
	return value
}

var funcs = template.FuncMap{
	"shq":     shellQuote,
	"upper":   strings.ToUpper,
	"lower":   strings.ToLower,
	"default": orDefault,
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - shq: shell-quote a string
//   - upper, lower: change case
//   - default: {{ .Time | default "never" }}
func Render(text string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
