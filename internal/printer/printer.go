// Package printer writes styled, human-facing CLI output.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/synclog/internal/styles"
)

// Symbols
const (
	Check = "✔"
	Cross = "✘"
	Dot   = "•"
	Star  = "★"
)

type ctxKey struct{}

// Printer handles formatted output with colors and styles
type Printer struct {
	writer io.Writer
}

// New creates a new Printer that writes to the given writer
func New(w io.Writer) *Printer {
	return &Printer{writer: w}
}

// NewContext returns a context with the printer attached
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx retrieves the printer from context, or creates a default one
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(s string) {
	_, _ = io.WriteString(p.writer, s+"\n")
}

// FatalError prints a formatted error box and does NOT exit
// Caller should handle exit code
func (p *Printer) FatalError(err error) {
	if err == nil {
		return
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		p.printValidationErrors(err, fieldErrs)
		return
	}

	p.line(styles.ErrorStyle.Render("╭ Error"))
	p.line(styles.ErrorStyle.Render("│") + " " + styles.MutedStyle.Render(err.Error()))
	p.line(styles.ErrorStyle.Render("╵"))
}

// printValidationErrors formats criterio.FieldErrors one field per line.
func (p *Printer) printValidationErrors(wrappedErr error, fieldErrs criterio.FieldErrors) {
	// "load config: invalid config: <field errors>" -> "load config: invalid config"
	errContext := ""
	if idx := strings.Index(wrappedErr.Error(), fieldErrs.Error()); idx > 0 {
		errContext = strings.TrimSuffix(wrappedErr.Error()[:idx], ": ")
	}

	bar := styles.ErrorStyle.Render("│")

	p.line(styles.ErrorStyle.Render("╭ Validation Error"))
	if errContext != "" {
		p.line(bar + " " + styles.MutedStyle.Render(errContext))
		p.line(bar)
	}

	for _, fe := range fieldErrs {
		line := bar + " " + styles.ErrorStyle.Render(Cross) + " "
		if fe.Field != "" {
			line += styles.MutedStyle.Render(fe.Field + ": ")
		}
		p.line(line + fe.Err.Error())
	}

	p.line(styles.ErrorStyle.Render("╵"))
}

// Errorf prints an error message in red
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorStyle.Render(Cross + " " + fmt.Sprintf(format, args...)))
}

// Successf prints a success message in green
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.SuccessStyle.Render(Check + " " + fmt.Sprintf(format, args...)))
}

// Infof prints an info message in gray
func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.MutedStyle.Render(Dot + " " + fmt.Sprintf(format, args...)))
}

// Warnf prints a warning message in yellow
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.WarnStyle.Render(Dot + " " + fmt.Sprintf(format, args...)))
}

// Printf prints a plain message without colors
func (p *Printer) Printf(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

// Section prints a section header (bold + underlined)
func (p *Printer) Section(title string) {
	p.line(styles.SectionStyle.Render(title))
}

// StatusOK returns a green checkmark with msg for use in tables.
func StatusOK(msg string) string {
	return styles.SuccessStyle.Render(Check) + " " + msg
}

// StatusFailed returns a red cross with msg for use in tables.
func StatusFailed(msg string) string {
	return styles.ErrorStyle.Render(Cross) + " " + msg
}

// Highlight marks a table cell, e.g. the latest successful result.
func Highlight(msg string) string {
	return styles.WarnStyle.Render(Star) + " " + msg
}

// CheckItem prints a success item with green checkmark
func (p *Printer) CheckItem(label, detail string) {
	p.printItem(styles.SuccessStyle, Check, label, detail)
}

// WarnItem prints a warning item with yellow dot
func (p *Printer) WarnItem(label, detail string) {
	p.printItem(styles.WarnStyle, Dot, label, detail)
}

// FailItem prints a failure item with red cross
func (p *Printer) FailItem(label, detail string) {
	p.printItem(styles.ErrorStyle, Cross, label, detail)
}

func (p *Printer) printItem(style lipgloss.Style, symbol, label, detail string) {
	line := "  " + style.Render(symbol) + " " + label
	if detail != "" {
		line += ": " + detail
	}
	p.line(line)
}
