// Package output provides output formatting interfaces.
// This package produces human and machine-readable estimate reports.
package output

import (
	"fmt"
	"io"
	"strings"

	"vfx-cost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatHTML is an HTML report
	FormatHTML Format = "html"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formats lists every supported format
var Formats = []Format{FormatCLI, FormatJSON, FormatHTML, FormatMarkdown}

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cli", "table":
		return FormatCLI, nil
	case "json":
		return FormatJSON, nil
	case "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", errors.NotSupported(fmt.Sprintf("output format %q", s))
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Options controls report building and rendering
type Options struct {
	// Title heads the report
	Title string

	// ShowDetails lists every driver, including those that cost nothing
	ShowDetails bool

	// NoColor disables terminal colours
	NoColor bool
}

// NewFormatter returns the formatter for a format
func NewFormatter(format Format, opts Options) (Formatter, error) {
	switch format {
	case FormatCLI:
		return &CLIFormatter{noColor: opts.NoColor}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatHTML:
		return &HTMLFormatter{}, nil
	case FormatMarkdown:
		return &MarkdownFormatter{}, nil
	}
	return nil, errors.NotSupported(fmt.Sprintf("output format %q", format))
}

// Render builds the formatter for format and renders the report in one call
func Render(w io.Writer, format Format, report *Report, opts Options) error {
	f, err := NewFormatter(format, opts)
	if err != nil {
		return err
	}
	return f.Render(w, report)
}
