// Package ui renders rich terminal output with tables and colour swatches.
package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Colors for terminal output
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// color applies color if enabled
func (w *Writer) color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Hex converts a #rrggbb colour into a 24-bit foreground escape.
// Malformed input yields an empty string.
func Hex(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ""
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", v>>16, (v>>8)&0xff, v&0xff)
}

// Print writes a line
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Line writes text verbatim followed by a newline
func (w *Writer) Line(text string) {
	fmt.Fprintln(w.out, text)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Line("")
	w.Line(w.color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Line("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Line(w.color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Line(w.color(Green, "✓ ") + fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Line(w.color(Yellow, "⚠ ") + fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Line(w.color(Red, "✗ ") + fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.Line(w.color(Blue, "ℹ ") + fmt.Sprintf(format, args...))
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	w.Line(w.color(Dim, "  "+fmt.Sprintf(format, args...)))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	styles  []string
	widths  []int
	right   map[int]bool
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		widths:  widths,
		right:   make(map[int]bool),
	}
}

// AlignRight right-aligns a column, typically amounts
func (t *Table) AlignRight(col int) *Table {
	t.right[col] = true
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	t.AddStyledRow("", cells...)
}

// AddStyledRow adds a row rendered in the given colour
func (t *Table) AddStyledRow(style string, cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := utf8.RuneCountInString(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
	t.styles = append(t.styles, style)
}

// Render prints the table
func (t *Table) Render() {
	t.w.Line(t.w.color(Bold, t.format(t.headers)))

	sep := make([]string, len(t.widths))
	for i, w := range t.widths {
		sep[i] = strings.Repeat("─", w)
	}
	t.w.Line(strings.Join(sep, "─┼─"))

	for i, row := range t.rows {
		line := t.format(row)
		if t.styles[i] != "" {
			line = t.w.color(t.styles[i], line)
		}
		t.w.Line(line)
	}
}

func (t *Table) format(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := strings.Repeat(" ", t.widths[i]-utf8.RuneCountInString(cell))
		if t.right[i] {
			parts[i] = pad + cell
		} else {
			parts[i] = cell + pad
		}
	}
	return strings.Join(parts, " │ ")
}

// Segment is one coloured share of a stacked bar
type Segment struct {
	Label string
	Value float64
	Color string // #rrggbb
}

// Bar prints a stacked horizontal bar followed by a legend
func (w *Writer) Bar(width int, segments []Segment) {
	var total float64
	for _, s := range segments {
		total += s.Value
	}
	if total <= 0 || width <= 0 {
		w.Line(w.color(Dim, "  (nothing to chart)"))
		return
	}

	var bar strings.Builder
	used := 0
	for i, s := range segments {
		n := int(s.Value / total * float64(width))
		if i == len(segments)-1 {
			n = width - used
		}
		used += n
		bar.WriteString(w.swatch(s.Color, strings.Repeat("█", n)))
	}
	w.Line("  " + bar.String())

	for _, s := range segments {
		w.Line(fmt.Sprintf("  %s %-20s %5.1f%%", w.swatch(s.Color, "■"), s.Label, s.Value/total*100))
	}
}

func (w *Writer) swatch(hex, text string) string {
	if code := Hex(hex); code != "" {
		return w.color(code, text)
	}
	return text
}

// Summary renders an estimate summary box
type Summary struct {
	w         *Writer
	Title     string
	Total     string
	PerSecond string
	Duration  string
	Badges    []string
}

// NewSummary creates a summary box
func (w *Writer) NewSummary(title string) *Summary {
	return &Summary{w: w, Title: title}
}

// Render prints the summary
func (s *Summary) Render() {
	s.w.Line(s.w.color(Bold, "╭─────────────────────────────────────────╮"))
	s.w.Line(s.w.color(Bold, "│") + s.w.color(Green, fmt.Sprintf("  %-14s %-24s", s.Title+":", s.Total)) + s.w.color(Bold, "│"))
	if s.PerSecond != "" {
		s.w.Line(s.w.color(Bold, "│") + s.w.color(Dim, fmt.Sprintf("  %-14s %-24s", "Cost/Sec:", s.PerSecond)) + s.w.color(Bold, "│"))
	}
	if s.Duration != "" {
		s.w.Line(s.w.color(Bold, "│") + s.w.color(Dim, fmt.Sprintf("  %-14s %-24s", "Duration:", s.Duration)) + s.w.color(Bold, "│"))
	}
	s.w.Line(s.w.color(Bold, "╰─────────────────────────────────────────╯"))

	for _, badge := range s.Badges {
		s.w.Line(s.w.color(Green, "  ● ") + badge)
	}
}
