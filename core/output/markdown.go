package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MarkdownFormatter renders reports as markdown tables
type MarkdownFormatter struct{}

// Format returns the format type
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the report
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s\n\n", escapeMarkdown(report.Title))

	for _, sc := range report.Scenes {
		if report.IsProject() {
			fmt.Fprintf(bw, "## %s\n\n", escapeMarkdown(sc.Name))
		}
		if sc.Description != "" {
			fmt.Fprintf(bw, "%s\n\n", escapeMarkdown(sc.Description))
		}

		fmt.Fprintln(bw, "| Item | Selection | Amount |")
		fmt.Fprintln(bw, "|------|-----------|-------:|")
		for _, line := range sc.Lines {
			label := escapeMarkdown(line.Label)
			amount := FormatMoney(line.Amount, report.Currency)
			if line.Kind == LineTotal || line.Kind == LineSubtotal {
				label = "**" + label + "**"
				amount = "**" + amount + "**"
			}
			fmt.Fprintf(bw, "| %s | %s | %s |\n", label, escapeMarkdown(line.Selection), amount)
		}
		fmt.Fprintln(bw)

		fmt.Fprintf(bw, "- Duration: %s\n", FormatSeconds(sc.Shot.Duration))
		fmt.Fprintf(bw, "- Avg Cost/Sec: %s\n", FormatMoney(sc.CostPerSecond, report.Currency))
		for _, badge := range sc.Badges {
			fmt.Fprintf(bw, "- %s\n", badge)
		}
		fmt.Fprintln(bw)

		if len(sc.Chart) > 0 {
			fmt.Fprintln(bw, "| Category | Amount |")
			fmt.Fprintln(bw, "|----------|-------:|")
			for _, s := range sc.Chart {
				fmt.Fprintf(bw, "| %s | %s |\n", escapeMarkdown(s.Name), FormatMoney(s.Value, report.Currency))
			}
			fmt.Fprintln(bw)
		}
	}

	if report.IsProject() {
		fmt.Fprintf(bw, "**Project Total: %s**\n", FormatMoney(report.Total, report.Currency))
	}
	return bw.Flush()
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
