package output

import (
	"io"

	"vfx-cost/core/ui"
)

// CLIFormatter renders reports as terminal tables
type CLIFormatter struct {
	noColor bool
}

// Format returns the format type
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes one table, chart and summary per scene, then the project total
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	out := ui.NewWriter(w, f.noColor)

	for _, sc := range report.Scenes {
		out.Header(sc.Name)
		if sc.Description != "" {
			out.Line(sc.Description)
			out.Line("")
		}

		table := out.NewTable("Item", "Selection", "Amount").AlignRight(2)
		for _, line := range sc.Lines {
			table.AddStyledRow(lineStyle(line.Kind), line.Label, line.Selection, FormatMoney(line.Amount, report.Currency))
		}
		table.Render()
		out.Line("")

		segments := make([]ui.Segment, len(sc.Chart))
		for i, s := range sc.Chart {
			v, _ := s.Value.Float64()
			segments[i] = ui.Segment{Label: s.Name, Value: v, Color: s.Color}
		}
		out.SubHeader("Cost Distribution")
		out.Bar(40, segments)
		out.Line("")

		summary := out.NewSummary("Total")
		summary.Total = FormatMoney(sc.Breakdown.Total, report.Currency)
		summary.PerSecond = FormatMoney(sc.CostPerSecond, report.Currency)
		summary.Duration = FormatSeconds(sc.Shot.Duration)
		summary.Badges = sc.Badges
		summary.Render()
	}

	if report.IsProject() {
		out.Header(report.Title)
		summary := out.NewSummary("Project Total")
		summary.Total = FormatMoney(report.Total, report.Currency)
		summary.Render()
	}
	return nil
}

func lineStyle(kind LineKind) string {
	switch kind {
	case LineDiscount:
		return ui.Green
	case LineSubtotal:
		return ui.Dim
	case LineTotal:
		return ui.Bold
	}
	return ""
}
