package output

import (
	"fmt"
	"html/template"
	"io"

	"github.com/shopspring/decimal"

	"vfx-cost/core/types"
)

// HTMLFormatter renders a standalone HTML report styled from the style table
type HTMLFormatter struct{}

// Format returns the format type
func (f *HTMLFormatter) Format() Format {
	return FormatHTML
}

// Render writes the report
func (f *HTMLFormatter) Render(w io.Writer, report *Report) error {
	return htmlTemplate.Execute(w, report)
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal, c types.Currency) string {
		return FormatMoney(d, c)
	},
	"seconds": FormatSeconds,
	"segmentStyle": func(s Segment, chart []Segment) template.CSS {
		total := decimal.Zero
		for _, c := range chart {
			total = total.Add(c.Value)
		}
		pct := 0.0
		if total.IsPositive() {
			pct, _ = s.Value.Div(total).Mul(decimal.NewFromInt(100)).Float64()
		}
		return template.CSS(fmt.Sprintf("width:%.2f%%;background-color:%s", pct, s.Color))
	},
	"swatch": func(color string) template.CSS {
		return template.CSS("background-color:" + color)
	},
	"isTotal": func(k LineKind) bool {
		return k == LineTotal || k == LineSubtotal
	},
	"isDiscount": func(k LineKind) bool {
		return k == LineDiscount
	},
}).Parse(htmlSource))

const htmlSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="min-h-screen bg-black text-neutral-100 p-8">
<main class="max-w-4xl mx-auto space-y-10">
<h1 class="text-2xl font-bold text-white">{{.Title}}</h1>
{{- $currency := .Currency}}
{{- $project := .IsProject}}
{{range .Scenes}}
<section class="p-6 bg-neutral-900/50 rounded-2xl border border-neutral-800 space-y-6">
  {{- if $project}}<h2 class="text-xl font-semibold">{{.Name}}</h2>{{end}}
  {{- if .Description}}<p class="text-neutral-400 text-sm">{{.Description}}</p>{{end}}
  <div class="text-center p-6 bg-neutral-950 rounded-2xl border border-neutral-800">
    <p class="text-neutral-400 text-sm uppercase tracking-widest mb-1">Total Estimated Cost</p>
    <div class="text-4xl font-bold text-white">{{money .Breakdown.Total $currency}}</div>
    {{- range .Badges}}
    <div class="text-xs text-emerald-400 font-medium bg-emerald-900/20 py-1 px-2 rounded-full inline-block mt-2 border border-emerald-900/50">{{.}}</div>
    {{- end}}
  </div>
  <div class="grid grid-cols-2 gap-4 text-center">
    <div class="p-3 rounded-lg border border-neutral-800"><span class="block text-neutral-400 text-xs">Duration</span>{{seconds .Shot.Duration}}</div>
    <div class="p-3 rounded-lg border border-neutral-800"><span class="block text-neutral-400 text-xs">Avg Cost/Sec</span>{{money .CostPerSecond $currency}}</div>
  </div>
  {{- $chart := .Chart}}
  {{- if $chart}}
  <div class="flex h-4 w-full overflow-hidden rounded-full">
    {{- range $chart}}<div title="{{.Name}}" style="{{segmentStyle . $chart}}"></div>{{end}}
  </div>
  <ul class="text-sm space-y-1">
    {{- range $chart}}
    <li class="flex justify-between"><span><span class="inline-block w-2 h-2 rounded-full mr-2" style="{{swatch .Color}}"></span>{{.Name}}</span><span>{{money .Value $currency}}</span></li>
    {{- end}}
  </ul>
  {{- else}}
  <p class="text-neutral-500 text-sm">Add duration to see breakdown</p>
  {{- end}}
  <table class="w-full text-sm">
    <thead><tr class="text-neutral-500 uppercase text-xs"><th class="text-left">Item</th><th class="text-left">Selection</th><th class="text-right">Amount</th></tr></thead>
    <tbody>
    {{- range .Lines}}
      <tr class="border-b border-neutral-800{{if isTotal .Kind}} font-semibold{{end}}{{if isDiscount .Kind}} text-emerald-400{{end}}">
        <td class="py-1">{{.Label}}</td>
        <td>{{if .Selection}}<span class="px-2 py-0.5 rounded border {{.Classes}}">{{.Selection}}</span>{{end}}</td>
        <td class="text-right">{{money .Amount $currency}}</td>
      </tr>
    {{- end}}
    </tbody>
  </table>
</section>
{{end}}
{{- if $project}}
<div class="text-right text-2xl font-bold">Project Total: {{money .Total .Currency}}</div>
{{- end}}
</main>
</body>
</html>
`
