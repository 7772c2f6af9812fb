package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"vfx-cost/core/pricing"
	"vfx-cost/core/project"
	"vfx-cost/core/types"
)

func sampleShot() types.ShotConfiguration {
	shot := types.DefaultShot()
	shot.BasePrice = 10000
	shot.Duration = 5
	shot.Resolution = types.Resolution4K
	shot.FrameRate = types.FrameRate60
	shot.Roto = types.ComplexityEasy
	shot.Simulation = types.ComplexityHard
	return shot
}

func compute(t *testing.T, shot types.ShotConfiguration) *types.Breakdown {
	t.Helper()
	b, err := pricing.ComputeBreakdown(shot)
	if err != nil {
		t.Fatalf("ComputeBreakdown failed: %v", err)
	}
	return b
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"12345", "12,345 MMK"},
		{"902.5", "903 MMK"},
		{"0.4", "0 MMK"},
		{"-47.5", "-48 MMK"},
		{"1234567.49", "1,234,567 MMK"},
		// beyond int64
		{"10000000000000000000", "10,000,000,000,000,000,000 MMK"},
		{"-9300000000000000000.6", "-9,300,000,000,000,000,001 MMK"},
	}

	for _, tt := range tests {
		if got := FormatMoney(decimal.RequireFromString(tt.amount), types.CurrencyMMK); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.amount, got, tt.want)
		}
	}

	if got := FormatAmount(decimal.NewFromInt(5000)); got != "5,000" {
		t.Errorf("FormatAmount = %q, want 5,000", got)
	}
	if got := FormatSeconds(2.75); got != "2.75s" {
		t.Errorf("FormatSeconds = %q, want 2.75s", got)
	}
}

func TestLineItems(t *testing.T) {
	shot := sampleShot()
	b := compute(t, shot)

	lines := LineItems(shot, b, false)

	if lines[0].Kind != LineBase || !lines[0].Amount.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("Expected base line of 50000 first, got %+v", lines[0])
	}
	last := lines[len(lines)-1]
	if last.Kind != LineTotal || !last.Amount.Equal(decimal.NewFromInt(393000)) {
		t.Errorf("Expected total of 393000 last, got %+v", last)
	}

	keys := make(map[string]LineItem)
	for _, l := range lines {
		keys[l.Key] = l
	}
	for _, key := range []string{"resolution", "fps", "roto", "simulation"} {
		if _, ok := keys[key]; !ok {
			t.Errorf("Expected a line for %s", key)
		}
	}
	if _, ok := keys["cleanup"]; ok {
		t.Error("Expected idle drivers to be omitted")
	}
	if keys["roto"].Selection != "Easy" {
		t.Errorf("Expected roto selection Easy, got %q", keys["roto"].Selection)
	}
	if keys["simulation"].Classes == "" {
		t.Error("Expected style classes on driver lines")
	}

	detailed := LineItems(shot, b, true)
	// base, resolution, fps, 17 drivers, brief, subtotal, total
	if len(detailed) != 23 {
		t.Errorf("Expected 23 detailed lines, got %d", len(detailed))
	}
}

func TestLineItems_Discounts(t *testing.T) {
	shot := types.DefaultShot()
	shot.BasePrice = 200
	shot.Duration = 5
	shot.OnSceneSupervision = types.ToggleYes
	shot.AllowShowreelUsage = types.ToggleYes
	b := compute(t, shot)

	lines := LineItems(shot, b, false)
	n := len(lines)
	if n < 4 {
		t.Fatalf("Expected at least 4 lines, got %d", n)
	}

	mgmt, reel, total := lines[n-3], lines[n-2], lines[n-1]
	if mgmt.Label != ManagementBadge || !mgmt.Amount.Equal(decimal.NewFromInt(-50)) {
		t.Errorf("Unexpected management line %+v", mgmt)
	}
	if reel.Label != ReelBadge || !reel.Amount.Equal(decimal.RequireFromString("-47.5")) {
		t.Errorf("Unexpected reel line %+v", reel)
	}
	if !total.Amount.Equal(decimal.RequireFromString("902.5")) {
		t.Errorf("Expected total 902.5, got %s", total.Amount)
	}
}

func TestChartSegments(t *testing.T) {
	b := compute(t, sampleShot())
	segments := ChartSegments(b)

	want := []struct {
		name  string
		value int64
		color string
	}{
		{"Base Cost", 50000, "#94a3b8"},
		{"Resolution & FPS", 75500, "#22d3ee"},
		{"Prep / Roto", 17500, "#10b981"},
		{"FX/Sim", 250000, "#fb7185"},
	}

	if len(segments) != len(want) {
		t.Fatalf("Expected %d segments, got %d: %+v", len(want), len(segments), segments)
	}
	for i, w := range want {
		s := segments[i]
		if s.Name != w.name || !s.Value.Equal(decimal.NewFromInt(w.value)) || s.Color != w.color {
			t.Errorf("Segment %d: expected %s=%d %s, got %s=%s %s", i, w.name, w.value, w.color, s.Name, s.Value, s.Color)
		}
	}
}

func TestNewShotReport(t *testing.T) {
	shot := types.DefaultShot()
	shot.BasePrice = 200
	shot.OnSceneSupervision = types.ToggleYes
	b := compute(t, shot)

	r := NewShotReport(shot, b, Options{})
	if r.Title != "Shot Estimate" || r.IsProject() {
		t.Errorf("Unexpected report header %q project=%v", r.Title, r.IsProject())
	}
	sc := r.Scenes[0]
	if len(sc.Badges) != 1 || sc.Badges[0] != ManagementBadge {
		t.Errorf("Expected the management badge only, got %v", sc.Badges)
	}
	// 950 / 5
	if !sc.CostPerSecond.Equal(decimal.NewFromInt(190)) {
		t.Errorf("Expected cost per second 190, got %s", sc.CostPerSecond)
	}

	shot.Duration = 0
	r = NewShotReport(shot, compute(t, shot), Options{})
	if !r.Scenes[0].CostPerSecond.IsZero() {
		t.Errorf("Expected zero cost per second for an empty shot, got %s", r.Scenes[0].CostPerSecond)
	}
}

func projectReport(t *testing.T) *Report {
	t.Helper()
	second := types.DefaultShot()
	second.Cleanup = types.ComplexityMedium

	est, err := project.EstimateScenes(pricing.NewEngine(nil), []types.Scene{
		{ID: "a", Name: "Opening | Wide", Description: "Establishing", Data: sampleShot()},
		{ID: "b", Name: "Insert", Data: second},
	})
	if err != nil {
		t.Fatalf("EstimateScenes failed: %v", err)
	}
	return NewProjectReport(est, Options{Title: "Pilot"})
}

func TestRender_AllFormats(t *testing.T) {
	r := projectReport(t)

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, format, r, Options{NoColor: true}); err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if buf.Len() == 0 {
				t.Fatal("Expected output")
			}
		})
	}
}

func TestRender_Markdown(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownFormatter{}).Render(&buf, projectReport(t)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"# Pilot", `## Opening \| Wide`, "| Roto | Easy | 17,500 MMK |", "**Total**", "**Project Total: "} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected markdown to contain %q\n%s", want, out)
		}
	}
	if strings.Index(out, "**Project Total") < strings.LastIndex(out, "| **Total** |") {
		t.Error("Expected the grand total after every scene")
	}
}

func TestRender_CLI(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CLIFormatter{noColor: true}).Render(&buf, projectReport(t)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Opening | Wide", "Establishing", "393,000 MMK", "Project Total", "Cost Distribution"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected CLI output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Expected no escapes with colour disabled")
	}
}

func TestRender_HTML(t *testing.T) {
	var buf bytes.Buffer
	if err := (&HTMLFormatter{}).Render(&buf, projectReport(t)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"<title>Pilot</title>", "Opening | Wide", "background-color:#fb7185", "bg-yellow-900/20", "Project Total:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected HTML to contain %q", want)
		}
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Render(&buf, projectReport(t)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var decoded struct {
		Title  string `json:"title"`
		Total  string `json:"total"`
		Scenes []struct {
			Name  string `json:"name"`
			Lines []struct {
				Label string `json:"label"`
			} `json:"lines"`
		} `json:"scenes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if decoded.Title != "Pilot" || len(decoded.Scenes) != 2 {
		t.Errorf("Unexpected report %+v", decoded)
	}
	if decoded.Total != "393725" {
		t.Errorf("Expected full-precision total 393725, got %s", decoded.Total)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatCLI,
		"table":    FormatCLI,
		"JSON":     FormatJSON,
		"html":     FormatHTML,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("Expected an error for an unsupported format")
	}
}
