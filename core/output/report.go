package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"vfx-cost/core/project"
	"vfx-cost/core/style"
	"vfx-cost/core/types"
)

// LineKind classifies a line item
type LineKind string

const (
	LineBase     LineKind = "base"
	LineDriver   LineKind = "driver"
	LineSubtotal LineKind = "subtotal"
	LineDiscount LineKind = "discount"
	LineTotal    LineKind = "total"
)

// Badge texts shown when a discount applies
const (
	ManagementBadge = "Management Discount (-5%)"
	ReelBadge       = "Reel Usage Discount (-5%)"
)

// LineItem is one row of an itemized report
type LineItem struct {
	// Key is the configuration field the line prices, empty for totals
	Key string `json:"key,omitempty"`

	// Label is the category label
	Label string `json:"label"`

	// Selection is the chosen level or setting
	Selection string `json:"selection,omitempty"`

	// Amount is the line amount; discounts are negative
	Amount decimal.Decimal `json:"amount"`

	// Kind classifies the line
	Kind LineKind `json:"kind"`

	// Classes style the selection in HTML output
	Classes style.Classes `json:"classes,omitempty"`
}

// Segment is one slice of the cost chart
type Segment struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// SceneReport is the report section for one scene
type SceneReport struct {
	ID          string                  `json:"id,omitempty"`
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Shot        types.ShotConfiguration `json:"shot"`
	Breakdown   *types.Breakdown        `json:"breakdown"`

	// Lines end with the scene total
	Lines []LineItem `json:"lines"`

	// Chart holds the positive display groups
	Chart []Segment `json:"chart"`

	// CostPerSecond is total / duration, zero for an empty shot
	CostPerSecond decimal.Decimal `json:"costPerSecond"`

	// Badges name the discounts that applied
	Badges []string `json:"badges,omitempty"`
}

// Report is a renderable estimate of one shot or a whole project
type Report struct {
	Title    string         `json:"title"`
	Currency types.Currency `json:"currency"`
	Scenes   []SceneReport  `json:"scenes"`

	// Total is the grand total over all scenes
	Total decimal.Decimal `json:"total"`
}

// IsProject reports whether the report spans more than one scene
func (r *Report) IsProject() bool {
	return len(r.Scenes) > 1
}

// NewShotReport builds a report for a single shot
func NewShotReport(shot types.ShotConfiguration, b *types.Breakdown, opts Options) *Report {
	title := opts.Title
	if title == "" {
		title = "Shot Estimate"
	}
	return &Report{
		Title:    title,
		Currency: b.Currency,
		Scenes:   []SceneReport{newSceneReport(types.Scene{Name: title, Data: shot}, b, opts.ShowDetails)},
		Total:    b.Total,
	}
}

// NewProjectReport builds a report for a priced project
func NewProjectReport(est *project.Estimate, opts Options) *Report {
	title := opts.Title
	if title == "" {
		title = "Project Estimate"
	}
	r := &Report{
		Title:    title,
		Currency: est.Currency,
		Scenes:   make([]SceneReport, 0, len(est.Scenes)),
		Total:    est.Total,
	}
	for _, se := range est.Scenes {
		r.Scenes = append(r.Scenes, newSceneReport(se.Scene, se.Breakdown, opts.ShowDetails))
	}
	return r
}

func newSceneReport(scene types.Scene, b *types.Breakdown, detailed bool) SceneReport {
	sr := SceneReport{
		ID:            scene.ID,
		Name:          scene.Name,
		Description:   scene.Description,
		Shot:          scene.Data,
		Breakdown:     b,
		Lines:         LineItems(scene.Data, b, detailed),
		Chart:         ChartSegments(b),
		CostPerSecond: b.CostPerSecond(scene.Data.Duration),
	}
	if b.HasManagementDiscount() {
		sr.Badges = append(sr.Badges, ManagementBadge)
	}
	if b.HasReelDiscount() {
		sr.Badges = append(sr.Badges, ReelBadge)
	}
	return sr
}

// LineItems itemizes a breakdown. Drivers left at their lowest level that
// cost nothing are omitted unless detailed is set. Discounts are negative
// and the total is always last.
func LineItems(shot types.ShotConfiguration, b *types.Breakdown, detailed bool) []LineItem {
	lines := []LineItem{{
		Key:       "basePrice",
		Label:     "Shot Base Cost",
		Selection: fmt.Sprintf("%s × %ss", decimal.NewFromFloat(types.Amount(shot.BasePrice)), decimal.NewFromFloat(types.Amount(shot.Duration))),
		Amount:    b.ShotBaseCost,
		Kind:      LineBase,
	}}

	add := func(key, label, selection string, amount decimal.Decimal, idle bool) {
		if idle && amount.IsZero() && !detailed {
			return
		}
		lines = append(lines, LineItem{
			Key:       key,
			Label:     label,
			Selection: selection,
			Amount:    amount,
			Kind:      LineDriver,
			Classes:   style.ClassesFor(key, selection),
		})
	}

	res := shot.Resolution.Canonical()
	add("resolution", "Resolution", string(res), b.ResolutionSurcharge, res == types.Resolution1080p)
	fps := shot.FrameRate.Canonical()
	add("fps", "Frame Rate", string(fps)+" fps", b.FPSCost, fps == types.FrameRate30)

	for _, info := range types.Drivers() {
		level, _ := shot.Level(info.Driver)
		level = level.Canonical()
		add(string(info.Driver), info.Label, string(level), b.DriverCost(info.Driver), level == types.ComplexityNone)
	}

	brief := shot.Brief.Canonical()
	add("brief", "Client Brief", string(brief), b.Brief, brief == types.BriefClear || brief == types.Brief(types.ComplexityNone))

	lines = append(lines, LineItem{Label: "Subtotal", Amount: b.SubTotal, Kind: LineSubtotal})

	if b.HasManagementDiscount() {
		lines = append(lines, LineItem{Key: "onSceneManagement", Label: ManagementBadge, Amount: b.ManagementAdjustment, Kind: LineDiscount})
	}
	if b.HasReelDiscount() {
		lines = append(lines, LineItem{Key: "allowOnReel", Label: ReelBadge, Amount: b.ReelDiscount, Kind: LineDiscount})
	}

	return append(lines, LineItem{Label: "Total", Amount: b.Total, Kind: LineTotal})
}

// ChartSegments groups a breakdown into the chart categories, dropping empty ones
func ChartSegments(b *types.Breakdown) []Segment {
	all := []Segment{
		{Name: "Base Cost", Value: b.ShotBaseCost},
		{Name: "Resolution & FPS", Value: b.ResolutionSurcharge.Add(b.FPSCost)},
		{Name: "Prep / Roto", Value: b.PrepCost},
		{Name: "Tracking", Value: b.TrackingCost},
		{Name: "Assets", Value: b.AssetCost},
		{Name: "Animation", Value: b.AnimationCost},
		{Name: "FX/Sim", Value: b.Simulation},
		{Name: "Compositing", Value: b.CompositingCost.Add(b.LayerAnimation)},
		{Name: "Extras (Rush/Brief)", Value: b.Urgent.Add(b.Brief)},
	}

	out := make([]Segment, 0, len(all))
	for _, s := range all {
		if s.Value.IsPositive() {
			s.Color = style.ChartColor(s.Name)
			out = append(out, s)
		}
	}
	return out
}
