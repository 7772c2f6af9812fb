// Package style is the presentation table for every priced input: labels,
// descriptions and colour classes per field and level. Reports and listings
// read it generically instead of carrying per-field styling.
package style

import (
	"vfx-cost/core/types"
)

// Classes is a space-separated list of utility CSS classes
type Classes string

// Palette maps a canonical field value to its classes
type Palette map[string]Classes

const (
	// Selected is used for a value that has no palette entry
	Selected Classes = "bg-red-600 border-red-500 text-white"

	// Unselected is used for values that are not chosen
	Unselected Classes = "bg-black border-neutral-800 text-neutral-400"
)

// Complexity is the palette for every complexity-levelled driver:
// easy is yellow, medium is orange and hard is red.
var Complexity = Palette{
	string(types.ComplexityNone):   "bg-neutral-900 border-neutral-800 text-neutral-500",
	string(types.ComplexityEasy):   "bg-yellow-900/20 border-yellow-700 text-yellow-500",
	string(types.ComplexityMedium): "bg-orange-900/30 border-orange-700 text-orange-500",
	string(types.ComplexityHard):   "bg-red-900/40 border-red-700 text-red-500",
}

// Urgent overrides Complexity for the rush driver
var Urgent = Palette{
	string(types.ComplexityNone):   "bg-neutral-900 border-neutral-800 text-neutral-500",
	string(types.ComplexityEasy):   "bg-red-900/20 border-red-800 text-red-300",
	string(types.ComplexityMedium): "bg-red-900/50 border-red-600 text-red-200",
	string(types.ComplexityHard):   "bg-red-700 border-red-500 text-white shadow-red-500/20",
}

// Brief is the palette for the binary brief domain. Graded briefs use Complexity.
var Brief = Palette{
	string(types.BriefClear):    "bg-neutral-900 border-neutral-700 text-neutral-300",
	string(types.BriefNotClear): "bg-red-900/30 border-red-600 text-red-400",
}

// Toggle is shared by on-scene supervision and showreel usage
var Toggle = Palette{
	string(types.ToggleNo):  "bg-neutral-900 border-neutral-800 text-neutral-400",
	string(types.ToggleYes): "bg-yellow-900/20 border-yellow-600 text-yellow-500",
}

var Resolution = Palette{
	string(types.Resolution1080p): "bg-neutral-900 border-neutral-800 text-neutral-400",
	string(types.Resolution4K):    "bg-neutral-800 border-neutral-600 text-white",
	string(types.Resolution6K):    "bg-neutral-700 border-neutral-500 text-white",
}

var FrameRate = Palette{
	string(types.FrameRate30): "bg-neutral-900 border-neutral-800 text-neutral-400",
	string(types.FrameRate60): "bg-red-900/30 border-red-700 text-red-500",
}

// Field is one styled input
type Field struct {
	// Key is the field name as it appears in a shot configuration
	Key string `json:"key"`

	// Label is a human-readable label
	Label string `json:"label"`

	// Description explains the field
	Description string `json:"description,omitempty"`

	// Stage groups the field for display
	Stage types.Stage `json:"stage,omitempty"`

	// Options are the accepted values in display order
	Options []string `json:"options"`

	// Palette styles each option
	Palette Palette `json:"palette"`
}

// Fields returns the full style table in display order: footage settings,
// every driver, then brief and the two discounts.
func Fields() []Field {
	fields := []Field{
		{Key: "resolution", Label: "Resolution", Options: options(types.Resolutions), Palette: Resolution},
		{Key: "fps", Label: "Frame Rate", Options: options(types.FrameRates), Palette: FrameRate},
	}

	for _, info := range types.Drivers() {
		palette := Complexity
		if info.Driver == types.DriverUrgent {
			palette = Urgent
		}
		fields = append(fields, Field{
			Key:         string(info.Driver),
			Label:       info.Label,
			Description: info.Description,
			Stage:       info.Stage,
			Options:     options(types.Complexities),
			Palette:     palette,
		})
	}

	return append(fields,
		Field{Key: "brief", Label: "Client Brief", Description: "How well the client has defined the shot.", Stage: types.StageExtras, Options: options(types.BriefClarities), Palette: Brief},
		Field{Key: "onSceneManagement", Label: "On-Scene Supervision", Description: "VFX supervision on set.", Stage: types.StageExtras, Options: options(types.Toggles), Palette: Toggle},
		Field{Key: "allowOnReel", Label: "Showreel Usage", Description: "The studio may show the shot in its reel.", Stage: types.StageExtras, Options: options(types.Toggles), Palette: Toggle},
	)
}

// Lookup returns the style entry for a field key
func Lookup(key string) (Field, bool) {
	for _, f := range Fields() {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// ClassesFor returns the classes for a field value. Legacy spellings are
// canonicalized first; unknown fields or values fall back to Selected.
func ClassesFor(key, value string) Classes {
	f, ok := Lookup(key)
	if !ok {
		return Selected
	}
	value = canonical(key, value)
	if key == "brief" && types.Brief(value).IsGraded() {
		f.Palette = Complexity
	}
	if c, ok := f.Palette[value]; ok {
		return c
	}
	return Selected
}

func canonical(key, value string) string {
	switch key {
	case "resolution":
		return string(types.Resolution(value).Canonical())
	case "fps":
		return string(types.FrameRate(value).Canonical())
	case "brief":
		return string(types.Brief(value).Canonical())
	case "onSceneManagement", "allowOnReel":
		return string(types.Toggle(value).Canonical())
	}
	return string(types.Complexity(value).Canonical())
}

func options[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// ChartCategory is one group of the cost chart
type ChartCategory struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Chart lists the chart categories in display order
var Chart = []ChartCategory{
	{"Base Cost", "#94a3b8"},
	{"Resolution & FPS", "#22d3ee"},
	{"Prep / Roto", "#10b981"},
	{"Tracking", "#34d399"},
	{"Assets", "#818cf8"},
	{"Animation", "#f472b6"},
	{"FX/Sim", "#fb7185"},
	{"Compositing", "#fbbf24"},
	{"Extras (Rush/Brief)", "#a78bfa"},
}

// ChartColor returns the colour of a chart category, grey when unknown
func ChartColor(name string) string {
	for _, c := range Chart {
		if c.Name == name {
			return c.Color
		}
	}
	return "#94a3b8"
}
