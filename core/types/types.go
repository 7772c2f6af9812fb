// Package types defines core domain types shared across all layers.
// This package contains NO pricing logic - only type definitions and
// the value-domain checks that go with them.
package types

import "strings"

// Complexity selects a row in a driver's multiplier table
type Complexity string

const (
	ComplexityNone   Complexity = "None"
	ComplexityEasy   Complexity = "Easy"
	ComplexityMedium Complexity = "Medium"
	ComplexityHard   Complexity = "Hard"
)

// Complexities lists the complexity levels in ascending order
var Complexities = []Complexity{ComplexityNone, ComplexityEasy, ComplexityMedium, ComplexityHard}

// String returns the string representation
func (c Complexity) String() string {
	return string(c)
}

// Canonical maps accepted spellings onto the declared levels.
// "No" is the legacy spelling of None. Unknown values are returned as-is.
func (c Complexity) Canonical() Complexity {
	switch strings.ToLower(strings.TrimSpace(string(c))) {
	case "none", "no":
		return ComplexityNone
	case "easy":
		return ComplexityEasy
	case "medium":
		return ComplexityMedium
	case "hard":
		return ComplexityHard
	}
	return c
}

// IsValid checks if the level belongs to the declared domain
func (c Complexity) IsValid() bool {
	switch c.Canonical() {
	case ComplexityNone, ComplexityEasy, ComplexityMedium, ComplexityHard:
		return true
	default:
		return false
	}
}

// Resolution is the delivery resolution of a shot
type Resolution string

const (
	Resolution1080p Resolution = "1080p"
	Resolution4K    Resolution = "4K"
	Resolution6K    Resolution = "6K"
)

// Resolutions lists the supported resolutions
var Resolutions = []Resolution{Resolution1080p, Resolution4K, Resolution6K}

// String returns the string representation
func (r Resolution) String() string {
	return string(r)
}

// Canonical maps accepted spellings onto the declared resolutions
func (r Resolution) Canonical() Resolution {
	switch strings.ToLower(strings.TrimSpace(string(r))) {
	case "1080p", "1080":
		return Resolution1080p
	case "4k":
		return Resolution4K
	case "6k":
		return Resolution6K
	}
	return r
}

// IsValid checks if the resolution is supported
func (r Resolution) IsValid() bool {
	switch r.Canonical() {
	case Resolution1080p, Resolution4K, Resolution6K:
		return true
	default:
		return false
	}
}

// FrameRate is the delivery frame rate of a shot
type FrameRate string

const (
	FrameRate30 FrameRate = "30"
	FrameRate60 FrameRate = "60"
)

// FrameRates lists the supported frame rates
var FrameRates = []FrameRate{FrameRate30, FrameRate60}

// String returns the string representation
func (f FrameRate) String() string {
	return string(f)
}

// Canonical maps accepted spellings onto the declared frame rates
func (f FrameRate) Canonical() FrameRate {
	s := strings.ToLower(strings.TrimSpace(string(f)))
	s = strings.TrimSuffix(s, "fps")
	switch strings.TrimSpace(s) {
	case "30":
		return FrameRate30
	case "60":
		return FrameRate60
	}
	return f
}

// IsValid checks if the frame rate is supported
func (f FrameRate) IsValid() bool {
	switch f.Canonical() {
	case FrameRate30, FrameRate60:
		return true
	default:
		return false
	}
}

// Toggle is a Yes/No administrative flag
type Toggle string

const (
	ToggleYes Toggle = "Yes"
	ToggleNo  Toggle = "No"
)

// Toggles lists both toggle values
var Toggles = []Toggle{ToggleNo, ToggleYes}

// String returns the string representation
func (t Toggle) String() string {
	return string(t)
}

// Canonical maps accepted spellings onto Yes/No
func (t Toggle) Canonical() Toggle {
	switch strings.ToLower(strings.TrimSpace(string(t))) {
	case "yes", "y", "true":
		return ToggleYes
	case "no", "n", "false":
		return ToggleNo
	}
	return t
}

// IsValid checks if the toggle is Yes or No
func (t Toggle) IsValid() bool {
	switch t.Canonical() {
	case ToggleYes, ToggleNo:
		return true
	default:
		return false
	}
}

// Enabled reports whether the toggle is Yes
func (t Toggle) Enabled() bool {
	return t.Canonical() == ToggleYes
}

// Brief carries the brief-clarity selection. Depending on the deployment it
// holds a value from the binary domain (Clear, Not Clear) or a Complexity.
type Brief string

const (
	BriefClear    Brief = "Clear"
	BriefNotClear Brief = "Not Clear"
)

// BriefClarities lists the binary brief domain
var BriefClarities = []Brief{BriefClear, BriefNotClear}

// String returns the string representation
func (b Brief) String() string {
	return string(b)
}

// Canonical maps accepted spellings onto the binary domain first and the
// complexity domain second.
func (b Brief) Canonical() Brief {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	s = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
	switch s {
	case "clear":
		return BriefClear
	case "notclear", "unclear":
		return BriefNotClear
	}
	if c := Complexity(b).Canonical(); c.IsValid() {
		return Brief(c)
	}
	return b
}

// IsBinary reports whether the value belongs to the Clear/Not Clear domain
func (b Brief) IsBinary() bool {
	switch b.Canonical() {
	case BriefClear, BriefNotClear:
		return true
	default:
		return false
	}
}

// IsGraded reports whether the value belongs to the complexity domain
func (b Brief) IsGraded() bool {
	return Complexity(b.Canonical()).IsValid()
}
