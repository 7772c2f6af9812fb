// Multiplier tables.
// The rate card is built once at startup and never written afterwards,
// so it is shared by every engine invocation without locking.

package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"vfx-cost/core/determinism"
	"vfx-cost/core/types"
)

// FPSPolicy selects what the frame-rate multiplier is applied to
type FPSPolicy string

const (
	// FPSPolicySubtotal applies the multiplier to the whole pre-FPS subtotal
	FPSPolicySubtotal FPSPolicy = "subtotal"

	// FPSPolicyResolution applies the multiplier to the resolution surcharge only
	FPSPolicyResolution FPSPolicy = "resolution"
)

// ParseFPSPolicy parses a policy name
func ParseFPSPolicy(s string) (FPSPolicy, error) {
	switch p := FPSPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case FPSPolicySubtotal, FPSPolicyResolution:
		return p, nil
	case "":
		return FPSPolicySubtotal, nil
	}
	return "", fmt.Errorf("unknown fps policy %q (want %q or %q)", s, FPSPolicySubtotal, FPSPolicyResolution)
}

// BriefMode selects the value domain of the brief field
type BriefMode string

const (
	// BriefModeBinary prices Clear / Not Clear
	BriefModeBinary BriefMode = "binary"

	// BriefModeGraded prices the brief on the four complexity levels
	BriefModeGraded BriefMode = "graded"
)

// ParseBriefMode parses a brief mode name
func ParseBriefMode(s string) (BriefMode, error) {
	switch m := BriefMode(strings.ToLower(strings.TrimSpace(s))); m {
	case BriefModeBinary, BriefModeGraded:
		return m, nil
	case "":
		return BriefModeBinary, nil
	}
	return "", fmt.Errorf("unknown brief mode %q (want %q or %q)", s, BriefModeBinary, BriefModeGraded)
}

// Rate is one row of a multiplier table
type Rate struct {
	Key        string          `json:"key"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// MultiplierTable maps an enum domain to dimensionless multipliers.
// Tables hold at most a handful of rows, so lookup is a scan.
type MultiplierTable struct {
	Name  string `json:"name"`
	Rates []Rate `json:"rates"`
}

// Lookup returns the multiplier for a canonical key
func (t MultiplierTable) Lookup(key string) (decimal.Decimal, bool) {
	for _, r := range t.Rates {
		if r.Key == key {
			return r.Multiplier, true
		}
	}
	return decimal.Zero, false
}

func table(name string, rows ...string) MultiplierTable {
	t := MultiplierTable{Name: name}
	for i := 0; i+1 < len(rows); i += 2 {
		t.Rates = append(t.Rates, Rate{Key: rows[i], Multiplier: decimal.RequireFromString(rows[i+1])})
	}
	return t
}

func complexityTable(name, easy, medium, hard string) MultiplierTable {
	return table(name,
		string(types.ComplexityNone), "0",
		string(types.ComplexityEasy), easy,
		string(types.ComplexityMedium), medium,
		string(types.ComplexityHard), hard,
	)
}

func toggleTable(name, yes string) MultiplierTable {
	return table(name,
		string(types.ToggleNo), "0",
		string(types.ToggleYes), yes,
	)
}

// RateCard is the full set of multiplier tables the engine consults
type RateCard struct {
	// Currency labels every amount the engine produces
	Currency types.Currency `json:"currency"`

	// FPSPolicy selects the base of the frame-rate surcharge
	FPSPolicy FPSPolicy `json:"fps_policy"`

	// BriefMode selects the brief value domain
	BriefMode BriefMode `json:"brief_mode"`

	Resolution MultiplierTable                  `json:"resolution"`
	FrameRate  MultiplierTable                  `json:"frame_rate"`
	Drivers    map[types.Driver]MultiplierTable `json:"drivers"`
	Brief      MultiplierTable                  `json:"brief"`
	Management MultiplierTable                  `json:"management"`
	Reel       MultiplierTable                  `json:"reel"`
}

// Option configures a RateCard
type Option func(*RateCard)

// WithFPSPolicy selects the frame-rate policy
func WithFPSPolicy(p FPSPolicy) Option {
	return func(c *RateCard) {
		if p != "" {
			c.FPSPolicy = p
		}
	}
}

// WithBriefMode selects the brief representation
func WithBriefMode(m BriefMode) Option {
	return func(c *RateCard) {
		if m != "" {
			c.BriefMode = m
		}
	}
}

// WithCurrency sets the currency label
func WithCurrency(cur types.Currency) Option {
	return func(c *RateCard) {
		if cur != "" {
			c.Currency = cur
		}
	}
}

// DefaultRateCard returns the canonical card: subtotal FPS policy, binary brief, MMK
func DefaultRateCard() *RateCard {
	return NewRateCard()
}

// NewRateCard builds a rate card with the canonical multipliers
func NewRateCard(opts ...Option) *RateCard {
	c := &RateCard{
		Currency:  types.CurrencyMMK,
		FPSPolicy: FPSPolicySubtotal,
		BriefMode: BriefModeBinary,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Resolution = table("Resolution",
		string(types.Resolution1080p), "0",
		string(types.Resolution4K), "0.20",
		string(types.Resolution6K), "0.40",
	)

	switch c.FPSPolicy {
	case FPSPolicyResolution:
		c.FrameRate = table("Frame Rate",
			string(types.FrameRate30), "0",
			string(types.FrameRate60), "2",
		)
	default:
		c.FrameRate = table("Frame Rate",
			string(types.FrameRate30), "0",
			string(types.FrameRate60), "0.20",
		)
	}

	c.Drivers = map[types.Driver]MultiplierTable{
		types.DriverRoto:                complexityTable("Roto", "0.35", "0.45", "0.60"),
		types.DriverCleanup:             complexityTable("Cleanup", "0.35", "0.45", "0.60"),
		types.DriverKeying:              complexityTable("Keying", "0.30", "0.40", "0.60"),
		types.DriverCameraTracking:      complexityTable("Camera Tracking", "0.15", "0.35", "0.70"),
		types.DriverObjectTracking:      complexityTable("Object Tracking", "0.15", "0.35", "0.70"),
		types.DriverMatchMove:           complexityTable("Match Move", "0.15", "0.60", "1.20"),
		types.DriverModel3D:             complexityTable("3D Model", "4.0", "9.0", "15.0"),
		types.DriverRigging:             complexityTable("Rigging", "4.0", "9.0", "15.0"),
		types.DriverSceneReconstruction: complexityTable("Scene Reconstruction", "4.0", "11.0", "20.0"),
		types.DriverPropsEnvironment:    complexityTable("Props/Env", "4.0", "11.0", "20.0"),
		types.DriverAnimation:           complexityTable("Animation", "0.30", "0.60", "1.20"),
		types.DriverMocap:               complexityTable("Mocap", "0.15", "0.30", "0.60"),
		types.DriverSimulation:          complexityTable("Simulation", "1.0", "3.0", "5.0"),
		types.DriverCompositing3D:       complexityTable("3D Compositing", "0.35", "0.45", "0.60"),
		types.DriverCompositing2D:       complexityTable("2D Compositing", "0.15", "0.35", "0.45"),
		types.DriverLayerAnimation:      complexityTable("Layer Animation", "0.30", "0.60", "1.20"),
		types.DriverUrgent:              complexityTable("Urgent", "0.30", "0.60", "1.20"),
	}

	switch c.BriefMode {
	case BriefModeGraded:
		c.Brief = complexityTable("Brief", "0.20", "0.40", "0.60")
	default:
		c.Brief = table("Brief",
			string(types.BriefClear), "0",
			string(types.BriefNotClear), "0.40",
		)
	}

	c.Management = toggleTable("Management", "-0.05")
	c.Reel = toggleTable("Reel Permission", "-0.05")

	return c
}

// Tables returns every table in display order
func (c *RateCard) Tables() []MultiplierTable {
	out := []MultiplierTable{c.Resolution, c.FrameRate}
	for _, info := range types.Drivers() {
		out = append(out, c.Drivers[info.Driver])
	}
	return append(out, c.Brief, c.Management, c.Reel)
}

// Fingerprint identifies the card by its contents; cards built with the same
// options share it
func (c *RateCard) Fingerprint() determinism.ContentHash {
	h, _ := determinism.Fingerprint(c)
	return h
}
