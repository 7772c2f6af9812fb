package pricing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"vfx-cost/core/types"
	"vfx-cost/internal/errors"
)

func decimalEqual(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	w := decimal.RequireFromString(want)
	if !got.Equal(w) {
		t.Fatalf("%s = %s, want %s", name, got.String(), w.String())
	}
}

func baseShot() types.ShotConfiguration {
	s := types.DefaultShot()
	s.BasePrice = 10000
	s.Duration = 5
	return s
}

func mustCompute(t *testing.T, e *Engine, s types.ShotConfiguration) *types.Breakdown {
	t.Helper()
	b, err := e.Compute(s)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	return b
}

func TestCompute_NoDriversIsShotBaseCost(t *testing.T) {
	b, err := ComputeBreakdown(baseShot())
	if err != nil {
		t.Fatalf("ComputeBreakdown: %v", err)
	}

	decimalEqual(t, "shotBaseCost", b.ShotBaseCost, "50000")
	decimalEqual(t, "resolutionSurcharge", b.ResolutionSurcharge, "0")
	decimalEqual(t, "fpsCost", b.FPSCost, "0")
	decimalEqual(t, "assetCost", b.AssetCost, "0")
	decimalEqual(t, "brief", b.Brief, "0")
	decimalEqual(t, "managementAdjustment", b.ManagementAdjustment, "0")
	decimalEqual(t, "reelDiscount", b.ReelDiscount, "0")
	decimalEqual(t, "total", b.Total, "50000")

	if b.Currency != types.CurrencyMMK {
		t.Errorf("Expected currency %s, got %s", types.CurrencyMMK, b.Currency)
	}
}

func TestCompute_DriversWithSubtotalFPSPolicy(t *testing.T) {
	s := baseShot()
	s.Resolution = types.Resolution4K
	s.Roto = types.ComplexityEasy
	s.Simulation = types.ComplexityHard
	s.FrameRate = types.FrameRate60

	b := mustCompute(t, NewEngine(nil), s)

	decimalEqual(t, "resolutionSurcharge", b.ResolutionSurcharge, "10000")
	decimalEqual(t, "roto", b.Roto, "17500")
	decimalEqual(t, "prepCost", b.PrepCost, "17500")
	decimalEqual(t, "simulation", b.Simulation, "250000")
	decimalEqual(t, "subTotalBeforeFPS", b.SubTotalBeforeFPS, "327500")
	decimalEqual(t, "fpsCost", b.FPSCost, "65500")
	decimalEqual(t, "subTotal", b.SubTotal, "393000")
	decimalEqual(t, "total", b.Total, "393000")
}

func TestCompute_ResolutionFPSPolicyDoublesSurcharge(t *testing.T) {
	s := baseShot()
	s.Resolution = types.Resolution4K
	s.Roto = types.ComplexityEasy
	s.FrameRate = types.FrameRate60

	e := NewEngine(NewRateCard(WithFPSPolicy(FPSPolicyResolution)))
	b := mustCompute(t, e, s)

	decimalEqual(t, "resolutionSurcharge", b.ResolutionSurcharge, "10000")
	decimalEqual(t, "subTotalBeforeFPS", b.SubTotalBeforeFPS, "77500")
	decimalEqual(t, "fpsCost", b.FPSCost, "20000")
	decimalEqual(t, "total", b.Total, "97500")

	s.FrameRate = types.FrameRate30
	b = mustCompute(t, e, s)
	decimalEqual(t, "fpsCost at 30", b.FPSCost, "0")
}

func TestCompute_DiscountsCompoundSequentially(t *testing.T) {
	s := types.DefaultShot()
	s.BasePrice = 200
	s.Duration = 5
	s.OnSceneSupervision = types.ToggleYes
	s.AllowShowreelUsage = types.ToggleYes

	b := mustCompute(t, NewEngine(nil), s)

	decimalEqual(t, "subTotal", b.SubTotal, "1000")
	decimalEqual(t, "managementAdjustment", b.ManagementAdjustment, "-50")
	decimalEqual(t, "totalAfterManagement", b.TotalAfterManagement, "950")
	decimalEqual(t, "reelDiscount", b.ReelDiscount, "-47.5")
	decimalEqual(t, "total", b.Total, "902.5")

	if !b.HasManagementDiscount() || !b.HasReelDiscount() {
		t.Error("Expected both discount flags to report true")
	}
}

func TestCompute_ManagementDiscountIncludesFPSSurcharge(t *testing.T) {
	s := types.DefaultShot()
	s.BasePrice = 200
	s.Duration = 5
	s.FrameRate = types.FrameRate60
	s.OnSceneSupervision = types.ToggleYes

	b := mustCompute(t, NewEngine(nil), s)

	decimalEqual(t, "subTotal", b.SubTotal, "1200")
	decimalEqual(t, "managementAdjustment", b.ManagementAdjustment, "-60")
	decimalEqual(t, "reelDiscount", b.ReelDiscount, "0")
	decimalEqual(t, "total", b.Total, "1140")
}

func TestCompute_FlatFeeAssetsIgnoreDuration(t *testing.T) {
	s := baseShot()
	s.Model3D = types.ComplexityHard
	s.Rigging = types.ComplexityMedium
	s.SceneReconstruction = types.ComplexityEasy
	s.PropsEnvironment = types.ComplexityHard
	s.Roto = types.ComplexityMedium
	s.MatchMove = types.ComplexityHard
	s.Urgent = types.ComplexityEasy

	e := NewEngine(nil)
	short := mustCompute(t, e, s)

	s.Duration *= 2
	long := mustCompute(t, e, s)

	for _, d := range []types.Driver{types.DriverModel3D, types.DriverRigging, types.DriverSceneReconstruction, types.DriverPropsEnvironment} {
		if !short.DriverCost(d).Equal(long.DriverCost(d)) {
			t.Errorf("%s changed with duration: %s -> %s", d, short.DriverCost(d), long.DriverCost(d))
		}
	}
	decimalEqual(t, "model3d", short.Model3D, "150000")
	decimalEqual(t, "rigging", short.Rigging, "90000")
	decimalEqual(t, "sceneReconstruction", short.SceneReconstruction, "40000")
	decimalEqual(t, "propsEnvs", short.PropsEnvironment, "200000")

	two := decimal.NewFromInt(2)
	for _, d := range []types.Driver{types.DriverRoto, types.DriverMatchMove, types.DriverUrgent} {
		if !short.DriverCost(d).Mul(two).Equal(long.DriverCost(d)) {
			t.Errorf("%s did not double: %s -> %s", d, short.DriverCost(d), long.DriverCost(d))
		}
	}
}

func TestCompute_ZeroDurationLeavesOnlyFlatFees(t *testing.T) {
	s := baseShot()
	s.Duration = 0
	s.Resolution = types.Resolution6K
	s.Brief = types.BriefNotClear
	for _, info := range types.Drivers() {
		s = s.WithLevel(info.Driver, types.ComplexityHard)
	}

	b := mustCompute(t, NewEngine(nil), s)

	decimalEqual(t, "shotBaseCost", b.ShotBaseCost, "0")
	decimalEqual(t, "resolutionSurcharge", b.ResolutionSurcharge, "0")
	decimalEqual(t, "brief", b.Brief, "0")
	for _, info := range types.Drivers() {
		got := b.DriverCost(info.Driver)
		if info.FlatFee {
			if !got.IsPositive() {
				t.Errorf("Expected flat fee %s to remain, got %s", info.Driver, got)
			}
			continue
		}
		if !got.IsZero() {
			t.Errorf("Expected scaled driver %s to be 0, got %s", info.Driver, got)
		}
	}
	decimalEqual(t, "assetCost", b.AssetCost, "700000")
	decimalEqual(t, "subTotalBeforeFPS", b.SubTotalBeforeFPS, "700000")
	decimalEqual(t, "total", b.Total, "700000")
}

func TestCompute_MonotonicInLevels(t *testing.T) {
	e := NewEngine(nil)
	for _, info := range types.Drivers() {
		t.Run(string(info.Driver), func(t *testing.T) {
			prev := decimal.NewFromInt(-1)
			for _, level := range types.Complexities {
				b := mustCompute(t, e, baseShot().WithLevel(info.Driver, level))
				if b.Total.LessThan(prev) {
					t.Fatalf("total decreased at %s: %s < %s", level, b.Total, prev)
				}
				prev = b.Total
			}
		})
	}
}

func TestCompute_MonotonicInPriceAndDuration(t *testing.T) {
	e := NewEngine(nil)
	s := baseShot()
	s.Roto = types.ComplexityMedium
	s.Model3D = types.ComplexityEasy
	s.OnSceneSupervision = types.ToggleYes
	s.AllowShowreelUsage = types.ToggleYes

	prev := decimal.NewFromInt(-1)
	for _, price := range []float64{0, 1, 50, 10000, 25000.5} {
		s.BasePrice = price
		b := mustCompute(t, e, s)
		if b.Total.LessThan(prev) {
			t.Fatalf("total decreased at basePrice %v", price)
		}
		prev = b.Total
	}

	prev = decimal.NewFromInt(-1)
	for _, d := range []float64{0, 0.5, 1, 5, 120} {
		s.Duration = d
		b := mustCompute(t, e, s)
		if b.Total.LessThan(prev) {
			t.Fatalf("total decreased at duration %v", d)
		}
		prev = b.Total
	}
}

func TestCompute_InvalidNumbersCoercedToZero(t *testing.T) {
	e := NewEngine(nil)
	for _, v := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		s := baseShot()
		s.BasePrice = v
		s.Model3D = types.ComplexityHard
		b := mustCompute(t, e, s)
		decimalEqual(t, "total", b.Total, "0")
	}
}

func TestCompute_BriefModes(t *testing.T) {
	tests := []struct {
		name  string
		mode  BriefMode
		brief types.Brief
		want  string
	}{
		{"binary clear", BriefModeBinary, types.BriefClear, "0"},
		{"binary not clear", BriefModeBinary, types.BriefNotClear, "20000"},
		{"binary NotClear spelling", BriefModeBinary, "NotClear", "20000"},
		{"graded none", BriefModeGraded, types.Brief(types.ComplexityNone), "0"},
		{"graded easy", BriefModeGraded, types.Brief(types.ComplexityEasy), "10000"},
		{"graded medium", BriefModeGraded, types.Brief(types.ComplexityMedium), "20000"},
		{"graded hard", BriefModeGraded, types.Brief(types.ComplexityHard), "30000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseShot()
			s.Brief = tt.brief
			b := mustCompute(t, NewEngine(NewRateCard(WithBriefMode(tt.mode))), s)
			decimalEqual(t, "brief", b.Brief, tt.want)
		})
	}
}

func TestCompute_BriefFromOtherDomainFails(t *testing.T) {
	s := baseShot()
	s.Brief = types.Brief(types.ComplexityHard)
	if _, err := NewEngine(nil).Compute(s); !errors.IsType(err, errors.TypePricing) {
		t.Errorf("Expected pricing error for graded brief on binary card, got %v", err)
	}

	s.Brief = types.BriefNotClear
	if _, err := NewEngine(NewRateCard(WithBriefMode(BriefModeGraded))).Compute(s); !errors.IsType(err, errors.TypePricing) {
		t.Errorf("Expected pricing error for binary brief on graded card, got %v", err)
	}
}

func TestCompute_UnknownEnumFailsFast(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.ShotConfiguration)
	}{
		{"resolution", func(s *types.ShotConfiguration) { s.Resolution = "8K" }},
		{"fps", func(s *types.ShotConfiguration) { s.FrameRate = "24" }},
		{"roto", func(s *types.ShotConfiguration) { s.Roto = "Extreme" }},
		{"propsEnvs", func(s *types.ShotConfiguration) { s.PropsEnvironment = "" }},
		{"brief", func(s *types.ShotConfiguration) { s.Brief = "Vague" }},
		{"onSceneManagement", func(s *types.ShotConfiguration) { s.OnSceneSupervision = "Maybe" }},
		{"allowOnReel", func(s *types.ShotConfiguration) { s.AllowShowreelUsage = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseShot()
			tt.mutate(&s)
			b, err := NewEngine(nil).Compute(s)
			if err == nil {
				t.Fatalf("Expected error, got breakdown with total %s", b.Total)
			}
			e, ok := errors.As(err)
			if !ok || e.Type != errors.TypePricing {
				t.Fatalf("Expected %s, got %v", errors.TypePricing, err)
			}
			if e.Context["field"] != tt.name {
				t.Errorf("Expected field %q in context, got %v", tt.name, e.Context["field"])
			}
		})
	}
}

func TestCompute_AcceptsLegacySpellings(t *testing.T) {
	s := baseShot()
	s.Roto = "No"
	s.Keying = "hard"
	s.Resolution = "4k"
	s.FrameRate = "60fps"
	s.OnSceneSupervision = "yes"

	b := mustCompute(t, NewEngine(nil), s)
	decimalEqual(t, "roto", b.Roto, "0")
	decimalEqual(t, "keying", b.Keying, "30000")
	decimalEqual(t, "resolutionSurcharge", b.ResolutionSurcharge, "10000")
}

func TestCompute_IsDeterministic(t *testing.T) {
	s := baseShot()
	s.Animation = types.ComplexityHard
	s.Compositing2D = types.ComplexityMedium
	s.FrameRate = types.FrameRate60

	e := NewEngine(nil)
	first := mustCompute(t, e, s)
	for i := 0; i < 10; i++ {
		if again := mustCompute(t, e, s); !again.Total.Equal(first.Total) {
			t.Fatalf("run %d: total %s != %s", i, again.Total, first.Total)
		}
	}
}
