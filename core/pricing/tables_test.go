package pricing

import (
	"testing"

	"vfx-cost/core/types"
)

func TestRateCard_CanonicalMultipliers(t *testing.T) {
	card := DefaultRateCard()

	rows := map[types.Driver][4]string{
		types.DriverRoto:                {"0", "0.35", "0.45", "0.60"},
		types.DriverCleanup:             {"0", "0.35", "0.45", "0.60"},
		types.DriverKeying:              {"0", "0.30", "0.40", "0.60"},
		types.DriverCameraTracking:      {"0", "0.15", "0.35", "0.70"},
		types.DriverObjectTracking:      {"0", "0.15", "0.35", "0.70"},
		types.DriverMatchMove:           {"0", "0.15", "0.60", "1.20"},
		types.DriverModel3D:             {"0", "4", "9", "15"},
		types.DriverRigging:             {"0", "4", "9", "15"},
		types.DriverSceneReconstruction: {"0", "4", "11", "20"},
		types.DriverPropsEnvironment:    {"0", "4", "11", "20"},
		types.DriverAnimation:           {"0", "0.30", "0.60", "1.20"},
		types.DriverMocap:               {"0", "0.15", "0.30", "0.60"},
		types.DriverSimulation:          {"0", "1", "3", "5"},
		types.DriverCompositing3D:       {"0", "0.35", "0.45", "0.60"},
		types.DriverCompositing2D:       {"0", "0.15", "0.35", "0.45"},
		types.DriverLayerAnimation:      {"0", "0.30", "0.60", "1.20"},
		types.DriverUrgent:              {"0", "0.30", "0.60", "1.20"},
	}

	if len(card.Drivers) != len(rows) {
		t.Fatalf("Expected %d driver tables, got %d", len(rows), len(card.Drivers))
	}

	for d, want := range rows {
		tbl := card.Drivers[d]
		for i, level := range types.Complexities {
			got, ok := tbl.Lookup(string(level))
			if !ok {
				t.Fatalf("%s: missing %s", d, level)
			}
			decimalEqual(t, string(d)+"/"+string(level), got, want[i])
		}
	}
}

func TestRateCard_ScalarTables(t *testing.T) {
	card := DefaultRateCard()

	checks := []struct {
		table MultiplierTable
		key   string
		want  string
	}{
		{card.Resolution, "1080p", "0"},
		{card.Resolution, "4K", "0.20"},
		{card.Resolution, "6K", "0.40"},
		{card.FrameRate, "30", "0"},
		{card.FrameRate, "60", "0.20"},
		{card.Brief, "Clear", "0"},
		{card.Brief, "Not Clear", "0.40"},
		{card.Management, "Yes", "-0.05"},
		{card.Management, "No", "0"},
		{card.Reel, "Yes", "-0.05"},
		{card.Reel, "No", "0"},
	}

	for _, c := range checks {
		got, ok := c.table.Lookup(c.key)
		if !ok {
			t.Fatalf("%s: missing key %s", c.table.Name, c.key)
		}
		decimalEqual(t, c.table.Name+"/"+c.key, got, c.want)
	}
}

func TestRateCard_Options(t *testing.T) {
	card := NewRateCard(
		WithFPSPolicy(FPSPolicyResolution),
		WithBriefMode(BriefModeGraded),
		WithCurrency(types.CurrencyUSD),
	)

	if card.FPSPolicy != FPSPolicyResolution {
		t.Errorf("Expected fps policy %s, got %s", FPSPolicyResolution, card.FPSPolicy)
	}
	if card.Currency != types.CurrencyUSD {
		t.Errorf("Expected currency USD, got %s", card.Currency)
	}
	got, _ := card.FrameRate.Lookup("60")
	decimalEqual(t, "fps 60", got, "2")

	got, ok := card.Brief.Lookup("Medium")
	if !ok {
		t.Fatal("Expected graded brief table")
	}
	decimalEqual(t, "brief medium", got, "0.40")

	if n := len(card.Tables()); n != 22 {
		t.Errorf("Expected 22 tables, got %d", n)
	}
}

func TestParsePolicies(t *testing.T) {
	if p, err := ParseFPSPolicy(""); err != nil || p != FPSPolicySubtotal {
		t.Errorf("Expected default subtotal policy, got %s, %v", p, err)
	}
	if p, err := ParseFPSPolicy("Resolution"); err != nil || p != FPSPolicyResolution {
		t.Errorf("Expected resolution policy, got %s, %v", p, err)
	}
	if _, err := ParseFPSPolicy("double"); err == nil {
		t.Error("Expected error for unknown fps policy")
	}
	if m, err := ParseBriefMode("GRADED"); err != nil || m != BriefModeGraded {
		t.Errorf("Expected graded mode, got %s, %v", m, err)
	}
	if _, err := ParseBriefMode("ternary"); err == nil {
		t.Error("Expected error for unknown brief mode")
	}
}

func TestRateCard_Fingerprint(t *testing.T) {
	a := NewRateCard()
	b := NewRateCard(WithFPSPolicy(FPSPolicySubtotal))
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("Expected equal cards to share a fingerprint")
	}
	if a.Fingerprint().IsZero() {
		t.Error("Expected a non-zero fingerprint")
	}

	c := NewRateCard(WithFPSPolicy(FPSPolicyResolution))
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("Expected a different fingerprint for a different fps policy")
	}
}
