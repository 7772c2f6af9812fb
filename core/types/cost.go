// Cost breakdown types

package types

import "github.com/shopspring/decimal"

// Currency represents a currency label. Amounts are never converted.
type Currency string

const (
	CurrencyMMK Currency = "MMK"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Breakdown is the itemized output of one engine invocation.
// It is derived entirely from a ShotConfiguration and never mutated.
type Breakdown struct {
	// ShotBaseCost is base price times duration
	ShotBaseCost decimal.Decimal `json:"baseCost"`

	// ResolutionSurcharge is the shot base cost times the resolution multiplier
	ResolutionSurcharge decimal.Decimal `json:"resolutionCost"`

	// FPSCost is the frame-rate surcharge
	FPSCost decimal.Decimal `json:"fpsCost"`

	// Duration-scaled prep drivers
	Roto           decimal.Decimal `json:"rotoCost"`
	Cleanup        decimal.Decimal `json:"cleanupCost"`
	Keying         decimal.Decimal `json:"keyingCost"`
	CameraTracking decimal.Decimal `json:"cameraTrackingCost"`
	ObjectTracking decimal.Decimal `json:"objectTrackingCost"`
	MatchMove      decimal.Decimal `json:"matchMoveCost"`

	// Flat-fee asset drivers
	Model3D             decimal.Decimal `json:"model3dCost"`
	Rigging             decimal.Decimal `json:"riggingCost"`
	SceneReconstruction decimal.Decimal `json:"sceneReconstructionCost"`
	PropsEnvironment    decimal.Decimal `json:"propsEnvsCost"`

	// Duration-scaled production and post drivers
	Animation      decimal.Decimal `json:"keyframeAnimationCost"`
	Mocap          decimal.Decimal `json:"mocapCost"`
	Simulation     decimal.Decimal `json:"simulationCost"`
	Compositing3D  decimal.Decimal `json:"compositing3dCost"`
	Compositing2D  decimal.Decimal `json:"compositing2dCost"`
	LayerAnimation decimal.Decimal `json:"layerAnimCost"`
	Urgent         decimal.Decimal `json:"urgentCost"`
	Brief          decimal.Decimal `json:"briefCost"`

	// Display groups
	PrepCost        decimal.Decimal `json:"prepCost"`
	TrackingCost    decimal.Decimal `json:"trackingCost"`
	AssetCost       decimal.Decimal `json:"assetCost"`
	AnimationCost   decimal.Decimal `json:"animationCost"`
	CompositingCost decimal.Decimal `json:"compositingCost"`

	// SubTotalBeforeFPS is everything except the frame-rate surcharge
	SubTotalBeforeFPS decimal.Decimal `json:"subTotalBeforeFps"`

	// SubTotal includes the frame-rate surcharge
	SubTotal decimal.Decimal `json:"subTotal"`

	// ManagementAdjustment is zero or negative
	ManagementAdjustment decimal.Decimal `json:"managementAdjustment"`

	// TotalAfterManagement is SubTotal plus ManagementAdjustment
	TotalAfterManagement decimal.Decimal `json:"totalAfterManagement"`

	// ReelDiscount is zero or negative, computed on TotalAfterManagement
	ReelDiscount decimal.Decimal `json:"reelDiscount"`

	// Total is the final amount at full precision
	Total decimal.Decimal `json:"total"`

	// Currency is the label amounts are expressed in
	Currency Currency `json:"currency"`
}

// DriverCost returns the amount attributed to a single driver
func (b *Breakdown) DriverCost(d Driver) decimal.Decimal {
	switch d {
	case DriverRoto:
		return b.Roto
	case DriverCleanup:
		return b.Cleanup
	case DriverKeying:
		return b.Keying
	case DriverCameraTracking:
		return b.CameraTracking
	case DriverObjectTracking:
		return b.ObjectTracking
	case DriverMatchMove:
		return b.MatchMove
	case DriverModel3D:
		return b.Model3D
	case DriverRigging:
		return b.Rigging
	case DriverSceneReconstruction:
		return b.SceneReconstruction
	case DriverPropsEnvironment:
		return b.PropsEnvironment
	case DriverAnimation:
		return b.Animation
	case DriverMocap:
		return b.Mocap
	case DriverSimulation:
		return b.Simulation
	case DriverCompositing3D:
		return b.Compositing3D
	case DriverCompositing2D:
		return b.Compositing2D
	case DriverLayerAnimation:
		return b.LayerAnimation
	case DriverUrgent:
		return b.Urgent
	}
	return decimal.Zero
}

// HasManagementDiscount reports whether on-scene supervision reduced the price
func (b *Breakdown) HasManagementDiscount() bool {
	return !b.ManagementAdjustment.IsZero()
}

// HasReelDiscount reports whether showreel usage reduced the price
func (b *Breakdown) HasReelDiscount() bool {
	return !b.ReelDiscount.IsZero()
}

// CostPerSecond returns the total divided by duration, or zero for an empty shot
func (b *Breakdown) CostPerSecond(duration float64) decimal.Decimal {
	d := Amount(duration)
	if d == 0 {
		return decimal.Zero
	}
	return b.Total.Div(decimal.NewFromFloat(d))
}
