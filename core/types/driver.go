// Cost driver catalog

package types

// Driver identifies a cost-contributing category with its own multiplier table
type Driver string

const (
	DriverRoto                Driver = "roto"
	DriverCleanup             Driver = "cleanup"
	DriverKeying              Driver = "keying"
	DriverCameraTracking      Driver = "cameraTracking"
	DriverObjectTracking      Driver = "objectTracking"
	DriverMatchMove           Driver = "matchMove"
	DriverModel3D             Driver = "model3d"
	DriverRigging             Driver = "rigging"
	DriverSceneReconstruction Driver = "sceneReconstruction"
	DriverPropsEnvironment    Driver = "propsEnvs"
	DriverAnimation           Driver = "animation"
	DriverMocap               Driver = "mocap"
	DriverSimulation          Driver = "simulation"
	DriverCompositing3D       Driver = "compositing3d"
	DriverCompositing2D       Driver = "compositing2d"
	DriverLayerAnimation      Driver = "layerAnimation"
	DriverUrgent              Driver = "urgent"
)

// String returns the string representation
func (d Driver) String() string {
	return string(d)
}

// Stage groups drivers the way a production is scheduled
type Stage string

const (
	StagePrep        Stage = "Pre-Production"
	StageAssets      Stage = "Production - Assets"
	StageAnimationFX Stage = "Production - Animation & FX"
	StagePost        Stage = "Post Production"
	StageExtras      Stage = "Extras"
)

// DriverInfo describes a driver for reports and listings
type DriverInfo struct {
	// Driver is the driver identifier
	Driver Driver `json:"driver"`

	// Label is a human-readable label
	Label string `json:"label"`

	// Description explains what the work covers
	Description string `json:"description"`

	// Stage is the production stage the driver belongs to
	Stage Stage `json:"stage"`

	// FlatFee is true when the cost scales with base price only
	FlatFee bool `json:"flat_fee"`
}

var driverCatalog = []DriverInfo{
	{DriverRoto, "Roto", "Isolating objects frame-by-frame to separate them from the background (Rotoscoping).", StagePrep, false},
	{DriverCleanup, "Cleanup / Paint", "Removing unwanted elements like wires, rigs, tracking markers, or blemishes.", StagePrep, false},
	{DriverKeying, "Keying (Green Screen)", "Extracting subjects from green/blue screens to replace the background.", StagePrep, false},
	{DriverCameraTracking, "Camera Tracking", "Deriving the movement of the physical camera to match it in 3D space.", StagePrep, false},
	{DriverObjectTracking, "Object Tracking", "Tracking the movement of specific objects or actors for 3D interaction.", StagePrep, false},
	{DriverMatchMove, "Match Move", "Precise alignment of CG elements to the live-action footage perspective.", StagePrep, false},
	{DriverModel3D, "3D Model", "Creating digital 3D geometry for characters, props, or vehicles. Flat fee.", StageAssets, true},
	{DriverRigging, "Rigging", "Building the digital skeleton and controls for animation. Flat fee.", StageAssets, true},
	{DriverSceneReconstruction, "Scene Reconstruct", "Building a 3D proxy of the set for lighting reference and collisions. Flat fee.", StageAssets, true},
	{DriverPropsEnvironment, "Props & Environment", "Creating digital set dressing and background elements. Flat fee.", StageAssets, true},
	{DriverAnimation, "Keyframe Animation", "Manual frame-by-frame animation for stylized or complex character performance.", StageAnimationFX, false},
	{DriverMocap, "Mocap Cleanup", "Refining raw motion capture data to fix jitters and sliding feet.", StageAnimationFX, false},
	{DriverSimulation, "Simulation (FX)", "Physics-based simulations for fire, water, smoke, cloth, or destruction.", StageAnimationFX, false},
	{DriverCompositing3D, "3D Compositing", "Integrating multi-pass 3D renders with live-action footage.", StagePost, false},
	{DriverCompositing2D, "2D Compositing", "Layer-based blending, color correction, and integration of 2D elements.", StagePost, false},
	{DriverLayerAnimation, "Layer Animation", "Animating 2D graphics, user interfaces (HUDs), or motion graphics.", StagePost, false},
	{DriverUrgent, "Urgent Delivery", "Rush fee multiplier for tight deadlines.", StageExtras, false},
}

// Drivers returns the driver catalog in display order
func Drivers() []DriverInfo {
	out := make([]DriverInfo, len(driverCatalog))
	copy(out, driverCatalog)
	return out
}

// Info returns the catalog entry for a driver
func (d Driver) Info() (DriverInfo, bool) {
	for _, info := range driverCatalog {
		if info.Driver == d {
			return info, true
		}
	}
	return DriverInfo{}, false
}

// Label returns the display label, falling back to the identifier
func (d Driver) Label() string {
	if info, ok := d.Info(); ok {
		return info.Label
	}
	return string(d)
}

// IsFlatFee reports whether the driver is priced on base price alone
func (d Driver) IsFlatFee() bool {
	info, ok := d.Info()
	return ok && info.FlatFee
}
