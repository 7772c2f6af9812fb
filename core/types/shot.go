// Shot configuration

package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBasePrice is the price per second a new shot starts with
	DefaultBasePrice = 100

	// DefaultDuration is the length in seconds a new shot starts with
	DefaultDuration = 5
)

// ShotConfiguration holds every input of one shot. It is a value: callers
// replace it wholesale on each edit.
type ShotConfiguration struct {
	// BasePrice is the price per second of footage
	BasePrice float64 `json:"basePrice" yaml:"basePrice"`

	// Duration is the shot length in seconds
	Duration float64 `json:"duration" yaml:"duration"`

	Resolution Resolution `json:"resolution" yaml:"resolution"`
	FrameRate  FrameRate  `json:"fps" yaml:"fps"`

	// Pre-production
	Roto           Complexity `json:"roto" yaml:"roto"`
	Cleanup        Complexity `json:"cleanup" yaml:"cleanup"`
	Keying         Complexity `json:"keying" yaml:"keying"`
	CameraTracking Complexity `json:"cameraTracking" yaml:"cameraTracking"`
	ObjectTracking Complexity `json:"objectTracking" yaml:"objectTracking"`
	MatchMove      Complexity `json:"matchMove" yaml:"matchMove"`

	// Production assets, priced as flat fees
	Model3D             Complexity `json:"model3d" yaml:"model3d"`
	Rigging             Complexity `json:"rigging" yaml:"rigging"`
	SceneReconstruction Complexity `json:"sceneReconstruction" yaml:"sceneReconstruction"`
	PropsEnvironment    Complexity `json:"propsEnvs" yaml:"propsEnvs"`

	// Production animation and FX
	Animation  Complexity `json:"animation" yaml:"animation"`
	Mocap      Complexity `json:"mocap" yaml:"mocap"`
	Simulation Complexity `json:"simulation" yaml:"simulation"`

	// Post production
	Compositing3D  Complexity `json:"compositing3d" yaml:"compositing3d"`
	Compositing2D  Complexity `json:"compositing2d" yaml:"compositing2d"`
	LayerAnimation Complexity `json:"layerAnimation" yaml:"layerAnimation"`

	// Extras
	Urgent Complexity `json:"urgent" yaml:"urgent"`
	Brief  Brief      `json:"brief" yaml:"brief"`

	// Discounts
	OnSceneSupervision Toggle `json:"onSceneManagement" yaml:"onSceneManagement"`
	AllowShowreelUsage Toggle `json:"allowOnReel" yaml:"allowOnReel"`
}

// DefaultShot returns the configuration a new scene starts with
func DefaultShot() ShotConfiguration {
	return ShotConfiguration{
		BasePrice:           DefaultBasePrice,
		Duration:            DefaultDuration,
		Resolution:          Resolution1080p,
		FrameRate:           FrameRate30,
		Roto:                ComplexityNone,
		Cleanup:             ComplexityNone,
		Keying:              ComplexityNone,
		CameraTracking:      ComplexityNone,
		ObjectTracking:      ComplexityNone,
		MatchMove:           ComplexityNone,
		Model3D:             ComplexityNone,
		Rigging:             ComplexityNone,
		SceneReconstruction: ComplexityNone,
		PropsEnvironment:    ComplexityNone,
		Animation:           ComplexityNone,
		Mocap:               ComplexityNone,
		Simulation:          ComplexityNone,
		Compositing3D:       ComplexityNone,
		Compositing2D:       ComplexityNone,
		LayerAnimation:      ComplexityNone,
		Urgent:              ComplexityNone,
		Brief:               BriefClear,
		OnSceneSupervision:  ToggleNo,
		AllowShowreelUsage:  ToggleNo,
	}
}

// Level returns the complexity selected for a driver
func (s ShotConfiguration) Level(d Driver) (Complexity, bool) {
	if p := s.levelRef(d); p != nil {
		return *p, true
	}
	return "", false
}

// WithLevel returns a copy of the configuration with one driver changed
func (s ShotConfiguration) WithLevel(d Driver, c Complexity) ShotConfiguration {
	if p := s.levelRef(d); p != nil {
		*p = c
	}
	return s
}

func (s *ShotConfiguration) levelRef(d Driver) *Complexity {
	switch d {
	case DriverRoto:
		return &s.Roto
	case DriverCleanup:
		return &s.Cleanup
	case DriverKeying:
		return &s.Keying
	case DriverCameraTracking:
		return &s.CameraTracking
	case DriverObjectTracking:
		return &s.ObjectTracking
	case DriverMatchMove:
		return &s.MatchMove
	case DriverModel3D:
		return &s.Model3D
	case DriverRigging:
		return &s.Rigging
	case DriverSceneReconstruction:
		return &s.SceneReconstruction
	case DriverPropsEnvironment:
		return &s.PropsEnvironment
	case DriverAnimation:
		return &s.Animation
	case DriverMocap:
		return &s.Mocap
	case DriverSimulation:
		return &s.Simulation
	case DriverCompositing3D:
		return &s.Compositing3D
	case DriverCompositing2D:
		return &s.Compositing2D
	case DriverLayerAnimation:
		return &s.LayerAnimation
	case DriverUrgent:
		return &s.Urgent
	}
	return nil
}

// InvalidFields lists the JSON names of fields holding values outside their
// declared domain. Brief is accepted from either brief domain here; the rate
// card decides which one the deployment uses.
func (s ShotConfiguration) InvalidFields() []string {
	var fields []string
	if !s.Resolution.IsValid() {
		fields = append(fields, "resolution")
	}
	if !s.FrameRate.IsValid() {
		fields = append(fields, "fps")
	}
	for _, info := range driverCatalog {
		if c, _ := s.Level(info.Driver); !c.IsValid() {
			fields = append(fields, string(info.Driver))
		}
	}
	if !s.Brief.IsBinary() && !s.Brief.IsGraded() {
		fields = append(fields, "brief")
	}
	if !s.OnSceneSupervision.IsValid() {
		fields = append(fields, "onSceneManagement")
	}
	if !s.AllowShowreelUsage.IsValid() {
		fields = append(fields, "allowOnReel")
	}
	return fields
}

// Amount coerces a numeric input: NaN, infinities and negative values become 0
func Amount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseAmount reads a free-text numeric field. Empty or non-numeric text is 0.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return Amount(v)
}

// UnmarshalJSON decodes a configuration over the receiver. Fields absent from
// the document keep their current value. The two numeric fields accept
// numbers, numeric text, "" and null; anything that is not a number is 0.
func (s *ShotConfiguration) UnmarshalJSON(data []byte) error {
	type plain ShotConfiguration
	aux := struct {
		*plain
		BasePrice jsonAmount `json:"basePrice"`
		Duration  jsonAmount `json:"duration"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.BasePrice.set {
		s.BasePrice = aux.BasePrice.value
	}
	if aux.Duration.set {
		s.Duration = aux.Duration.value
	}
	return nil
}

// UnmarshalYAML applies the same numeric coercion as UnmarshalJSON
func (s *ShotConfiguration) UnmarshalYAML(value *yaml.Node) error {
	type plain ShotConfiguration
	if value.Kind != yaml.MappingNode {
		return value.Decode((*plain)(s))
	}

	rest := *value
	rest.Content = make([]*yaml.Node, 0, len(value.Content))
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "basePrice":
			s.BasePrice = yamlAmount(val)
		case "duration":
			s.Duration = yamlAmount(val)
		default:
			rest.Content = append(rest.Content, key, val)
		}
	}
	return rest.Decode((*plain)(s))
}

// jsonAmount records whether a numeric field was present and its coerced value
type jsonAmount struct {
	set   bool
	value float64
}

func (a *jsonAmount) UnmarshalJSON(data []byte) error {
	a.set = true
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		a.value = ParseAmount(text)
		return nil
	}
	// null, booleans, arrays and objects fail to parse and become 0
	a.value = ParseAmount(string(data))
	return nil
}

func yamlAmount(n *yaml.Node) float64 {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode || n.ShortTag() == "!!null" {
		return 0
	}
	return ParseAmount(n.Value)
}
