package interchange

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"vfx-cost/core/types"
	"vfx-cost/internal/errors"
)

// hclDocument is the root of an HCL project file:
//
//	scene "opening" {
//	  name       = "Opening"
//	  base_price = 10000
//	  duration   = 5
//	  resolution = "4K"
//	  ...
//	}
type hclDocument struct {
	Scenes []hclScene `hcl:"scene,block"`
}

type hclScene struct {
	ID          string `hcl:"id,label"`
	Name        string `hcl:"name"`
	Description string `hcl:"description,optional"`

	BasePrice  float64 `hcl:"base_price"`
	Duration   float64 `hcl:"duration"`
	Resolution string  `hcl:"resolution"`
	FPS        string  `hcl:"fps"`

	Roto           string `hcl:"roto"`
	Cleanup        string `hcl:"cleanup"`
	Keying         string `hcl:"keying"`
	CameraTracking string `hcl:"camera_tracking"`
	ObjectTracking string `hcl:"object_tracking"`
	MatchMove      string `hcl:"match_move"`

	Model3D             string `hcl:"model_3d"`
	Rigging             string `hcl:"rigging"`
	SceneReconstruction string `hcl:"scene_reconstruction"`
	PropsEnvironment    string `hcl:"props_envs"`

	Animation  string `hcl:"animation"`
	Mocap      string `hcl:"mocap"`
	Simulation string `hcl:"simulation"`

	Compositing3D  string `hcl:"compositing_3d"`
	Compositing2D  string `hcl:"compositing_2d"`
	LayerAnimation string `hcl:"layer_animation"`

	Urgent            string `hcl:"urgent"`
	Brief             string `hcl:"brief"`
	OnSceneManagement string `hcl:"on_scene_management"`
	AllowOnReel       string `hcl:"allow_on_reel"`
}

func decodeHCL(data []byte, filename string) ([]types.Scene, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diagnosticsError(diags)
	}

	var doc hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, diagnosticsError(diags)
	}
	if len(doc.Scenes) == 0 {
		return nil, errors.Input("invalid project file: no scenes found")
	}

	scenes := make([]types.Scene, len(doc.Scenes))
	for i, s := range doc.Scenes {
		scenes[i] = s.scene()
	}
	return scenes, nil
}

func encodeHCL(scenes []types.Scene) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, s := range scenes {
		if i > 0 {
			body.AppendNewline()
		}
		block := newHCLScene(s)
		body.AppendBlock(gohcl.EncodeAsBlock(&block, "scene"))
	}
	return hclwrite.Format(f.Bytes()), nil
}

// diagnosticsError folds error diagnostics into one input error
func diagnosticsError(diags hcl.Diagnostics) error {
	var msgs []string
	line := 0
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		if line == 0 && diag.Subject != nil {
			line = diag.Subject.Start.Line
		}
		msg := diag.Summary
		if diag.Detail != "" {
			msg += ": " + diag.Detail
		}
		msgs = append(msgs, msg)
	}
	return errors.New(errors.TypeInput, fmt.Sprintf("invalid project file: %s", strings.Join(msgs, "; "))).
		WithContext("line", line)
}

func newHCLScene(s types.Scene) hclScene {
	d := s.Data
	return hclScene{
		ID:                  s.ID,
		Name:                s.Name,
		Description:         s.Description,
		BasePrice:           d.BasePrice,
		Duration:            d.Duration,
		Resolution:          string(d.Resolution),
		FPS:                 string(d.FrameRate),
		Roto:                string(d.Roto),
		Cleanup:             string(d.Cleanup),
		Keying:              string(d.Keying),
		CameraTracking:      string(d.CameraTracking),
		ObjectTracking:      string(d.ObjectTracking),
		MatchMove:           string(d.MatchMove),
		Model3D:             string(d.Model3D),
		Rigging:             string(d.Rigging),
		SceneReconstruction: string(d.SceneReconstruction),
		PropsEnvironment:    string(d.PropsEnvironment),
		Animation:           string(d.Animation),
		Mocap:               string(d.Mocap),
		Simulation:          string(d.Simulation),
		Compositing3D:       string(d.Compositing3D),
		Compositing2D:       string(d.Compositing2D),
		LayerAnimation:      string(d.LayerAnimation),
		Urgent:              string(d.Urgent),
		Brief:               string(d.Brief),
		OnSceneManagement:   string(d.OnSceneSupervision),
		AllowOnReel:         string(d.AllowShowreelUsage),
	}
}

func (s hclScene) scene() types.Scene {
	return types.Scene{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Data: types.ShotConfiguration{
			BasePrice:           s.BasePrice,
			Duration:            s.Duration,
			Resolution:          types.Resolution(s.Resolution),
			FrameRate:           types.FrameRate(s.FPS),
			Roto:                types.Complexity(s.Roto),
			Cleanup:             types.Complexity(s.Cleanup),
			Keying:              types.Complexity(s.Keying),
			CameraTracking:      types.Complexity(s.CameraTracking),
			ObjectTracking:      types.Complexity(s.ObjectTracking),
			MatchMove:           types.Complexity(s.MatchMove),
			Model3D:             types.Complexity(s.Model3D),
			Rigging:             types.Complexity(s.Rigging),
			SceneReconstruction: types.Complexity(s.SceneReconstruction),
			PropsEnvironment:    types.Complexity(s.PropsEnvironment),
			Animation:           types.Complexity(s.Animation),
			Mocap:               types.Complexity(s.Mocap),
			Simulation:          types.Complexity(s.Simulation),
			Compositing3D:       types.Complexity(s.Compositing3D),
			Compositing2D:       types.Complexity(s.Compositing2D),
			LayerAnimation:      types.Complexity(s.LayerAnimation),
			Urgent:              types.Complexity(s.Urgent),
			Brief:               types.Brief(s.Brief),
			OnSceneSupervision:  types.Toggle(s.OnSceneManagement),
			AllowShowreelUsage:  types.Toggle(s.AllowOnReel),
		},
	}
}
