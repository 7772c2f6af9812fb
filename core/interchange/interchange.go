// Package interchange imports and exports projects as ordered scene lists.
//
// JSON is the canonical format and keeps the field names of earlier exports.
// YAML carries the same document shape; HCL is an authoring format with one
// labelled block per scene. Every codec round-trips every field exactly.
package interchange

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"vfx-cost/core/types"
	"vfx-cost/internal/errors"
)

// Format is an interchange encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// Formats lists the supported encodings
var Formats = []Format{FormatJSON, FormatYAML, FormatHCL}

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "hcl":
		return FormatHCL, nil
	}
	return "", errors.NotSupported(fmt.Sprintf("interchange format %q", s))
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.NotSupported(fmt.Sprintf("interchange file without extension: %s", path))
	}
	return ParseFormat(ext)
}

// Decode parses a document and validates every scene
func Decode(format Format, data []byte) ([]types.Scene, error) {
	var (
		scenes []types.Scene
		err    error
	)
	switch format {
	case FormatJSON:
		scenes, err = decodeJSON(data)
	case FormatYAML:
		scenes, err = decodeYAML(data)
	case FormatHCL:
		scenes, err = decodeHCL(data, "project.hcl")
	default:
		return nil, errors.NotSupported(fmt.Sprintf("interchange format %q", format))
	}
	if err != nil {
		return nil, err
	}
	if err := validateScenes(scenes); err != nil {
		return nil, err
	}
	return scenes, nil
}

// Encode renders scenes in the given format
func Encode(format Format, scenes []types.Scene) ([]byte, error) {
	switch format {
	case FormatJSON:
		return encodeJSON(scenes)
	case FormatYAML:
		return encodeYAML(scenes)
	case FormatHCL:
		return encodeHCL(scenes)
	}
	return nil, errors.NotSupported(fmt.Sprintf("interchange format %q", format))
}

// ReadFile imports a project file; the format follows the extension
func ReadFile(path string) ([]types.Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "read %s", path)
	}
	if format == FormatHCL {
		scenes, err := decodeHCL(data, path)
		if err != nil {
			return nil, err
		}
		return scenes, validateScenes(scenes)
	}
	return Decode(format, data)
}

// WriteFile exports a project file; the format follows the extension
func WriteFile(path string, scenes []types.Scene) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(format, scenes)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// requiredShotFields are the configuration keys every imported scene must carry
var requiredShotFields = []string{
	"basePrice", "duration", "resolution", "fps",
	"roto", "cleanup", "keying", "cameraTracking", "objectTracking", "matchMove",
	"model3d", "rigging", "sceneReconstruction", "propsEnvs",
	"animation", "mocap", "simulation",
	"compositing3d", "compositing2d", "layerAnimation",
	"urgent", "brief", "onSceneManagement", "allowOnReel",
}

// validateDocument checks the generic shape decoded from JSON or YAML before
// it is bound to types, so missing fields are reported rather than zeroed.
func validateDocument(doc interface{}) error {
	list, ok := doc.([]interface{})
	if !ok {
		return errors.Input("invalid project file: expected an array of scenes")
	}
	if len(list) == 0 {
		return errors.Input("invalid project file: no scenes found")
	}

	for i, item := range list {
		scene, ok := item.(map[string]interface{})
		if !ok {
			return errors.Newf(errors.TypeInput, "invalid project file: scene %d is not an object", i+1)
		}
		for _, key := range []string{"id", "name", "data"} {
			if _, ok := scene[key]; !ok {
				return errors.Newf(errors.TypeInput, "invalid project file: scene %d is missing %q", i+1, key).
					WithContext("field", key)
			}
		}
		data, ok := scene["data"].(map[string]interface{})
		if !ok {
			return errors.Newf(errors.TypeInput, "invalid project file: scene %d data is not an object", i+1)
		}
		var missing []string
		for _, key := range requiredShotFields {
			if _, ok := data[key]; !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			return errors.Newf(errors.TypeInput, "invalid project file: scene %d is missing %s", i+1, strings.Join(missing, ", ")).
				WithContext("fields", missing)
		}
	}
	return nil
}

// validateScenes checks ids and enum domains after binding
func validateScenes(scenes []types.Scene) error {
	if len(scenes) == 0 {
		return errors.Input("invalid project file: no scenes found")
	}
	seen := make(map[string]int, len(scenes))
	for i, s := range scenes {
		if strings.TrimSpace(s.ID) == "" {
			return errors.Newf(errors.TypeInput, "invalid project file: scene %d has an empty id", i+1)
		}
		if prev, dup := seen[s.ID]; dup {
			return errors.Newf(errors.TypeInput, "invalid project file: scenes %d and %d share id %q", prev+1, i+1, s.ID)
		}
		seen[s.ID] = i
		if bad := s.Data.InvalidFields(); len(bad) > 0 {
			sort.Strings(bad)
			return errors.Newf(errors.TypeInput, "invalid project file: scene %d (%s) has unrecognized values for %s", i+1, s.Name, strings.Join(bad, ", ")).
				WithContext("fields", bad)
		}
	}
	return nil
}
