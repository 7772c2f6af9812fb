package interchange

import (
	"gopkg.in/yaml.v3"

	"vfx-cost/core/types"
	"vfx-cost/internal/errors"
)

func decodeYAML(data []byte) ([]types.Scene, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.TypeInput, "invalid project file: not valid YAML", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var scenes []types.Scene
	if err := yaml.Unmarshal(data, &scenes); err != nil {
		return nil, errors.Wrap(errors.TypeInput, "invalid project file", err)
	}
	return scenes, nil
}

func encodeYAML(scenes []types.Scene) ([]byte, error) {
	data, err := yaml.Marshal(scenes)
	if err != nil {
		return nil, errors.Internal("encode project", err)
	}
	return data, nil
}
