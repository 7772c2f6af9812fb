package interchange

import (
	"bytes"
	"encoding/json"

	"vfx-cost/core/types"
	"vfx-cost/internal/errors"
)

func decodeJSON(data []byte) ([]types.Scene, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.TypeInput, "invalid project file: not valid JSON", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var scenes []types.Scene
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&scenes); err != nil {
		return nil, errors.Wrap(errors.TypeInput, "invalid project file", err)
	}
	return scenes, nil
}

func encodeJSON(scenes []types.Scene) ([]byte, error) {
	data, err := json.MarshalIndent(scenes, "", "  ")
	if err != nil {
		return nil, errors.Internal("encode project", err)
	}
	return append(data, '\n'), nil
}
