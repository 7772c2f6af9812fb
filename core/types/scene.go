// Scene types

package types

// Scene is a named, described container for one shot's configuration
type Scene struct {
	// ID is a stable identifier
	ID string `json:"id" yaml:"id"`

	// Name is the display name
	Name string `json:"name" yaml:"name"`

	// Description is free text
	Description string `json:"description" yaml:"description"`

	// Data is the shot configuration
	Data ShotConfiguration `json:"data" yaml:"data"`
}
