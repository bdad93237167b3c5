package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"go.viam.com/chainik/kinematics"
)

// Schema returns the JSON Schema of a scene file.
func Schema() ([]byte, error) {
	return json.MarshalIndent(jsonschema.Reflect(&Scene{}), "", "  ")
}

// SolverSchema returns the JSON Schema of the solver attributes of a scene file.
func SolverSchema() ([]byte, error) {
	return json.MarshalIndent(jsonschema.Reflect(&kinematics.Config{}), "", "  ")
}
