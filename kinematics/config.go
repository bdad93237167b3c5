package kinematics

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const (
	// DefaultIterations is used when a config leaves iterations unset.
	DefaultIterations = 10
	// MaxIterations bounds the FABRIK loop.
	MaxIterations = 100
	// DefaultDelta is the convergence distance used when a config leaves delta unset.
	DefaultDelta = 0.001
	// maxLayer is the highest layer index a raycast can filter on.
	maxLayer = 31
)

// Config describes a single chain solver.
type Config struct {
	Name       string  `json:"name,omitempty" mapstructure:"name" jsonschema:"description=label used in logs and stats"`
	Length     int     `json:"length" mapstructure:"length" jsonschema:"minimum=1,description=number of segments in the chain"`
	Iterations int     `json:"iterations,omitempty" mapstructure:"iterations" jsonschema:"minimum=1,maximum=100,default=10"`
	Delta      float64 `json:"delta,omitempty" mapstructure:"delta" jsonschema:"default=0.001,description=convergence distance; must be positive"`

	// Grounded together with Foot pins a foot chain in place: no reach solve runs for it.
	Grounded bool `json:"grounded,omitempty" mapstructure:"grounded"`
	Foot     bool `json:"foot,omitempty" mapstructure:"foot"`

	ObstacleLayer *int `json:"obstacle_layer,omitempty" mapstructure:"obstacle_layer" jsonschema:"minimum=0,maximum=31,default=9"`
	DebugLines    bool `json:"debug_lines,omitempty" mapstructure:"debug_lines"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	var err error
	if conf.Length < 1 {
		err = multierr.Append(err, errors.Errorf("%s: length must be at least 1, got %d", path, conf.Length))
	}
	if conf.Iterations < 0 || conf.Iterations > MaxIterations {
		err = multierr.Append(err, errors.Errorf("%s: iterations must be within [1, %d], got %d", path, MaxIterations, conf.Iterations))
	}
	if conf.Delta < 0 {
		err = multierr.Append(err, errors.Errorf("%s: delta must be positive, got %v", path, conf.Delta))
	}
	if conf.ObstacleLayer != nil && (*conf.ObstacleLayer < 0 || *conf.ObstacleLayer > maxLayer) {
		err = multierr.Append(err, errors.Errorf("%s: obstacle_layer must be within [0, %d], got %d", path, maxLayer, *conf.ObstacleLayer))
	}
	return err
}

func (conf *Config) iterations() int {
	if conf.Iterations == 0 {
		return DefaultIterations
	}
	return conf.Iterations
}

func (conf *Config) delta() float64 {
	if conf.Delta == 0 {
		return DefaultDelta
	}
	return conf.Delta
}

func (conf *Config) layer() Layer {
	if conf.ObstacleLayer == nil {
		return DefaultObstacleLayer
	}
	return Layer(*conf.ObstacleLayer)
}
