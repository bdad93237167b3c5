package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/chainik/logging"
)

// Read reads a scene from the given file. ${VAR} references are substituted from the environment
// first.
func Read(
	ctx context.Context,
	filePath string,
	logger logging.Logger,
) (*Scene, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(ctx, filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a scene from the given reader and specifies
// the path, if any, it was read from.
func FromReader(
	ctx context.Context,
	path string,
	r io.Reader,
	logger logging.Logger,
) (*Scene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unprocessed := Scene{ConfigFilePath: path}
	if err := json.NewDecoder(r).Decode(&unprocessed); err != nil {
		return nil, errors.Wrapf(err, "failed to decode scene from json")
	}
	scene, err := processScene(&unprocessed, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to process scene")
	}
	return scene, nil
}

// processScene returns a copy of the scene with its solver attributes converted and everything
// validated.
func processScene(unprocessed *Scene, logger logging.Logger) (*Scene, error) {
	scene := *unprocessed
	conf, err := scene.DecodeSolver()
	if err != nil {
		return nil, err
	}
	scene.ConvertedSolver = conf
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debugw("scene loaded",
			"path", scene.ConfigFilePath,
			"joints", len(scene.Joints),
			"obstacles", len(scene.Obstacles),
			"frames", scene.FrameCount(),
		)
	}
	return &scene, nil
}
