// Package collision is a minimal physics scene: solids tagged with a layer that answer ray queries.
// A World satisfies kinematics.Raycaster.
package collision

import (
	"sync"

	"github.com/golang/geo/r3"

	"go.viam.com/chainik/kinematics"
	"go.viam.com/chainik/logging"
)

type obstacle struct {
	geometry Geometry
	layer    kinematics.Layer
}

// World holds layered geometry. It is safe for concurrent use.
type World struct {
	mu        sync.RWMutex
	obstacles []obstacle
	logger    logging.Logger
}

// NewWorld returns an empty world.
func NewWorld(logger logging.Logger) *World {
	if logger == nil {
		logger = logging.NewBlankLogger("collision")
	}
	return &World{logger: logger}
}

// Add places g in the world on layer.
func (w *World) Add(g Geometry, layer kinematics.Layer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if box, ok := g.(*Box); ok {
		for _, o := range w.obstacles {
			if other, ok := o.geometry.(*Box); ok && o.layer == layer && BoxVsBox(box, other) {
				w.logger.Warnw("obstacles overlap", "obstacle", g.Label(), "other", other.Label(), "layer", layer)
			}
		}
	}
	w.obstacles = append(w.obstacles, obstacle{g, layer})
}

// Len returns the number of obstacles in the world.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.obstacles)
}

// Geometries returns every obstacle on layer.
func (w *World) Geometries(layer kinematics.Layer) []Geometry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var out []Geometry
	for _, o := range w.obstacles {
		if o.layer == layer {
			out = append(out, o.geometry)
		}
	}
	return out
}

// Raycast returns the closest surface on layer hit by the ray within maxDistance.
func (w *World) Raycast(origin, direction r3.Vector, maxDistance float64, layer kinematics.Layer) (kinematics.Hit, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var hit kinematics.Hit
	found := false
	for _, o := range w.obstacles {
		if o.layer != layer {
			continue
		}
		t, ok := o.geometry.Raycast(origin, direction, maxDistance)
		if !ok || (found && t >= hit.Distance) {
			continue
		}
		hit = kinematics.Hit{
			Point:    origin.Add(direction.Mul(t)),
			Distance: t,
			Layer:    o.layer,
			Label:    o.geometry.Label(),
		}
		found = true
	}
	return hit, found
}
