package kinematics

import (
	"github.com/golang/geo/r3"
	"go.uber.org/atomic"
)

// links shorter than this have no direction to cast along.
const directionTolerance = 1e-9

// ObstacleGuard rejects a solved chain if any of its links passes through geometry on the
// obstacle layer.
type ObstacleGuard struct {
	raycaster Raycaster
	layer     Layer
	rollbacks atomic.Int64
}

// NewObstacleGuard returns a guard querying raycaster on layer. A nil raycaster never reports hits.
func NewObstacleGuard(raycaster Raycaster, layer Layer) *ObstacleGuard {
	if raycaster == nil {
		raycaster = noRaycaster{}
	}
	return &ObstacleGuard{raycaster: raycaster, layer: layer}
}

// Layer returns the layer treated as blocking.
func (g *ObstacleGuard) Layer() Layer {
	return g.layer
}

// Check casts a ray along every link, from the effector side toward the root side, walking from
// the end effector to the root. On the first hit tagged with the obstacle layer the whole of
// positions is replaced by rollback and true is returned. The link between the root and the
// host's parent is not checked.
func (g *ObstacleGuard) Check(positions, rollback []r3.Vector) bool {
	for i := len(positions) - 1; i > 0; i-- {
		link := positions[i-1].Sub(positions[i])
		dist := link.Norm()
		if dist < directionTolerance {
			continue
		}
		hit, ok := g.raycaster.Raycast(positions[i], link.Mul(1/dist), dist, g.layer)
		if ok && hit.Layer == g.layer {
			copy(positions, rollback)
			g.rollbacks.Inc()
			return true
		}
	}
	return false
}

// Rollbacks returns how many solutions this guard has discarded.
func (g *ObstacleGuard) Rollbacks() int64 {
	return g.rollbacks.Load()
}
