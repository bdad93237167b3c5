package kinematics

import (
	"slices"

	"github.com/golang/geo/r3"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/quat"
)

// Chain holds the rest pose of an articulated chain: segment lengths, per-joint rest orientations
// and per-segment rest directions. It is built once from the host and never mutated; a structural
// change in the host is handled by building a new Chain.
type Chain struct {
	lengths     []float64
	totalLength float64

	restOrientations []quat.Number
	// restVectors[i] points from joint i to joint i+1; the last entry points from the end
	// effector to the target as it was when the chain was built.
	restVectors    []r3.Vector
	targetStartRot quat.Number
}

// NewChain captures the rest pose of joints (root first) relative to target.
func NewChain(joints []Joint, target Transform) (*Chain, error) {
	if target == nil {
		return nil, ErrMissingTarget
	}
	if len(joints) < 2 {
		return nil, NewChainTooShortError(len(joints))
	}

	n := len(joints)
	c := &Chain{
		lengths:          make([]float64, n-1),
		restOrientations: make([]quat.Number, n),
		restVectors:      make([]r3.Vector, n),
		targetStartRot:   target.Orientation(),
	}

	// walk from the end effector up to the root
	for i := n - 1; i >= 0; i-- {
		if joints[i] == nil {
			return nil, NewNilJointError(i)
		}
		pos := joints[i].Position()
		c.restOrientations[i] = joints[i].Orientation()
		if i == n-1 {
			c.restVectors[i] = target.Position().Sub(pos)
			continue
		}
		seg := joints[i+1].Position().Sub(pos)
		c.restVectors[i] = seg
		c.lengths[i] = seg.Norm()
	}
	c.totalLength = floats.Sum(c.lengths)
	return c, nil
}

// Len returns the number of segments in the chain.
func (c *Chain) Len() int {
	return len(c.lengths)
}

// Lengths returns a copy of the segment lengths, root first.
func (c *Chain) Lengths() []float64 {
	return slices.Clone(c.lengths)
}

// SegmentLength returns the length of the segment between joint i and joint i+1.
func (c *Chain) SegmentLength(i int) float64 {
	return c.lengths[i]
}

// TotalLength is the sum of all segment lengths.
func (c *Chain) TotalLength() float64 {
	return c.totalLength
}

// RestOrientation returns the orientation joint i had when the chain was built.
func (c *Chain) RestOrientation(i int) quat.Number {
	return c.restOrientations[i]
}

// RestVector returns the rest direction leaving joint i.
func (c *Chain) RestVector(i int) r3.Vector {
	return c.restVectors[i]
}

// TargetStartOrientation returns the target orientation captured when the chain was built.
func (c *Chain) TargetStartOrientation() quat.Number {
	return c.targetStartRot
}

// Snapshot reads the current joint positions from the host. It returns the working array the
// frame will modify and an identical rollback copy taken before any modification.
func (c *Chain) Snapshot(joints []Joint) (positions, rollback []r3.Vector) {
	positions = lo.Map(joints, func(j Joint, _ int) r3.Vector {
		return j.Position()
	})
	return positions, slices.Clone(positions)
}
