package referenceframe

import (
	"slices"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/chainik/spatialmath"
)

// Node is a named transform in a hierarchy. Its pose is stored relative to its parent; world
// space values are derived by composing up to the root.
//
// Node satisfies kinematics.Joint, so a chain of nodes can be handed straight to a solver.
type Node struct {
	name     string
	parent   *Node
	children []*Node
	local    spatialmath.Pose
}

func newNode(name string, parent *Node, local spatialmath.Pose) *Node {
	if local == nil {
		local = spatialmath.NewZeroPose()
	}
	n := &Node{name: name, parent: parent, local: local}
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	return n
}

// Name returns the name of the node.
func (n *Node) Name() string {
	return n.name
}

// Parent returns the parent node, or nil for the world.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children of the node.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// LocalPose returns the pose of the node relative to its parent.
func (n *Node) LocalPose() spatialmath.Pose {
	return n.local
}

// SetLocalPose replaces the pose of the node relative to its parent. Descendants move with it.
func (n *Node) SetLocalPose(p spatialmath.Pose) {
	n.local = p
}

// WorldPose composes the local poses from the root down to this node.
func (n *Node) WorldPose() spatialmath.Pose {
	if n.parent == nil {
		return n.local
	}
	return spatialmath.Compose(n.parent.WorldPose(), n.local)
}

// SetWorldPose moves the node so its world pose is p, keeping its parent where it is.
func (n *Node) SetWorldPose(p spatialmath.Pose) {
	if n.parent == nil {
		n.local = p
		return
	}
	n.local = spatialmath.Compose(spatialmath.PoseInverse(n.parent.WorldPose()), p)
}

// Position returns the world space position of the node.
func (n *Node) Position() r3.Vector {
	return n.WorldPose().Point()
}

// Orientation returns the world space orientation of the node.
func (n *Node) Orientation() quat.Number {
	return n.WorldPose().Orientation().Quaternion()
}

// SetPosition moves the node to a world space position, keeping its world orientation.
func (n *Node) SetPosition(p r3.Vector) {
	n.SetWorldPose(spatialmath.NewPose(p, n.WorldPose().Orientation()))
}

// SetOrientation turns the node to a world space orientation, keeping its world position.
func (n *Node) SetOrientation(q quat.Number) {
	n.SetWorldPose(spatialmath.NewPose(n.Position(), spatialmath.NewOrientationFromQuat(q)))
}
