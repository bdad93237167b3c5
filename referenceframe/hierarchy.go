// Package referenceframe is a small transform hierarchy: named nodes, each posed relative to its
// parent, rooted at a world node. Nodes can be handed to the chain solver as joints and targets.
package referenceframe

import (
	"fmt"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/chainik/kinematics"
	"go.viam.com/chainik/spatialmath"
)

// World is the name of the root node of every hierarchy.
const World = "world"

// Hierarchy is a tree of named nodes rooted at the world.
type Hierarchy struct {
	world *Node
	nodes map[string]*Node
}

// NewHierarchy returns a hierarchy holding only the world node.
func NewHierarchy() *Hierarchy {
	w := newNode(World, nil, spatialmath.NewZeroPose())
	return &Hierarchy{world: w, nodes: map[string]*Node{World: w}}
}

// World returns the root node.
func (h *Hierarchy) World() *Node {
	return h.world
}

// Add inserts a node named name under parent with the given pose relative to that parent.
func (h *Hierarchy) Add(name, parent string, local spatialmath.Pose) (*Node, error) {
	if _, ok := h.nodes[name]; ok {
		return nil, NewDuplicateNodeError(name)
	}
	p, ok := h.nodes[parent]
	if !ok {
		return nil, NewParentNodeMissingError(name, parent)
	}
	n := newNode(name, p, local)
	h.nodes[name] = n
	return n, nil
}

// Node looks up a node by name.
func (h *Hierarchy) Node(name string) (*Node, error) {
	n, ok := h.nodes[name]
	if !ok {
		return nil, NewNodeMissingError(name)
	}
	return n, nil
}

// Names returns the names of all nodes, sorted.
func (h *Hierarchy) Names() []string {
	names := lo.Keys(h.nodes)
	slices.Sort(names)
	return names
}

// Traceback returns the named node followed by each of its ancestors up to and including the world.
func (h *Hierarchy) Traceback(name string) ([]*Node, error) {
	n, err := h.Node(name)
	if err != nil {
		return nil, err
	}
	var out []*Node
	for ; n != nil; n = n.parent {
		out = append(out, n)
	}
	return out, nil
}

// String renders every node with its parent and world position as a table.
func (h *Hierarchy) String() string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Node", "Parent", "X", "Y", "Z"})
	for _, name := range h.Names() {
		n := h.nodes[name]
		parent := ""
		if n.parent != nil {
			parent = n.parent.name
		}
		p := n.Position()
		t.AppendRow(table.Row{name, parent, fmt.Sprintf("%.4f", p.X), fmt.Sprintf("%.4f", p.Y), fmt.Sprintf("%.4f", p.Z)})
	}
	return t.Render()
}

// WalkChain collects effector and its length nearest ancestors as solver joints, root first. The
// world node can never be part of a chain.
func WalkChain(effector *Node, length int) ([]kinematics.Joint, error) {
	if effector == nil {
		return nil, errors.New("effector node is nil")
	}
	joints := make([]kinematics.Joint, length+1)
	n := effector
	for i := length; i >= 0; i-- {
		if n == nil || n.parent == nil {
			return nil, NewChainExceedsHierarchyError(effector.name, length)
		}
		joints[i] = n
		n = n.parent
	}
	return joints, nil
}
