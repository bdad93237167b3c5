package collision

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

type node struct {
	pos r3.Vector
	rot quat.Number
}

func newNode(p r3.Vector) *node {
	return &node{pos: p, rot: quat.Number{Real: 1}}
}

func (n *node) Position() r3.Vector          { return n.pos }
func (n *node) Orientation() quat.Number     { return n.rot }
func (n *node) SetPosition(p r3.Vector)      { n.pos = p }
func (n *node) SetOrientation(q quat.Number) { n.rot = q }
