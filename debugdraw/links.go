// Package debugdraw produces debug visuals of a solved chain: wire box transforms for every link
// and a flat PNG rendering of the chain in its scene.
package debugdraw

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"go.viam.com/chainik/spatialmath"
)

// linkThickness is the width of a link box relative to its length.
const linkThickness = 0.1

var up = r3.Vector{Y: 1}

// LinkMatrices returns one transform per link, starting at the end effector. Each maps a unit cube
// spanning y in [0, 1] onto a box running from joint i to joint i-1. Nothing is returned when
// disabled.
func LinkMatrices(positions []r3.Vector, enabled bool) []mgl64.Mat4 {
	if !enabled || len(positions) < 2 {
		return nil
	}
	out := make([]mgl64.Mat4, 0, len(positions)-1)
	for i := len(positions) - 1; i > 0; i-- {
		link := positions[i-1].Sub(positions[i])
		length := link.Norm()
		rot := spatialmath.QuatFromToRotation(up, link)
		scale := r3.Vector{X: linkThickness * length, Y: length, Z: linkThickness * length}
		out = append(out, spatialmath.TRS(positions[i], rot, scale))
	}
	return out
}

// unit cube corners, offset so the cube sits on the origin along +Y
var cubeCorners = func() [8]r3.Vector {
	var c [8]r3.Vector
	for i := range c {
		c[i] = r3.Vector{
			X: float64(i&1) - 0.5,
			Y: float64(i>>1&1),
			Z: float64(i>>2&1) - 0.5,
		}
	}
	return c
}()

// corners differing in exactly one bit share an edge
var cubeEdges = func() [][2]int {
	var edges [][2]int
	for a := 0; a < 8; a++ {
		for bit := 1; bit < 8; bit <<= 1 {
			if b := a | bit; b != a {
				edges = append(edges, [2]int{a, b})
			}
		}
	}
	return edges
}()

// WireBox returns the twelve edges of the link box described by m.
func WireBox(m mgl64.Mat4) [][2]r3.Vector {
	var pts [8]r3.Vector
	for i, c := range cubeCorners {
		pts[i] = spatialmath.TransformByMatrix(m, c)
	}
	edges := make([][2]r3.Vector, 0, len(cubeEdges))
	for _, e := range cubeEdges {
		edges = append(edges, [2]r3.Vector{pts[e[0]], pts[e[1]]})
	}
	return edges
}
