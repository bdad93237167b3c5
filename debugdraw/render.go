package debugdraw

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r3"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"go.viam.com/chainik/collision"
)

// Drawing is everything RenderPNG puts on the canvas. The scene is viewed looking down -Z.
type Drawing struct {
	Positions []r3.Vector
	Target    r3.Vector
	Pole      *r3.Vector
	Obstacles []collision.Geometry
	// LinkBoxes draws the link wire boxes as well as the bones.
	LinkBoxes bool

	Width, Height int
}

const margin = 0.1

var (
	background    = color.White
	linkBoxColor  = color.RGBA{255, 0, 0, 255}
	targetColor   = color.RGBA{0, 160, 0, 255}
	poleColor     = color.RGBA{0, 80, 255, 255}
	obstacleColor = color.RGBA{150, 150, 150, 255}
)

type projection struct {
	minX, minY, scale float64
	height            float64
}

func (p projection) point(v r3.Vector) (float64, float64) {
	return (v.X - p.minX) * p.scale, p.height - (v.Y-p.minY)*p.scale
}

func newProjection(d Drawing) projection {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(v r3.Vector, r float64) {
		minX, maxX = math.Min(minX, v.X-r), math.Max(maxX, v.X+r)
		minY, maxY = math.Min(minY, v.Y-r), math.Max(maxY, v.Y+r)
	}
	for _, p := range d.Positions {
		grow(p, 0)
	}
	grow(d.Target, 0)
	if d.Pole != nil {
		grow(*d.Pole, 0)
	}
	for _, g := range d.Obstacles {
		switch o := g.(type) {
		case *collision.Sphere:
			grow(o.Position, o.Radius)
		case *collision.Capsule:
			grow(o.A, o.Radius)
			grow(o.B, o.Radius)
		case *collision.Box:
			for _, v := range o.Vertices() {
				grow(v, 0)
			}
		}
	}
	spanX, spanY := math.Max(maxX-minX, 1e-6), math.Max(maxY-minY, 1e-6)
	minX -= spanX * margin
	minY -= spanY * margin
	spanX *= 1 + 2*margin
	spanY *= 1 + 2*margin
	scale := math.Min(float64(d.Width)/spanX, float64(d.Height)/spanY)
	return projection{minX: minX, minY: minY, scale: scale, height: float64(d.Height)}
}

// Render draws d into an image.
func Render(d Drawing) (image.Image, error) {
	if d.Width <= 0 || d.Height <= 0 {
		return nil, errors.Errorf("invalid canvas size %dx%d", d.Width, d.Height)
	}
	if len(d.Positions) == 0 {
		return nil, errors.New("nothing to draw")
	}
	proj := newProjection(d)
	dc := gg.NewContext(d.Width, d.Height)
	dc.SetColor(background)
	dc.Clear()

	dc.SetColor(obstacleColor)
	for _, g := range d.Obstacles {
		switch o := g.(type) {
		case *collision.Sphere:
			x, y := proj.point(o.Position)
			dc.DrawCircle(x, y, o.Radius*proj.scale)
			dc.Fill()
		case *collision.Capsule:
			ax, ay := proj.point(o.A)
			bx, by := proj.point(o.B)
			dc.SetLineWidth(2 * o.Radius * proj.scale)
			dc.SetLineCapRound()
			dc.DrawLine(ax, ay, bx, by)
			dc.Stroke()
		case *collision.Box:
			verts := o.Vertices()
			for i := range verts {
				for j := i + 1; j < len(verts); j++ {
					if bitsDiffer(i, j) == 1 {
						ax, ay := proj.point(verts[i])
						bx, by := proj.point(verts[j])
						dc.SetLineWidth(2)
						dc.DrawLine(ax, ay, bx, by)
						dc.Stroke()
					}
				}
			}
		}
	}

	if d.LinkBoxes {
		dc.SetColor(linkBoxColor)
		dc.SetLineWidth(1)
		for _, m := range LinkMatrices(d.Positions, true) {
			for _, e := range WireBox(m) {
				ax, ay := proj.point(e[0])
				bx, by := proj.point(e[1])
				dc.DrawLine(ax, ay, bx, by)
				dc.Stroke()
			}
		}
	}

	dc.SetLineWidth(3)
	for i := 1; i < len(d.Positions); i++ {
		dc.SetColor(boneColor(i-1, len(d.Positions)-1))
		ax, ay := proj.point(d.Positions[i-1])
		bx, by := proj.point(d.Positions[i])
		dc.DrawLine(ax, ay, bx, by)
		dc.Stroke()
	}
	for i, p := range d.Positions {
		dc.SetColor(boneColor(min(i, len(d.Positions)-2), len(d.Positions)-1))
		x, y := proj.point(p)
		dc.DrawCircle(x, y, 4)
		dc.Fill()
	}

	dc.SetColor(targetColor)
	x, y := proj.point(d.Target)
	dc.DrawCircle(x, y, 6)
	dc.Stroke()

	if d.Pole != nil {
		dc.SetColor(poleColor)
		x, y := proj.point(*d.Pole)
		dc.DrawRectangle(x-4, y-4, 8, 8)
		dc.Fill()
	}
	return dc.Image(), nil
}

// RenderPNG draws d and writes it to w as a PNG.
func RenderPNG(w io.Writer, d Drawing) error {
	img, err := Render(d)
	if err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	return dc.EncodePNG(w)
}

// boneColor shades segment i of n from blue at the root to orange at the end effector.
func boneColor(i, n int) colorful.Color {
	t := 0.
	if n > 1 {
		t = float64(i) / float64(n-1)
	}
	return colorful.Hsv(210-180*t, 0.8, 0.7)
}

func bitsDiffer(a, b int) int {
	n := 0
	for x := a ^ b; x != 0; x &= x - 1 {
		n++
	}
	return n
}
