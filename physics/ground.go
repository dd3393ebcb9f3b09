package physics

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrTooFewVertices = errors.New("ground needs at least two vertices")
	ErrNonMonotonic   = errors.New("ground vertices must strictly increase in x")
)

// Line is the implicit form A*x + B*y + C = 0 of a segment with (A, B) a unit
// normal, so Distance is a true signed distance.
type Line struct {
	A, B, C float64
}

// Distance returns the signed distance of p from the line. Points on the normal
// side are positive; points behind it (inside the ground) are negative.
func (l Line) Distance(p Vec2) float64 {
	return l.A*p.X + l.B*p.Y + l.C
}

// Normal returns (A, B).
func (l Line) Normal() Vec2 { return Vec2{l.A, l.B} }

type Segment struct {
	A, B   Vec2
	Normal Vec2
}

func (s Segment) Line() Line {
	return Line{A: s.Normal.X, B: s.Normal.Y, C: -s.Normal.Dot(s.A)}
}

// HeightAt returns the Y of the segment at x. x is not clamped.
func (s Segment) HeightAt(x float64) float64 {
	t := (x - s.A.X) / (s.B.X - s.A.X)
	return s.A.Y + (s.B.Y-s.A.Y)*t
}

// Ground is a polyline running left to right. Normals[i] belongs to the segment
// Vertices[i] -> Vertices[i+1] and always points up (negative Y).
type Ground struct {
	Vertices []Vec2
	Normals  []Vec2
}

// NewGround builds a ground polyline from left-to-right vertices and derives
// one upward normal per segment.
func NewGround(vertices ...Vec2) (*Ground, error) {
	if len(vertices) < 2 {
		return nil, ErrTooFewVertices
	}

	g := &Ground{
		Vertices: append([]Vec2(nil), vertices...),
		Normals:  make([]Vec2, len(vertices)-1),
	}

	for i := 0; i < len(vertices)-1; i++ {
		a, b := vertices[i], vertices[i+1]
		if b.X <= a.X {
			return nil, fmt.Errorf("segment %d (%.1f -> %.1f): %w", i, a.X, b.X, ErrNonMonotonic)
		}
		// Perp of a left-to-right edge is (-dy, dx) which points down; flip it.
		g.Normals[i] = b.Sub(a).Perp().Scale(-1).Normalize()
	}

	return g, nil
}

// Len returns the number of segments.
func (g *Ground) Len() int {
	return len(g.Normals)
}

func (g *Ground) Segment(i int) Segment {
	return Segment{A: g.Vertices[i], B: g.Vertices[i+1], Normal: g.Normals[i]}
}

// SegmentAt returns the index of the segment whose span contains x. On a shared
// vertex the left segment wins.
func (g *Ground) SegmentAt(x float64) (int, bool) {
	first, last := g.Vertices[0].X, g.Vertices[len(g.Vertices)-1].X
	if x < first || x > last {
		return -1, false
	}

	i := sort.Search(len(g.Vertices), func(i int) bool {
		return g.Vertices[i].X >= x
	})
	if i == 0 {
		return 0, true
	}
	return i - 1, true
}

// HeightAt returns the ground surface Y under x.
func (g *Ground) HeightAt(x float64) (float64, bool) {
	i, ok := g.SegmentAt(x)
	if !ok {
		return 0, false
	}
	return g.Segment(i).HeightAt(x), true
}

// Bounds returns the top-left and bottom-right corners of the vertex box.
func (g *Ground) Bounds() (Vec2, Vec2) {
	lo, hi := g.Vertices[0], g.Vertices[0]
	for _, v := range g.Vertices[1:] {
		lo.X, lo.Y = min(lo.X, v.X), min(lo.Y, v.Y)
		hi.X, hi.Y = max(hi.X, v.X), max(hi.Y, v.Y)
	}
	return lo, hi
}
