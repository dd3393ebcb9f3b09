package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/hopper/ecs"
	"github.com/plus3/hopper/physics"
)

var (
	backgroundColor = color.RGBA{255, 255, 255, 255}
	segmentColor    = color.RGBA{20, 20, 20, 255}
	contactColor    = color.RGBA{0, 160, 255, 255}
	normalColor     = color.RGBA{0, 200, 80, 255}
)

// RenderSystem draws the world to the Screen singleton. It belongs to the draw
// scheduler and never mutates simulation state.
type RenderSystem struct {
	Screen   ecs.Singleton[Screen]
	Settings ecs.Singleton[Settings]
	Log      ecs.Singleton[ContactLog]
	Clock    ecs.Singleton[Clock]

	Floors  ecs.Query[struct{ *FloorPlane }]
	Grounds ecs.Query[struct {
		*GroundLine
		*Paint
	}]
	Bodies ecs.Query[struct {
		*physics.Body
		*Paint
	}]

	pixel *ebiten.Image
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}
	settings := s.Settings.Get()

	screen.Fill(backgroundColor)

	for f := range s.Floors.Iter() {
		y := float32(f.FloorPlane.Y)
		vector.DrawFilledRect(screen.Image, 0, y, float32(settings.Width), float32(settings.Height)-y, groundColor, false)
	}

	for g := range s.Grounds.Iter() {
		s.drawGround(screen.Image, g.GroundLine.Ground, g.Paint.Color, float32(settings.Height))
	}

	for b := range s.Bodies.Iter() {
		corners := b.Body.Corners()
		s.fillPolygon(screen.Image, corners[:], b.Paint.Color)
	}

	if settings.Debug {
		s.drawContact(screen.Image, s.Log.Get().Last)
	}

	ebitenutil.DebugPrint(screen.Image, fmt.Sprintf("stage %d: %s  tick %d\narrows move/jump, R reset, Esc quit",
		int(settings.Stage), settings.Stage, s.Clock.Get().Tick))
}

func (s *RenderSystem) drawGround(dst *ebiten.Image, g *physics.Ground, clr color.RGBA, bottom float32) {
	poly := make([]physics.Vec2, 0, len(g.Vertices)+2)
	poly = append(poly, g.Vertices...)
	last, first := g.Vertices[len(g.Vertices)-1], g.Vertices[0]
	poly = append(poly, physics.V(last.X, float64(bottom)), physics.V(first.X, float64(bottom)))
	s.fillPolygon(dst, poly, clr)

	for i := 0; i < g.Len(); i++ {
		seg := g.Segment(i)
		vector.StrokeLine(dst, float32(seg.A.X), float32(seg.A.Y), float32(seg.B.X), float32(seg.B.Y), 2, segmentColor, true)
	}
}

func (s *RenderSystem) drawContact(dst *ebiten.Image, c physics.Contact) {
	if !c.Hit {
		return
	}
	for _, p := range c.Points {
		vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), 3, contactColor, true)
	}
	tip := c.Point.Add(c.Normal.Scale(24))
	vector.StrokeLine(dst, float32(c.Point.X), float32(c.Point.Y), float32(tip.X), float32(tip.Y), 1.5, normalColor, true)
	vector.StrokeCircle(dst, float32(tip.X), float32(tip.Y), 2, 1, normalColor, true)
}

// fillPolygon fills a simple polygon with the even-odd rule.
func (s *RenderSystem) fillPolygon(dst *ebiten.Image, pts []physics.Vec2, clr color.RGBA) {
	if len(pts) < 3 {
		return
	}
	if s.pixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.pixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.FillRule = ebiten.EvenOdd
	op.AntiAlias = true
	dst.DrawTriangles(vs, is, s.pixel, op)
}
