package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/hopper/ecs"
	"github.com/plus3/hopper/ecs/debugui"
	"github.com/plus3/hopper/physics"
)

// Player marks the controllable body and remembers where it respawns.
type Player struct {
	Spawn physics.Vec2 // center
}

// FloorPlane is a flat floor spanning the whole window.
type FloorPlane struct {
	Y float64
}

// GroundLine is a polyline ground.
type GroundLine struct {
	*physics.Ground
}

// Paint is the fill color of a drawable entity.
type Paint struct {
	Color color.RGBA
}

// InputState is the control state sampled once per tick.
type InputState struct {
	Left  bool
	Right bool
	Jump  bool
	Reset bool
}

// Direction folds Left/Right into -1, 0 or 1.
func (in InputState) Direction() int {
	dir := 0
	if in.Left {
		dir--
	}
	if in.Right {
		dir++
	}
	return dir
}

// Clock counts simulation ticks.
type Clock struct {
	Tick    uint64
	Elapsed float64
}

// ContactLog keeps the latest contact and running counters for the overlay and
// the headless report.
type ContactLog struct {
	Last      physics.Contact
	Jumps     int
	Landings  int
	Respawns  int
	wasOnFoot bool
}

// Screen is the render target of the current Draw call.
type Screen struct {
	*ebiten.Image
}

var (
	playerColor = color.RGBA{255, 0, 0, 255}
	groundColor = color.RGBA{51, 51, 51, 255}
)

func registerComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[physics.Body](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[FloorPlane](registry)
	ecs.RegisterComponent[GroundLine](registry)
	ecs.RegisterComponent[Paint](registry)
	debugui.RegisterComponents(registry)
}
