package game

import (
	"log"

	"github.com/plus3/hopper/ecs"
	"github.com/plus3/hopper/physics"
)

type playerView struct {
	ecs.EntityId
	*physics.Body
	*Player
}

// ClockSystem advances the tick counter.
type ClockSystem struct {
	Clock ecs.Singleton[Clock]
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	clock.Tick++
	clock.Elapsed += frame.DeltaTime
}

// ControlSystem turns input into jumps, lateral motion and resets.
type ControlSystem struct {
	Players  ecs.Query[playerView]
	Input    ecs.Singleton[InputState]
	Settings ecs.Singleton[Settings]
	Log      ecs.Singleton[ContactLog]
}

func (s *ControlSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	settings := s.Settings.Get()
	events := s.Log.Get()

	for p := range s.Players.Iter() {
		if input.Reset {
			p.Body.Reset(p.Player.Spawn)
			continue
		}

		if input.Jump && p.Body.Jump(settings.Tuning.JumpSpeed) {
			events.Jumps++
			if settings.Verbose {
				log.Println("jumping")
			}
		}

		if settings.Stage.Lateral() {
			physics.Steer(p.Body, input.Direction(), settings.Tuning, frame.DeltaTime)
		}
	}
}

// IntegrateSystem applies gravity and moves every body.
type IntegrateSystem struct {
	Bodies   ecs.Query[struct{ *physics.Body }]
	Settings ecs.Singleton[Settings]
}

func (s *IntegrateSystem) Execute(frame *ecs.UpdateFrame) {
	tuning := s.Settings.Get().Tuning
	for b := range s.Bodies.Iter() {
		physics.Integrate(b.Body, tuning, frame.DeltaTime)
	}
}

// FloorCollisionSystem lands bodies on flat floors.
type FloorCollisionSystem struct {
	Bodies ecs.Query[struct{ *physics.Body }]
	Floors ecs.Query[struct{ *FloorPlane }]
	Log    ecs.Singleton[ContactLog]
}

func (s *FloorCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	events := s.Log.Get()
	for b := range s.Bodies.Iter() {
		for f := range s.Floors.Iter() {
			if c := physics.ResolveFloor(b.Body, f.FloorPlane.Y); c.Hit {
				events.Last = c
			}
		}
	}
}

// GroundCollisionSystem resolves bodies against polyline grounds and applies
// the slope response.
type GroundCollisionSystem struct {
	Bodies   ecs.Query[struct{ *physics.Body }]
	Grounds  ecs.Query[struct{ *GroundLine }]
	Settings ecs.Singleton[Settings]
	Log      ecs.Singleton[ContactLog]
}

func (s *GroundCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	tuning := s.Settings.Get().Tuning
	events := s.Log.Get()

	for b := range s.Bodies.Iter() {
		grounded := false
		for g := range s.Grounds.Iter() {
			c := physics.ResolveGround(b.Body, g.GroundLine.Ground, tuning)
			if c.Hit {
				grounded = true
				events.Last = c
			}
		}
		b.Body.Grounded = grounded
		physics.DampSpin(b.Body, tuning, frame.DeltaTime)
	}
}

// LandingSystem counts transitions from airborne to grounded.
type LandingSystem struct {
	Players  ecs.Query[playerView]
	Settings ecs.Singleton[Settings]
	Log      ecs.Singleton[ContactLog]
}

func (s *LandingSystem) Execute(frame *ecs.UpdateFrame) {
	events := s.Log.Get()
	for p := range s.Players.Iter() {
		if p.Body.Grounded && !events.wasOnFoot {
			events.Landings++
			if s.Settings.Get().Verbose {
				log.Printf("landed at (%.1f, %.1f) speed %.1f", p.Body.Pos.X, p.Body.Pos.Y, p.Body.Speed())
			}
		}
		events.wasOnFoot = p.Body.Grounded
	}
}

// BoundsSystem keeps every corner of the player inside the window horizontally
// and respawns the player once it falls below the window.
type BoundsSystem struct {
	Players  ecs.Query[playerView]
	Settings ecs.Singleton[Settings]
	Log      ecs.Singleton[ContactLog]
}

func (s *BoundsSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Settings.Get()
	events := s.Log.Get()

	for p := range s.Players.Iter() {
		body := p.Body
		halfW := body.HalfWidth()

		if body.Pos.X < halfW {
			body.Pos.X = halfW
			body.Vel.X = max(0, body.Vel.X)
		}
		if body.Pos.X > settings.Width-halfW {
			body.Pos.X = settings.Width - halfW
			body.Vel.X = min(0, body.Vel.X)
		}

		if body.TopLeft().Y > settings.Height {
			body.Reset(p.Player.Spawn)
			events.Respawns++
			if settings.Verbose {
				log.Printf("respawned player %d", p.EntityId)
			}
		}
	}
}
