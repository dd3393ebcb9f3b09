package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/hopper/ecs"
	"github.com/plus3/hopper/physics"
)

// TickRate is the fixed simulation rate.
const TickRate = 60

// World owns the entity storage and the two schedulers: Update advances the
// simulation, Draw renders it.
type World struct {
	Storage *ecs.Storage
	Update  *ecs.Scheduler
	Draw    *ecs.Scheduler

	settings *ecs.Singleton[Settings]
	screen   *ecs.Singleton[Screen]
	players  *ecs.Query[playerView]
	player   ecs.EntityId
}

// NewWorld builds the entities and systems of one stage. input may be nil for
// a world that only moves under gravity.
func NewWorld(settings Settings, input InputSource) (*World, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("stage %s: %w", settings.Stage, err)
	}

	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	storage := ecs.NewStorage(registry)

	w := &World{
		Storage:  storage,
		settings: ecs.NewSingleton(storage, settings),
		screen:   ecs.NewSingleton(storage, Screen{}),
	}
	ecs.NewSingleton(storage, InputState{})
	ecs.NewSingleton(storage, Clock{})
	ecs.NewSingleton(storage, ContactLog{})

	body := physics.NewBody(settings.Spawn, settings.PlayerSize)
	w.player = storage.Spawn(body, Player{Spawn: body.Pos}, Paint{Color: playerColor})

	if settings.Stage.Sloped() {
		ground, err := physics.NewGround(settings.Ground...)
		if err != nil {
			return nil, err
		}
		storage.Spawn(GroundLine{Ground: ground}, Paint{Color: groundColor})
	} else {
		storage.Spawn(FloorPlane{Y: settings.FloorY})
	}

	w.Update = ecs.NewScheduler(storage)
	w.Update.Register(&ClockSystem{})
	w.Update.Register(&InputSystem{Source: input})
	w.Update.Register(&ControlSystem{})
	w.Update.Register(&IntegrateSystem{})
	if settings.Stage.Sloped() {
		w.Update.Register(&GroundCollisionSystem{})
	} else {
		w.Update.Register(&FloorCollisionSystem{})
	}
	w.Update.Register(&LandingSystem{})
	w.Update.Register(&BoundsSystem{})

	w.Draw = ecs.NewScheduler(storage)
	w.Draw.Register(&RenderSystem{})

	w.players = ecs.NewQuery[playerView](storage)
	return w, nil
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	w.Update.Once(dt)
}

// Render draws the current state onto screen.
func (w *World) Render(screen *ebiten.Image) {
	w.screen.Get().Image = screen
	w.Draw.Once(0)
	w.screen.Get().Image = nil
}

// Player returns the player's body.
func (w *World) Player() *physics.Body {
	if p := w.players.Get(w.player); p != nil {
		return p.Body
	}
	return nil
}

// Settings returns the live settings; edits apply from the next tick.
func (w *World) Settings() *Settings {
	return w.settings.Get()
}

// Events returns the contact log.
func (w *World) Events() *ContactLog {
	var events *ContactLog
	w.Storage.ReadSingleton(&events)
	return events
}

// Tick returns the number of simulation steps taken.
func (w *World) Tick() uint64 {
	var clock *Clock
	w.Storage.ReadSingleton(&clock)
	return clock.Tick
}
