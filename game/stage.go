package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/plus3/hopper/physics"
)

const (
	ScreenWidth  = 640
	ScreenHeight = 480
)

// Stage selects one of the four incremental prototypes.
type Stage int

const (
	StageGravity Stage = iota + 1
	StageLateral
	StageSlopes
	StageRotation
)

var stageNames = map[Stage]string{
	StageGravity:  "gravity",
	StageLateral:  "lateral",
	StageSlopes:   "slopes",
	StageRotation: "rotation",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Lateral reports whether Left/Right input is read.
func (s Stage) Lateral() bool { return s >= StageLateral }

// Sloped reports whether the stage uses a polyline ground instead of a floor.
func (s Stage) Sloped() bool { return s >= StageSlopes }

// ParseStage accepts a stage number ("3") or name ("slopes").
func ParseStage(v string) (Stage, error) {
	v = strings.TrimSpace(strings.ToLower(v))
	if n, err := strconv.Atoi(v); err == nil {
		if _, ok := stageNames[Stage(n)]; ok {
			return Stage(n), nil
		}
		return 0, fmt.Errorf("unknown stage %d: want 1-%d", n, len(stageNames))
	}
	for s, name := range stageNames {
		if name == v {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", v)
}

// Settings is everything needed to build a world. It is stored as a singleton
// so the debug overlay can edit the tuning live.
type Settings struct {
	Stage      Stage
	Tuning     physics.Tuning
	Spawn      physics.Vec2 // top-left corner of the player at start
	PlayerSize physics.Vec2
	// FloorY is the flat floor used by the first two stages.
	FloorY float64
	// Ground is the polyline used from StageSlopes on.
	Ground []physics.Vec2
	Width  float64
	Height float64
	// Verbose logs jumps, landings and respawns.
	Verbose bool
	// Debug draws contact points and normals.
	Debug bool
}

var defaultGround = []physics.Vec2{
	{X: 0, Y: 360},
	{X: 160, Y: 360},
	{X: 280, Y: 300},
	{X: 400, Y: 340},
	{X: 520, Y: 260},
	{X: 640, Y: 260},
}

// Preset returns the constants each prototype shipped with.
func Preset(stage Stage) Settings {
	s := Settings{
		Stage:  stage,
		Width:  ScreenWidth,
		Height: ScreenHeight,
	}

	switch stage {
	case StageGravity:
		// The first prototype integrated per update at 120 UPS with gravity of
		// one pixel per update per second and a one pixel per update jump.
		s.Tuning = physics.Tuning{Gravity: 120, JumpSpeed: 120}
		s.PlayerSize = physics.V(100, 100)
		s.Spawn = physics.V(0, 0)
		s.FloorY = 240

	case StageLateral:
		s.Tuning = physics.Tuning{Gravity: 600, JumpSpeed: 360, MoveSpeed: 200, Friction: 8}
		s.PlayerSize = physics.V(50, 50)
		s.Spawn = physics.V(40, 40)
		s.FloorY = 240

	case StageSlopes:
		s.Tuning = physics.Tuning{
			Gravity:         900,
			JumpSpeed:       420,
			MoveSpeed:       220,
			Friction:        6,
			GroundedGravity: true,
			ContactSlop:     0.5,
		}
		s.PlayerSize = physics.V(40, 40)
		s.Spawn = physics.V(60, 40)
		s.Ground = append([]physics.Vec2(nil), defaultGround...)

	case StageRotation:
		s.Tuning = physics.Tuning{
			Gravity:         900,
			JumpSpeed:       420,
			MoveSpeed:       220,
			Friction:        6,
			GroundedGravity: true,
			ContactSlop:     0.5,
			Rotation:        true,
			AngularKick:     0.01,
			AngularDamping:  8,
			MaxAngularVel:   12,
		}
		s.PlayerSize = physics.V(40, 40)
		s.Spawn = physics.V(60, 40)
		s.Ground = append([]physics.Vec2(nil), defaultGround...)
	}

	return s
}

// Validate checks the settings before a world is built.
func (s Settings) Validate() error {
	if _, ok := stageNames[s.Stage]; !ok {
		return fmt.Errorf("unknown stage %d", int(s.Stage))
	}
	if s.PlayerSize.X <= 0 || s.PlayerSize.Y <= 0 {
		return fmt.Errorf("player size %vx%v must be positive", s.PlayerSize.X, s.PlayerSize.Y)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("world size %vx%v must be positive", s.Width, s.Height)
	}
	if err := s.Tuning.Validate(); err != nil {
		return err
	}
	if s.Stage.Sloped() {
		if _, err := physics.NewGround(s.Ground...); err != nil {
			return fmt.Errorf("ground: %w", err)
		}
	}
	return nil
}
