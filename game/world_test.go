package game

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/hopper/ecs"
	"github.com/plus3/hopper/ecs/debugui"
	"github.com/plus3/hopper/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / TickRate

// scriptedInput is an InputSource driven by the test. Pressed actions fire
// once and are cleared by the next step.
type scriptedInput struct {
	held    map[Action]bool
	pressed map[Action]bool
}

func newScriptedInput() *scriptedInput {
	return &scriptedInput{held: map[Action]bool{}, pressed: map[Action]bool{}}
}

func (in *scriptedInput) Held(a Action) bool    { return in.held[a] }
func (in *scriptedInput) Pressed(a Action) bool { return in.pressed[a] }

func (in *scriptedInput) press(a Action) { in.pressed[a] = true }

func newTestWorld(t *testing.T, settings Settings) (*World, *scriptedInput) {
	t.Helper()
	input := newScriptedInput()
	w, err := NewWorld(settings, input)
	require.NoError(t, err)
	return w, input
}

func step(w *World, in *scriptedInput, ticks int) {
	for i := 0; i < ticks; i++ {
		w.Step(dt)
		clear(in.pressed)
	}
}

func TestGravityStageLandsOnFloor(t *testing.T) {
	w, in := newTestWorld(t, Preset(StageGravity))

	body := w.Player()
	require.NotNil(t, body)
	assert.Equal(t, physics.V(50, 50), body.Pos)
	assert.False(t, body.Grounded)

	step(w, in, 300)

	assert.True(t, body.Grounded)
	assert.InDelta(t, 240, body.Bottom(), 1e-9)
	assert.Equal(t, physics.Vec2{}, body.Vel)
	assert.Equal(t, 1, w.Events().Landings)
	assert.Equal(t, uint64(300), w.Tick())
}

func TestJumpOnlyFromTheFloor(t *testing.T) {
	w, in := newTestWorld(t, Preset(StageGravity))
	body := w.Player()

	in.press(ActionJump)
	step(w, in, 1)
	assert.Equal(t, 0, w.Events().Jumps, "airborne jump is ignored")

	step(w, in, 300)
	require.True(t, body.Grounded)

	in.press(ActionJump)
	step(w, in, 1)
	assert.Equal(t, 1, w.Events().Jumps)
	assert.False(t, body.Grounded)
	assert.Less(t, body.Vel.Y, 0.0)

	in.press(ActionJump)
	step(w, in, 1)
	assert.Equal(t, 1, w.Events().Jumps, "no double jump")

	step(w, in, 300)
	assert.True(t, body.Grounded)
	assert.InDelta(t, 240, body.Bottom(), 1e-9)
	assert.Equal(t, 2, w.Events().Landings)
}

func TestGravityStageIgnoresLateralInput(t *testing.T) {
	w, in := newTestWorld(t, Preset(StageGravity))
	in.held[ActionRight] = true

	step(w, in, 120)

	assert.Equal(t, 50.0, w.Player().Pos.X)
}

func TestLateralMovementAndFriction(t *testing.T) {
	w, in := newTestWorld(t, Preset(StageLateral))
	body := w.Player()
	step(w, in, 120)
	require.True(t, body.Grounded)
	startX := body.Pos.X

	in.held[ActionRight] = true
	step(w, in, 30)
	assert.Equal(t, 200.0, body.Vel.X)
	assert.InDelta(t, startX+100, body.Pos.X, 1e-6)

	in.held[ActionRight] = false
	step(w, in, 1)
	assert.Less(t, body.Vel.X, 200.0)
	assert.Greater(t, body.Vel.X, 0.0)

	step(w, in, 120)
	assert.Equal(t, 0.0, body.Vel.X, "friction brings the body to rest")
	stopped := body.Pos.X
	step(w, in, 10)
	assert.Equal(t, stopped, body.Pos.X)
}

func TestOppositeKeysCancel(t *testing.T) {
	w, in := newTestWorld(t, Preset(StageLateral))
	step(w, in, 120)
	x := w.Player().Pos.X

	in.held[ActionLeft] = true
	in.held[ActionRight] = true
	step(w, in, 30)

	assert.Equal(t, x, w.Player().Pos.X)
}

func TestPlayerStaysInsideWindow(t *testing.T) {
	w, in := newTestWorld(t, Preset(StageLateral))
	body := w.Player()

	in.held[ActionLeft] = true
	step(w, in, 60)
	assert.Equal(t, body.Size.X/2, body.Pos.X)

	in.held[ActionLeft] = false
	in.held[ActionRight] = true
	step(w, in, 240)
	assert.Equal(t, ScreenWidth-body.Size.X/2, body.Pos.X)
}

func TestResetReturnsToSpawn(t *testing.T) {
	w, in := newTestWorld(t, Preset(StageLateral))
	body := w.Player()
	spawn := body.Pos

	in.held[ActionRight] = true
	step(w, in, 60)
	require.NotEqual(t, spawn.X, body.Pos.X)

	in.held[ActionRight] = false
	in.press(ActionReset)
	step(w, in, 1)

	assert.Equal(t, spawn.X, body.Pos.X)
	assert.InDelta(t, spawn.Y, body.Pos.Y, 1)
	assert.Equal(t, 0.0, body.Vel.X)
	assert.False(t, body.Grounded)
}

func TestFallingOutOfTheWindowRespawns(t *testing.T) {
	settings := Preset(StageLateral)
	settings.FloorY = 2000
	w, in := newTestWorld(t, settings)
	body := w.Player()
	spawn := body.Pos

	step(w, in, 120)

	assert.Equal(t, 1, w.Events().Respawns)
	assert.Less(t, body.Pos.Y, float64(ScreenHeight))
	assert.Equal(t, spawn.X, body.Pos.X)
}

func TestWalkingOffTheGroundRespawns(t *testing.T) {
	settings := Preset(StageSlopes)
	settings.Ground = []physics.Vec2{{X: 0, Y: 400}, {X: 200, Y: 400}}
	w, in := newTestWorld(t, settings)

	in.held[ActionRight] = true
	step(w, in, 180)

	assert.GreaterOrEqual(t, w.Events().Respawns, 1)
}

func TestSlopeStageRestsOnGround(t *testing.T) {
	w, in := newTestWorld(t, Preset(StageSlopes))
	body := w.Player()

	step(w, in, 300)

	assert.True(t, body.Grounded)
	assert.InDelta(t, 360, body.Bottom(), 0.5)
	assert.Equal(t, 1, w.Events().Landings)
	assert.Equal(t, 0, w.Events().Last.Segment)
	assert.Equal(t, physics.V(0, -1), w.Events().Last.Normal)
}

func TestSlopeStageClimbsRamp(t *testing.T) {
	w, in := newTestWorld(t, Preset(StageSlopes))
	body := w.Player()
	step(w, in, 300)

	ground, err := physics.NewGround(w.Settings().Ground...)
	require.NoError(t, err)

	in.held[ActionRight] = true
	for i := 0; i < 40; i++ {
		step(w, in, 1)
		for _, c := range body.Corners() {
			h, ok := ground.HeightAt(c.X)
			require.True(t, ok)
			assert.LessOrEqual(t, c.Y, h+5, "corner sunk into the ground at tick %d", i)
		}
	}

	assert.Greater(t, body.Pos.X, 150.0)
	assert.Less(t, body.Bottom(), 360.0, "body rose onto the ramp")
}

func TestRotationStageLandsFlatWithoutSpin(t *testing.T) {
	w, in := newTestWorld(t, Preset(StageRotation))
	body := w.Player()

	step(w, in, 300)

	assert.True(t, body.Grounded)
	assert.InDelta(t, 0, body.Angle, 1e-9)
	assert.InDelta(t, 0, body.AngularVel, 1e-9)
}

func TestRotationStaysBounded(t *testing.T) {
	w, in := newTestWorld(t, Preset(StageRotation))
	body := w.Player()
	limit := w.Settings().Tuning.MaxAngularVel

	in.held[ActionRight] = true
	for i := 0; i < 240; i++ {
		if i%40 == 0 {
			in.press(ActionJump)
		}
		step(w, in, 1)
		assert.LessOrEqual(t, math.Abs(body.AngularVel), limit)
		assert.LessOrEqual(t, math.Abs(body.Angle), math.Pi)
	}
}

func TestTiltedPlayerAgainstTheWall(t *testing.T) {
	settings := Preset(StageRotation)
	settings.Ground = []physics.Vec2{{X: 0, Y: 400}, {X: ScreenWidth, Y: 400}}
	slop := settings.Tuning.ContactSlop

	w, in := newTestWorld(t, settings)
	body := w.Player()
	step(w, in, 120)
	require.True(t, body.Grounded)

	body.Angle = 0.5
	in.held[ActionRight] = true

	grounded := 0
	for i := 0; i < 300; i++ {
		step(w, in, 1)
		for _, c := range body.Corners() {
			assert.LessOrEqual(t, c.X, float64(ScreenWidth)+1e-9, "corner left the window at tick %d", i)
			assert.LessOrEqual(t, c.Y, 400+slop, "corner sank into the ground at tick %d", i)
		}
		if i >= 200 && body.Grounded {
			grounded++
		}
	}

	assert.InDelta(t, ScreenWidth-body.HalfWidth(), body.Pos.X, 1e-9)
	assert.GreaterOrEqual(t, grounded, 90, "grounded on most of the last 100 ticks")

	for i := 0; i < 5 && w.Events().Jumps == 0; i++ {
		in.press(ActionJump)
		step(w, in, 1)
	}
	assert.Equal(t, 1, w.Events().Jumps, "jump works against the wall")
}

func TestInputIgnoredWhileOverlayHasKeyboard(t *testing.T) {
	w, in := newTestWorld(t, Preset(StageLateral))
	step(w, in, 120)
	x := w.Player().Pos.X

	ecs.NewSingleton(w.Storage, debugui.ImguiInputState{WantCaptureKeyboard: true})
	in.held[ActionRight] = true
	step(w, in, 30)

	assert.Equal(t, x, w.Player().Pos.X)
}

func TestSettingsEditsApplyNextTick(t *testing.T) {
	w, in := newTestWorld(t, Preset(StageLateral))
	step(w, in, 120)

	w.Settings().Tuning.MoveSpeed = 50
	in.held[ActionRight] = true
	step(w, in, 1)

	assert.Equal(t, 50.0, w.Player().Vel.X)
}

func TestNewWorldRejectsInvalidSettings(t *testing.T) {
	settings := Preset(StageSlopes)
	settings.Ground = settings.Ground[:1]
	_, err := NewWorld(settings, nil)
	assert.ErrorIs(t, err, physics.ErrTooFewVertices)

	settings = Preset(StageLateral)
	settings.Tuning.Gravity = -1
	_, err = NewWorld(settings, nil)
	assert.ErrorIs(t, err, physics.ErrInvalidTuning)
}

func TestGameQuitsAndLaysOut(t *testing.T) {
	w, in := newTestWorld(t, Preset(StageGravity))
	g := &Game{World: w, Input: in}

	require.NoError(t, g.Update())
	assert.Equal(t, uint64(1), w.Tick())

	in.press(ActionQuit)
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
	assert.Equal(t, uint64(1), w.Tick())

	width, height := g.Layout(1280, 960)
	assert.Equal(t, ScreenWidth, width)
	assert.Equal(t, ScreenHeight, height)
}

func TestSchedulerOrder(t *testing.T) {
	w, _ := newTestWorld(t, Preset(StageSlopes))
	w.Step(dt)

	var names []string
	for _, s := range w.Update.Stats().Systems {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"ClockSystem",
		"InputSystem",
		"ControlSystem",
		"IntegrateSystem",
		"GroundCollisionSystem",
		"LandingSystem",
		"BoundsSystem",
	}, names)
}
