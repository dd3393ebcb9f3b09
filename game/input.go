package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/hopper/ecs"
	"github.com/plus3/hopper/ecs/debugui"
)

// Action is a logical control, decoupled from the physical key.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionJump
	ActionReset
	ActionQuit
)

// InputSource reports control state. Held is true while the action is down;
// Pressed is true only on the tick it went down.
type InputSource interface {
	Held(a Action) bool
	Pressed(a Action) bool
}

// EbitenInput reads the keyboard through ebiten.
type EbitenInput struct {
	Keys map[Action][]ebiten.Key
}

// NewEbitenInput binds the arrow keys, R to reset and Escape/Q to quit.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{
		Keys: map[Action][]ebiten.Key{
			ActionLeft:  {ebiten.KeyArrowLeft},
			ActionRight: {ebiten.KeyArrowRight},
			ActionJump:  {ebiten.KeyArrowUp},
			ActionReset: {ebiten.KeyR},
			ActionQuit:  {ebiten.KeyEscape, ebiten.KeyQ},
		},
	}
}

func (in *EbitenInput) Held(a Action) bool {
	for _, k := range in.Keys[a] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func (in *EbitenInput) Pressed(a Action) bool {
	for _, k := range in.Keys[a] {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// InputSystem samples the InputSource into the InputState singleton. Input is
// dropped while the debug overlay has keyboard focus.
type InputSystem struct {
	Source InputSource

	Input    ecs.Singleton[InputState]
	Settings ecs.Singleton[Settings]
	Imgui    ecs.Singleton[debugui.ImguiInputState]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Input.Get()
	*state = InputState{}

	if s.Source == nil {
		return
	}
	if imgui := s.Imgui.Get(); imgui != nil && imgui.WantCaptureKeyboard {
		return
	}

	stage := s.Settings.Get().Stage
	if stage.Lateral() {
		state.Left = s.Source.Held(ActionLeft)
		state.Right = s.Source.Held(ActionRight)
	}
	state.Jump = s.Source.Pressed(ActionJump)
	state.Reset = s.Source.Pressed(ActionReset)
}
