package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/hopper/ecs"
	debugui_ebiten "github.com/plus3/hopper/ecs/debugui/ebiten"
)

// Game adapts a World to ebiten.Game. Update runs one fixed simulation tick;
// Draw renders and, when enabled, overlays the debug UI.
type Game struct {
	World *World
	Input InputSource

	overlay *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

// NewGame builds the world for settings and reads the keyboard through ebiten.
func NewGame(settings Settings) (*Game, error) {
	input := NewEbitenInput()
	world, err := NewWorld(settings, input)
	if err != nil {
		return nil, err
	}
	return &Game{World: world, Input: input}, nil
}

func (g *Game) Update() error {
	if g.Input != nil && g.Input.Pressed(ActionQuit) {
		return ebiten.Termination
	}

	if g.overlay != nil {
		g.overlay.Get().BeginFrame()
		defer g.overlay.Get().EndFrame()
	}

	g.World.Step(1.0 / TickRate)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.World.Render(screen)
	if g.overlay != nil {
		g.overlay.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Get().Layout(ScreenWidth, ScreenHeight)
	}
	return ScreenWidth, ScreenHeight
}
