package ebiten_test

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	debugui_ebiten "github.com/plus3/hopper/ecs/debugui/ebiten"
	"github.com/plus3/hopper/game"
)

// The backend creates the window itself, so it must exist before the game is
// run. EnableOverlay stores it as a singleton, registers the ImguiSystem on the
// update scheduler and spawns the player, tuning and systems windows. Game then
// brackets each Update with BeginFrame/EndFrame and draws the overlay after the
// world.
func ExampleNewImguiBackend() {
	settings := game.Preset(game.StageRotation)
	settings.Debug = true

	g, err := game.NewGame(settings)
	if err != nil {
		log.Fatal(err)
	}

	g.EnableOverlay(debugui_ebiten.NewImguiBackend("hopper", game.ScreenWidth, game.ScreenHeight))

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
